// Package entry implements the intent log. Every accepted submission
// and cancellation is framed and appended here before it mutates the
// book, so a restart can rebuild the exact book state by replaying
// records past the last snapshot.
package entry

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Frame layout on disk:
// [type:1][seq:8][time:8][len:4][payload][crc:4]
const headerSize = 1 + 8 + 8 + 4

type Config struct {
	Dir             string
	SegmentSize     int64
	SegmentDuration time.Duration
}

type WAL struct {
	dir        string
	segSize    int64
	segMaxAge  time.Duration
	current    *segment
	segIndex   int
	lastSeq    uint64
	lastRotate time.Time
}

// Open opens the WAL in cfg.Dir, resuming the highest existing segment
// and sequence so appends after a restart stay monotonic.
func Open(cfg Config) (*WAL, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}

	index, lastSeq, err := scanDir(cfg.Dir)
	if err != nil {
		return nil, err
	}

	seg, err := openSegment(cfg.Dir, index)
	if err != nil {
		return nil, err
	}

	return &WAL{
		dir:        cfg.Dir,
		segSize:    cfg.SegmentSize,
		segMaxAge:  cfg.SegmentDuration,
		current:    seg,
		segIndex:   index,
		lastSeq:    lastSeq,
		lastRotate: time.Now(),
	}, nil
}

// Append frames and writes one record, assigning the next sequence.
// The assigned sequence is returned so callers can correlate the
// record with snapshots.
func (w *WAL) Append(t RecordType, data []byte) (uint64, error) {
	r := newRecord(t, w.lastSeq+1, data)
	payloadLen := uint32(len(r.Data))

	buf := make([]byte, headerSize+int(payloadLen)+4)

	buf[0] = byte(r.Type)
	binary.BigEndian.PutUint64(buf[1:9], r.Seq)
	binary.BigEndian.PutUint64(buf[9:17], uint64(r.Time))
	binary.BigEndian.PutUint32(buf[17:21], payloadLen)
	copy(buf[headerSize:], r.Data)

	crc := checksum(buf[:headerSize+int(payloadLen)])
	binary.BigEndian.PutUint32(buf[headerSize+int(payloadLen):], crc)

	if err := w.current.append(buf); err != nil {
		return 0, err
	}
	w.lastSeq = r.Seq

	if w.current.offset >= w.segSize ||
		(w.segMaxAge > 0 && time.Since(w.lastRotate) >= w.segMaxAge) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	return r.Seq, nil
}

// LastSeq reports the sequence of the most recently appended record,
// or the highest on-disk sequence right after Open.
func (w *WAL) LastSeq() uint64 {
	return w.lastSeq
}

// Sync flushes the current segment to stable storage.
func (w *WAL) Sync() error {
	return w.current.sync()
}

func (w *WAL) Close() error {
	return w.current.close()
}

func (w *WAL) rotate() error {
	if err := w.current.sync(); err != nil {
		return err
	}
	_ = w.current.close()
	w.segIndex++

	seg, err := openSegment(w.dir, w.segIndex)
	if err != nil {
		return err
	}

	w.current = seg
	w.lastRotate = time.Now()
	return nil
}

// TruncateBefore removes sealed segments whose records are all covered
// by a snapshot at seq. The active segment is never removed.
func (w *WAL) TruncateBefore(seq uint64) error {
	files, err := listSegments(w.dir)
	if err != nil {
		return err
	}

	active := segmentPath(w.dir, w.segIndex)
	for _, path := range files {
		if path == active {
			continue
		}
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			_ = os.Remove(path)
		}
	}
	return nil
}

// scanDir finds the highest segment index and sequence already on disk.
func scanDir(dir string) (index int, lastSeq uint64, err error) {
	files, err := listSegments(dir)
	if err != nil {
		return 0, 0, err
	}

	for _, path := range files {
		var i int
		if _, err := fmt.Sscanf(filepath.Base(path), "segment-%06d.wal", &i); err != nil {
			continue
		}
		if i > index {
			index = i
		}
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq > lastSeq {
			lastSeq = maxSeq
		}
	}
	return index, lastSeq, nil
}
