package entry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

type ReplayHandler func(*Record) error

// Replay streams every record with Seq > fromSeq through fn, in
// sequence order. A torn write at the tail of the newest segment is
// treated as end of log; a corrupt record anywhere else is an error.
func Replay(dir string, fromSeq uint64, fn ReplayHandler) (lastSeq uint64, err error) {
	files, err := listSegments(dir)
	if err != nil {
		return 0, err
	}

	lastSeq = fromSeq
	for i, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return lastSeq, err
		}
		tail := i == len(files)-1

		for {
			rec, err := readRecord(f)
			if err != nil {
				if err == io.EOF {
					break
				}
				if tail && errors.Is(err, io.ErrUnexpectedEOF) {
					break
				}
				_ = f.Close()
				return lastSeq, err
			}

			if rec.Seq <= fromSeq {
				continue
			}
			if rec.Seq <= lastSeq {
				_ = f.Close()
				return lastSeq, fmt.Errorf("non-monotonic seq %d after %d", rec.Seq, lastSeq)
			}
			lastSeq = rec.Seq

			if err := fn(rec); err != nil {
				_ = f.Close()
				return lastSeq, err
			}
		}
		_ = f.Close()
	}

	return lastSeq, nil
}

func readRecord(r io.Reader) (*Record, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	t := RecordType(header[0])
	seq := binary.BigEndian.Uint64(header[1:9])
	ts := binary.BigEndian.Uint64(header[9:17])
	l := binary.BigEndian.Uint32(header[17:21])

	data := make([]byte, l+4)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}

	payload := data[:l]
	crc := binary.BigEndian.Uint32(data[l:])

	if !checksumValid(append(header, payload...), crc) {
		return nil, fmt.Errorf("crc mismatch at seq %d", seq)
	}

	return &Record{
		Type: t,
		Seq:  seq,
		Time: int64(ts),
		Data: payload,
	}, nil
}
