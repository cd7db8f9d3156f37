package entry

import (
	"fmt"
	"os"
	"path/filepath"
)

type segment struct {
	file   *os.File
	offset int64
}

func segmentPath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("segment-%06d.wal", index))
}

func openSegment(dir string, index int) (*segment, error) {
	f, err := os.OpenFile(segmentPath(dir, index), os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &segment{file: f, offset: fi.Size()}, nil
}

func (s *segment) append(b []byte) error {
	n, err := s.file.Write(b)
	if err != nil {
		return err
	}
	s.offset += int64(n)
	return nil
}

func (s *segment) sync() error {
	return s.file.Sync()
}

func (s *segment) close() error {
	return s.file.Close()
}

// listSegments returns segment paths in index order. Glob's lexical
// ordering matches index order because indexes are zero-padded.
func listSegments(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "segment-*.wal"))
}
