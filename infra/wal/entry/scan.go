package entry

import (
	"encoding/binary"
	"io"
	"os"
)

// maxSeqInSegment scans a segment and returns the highest sequence it
// holds. Used by Open to resume and by TruncateBefore to decide which
// sealed segments a snapshot has made redundant.
func maxSeqInSegment(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var max uint64

	for {
		header := make([]byte, headerSize)
		if _, err := io.ReadFull(f, header); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return max, nil
			}
			return max, err
		}

		seq := binary.BigEndian.Uint64(header[1:9])
		if seq > max {
			max = seq
		}

		payloadLen := binary.BigEndian.Uint32(header[17:21])

		if _, err := f.Seek(int64(payloadLen+4), io.SeekCurrent); err != nil {
			return max, err
		}
	}
}
