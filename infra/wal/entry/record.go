package entry

import "time"

// RecordType tags the intent carried by a WAL record.
type RecordType uint8

const (
	RecordPlace RecordType = iota
	RecordCancel
)

// Record is a single durable intent. Seq is assigned by the WAL on
// append and is strictly monotonic across segments.
type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func newRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}
