package rollup

import (
	"encoding/binary"

	sha256 "github.com/minio/sha256-simd"

	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
)

// FunctionL2Logs collects the logs a single call emitted, in emission order.
// A call keeps one collection for encrypted and one for unencrypted logs.
type FunctionL2Logs struct {
	logs          [][]byte
	totalByteSize uint64
}

func NewFunctionL2Logs() *FunctionL2Logs {
	return &FunctionL2Logs{
		logs: make([][]byte, 0, 4),
	}
}

// Append adds a log. The payload is copied.
func (l *FunctionL2Logs) Append(log []byte) {
	l.logs = append(l.logs, append([]byte(nil), log...))
	l.totalByteSize += uint64(len(log))
}

func (l *FunctionL2Logs) Logs() [][]byte {
	return l.logs
}

func (l *FunctionL2Logs) Len() int {
	return len(l.logs)
}

// TotalByteSize is the sum of the payload sizes, without framing.
func (l *FunctionL2Logs) TotalByteSize() uint64 {
	return l.totalByteSize
}

// Serialize encodes the collection as a 4 byte big-endian length of the
// remainder, followed by each log prefixed with its own 4 byte length.
func (l *FunctionL2Logs) Serialize() []byte {
	body := make([]byte, 0, 4*len(l.logs)+int(l.totalByteSize))
	for _, log := range l.logs {
		body = binary.BigEndian.AppendUint32(body, uint32(len(log)))
		body = append(body, log...)
	}
	out := make([]byte, 0, 4+len(body))
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

// SerializedLength is len(Serialize()) without building the buffer.
func (l *FunctionL2Logs) SerializedLength() int {
	return 4 + 4*len(l.logs) + int(l.totalByteSize)
}

// Hash is sha256 over the concatenated sha256 digests of every log. An empty
// collection hashes the empty string.
func (l *FunctionL2Logs) Hash() [32]byte {
	h := sha256.New()
	for _, log := range l.logs {
		d := hash.Sha256(log)
		h.Write(d[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashFields splits Hash into two fields, high 128 bits first.
func (l *FunctionL2Logs) HashFields() [NumFieldsPerSha256]fields.Fr {
	return hash.ToTwoFields(l.Hash())
}
