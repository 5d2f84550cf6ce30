package rollup

import (
	"encoding/binary"
	"fmt"

	"github.com/zkrollup/pxe/model/fields"
)

// NewNoteData records a note created by a call.
type NewNoteData struct {
	StorageSlot fields.Fr
	Preimage    []fields.Fr
}

// NewNullifierData records a note nullified by a call.
type NewNullifierData struct {
	StorageSlot fields.Fr
	Nullifier   fields.Fr
	Preimage    []fields.Fr
}

// NoteData is a note as returned by the note database.
type NoteData struct {
	ContractAddress Address
	StorageSlot     fields.Fr
	Nonce           fields.Fr
	Preimage        []fields.Fr
	InnerNoteHash   fields.Fr
	SiloedNullifier fields.Fr
	Index           uint64
}

// SortOrder orders notes by a preimage field.
type SortOrder uint8

const (
	SortOrderNone SortOrder = iota
	SortOrderDesc
	SortOrderAsc
)

func (o SortOrder) String() string {
	switch o {
	case SortOrderNone:
		return "none"
	case SortOrderDesc:
		return "desc"
	case SortOrderAsc:
		return "asc"
	default:
		return fmt.Sprintf("sort_order(%d)", uint8(o))
	}
}

// NoteQuery selects notes of one storage slot of the calling contract.
type NoteQuery struct {
	ContractAddress Address
	StorageSlot     fields.Fr
	// SortBy lists preimage field indices to sort by, most significant first.
	SortBy    []uint32
	SortOrder []SortOrder
	Limit     uint32
	Offset    uint32
}

// MessageLoadOracleInputs is an L1 to L2 message together with its position
// in the message tree.
type MessageLoadOracleInputs struct {
	Message     [L1ToL2MessageLength]fields.Fr
	Index       fields.Fr
	SiblingPath [L1ToL2MsgTreeHeight]fields.Fr
}

// ToFields encodes the message as message, index, sibling path.
func (m MessageLoadOracleInputs) ToFields() []fields.Fr {
	out := make([]fields.Fr, 0, L1ToL2MessageLength+1+L1ToL2MsgTreeHeight)
	out = append(out, m.Message[:]...)
	out = append(out, m.Index)
	return append(out, m.SiblingPath[:]...)
}

// CommitmentDataOracleInputs is a commitment together with its position in the
// private data tree.
type CommitmentDataOracleInputs struct {
	Commitment  fields.Fr
	Index       fields.Fr
	SiblingPath [PrivateDataTreeHeight]fields.Fr
}

// ToFields encodes the commitment as commitment, index, sibling path.
func (c CommitmentDataOracleInputs) ToFields() []fields.Fr {
	out := make([]fields.Fr, 0, 2+PrivateDataTreeHeight)
	out = append(out, c.Commitment, c.Index)
	return append(out, c.SiblingPath[:]...)
}

// NoteSpendingInfo is the plaintext of an encrypted log: everything the owner
// needs to later spend the note.
type NoteSpendingInfo struct {
	NotePreimage    []fields.Fr
	ContractAddress Address
	StorageSlot     fields.Fr
}

// ToBuffer encodes the info as a 4 byte big-endian preimage length, the
// preimage fields, the contract address and the storage slot.
func (n NoteSpendingInfo) ToBuffer() []byte {
	out := make([]byte, 0, 4+(len(n.NotePreimage)+2)*fields.FrSize)
	out = binary.BigEndian.AppendUint32(out, uint32(len(n.NotePreimage)))
	for _, f := range n.NotePreimage {
		b := f.Bytes()
		out = append(out, b[:]...)
	}
	addr := n.ContractAddress.ToField().Bytes()
	out = append(out, addr[:]...)
	slot := n.StorageSlot.Bytes()
	return append(out, slot[:]...)
}

// NoteSpendingInfoFromBuffer decodes the output of ToBuffer.
func NoteSpendingInfoFromBuffer(buf []byte) (NoteSpendingInfo, error) {
	if len(buf) < 4 {
		return NoteSpendingInfo{}, fmt.Errorf("note spending info too short: %d bytes", len(buf))
	}
	n := int(binary.BigEndian.Uint32(buf))
	want := 4 + (n+2)*fields.FrSize
	if n < 0 || len(buf) != want {
		return NoteSpendingInfo{}, fmt.Errorf("note spending info has %d bytes, expected %d", len(buf), want)
	}

	read := func(i int) (fields.Fr, error) {
		off := 4 + i*fields.FrSize
		return fields.FrFromBytes(buf[off : off+fields.FrSize])
	}
	info := NoteSpendingInfo{NotePreimage: make([]fields.Fr, n)}
	for i := 0; i < n; i++ {
		f, err := read(i)
		if err != nil {
			return NoteSpendingInfo{}, fmt.Errorf("preimage field %d: %w", i, err)
		}
		info.NotePreimage[i] = f
	}
	addr, err := read(n)
	if err != nil {
		return NoteSpendingInfo{}, fmt.Errorf("contract address: %w", err)
	}
	slot, err := read(n + 1)
	if err != nil {
		return NoteSpendingInfo{}, fmt.Errorf("storage slot: %w", err)
	}
	info.ContractAddress = NewAddress(addr)
	info.StorageSlot = slot
	return info, nil
}
