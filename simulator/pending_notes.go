package simulator

import (
	"sort"
	"sync"

	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
)

// PendingNotes holds the notes created by the calls of a transaction, which
// the note database does not know about yet, and the nullifications that
// hide database notes. Like PackedArgsCache it is shared by every call frame
// of a transaction.
type PendingNotes struct {
	mu sync.Mutex

	created   map[rollup.Address][]rollup.NoteData
	nullified map[rollup.Address][]rollup.NewNullifierData
}

func NewPendingNotes() *PendingNotes {
	return &PendingNotes{
		created:   make(map[rollup.Address][]rollup.NoteData),
		nullified: make(map[rollup.Address][]rollup.NewNullifierData),
	}
}

// Add records a note created by contract. Pending notes have no nonce until
// the transaction is included, so their nonce is zero.
func (p *PendingNotes) Add(contract rollup.Address, storageSlot fields.Fr, preimage []fields.Fr) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.created[contract] = append(p.created[contract], rollup.NoteData{
		ContractAddress: contract,
		StorageSlot:     storageSlot,
		Preimage:        append([]fields.Fr{}, preimage...),
	})
}

// Nullify removes the first pending note of contract matching slot and
// preimage. If there is none the note lives in the database, and it is hidden
// from later queries instead.
func (p *PendingNotes) Nullify(contract rollup.Address, nullified rollup.NewNullifierData) {
	p.mu.Lock()
	defer p.mu.Unlock()

	notes := p.created[contract]
	for i, n := range notes {
		if sameNote(n.StorageSlot, n.Preimage, nullified.StorageSlot, nullified.Preimage) {
			p.created[contract] = append(notes[:i:i], notes[i+1:]...)
			return
		}
	}
	p.nullified[contract] = append(p.nullified[contract], nullified)
}

// Affects reports whether the pending state changes the result of a query
// on the given slot of contract.
func (p *PendingNotes) Affects(contract rollup.Address, storageSlot fields.Fr) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, n := range p.created[contract] {
		if n.StorageSlot == storageSlot {
			return true
		}
	}
	for _, n := range p.nullified[contract] {
		if n.StorageSlot == storageSlot {
			return true
		}
	}
	return false
}

// Merge combines persisted notes returned by the database with the pending
// notes of the query's slot, drops nullified ones, then sorts and pages the
// result as the query asks. persisted must hold the first Offset+Limit notes
// of the database in query order.
func (p *PendingNotes) Merge(query rollup.NoteQuery, persisted []rollup.NoteData) []rollup.NoteData {
	p.mu.Lock()
	defer p.mu.Unlock()

	nullified := p.nullified[query.ContractAddress]
	notes := make([]rollup.NoteData, 0, len(persisted))
	for _, n := range persisted {
		if !isNullified(n, nullified) {
			notes = append(notes, n)
		}
	}
	for _, n := range p.created[query.ContractAddress] {
		if n.StorageSlot == query.StorageSlot {
			n.Preimage = append([]fields.Fr{}, n.Preimage...)
			notes = append(notes, n)
		}
	}

	sortNotes(notes, query.SortBy, query.SortOrder)

	if int(query.Offset) >= len(notes) {
		return []rollup.NoteData{}
	}
	notes = notes[query.Offset:]
	if query.Limit > 0 && int(query.Limit) < len(notes) {
		notes = notes[:query.Limit]
	}
	return notes
}

func isNullified(n rollup.NoteData, nullified []rollup.NewNullifierData) bool {
	for _, x := range nullified {
		if sameNote(n.StorageSlot, n.Preimage, x.StorageSlot, x.Preimage) {
			return true
		}
	}
	return false
}

func sameNote(slotA fields.Fr, preimageA []fields.Fr, slotB fields.Fr, preimageB []fields.Fr) bool {
	if slotA != slotB || len(preimageA) != len(preimageB) {
		return false
	}
	for i := range preimageA {
		if preimageA[i] != preimageB[i] {
			return false
		}
	}
	return true
}

// sortNotes orders notes by the preimage fields in sortBy, most significant
// first. Fields with SortOrderNone are ignored and ties keep their order.
func sortNotes(notes []rollup.NoteData, sortBy []uint32, order []rollup.SortOrder) {
	sort.SliceStable(notes, func(i, j int) bool {
		for k, index := range sortBy {
			if k >= len(order) || order[k] == rollup.SortOrderNone {
				continue
			}
			c := preimageField(notes[i], index).BigInt().Cmp(preimageField(notes[j], index).BigInt())
			if c == 0 {
				continue
			}
			if order[k] == rollup.SortOrderAsc {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func preimageField(n rollup.NoteData, index uint32) fields.Fr {
	if int(index) >= len(n.Preimage) {
		return fields.Zero
	}
	return n.Preimage[index]
}
