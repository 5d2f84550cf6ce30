package simulator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator"
	"github.com/zkrollup/pxe/utils/unittest"
)

func TestPendingNotes(t *testing.T) {
	contract := unittest.AddressFixture()
	slot := fields.NewFr(5)
	query := rollup.NoteQuery{ContractAddress: contract, StorageSlot: slot}

	persisted := func(values ...uint64) []rollup.NoteData {
		notes := make([]rollup.NoteData, len(values))
		for i, v := range values {
			notes[i] = rollup.NoteData{
				ContractAddress: contract,
				StorageSlot:     slot,
				Nonce:           fields.NewFr(1000 + v),
				Preimage:        fields.FrsFromUint64s(v),
			}
		}
		return notes
	}
	values := func(notes []rollup.NoteData) []uint64 {
		out := make([]uint64, len(notes))
		for i, n := range notes {
			v, err := n.Preimage[0].Uint64()
			require.NoError(t, err)
			out[i] = v
		}
		return out
	}

	t.Run("pending notes follow persisted ones", func(t *testing.T) {
		pending := simulator.NewPendingNotes()
		assert.False(t, pending.Affects(contract, slot))

		pending.Add(contract, slot, fields.FrsFromUint64s(7))
		pending.Add(contract, fields.NewFr(6), fields.FrsFromUint64s(8))
		assert.True(t, pending.Affects(contract, slot))

		merged := pending.Merge(query, persisted(3))
		assert.Equal(t, []uint64{3, 7}, values(merged))
		assert.Equal(t, fields.Zero, merged[1].Nonce)
		assert.Equal(t, contract, merged[1].ContractAddress)
	})

	t.Run("notes of other contracts are not visible", func(t *testing.T) {
		pending := simulator.NewPendingNotes()
		other := unittest.AddressFixture()
		pending.Add(other, slot, fields.FrsFromUint64s(7))

		assert.False(t, pending.Affects(contract, slot))
		assert.Empty(t, pending.Merge(query, nil))
	})

	t.Run("nullifying a pending note removes it", func(t *testing.T) {
		pending := simulator.NewPendingNotes()
		pending.Add(contract, slot, fields.FrsFromUint64s(7))
		pending.Add(contract, slot, fields.FrsFromUint64s(7))

		pending.Nullify(contract, rollup.NewNullifierData{StorageSlot: slot, Preimage: fields.FrsFromUint64s(7)})
		assert.Equal(t, []uint64{7}, values(pending.Merge(query, nil)))

		pending.Nullify(contract, rollup.NewNullifierData{StorageSlot: slot, Preimage: fields.FrsFromUint64s(7)})
		assert.Empty(t, pending.Merge(query, nil))
		assert.False(t, pending.Affects(contract, slot))
	})

	t.Run("nullified persisted notes are hidden", func(t *testing.T) {
		pending := simulator.NewPendingNotes()
		pending.Nullify(contract, rollup.NewNullifierData{StorageSlot: slot, Preimage: fields.FrsFromUint64s(4)})
		assert.True(t, pending.Affects(contract, slot))

		assert.Equal(t, []uint64{3, 5}, values(pending.Merge(query, persisted(3, 4, 5))))
	})

	t.Run("sorted and paged after merging", func(t *testing.T) {
		pending := simulator.NewPendingNotes()
		pending.Add(contract, slot, fields.FrsFromUint64s(6))
		pending.Add(contract, slot, fields.FrsFromUint64s(1))

		sorted := query
		sorted.SortBy = []uint32{0}
		sorted.SortOrder = []rollup.SortOrder{rollup.SortOrderDesc}
		assert.Equal(t, []uint64{9, 6, 4, 1}, values(pending.Merge(sorted, persisted(9, 4))))

		sorted.SortOrder = []rollup.SortOrder{rollup.SortOrderAsc}
		sorted.Offset = 1
		sorted.Limit = 2
		assert.Equal(t, []uint64{4, 6}, values(pending.Merge(sorted, persisted(4, 9))))

		sorted.Offset = 10
		merged := pending.Merge(sorted, persisted(4, 9))
		assert.NotNil(t, merged)
		assert.Empty(t, merged)
	})
}

func TestPendingNotesInExecution(t *testing.T) {
	slot := fields.NewFr(5)
	const amount = 100

	t.Run("insert, read and nullify in one call", func(t *testing.T) {
		r := newRunner(t)
		r.db.On("GetNotes", testifymock.Anything, testifymock.Anything).Return([]rollup.NoteData{}, nil)

		c := newFunctionCircuit(1)
		before := c.GetNotes(slot, 1, 3)
		c.CreateNote(slot, c.Arg(0))
		read := c.GetNotes(slot, 1, 3)
		c.NullifyNote(slot, fields.NewFr(77), read[2])
		after := c.GetNotes(slot, 1, 3)
		c.SetReturn(0, before[0])
		c.SetReturn(1, read[0])
		c.SetReturn(2, read[2])
		c.SetReturn(3, after[0])
		artifact := secretFunction(t, "insertThenGetThenNullify", 1, c)

		result, err := r.run(artifact, fields.NewFr(amount))
		require.NoError(t, err)

		returned := result.CallStackItem.PublicInputs.ReturnValues
		assert.Equal(t, fields.Zero, returned[0], "a note is not visible before it is created")
		assert.Equal(t, fields.One, returned[1])
		assert.Equal(t, fields.NewFr(amount), returned[2])
		assert.Equal(t, fields.Zero, returned[3], "a nullified note is not visible")

		assert.Equal(t, []rollup.NewNoteData{
			{StorageSlot: slot, Preimage: fields.FrsFromUint64s(amount)},
		}, result.Preimages.NewNotes)
		assert.Equal(t, []rollup.NewNullifierData{
			{StorageSlot: slot, Nullifier: fields.NewFr(77), Preimage: fields.FrsFromUint64s(amount)},
		}, result.Preimages.NullifiedNotes)

		r.db.AssertNumberOfCalls(t, "GetNotes", 3)
		r.db.AssertCalled(t, "GetNotes", testifymock.Anything, rollup.NoteQuery{
			ContractAddress: r.contract,
			StorageSlot:     slot,
			SortBy:          []uint32{},
			SortOrder:       []rollup.SortOrder{},
			Limit:           1,
		})
	})

	t.Run("insert, read and nullify in nested calls", func(t *testing.T) {
		r := newRunner(t)
		r.db.On("GetNotes", testifymock.Anything, testifymock.Anything).Return([]rollup.NoteData{}, nil)

		ic := newFunctionCircuit(1)
		ic.CreateNote(slot, ic.Arg(0))
		insert := secretFunction(t, "insertNote", 1, ic)

		gc := newFunctionCircuit(0)
		got := gc.GetNotes(slot, 1, 3)
		gc.NullifyNote(slot, fields.NewFr(77), got[2])
		gc.SetReturn(0, got[2])
		getThenNullify := secretFunction(t, "getThenNullifyNote", 0, gc)

		zc := newFunctionCircuit(0)
		zero := zc.GetNotes(slot, 1, 3)
		zc.SetReturn(0, zero[2])
		getZero := secretFunction(t, "getNoteZeroBalance", 0, zc)

		r.deploy(r.contract, insert, rollup.EthAddress{})
		r.deploy(r.contract, getThenNullify, rollup.EthAddress{})
		r.deploy(r.contract, getZero, rollup.EthAddress{})

		c := newFunctionCircuit(1)
		c.CallPrivate(r.contract, insert.Selector(), c.Arg(0))
		read := c.CallPrivate(r.contract, getThenNullify.Selector())
		afterNullify := c.CallPrivate(r.contract, getZero.Selector())
		c.SetReturn(0, read[itemReturnValuesOffset])
		c.SetReturn(1, afterNullify[itemReturnValuesOffset])
		parent := secretFunction(t, "insertThenGetThenNullifyInNestedCalls", 1, c)

		result, err := r.run(parent, fields.NewFr(amount))
		require.NoError(t, err)

		returned := result.CallStackItem.PublicInputs.ReturnValues
		assert.Equal(t, fields.NewFr(amount), returned[0])
		assert.Equal(t, fields.Zero, returned[1])

		// the per-call preimage lists stay with the call that made them
		assert.Empty(t, result.Preimages.NewNotes)
		assert.Empty(t, result.Preimages.NullifiedNotes)
		require.Len(t, result.NestedExecutions, 3)
		assert.Equal(t, []rollup.NewNoteData{
			{StorageSlot: slot, Preimage: fields.FrsFromUint64s(amount)},
		}, result.NestedExecutions[0].Preimages.NewNotes)
		assert.Equal(t, []rollup.NewNullifierData{
			{StorageSlot: slot, Nullifier: fields.NewFr(77), Preimage: fields.FrsFromUint64s(amount)},
		}, result.NestedExecutions[1].Preimages.NullifiedNotes)
		assert.Empty(t, result.NestedExecutions[2].Preimages.NewNotes)
		assert.Empty(t, result.NestedExecutions[2].Preimages.NullifiedNotes)
	})

	t.Run("pending notes are merged with the database", func(t *testing.T) {
		r := newRunner(t)
		stored := []rollup.NoteData{unittest.NoteDataFixture(r.contract, slot, 1)}
		r.db.On("GetNotes", testifymock.Anything, testifymock.Anything).Return(stored, nil)

		c := newFunctionCircuit(1)
		c.CreateNote(slot, c.Arg(0))
		out := c.GetNotes(slot, 2, 5)
		c.SetReturn(0, out[0])
		c.SetReturn(1, out[2])
		c.SetReturn(2, out[4])
		artifact := secretFunction(t, "readBoth", 1, c)

		result, err := r.run(artifact, fields.NewFr(amount))
		require.NoError(t, err)

		returned := result.CallStackItem.PublicInputs.ReturnValues
		assert.Equal(t, fields.NewFr(2), returned[0])
		assert.Equal(t, stored[0].Preimage[0], returned[1])
		assert.Equal(t, fields.NewFr(amount), returned[2])
	})
}
