package acvm_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/errors"
)

func noForeignCalls(t *testing.T) acvm.ForeignCallHandler {
	return acvm.ForeignCallHandlerFunc(func(context.Context, string, [][]fields.Fr) ([]fields.Fr, error) {
		t.Fatal("unexpected foreign call")
		return nil, nil
	})
}

func TestInterpreter(t *testing.T) {
	ctx := context.Background()
	solver := acvm.NewInterpreter()

	t.Run("solves arithmetic", func(t *testing.T) {
		b := acvm.NewBuilder(2)
		sum := b.Add(b.Input(0), b.Input(1))
		product := b.Mul(sum, b.Input(1))
		seven := b.Constant(fields.NewFr(7))
		b.Return(sum, product, seven)

		bytecode, err := b.Compile()
		require.NoError(t, err)

		solved, err := solver.Execute(ctx, bytecode, acvm.ToACVMWitness(1, fields.FrsFromUint64s(3, 4)), noForeignCalls(t))
		require.NoError(t, err)
		require.Equal(t, fields.FrsFromUint64s(7, 28, 7), solved.PublicOutputs)
		require.Equal(t, fields.NewFr(3), solved.Witness[1])
	})

	t.Run("initial witness is not mutated", func(t *testing.T) {
		b := acvm.NewBuilder(1)
		b.Return(b.Add(b.Input(0), b.Input(0)))
		bytecode, err := b.Compile()
		require.NoError(t, err)

		initial := acvm.ToACVMWitness(1, fields.FrsFromUint64s(5))
		_, err = solver.Execute(ctx, bytecode, initial, noForeignCalls(t))
		require.NoError(t, err)
		require.Len(t, initial, 1)
	})

	t.Run("unsatisfied constraint", func(t *testing.T) {
		b := acvm.NewBuilder(2)
		b.AssertEqual(b.Input(0), b.Input(1))
		bytecode, err := b.Compile()
		require.NoError(t, err)

		_, err = solver.Execute(ctx, bytecode, acvm.ToACVMWitness(1, fields.FrsFromUint64s(1, 2)), noForeignCalls(t))
		require.True(t, errors.IsUnsatisfiedConstraintError(err))
	})

	t.Run("unsolvable opcode", func(t *testing.T) {
		b := acvm.NewBuilder(0)
		x, y := b.NewWitness(), b.NewWitness()
		b.AssertZero(acvm.Expression{MulTerms: []acvm.MulTerm{{Q: fields.One, L: x, R: y}}})
		bytecode, err := b.Compile()
		require.NoError(t, err)

		_, err = solver.Execute(ctx, bytecode, acvm.WitnessMap{}, noForeignCalls(t))
		require.True(t, errors.HasErrorCode(err, errors.ErrCodeUnsolvableOpcodeError))
	})

	t.Run("malformed bytecode", func(t *testing.T) {
		_, err := solver.Execute(ctx, []byte{0xff, 0x00}, acvm.WitnessMap{}, noForeignCalls(t))
		require.True(t, errors.HasErrorCode(err, errors.ErrCodeMalformedBytecodeError))
	})

	t.Run("foreign calls run in order", func(t *testing.T) {
		b := acvm.NewBuilder(1)
		first := b.ForeignCall("double", [][]acvm.Expression{acvm.Ws(b.Input(0))}, 1)
		second := b.ForeignCall("double", [][]acvm.Expression{acvm.Ws(first[0]), acvm.Consts(fields.NewFr(9))}, 1)
		b.Return(second...)
		bytecode, err := b.Compile()
		require.NoError(t, err)

		var calls [][][]fields.Fr
		handler := acvm.ForeignCallHandlerFunc(func(_ context.Context, name string, inputs [][]fields.Fr) ([]fields.Fr, error) {
			require.Equal(t, "double", name)
			calls = append(calls, inputs)
			return []fields.Fr{inputs[0][0].Add(inputs[0][0])}, nil
		})

		solved, err := solver.Execute(ctx, bytecode, acvm.ToACVMWitness(1, fields.FrsFromUint64s(3)), handler)
		require.NoError(t, err)
		require.Equal(t, fields.FrsFromUint64s(12), solved.PublicOutputs)
		require.Equal(t, [][][]fields.Fr{
			{fields.FrsFromUint64s(3)},
			{fields.FrsFromUint64s(6), fields.FrsFromUint64s(9)},
		}, calls)
	})

	t.Run("foreign call output count must match", func(t *testing.T) {
		b := acvm.NewBuilder(0)
		b.ForeignCall("two", nil, 2)
		bytecode, err := b.Compile()
		require.NoError(t, err)

		handler := acvm.ForeignCallHandlerFunc(func(context.Context, string, [][]fields.Fr) ([]fields.Fr, error) {
			return fields.FrsFromUint64s(1), nil
		})
		_, err = solver.Execute(ctx, bytecode, acvm.WitnessMap{}, handler)
		require.True(t, errors.HasErrorCode(err, errors.ErrCodeMalformedOracleOutputsError))
	})

	t.Run("foreign call errors propagate", func(t *testing.T) {
		b := acvm.NewBuilder(0)
		b.ForeignCall("boom", nil, 1)
		b.ForeignCall("never", nil, 1)
		bytecode, err := b.Compile()
		require.NoError(t, err)

		cause := errors.NewPackedArgumentsNotFoundError(fields.NewFr(1))
		calls := 0
		handler := acvm.ForeignCallHandlerFunc(func(context.Context, string, [][]fields.Fr) ([]fields.Fr, error) {
			calls++
			return nil, fmt.Errorf("handler: %w", cause)
		})
		_, err = solver.Execute(ctx, bytecode, acvm.WitnessMap{}, handler)
		require.ErrorIs(t, err, cause)
		require.Equal(t, 1, calls)
	})

	t.Run("unassigned return witness", func(t *testing.T) {
		b := acvm.NewBuilder(0)
		b.Return(b.NewWitness())
		bytecode, err := b.Compile()
		require.NoError(t, err)

		_, err = solver.Execute(ctx, bytecode, acvm.WitnessMap{}, noForeignCalls(t))
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		b := acvm.NewBuilder(0)
		b.Constant(fields.One)
		bytecode, err := b.Compile()
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = solver.Execute(cancelled, bytecode, acvm.WitnessMap{}, noForeignCalls(t))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCircuitEncoding(t *testing.T) {
	b := acvm.NewBuilder(3)
	b.ForeignCall("f", [][]acvm.Expression{acvm.Ws(b.Input(0), b.Input(2)), {acvm.Const(fields.NewFr(5))}}, 2)
	b.Return(b.Input(1))
	circuit := b.Circuit()

	bytecode, err := circuit.Encode()
	require.NoError(t, err)

	decoded, err := acvm.DecodeCircuit(bytecode)
	require.NoError(t, err)
	require.Equal(t, circuit, decoded)

	again, err := decoded.Encode()
	require.NoError(t, err)
	require.Equal(t, bytecode, again)

	// an opcode that is neither arithmetic nor a foreign call
	bad, err := (&acvm.Circuit{Opcodes: []acvm.Opcode{{}}}).Encode()
	require.NoError(t, err)
	_, err = acvm.DecodeCircuit(bad)
	require.Error(t, err)
}
