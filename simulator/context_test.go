package simulator_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/errors"
	"github.com/zkrollup/pxe/simulator/mock"
	"github.com/zkrollup/pxe/utils/unittest"
)

// countingSolver counts the circuits it solves before handing them on.
type countingSolver struct {
	acvm.Solver
	solved int
}

func (s *countingSolver) Execute(
	ctx context.Context,
	bytecode []byte,
	initial acvm.WitnessMap,
	handler acvm.ForeignCallHandler,
) (*acvm.SolvedCircuit, error) {
	s.solved++
	return s.Solver.Execute(ctx, bytecode, initial, handler)
}

func TestContext(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		ctx := simulator.NewContext(unittest.Logger())

		assert.Equal(t, rollup.MaxPrivateCallDepth, ctx.MaxCallDepth)
		assert.Equal(t, simulator.DefaultFunctionCacheSize, ctx.FunctionCacheSize)
		assert.IsType(t, &acvm.Interpreter{}, ctx.Solver)
		assert.NotNil(t, ctx.Randomness)
		assert.NotNil(t, ctx.Curve)
		assert.NotNil(t, ctx.Metrics)
		assert.NotNil(t, ctx.Tracer)
		assert.NotNil(t, ctx.ReturnDecoder)
	})

	t.Run("child contexts inherit the parent's options", func(t *testing.T) {
		parent := simulator.NewContext(unittest.Logger(), simulator.WithMaxCallDepth(3))
		child := simulator.NewContextFromParent(parent, simulator.WithFunctionCacheSize(5))

		assert.Equal(t, 3, child.MaxCallDepth)
		assert.Equal(t, 5, child.FunctionCacheSize)
		assert.Equal(t, simulator.DefaultFunctionCacheSize, parent.FunctionCacheSize)
	})

	t.Run("the artifact cache must have room", func(t *testing.T) {
		ctx := simulator.NewContext(unittest.Logger(), simulator.WithFunctionCacheSize(0))
		_, err := simulator.NewSimulator(ctx, mock.NewDBOracle(t))
		require.Error(t, err)
	})

	t.Run("custom solver", func(t *testing.T) {
		solver := &countingSolver{Solver: acvm.NewInterpreter()}
		r := newRunner(t, simulator.WithSolver(solver))

		_, err := r.run(valueFunction(t), fields.NewFr(1))
		require.NoError(t, err)
		assert.Equal(t, 1, solver.solved)
	})

	t.Run("custom return decoder", func(t *testing.T) {
		decoder := func(f *abi.FunctionAbi, values []fields.Fr) ([]any, error) {
			return []any{f.Name, values[0]}, nil
		}
		r := newRunner(t, simulator.WithReturnDecoder(decoder))

		result, err := r.run(valueFunction(t), fields.NewFr(1))
		require.NoError(t, err)
		assert.Equal(t, []any{"value", fields.NewFr(31)}, result.ReturnValues)
	})

	t.Run("return values that cannot be decoded", func(t *testing.T) {
		decoder := func(*abi.FunctionAbi, []fields.Fr) ([]any, error) {
			return nil, fmt.Errorf("bad return type")
		}
		r := newRunner(t, simulator.WithReturnDecoder(decoder))

		_, err := r.run(valueFunction(t), fields.NewFr(1))
		require.Error(t, err)
		assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInvalidPublicOutputsError))
	})
}
