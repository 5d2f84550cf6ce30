package simulator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/module/trace"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/errors"
	"github.com/zkrollup/pxe/simulator/oracle"
)

const unconstrainedMode = "unconstrained"

// viewOracle serves the oracles of an unconstrained function. Reads go to
// the wrapped context, oracles with side effects are refused.
type viewOracle struct {
	*ClientExecutionContext
}

var _ oracle.TypedOracle = viewOracle{}

func notAllowed(kind oracle.Kind) error {
	return errors.NewOracleNotAllowedError(kind.WireName(), unconstrainedMode)
}

func (viewOracle) NotifyCreatedNote(context.Context, fields.Fr, []fields.Fr) error {
	return notAllowed(oracle.KindNotifyCreatedNote)
}

func (viewOracle) NotifyNullifiedNote(context.Context, fields.Fr, fields.Fr, []fields.Fr) error {
	return notAllowed(oracle.KindNotifyNullifiedNote)
}

func (viewOracle) CallPrivateFunction(
	context.Context,
	rollup.Address,
	rollup.FunctionSelector,
	fields.Fr,
) (*rollup.PrivateCallStackItem, error) {
	return nil, notAllowed(oracle.KindCallPrivateFunction)
}

func (viewOracle) EnqueuePublicFunctionCall(
	context.Context,
	rollup.Address,
	rollup.FunctionSelector,
	fields.Fr,
) (*rollup.PublicCallRequest, error) {
	return nil, notAllowed(oracle.KindEnqueuePublicFunctionCall)
}

func (viewOracle) EmitUnencryptedLog(context.Context, []byte) error {
	return notAllowed(oracle.KindEmitUnencryptedLog)
}

func (viewOracle) EmitEncryptedLog(context.Context, rollup.Address, fields.Fr, fields.Point, []fields.Fr) error {
	return notAllowed(oracle.KindEmitEncryptedLog)
}

// RunUnconstrained executes an unconstrained (view) function of
// contractAddress and returns its decoded return values. The function reads
// notes, keys and tree data through the same oracles as a private call, but
// it can neither change state nor call other functions, and no proof inputs
// are produced.
//
// The initial witness holds the arguments only, and the circuit's public
// outputs are the return values.
func (s *Simulator) RunUnconstrained(
	ctx context.Context,
	artifact *abi.FunctionArtifact,
	contractAddress rollup.Address,
	args []fields.Fr,
	historicRoots rollup.HistoricTreeRoots,
) ([]any, error) {
	if artifact == nil {
		return nil, errors.NewSimulationFailedError(errors.NewFunctionArtifactNotFoundError(
			contractAddress,
			rollup.FunctionSelector{},
			fmt.Errorf("no artifact given for the view function")))
	}

	span, ctx := s.ctx.Tracer.StartSpanFromContext(ctx, trace.PXERunUnconstrained)
	span.SetAttributes(
		attribute.String("contract", contractAddress.String()),
		attribute.String("function", artifact.Name),
	)
	defer span.End()

	values, err := s.runUnconstrained(ctx, artifact, contractAddress, args, historicRoots)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewSimulationFailedError(errors.NewExecutionFrameError(
			contractAddress,
			artifact.Selector(),
			0,
			err))
	}
	return values, nil
}

func (s *Simulator) runUnconstrained(
	ctx context.Context,
	artifact *abi.FunctionArtifact,
	contractAddress rollup.Address,
	args []fields.Fr,
	historicRoots rollup.HistoricTreeRoots,
) ([]any, error) {
	if artifact.FunctionType != abi.FunctionTypeUnconstrained {
		return nil, errors.NewNotUnconstrainedFunctionError(artifact.Name)
	}
	if expected := abi.CountArgumentsSize(&artifact.FunctionAbi); len(args) != expected {
		return nil, errors.NewInvalidArgumentsSizeError(expected, len(args))
	}

	packedArgs, err := NewPackedArgsCache(nil)
	if err != nil {
		return nil, err
	}
	frame := newClientExecutionContext(
		s,
		packedArgs,
		NewPendingNotes(),
		rollup.TxContext{},
		historicRoots,
		contractAddress,
		rollup.CallContext{StorageContractAddress: contractAddress},
		0)
	frame.log = s.ctx.Logger.With().
		Str("contract", contractAddress.String()).
		Str("function", artifact.Name).
		Logger()

	handler := &instrumentedHandler{
		sim:   s,
		table: oracle.NewTable(viewOracle{frame}),
	}
	initial := acvm.ToACVMWitness(initialWitnessStart, args)
	solved, err := s.ctx.Solver.Execute(ctx, artifact.Bytecode, initial, handler)
	if err != nil {
		return nil, err
	}

	values, err := s.ctx.ReturnDecoder(&artifact.FunctionAbi, solved.PublicOutputs)
	if err != nil {
		return nil, errors.NewInvalidPublicOutputsError(fmt.Errorf("could not decode return values: %w", err))
	}
	return values, nil
}
