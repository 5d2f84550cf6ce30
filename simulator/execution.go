package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/module/trace"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/errors"
	"github.com/zkrollup/pxe/simulator/oracle"
)

// privateFunctionExecutor runs one private function call: it builds the
// initial witness, solves the circuit against the call's oracles and
// assembles the result.
type privateFunctionExecutor struct {
	sim          *Simulator
	frame        *ClientExecutionContext
	artifact     *abi.FunctionArtifact
	functionData rollup.FunctionData
	argsHash     fields.Fr

	ctx  context.Context
	span otelTrace.Span
	log  zerolog.Logger

	output *ExecutionResult
}

func newPrivateFunctionExecutor(
	ctx context.Context,
	sim *Simulator,
	frame *ClientExecutionContext,
	artifact *abi.FunctionArtifact,
	functionData rollup.FunctionData,
	argsHash fields.Fr,
) *privateFunctionExecutor {
	span, ctx := sim.ctx.Tracer.StartSpanFromContext(ctx, trace.PXEExecutePrivateFunction)
	span.SetAttributes(
		attribute.String("contract", frame.contractAddress.String()),
		attribute.String("selector", functionData.Selector.String()),
		attribute.String("function", artifact.Name),
		attribute.Int("depth", frame.depth),
	)

	log := sim.ctx.Logger.With().
		Str("contract", frame.contractAddress.String()).
		Str("selector", functionData.Selector.String()).
		Str("function", artifact.Name).
		Int("depth", frame.depth).
		Logger()
	frame.log = log

	return &privateFunctionExecutor{
		sim:          sim,
		frame:        frame,
		artifact:     artifact,
		functionData: functionData,
		argsHash:     argsHash,
		ctx:          ctx,
		span:         span,
		log:          log,
	}
}

func (executor *privateFunctionExecutor) Cleanup() {
	executor.span.End()
}

func (executor *privateFunctionExecutor) Output() *ExecutionResult {
	return executor.output
}

// handleError attaches the identity of the call to err. Failures are host
// side bugs and are logged with the step that hit them.
func (executor *privateFunctionExecutor) handleError(
	err error,
	step string,
) error {
	if err == nil {
		return nil
	}

	executor.span.RecordError(err)
	if _, failure := errors.SplitErrorTypes(err); failure != nil {
		executor.log.Err(err).
			Str("step", step).
			Msg("fatal error when executing a private function")
	} else {
		executor.log.Debug().
			Err(err).
			Str("step", step).
			Msg("private function execution failed")
	}

	return errors.NewExecutionFrameError(
		executor.frame.contractAddress,
		executor.functionData.Selector,
		executor.frame.depth,
		err)
}

func (executor *privateFunctionExecutor) Execute() error {
	start := time.Now()
	executor.log.Debug().Msg("executing private function")

	args, err := executor.frame.packedArgs.Unpack(executor.argsHash)
	if err != nil {
		return executor.handleError(err, "unpack arguments")
	}

	initial, err := executor.frame.initialWitness(&executor.artifact.FunctionAbi, args)
	if err != nil {
		return executor.handleError(err, "initial witness")
	}

	solved, err := executor.solve(initial)
	if err != nil {
		return executor.handleError(err, "solve")
	}

	err = executor.assemble(solved)
	if err != nil {
		return executor.handleError(err, "assemble")
	}

	duration := time.Since(start)
	executor.sim.framesExecuted.Inc()
	executor.sim.ctx.Metrics.FunctionExecuted(executor.frame.depth, duration)
	executor.sim.ctx.Metrics.PublicCallsEnqueued(len(executor.output.EnqueuedPublicFunctionCalls))
	executor.sim.ctx.Metrics.LogsEmitted(
		executor.output.EncryptedLogs.SerializedLength(),
		executor.output.UnencryptedLogs.SerializedLength())

	executor.log.Debug().
		Dur("duration", duration).
		Int("new_notes", len(executor.output.Preimages.NewNotes)).
		Int("nullified_notes", len(executor.output.Preimages.NullifiedNotes)).
		Int("nested_executions", len(executor.output.NestedExecutions)).
		Int("enqueued_public_calls", len(executor.output.EnqueuedPublicFunctionCalls)).
		Msg("executed private function")
	return nil
}

func (executor *privateFunctionExecutor) solve(initial acvm.WitnessMap) (*acvm.SolvedCircuit, error) {
	span := executor.sim.ctx.Tracer.StartSpanFromParent(executor.span, trace.PXESolveCircuit)
	defer span.End()

	handler := &instrumentedHandler{
		sim:   executor.sim,
		table: oracle.NewTable(executor.frame),
	}
	return executor.sim.ctx.Solver.Execute(executor.ctx, executor.artifact.Bytecode, initial, handler)
}

func (executor *privateFunctionExecutor) assemble(solved *acvm.SolvedCircuit) error {
	span := executor.sim.ctx.Tracer.StartSpanFromParent(executor.span, trace.PXEAssemblePublicInputs)
	defer span.End()

	output, err := assembleResult(
		executor.frame,
		executor.artifact,
		executor.functionData,
		solved,
		executor.sim.ctx.ReturnDecoder)
	if err != nil {
		return err
	}
	executor.output = output
	return nil
}

// instrumentedHandler traces and measures the oracle calls of one frame.
type instrumentedHandler struct {
	sim   *Simulator
	table *oracle.Table
}

var _ acvm.ForeignCallHandler = (*instrumentedHandler)(nil)

func (h *instrumentedHandler) ForeignCall(ctx context.Context, name string, inputs [][]fields.Fr) ([]fields.Fr, error) {
	span, ctx := h.sim.ctx.Tracer.StartSpanFromContext(ctx, trace.PXEOracleCall)
	span.SetAttributes(attribute.String("oracle", name))
	defer span.End()

	start := time.Now()
	h.sim.oracleCalls.Inc()

	outputs, err := h.table.ForeignCall(ctx, name, inputs)
	if err != nil {
		span.RecordError(err)
		h.sim.ctx.Metrics.OracleFailed(name)
		return nil, err
	}

	h.sim.ctx.Metrics.OracleCalled(name, time.Since(start))
	return outputs, nil
}

// callPrivateFunction resolves and runs a private call made by parent. The
// depth limit is checked before anything is looked up.
func (s *Simulator) callPrivateFunction(
	ctx context.Context,
	parent *ClientExecutionContext,
	target rollup.Address,
	selector rollup.FunctionSelector,
	argsHash fields.Fr,
) (*ExecutionResult, error) {
	depth := parent.depth + 1
	if depth > s.ctx.MaxCallDepth {
		return nil, errors.NewCallDepthExceededError(depth, s.ctx.MaxCallDepth)
	}

	artifact, err := s.functionArtifact(ctx, target, selector)
	if err != nil {
		return nil, err
	}
	if !artifact.IsPrivate() {
		return nil, errors.NewNotPrivateFunctionError(artifact.Name)
	}

	portal, err := s.db.GetPortalContractAddress(ctx, target)
	if err != nil {
		return nil, errors.NewPortalAddressNotFoundError(target, err)
	}

	callContext := rollup.NestedCallContext(parent.callContext, target, portal)
	functionData := rollup.FunctionData{
		Selector:  selector,
		IsPrivate: true,
	}

	return s.execute(ctx, parent.child(target, callContext), artifact, functionData, argsHash)
}

func (s *Simulator) execute(
	ctx context.Context,
	frame *ClientExecutionContext,
	artifact *abi.FunctionArtifact,
	functionData rollup.FunctionData,
	argsHash fields.Fr,
) (*ExecutionResult, error) {
	executor := newPrivateFunctionExecutor(ctx, s, frame, artifact, functionData, argsHash)
	defer executor.Cleanup()

	if err := executor.Execute(); err != nil {
		return nil, err
	}
	return executor.Output(), nil
}

// functionArtifact looks up a function in the contract database, through the
// artifact cache.
func (s *Simulator) functionArtifact(
	ctx context.Context,
	contract rollup.Address,
	selector rollup.FunctionSelector,
) (*abi.FunctionArtifact, error) {
	key := artifactKey{contract: contract, selector: selector}
	if artifact, ok := s.artifacts.Get(key); ok {
		s.ctx.Metrics.FunctionArtifactCacheHit()
		return artifact, nil
	}
	s.ctx.Metrics.FunctionArtifactCacheMiss()

	span, ctx := s.ctx.Tracer.StartSpanFromContext(ctx, trace.PXEResolveFunctionArtifact)
	defer span.End()

	artifact, err := s.db.GetFunctionArtifact(ctx, contract, selector)
	if err == nil && artifact == nil {
		err = fmt.Errorf("contract database returned no artifact")
	}
	if err != nil {
		return nil, errors.NewFunctionArtifactNotFoundError(contract, selector, err)
	}
	s.artifacts.Add(key, artifact)
	return artifact, nil
}
