// Package simulator executes the private functions of a transaction. It runs
// each function's circuit against the oracles of its call, recursing into
// nested private calls, and records everything the calls did as a tree of
// ExecutionResults.
package simulator

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"

	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/module/trace"
	"github.com/zkrollup/pxe/simulator/errors"
)

type artifactKey struct {
	contract rollup.Address
	selector rollup.FunctionSelector
}

// Simulator runs private function calls against a contract database.
type Simulator struct {
	ctx       Context
	db        DBOracle
	artifacts *lru.Cache[artifactKey, *abi.FunctionArtifact]

	framesExecuted *atomic.Uint64
	oracleCalls    *atomic.Uint64
}

// NewSimulator creates a simulator reading from db.
func NewSimulator(ctx Context, db DBOracle) (*Simulator, error) {
	artifacts, err := lru.New[artifactKey, *abi.FunctionArtifact](ctx.FunctionCacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create function artifact cache: %w", err)
	}

	return &Simulator{
		ctx:            ctx,
		db:             db,
		artifacts:      artifacts,
		framesExecuted: atomic.NewUint64(0),
		oracleCalls:    atomic.NewUint64(0),
	}, nil
}

// Stats are running totals over every simulation of a Simulator.
type Stats struct {
	FramesExecuted uint64
	OracleCalls    uint64
}

func (s *Simulator) Stats() Stats {
	return Stats{
		FramesExecuted: s.framesExecuted.Load(),
		OracleCalls:    s.oracleCalls.Load(),
	}
}

// Run executes the entrypoint of request, deployed at contractAddress, and
// every private call it makes. Any error aborts the whole call tree and is
// returned as a SimulationFailedError; no partial result is returned.
func (s *Simulator) Run(
	ctx context.Context,
	request rollup.TxExecutionRequest,
	artifact *abi.FunctionArtifact,
	contractAddress rollup.Address,
	portalContractAddress rollup.EthAddress,
	historicRoots rollup.HistoricTreeRoots,
) (*ExecutionResult, error) {
	if artifact == nil {
		return nil, errors.NewSimulationFailedError(errors.NewFunctionArtifactNotFoundError(
			contractAddress,
			request.FunctionData.Selector,
			fmt.Errorf("no artifact given for the entrypoint")))
	}

	start := time.Now()

	span, ctx := s.ctx.Tracer.StartSpanFromContext(ctx, trace.PXERunTransaction)
	span.SetAttributes(
		attribute.String("origin", request.Origin.String()),
		attribute.String("contract", contractAddress.String()),
		attribute.String("function", artifact.Name),
	)
	defer span.End()

	result, err := s.run(ctx, request, artifact, contractAddress, portalContractAddress, historicRoots)
	s.ctx.Metrics.TransactionSimulated(time.Since(start), err != nil)
	if err != nil {
		span.RecordError(err)
		if errors.IsFailure(err) {
			s.ctx.Logger.Err(err).
				Str("contract", contractAddress.String()).
				Str("function", artifact.Name).
				Msg("fatal error when simulating a transaction")
		}
		return nil, errors.NewSimulationFailedError(err)
	}

	s.ctx.Logger.Debug().
		Str("contract", contractAddress.String()).
		Str("function", artifact.Name).
		Int("enqueued_public_calls", len(result.AllEnqueuedPublicFunctionCalls())).
		Int("encrypted_logs", len(result.AllEncryptedLogs())).
		Dur("duration", time.Since(start)).
		Msg("simulated transaction")
	return result, nil
}

func (s *Simulator) run(
	ctx context.Context,
	request rollup.TxExecutionRequest,
	artifact *abi.FunctionArtifact,
	contractAddress rollup.Address,
	portalContractAddress rollup.EthAddress,
	historicRoots rollup.HistoricTreeRoots,
) (*ExecutionResult, error) {
	if !artifact.IsPrivate() {
		return nil, errors.NewNotPrivateFunctionError(artifact.Name)
	}

	packedArgs, err := NewPackedArgsCache(request.PackedArguments)
	if err != nil {
		return nil, err
	}

	callContext := rollup.CallContext{
		MsgSender:              request.Origin,
		StorageContractAddress: contractAddress,
		PortalContractAddress:  portalContractAddress,
		IsContractDeployment:   request.FunctionData.IsConstructor,
	}
	frame := newClientExecutionContext(
		s,
		packedArgs,
		NewPendingNotes(),
		request.TxContext,
		historicRoots,
		contractAddress,
		callContext,
		0)

	return s.execute(ctx, frame, artifact, request.FunctionData, request.ArgsHash)
}
