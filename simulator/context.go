package simulator

import (
	"crypto/rand"
	"io"

	"github.com/rs/zerolog"

	"github.com/zkrollup/pxe/crypto/encryption"
	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/module"
	"github.com/zkrollup/pxe/module/metrics"
	"github.com/zkrollup/pxe/module/trace"
	"github.com/zkrollup/pxe/simulator/acvm"
)

const DefaultFunctionCacheSize = 256

// A Context defines a set of execution parameters used by the simulator.
type Context struct {
	Logger zerolog.Logger

	Solver acvm.Solver
	// MaxCallDepth is the deepest nested private call allowed; the
	// entrypoint runs at depth 0.
	MaxCallDepth int
	// Randomness feeds getRandomField and the ephemeral keys of encrypted
	// logs.
	Randomness io.Reader
	Curve      *encryption.Curve

	Metrics module.PrivateExecutionMetrics
	Tracer  module.Tracer

	ReturnDecoder     abi.ReturnDecoder
	FunctionCacheSize int
}

// NewContext initializes a new execution context with the provided options.
func NewContext(logger zerolog.Logger, opts ...Option) Context {
	return newContext(defaultContext(logger), opts...)
}

// NewContextFromParent spawns a child execution context with the provided options.
func NewContextFromParent(parent Context, opts ...Option) Context {
	return newContext(parent, opts...)
}

func newContext(ctx Context, opts ...Option) Context {
	for _, applyOption := range opts {
		ctx = applyOption(ctx)
	}

	return ctx
}

func defaultContext(logger zerolog.Logger) Context {
	return Context{
		Logger:            logger,
		Solver:            acvm.NewInterpreter(),
		MaxCallDepth:      rollup.MaxPrivateCallDepth,
		Randomness:        rand.Reader,
		Curve:             encryption.NewCurve(),
		Metrics:           metrics.NewNoopCollector(),
		Tracer:            trace.NewNoopTracer(),
		ReturnDecoder:     abi.DecodeReturnValues,
		FunctionCacheSize: DefaultFunctionCacheSize,
	}
}

// An Option sets a configuration parameter for a simulator context.
type Option func(ctx Context) Context

// WithLogger sets the context logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(ctx Context) Context {
		ctx.Logger = logger
		return ctx
	}
}

// WithSolver sets the witness solver that runs function bytecode.
func WithSolver(solver acvm.Solver) Option {
	return func(ctx Context) Context {
		ctx.Solver = solver
		return ctx
	}
}

// WithMaxCallDepth sets the deepest nested private call allowed.
func WithMaxCallDepth(depth int) Option {
	return func(ctx Context) Context {
		ctx.MaxCallDepth = depth
		return ctx
	}
}

// WithRandomness sets the randomness source.
func WithRandomness(r io.Reader) Option {
	return func(ctx Context) Context {
		ctx.Randomness = r
		return ctx
	}
}

// WithCurve sets the curve encrypted logs are encrypted on.
func WithCurve(curve *encryption.Curve) Option {
	return func(ctx Context) Context {
		ctx.Curve = curve
		return ctx
	}
}

func WithMetrics(m module.PrivateExecutionMetrics) Option {
	return func(ctx Context) Context {
		ctx.Metrics = m
		return ctx
	}
}

func WithTracer(tr module.Tracer) Option {
	return func(ctx Context) Context {
		ctx.Tracer = tr
		return ctx
	}
}

// WithReturnDecoder sets the decoder of function return values.
func WithReturnDecoder(decoder abi.ReturnDecoder) Option {
	return func(ctx Context) Context {
		ctx.ReturnDecoder = decoder
		return ctx
	}
}

// WithFunctionCacheSize sets the number of function artifacts kept in memory.
func WithFunctionCacheSize(size int) Option {
	return func(ctx Context) Context {
		ctx.FunctionCacheSize = size
		return ctx
	}
}
