// Package acvm is the boundary between the execution engine and the circuit
// witness solver. The engine hands the solver bytecode, an initial witness and
// a ForeignCallHandler; the solver calls back into the handler whenever the
// circuit needs a value it cannot compute itself.
package acvm

import (
	"context"

	"github.com/zkrollup/pxe/model/fields"
)

// Witness indexes a circuit wire. Index 0 is reserved.
type Witness uint32

// WitnessMap is a (partial) assignment of wires.
type WitnessMap map[Witness]fields.Fr

// ToACVMWitness assigns values to consecutive witnesses starting at start.
func ToACVMWitness(start Witness, values []fields.Fr) WitnessMap {
	m := make(WitnessMap, len(values))
	for i, v := range values {
		m[start+Witness(i)] = v
	}
	return m
}

// Copy returns a shallow copy of m.
func (m WitnessMap) Copy() WitnessMap {
	res := make(WitnessMap, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}

// ForeignCallHandler resolves the foreign calls a circuit makes. Each input is
// a vector of fields; single values are vectors of length one.
type ForeignCallHandler interface {
	ForeignCall(ctx context.Context, name string, inputs [][]fields.Fr) ([]fields.Fr, error)
}

// ForeignCallHandlerFunc adapts a function to ForeignCallHandler.
type ForeignCallHandlerFunc func(ctx context.Context, name string, inputs [][]fields.Fr) ([]fields.Fr, error)

func (f ForeignCallHandlerFunc) ForeignCall(ctx context.Context, name string, inputs [][]fields.Fr) ([]fields.Fr, error) {
	return f(ctx, name, inputs)
}

// SolvedCircuit is the result of a successful solve.
type SolvedCircuit struct {
	// Witness is the partial witness after solving.
	Witness WitnessMap
	// PublicOutputs are the values of the circuit's return witnesses, in order.
	PublicOutputs []fields.Fr
}

// Solver executes circuit bytecode. Foreign calls are issued one at a time, in
// opcode order, and solving does not resume until the handler returns.
type Solver interface {
	Execute(ctx context.Context, bytecode []byte, initial WitnessMap, handler ForeignCallHandler) (*SolvedCircuit, error)
}
