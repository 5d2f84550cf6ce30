package acvm

import (
	"context"
	"fmt"

	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/simulator/errors"
)

// Interpreter is a reference Solver for circuits encoded with Circuit.Encode.
// Opcodes are solved strictly in order.
type Interpreter struct{}

var _ Solver = (*Interpreter)(nil)

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Execute(
	ctx context.Context,
	bytecode []byte,
	initial WitnessMap,
	handler ForeignCallHandler,
) (*SolvedCircuit, error) {
	circuit, err := DecodeCircuit(bytecode)
	if err != nil {
		return nil, errors.NewMalformedBytecodeError(err)
	}

	witness := initial.Copy()
	for idx, op := range circuit.Opcodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case op.Arithmetic != nil:
			err = solveArithmetic(witness, op.Arithmetic)
		case op.ForeignCall != nil:
			err = solveForeignCall(ctx, witness, op.ForeignCall, handler)
		}
		if err != nil {
			return nil, fmt.Errorf("opcode %d: %w", idx, err)
		}
	}

	outputs := make([]fields.Fr, len(circuit.ReturnValues))
	for i, w := range circuit.ReturnValues {
		v, ok := witness[w]
		if !ok {
			return nil, errors.NewUnsolvableOpcodeErrorf("return witness %d was never assigned", w)
		}
		outputs[i] = v
	}

	return &SolvedCircuit{
		Witness:       witness,
		PublicOutputs: outputs,
	}, nil
}

// evaluate returns the value of e when every witness it references is
// assigned.
func evaluate(witness WitnessMap, e *Expression) (fields.Fr, bool) {
	sum := e.QC
	for _, t := range e.MulTerms {
		l, okL := witness[t.L]
		r, okR := witness[t.R]
		if !okL || !okR {
			return fields.Zero, false
		}
		sum = sum.Add(t.Q.Mul(l).Mul(r))
	}
	for _, t := range e.LinearCombinations {
		v, ok := witness[t.W]
		if !ok {
			return fields.Zero, false
		}
		sum = sum.Add(t.Q.Mul(v))
	}
	return sum, true
}

// solveArithmetic checks e = 0 if every witness is known, or solves for the
// single unknown witness if it appears linearly.
func solveArithmetic(witness WitnessMap, e *Expression) error {
	sum := e.QC
	coefficients := make(map[Witness]fields.Fr)
	var order []Witness
	addUnknown := func(w Witness, q fields.Fr) {
		if _, ok := coefficients[w]; !ok {
			order = append(order, w)
		}
		coefficients[w] = coefficients[w].Add(q)
	}

	for _, t := range e.MulTerms {
		l, okL := witness[t.L]
		r, okR := witness[t.R]
		switch {
		case okL && okR:
			sum = sum.Add(t.Q.Mul(l).Mul(r))
		case okL:
			addUnknown(t.R, t.Q.Mul(l))
		case okR:
			addUnknown(t.L, t.Q.Mul(r))
		default:
			return errors.NewUnsolvableOpcodeErrorf("product of unknown witnesses %d and %d", t.L, t.R)
		}
	}
	for _, t := range e.LinearCombinations {
		if v, ok := witness[t.W]; ok {
			sum = sum.Add(t.Q.Mul(v))
			continue
		}
		addUnknown(t.W, t.Q)
	}

	switch len(order) {
	case 0:
		if !sum.IsZero() {
			return errors.NewUnsatisfiedConstraintErrorf("expression evaluates to %s", sum)
		}
		return nil
	case 1:
		w := order[0]
		q := coefficients[w]
		if q.IsZero() {
			return errors.NewUnsolvableOpcodeErrorf("witness %d has a zero coefficient", w)
		}
		witness[w] = sum.Neg().Mul(q.Inverse())
		return nil
	default:
		return errors.NewUnsolvableOpcodeErrorf("%d unknown witnesses in one expression", len(order))
	}
}

func solveForeignCall(
	ctx context.Context,
	witness WitnessMap,
	call *ForeignCall,
	handler ForeignCallHandler,
) error {
	inputs := make([][]fields.Fr, len(call.Inputs))
	for i, group := range call.Inputs {
		values := make([]fields.Fr, len(group))
		for j := range group {
			v, ok := evaluate(witness, &group[j])
			if !ok {
				return errors.NewUnsolvableOpcodeErrorf("input %d of foreign call %s is not solved", i, call.Function)
			}
			values[j] = v
		}
		inputs[i] = values
	}

	outputs, err := handler.ForeignCall(ctx, call.Function, inputs)
	if err != nil {
		return fmt.Errorf("foreign call %s failed: %w", call.Function, err)
	}
	if len(outputs) != len(call.Outputs) {
		return errors.NewMalformedOracleOutputsErrorf(
			call.Function,
			"expected %d values, got %d",
			len(call.Outputs),
			len(outputs))
	}

	for i, w := range call.Outputs {
		if existing, ok := witness[w]; ok && existing != outputs[i] {
			return errors.NewUnsatisfiedConstraintErrorf(
				"foreign call %s output %d conflicts with witness %d",
				call.Function,
				i,
				w)
		}
		witness[w] = outputs[i]
	}
	return nil
}
