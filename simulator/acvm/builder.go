package acvm

import (
	"github.com/zkrollup/pxe/model/fields"
)

// Builder assembles circuits programmatically. Witnesses 1 through the number
// of inputs hold the initial witness; every other witness is allocated on
// demand.
type Builder struct {
	inputs  uint32
	current uint32
	opcodes []Opcode
	returns []Witness
}

func NewBuilder(inputs uint32) *Builder {
	return &Builder{
		inputs:  inputs,
		current: inputs,
	}
}

// Input returns the witness holding the i-th initial value, counting from 0.
func (b *Builder) Input(i int) Witness {
	if i < 0 || uint32(i) >= b.inputs {
		panic("acvm: input index out of range")
	}
	return Witness(i + 1)
}

// Inputs returns the witnesses of initial values [from, from+n).
func (b *Builder) Inputs(from, n int) []Witness {
	ws := make([]Witness, n)
	for i := range ws {
		ws[i] = b.Input(from + i)
	}
	return ws
}

// NewWitness allocates a fresh witness.
func (b *Builder) NewWitness() Witness {
	b.current++
	return Witness(b.current)
}

// AssertZero adds an arithmetic opcode asserting e = 0.
func (b *Builder) AssertZero(e Expression) {
	b.opcodes = append(b.opcodes, Opcode{Arithmetic: &e})
}

// AssertEqual constrains two witnesses to be equal.
func (b *Builder) AssertEqual(x, y Witness) {
	b.AssertZero(Expression{
		LinearCombinations: []LinearTerm{
			{Q: fields.One, W: x},
			{Q: fields.One.Neg(), W: y},
		},
	})
}

// Constant returns a witness fixed to v.
func (b *Builder) Constant(v fields.Fr) Witness {
	w := b.NewWitness()
	b.AssertZero(Expression{
		LinearCombinations: []LinearTerm{{Q: fields.One.Neg(), W: w}},
		QC:                 v,
	})
	return w
}

// Add returns a witness holding x + y.
func (b *Builder) Add(x, y Witness) Witness {
	w := b.NewWitness()
	b.AssertZero(Expression{
		LinearCombinations: []LinearTerm{
			{Q: fields.One, W: x},
			{Q: fields.One, W: y},
			{Q: fields.One.Neg(), W: w},
		},
	})
	return w
}

// Mul returns a witness holding x · y.
func (b *Builder) Mul(x, y Witness) Witness {
	w := b.NewWitness()
	b.AssertZero(Expression{
		MulTerms:           []MulTerm{{Q: fields.One, L: x, R: y}},
		LinearCombinations: []LinearTerm{{Q: fields.One.Neg(), W: w}},
	})
	return w
}

// ForeignCall adds a foreign call opcode and returns its output witnesses.
func (b *Builder) ForeignCall(function string, inputs [][]Expression, outputs int) []Witness {
	ws := make([]Witness, outputs)
	for i := range ws {
		ws[i] = b.NewWitness()
	}
	b.opcodes = append(b.opcodes, Opcode{ForeignCall: &ForeignCall{
		Function: function,
		Inputs:   inputs,
		Outputs:  ws,
	}})
	return ws
}

// Return appends witnesses to the circuit's public outputs.
func (b *Builder) Return(ws ...Witness) {
	b.returns = append(b.returns, ws...)
}

// Circuit returns the circuit built so far.
func (b *Builder) Circuit() *Circuit {
	return &Circuit{
		CurrentWitnessIndex: b.current,
		Opcodes:             append([]Opcode(nil), b.opcodes...),
		ReturnValues:        append([]Witness(nil), b.returns...),
	}
}

// Compile encodes the circuit built so far as bytecode.
func (b *Builder) Compile() ([]byte, error) {
	return b.Circuit().Encode()
}

// W is the expression consisting of witness w.
func W(w Witness) Expression {
	return Expression{LinearCombinations: []LinearTerm{{Q: fields.One, W: w}}}
}

// Ws turns witnesses into one foreign call input vector.
func Ws(ws ...Witness) []Expression {
	es := make([]Expression, len(ws))
	for i, w := range ws {
		es[i] = W(w)
	}
	return es
}

// Const is the constant expression v.
func Const(v fields.Fr) Expression {
	return Expression{QC: v}
}

// Consts turns constants into one foreign call input vector.
func Consts(vs ...fields.Fr) []Expression {
	es := make([]Expression, len(vs))
	for i, v := range vs {
		es[i] = Const(v)
	}
	return es
}
