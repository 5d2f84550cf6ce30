package acvm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/zkrollup/pxe/model/fields"
)

// Circuit is the decoded form of the bytecode the Interpreter runs.
type Circuit struct {
	// CurrentWitnessIndex is the highest witness index the circuit uses.
	CurrentWitnessIndex uint32    `cbor:"1,keyasint"`
	Opcodes             []Opcode  `cbor:"2,keyasint"`
	ReturnValues        []Witness `cbor:"3,keyasint"`
}

// Opcode is exactly one of Arithmetic or ForeignCall.
type Opcode struct {
	Arithmetic  *Expression  `cbor:"1,keyasint,omitempty"`
	ForeignCall *ForeignCall `cbor:"2,keyasint,omitempty"`
}

// MulTerm is q·l·r.
type MulTerm struct {
	Q fields.Fr `cbor:"1,keyasint"`
	L Witness   `cbor:"2,keyasint"`
	R Witness   `cbor:"3,keyasint"`
}

// LinearTerm is q·w.
type LinearTerm struct {
	Q fields.Fr `cbor:"1,keyasint"`
	W Witness   `cbor:"2,keyasint"`
}

// Expression is Σ mul terms + Σ linear terms + QC. As an arithmetic opcode it
// asserts the expression equals zero.
type Expression struct {
	MulTerms           []MulTerm    `cbor:"1,keyasint,omitempty"`
	LinearCombinations []LinearTerm `cbor:"2,keyasint,omitempty"`
	QC                 fields.Fr    `cbor:"3,keyasint"`
}

// ForeignCall asks the host to compute Outputs from Inputs.
type ForeignCall struct {
	Function string         `cbor:"1,keyasint"`
	Inputs   [][]Expression `cbor:"2,keyasint"`
	Outputs  []Witness      `cbor:"3,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("could not create cbor encoding mode: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: 1 << 20,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("could not create cbor decoding mode: %v", err))
	}
}

// Encode serializes the circuit into bytecode.
func (c *Circuit) Encode() ([]byte, error) {
	return encMode.Marshal(c)
}

// DecodeCircuit parses bytecode and checks every opcode is well formed.
func DecodeCircuit(bytecode []byte) (*Circuit, error) {
	var c Circuit
	if err := decMode.Unmarshal(bytecode, &c); err != nil {
		return nil, fmt.Errorf("could not decode circuit: %w", err)
	}
	for i, op := range c.Opcodes {
		if (op.Arithmetic == nil) == (op.ForeignCall == nil) {
			return nil, fmt.Errorf("opcode %d must be exactly one of arithmetic or foreign call", i)
		}
	}
	return &c, nil
}
