// Package abi describes contract functions as compiled circuits and converts
// between typed call arguments and the field vectors the circuits consume.
package abi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/zkrollup/pxe/model/rollup"
)

// FunctionType is the execution environment of a function.
type FunctionType string

const (
	FunctionTypeSecret        FunctionType = "secret"
	FunctionTypeOpen          FunctionType = "open"
	FunctionTypeUnconstrained FunctionType = "unconstrained"
)

// TypeKind discriminates Type.
type TypeKind string

const (
	KindField   TypeKind = "field"
	KindBoolean TypeKind = "boolean"
	KindInteger TypeKind = "integer"
	KindArray   TypeKind = "array"
	KindString  TypeKind = "string"
	KindStruct  TypeKind = "struct"
)

// Sign of an integer type.
type Sign string

const (
	Unsigned Sign = "unsigned"
	Signed   Sign = "signed"
)

// Type is an ABI type. Which fields are meaningful depends on Kind.
type Type struct {
	Kind TypeKind `json:"kind"`
	// integer
	Sign  Sign   `json:"sign,omitempty"`
	Width uint32 `json:"width,omitempty"`
	// array and string
	Length uint32 `json:"length,omitempty"`
	// array
	Elem *Type `json:"type,omitempty"`
	// struct
	Fields []Variable `json:"fields,omitempty"`
	Path   string     `json:"path,omitempty"`
}

// Variable is a named type.
type Variable struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Parameter is a function parameter.
type Parameter struct {
	Variable
	Visibility string `json:"visibility"`
}

// Size returns the number of fields a value of t occupies.
func (t Type) Size() int {
	switch t.Kind {
	case KindArray:
		if t.Elem == nil {
			return 0
		}
		return int(t.Length) * t.Elem.Size()
	case KindString:
		return int(t.Length)
	case KindStruct:
		n := 0
		for _, f := range t.Fields {
			n += f.Type.Size()
		}
		return n
	default:
		return 1
	}
}

// Signature is the canonical type string used in function signatures.
func (t Type) Signature() string {
	switch t.Kind {
	case KindField:
		return "Field"
	case KindBoolean:
		return "bool"
	case KindInteger:
		if t.Sign == Signed {
			return fmt.Sprintf("i%d", t.Width)
		}
		return fmt.Sprintf("u%d", t.Width)
	case KindArray:
		elem := "?"
		if t.Elem != nil {
			elem = t.Elem.Signature()
		}
		return fmt.Sprintf("[%s;%d]", elem, t.Length)
	case KindString:
		return fmt.Sprintf("str<%d>", t.Length)
	case KindStruct:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Type.Signature()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return string(t.Kind)
	}
}

// FunctionAbi describes a contract function.
type FunctionAbi struct {
	Name         string       `json:"name"`
	FunctionType FunctionType `json:"functionType"`
	IsInternal   bool         `json:"isInternal"`
	Parameters   []Parameter  `json:"parameters"`
	ReturnTypes  []Type       `json:"returnTypes"`
}

// Signature returns name(type,...).
func (f *FunctionAbi) Signature() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.Type.Signature()
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")"
}

// Selector is the first four bytes of the keccak-256 of the signature.
func (f *FunctionAbi) Selector() rollup.FunctionSelector {
	var s rollup.FunctionSelector
	copy(s[:], crypto.Keccak256([]byte(f.Signature()))[:rollup.FunctionSelectorSize])
	return s
}

// IsPrivate reports whether the function runs in the private execution
// environment.
func (f *FunctionAbi) IsPrivate() bool {
	return f.FunctionType == FunctionTypeSecret
}

// IsConstructor reports whether the function is the contract constructor.
func (f *FunctionAbi) IsConstructor() bool {
	return f.Name == "constructor"
}

// FunctionData builds the function data identifying f.
func (f *FunctionAbi) FunctionData() rollup.FunctionData {
	return rollup.FunctionData{
		Selector:      f.Selector(),
		IsPrivate:     f.IsPrivate(),
		IsConstructor: f.IsConstructor(),
	}
}

// CountArgumentsSize returns the number of fields the encoded arguments of f
// occupy.
func CountArgumentsSize(f *FunctionAbi) int {
	n := 0
	for _, p := range f.Parameters {
		n += p.Type.Size()
	}
	return n
}

// FunctionArtifact is a compiled function: its ABI, circuit bytecode and
// verification key.
type FunctionArtifact struct {
	FunctionAbi
	Bytecode        []byte `json:"bytecode"`
	VerificationKey []byte `json:"verificationKey,omitempty"`
}
