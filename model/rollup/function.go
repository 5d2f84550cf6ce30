package rollup

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
)

// FunctionSelectorSize is the size of a selector in bytes.
const FunctionSelectorSize = 4

// FunctionSelector identifies a function within a contract.
type FunctionSelector [FunctionSelectorSize]byte

// FunctionSelectorFromField reads the low 4 bytes of f. Fields that do not fit
// are rejected.
func FunctionSelectorFromField(f fields.Fr) (FunctionSelector, error) {
	v, err := f.Uint64()
	if err != nil || v > 0xffffffff {
		return FunctionSelector{}, fmt.Errorf("field %s is not a function selector", f)
	}
	var s FunctionSelector
	binary.BigEndian.PutUint32(s[:], uint32(v))
	return s, nil
}

// ToField returns the selector as a field element.
func (s FunctionSelector) ToField() fields.Fr {
	return fields.NewFr(uint64(binary.BigEndian.Uint32(s[:])))
}

// IsEmpty reports whether the selector is all zeros.
func (s FunctionSelector) IsEmpty() bool {
	return s == FunctionSelector{}
}

func (s FunctionSelector) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// FunctionData identifies the function being called and its kind.
type FunctionData struct {
	Selector      FunctionSelector
	IsPrivate     bool
	IsConstructor bool
}

// ToFields flattens the function data.
func (f FunctionData) ToFields() []fields.Fr {
	return []fields.Fr{
		f.Selector.ToField(),
		fields.NewFrFromBool(f.IsPrivate),
		fields.NewFrFromBool(f.IsConstructor),
	}
}

// Hash commits to the function data.
func (f FunctionData) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexFunctionData, f.ToFields())
}
