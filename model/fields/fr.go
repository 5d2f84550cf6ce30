// Package fields defines the field element and point types shared by the
// solver boundary, the protocol data model and the oracle encodings.
package fields

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// FrSize is the size in bytes of a serialized field element.
const FrSize = fr.Bytes

// Fr is an element of the BN254 scalar field. This is the native field of the
// circuits executed by the simulator, so every value crossing the solver
// boundary is an Fr. The zero value is the field element 0.
//
// Fr values are comparable with ==.
type Fr struct {
	e fr.Element
}

// Zero is the additive identity.
var Zero = Fr{}

// One is the multiplicative identity.
var One = NewFr(1)

// NewFr returns the field element for v.
func NewFr(v uint64) Fr {
	var f Fr
	f.e.SetUint64(v)
	return f
}

// NewFrFromBool returns 1 for true and 0 for false.
func NewFrFromBool(b bool) Fr {
	if b {
		return One
	}
	return Zero
}

// FrFromElement wraps a gnark-crypto field element.
func FrFromElement(e fr.Element) Fr {
	return Fr{e: e}
}

// FrFromBig reduces v modulo the field order. Negative values are mapped to
// their additive inverse.
func FrFromBig(v *big.Int) Fr {
	var f Fr
	f.e.SetBigInt(v)
	return f
}

// FrFromBytes parses a big-endian encoding of at most 32 bytes. Values that are
// not canonical (greater or equal to the modulus) are rejected.
func FrFromBytes(b []byte) (Fr, error) {
	if len(b) > FrSize {
		return Fr{}, fmt.Errorf("field element encoding too long: %d bytes", len(b))
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(fr.Modulus()) >= 0 {
		return Fr{}, fmt.Errorf("value 0x%x is not a canonical field element", b)
	}
	return FrFromBig(v), nil
}

// FrFromHex parses a 0x-prefixed (or bare) hex string.
func FrFromHex(s string) (Fr, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Fr{}, fmt.Errorf("invalid field hex %q: %w", s, err)
	}
	return FrFromBytes(b)
}

// MustFrFromHex is FrFromHex that panics on error. Only intended for
// constants and tests.
func MustFrFromHex(s string) Fr {
	f, err := FrFromHex(s)
	if err != nil {
		panic(err)
	}
	return f
}

// RandomFr samples a field element from r. 64 bytes are read and reduced so
// the bias towards small values is negligible.
func RandomFr(r io.Reader) (Fr, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Fr{}, fmt.Errorf("could not read randomness: %w", err)
	}
	return FrFromBig(new(big.Int).SetBytes(buf[:])), nil
}

// Element returns the underlying gnark-crypto element.
func (f Fr) Element() fr.Element {
	return f.e
}

// Bytes returns the 32 byte big-endian encoding.
func (f Fr) Bytes() [FrSize]byte {
	return f.e.Bytes()
}

// BigInt returns the canonical integer value.
func (f Fr) BigInt() *big.Int {
	return f.e.BigInt(new(big.Int))
}

// Uint64 returns the value as a uint64, failing if it does not fit.
func (f Fr) Uint64() (uint64, error) {
	if !f.e.IsUint64() {
		return 0, fmt.Errorf("field element %s does not fit in 64 bits", f)
	}
	return f.e.Uint64(), nil
}

// Bool interprets 0 as false and 1 as true. Any other value is an error.
func (f Fr) Bool() (bool, error) {
	switch {
	case f.IsZero():
		return false, nil
	case f == One:
		return true, nil
	default:
		return false, fmt.Errorf("field element %s is not a boolean", f)
	}
}

// IsZero reports whether f is the zero element.
func (f Fr) IsZero() bool {
	return f.e.IsZero()
}

// Equal reports whether both elements are the same.
func (f Fr) Equal(other Fr) bool {
	return f.e.Equal(&other.e)
}

// Add returns f + other.
func (f Fr) Add(other Fr) Fr {
	var res Fr
	res.e.Add(&f.e, &other.e)
	return res
}

// Sub returns f - other.
func (f Fr) Sub(other Fr) Fr {
	var res Fr
	res.e.Sub(&f.e, &other.e)
	return res
}

// Mul returns f * other.
func (f Fr) Mul(other Fr) Fr {
	var res Fr
	res.e.Mul(&f.e, &other.e)
	return res
}

// Neg returns -f.
func (f Fr) Neg() Fr {
	var res Fr
	res.e.Neg(&f.e)
	return res
}

// Inverse returns 1/f. The inverse of zero is zero.
func (f Fr) Inverse() Fr {
	var res Fr
	res.e.Inverse(&f.e)
	return res
}

// String returns the 0x-prefixed, zero-padded hex encoding.
func (f Fr) String() string {
	b := f.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f Fr) MarshalBinary() ([]byte, error) {
	b := f.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Fr) UnmarshalBinary(data []byte) error {
	v, err := FrFromBytes(data)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Fr) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fr) UnmarshalText(text []byte) error {
	v, err := FrFromHex(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FrsFromUint64s is a convenience for building small vectors.
func FrsFromUint64s(values ...uint64) []Fr {
	res := make([]Fr, len(values))
	for i, v := range values {
		res[i] = NewFr(v)
	}
	return res
}

// PadFrs right-pads values with zeros up to length, truncating when values is
// longer.
func PadFrs(values []Fr, length int) []Fr {
	res := make([]Fr, length)
	copy(res, values)
	return res
}
