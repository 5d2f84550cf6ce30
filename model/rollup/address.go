package rollup

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/zkrollup/pxe/model/fields"
)

// Address identifies an L2 contract or account. It is a single field element.
type Address struct {
	value fields.Fr
}

// ZeroAddress is the empty address, used for constructors and empty slots.
var ZeroAddress = Address{}

// NewAddress wraps a field element as an address.
func NewAddress(f fields.Fr) Address {
	return Address{value: f}
}

// HexToAddress parses a hex address, panicking on malformed input. Intended
// for constants and tests.
func HexToAddress(s string) Address {
	return NewAddress(fields.MustFrFromHex(s))
}

// ToField returns the field representation.
func (a Address) ToField() fields.Fr {
	return a.value
}

// IsZero reports whether this is the zero address.
func (a Address) IsZero() bool {
	return a.value.IsZero()
}

func (a Address) String() string {
	return a.value.String()
}

// EthAddress is an L1 address, used for portal contracts.
type EthAddress = common.Address

// EthAddressToField embeds an L1 address in a field element.
func EthAddressToField(a EthAddress) fields.Fr {
	f, _ := fields.FrFromBytes(a.Bytes())
	return f
}

// EthAddressFromField extracts an L1 address from a field. Values wider than
// 20 bytes are truncated to their low 20 bytes, matching common.BytesToAddress.
func EthAddressFromField(f fields.Fr) EthAddress {
	b := f.Bytes()
	return common.BytesToAddress(b[:])
}
