package rollup

import (
	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
)

// CallContext describes who called a function and how. It is immutable once
// built and derived fresh for every nested or enqueued call.
type CallContext struct {
	MsgSender              Address
	StorageContractAddress Address
	PortalContractAddress  EthAddress
	IsDelegateCall         bool
	IsStaticCall           bool
	IsContractDeployment   bool
}

// ToFields flattens the context in protocol order.
func (c CallContext) ToFields() []fields.Fr {
	return []fields.Fr{
		c.MsgSender.ToField(),
		c.StorageContractAddress.ToField(),
		EthAddressToField(c.PortalContractAddress),
		fields.NewFrFromBool(c.IsDelegateCall),
		fields.NewFrFromBool(c.IsStaticCall),
		fields.NewFrFromBool(c.IsContractDeployment),
	}
}

// Hash commits to the context.
func (c CallContext) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexCallContext, c.ToFields())
}

// ReadCallContext decodes a CallContext from r.
func ReadCallContext(r *fields.Reader) CallContext {
	return CallContext{
		MsgSender:              NewAddress(r.ReadField()),
		StorageContractAddress: NewAddress(r.ReadField()),
		PortalContractAddress:  EthAddressFromField(r.ReadField()),
		IsDelegateCall:         r.ReadBool(),
		IsStaticCall:           r.ReadBool(),
		IsContractDeployment:   r.ReadBool(),
	}
}

// NestedCallContext derives the context of an ordinary (non delegate, non
// static) call made by the function running under parent to target.
func NestedCallContext(parent CallContext, target Address, portal EthAddress) CallContext {
	return CallContext{
		MsgSender:              parent.StorageContractAddress,
		StorageContractAddress: target,
		PortalContractAddress:  portal,
	}
}
