package rollup

import (
	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
)

// PrivateCallStackItem links a private call to its caller. Its encoding is what
// a caller's circuit receives back from a nested call.
type PrivateCallStackItem struct {
	ContractAddress Address
	FunctionData    FunctionData
	PublicInputs    *PrivateCircuitPublicInputs
}

// ToFields encodes the item as returned to the calling circuit: contract
// address, function data, then the callee's public inputs.
func (i *PrivateCallStackItem) ToFields() []fields.Fr {
	out := make([]fields.Fr, 0, 1+FunctionDataLength+PrivateCircuitPublicInputsLength)
	out = append(out, i.ContractAddress.ToField())
	out = append(out, i.FunctionData.ToFields()...)
	out = append(out, i.PublicInputs.ToFields()...)
	return out
}

// Hash commits to the item.
func (i *PrivateCallStackItem) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexCallStackItem, []fields.Fr{
		i.ContractAddress.ToField(),
		i.FunctionData.Hash(),
		i.PublicInputs.Hash(),
	})
}

// PublicCallStackItem is the call stack entry of an enqueued public call.
type PublicCallStackItem struct {
	ContractAddress    Address
	FunctionData       FunctionData
	PublicInputs       PublicCircuitPublicInputs
	IsExecutionRequest bool
}

// Hash commits to the item.
func (i PublicCallStackItem) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexCallStackItem, []fields.Fr{
		i.ContractAddress.ToField(),
		i.FunctionData.Hash(),
		i.PublicInputs.Hash(),
	})
}

// PublicCallRequest is a public function call enqueued by a private function.
// It is never executed by the private engine.
type PublicCallRequest struct {
	ContractAddress Address
	FunctionData    FunctionData
	CallContext     CallContext
	Args            []fields.Fr
}

// ToPublicCallStackItem builds the call stack item whose public inputs carry
// only what is known at enqueue time.
func (r *PublicCallRequest) ToPublicCallStackItem() (PublicCallStackItem, error) {
	argsHash, err := hash.HashArgs(r.Args)
	if err != nil {
		return PublicCallStackItem{}, err
	}
	return PublicCallStackItem{
		ContractAddress: r.ContractAddress,
		FunctionData:    r.FunctionData,
		PublicInputs: PublicCircuitPublicInputs{
			CallContext: r.CallContext,
			ArgsHash:    argsHash,
		},
		IsExecutionRequest: true,
	}, nil
}

// Hash is the hash of the request's call stack item.
func (r *PublicCallRequest) Hash() (fields.Fr, error) {
	item, err := r.ToPublicCallStackItem()
	if err != nil {
		return fields.Zero, err
	}
	return item.Hash(), nil
}

// ToFields encodes the request as returned to the enqueuing circuit: contract
// address, selector, call context and args hash.
func (r *PublicCallRequest) ToFields() ([]fields.Fr, error) {
	argsHash, err := hash.HashArgs(r.Args)
	if err != nil {
		return nil, err
	}
	out := make([]fields.Fr, 0, 2+CallContextLength+1)
	out = append(out, r.ContractAddress.ToField(), r.FunctionData.Selector.ToField())
	out = append(out, r.CallContext.ToFields()...)
	out = append(out, argsHash)
	return out, nil
}
