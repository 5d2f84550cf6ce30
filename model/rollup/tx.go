package rollup

import (
	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
)

// HistoricTreeRoots are the tree roots of the block a private execution reads
// its state from.
type HistoricTreeRoots struct {
	PrivateDataTreeRoot     fields.Fr
	NullifierTreeRoot       fields.Fr
	ContractTreeRoot        fields.Fr
	L1ToL2MessagesTreeRoot  fields.Fr
	PrivateKernelVkTreeRoot fields.Fr
}

// ToFields flattens the roots.
func (h HistoricTreeRoots) ToFields() []fields.Fr {
	return []fields.Fr{
		h.PrivateDataTreeRoot,
		h.NullifierTreeRoot,
		h.ContractTreeRoot,
		h.L1ToL2MessagesTreeRoot,
		h.PrivateKernelVkTreeRoot,
	}
}

// ReadHistoricTreeRoots decodes the roots from r.
func ReadHistoricTreeRoots(r *fields.Reader) HistoricTreeRoots {
	return HistoricTreeRoots{
		PrivateDataTreeRoot:     r.ReadField(),
		NullifierTreeRoot:       r.ReadField(),
		ContractTreeRoot:        r.ReadField(),
		L1ToL2MessagesTreeRoot:  r.ReadField(),
		PrivateKernelVkTreeRoot: r.ReadField(),
	}
}

// ContractDeploymentData describes the contract deployed by a deployment
// transaction.
type ContractDeploymentData struct {
	DeployerPublicKey     fields.Point
	ConstructorVkHash     fields.Fr
	FunctionTreeRoot      fields.Fr
	ContractAddressSalt   fields.Fr
	PortalContractAddress EthAddress
}

// ToFields flattens the deployment data.
func (c ContractDeploymentData) ToFields() []fields.Fr {
	return []fields.Fr{
		c.DeployerPublicKey.X,
		c.DeployerPublicKey.Y,
		c.ConstructorVkHash,
		c.FunctionTreeRoot,
		c.ContractAddressSalt,
		EthAddressToField(c.PortalContractAddress),
	}
}

// Hash commits to the deployment data.
func (c ContractDeploymentData) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexContractDeploymentData, c.ToFields())
}

// ReadContractDeploymentData decodes deployment data from r.
func ReadContractDeploymentData(r *fields.Reader) ContractDeploymentData {
	return ContractDeploymentData{
		DeployerPublicKey:     fields.NewPoint(r.ReadField(), r.ReadField()),
		ConstructorVkHash:     r.ReadField(),
		FunctionTreeRoot:      r.ReadField(),
		ContractAddressSalt:   r.ReadField(),
		PortalContractAddress: EthAddressFromField(r.ReadField()),
	}
}

// TxContext holds the transaction wide values every call of the transaction
// observes.
type TxContext struct {
	IsContractDeploymentTx bool
	IsFeePaymentTx         bool
	IsRebatePaymentTx      bool
	ChainID                fields.Fr
	Version                fields.Fr
	ContractDeploymentData ContractDeploymentData
}

// Hash commits to the transaction context.
func (t TxContext) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexTxContext, []fields.Fr{
		fields.NewFrFromBool(t.IsContractDeploymentTx),
		fields.NewFrFromBool(t.IsFeePaymentTx),
		fields.NewFrFromBool(t.IsRebatePaymentTx),
		t.ContractDeploymentData.Hash(),
		t.ChainID,
		t.Version,
	})
}

// PackedArguments is an argument vector together with its hash.
type PackedArguments struct {
	Args []fields.Fr
	Hash fields.Fr
}

// NewPackedArguments hashes args.
func NewPackedArguments(args []fields.Fr) (PackedArguments, error) {
	h, err := hash.HashArgs(args)
	if err != nil {
		return PackedArguments{}, err
	}
	return PackedArguments{
		Args: append([]fields.Fr(nil), args...),
		Hash: h,
	}, nil
}

// TxExecutionRequest is a request to run a private entrypoint.
type TxExecutionRequest struct {
	Origin       Address
	FunctionData FunctionData
	// ArgsHash references the entrypoint arguments in PackedArguments.
	ArgsHash        fields.Fr
	TxContext       TxContext
	PackedArguments []PackedArguments
}

// Hash commits to the request.
func (t TxExecutionRequest) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexTxRequest, []fields.Fr{
		t.Origin.ToField(),
		t.FunctionData.Hash(),
		t.ArgsHash,
		t.TxContext.Hash(),
	})
}
