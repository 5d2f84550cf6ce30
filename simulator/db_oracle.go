package simulator

import (
	"context"

	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
)

// DBOracle is the read-only view of the contract, key and note stores the
// simulator needs. The simulator never writes to it.
type DBOracle interface {
	// GetFunctionArtifact returns the compiled function with the given
	// selector in contract.
	GetFunctionArtifact(ctx context.Context, contract rollup.Address, selector rollup.FunctionSelector) (*abi.FunctionArtifact, error)
	GetPortalContractAddress(ctx context.Context, contract rollup.Address) (rollup.EthAddress, error)

	// GetSecretKey returns the secret key matching the owner public key, as
	// seen by contract.
	GetSecretKey(ctx context.Context, contract rollup.Address, owner fields.Point) (fields.Fr, error)
	// GetPublicKey returns the public key and the partial contract address
	// of address.
	GetPublicKey(ctx context.Context, address rollup.Address) (fields.Point, fields.Fr, error)

	GetNotes(ctx context.Context, query rollup.NoteQuery) ([]rollup.NoteData, error)
	GetL1ToL2Message(ctx context.Context, key fields.Fr) (rollup.MessageLoadOracleInputs, error)
	GetCommitment(ctx context.Context, contract rollup.Address, key fields.Fr) (rollup.CommitmentDataOracleInputs, error)
}
