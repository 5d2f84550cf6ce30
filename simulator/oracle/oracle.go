package oracle

import (
	"context"

	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
)

// NotesRequest is a note query as issued by a circuit. The contract scope is
// added by the oracle implementation.
type NotesRequest struct {
	StorageSlot fields.Fr
	SortBy      []uint32
	SortOrder   []rollup.SortOrder
	Limit       uint32
	Offset      uint32
}

// TypedOracle is the host side of every oracle. Implementations hold the
// state of a single call frame.
type TypedOracle interface {
	// PackArguments stores args in the shared argument cache and returns
	// their hash.
	PackArguments(ctx context.Context, args []fields.Fr) (fields.Fr, error)
	// UnpackArguments returns the vector previously packed under hash.
	UnpackArguments(ctx context.Context, hash fields.Fr) ([]fields.Fr, error)

	GetSecretKey(ctx context.Context, owner fields.Point) (fields.Fr, error)
	// GetPublicKey returns the public key of address and its partial address.
	GetPublicKey(ctx context.Context, address rollup.Address) (fields.Point, fields.Fr, error)
	GetNotes(ctx context.Context, req NotesRequest) ([]rollup.NoteData, error)
	GetRandomField(ctx context.Context) (fields.Fr, error)

	NotifyCreatedNote(ctx context.Context, storageSlot fields.Fr, preimage []fields.Fr) error
	NotifyNullifiedNote(ctx context.Context, storageSlot fields.Fr, nullifier fields.Fr, preimage []fields.Fr) error

	// CallPrivateFunction runs a nested private call to completion.
	CallPrivateFunction(
		ctx context.Context,
		target rollup.Address,
		selector rollup.FunctionSelector,
		argsHash fields.Fr,
	) (*rollup.PrivateCallStackItem, error)

	GetL1ToL2Message(ctx context.Context, key fields.Fr) (rollup.MessageLoadOracleInputs, error)
	GetCommitment(ctx context.Context, key fields.Fr) (rollup.CommitmentDataOracleInputs, error)

	// DebugLog emits a formatted message on the host log. It has no protocol
	// effect and cannot fail.
	DebugLog(ctx context.Context, message string, values []fields.Fr)

	EnqueuePublicFunctionCall(
		ctx context.Context,
		target rollup.Address,
		selector rollup.FunctionSelector,
		argsHash fields.Fr,
	) (*rollup.PublicCallRequest, error)

	EmitUnencryptedLog(ctx context.Context, log []byte) error
	EmitEncryptedLog(
		ctx context.Context,
		contract rollup.Address,
		storageSlot fields.Fr,
		owner fields.Point,
		preimage []fields.Fr,
	) error

	GetContractAddress(ctx context.Context) rollup.Address
	GetChainID(ctx context.Context) fields.Fr
	GetVersion(ctx context.Context) fields.Fr
	GetPortalContractAddress(ctx context.Context) rollup.EthAddress
}
