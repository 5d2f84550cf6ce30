package errors

import (
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
)

// NewSecretKeyNotFoundError indicates the key store holds no secret key for
// the owner public key in the given contract.
func NewSecretKeyNotFoundError(contract rollup.Address, owner fields.Point, err error) CodedError {
	return WrapCodedError(
		ErrCodeSecretKeyNotFoundError,
		err,
		"secret key for %s in contract %s not found",
		owner,
		contract)
}

func NewPublicKeyNotFoundError(address rollup.Address, err error) CodedError {
	return WrapCodedError(
		ErrCodePublicKeyNotFoundError,
		err,
		"public key of %s not found",
		address)
}

// NewFunctionArtifactNotFoundError indicates the contract database has no
// artifact for the function a nested call targets.
func NewFunctionArtifactNotFoundError(
	address rollup.Address,
	selector rollup.FunctionSelector,
	err error,
) CodedError {
	return WrapCodedError(
		ErrCodeFunctionArtifactNotFoundError,
		err,
		"function %s of contract %s not found",
		selector,
		address)
}

func IsFunctionArtifactNotFoundError(err error) bool {
	return HasErrorCode(err, ErrCodeFunctionArtifactNotFoundError)
}

func NewPortalAddressNotFoundError(address rollup.Address, err error) CodedError {
	return WrapCodedError(
		ErrCodePortalAddressNotFoundError,
		err,
		"portal contract address of %s not found",
		address)
}

func NewNoteQueryError(contract rollup.Address, slot fields.Fr, err error) CodedError {
	return WrapCodedError(
		ErrCodeNoteQueryError,
		err,
		"note query for slot %s of contract %s failed",
		slot,
		contract)
}

func NewCommitmentNotFoundError(contract rollup.Address, key fields.Fr, err error) CodedError {
	return WrapCodedError(
		ErrCodeCommitmentNotFoundError,
		err,
		"commitment %s of contract %s not found",
		key,
		contract)
}

func NewL1ToL2MessageNotFoundError(key fields.Fr, err error) CodedError {
	return WrapCodedError(
		ErrCodeL1ToL2MessageNotFoundError,
		err,
		"l1 to l2 message %s not found",
		key)
}

// NewPackedArgumentsNotFoundError indicates an args hash was referenced before
// any vector with that hash was packed.
func NewPackedArgumentsNotFoundError(hash fields.Fr) CodedError {
	return NewCodedError(
		ErrCodePackedArgumentsNotFoundError,
		"no packed arguments for hash %s",
		hash)
}

func IsPackedArgumentsNotFoundError(err error) bool {
	return HasErrorCode(err, ErrCodePackedArgumentsNotFoundError)
}
