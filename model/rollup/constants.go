// Package rollup contains the protocol data structures exchanged between the
// private execution engine, the circuits it runs and the kernel circuits that
// later consume its output.
package rollup

// Per-call array capacities of the private circuit public inputs.
const (
	ReturnValuesLength               = 4
	MaxReadRequestsPerCall           = 4
	MaxNewCommitmentsPerCall         = 4
	MaxNewNullifiersPerCall          = 4
	MaxPrivateCallStackLengthPerCall = 4
	MaxPublicCallStackLengthPerCall  = 4
	MaxNewL2ToL1MsgsPerCall          = 2
	NumFieldsPerSha256               = 2
)

// MaxPrivateCallDepth is the deepest nesting of private calls a transaction
// may reach. The entrypoint runs at depth 0.
//
// It is separate from MaxPrivateCallStackLengthPerCall: that constant bounds
// how many calls one function makes (the width of the call tree), while this
// one bounds how deep the tree can grow, which no per-call array limits.
const MaxPrivateCallDepth = 8

// Note query bounds.
const (
	MaxNotesPerPage     = 10
	MaxNoteFieldsLength = 20

	// MaxGetNotesReturnLength is the largest getNotes result a circuit may
	// ask for: a count followed by a nonce and a full preimage per note.
	MaxGetNotesReturnLength = 1 + MaxNotesPerPage*(1+MaxNoteFieldsLength)
)

// Tree heights, used to size sibling paths returned by the oracles.
const (
	PrivateDataTreeHeight = 8
	L1ToL2MsgTreeHeight   = 8
)

// Field counts of the flattened structures.
const (
	CallContextLength            = 6
	HistoricTreeRootsLength      = 5
	ContractDeploymentDataLength = 6
	TxContextLength              = 2
	FunctionDataLength           = 3
	L1ToL2MessageLength          = 8

	// PrivateContextInputsLength is the number of fields the initial witness
	// carries before the function arguments.
	PrivateContextInputsLength = CallContextLength +
		HistoricTreeRootsLength +
		ContractDeploymentDataLength +
		TxContextLength

	PrivateCircuitPublicInputsLength = CallContextLength +
		1 + // args hash
		ReturnValuesLength +
		MaxReadRequestsPerCall +
		MaxNewCommitmentsPerCall +
		MaxNewNullifiersPerCall +
		MaxNewNullifiersPerCall + // nullified commitments
		MaxPrivateCallStackLengthPerCall +
		MaxPublicCallStackLengthPerCall +
		MaxNewL2ToL1MsgsPerCall +
		NumFieldsPerSha256 + // encrypted logs hash
		NumFieldsPerSha256 + // unencrypted logs hash
		1 + // encrypted log preimages length
		1 + // unencrypted log preimages length
		HistoricTreeRootsLength +
		ContractDeploymentDataLength +
		TxContextLength
)
