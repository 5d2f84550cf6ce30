package simulator

import (
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator/acvm"
)

// ExecutionPreimages are the note preimages a call created and nullified.
type ExecutionPreimages struct {
	NewNotes       []rollup.NewNoteData
	NullifiedNotes []rollup.NewNullifierData
}

// ExecutionResult is the record of one private function call. Nested calls
// are children of the call that made them, in the order they were made.
type ExecutionResult struct {
	// ACIR is the bytecode the call ran.
	ACIR            []byte
	VerificationKey []byte
	PartialWitness  acvm.WitnessMap

	CallStackItem *rollup.PrivateCallStackItem
	// ReturnValues are the decoded return values of the function.
	ReturnValues []any
	Preimages    ExecutionPreimages

	NestedExecutions            []*ExecutionResult
	EnqueuedPublicFunctionCalls []*rollup.PublicCallRequest

	EncryptedLogs   *rollup.FunctionL2Logs
	UnencryptedLogs *rollup.FunctionL2Logs
}

// AllEncryptedLogs collects the encrypted logs of the call tree rooted at r,
// one collection per call, depth first with each call before its children.
func (r *ExecutionResult) AllEncryptedLogs() []*rollup.FunctionL2Logs {
	var logs []*rollup.FunctionL2Logs
	r.walk(func(res *ExecutionResult) {
		logs = append(logs, res.EncryptedLogs)
	})
	return logs
}

// AllUnencryptedLogs is AllEncryptedLogs for unencrypted logs.
func (r *ExecutionResult) AllUnencryptedLogs() []*rollup.FunctionL2Logs {
	var logs []*rollup.FunctionL2Logs
	r.walk(func(res *ExecutionResult) {
		logs = append(logs, res.UnencryptedLogs)
	})
	return logs
}

// AllEnqueuedPublicFunctionCalls collects the public calls enqueued across the
// call tree, in the same order as AllEncryptedLogs.
func (r *ExecutionResult) AllEnqueuedPublicFunctionCalls() []*rollup.PublicCallRequest {
	var calls []*rollup.PublicCallRequest
	r.walk(func(res *ExecutionResult) {
		calls = append(calls, res.EnqueuedPublicFunctionCalls...)
	})
	return calls
}

func (r *ExecutionResult) walk(visit func(*ExecutionResult)) {
	visit(r)
	for _, nested := range r.NestedExecutions {
		nested.walk(visit)
	}
}
