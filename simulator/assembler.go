package simulator

import (
	"fmt"

	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/errors"
)

// assembleResult builds the ExecutionResult of a solved call from the solver
// outputs and what frame accumulated while solving.
func assembleResult(
	frame *ClientExecutionContext,
	artifact *abi.FunctionArtifact,
	functionData rollup.FunctionData,
	solved *acvm.SolvedCircuit,
	decode abi.ReturnDecoder,
) (*ExecutionResult, error) {
	publicInputs, err := rollup.PrivateCircuitPublicInputsFromFields(solved.PublicOutputs)
	if err != nil {
		return nil, errors.NewInvalidPublicOutputsError(err)
	}

	patchLogs(publicInputs, frame.encryptedLogs, frame.unencryptedLogs)

	publicCallStack, err := publicCallStackHashes(frame.enqueuedPublicCalls)
	if err != nil {
		return nil, err
	}
	publicInputs.PublicCallStack = publicCallStack

	// TODO: remove once the circuit receives the deployer public key as an input.
	publicInputs.ContractDeploymentData.DeployerPublicKey = frame.txContext.ContractDeploymentData.DeployerPublicKey

	returnValues, err := decode(&artifact.FunctionAbi, publicInputs.ReturnValues[:])
	if err != nil {
		return nil, errors.NewInvalidPublicOutputsError(fmt.Errorf("could not decode return values: %w", err))
	}

	return &ExecutionResult{
		ACIR:            artifact.Bytecode,
		VerificationKey: artifact.VerificationKey,
		PartialWitness:  solved.Witness,
		CallStackItem: &rollup.PrivateCallStackItem{
			ContractAddress: frame.contractAddress,
			FunctionData:    functionData,
			PublicInputs:    publicInputs,
		},
		ReturnValues: returnValues,
		Preimages: ExecutionPreimages{
			NewNotes:       frame.newNotes,
			NullifiedNotes: frame.nullifiedNotes,
		},
		NestedExecutions:            frame.nestedExecutions,
		EnqueuedPublicFunctionCalls: frame.enqueuedPublicCalls,
		EncryptedLogs:               frame.encryptedLogs,
		UnencryptedLogs:             frame.unencryptedLogs,
	}, nil
}

// patchLogs overwrites the log commitments of the public inputs with the
// hashes and serialized lengths of the call's own logs.
//
// TODO: remove once circuits hash their logs themselves.
func patchLogs(pi *rollup.PrivateCircuitPublicInputs, encrypted, unencrypted *rollup.FunctionL2Logs) {
	pi.EncryptedLogsHash = encrypted.HashFields()
	pi.EncryptedLogPreimagesLength = fields.NewFr(uint64(encrypted.SerializedLength()))
	pi.UnencryptedLogsHash = unencrypted.HashFields()
	pi.UnencryptedLogPreimagesLength = fields.NewFr(uint64(unencrypted.SerializedLength()))
}

// publicCallStackHashes hashes the enqueued calls into the fixed size public
// call stack, right padded with zeros.
func publicCallStackHashes(calls []*rollup.PublicCallRequest) ([rollup.MaxPublicCallStackLengthPerCall]fields.Fr, error) {
	var stack [rollup.MaxPublicCallStackLengthPerCall]fields.Fr
	if len(calls) > len(stack) {
		return stack, errors.NewPublicCallStackOverflowError(len(calls), len(stack))
	}
	for i, call := range calls {
		h, err := call.Hash()
		if err != nil {
			return stack, errors.NewEncodingFailuref(err, "could not hash public call request %d", i)
		}
		stack[i] = h
	}
	return stack, nil
}
