package rollup

import (
	"fmt"

	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
)

// PrivateCircuitPublicInputs are the public outputs of a private function
// circuit. The kernel circuit checks them against its own view of the call.
type PrivateCircuitPublicInputs struct {
	CallContext                   CallContext
	ArgsHash                      fields.Fr
	ReturnValues                  [ReturnValuesLength]fields.Fr
	ReadRequests                  [MaxReadRequestsPerCall]fields.Fr
	NewCommitments                [MaxNewCommitmentsPerCall]fields.Fr
	NewNullifiers                 [MaxNewNullifiersPerCall]fields.Fr
	NullifiedCommitments          [MaxNewNullifiersPerCall]fields.Fr
	PrivateCallStack              [MaxPrivateCallStackLengthPerCall]fields.Fr
	PublicCallStack               [MaxPublicCallStackLengthPerCall]fields.Fr
	NewL2ToL1Msgs                 [MaxNewL2ToL1MsgsPerCall]fields.Fr
	EncryptedLogsHash             [NumFieldsPerSha256]fields.Fr
	UnencryptedLogsHash           [NumFieldsPerSha256]fields.Fr
	EncryptedLogPreimagesLength   fields.Fr
	UnencryptedLogPreimagesLength fields.Fr
	HistoricTreeRoots             HistoricTreeRoots
	ContractDeploymentData        ContractDeploymentData
	ChainID                       fields.Fr
	Version                       fields.Fr
}

// PrivateCircuitPublicInputsFromFields decodes public inputs from the flat
// output vector of a solved circuit. The vector length must match exactly.
func PrivateCircuitPublicInputsFromFields(fs []fields.Fr) (*PrivateCircuitPublicInputs, error) {
	if len(fs) != PrivateCircuitPublicInputsLength {
		return nil, fmt.Errorf("expected %d public input fields, got %d", PrivateCircuitPublicInputsLength, len(fs))
	}

	r := fields.NewReader(fs)
	pi := &PrivateCircuitPublicInputs{}
	pi.CallContext = ReadCallContext(r)
	pi.ArgsHash = r.ReadField()
	copy(pi.ReturnValues[:], r.ReadFields(ReturnValuesLength))
	copy(pi.ReadRequests[:], r.ReadFields(MaxReadRequestsPerCall))
	copy(pi.NewCommitments[:], r.ReadFields(MaxNewCommitmentsPerCall))
	copy(pi.NewNullifiers[:], r.ReadFields(MaxNewNullifiersPerCall))
	copy(pi.NullifiedCommitments[:], r.ReadFields(MaxNewNullifiersPerCall))
	copy(pi.PrivateCallStack[:], r.ReadFields(MaxPrivateCallStackLengthPerCall))
	copy(pi.PublicCallStack[:], r.ReadFields(MaxPublicCallStackLengthPerCall))
	copy(pi.NewL2ToL1Msgs[:], r.ReadFields(MaxNewL2ToL1MsgsPerCall))
	copy(pi.EncryptedLogsHash[:], r.ReadFields(NumFieldsPerSha256))
	copy(pi.UnencryptedLogsHash[:], r.ReadFields(NumFieldsPerSha256))
	pi.EncryptedLogPreimagesLength = r.ReadField()
	pi.UnencryptedLogPreimagesLength = r.ReadField()
	pi.HistoricTreeRoots = ReadHistoricTreeRoots(r)
	pi.ContractDeploymentData = ReadContractDeploymentData(r)
	pi.ChainID = r.ReadField()
	pi.Version = r.ReadField()

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("could not decode public inputs: %w", err)
	}
	return pi, nil
}

// ToFields flattens the public inputs in the same order they are decoded.
func (pi *PrivateCircuitPublicInputs) ToFields() []fields.Fr {
	out := make([]fields.Fr, 0, PrivateCircuitPublicInputsLength)
	out = append(out, pi.CallContext.ToFields()...)
	out = append(out, pi.ArgsHash)
	out = append(out, pi.ReturnValues[:]...)
	out = append(out, pi.ReadRequests[:]...)
	out = append(out, pi.NewCommitments[:]...)
	out = append(out, pi.NewNullifiers[:]...)
	out = append(out, pi.NullifiedCommitments[:]...)
	out = append(out, pi.PrivateCallStack[:]...)
	out = append(out, pi.PublicCallStack[:]...)
	out = append(out, pi.NewL2ToL1Msgs[:]...)
	out = append(out, pi.EncryptedLogsHash[:]...)
	out = append(out, pi.UnencryptedLogsHash[:]...)
	out = append(out, pi.EncryptedLogPreimagesLength, pi.UnencryptedLogPreimagesLength)
	out = append(out, pi.HistoricTreeRoots.ToFields()...)
	out = append(out, pi.ContractDeploymentData.ToFields()...)
	out = append(out, pi.ChainID, pi.Version)
	return out
}

// Hash commits to the public inputs.
func (pi *PrivateCircuitPublicInputs) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexPrivateCircuitPublicInputs, pi.ToFields())
}

// PublicCircuitPublicInputs is the part of a public function's public inputs
// known when the call is enqueued. The rest is filled by the sequencer.
type PublicCircuitPublicInputs struct {
	CallContext CallContext
	ArgsHash    fields.Fr
}

// ToFields flattens the known public inputs.
func (pi PublicCircuitPublicInputs) ToFields() []fields.Fr {
	return append(pi.CallContext.ToFields(), pi.ArgsHash)
}

// Hash commits to the known public inputs.
func (pi PublicCircuitPublicInputs) Hash() fields.Fr {
	return hash.HashFields(hash.GeneratorIndexPublicCircuitPublicInputs, pi.ToFields())
}
