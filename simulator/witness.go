package simulator

import (
	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/errors"
)

// initialWitnessStart is the first witness index of the private context
// inputs. Index 0 is reserved by the solver.
const initialWitnessStart acvm.Witness = 1

// initialWitness lays out the private context inputs followed by args:
// call context, historic roots, contract deployment data, chain id, version.
func (c *ClientExecutionContext) initialWitness(f *abi.FunctionAbi, args []fields.Fr) (acvm.WitnessMap, error) {
	if expected := abi.CountArgumentsSize(f); len(args) != expected {
		return nil, errors.NewInvalidArgumentsSizeError(expected, len(args))
	}

	values := make([]fields.Fr, 0, rollup.PrivateContextInputsLength+len(args))
	values = append(values, c.callContext.ToFields()...)
	values = append(values, c.historicRoots.ToFields()...)
	values = append(values, c.txContext.ContractDeploymentData.ToFields()...)
	values = append(values, c.txContext.ChainID, c.txContext.Version)
	values = append(values, args...)

	return acvm.ToACVMWitness(initialWitnessStart, values), nil
}
