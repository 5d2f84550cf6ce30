package simulator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkrollup/pxe/model/abi"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/oracle"
)

var fieldType = abi.Type{Kind: abi.KindField}

// privateItemLength is the number of fields callPrivateFunction returns.
const privateItemLength = 1 + rollup.FunctionDataLength + rollup.PrivateCircuitPublicInputsLength

// offset of the first return value inside an encoded private call stack item
const itemReturnValuesOffset = 1 + rollup.FunctionDataLength + rollup.CallContextLength + 1

// functionCircuit builds the circuit of a private function. The initial
// witness follows the private context layout, and the public outputs are the
// private circuit public inputs. Outputs not set explicitly are zero.
type functionCircuit struct {
	b    *acvm.Builder
	args int
	zero acvm.Witness

	argsHash     acvm.Witness
	returnValues [rollup.ReturnValuesLength]acvm.Witness

	// hideDeployerKey outputs zeros instead of the deployer public key.
	hideDeployerKey bool
}

func newFunctionCircuit(args int) *functionCircuit {
	b := acvm.NewBuilder(uint32(rollup.PrivateContextInputsLength + args))
	c := &functionCircuit{
		b:    b,
		args: args,
	}
	c.zero = b.Constant(fields.Zero)
	for i := range c.returnValues {
		c.returnValues[i] = c.zero
	}
	c.argsHash = c.zero
	if args > 0 {
		c.argsHash = c.pack(c.Args()...)
	}
	return c
}

func (c *functionCircuit) CallContext() []acvm.Witness {
	return c.b.Inputs(0, rollup.CallContextLength)
}

func (c *functionCircuit) ChainID() acvm.Witness {
	return c.b.Input(rollup.PrivateContextInputsLength - 2)
}

func (c *functionCircuit) Version() acvm.Witness {
	return c.b.Input(rollup.PrivateContextInputsLength - 1)
}

func (c *functionCircuit) Arg(i int) acvm.Witness {
	return c.b.Input(rollup.PrivateContextInputsLength + i)
}

func (c *functionCircuit) Args() []acvm.Witness {
	return c.b.Inputs(rollup.PrivateContextInputsLength, c.args)
}

func (c *functionCircuit) SetReturn(i int, w acvm.Witness) {
	c.returnValues[i] = w
}

func (c *functionCircuit) pack(args ...acvm.Witness) acvm.Witness {
	return c.b.ForeignCall(oracle.KindPackArguments.WireName(), [][]acvm.Expression{acvm.Ws(args...)}, 1)[0]
}

// CallPrivate calls target and returns the encoded call stack item.
func (c *functionCircuit) CallPrivate(target rollup.Address, selector rollup.FunctionSelector, args ...acvm.Witness) []acvm.Witness {
	argsHash := c.pack(args...)
	return c.b.ForeignCall(oracle.KindCallPrivateFunction.WireName(), [][]acvm.Expression{
		acvm.Consts(target.ToField()),
		acvm.Consts(selector.ToField()),
		acvm.Ws(argsHash),
	}, privateItemLength)
}

// CallPrivateFromArgs calls the target and selector held by witnesses.
func (c *functionCircuit) CallPrivateFromArgs(target, selector acvm.Witness, args ...acvm.Witness) []acvm.Witness {
	argsHash := c.pack(args...)
	return c.b.ForeignCall(oracle.KindCallPrivateFunction.WireName(), [][]acvm.Expression{
		acvm.Ws(target),
		acvm.Ws(selector),
		acvm.Ws(argsHash),
	}, privateItemLength)
}

func (c *functionCircuit) EnqueuePublic(target rollup.Address, selector rollup.FunctionSelector, args ...acvm.Witness) []acvm.Witness {
	argsHash := c.pack(args...)
	return c.b.ForeignCall(oracle.KindEnqueuePublicFunctionCall.WireName(), [][]acvm.Expression{
		acvm.Consts(target.ToField()),
		acvm.Consts(selector.ToField()),
		acvm.Ws(argsHash),
	}, 2+rollup.CallContextLength+1)
}

func (c *functionCircuit) CreateNote(slot fields.Fr, preimage ...acvm.Witness) {
	c.b.ForeignCall(oracle.KindNotifyCreatedNote.WireName(), [][]acvm.Expression{
		acvm.Consts(slot),
		acvm.Ws(preimage...),
	}, 1)
}

func (c *functionCircuit) NullifyNote(slot, nullifier fields.Fr, preimage ...acvm.Witness) {
	c.b.ForeignCall(oracle.KindNotifyNullifiedNote.WireName(), [][]acvm.Expression{
		acvm.Consts(slot),
		acvm.Consts(nullifier),
		acvm.Ws(preimage...),
	}, 1)
}

// GetNotes reads up to limit unsorted notes of slot. The result is the note
// count followed by (nonce, preimage...) per note, padded to returnSize.
func (c *functionCircuit) GetNotes(slot fields.Fr, limit uint64, returnSize int) []acvm.Witness {
	return c.b.ForeignCall(oracle.KindGetNotes.WireName(), [][]acvm.Expression{
		acvm.Consts(slot),
		acvm.Consts(),
		acvm.Consts(),
		acvm.Consts(fields.NewFr(limit)),
		acvm.Consts(fields.Zero),
		acvm.Consts(fields.NewFr(uint64(returnSize))),
	}, returnSize)
}

func (c *functionCircuit) EmitEncryptedLog(contract rollup.Address, slot fields.Fr, owner fields.Point, preimage ...acvm.Witness) {
	c.b.ForeignCall(oracle.KindEmitEncryptedLog.WireName(), [][]acvm.Expression{
		acvm.Consts(contract.ToField()),
		acvm.Consts(slot),
		acvm.Consts(owner.X, owner.Y),
		acvm.Ws(preimage...),
	}, 1)
}

func (c *functionCircuit) EmitUnencryptedLog(message string) {
	values := make([]fields.Fr, len(message))
	for i := range message {
		values[i] = fields.NewFr(uint64(message[i]))
	}
	c.b.ForeignCall(oracle.KindEmitUnencryptedLog.WireName(), [][]acvm.Expression{acvm.Consts(values...)}, 1)
}

func (c *functionCircuit) DebugLog(message string, values ...acvm.Witness) {
	chars := make([]fields.Fr, len(message))
	for i := range message {
		chars[i] = fields.NewFr(uint64(message[i]))
	}
	c.b.ForeignCall(oracle.KindDebugLog.WireName(), [][]acvm.Expression{acvm.Consts(chars...), acvm.Ws(values...)}, 1)
}

func (c *functionCircuit) Call(kind oracle.Kind, outputs int, inputs ...[]acvm.Expression) []acvm.Witness {
	return c.b.ForeignCall(kind.WireName(), inputs, outputs)
}

func (c *functionCircuit) Add(x, y acvm.Witness) acvm.Witness {
	return c.b.Add(x, y)
}

// Compile returns the bytecode with the public inputs as return values. It
// must be called once, after every opcode has been added.
func (c *functionCircuit) Compile(t *testing.T) []byte {
	inputs := c.b.Inputs(0, rollup.PrivateContextInputsLength)
	callContext := inputs[:rollup.CallContextLength]
	historic := inputs[rollup.CallContextLength : rollup.CallContextLength+rollup.HistoricTreeRootsLength]
	deployment := inputs[rollup.CallContextLength+rollup.HistoricTreeRootsLength : rollup.PrivateContextInputsLength-2]

	zeros := func(n int) []acvm.Witness {
		ws := make([]acvm.Witness, n)
		for i := range ws {
			ws[i] = c.zero
		}
		return ws
	}

	b := c.b
	b.Return(callContext...)
	b.Return(c.argsHash)
	b.Return(c.returnValues[:]...)
	b.Return(zeros(rollup.MaxReadRequestsPerCall)...)
	b.Return(zeros(rollup.MaxNewCommitmentsPerCall)...)
	b.Return(zeros(rollup.MaxNewNullifiersPerCall)...)
	b.Return(zeros(rollup.MaxNewNullifiersPerCall)...)
	b.Return(zeros(rollup.MaxPrivateCallStackLengthPerCall)...)
	b.Return(zeros(rollup.MaxPublicCallStackLengthPerCall)...)
	b.Return(zeros(rollup.MaxNewL2ToL1MsgsPerCall)...)
	b.Return(zeros(2 * rollup.NumFieldsPerSha256)...)
	b.Return(zeros(2)...)
	b.Return(historic...)
	if c.hideDeployerKey {
		b.Return(c.zero, c.zero)
		b.Return(deployment[2:]...)
	} else {
		b.Return(deployment...)
	}
	b.Return(c.ChainID(), c.Version())

	bytecode, err := b.Compile()
	require.NoError(t, err)
	return bytecode
}

// secretFunction returns the artifact of a private function taking fieldArgs
// field arguments and returning one field.
func secretFunction(t *testing.T, name string, fieldArgs int, c *functionCircuit) *abi.FunctionArtifact {
	params := make([]abi.Parameter, fieldArgs)
	for i := range params {
		params[i] = abi.Parameter{
			Variable:   abi.Variable{Name: string(rune('a' + i)), Type: fieldType},
			Visibility: "private",
		}
	}
	return &abi.FunctionArtifact{
		FunctionAbi: abi.FunctionAbi{
			Name:         name,
			FunctionType: abi.FunctionTypeSecret,
			Parameters:   params,
			ReturnTypes:  []abi.Type{fieldType},
		},
		Bytecode:        c.Compile(t),
		VerificationKey: []byte(name + "-vk"),
	}
}
