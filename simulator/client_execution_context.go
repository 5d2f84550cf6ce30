package simulator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zkrollup/pxe/crypto/encryption"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator/errors"
	"github.com/zkrollup/pxe/simulator/oracle"
)

// ClientExecutionContext is the host state of one private function call. It
// answers the call's oracles and accumulates the call's own side effects;
// side effects of nested calls stay in the nested ExecutionResult.
type ClientExecutionContext struct {
	sim *Simulator
	log zerolog.Logger

	// shared by every frame of the transaction
	packedArgs    *PackedArgsCache
	pendingNotes  *PendingNotes
	txContext     rollup.TxContext
	historicRoots rollup.HistoricTreeRoots

	contractAddress rollup.Address
	callContext     rollup.CallContext
	depth           int

	newNotes            []rollup.NewNoteData
	nullifiedNotes      []rollup.NewNullifierData
	nestedExecutions    []*ExecutionResult
	enqueuedPublicCalls []*rollup.PublicCallRequest
	encryptedLogs       *rollup.FunctionL2Logs
	unencryptedLogs     *rollup.FunctionL2Logs
}

var _ oracle.TypedOracle = (*ClientExecutionContext)(nil)

func newClientExecutionContext(
	sim *Simulator,
	packedArgs *PackedArgsCache,
	pendingNotes *PendingNotes,
	txContext rollup.TxContext,
	historicRoots rollup.HistoricTreeRoots,
	contractAddress rollup.Address,
	callContext rollup.CallContext,
	depth int,
) *ClientExecutionContext {
	return &ClientExecutionContext{
		sim:             sim,
		log:             sim.ctx.Logger,
		packedArgs:      packedArgs,
		pendingNotes:    pendingNotes,
		txContext:       txContext,
		historicRoots:   historicRoots,
		contractAddress: contractAddress,
		callContext:     callContext,
		depth:           depth,
		encryptedLogs:   rollup.NewFunctionL2Logs(),
		unencryptedLogs: rollup.NewFunctionL2Logs(),
	}
}

// child returns the context of a nested call to target. It shares the
// transaction wide state and starts with empty accumulators.
func (c *ClientExecutionContext) child(target rollup.Address, callContext rollup.CallContext) *ClientExecutionContext {
	return newClientExecutionContext(
		c.sim,
		c.packedArgs,
		c.pendingNotes,
		c.txContext,
		c.historicRoots,
		target,
		callContext,
		c.depth+1)
}

func (c *ClientExecutionContext) PackArguments(_ context.Context, args []fields.Fr) (fields.Fr, error) {
	return c.packedArgs.Pack(args)
}

func (c *ClientExecutionContext) UnpackArguments(_ context.Context, hash fields.Fr) ([]fields.Fr, error) {
	return c.packedArgs.Unpack(hash)
}

func (c *ClientExecutionContext) GetSecretKey(ctx context.Context, owner fields.Point) (fields.Fr, error) {
	secret, err := c.sim.db.GetSecretKey(ctx, c.contractAddress, owner)
	if err != nil {
		return fields.Zero, errors.NewSecretKeyNotFoundError(c.contractAddress, owner, err)
	}
	return secret, nil
}

func (c *ClientExecutionContext) GetPublicKey(ctx context.Context, address rollup.Address) (fields.Point, fields.Fr, error) {
	pub, partial, err := c.sim.db.GetPublicKey(ctx, address)
	if err != nil {
		return fields.Point{}, fields.Zero, errors.NewPublicKeyNotFoundError(address, err)
	}
	return pub, partial, nil
}

// GetNotes queries the notes of the calling contract only. Notes created
// earlier in the transaction are included and nullified ones are left out.
func (c *ClientExecutionContext) GetNotes(ctx context.Context, req oracle.NotesRequest) ([]rollup.NoteData, error) {
	query := rollup.NoteQuery{
		ContractAddress: c.contractAddress,
		StorageSlot:     req.StorageSlot,
		SortBy:          req.SortBy,
		SortOrder:       req.SortOrder,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}
	if !c.pendingNotes.Affects(c.contractAddress, req.StorageSlot) {
		notes, err := c.sim.db.GetNotes(ctx, query)
		if err != nil {
			return nil, errors.NewNoteQueryError(c.contractAddress, req.StorageSlot, err)
		}
		return notes, nil
	}

	// the page is cut after merging, so ask for everything up to its end
	dbQuery := query
	dbQuery.Offset = 0
	if query.Limit > 0 {
		dbQuery.Limit = query.Offset + query.Limit
	}
	persisted, err := c.sim.db.GetNotes(ctx, dbQuery)
	if err != nil {
		return nil, errors.NewNoteQueryError(c.contractAddress, req.StorageSlot, err)
	}
	return c.pendingNotes.Merge(query, persisted), nil
}

func (c *ClientExecutionContext) GetRandomField(context.Context) (fields.Fr, error) {
	r, err := fields.RandomFr(c.sim.ctx.Randomness)
	if err != nil {
		return fields.Zero, errors.NewRandomnessFailure(err)
	}
	return r, nil
}

func (c *ClientExecutionContext) NotifyCreatedNote(_ context.Context, storageSlot fields.Fr, preimage []fields.Fr) error {
	c.newNotes = append(c.newNotes, rollup.NewNoteData{
		StorageSlot: storageSlot,
		Preimage:    append([]fields.Fr{}, preimage...),
	})
	c.pendingNotes.Add(c.contractAddress, storageSlot, preimage)
	return nil
}

func (c *ClientExecutionContext) NotifyNullifiedNote(
	_ context.Context,
	storageSlot fields.Fr,
	nullifier fields.Fr,
	preimage []fields.Fr,
) error {
	nullified := rollup.NewNullifierData{
		StorageSlot: storageSlot,
		Nullifier:   nullifier,
		Preimage:    append([]fields.Fr{}, preimage...),
	}
	c.nullifiedNotes = append(c.nullifiedNotes, nullified)
	c.pendingNotes.Nullify(c.contractAddress, nullified)
	return nil
}

// CallPrivateFunction runs the nested call to completion before returning.
// Its result is recorded as the next nested execution of this call.
func (c *ClientExecutionContext) CallPrivateFunction(
	ctx context.Context,
	target rollup.Address,
	selector rollup.FunctionSelector,
	argsHash fields.Fr,
) (*rollup.PrivateCallStackItem, error) {
	result, err := c.sim.callPrivateFunction(ctx, c, target, selector, argsHash)
	if err != nil {
		return nil, err
	}
	c.nestedExecutions = append(c.nestedExecutions, result)
	return result.CallStackItem, nil
}

func (c *ClientExecutionContext) GetL1ToL2Message(ctx context.Context, key fields.Fr) (rollup.MessageLoadOracleInputs, error) {
	msg, err := c.sim.db.GetL1ToL2Message(ctx, key)
	if err != nil {
		return rollup.MessageLoadOracleInputs{}, errors.NewL1ToL2MessageNotFoundError(key, err)
	}
	return msg, nil
}

func (c *ClientExecutionContext) GetCommitment(ctx context.Context, key fields.Fr) (rollup.CommitmentDataOracleInputs, error) {
	commitment, err := c.sim.db.GetCommitment(ctx, c.contractAddress, key)
	if err != nil {
		return rollup.CommitmentDataOracleInputs{}, errors.NewCommitmentNotFoundError(c.contractAddress, key, err)
	}
	return commitment, nil
}

func (c *ClientExecutionContext) DebugLog(_ context.Context, message string, values []fields.Fr) {
	c.log.Debug().
		Str("contract", c.contractAddress.String()).
		Int("depth", c.depth).
		Msg(oracle.FormatDebugMessage(message, values))
}

// EnqueuePublicFunctionCall records a public call to run after the private
// part of the transaction. Nothing is executed here.
func (c *ClientExecutionContext) EnqueuePublicFunctionCall(
	ctx context.Context,
	target rollup.Address,
	selector rollup.FunctionSelector,
	argsHash fields.Fr,
) (*rollup.PublicCallRequest, error) {
	args, err := c.packedArgs.Unpack(argsHash)
	if err != nil {
		return nil, err
	}
	portal, err := c.sim.db.GetPortalContractAddress(ctx, target)
	if err != nil {
		return nil, errors.NewPortalAddressNotFoundError(target, err)
	}

	req := &rollup.PublicCallRequest{
		ContractAddress: target,
		FunctionData: rollup.FunctionData{
			Selector: selector,
		},
		CallContext: rollup.NestedCallContext(c.callContext, target, portal),
		Args:        args,
	}
	c.enqueuedPublicCalls = append(c.enqueuedPublicCalls, req)

	c.log.Debug().
		Str("target", target.String()).
		Str("selector", selector.String()).
		Msg("enqueued public function call")
	return req, nil
}

func (c *ClientExecutionContext) EmitUnencryptedLog(_ context.Context, log []byte) error {
	c.unencryptedLogs.Append(log)
	return nil
}

// EmitEncryptedLog encrypts the spending info of a note for owner and
// records the ciphertext.
func (c *ClientExecutionContext) EmitEncryptedLog(
	_ context.Context,
	contract rollup.Address,
	storageSlot fields.Fr,
	owner fields.Point,
	preimage []fields.Fr,
) error {
	info := rollup.NoteSpendingInfo{
		NotePreimage:    preimage,
		ContractAddress: contract,
		StorageSlot:     storageSlot,
	}
	ciphertext, err := c.sim.ctx.Curve.Encrypt(info.ToBuffer(), owner, c.sim.ctx.Randomness)
	switch {
	case err == nil:
	case errors.Is(err, encryption.ErrInvalidOwnerKey):
		return errors.NewMalformedOracleInputsErrorf(
			oracle.KindEmitEncryptedLog.WireName(),
			"%v",
			err)
	case encryption.IsRandomnessError(err):
		return errors.NewRandomnessFailure(err)
	default:
		return errors.NewEncodingFailuref(err, "could not encrypt note spending info for %s", owner)
	}
	c.encryptedLogs.Append(ciphertext)
	return nil
}

func (c *ClientExecutionContext) GetContractAddress(context.Context) rollup.Address {
	return c.contractAddress
}

func (c *ClientExecutionContext) GetChainID(context.Context) fields.Fr {
	return c.txContext.ChainID
}

func (c *ClientExecutionContext) GetVersion(context.Context) fields.Fr {
	return c.txContext.Version
}

func (c *ClientExecutionContext) GetPortalContractAddress(context.Context) rollup.EthAddress {
	return c.callContext.PortalContractAddress
}
