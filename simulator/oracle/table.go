package oracle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator/acvm"
	"github.com/zkrollup/pxe/simulator/errors"
)

// ack is returned by oracles that only record an effect.
func ack() []fields.Fr {
	return []fields.Fr{fields.Zero}
}

// Table dispatches foreign calls to a TypedOracle.
type Table struct {
	oracle TypedOracle
}

var _ acvm.ForeignCallHandler = (*Table)(nil)

func NewTable(oracle TypedOracle) *Table {
	return &Table{oracle: oracle}
}

// ForeignCall resolves name to a Kind and calls it.
func (t *Table) ForeignCall(ctx context.Context, name string, inputs [][]fields.Fr) ([]fields.Fr, error) {
	kind, ok := KindFromName(name)
	if !ok {
		return nil, errors.NewUnknownOracleError(name)
	}
	return t.Call(ctx, kind, inputs)
}

// Call runs the oracle of the given kind on solver encoded inputs.
func (t *Table) Call(ctx context.Context, kind Kind, inputs [][]fields.Fr) ([]fields.Fr, error) {
	in := &inputReader{kind: kind, inputs: inputs}

	switch kind {
	case KindPackArguments:
		var args []fields.Fr
		for _, group := range inputs {
			args = append(args, group...)
		}
		hash, err := t.oracle.PackArguments(ctx, args)
		if err != nil {
			return nil, err
		}
		return []fields.Fr{hash}, nil

	case KindUnpackArguments:
		hash := in.single(0)
		if err := in.done(1); err != nil {
			return nil, err
		}
		return t.oracle.UnpackArguments(ctx, hash)

	case KindGetSecretKey:
		owner := in.point(0)
		if err := in.done(1); err != nil {
			return nil, err
		}
		secret, err := t.oracle.GetSecretKey(ctx, owner)
		if err != nil {
			return nil, err
		}
		return []fields.Fr{secret}, nil

	case KindGetPublicKey:
		address := rollup.NewAddress(in.single(0))
		if err := in.done(1); err != nil {
			return nil, err
		}
		pub, partial, err := t.oracle.GetPublicKey(ctx, address)
		if err != nil {
			return nil, err
		}
		return []fields.Fr{pub.X, pub.Y, partial}, nil

	case KindGetNotes:
		return t.getNotes(ctx, in)

	case KindGetRandomField:
		if err := in.done(0); err != nil {
			return nil, err
		}
		r, err := t.oracle.GetRandomField(ctx)
		if err != nil {
			return nil, err
		}
		return []fields.Fr{r}, nil

	case KindNotifyCreatedNote:
		slot := in.single(0)
		preimage := in.vector(1)
		if err := in.done(2); err != nil {
			return nil, err
		}
		if err := t.oracle.NotifyCreatedNote(ctx, slot, preimage); err != nil {
			return nil, err
		}
		return ack(), nil

	case KindNotifyNullifiedNote:
		slot := in.single(0)
		nullifier := in.single(1)
		preimage := in.vector(2)
		if err := in.done(3); err != nil {
			return nil, err
		}
		if err := t.oracle.NotifyNullifiedNote(ctx, slot, nullifier, preimage); err != nil {
			return nil, err
		}
		return ack(), nil

	case KindCallPrivateFunction:
		target, selector, argsHash := in.call()
		if err := in.done(3); err != nil {
			return nil, err
		}
		item, err := t.oracle.CallPrivateFunction(ctx, target, selector, argsHash)
		if err != nil {
			return nil, err
		}
		return item.ToFields(), nil

	case KindGetL1ToL2Message:
		key := in.single(0)
		if err := in.done(1); err != nil {
			return nil, err
		}
		msg, err := t.oracle.GetL1ToL2Message(ctx, key)
		if err != nil {
			return nil, err
		}
		return msg.ToFields(), nil

	case KindGetCommitment:
		key := in.single(0)
		if err := in.done(1); err != nil {
			return nil, err
		}
		commitment, err := t.oracle.GetCommitment(ctx, key)
		if err != nil {
			return nil, err
		}
		return commitment.ToFields(), nil

	case KindDebugLog:
		if len(inputs) == 0 {
			return nil, errors.NewMalformedOracleInputsErrorf(kind.WireName(), "missing message")
		}
		var values []fields.Fr
		for _, group := range inputs[1:] {
			values = append(values, group...)
		}
		t.oracle.DebugLog(ctx, fieldsToString(inputs[0]), values)
		return ack(), nil

	case KindEnqueuePublicFunctionCall:
		target, selector, argsHash := in.call()
		if err := in.done(3); err != nil {
			return nil, err
		}
		req, err := t.oracle.EnqueuePublicFunctionCall(ctx, target, selector, argsHash)
		if err != nil {
			return nil, err
		}
		encoded, err := req.ToFields()
		if err != nil {
			return nil, errors.NewEncodingFailuref(err, "could not encode public call request")
		}
		return encoded, nil

	case KindEmitUnencryptedLog:
		message := in.vector(0)
		if err := in.done(1); err != nil {
			return nil, err
		}
		log, err := fieldsToBytes(message)
		if err != nil {
			return nil, errors.NewMalformedOracleInputsErrorf(kind.WireName(), "%v", err)
		}
		if err := t.oracle.EmitUnencryptedLog(ctx, log); err != nil {
			return nil, err
		}
		return ack(), nil

	case KindEmitEncryptedLog:
		contract := rollup.NewAddress(in.single(0))
		slot := in.single(1)
		owner := in.point(2)
		preimage := in.vector(3)
		if err := in.done(4); err != nil {
			return nil, err
		}
		if err := t.oracle.EmitEncryptedLog(ctx, contract, slot, owner, preimage); err != nil {
			return nil, err
		}
		return ack(), nil

	case KindGetContractAddress:
		if err := in.done(0); err != nil {
			return nil, err
		}
		return []fields.Fr{t.oracle.GetContractAddress(ctx).ToField()}, nil

	case KindGetChainID:
		if err := in.done(0); err != nil {
			return nil, err
		}
		return []fields.Fr{t.oracle.GetChainID(ctx)}, nil

	case KindGetVersion:
		if err := in.done(0); err != nil {
			return nil, err
		}
		return []fields.Fr{t.oracle.GetVersion(ctx)}, nil

	case KindGetPortalContractAddress:
		if err := in.done(0); err != nil {
			return nil, err
		}
		return []fields.Fr{rollup.EthAddressToField(t.oracle.GetPortalContractAddress(ctx))}, nil

	default:
		return nil, errors.NewUnknownOracleError(kind.String())
	}
}

// getNotes decodes [slot] [sortBy...] [sortOrder...] [limit] [offset]
// [returnSize] and encodes [count, (nonce, preimage...)*] padded or truncated
// to returnSize.
func (t *Table) getNotes(ctx context.Context, in *inputReader) ([]fields.Fr, error) {
	slot := in.single(0)
	sortBy := in.u32s(1)
	sortOrder := in.u32s(2)
	limit := in.u32(3)
	offset := in.u32(4)
	returnSize := in.u32(5)
	if err := in.done(6); err != nil {
		return nil, err
	}
	if returnSize > rollup.MaxGetNotesReturnLength {
		return nil, errors.NewMalformedOracleInputsErrorf(
			in.kind.WireName(),
			"return size %d exceeds %d",
			returnSize,
			rollup.MaxGetNotesReturnLength)
	}
	if len(sortBy) != len(sortOrder) {
		return nil, errors.NewMalformedOracleInputsErrorf(
			in.kind.WireName(),
			"%d sort fields but %d sort orders",
			len(sortBy),
			len(sortOrder))
	}

	req := NotesRequest{
		StorageSlot: slot,
		SortBy:      sortBy,
		SortOrder:   make([]rollup.SortOrder, len(sortOrder)),
		Limit:       limit,
		Offset:      offset,
	}
	for i, o := range sortOrder {
		if o > uint32(rollup.SortOrderAsc) {
			return nil, errors.NewMalformedOracleInputsErrorf(in.kind.WireName(), "invalid sort order %d", o)
		}
		req.SortOrder[i] = rollup.SortOrder(o)
	}

	notes, err := t.oracle.GetNotes(ctx, req)
	if err != nil {
		return nil, err
	}

	out := []fields.Fr{fields.NewFr(uint64(len(notes)))}
	for _, n := range notes {
		out = append(out, n.Nonce)
		out = append(out, n.Preimage...)
	}
	return fields.PadFrs(out, int(returnSize)), nil
}

// inputReader validates the shape of oracle inputs. The first problem is
// recorded and reported by done.
type inputReader struct {
	kind   Kind
	inputs [][]fields.Fr
	err    error
}

func (r *inputReader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = errors.NewMalformedOracleInputsErrorf(r.kind.WireName(), format, args...)
	}
}

func (r *inputReader) vector(i int) []fields.Fr {
	if i >= len(r.inputs) {
		r.fail("missing input %d", i)
		return nil
	}
	return r.inputs[i]
}

func (r *inputReader) single(i int) fields.Fr {
	v := r.vector(i)
	if v == nil && r.err != nil {
		return fields.Zero
	}
	if len(v) != 1 {
		r.fail("input %d has %d values, expected 1", i, len(v))
		return fields.Zero
	}
	return v[0]
}

func (r *inputReader) point(i int) fields.Point {
	v := r.vector(i)
	if v == nil && r.err != nil {
		return fields.Point{}
	}
	if len(v) != 2 {
		r.fail("input %d has %d values, expected point coordinates", i, len(v))
		return fields.Point{}
	}
	return fields.NewPoint(v[0], v[1])
}

func (r *inputReader) u32(i int) uint32 {
	f := r.single(i)
	n, err := f.Uint64()
	if err != nil || n > 0xffffffff {
		r.fail("input %d is not a 32 bit integer", i)
		return 0
	}
	return uint32(n)
}

func (r *inputReader) u32s(i int) []uint32 {
	v := r.vector(i)
	out := make([]uint32, len(v))
	for j, f := range v {
		n, err := f.Uint64()
		if err != nil || n > 0xffffffff {
			r.fail("input %d value %d is not a 32 bit integer", i, j)
			return nil
		}
		out[j] = uint32(n)
	}
	return out
}

// call reads the target, selector and args hash of a call request.
func (r *inputReader) call() (rollup.Address, rollup.FunctionSelector, fields.Fr) {
	target := rollup.NewAddress(r.single(0))
	selectorField := r.single(1)
	argsHash := r.single(2)
	selector, err := rollup.FunctionSelectorFromField(selectorField)
	if err != nil {
		r.fail("%v", err)
	}
	return target, selector, argsHash
}

func (r *inputReader) done(expected int) error {
	if r.err != nil {
		return r.err
	}
	if len(r.inputs) != expected {
		return errors.NewMalformedOracleInputsErrorf(
			r.kind.WireName(),
			"got %d inputs, expected %d",
			len(r.inputs),
			expected)
	}
	return nil
}

// fieldsToBytes decodes a byte string carried one byte per field.
func fieldsToBytes(fs []fields.Fr) ([]byte, error) {
	out := make([]byte, len(fs))
	for i, f := range fs {
		n, err := f.Uint64()
		if err != nil || n > 0xff {
			return nil, fmt.Errorf("field %d does not hold a byte", i)
		}
		out[i] = byte(n)
	}
	return out, nil
}

// fieldsToString decodes a debug message. Fields that do not hold a byte are
// rendered in hex.
func fieldsToString(fs []fields.Fr) string {
	var sb strings.Builder
	for _, f := range fs {
		n, err := f.Uint64()
		if err != nil || n > 0xff {
			sb.WriteString(f.String())
			continue
		}
		sb.WriteByte(byte(n))
	}
	return sb.String()
}

// FormatDebugMessage replaces the placeholders {0}, {1}, ... in message with
// the hex encoding of the matching value. Placeholders without a value are
// left as they are.
func FormatDebugMessage(message string, values []fields.Fr) string {
	var sb strings.Builder
	for {
		start := strings.IndexByte(message, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(message[start:], '}')
		if end < 0 {
			break
		}
		end += start
		idx, err := strconv.Atoi(message[start+1 : end])
		if err != nil || idx < 0 || idx >= len(values) {
			sb.WriteString(message[:end+1])
		} else {
			sb.WriteString(message[:start])
			sb.WriteString(values[idx].String())
		}
		message = message[end+1:]
	}
	sb.WriteString(message)
	return sb.String()
}
