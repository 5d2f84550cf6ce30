package abi

import (
	"fmt"
	"math/big"

	"github.com/zkrollup/pxe/model/fields"
)

// ReturnDecoder turns the raw return value fields of a call into typed values.
type ReturnDecoder func(f *FunctionAbi, values []fields.Fr) ([]any, error)

// DecodeReturnValues decodes one value per return type of f, reading values
// front to back. Decoded kinds map to Go types as follows: field to fields.Fr,
// boolean to bool, integer to *big.Int, array to []any, string to string and
// struct to map[string]any. Surplus fields are ignored.
func DecodeReturnValues(f *FunctionAbi, values []fields.Fr) ([]any, error) {
	r := fields.NewReader(values)
	out := make([]any, 0, len(f.ReturnTypes))
	for i, t := range f.ReturnTypes {
		v, err := decodeValue(r, t)
		if err != nil {
			return nil, fmt.Errorf("return value %d: %w", i, err)
		}
		out = append(out, v)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("not enough return values for %s: %w", f.Name, err)
	}
	return out, nil
}

func decodeValue(r *fields.Reader, t Type) (any, error) {
	switch t.Kind {
	case KindField:
		return r.ReadField(), nil

	case KindBoolean:
		return !r.ReadField().IsZero(), nil

	case KindInteger:
		n := r.ReadField().BigInt()
		if t.Sign == Signed && t.Width > 0 {
			half := new(big.Int).Lsh(big.NewInt(1), uint(t.Width-1))
			if n.Cmp(half) >= 0 {
				n.Sub(n, new(big.Int).Lsh(half, 1))
			}
		}
		return n, nil

	case KindArray:
		if t.Elem == nil {
			return nil, fmt.Errorf("array without element type")
		}
		items := make([]any, t.Length)
		for i := range items {
			v, err := decodeValue(r, *t.Elem)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil

	case KindString:
		buf := make([]byte, 0, t.Length)
		for i := 0; i < int(t.Length); i++ {
			c, err := r.ReadField().Uint64()
			if err != nil || c > 0xff {
				return nil, fmt.Errorf("string byte %d out of range", i)
			}
			buf = append(buf, byte(c))
		}
		return string(buf), nil

	case KindStruct:
		m := make(map[string]any, len(t.Fields))
		for _, field := range t.Fields {
			v, err := decodeValue(r, field.Type)
			if err != nil {
				return nil, fmt.Errorf("struct field %s: %w", field.Name, err)
			}
			m[field.Name] = v
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported abi type %q", t.Kind)
	}
}
