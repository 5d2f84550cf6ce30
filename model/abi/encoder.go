package abi

import (
	"fmt"
	"math/big"

	"github.com/zkrollup/pxe/model/fields"
)

// EncodeArguments flattens typed arguments into the field vector expected by
// the function's circuit. Accepted Go values per kind:
//
//	field:   fields.Fr, uint64, int, *big.Int
//	boolean: bool
//	integer: uint64, int64, int, *big.Int
//	array:   []any
//	string:  string
//	struct:  map[string]any
func EncodeArguments(f *FunctionAbi, args []any) ([]fields.Fr, error) {
	if len(args) != len(f.Parameters) {
		return nil, fmt.Errorf("function %s expects %d arguments, got %d", f.Name, len(f.Parameters), len(args))
	}
	out := make([]fields.Fr, 0, CountArgumentsSize(f))
	for i, p := range f.Parameters {
		var err error
		out, err = encodeValue(out, p.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", p.Name, err)
		}
	}
	return out, nil
}

func encodeValue(out []fields.Fr, t Type, v any) ([]fields.Fr, error) {
	switch t.Kind {
	case KindField:
		f, err := toField(v)
		if err != nil {
			return nil, err
		}
		return append(out, f), nil

	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return append(out, fields.NewFrFromBool(b)), nil

	case KindInteger:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		f, err := encodeInteger(t, n)
		if err != nil {
			return nil, err
		}
		return append(out, f), nil

	case KindArray:
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("expected []any, got %T", v)
		}
		if len(items) != int(t.Length) || t.Elem == nil {
			return nil, fmt.Errorf("expected array of length %d, got %d", t.Length, len(items))
		}
		for i, item := range items {
			var err error
			out, err = encodeValue(out, *t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return out, nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if len(s) > int(t.Length) {
			return nil, fmt.Errorf("string of %d bytes exceeds length %d", len(s), t.Length)
		}
		for i := 0; i < int(t.Length); i++ {
			var c byte
			if i < len(s) {
				c = s[i]
			}
			out = append(out, fields.NewFr(uint64(c)))
		}
		return out, nil

	case KindStruct:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected map[string]any, got %T", v)
		}
		for _, field := range t.Fields {
			fv, ok := m[field.Name]
			if !ok {
				return nil, fmt.Errorf("missing struct field %s", field.Name)
			}
			var err error
			out, err = encodeValue(out, field.Type, fv)
			if err != nil {
				return nil, fmt.Errorf("struct field %s: %w", field.Name, err)
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported abi type %q", t.Kind)
	}
}

// encodeInteger range checks n against the type width. Negative values are
// stored in two's complement within the width.
func encodeInteger(t Type, n *big.Int) (fields.Fr, error) {
	if t.Width == 0 || t.Width > 253 {
		return fields.Zero, fmt.Errorf("unsupported integer width %d", t.Width)
	}
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(t.Width))
	if t.Sign == Signed {
		half := new(big.Int).Rsh(modulus, 1)
		if n.Cmp(half) >= 0 || n.Cmp(new(big.Int).Neg(half)) < 0 {
			return fields.Zero, fmt.Errorf("%s does not fit in i%d", n, t.Width)
		}
		if n.Sign() < 0 {
			n = new(big.Int).Add(n, modulus)
		}
		return fields.FrFromBig(n), nil
	}
	if n.Sign() < 0 || n.Cmp(modulus) >= 0 {
		return fields.Zero, fmt.Errorf("%s does not fit in u%d", n, t.Width)
	}
	return fields.FrFromBig(n), nil
}

func toField(v any) (fields.Fr, error) {
	if f, ok := v.(fields.Fr); ok {
		return f, nil
	}
	n, err := toBig(v)
	if err != nil {
		return fields.Zero, err
	}
	if n.Sign() < 0 {
		return fields.Zero, fmt.Errorf("negative field value %s", n)
	}
	return fields.FrFromBig(n), nil
}

func toBig(v any) (*big.Int, error) {
	switch n := v.(type) {
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case int64:
		return big.NewInt(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case *big.Int:
		return new(big.Int).Set(n), nil
	default:
		return nil, fmt.Errorf("expected a number, got %T", v)
	}
}
