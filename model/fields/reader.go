package fields

import "fmt"

// Reader consumes a field vector front to back. It is used to decode
// structures from the flat layouts the circuits produce.
type Reader struct {
	fields []Fr
	offset int
	err    error
}

// NewReader creates a Reader over fs.
func NewReader(fs []Fr) *Reader {
	return &Reader{fields: fs}
}

// ReadField returns the next field. Reading past the end records an error and
// returns zero; check Err once decoding is done.
func (r *Reader) ReadField() Fr {
	if r.err != nil {
		return Zero
	}
	if r.offset >= len(r.fields) {
		r.err = fmt.Errorf("field reader exhausted after %d fields", len(r.fields))
		return Zero
	}
	f := r.fields[r.offset]
	r.offset++
	return f
}

// ReadFields returns the next n fields.
func (r *Reader) ReadFields(n int) []Fr {
	res := make([]Fr, n)
	for i := range res {
		res[i] = r.ReadField()
	}
	return res
}

// ReadBool reads a field that must be 0 or 1.
func (r *Reader) ReadBool() bool {
	f := r.ReadField()
	if r.err != nil {
		return false
	}
	b, err := f.Bool()
	if err != nil {
		r.err = fmt.Errorf("field %d: %w", r.offset-1, err)
	}
	return b
}

// Remaining returns how many fields are left to read.
func (r *Reader) Remaining() int {
	return len(r.fields) - r.offset
}

// Err returns the first decoding error, if any.
func (r *Reader) Err() error {
	return r.err
}
