package simulator

import (
	"sync"

	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator/errors"
)

// PackedArgsCache maps argument hashes to argument vectors. It is shared by
// every call frame of a transaction. Entries are written once and never
// changed.
type PackedArgsCache struct {
	mu    sync.RWMutex
	cache map[fields.Fr][]fields.Fr
}

// NewPackedArgsCache seeds a cache with the packed arguments of a request.
// Every entry must carry the hash of its arguments.
func NewPackedArgsCache(initial []rollup.PackedArguments) (*PackedArgsCache, error) {
	c := &PackedArgsCache{
		cache: make(map[fields.Fr][]fields.Fr, len(initial)),
	}

	errs := errors.NewErrorsCollector()
	for i, packed := range initial {
		h, err := hash.HashArgs(packed.Args)
		if err != nil {
			errs.Collect(errors.NewInvalidPackedArgumentsErrorf("entry %d: %v", i, err))
			continue
		}
		if h != packed.Hash {
			errs.Collect(errors.NewInvalidPackedArgumentsErrorf(
				"entry %d: hash %s does not match its %d arguments (expected %s)",
				i,
				packed.Hash,
				len(packed.Args),
				h))
			continue
		}
		c.insert(h, packed.Args)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return c, nil
}

// Pack stores args and returns their hash. The empty vector hashes to zero and
// is never stored.
func (c *PackedArgsCache) Pack(args []fields.Fr) (fields.Fr, error) {
	if len(args) == 0 {
		return fields.Zero, nil
	}
	h, err := hash.HashArgs(args)
	if err != nil {
		return fields.Zero, errors.NewInvalidPackedArgumentsErrorf("%v", err)
	}
	c.insert(h, args)
	return h, nil
}

// Unpack returns a copy of the arguments packed under h.
func (c *PackedArgsCache) Unpack(h fields.Fr) ([]fields.Fr, error) {
	if h.IsZero() {
		return []fields.Fr{}, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	args, ok := c.cache[h]
	if !ok {
		return nil, errors.NewPackedArgumentsNotFoundError(h)
	}
	return append([]fields.Fr{}, args...), nil
}

// Size returns the number of stored argument vectors.
func (c *PackedArgsCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.cache)
}

func (c *PackedArgsCache) insert(h fields.Fr, args []fields.Fr) {
	if len(args) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[h]; ok {
		return
	}
	c.cache[h] = append([]fields.Fr{}, args...)
}
