package simulator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
	"github.com/zkrollup/pxe/simulator"
	"github.com/zkrollup/pxe/simulator/errors"
	"github.com/zkrollup/pxe/utils/unittest"
)

func TestPackedArgsCache(t *testing.T) {
	t.Run("pack then unpack", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			values := rapid.SliceOfN(rapid.Uint64(), 0, 3*hash.ArgsHashChunkLength).Draw(t, "args")
			args := fields.FrsFromUint64s(values...)

			cache, err := simulator.NewPackedArgsCache(nil)
			require.NoError(t, err)

			h, err := cache.Pack(args)
			require.NoError(t, err)

			expected, err := hash.HashArgs(args)
			require.NoError(t, err)
			require.Equal(t, expected, h)

			unpacked, err := cache.Unpack(h)
			require.NoError(t, err)
			require.Equal(t, len(args), len(unpacked))
			for i := range args {
				require.Equal(t, args[i], unpacked[i])
			}
		})
	})

	t.Run("empty arguments are not stored", func(t *testing.T) {
		cache, err := simulator.NewPackedArgsCache(nil)
		require.NoError(t, err)

		h, err := cache.Pack(nil)
		require.NoError(t, err)
		assert.Equal(t, fields.Zero, h)
		assert.Equal(t, 0, cache.Size())

		args, err := cache.Unpack(fields.Zero)
		require.NoError(t, err)
		assert.NotNil(t, args)
		assert.Empty(t, args)
	})

	t.Run("packing twice keeps one entry", func(t *testing.T) {
		cache, err := simulator.NewPackedArgsCache(nil)
		require.NoError(t, err)

		args := unittest.FrFixtures(3)
		first, err := cache.Pack(args)
		require.NoError(t, err)
		second, err := cache.Pack(args)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.Size())
	})

	t.Run("unpacked arguments are copies", func(t *testing.T) {
		cache, err := simulator.NewPackedArgsCache(nil)
		require.NoError(t, err)

		args := fields.FrsFromUint64s(1, 2)
		h, err := cache.Pack(args)
		require.NoError(t, err)
		args[0] = fields.NewFr(100)

		unpacked, err := cache.Unpack(h)
		require.NoError(t, err)
		unpacked[1] = fields.NewFr(200)

		again, err := cache.Unpack(h)
		require.NoError(t, err)
		assert.Equal(t, fields.FrsFromUint64s(1, 2), again)
	})

	t.Run("unknown hash", func(t *testing.T) {
		cache, err := simulator.NewPackedArgsCache(nil)
		require.NoError(t, err)

		_, err = cache.Unpack(fields.NewFr(42))
		require.Error(t, err)
		assert.True(t, errors.IsPackedArgumentsNotFoundError(err))
	})

	t.Run("too many arguments", func(t *testing.T) {
		cache, err := simulator.NewPackedArgsCache(nil)
		require.NoError(t, err)

		_, err = cache.Pack(make([]fields.Fr, hash.ArgsHashChunkLength*hash.ArgsHashChunkCount+1))
		require.Error(t, err)
		assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInvalidPackedArgumentsError))
	})
}

func TestNewPackedArgsCache(t *testing.T) {
	valid := func(t *testing.T, values ...uint64) rollup.PackedArguments {
		packed, err := rollup.NewPackedArguments(fields.FrsFromUint64s(values...))
		require.NoError(t, err)
		return packed
	}

	t.Run("seeded entries can be unpacked", func(t *testing.T) {
		a := valid(t, 1, 2, 3)
		b := valid(t, 4)
		cache, err := simulator.NewPackedArgsCache([]rollup.PackedArguments{a, b, valid(t)})
		require.NoError(t, err)
		assert.Equal(t, 2, cache.Size())

		args, err := cache.Unpack(a.Hash)
		require.NoError(t, err)
		assert.Equal(t, a.Args, args)

		args, err = cache.Unpack(b.Hash)
		require.NoError(t, err)
		assert.Equal(t, b.Args, args)
	})

	t.Run("every mismatched entry is reported", func(t *testing.T) {
		bad1 := valid(t, 1)
		bad1.Hash = fields.NewFr(1)
		bad2 := valid(t, 2)
		bad2.Args = fields.FrsFromUint64s(3)

		_, err := simulator.NewPackedArgsCache([]rollup.PackedArguments{valid(t, 5), bad1, bad2})
		require.Error(t, err)
		assert.True(t, errors.HasErrorCode(err, errors.ErrCodeInvalidPackedArgumentsError))
		assert.False(t, errors.IsFailure(err))
		assert.Contains(t, err.Error(), "entry 1")
		assert.Contains(t, err.Error(), "entry 2")
	})
}

func TestPackedArgsCacheConcurrency(t *testing.T) {
	cache, err := simulator.NewPackedArgsCache(nil)
	require.NoError(t, err)

	const workers = 16
	hashes := make([]fields.Fr, workers)

	unittest.RequireConcurrentCallsReturnBefore(t, func(i int) {
		// every worker packs the same shared vector and one of its own
		shared, err := cache.Pack(fields.FrsFromUint64s(7, 7, 7))
		assert.NoError(t, err)
		own, err := cache.Pack(fields.FrsFromUint64s(uint64(i + 1)))
		assert.NoError(t, err)
		hashes[i] = own

		_, err = cache.Unpack(shared)
		assert.NoError(t, err)
	}, workers, time.Second)

	assert.Equal(t, workers+1, cache.Size())
	for i, h := range hashes {
		args, err := cache.Unpack(h)
		require.NoError(t, err)
		assert.Equal(t, fields.FrsFromUint64s(uint64(i+1)), args)
	}
}
