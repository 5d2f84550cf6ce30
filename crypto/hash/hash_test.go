package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkrollup/pxe/crypto/hash"
	"github.com/zkrollup/pxe/model/fields"
)

func TestHashFields(t *testing.T) {
	inputs := fields.FrsFromUint64s(1, 2, 3)

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t,
			hash.HashFields(hash.GeneratorIndexCallContext, inputs),
			hash.HashFields(hash.GeneratorIndexCallContext, inputs))
	})

	t.Run("generator index separates domains", func(t *testing.T) {
		assert.NotEqual(t,
			hash.HashFields(hash.GeneratorIndexCallContext, inputs),
			hash.HashFields(hash.GeneratorIndexFunctionData, inputs))
	})

	t.Run("order matters", func(t *testing.T) {
		assert.NotEqual(t,
			hash.HashFields(hash.GeneratorIndexCallContext, inputs),
			hash.HashFields(hash.GeneratorIndexCallContext, fields.FrsFromUint64s(3, 2, 1)))
	})
}

func TestHashArgs(t *testing.T) {

	t.Run("empty vector hashes to zero", func(t *testing.T) {
		h, err := hash.HashArgs(nil)
		require.NoError(t, err)
		require.True(t, h.IsZero())
	})

	t.Run("non empty vector", func(t *testing.T) {
		h, err := hash.HashArgs(fields.FrsFromUint64s(1))
		require.NoError(t, err)
		require.False(t, h.IsZero())

		other, err := hash.HashArgs(fields.FrsFromUint64s(1, 0))
		require.NoError(t, err)
		require.NotEqual(t, h, other)
	})

	t.Run("spans several chunks", func(t *testing.T) {
		args := make([]fields.Fr, hash.ArgsHashChunkLength+1)
		for i := range args {
			args[i] = fields.NewFr(uint64(i))
		}
		h, err := hash.HashArgs(args)
		require.NoError(t, err)
		require.False(t, h.IsZero())
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := hash.HashArgs(make([]fields.Fr, hash.ArgsHashChunkLength*hash.ArgsHashChunkCount+1))
		require.Error(t, err)
	})
}

func TestToTwoFields(t *testing.T) {
	var digest [32]byte
	digest[15] = 1
	digest[31] = 2

	split := hash.ToTwoFields(digest)
	require.Equal(t, fields.NewFr(1), split[0])
	require.Equal(t, fields.NewFr(2), split[1])
}
