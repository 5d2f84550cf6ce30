// Package hash implements the field hashing used to commit to call data and
// side effects, and the byte hashing used for log commitments.
package hash

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	sha256 "github.com/minio/sha256-simd"

	"github.com/zkrollup/pxe/model/fields"
)

// GeneratorIndex domain-separates hashes of different structures so that two
// structures with the same field serialization never collide.
type GeneratorIndex uint32

const (
	GeneratorIndexCommitment                 GeneratorIndex = 1
	GeneratorIndexCommitmentNonce            GeneratorIndex = 2
	GeneratorIndexUniqueCommitment           GeneratorIndex = 3
	GeneratorIndexSiloedCommitment           GeneratorIndex = 4
	GeneratorIndexNullifier                  GeneratorIndex = 5
	GeneratorIndexOuterNullifier             GeneratorIndex = 7
	GeneratorIndexFunctionData               GeneratorIndex = 10
	GeneratorIndexContractDeploymentData     GeneratorIndex = 12
	GeneratorIndexCallContext                GeneratorIndex = 17
	GeneratorIndexCallStackItem              GeneratorIndex = 18
	GeneratorIndexL1ToL2MessageSecret        GeneratorIndex = 20
	GeneratorIndexTxContext                  GeneratorIndex = 22
	GeneratorIndexPartialAddress             GeneratorIndex = 27
	GeneratorIndexTxRequest                  GeneratorIndex = 33
	GeneratorIndexPrivateCircuitPublicInputs GeneratorIndex = 42
	GeneratorIndexPublicCircuitPublicInputs  GeneratorIndex = 43
	GeneratorIndexFunctionArgs               GeneratorIndex = 44
)

const (
	// ArgsHashChunkLength is the number of arguments hashed together before
	// the chunk hashes are combined.
	ArgsHashChunkLength = 32
	// ArgsHashChunkCount bounds the number of chunks, hence the argument count.
	ArgsHashChunkCount = 16
)

// HashFields hashes inputs under the given generator index with MiMC over the
// BN254 scalar field.
func HashFields(index GeneratorIndex, inputs []fields.Fr) fields.Fr {
	h := mimc.NewMiMC()
	write := func(f fields.Fr) {
		b := f.Bytes()
		// canonical encodings never fail to absorb
		if _, err := h.Write(b[:]); err != nil {
			panic(fmt.Sprintf("mimc rejected canonical field element %s: %v", f, err))
		}
	}
	write(fields.NewFr(uint64(index)))
	for _, in := range inputs {
		write(in)
	}
	sum, err := fields.FrFromBytes(h.Sum(nil))
	if err != nil {
		panic(fmt.Sprintf("mimc produced a non canonical digest: %v", err))
	}
	return sum
}

// HashArgs computes the hash under which an argument vector is packed. The
// empty vector hashes to zero. Arguments are hashed in chunks of
// ArgsHashChunkLength and the chunk hashes are hashed together.
func HashArgs(args []fields.Fr) (fields.Fr, error) {
	if len(args) == 0 {
		return fields.Zero, nil
	}
	if len(args) > ArgsHashChunkLength*ArgsHashChunkCount {
		return fields.Zero, fmt.Errorf(
			"cannot hash more than %d arguments, got %d",
			ArgsHashChunkLength*ArgsHashChunkCount,
			len(args))
	}

	chunks := make([]fields.Fr, 0, ArgsHashChunkCount)
	for start := 0; start < len(args); start += ArgsHashChunkLength {
		end := start + ArgsHashChunkLength
		if end > len(args) {
			end = len(args)
		}
		chunks = append(chunks, HashFields(GeneratorIndexFunctionArgs, args[start:end]))
	}
	return HashFields(GeneratorIndexFunctionArgs, chunks), nil
}

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ToTwoFields splits a 32 byte digest into its high and low 128 bit halves so
// that it can be carried by two field elements without reduction.
func ToTwoFields(digest [32]byte) [2]fields.Fr {
	hi, _ := fields.FrFromBytes(digest[:16])
	lo, _ := fields.FrFromBytes(digest[16:])
	return [2]fields.Fr{hi, lo}
}
