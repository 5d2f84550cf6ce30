package unittest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/zkrollup/pxe/crypto/encryption"
	"github.com/zkrollup/pxe/model/fields"
	"github.com/zkrollup/pxe/model/rollup"
)

// GetPRG returns a math/rand PRG that can be used for deterministic randomness
// in tests only. The PRG seed is logged in case the test iteration needs to
// be reproduced.
func GetPRG(t testing.TB) *rand.Rand {
	seed := time.Now().UnixNano()
	t.Logf("rng seed is %d", seed)
	return SeededPRG(seed)
}

// SeededPRG returns a PRG producing the same stream for the same seed.
func SeededPRG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func FrFixture() fields.Fr {
	f, err := fields.RandomFr(SeededPRG(rand.Int63()))
	if err != nil {
		panic(err)
	}
	return f
}

func FrFixtures(n int) []fields.Fr {
	fs := make([]fields.Fr, n)
	for i := range fs {
		fs[i] = FrFixture()
	}
	return fs
}

func AddressFixture() rollup.Address {
	return rollup.NewAddress(FrFixture())
}

func EthAddressFixture() rollup.EthAddress {
	var a common.Address
	_, _ = rand.Read(a[:])
	return a
}

func HistoricTreeRootsFixture() rollup.HistoricTreeRoots {
	return rollup.HistoricTreeRoots{
		PrivateDataTreeRoot:     FrFixture(),
		NullifierTreeRoot:       FrFixture(),
		ContractTreeRoot:        FrFixture(),
		L1ToL2MessagesTreeRoot:  FrFixture(),
		PrivateKernelVkTreeRoot: FrFixture(),
	}
}

// TxContextFixture returns the context of a plain transaction on chain 10,
// version 20.
func TxContextFixture() rollup.TxContext {
	return rollup.TxContext{
		ChainID: fields.NewFr(10),
		Version: fields.NewFr(20),
	}
}

func ContractDeploymentDataFixture(curve *encryption.Curve) rollup.ContractDeploymentData {
	return rollup.ContractDeploymentData{
		DeployerPublicKey:     KeyPairFixture(curve).Public,
		ConstructorVkHash:     FrFixture(),
		FunctionTreeRoot:      FrFixture(),
		ContractAddressSalt:   FrFixture(),
		PortalContractAddress: EthAddressFixture(),
	}
}

func KeyPairFixture(curve *encryption.Curve) encryption.KeyPair {
	kp, err := curve.GenerateKeyPair(SeededPRG(rand.Int63()))
	if err != nil {
		panic(err)
	}
	return kp
}

func NoteDataFixture(contract rollup.Address, slot fields.Fr, preimageLength int) rollup.NoteData {
	return rollup.NoteData{
		ContractAddress: contract,
		StorageSlot:     slot,
		Nonce:           FrFixture(),
		Preimage:        FrFixtures(preimageLength),
		InnerNoteHash:   FrFixture(),
		SiloedNullifier: FrFixture(),
		Index:           rand.Uint64(),
	}
}
