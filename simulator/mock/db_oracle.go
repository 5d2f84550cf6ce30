package mock

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	abi "github.com/zkrollup/pxe/model/abi"
	fields "github.com/zkrollup/pxe/model/fields"
	rollup "github.com/zkrollup/pxe/model/rollup"
)

// DBOracle is a mock type for the simulator.DBOracle type
type DBOracle struct {
	mock.Mock
}

// GetFunctionArtifact provides a mock function with given fields: ctx, contract, selector
func (_m *DBOracle) GetFunctionArtifact(ctx context.Context, contract rollup.Address, selector rollup.FunctionSelector) (*abi.FunctionArtifact, error) {
	ret := _m.Called(ctx, contract, selector)

	var r0 *abi.FunctionArtifact
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address, rollup.FunctionSelector) (*abi.FunctionArtifact, error)); ok {
		return rf(ctx, contract, selector)
	}
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address, rollup.FunctionSelector) *abi.FunctionArtifact); ok {
		r0 = rf(ctx, contract, selector)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*abi.FunctionArtifact)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, rollup.Address, rollup.FunctionSelector) error); ok {
		r1 = rf(ctx, contract, selector)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetPortalContractAddress provides a mock function with given fields: ctx, contract
func (_m *DBOracle) GetPortalContractAddress(ctx context.Context, contract rollup.Address) (rollup.EthAddress, error) {
	ret := _m.Called(ctx, contract)

	var r0 rollup.EthAddress
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address) (rollup.EthAddress, error)); ok {
		return rf(ctx, contract)
	}
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address) rollup.EthAddress); ok {
		r0 = rf(ctx, contract)
	} else {
		r0 = ret.Get(0).(rollup.EthAddress)
	}

	if rf, ok := ret.Get(1).(func(context.Context, rollup.Address) error); ok {
		r1 = rf(ctx, contract)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetSecretKey provides a mock function with given fields: ctx, contract, owner
func (_m *DBOracle) GetSecretKey(ctx context.Context, contract rollup.Address, owner fields.Point) (fields.Fr, error) {
	ret := _m.Called(ctx, contract, owner)

	var r0 fields.Fr
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address, fields.Point) (fields.Fr, error)); ok {
		return rf(ctx, contract, owner)
	}
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address, fields.Point) fields.Fr); ok {
		r0 = rf(ctx, contract, owner)
	} else {
		r0 = ret.Get(0).(fields.Fr)
	}

	if rf, ok := ret.Get(1).(func(context.Context, rollup.Address, fields.Point) error); ok {
		r1 = rf(ctx, contract, owner)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetPublicKey provides a mock function with given fields: ctx, address
func (_m *DBOracle) GetPublicKey(ctx context.Context, address rollup.Address) (fields.Point, fields.Fr, error) {
	ret := _m.Called(ctx, address)

	var r0 fields.Point
	var r1 fields.Fr
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address) (fields.Point, fields.Fr, error)); ok {
		return rf(ctx, address)
	}
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address) fields.Point); ok {
		r0 = rf(ctx, address)
	} else {
		r0 = ret.Get(0).(fields.Point)
	}

	if rf, ok := ret.Get(1).(func(context.Context, rollup.Address) fields.Fr); ok {
		r1 = rf(ctx, address)
	} else {
		r1 = ret.Get(1).(fields.Fr)
	}

	if rf, ok := ret.Get(2).(func(context.Context, rollup.Address) error); ok {
		r2 = rf(ctx, address)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// GetNotes provides a mock function with given fields: ctx, query
func (_m *DBOracle) GetNotes(ctx context.Context, query rollup.NoteQuery) ([]rollup.NoteData, error) {
	ret := _m.Called(ctx, query)

	var r0 []rollup.NoteData
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, rollup.NoteQuery) ([]rollup.NoteData, error)); ok {
		return rf(ctx, query)
	}
	if rf, ok := ret.Get(0).(func(context.Context, rollup.NoteQuery) []rollup.NoteData); ok {
		r0 = rf(ctx, query)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]rollup.NoteData)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, rollup.NoteQuery) error); ok {
		r1 = rf(ctx, query)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetL1ToL2Message provides a mock function with given fields: ctx, key
func (_m *DBOracle) GetL1ToL2Message(ctx context.Context, key fields.Fr) (rollup.MessageLoadOracleInputs, error) {
	ret := _m.Called(ctx, key)

	var r0 rollup.MessageLoadOracleInputs
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, fields.Fr) (rollup.MessageLoadOracleInputs, error)); ok {
		return rf(ctx, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, fields.Fr) rollup.MessageLoadOracleInputs); ok {
		r0 = rf(ctx, key)
	} else {
		r0 = ret.Get(0).(rollup.MessageLoadOracleInputs)
	}

	if rf, ok := ret.Get(1).(func(context.Context, fields.Fr) error); ok {
		r1 = rf(ctx, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetCommitment provides a mock function with given fields: ctx, contract, key
func (_m *DBOracle) GetCommitment(ctx context.Context, contract rollup.Address, key fields.Fr) (rollup.CommitmentDataOracleInputs, error) {
	ret := _m.Called(ctx, contract, key)

	var r0 rollup.CommitmentDataOracleInputs
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address, fields.Fr) (rollup.CommitmentDataOracleInputs, error)); ok {
		return rf(ctx, contract, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, rollup.Address, fields.Fr) rollup.CommitmentDataOracleInputs); ok {
		r0 = rf(ctx, contract, key)
	} else {
		r0 = ret.Get(0).(rollup.CommitmentDataOracleInputs)
	}

	if rf, ok := ret.Get(1).(func(context.Context, rollup.Address, fields.Fr) error); ok {
		r1 = rf(ctx, contract, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewDBOracle interface {
	mock.TestingT
	Cleanup(func())
}

// NewDBOracle creates a new instance of DBOracle. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewDBOracle(t mockConstructorTestingTNewDBOracle) *DBOracle {
	mock := &DBOracle{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
