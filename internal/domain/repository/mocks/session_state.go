// Package mocks holds testify mocks for the repository ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/tabmatch/internal/domain/entity"
)

// MockSessionStateRepository is a testify mock for repository.SessionStateRepository.
type MockSessionStateRepository struct {
	mock.Mock
}

// MockSessionStateRepository_Expecter records typed expectations.
type MockSessionStateRepository_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expectation recorder.
func (_m *MockSessionStateRepository) EXPECT() *MockSessionStateRepository_Expecter {
	return &MockSessionStateRepository_Expecter{mock: &_m.Mock}
}

// NewMockSessionStateRepository creates a mock that asserts its expectations on cleanup.
func NewMockSessionStateRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionStateRepository {
	m := &MockSessionStateRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// SaveSnapshot

func (_m *MockSessionStateRepository) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	ret := _m.Called(ctx, state)
	if fn, ok := ret.Get(0).(func(context.Context, *entity.SessionState) error); ok {
		return fn(ctx, state)
	}
	return ret.Error(0)
}

type MockSessionStateRepository_SaveSnapshot_Call struct {
	*mock.Call
}

func (_e *MockSessionStateRepository_Expecter) SaveSnapshot(ctx interface{}, state interface{}) *MockSessionStateRepository_SaveSnapshot_Call {
	return &MockSessionStateRepository_SaveSnapshot_Call{Call: _e.mock.On("SaveSnapshot", ctx, state)}
}

func (_c *MockSessionStateRepository_SaveSnapshot_Call) Run(run func(ctx context.Context, state *entity.SessionState)) *MockSessionStateRepository_SaveSnapshot_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.SessionState))
	})
	return _c
}

func (_c *MockSessionStateRepository_SaveSnapshot_Call) Return(err error) *MockSessionStateRepository_SaveSnapshot_Call {
	_c.Call.Return(err)
	return _c
}

// GetSnapshot

func (_m *MockSessionStateRepository) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	ret := _m.Called(ctx, sessionID)
	var state *entity.SessionState
	if v := ret.Get(0); v != nil {
		state = v.(*entity.SessionState)
	}
	return state, ret.Error(1)
}

type MockSessionStateRepository_GetSnapshot_Call struct {
	*mock.Call
}

func (_e *MockSessionStateRepository_Expecter) GetSnapshot(ctx interface{}, sessionID interface{}) *MockSessionStateRepository_GetSnapshot_Call {
	return &MockSessionStateRepository_GetSnapshot_Call{Call: _e.mock.On("GetSnapshot", ctx, sessionID)}
}

func (_c *MockSessionStateRepository_GetSnapshot_Call) Return(state *entity.SessionState, err error) *MockSessionStateRepository_GetSnapshot_Call {
	_c.Call.Return(state, err)
	return _c
}

// DeleteSnapshot

func (_m *MockSessionStateRepository) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

type MockSessionStateRepository_DeleteSnapshot_Call struct {
	*mock.Call
}

func (_e *MockSessionStateRepository_Expecter) DeleteSnapshot(ctx interface{}, sessionID interface{}) *MockSessionStateRepository_DeleteSnapshot_Call {
	return &MockSessionStateRepository_DeleteSnapshot_Call{Call: _e.mock.On("DeleteSnapshot", ctx, sessionID)}
}

func (_c *MockSessionStateRepository_DeleteSnapshot_Call) Return(err error) *MockSessionStateRepository_DeleteSnapshot_Call {
	_c.Call.Return(err)
	return _c
}

// GetAllSnapshots

func (_m *MockSessionStateRepository) GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error) {
	ret := _m.Called(ctx)
	var states []*entity.SessionState
	if v := ret.Get(0); v != nil {
		states = v.([]*entity.SessionState)
	}
	return states, ret.Error(1)
}

type MockSessionStateRepository_GetAllSnapshots_Call struct {
	*mock.Call
}

func (_e *MockSessionStateRepository_Expecter) GetAllSnapshots(ctx interface{}) *MockSessionStateRepository_GetAllSnapshots_Call {
	return &MockSessionStateRepository_GetAllSnapshots_Call{Call: _e.mock.On("GetAllSnapshots", ctx)}
}

func (_c *MockSessionStateRepository_GetAllSnapshots_Call) Return(states []*entity.SessionState, err error) *MockSessionStateRepository_GetAllSnapshots_Call {
	_c.Call.Return(states, err)
	return _c
}

// GetTotalSnapshotsSize

func (_m *MockSessionStateRepository) GetTotalSnapshotsSize(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

type MockSessionStateRepository_GetTotalSnapshotsSize_Call struct {
	*mock.Call
}

func (_e *MockSessionStateRepository_Expecter) GetTotalSnapshotsSize(ctx interface{}) *MockSessionStateRepository_GetTotalSnapshotsSize_Call {
	return &MockSessionStateRepository_GetTotalSnapshotsSize_Call{Call: _e.mock.On("GetTotalSnapshotsSize", ctx)}
}

func (_c *MockSessionStateRepository_GetTotalSnapshotsSize_Call) Return(size int64, err error) *MockSessionStateRepository_GetTotalSnapshotsSize_Call {
	_c.Call.Return(size, err)
	return _c
}
