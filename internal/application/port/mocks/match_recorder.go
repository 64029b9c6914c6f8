// Package mocks holds testify mocks for the application ports.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/bnema/tabmatch/internal/domain/url"
)

// MockMatchRecorder is a testify mock for port.MatchRecorder.
type MockMatchRecorder struct {
	mock.Mock
}

// MockMatchRecorder_Expecter records typed expectations.
type MockMatchRecorder_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expectation recorder.
func (_m *MockMatchRecorder) EXPECT() *MockMatchRecorder_Expecter {
	return &MockMatchRecorder_Expecter{mock: &_m.Mock}
}

// NewMockMatchRecorder creates a mock that asserts its expectations on cleanup.
func NewMockMatchRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMatchRecorder {
	m := &MockMatchRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockMatchRecorder) RecordMatch(cfg url.ScorerConfig, result url.MatchResult) {
	_m.Called(cfg, result)
}

type MockMatchRecorder_RecordMatch_Call struct {
	*mock.Call
}

func (_e *MockMatchRecorder_Expecter) RecordMatch(cfg interface{}, result interface{}) *MockMatchRecorder_RecordMatch_Call {
	return &MockMatchRecorder_RecordMatch_Call{Call: _e.mock.On("RecordMatch", cfg, result)}
}

func (_c *MockMatchRecorder_RecordMatch_Call) Run(run func(cfg url.ScorerConfig, result url.MatchResult)) *MockMatchRecorder_RecordMatch_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(url.ScorerConfig), args[1].(url.MatchResult))
	})
	return _c
}

func (_c *MockMatchRecorder_RecordMatch_Call) Return() *MockMatchRecorder_RecordMatch_Call {
	_c.Call.Return()
	return _c
}
