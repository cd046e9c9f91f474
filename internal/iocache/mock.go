package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetCacheStore implements the StoreManager interface.
func (m *MockStoreManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetResultsStore implements the StoreManager interface.
func (m *MockStoreManager) GetResultsStore() contract.ResultsStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ResultsStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(url string) (schema.ProbeOutcome, int64, bool, error) {
	args := m.Called(url)
	return args.Get(0).(schema.ProbeOutcome), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(url string, outcome schema.ProbeOutcome, timestamp int64) error {
	args := m.Called(url, outcome, timestamp)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockResultsStore is a mock implementation of ResultsStore for testing.
type MockResultsStore struct {
	mock.Mock
}

var _ contract.ResultsStore = &MockResultsStore{} // Compile-time check

// BeginRun implements the ResultsStore interface.
func (m *MockResultsStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the ResultsStore interface.
func (m *MockResultsStore) EndRun(runID int64, endTime time.Time, totalRepos int) error {
	args := m.Called(runID, endTime, totalRepos)
	return args.Error(0)
}

// RecordFinding implements the ResultsStore interface.
func (m *MockResultsStore) RecordFinding(runID int64, finding schema.Finding) error {
	args := m.Called(runID, finding)
	return args.Error(0)
}

// ExportFindings implements the ResultsStore interface.
func (m *MockResultsStore) ExportFindings() ([]schema.StoredFinding, error) {
	args := m.Called()
	findings, _ := args.Get(0).([]schema.StoredFinding)
	return findings, args.Error(1)
}

// GetStatus implements the ResultsStore interface.
func (m *MockResultsStore) GetStatus() (schema.ResultsStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ResultsStatus), args.Error(1)
}

// Clear implements the ResultsStore interface.
func (m *MockResultsStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the ResultsStore interface.
func (m *MockResultsStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
