// Package iocache provides durable storage for probe outcomes and
// evaluation results across sqlite, mysql and postgresql backends.
package iocache

import (
	"sync"

	"github.com/oeg-upm/metacheck/internal/contract"
)

// StoreManagerImpl manages the probe cache and results stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	cache        contract.CacheStore
	results      contract.ResultsStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetCacheStore returns the probe cache store.
func (mgr *StoreManagerImpl) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.cache
}

// GetResultsStore returns the results store.
func (mgr *StoreManagerImpl) GetResultsStore() contract.ResultsStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.results
}
