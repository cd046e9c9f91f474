package core

import (
	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/internal/webprobe"
)

// BuildProber assembles the prober chain for a run: offline when probes are
// disabled, otherwise an HTTP prober wrapped with the configured cache.
func BuildProber(cfg *contract.Config, mgr contract.StoreManager) contract.Prober {
	if cfg.SkipProbes {
		return webprobe.OfflineProber{}
	}
	var prober contract.Prober = webprobe.New(cfg.ProbeTimeout)
	if mgr != nil {
		if store := mgr.GetCacheStore(); store != nil {
			prober = webprobe.NewCached(prober, store, cfg.CacheTTL)
		}
	}
	return prober
}
