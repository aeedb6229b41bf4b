package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/marcus/lobby/internal/config"
	"github.com/marcus/lobby/internal/distro"
)

// distroEnv overrides the configured distribution URL
const distroEnv = "LOBBY_DISTRO_URL"

func openStore() (*config.Store, error) {
	store, err := config.Open(baseDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return store, nil
}

// resolveDistroURL applies flag, then environment, then config
func resolveDistroURL(store *config.Store) string {
	if distroURL != "" {
		return distroURL
	}
	if v := os.Getenv(distroEnv); v != "" {
		return v
	}
	return store.DistributionURL()
}

// openSource builds the catalog source with its on-disk cache. The returned
// func closes the cache.
func openSource(store *config.Store) (*distro.Source, func(), error) {
	url := resolveDistroURL(store)
	if url == "" {
		return nil, func() {}, fmt.Errorf("no distribution configured: pass --distro or set %s", distroEnv)
	}
	cache, err := distro.OpenCache(baseDir)
	if err != nil {
		// the catalog still loads, just without an offline copy
		slog.Warn("distribution cache unavailable", "err", err)
	}
	src := distro.New(url, distro.WithCache(cache), distro.WithTTL(store.CacheTTL()))
	return src, func() { cache.Close() }, nil
}
