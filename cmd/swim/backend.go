package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-swim/internal/quota"
	"github.com/vovakirdan/tui-swim/internal/storage"
)

// Quota backends selectable with --backend.
const (
	backendSQLite   = "sqlite"
	backendSupabase = "supabase"
)

var _ quota.Gateway = (*storage.Store)(nil)

// openBackend opens the local store and the quota gateway selected by
// --backend. Scores always live in the local store. The caller closes the
// returned store.
func openBackend() (quota.Gateway, *storage.Store, error) {
	switch flagBackend {
	case backendSQLite:
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case backendSupabase:
		if err := env.RequireSupabase(); err != nil {
			return nil, nil, err
		}
		gw, err := quota.NewSupabaseGateway(quota.SupabaseConfig{
			URL:    env.SupabaseURL,
			APIKey: env.SupabaseKey,
		})
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.Open(flagDBPath)
		if err != nil {
			// Scores are optional with a remote quota
			log.Warn("could not open local database, scores will not be saved", "error", err)
			return gw, nil, nil
		}
		return gw, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q (use %s or %s)", flagBackend, backendSQLite, backendSupabase)
	}
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
