package cli

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/todomvc/internal/config"
	"github.com/Makepad-fr/todomvc/internal/store"
	"github.com/Makepad-fr/todomvc/internal/store/jsonstore"
	"github.com/Makepad-fr/todomvc/internal/store/memstore"
	"github.com/Makepad-fr/todomvc/internal/store/redisstore"
	"github.com/Makepad-fr/todomvc/internal/store/sqlitestore"
)

func openStore(ctx context.Context, sc config.StoreConfig) (store.KV, error) {
	switch sc.Backend {
	case store.BackendJSON:
		return jsonstore.New(sc.Path)
	case store.BackendSQLite:
		return sqlitestore.Open(ctx, sc.Path)
	case store.BackendRedis:
		return redisstore.Open(ctx, sc.RedisAddr, sc.RedisDB)
	case store.BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", sc.Backend)
}
