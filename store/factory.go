package store

import (
	"fmt"

	"raicore/config"
	"raicore/db"
)

// OpenProvider builds the DatabaseProvider selected by the ledger settings
func OpenProvider(settings *config.LedgerSettings) (db.DatabaseProvider, error) {
	switch settings.Backend {
	case "", "memory":
		return db.NewMemoryProvider(), nil
	case "leveldb":
		if settings.Path == "" {
			return nil, fmt.Errorf("leveldb backend requires a path")
		}
		return db.NewLevelDBProvider(settings.Path)
	case "bolt":
		if settings.Path == "" {
			return nil, fmt.Errorf("bolt backend requires a path")
		}
		return db.NewBoltProvider(settings.Path)
	default:
		return nil, fmt.Errorf("unknown database backend %q", settings.Backend)
	}
}
