package repository

import (
	"context"

	"bachelorious/pkg/config"
	"bachelorious/pkg/customerror"
)

// Document keys. Each one holds a full JSON document that is replaced on
// every write.
const (
	SessionKey  = "bachelorious_user"
	AccountsKey = "bachelorious_users"
	ListingsKey = "bachelorious_properties"
)

// KeyValueStoreI is the durable storage port the repositories write through.
// Load reports false when the key has never been saved or was removed.
type KeyValueStoreI interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Endpoint() string
	Close() error
}

// NewStore opens the adapter selected by appConfig.StorageDriver.
func NewStore(ctx context.Context, appConfig *config.Config) (KeyValueStoreI, error) {
	switch appConfig.StorageDriver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverFile:
		store, err := NewFileStore(appConfig.DataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite, "":
		store, err := NewSQLiteStore(ctx, appConfig.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, customerror.NewError("repository.NewStore", appConfig.StorageDriver, "unsupported storage driver")
	}
}
