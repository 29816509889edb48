package db

import (
	"fmt"
	"os"
	"path/filepath"
)

type DBVendor string

const (
	LevelDB DBVendor = "leveldb"
	BoltDB  DBVendor = "bbolt"
	Redis   DBVendor = "redis"
)

// boltFileName is the file used inside a directory for bbolt databases.
const boltFileName = "data.bolt"

type DBOptions struct {
	Directory string
	ReadOnly  bool

	// Redis only
	Address string
	RedisDB int
}

// ParseDBVendor validates a vendor name given on the command line or in config.
func ParseDBVendor(s string) (DBVendor, error) {
	switch DBVendor(s) {
	case LevelDB, "":
		return LevelDB, nil
	case BoltDB, "bolt":
		return BoltDB, nil
	case Redis:
		return Redis, nil
	default:
		return "", fmt.Errorf("unsupported db provider: %s", s)
	}
}

// CreateDBProvider opens the database of the given vendor in
// options.Directory, or at options.Address for Redis.
func CreateDBProvider(vendor DBVendor, options DBOptions) (IterableProvider, error) {
	if vendor == Redis {
		if options.Address == "" {
			return nil, fmt.Errorf("redis address required")
		}
		return NewRedisProvider(options.Address, options.RedisDB)
	}
	if options.Directory == "" {
		return nil, fmt.Errorf("database directory required")
	}

	switch vendor {
	case LevelDB:
		if options.ReadOnly {
			return NewReadOnlyLevelDBProvider(options.Directory)
		}
		return NewLevelDBProvider(options.Directory)

	case BoltDB:
		if !options.ReadOnly {
			if err := os.MkdirAll(options.Directory, 0o755); err != nil {
				return nil, fmt.Errorf("create directory %s: %w", options.Directory, err)
			}
		}
		return NewBoltProvider(filepath.Join(options.Directory, boltFileName), options.ReadOnly)

	default:
		return nil, fmt.Errorf("unsupported db provider: %s", vendor)
	}
}

// DetectDBVendor inspects an existing database directory.
func DetectDBVendor(directory string) (DBVendor, error) {
	if _, err := os.Stat(filepath.Join(directory, boltFileName)); err == nil {
		return BoltDB, nil
	}
	if _, err := os.Stat(filepath.Join(directory, "CURRENT")); err == nil {
		return LevelDB, nil
	}
	return "", fmt.Errorf("no database found in %s", directory)
}
