package config

// ScanConfig holds the settings of the scan command. Command line flags
// override values read from a config file.
type ScanConfig struct {
	Inputs          []string        `yaml:"inputs" ini:"inputs"`
	BlackballDir    string          `yaml:"blackball_dir" ini:"blackball_dir"`
	Network         string          `yaml:"network" ini:"network"`
	DBEngine        string          `yaml:"db_engine" ini:"db_engine"`
	RCTOnly         bool            `yaml:"rct_only" ini:"rct_only"`
	FlushEvery      uint64          `yaml:"flush_every" ini:"flush_every"`
	MetricsTextfile string          `yaml:"metrics_textfile" ini:"metrics_textfile"`
	LogLevel        string          `yaml:"log_level" ini:"log_level"`
	LogFile         string          `yaml:"log_file" ini:"log_file"`
	FlagStore       FlagStoreConfig `yaml:"flag_store" ini:"-"`
}

// FlagStoreConfig selects the backend of the blackball database. The default
// is a bbolt file in the blackball directory.
type FlagStoreConfig struct {
	Backend   string `yaml:"backend" ini:"backend"`
	RedisAddr string `yaml:"redis_addr" ini:"redis_addr"`
	RedisDB   int    `yaml:"redis_db" ini:"redis_db"`
}

// ConfigFile is the top-level structure of a YAML config file.
type ConfigFile struct {
	Scan ScanConfig `yaml:"scan"`
}
