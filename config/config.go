package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/mezonai/blackball/logx"
)

// LoadScanConfig reads a scan config file. Files ending in .ini are read as
// INI with [scan], [blackball] and [metrics] sections, everything else as YAML.
func LoadScanConfig(path string) (*ScanConfig, error) {
	logx.Info("CONFIG", "Loading scan config from ", path)
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		return loadScanConfigINI(path)
	}
	return loadScanConfigYAML(path)
}

func loadScanConfigYAML(path string) (*ScanConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, fmt.Errorf("failed to decode YAML %s: %w", path, err)
	}
	return &cfgFile.Scan, nil
}

func loadScanConfigINI(path string) (*ScanConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	scanCfg := &ScanConfig{}
	if err := cfg.Section("scan").MapTo(scanCfg); err != nil {
		return nil, err
	}

	bb := cfg.Section("blackball")
	if bb.HasKey("dir") {
		scanCfg.BlackballDir = bb.Key("dir").String()
	}
	if err := bb.MapTo(&scanCfg.FlagStore); err != nil {
		return nil, err
	}

	metrics := cfg.Section("metrics")
	if metrics.HasKey("textfile") {
		scanCfg.MetricsTextfile = metrics.Key("textfile").String()
	}
	return scanCfg, nil
}

// ValidateNetwork accepts mainnet, testnet and stagenet; empty means mainnet.
func ValidateNetwork(network string) (string, error) {
	switch strings.ToLower(network) {
	case "", NetworkMainnet:
		return NetworkMainnet, nil
	case NetworkTestnet:
		return NetworkTestnet, nil
	case NetworkStagenet:
		return NetworkStagenet, nil
	}
	return "", fmt.Errorf("unknown network %q", network)
}

// BlackballDir resolves the flag store directory. An empty dir means the
// shared ring database in the home directory. Test networks get their own
// subdirectory.
func BlackballDir(dir, network string) (string, error) {
	network, err := ValidateNetwork(network)
	if err != nil {
		return "", err
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultBlackballDirName)
	}
	if network != NetworkMainnet {
		dir = filepath.Join(dir, network)
	}
	return dir, nil
}
