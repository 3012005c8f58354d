package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"raicore/logx"
)

// GenesisFile is the top-level structure of genesis.yml
type GenesisFile struct {
	Genesis Genesis `yaml:"genesis"`
}

// LoadGenesisConfig reads and parses a genesis.yml file
func LoadGenesisConfig(path string) (*Genesis, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open genesis config: %w", err)
	}
	defer file.Close()

	var gf GenesisFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&gf); err != nil {
		return nil, fmt.Errorf("could not decode genesis config: %w", err)
	}
	if gf.Genesis.Source.IsZero() {
		return nil, fmt.Errorf("genesis config %s has no source hash", path)
	}
	logx.Info("CONFIG", fmt.Sprintf("Loaded genesis config from %s, account %s", path, gf.Genesis.Account))
	return &gf.Genesis, nil
}

// SaveGenesisConfig writes the genesis seed to a genesis.yml file
func SaveGenesisConfig(path string, gen *Genesis) error {
	data, err := yaml.Marshal(GenesisFile{Genesis: *gen})
	if err != nil {
		return fmt.Errorf("could not encode genesis config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LedgerSettings is the runtime configuration of the storage engine
type LedgerSettings struct {
	// Backend selects the DatabaseProvider: memory, leveldb or bolt
	Backend string `ini:"backend"`
	// Path is the database directory (leveldb) or file (bolt)
	Path string `ini:"path"`
	// WorkThreshold overrides the protocol proof-of-work threshold when
	// nonzero. Test networks run with a cheap threshold.
	WorkThreshold uint64 `ini:"work_threshold"`
}

// DefaultLedgerSettings returns the settings used when no file is given
func DefaultLedgerSettings() *LedgerSettings {
	return &LedgerSettings{
		Backend: "memory",
		Path:    "",
	}
}

// LoadLedgerSettings reads ledger settings from the [ledger] section of an
// .ini file
func LoadLedgerSettings(path string) (*LedgerSettings, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	settings := DefaultLedgerSettings()
	if err := cfg.Section("ledger").MapTo(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
