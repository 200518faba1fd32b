package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"creatorpass/crypto"
)

// Config carries the daemon configuration loaded from TOML.
type Config struct {
	ListenAddress    string `toml:"ListenAddress"`
	MetricsAddress   string `toml:"MetricsAddress"`
	DataDir          string `toml:"DataDir"`
	NetworkName      string `toml:"NetworkName"`
	AdminAddress     string `toml:"AdminAddress"`
	VaultAddress     string `toml:"VaultAddress"`
	InitialUnitPrice string `toml:"InitialUnitPrice"`
	EventLogSize     int    `toml:"EventLogSize"`
	// RPCRequestsPerMinute throttles mutating RPC calls. Zero disables the
	// limit.
	RPCRequestsPerMinute int `toml:"RPCRequestsPerMinute"`
}

// Load loads the configuration from the given path, creating a default file
// when none exists.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s contains unknown key %q", path, undecoded[0].String())
	}
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.ListenAddress) == "" {
		cfg.ListenAddress = "127.0.0.1:8645"
	}
	if strings.TrimSpace(cfg.MetricsAddress) == "" {
		cfg.MetricsAddress = "127.0.0.1:9464"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./data"
	}
	if strings.TrimSpace(cfg.NetworkName) == "" {
		cfg.NetworkName = "creatorpass-local"
	}
	if strings.TrimSpace(cfg.InitialUnitPrice) == "" {
		cfg.InitialUnitPrice = "1000"
	}
	if cfg.EventLogSize <= 0 {
		cfg.EventLogSize = 512
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.AdminAddress) == "" {
		return fmt.Errorf("config: AdminAddress is required")
	}
	if _, err := crypto.DecodeAddress(strings.TrimSpace(cfg.AdminAddress)); err != nil {
		return fmt.Errorf("config: invalid AdminAddress: %w", err)
	}
	if trimmed := strings.TrimSpace(cfg.VaultAddress); trimmed != "" {
		if _, err := crypto.DecodeAddress(trimmed); err != nil {
			return fmt.Errorf("config: invalid VaultAddress: %w", err)
		}
	}
	if _, err := cfg.UnitPrice(); err != nil {
		return err
	}
	return nil
}

// Admin returns the configured administrator identity.
func (c *Config) Admin() (crypto.Address, error) {
	return crypto.DecodeAddress(strings.TrimSpace(c.AdminAddress))
}

// Vault returns the configured vault identity, or ok=false when the daemon
// should fall back to the derived default.
func (c *Config) Vault() (crypto.Address, bool, error) {
	trimmed := strings.TrimSpace(c.VaultAddress)
	if trimmed == "" {
		return crypto.Address{}, false, nil
	}
	addr, err := crypto.DecodeAddress(trimmed)
	return addr, err == nil, err
}

// UnitPrice parses the opening subscription unit price.
func (c *Config) UnitPrice() (*big.Int, error) {
	trimmed := strings.TrimSpace(c.InitialUnitPrice)
	price, ok := new(big.Int).SetString(trimmed, 10)
	if !ok || price.Sign() < 0 {
		return nil, fmt.Errorf("config: invalid InitialUnitPrice %q", c.InitialUnitPrice)
	}
	return price, nil
}

func createDefault(path string) (*Config, error) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	cfg := &Config{AdminAddress: key.PubKey().Address().String()}
	applyDefaults(cfg)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return nil, err
	}
	fmt.Printf("Created default config at %s (admin %s)\n", path, cfg.AdminAddress)
	return cfg, nil
}
