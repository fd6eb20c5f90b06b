// Package config loads the device configuration from a YAML file and fills
// in the defaults for anything left unset.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/misl-switch/mislswitch-go/pkg/audit"
)

// Defaults applied by Load.
const (
	DefaultHostname  = "eee-switch"
	DefaultUsersFile = "users.yaml"
	DefaultRingSize  = audit.DefaultRingCapacity
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the device configuration.
type Config struct {
	// Hostname is shown in the console prompt.
	Hostname string `yaml:"hostname"`

	// UsersFile is the path of the YAML user store.
	UsersFile string `yaml:"users_file"`

	// AuditLog is the path of the CBOR audit log. Empty disables file
	// logging; the in-memory ring always runs.
	AuditLog string `yaml:"audit_log"`

	// EventRingSize is the capacity of the in-memory event ring.
	EventRingSize int `yaml:"event_ring_size"`
}

// Load reads path, or returns the defaults when path is empty or missing.
func Load(path string) (Config, error) {
	cfg := Config{
		Hostname:      DefaultHostname,
		UsersFile:     DefaultUsersFile,
		EventRingSize: DefaultRingSize,
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Hostname == "" {
		return fmt.Errorf("%w: hostname must not be empty", ErrInvalid)
	}
	if c.UsersFile == "" {
		return fmt.Errorf("%w: users_file must not be empty", ErrInvalid)
	}
	if c.EventRingSize <= 0 {
		return fmt.Errorf("%w: event_ring_size must be positive", ErrInvalid)
	}
	return nil
}
