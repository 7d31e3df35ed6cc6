// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frankenbubble/twc3-modbus/internal/logger"
	"github.com/frankenbubble/twc3-modbus/internal/trace"
)

type Config struct {
	Emulator EmulatorConfig `yaml:"emulator"`
}

type EmulatorConfig struct {
	ResponseDir string `yaml:"response_dir"`
	DryRun      bool   `yaml:"dry_run"`
	SlaveID     uint8  `yaml:"slave_id"`

	Serial   SerialConfig   `yaml:"serial"`
	Identity IdentityConfig `yaml:"identity"`
	Logging  logger.Config  `yaml:"logging"`
	Trace    trace.Config   `yaml:"trace"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	Parity    string `yaml:"parity"` // N, E, O
	StopBits  int    `yaml:"stop_bits"`
	TimeoutMs int    `yaml:"timeout_ms"` // read timeout, doubles as the frame gap
}

// ---- IDENTITY ----

// IdentityConfig is served over Read Device Identification (FC 0x2B),
// basic category.
type IdentityConfig struct {
	Vendor   string `yaml:"vendor"`
	Product  string `yaml:"product"`
	Revision string `yaml:"revision"`
}

// Load reads and decodes a config file.
// The result is raw: callers must run Validate and Normalize.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
