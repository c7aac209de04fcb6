// Package config holds the harness configuration, read from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jam-duna/fraudproof/interpreter"
	"github.com/jam-duna/fraudproof/log"
	"github.com/jam-duna/fraudproof/outcome"
	"github.com/jam-duna/fraudproof/vmerrors"
)

type Outcome struct {
	Policy      string `json:"policy"`
	FailureCode uint8  `json:"failure_code"`
}

type Log struct {
	Level   string `json:"level"`
	Modules string `json:"modules"` // comma separated, or "all"
	JSON    bool   `json:"json"`
}

type Tracing struct {
	Endpoint    string `json:"endpoint"` // OTLP/HTTP host:port; empty disables export
	Insecure    bool   `json:"insecure"`
	ServiceName string `json:"service_name"`
}

type Config struct {
	VM      interpreter.Config `json:"vm"`
	Outcome Outcome            `json:"outcome"`
	Log     Log                `json:"log"`
	Tracing Tracing            `json:"tracing"`
	DBPath  string             `json:"db_path"` // empty is in-memory
	N       uint32             `json:"n"`
}

func Default() Config {
	return Config{
		VM: interpreter.DefaultConfig(),
		Outcome: Outcome{
			Policy:      outcome.LowByteName,
			FailureCode: outcome.DefaultFailureCode,
		},
		Log: Log{
			Level: "info",
		},
		Tracing: Tracing{
			ServiceName: "fraudproof",
		},
		N: 20,
	}
}

// Load reads path over the defaults, so a file only needs the fields it
// changes.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.VM.MaxStackWords < 0 || c.VM.MaxMemoryWords < 0 || c.VM.MaxSlots < 0 {
		return fmt.Errorf("negative vm limit: %w", vmerrors.ErrInvalidConfig)
	}
	if _, err := outcome.FromConfig(c.Outcome.Policy, c.Outcome.FailureCode); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w: %w", vmerrors.ErrInvalidConfig, err)
	}
	return nil
}

// Policy builds the configured outcome policy.
func (c Config) Policy() outcome.Policy {
	p, err := outcome.FromConfig(c.Outcome.Policy, c.Outcome.FailureCode)
	if err != nil {
		return outcome.LowByte{FailureCode: c.Outcome.FailureCode}
	}
	return p
}
