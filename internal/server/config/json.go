package config

import (
	"encoding/json"
	"os"

	"github.com/dmsantos/transferd/internal/flagx"
	"github.com/dmsantos/transferd/internal/timex"
)

// JSONConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which parses both string
// values such as "60m" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config struct.
type JSONConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	InitialBalance        int64          `json:"initial_balance"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags;
// if neither is set, no file is loaded. An unreadable or invalid file panics.
func parseJSON(config *Config) {

	jsonConfigFile := flagx.JSONConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	parsed := &JSONConfig{}
	if err := json.Unmarshal(data, parsed); err != nil {
		panic(err)
	}

	if parsed.EndpointAddr != "" {
		config.EndpointAddr = parsed.EndpointAddr
	}
	if parsed.DatabaseDSN != "" {
		config.DatabaseDSN = parsed.DatabaseDSN
	}
	if parsed.SecretKey != "" {
		config.SecretKey = parsed.SecretKey
	}
	if parsed.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = parsed.TokenValidityDuration.Duration
	}
	if parsed.InitialBalance != 0 {
		config.InitialBalance = parsed.InitialBalance
	}
}
