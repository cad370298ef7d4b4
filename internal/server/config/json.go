package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
	"github.com/dmitrijs2005/itemkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Interval fields
// use timex.Duration so both "5s" and integer nanoseconds are accepted.
// Pointer fields distinguish "absent" from "set to empty".
type JsonConfig struct {
	EndpointAddrHTTP    *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC    *string         `json:"endpoint_addr_grpc"`
	DatabaseDriver      *string         `json:"database_driver"`
	DatabaseDSN         *string         `json:"database_dsn"`
	LogLevel            *string         `json:"log_level"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval"`
	BootstrapLogin      *string         `json:"bootstrap_login"`
	BootstrapName       *string         `json:"bootstrap_name"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field present in it onto config. Unreadable files or invalid JSON panic,
// like flag errors do.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	copyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	copyString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	copyString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	copyString(&config.DatabaseDriver, c.DatabaseDriver)
	copyString(&config.DatabaseDSN, c.DatabaseDSN)
	copyString(&config.LogLevel, c.LogLevel)
	copyString(&config.BootstrapLogin, c.BootstrapLogin)
	copyString(&config.BootstrapName, c.BootstrapName)

	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
}
