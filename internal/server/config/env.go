package config

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// parseEnv overlays Config with non-empty environment variables:
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_DRIVER, DATABASE_DSN (or DATABASE_URL), LOG_LEVEL
func parseEnv(config *Config, lookup lookupFunc) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	set(&config.EndpointAddrHTTP, "HTTP_ADDR")
	set(&config.EndpointAddrGRPC, "GRPC_ADDR")
	set(&config.DatabaseDriver, "DATABASE_DRIVER")
	set(&config.DatabaseDSN, "DATABASE_DSN", "DATABASE_URL")
	set(&config.LogLevel, "LOG_LEVEL")
}
