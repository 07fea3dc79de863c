package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:     "portfolio-manager",
			Location: "global",
			AgentID:  "default_agent",
		},
		Server: ServerConfig{
			Port:           8080,
			RateLimit:      120,
			TimeoutSeconds: 60,
		},
		Trading: TradingConfig{
			ExecutionMode:  ModeApprovalRequired,
			PendingTTLDays: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		DataDir: "data",
	}
}
