package config

// ExecutionMode controls how trade execution requests are handled.
type ExecutionMode string

const (
	// ModeFullyAutomated executes trades immediately.
	ModeFullyAutomated ExecutionMode = "fully_automated"
	// ModeApprovalRequired parks trades as pending until approved.
	ModeApprovalRequired ExecutionMode = "approval_required"
	// ModeAdvisoryOnly returns recommendations without executing.
	ModeAdvisoryOnly ExecutionMode = "advisory_only"
)

// Config is the top-level agentgate configuration, corresponding to
// .agentgate.yml.
type Config struct {
	Agent   AgentConfig   `yaml:"agent" koanf:"agent"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Trading TradingConfig `yaml:"trading" koanf:"trading"`
	Logging LoggingConfig `yaml:"logging" koanf:"logging"`
	DataDir string        `yaml:"data_dir" koanf:"data_dir"`
}

// AgentConfig identifies the conversational agent this gateway fronts.
// The GCP fields qualify context names on the wire.
type AgentConfig struct {
	Name      string `yaml:"name" koanf:"name"`
	ProjectID string `yaml:"project_id" koanf:"project_id"`
	Location  string `yaml:"location" koanf:"location"`
	AgentID   string `yaml:"agent_id" koanf:"agent_id"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int  `yaml:"port" koanf:"port"`
	AllowAll       bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RateLimit      int  `yaml:"rate_limit" koanf:"rate_limit"`           // requests per minute per IP, 0 disables
	TimeoutSeconds int  `yaml:"timeout_seconds" koanf:"timeout_seconds"` // per-request timeout
}

// TradingConfig holds settings for the mock trade executor.
type TradingConfig struct {
	ExecutionMode  ExecutionMode `yaml:"execution_mode" koanf:"execution_mode"`
	PendingTTLDays int           `yaml:"pending_ttl_days" koanf:"pending_ttl_days"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level   string `yaml:"level" koanf:"level"`
	Console bool   `yaml:"console" koanf:"console"`
}
