package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Hooks   HooksConfig   `mapstructure:"hooks" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Server  ServerConfig  `mapstructure:"server"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// File is the path to the task file.
	File string `mapstructure:"file" validate:"required"`
	// BackupDir is where pre-save snapshots of the task file accumulate.
	BackupDir string `mapstructure:"backupDir" validate:"required"`
}

// HooksConfig holds settings for the mutation hook pipeline
type HooksConfig struct {
	// LogFile is the operation log path. An empty value disables the
	// operation log stage.
	LogFile string `mapstructure:"logFile"`
	// SelfCheck re-validates the stored collection after each mutation.
	SelfCheck bool `mapstructure:"selfCheck"`
}

// MetricsConfig holds settings for the operation metrics recorder
type MetricsConfig struct {
	// HistorySize caps the number of retained metric entries.
	HistorySize int `mapstructure:"historySize" validate:"omitempty,min=1"`
}

// ServerConfig holds settings for the API server
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	// WatchTaskFile logs external edits to the task file while serving.
	WatchTaskFile bool `mapstructure:"watchTaskFile"`
}
