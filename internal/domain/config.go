package domain

// Config mirrors ~/.textpolish/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Tiers               TierSettings      `yaml:"tiers"`
	Models              []ModelDefinition `yaml:"models"`
	Storage             StorageSettings   `yaml:"storage"`
	Logging             LoggingSettings   `yaml:"logging"`
}

// Preferences captures user level toggles.
type Preferences struct {
	Language       string `yaml:"language"`
	DefaultAction  string `yaml:"default_action"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// TierSettings maps each model tier to a model name from Models.
type TierSettings struct {
	Light string `yaml:"light"`
	Heavy string `yaml:"heavy"`
}

// StorageSettings selects the key-value backend that holds the history slot.
type StorageSettings struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

// LoggingSettings configures where the interactive UI writes its log.
type LoggingSettings struct {
	File string `yaml:"file"`
}

// Storage backends.
const (
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	StorageBackendBolt   = "bolt"
	StorageBackendMemory = "memory"
)
