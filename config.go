package upkeep

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nik45114/upkeep/roster"
	"github.com/nik45114/upkeep/types"
)

// Config is the configuration for the Engine.
type Config struct {
	// TaskTypes is the recurrence catalog: which task applies to which
	// equipment type and how often. Allocation runs once per calendar
	// month; a task type with PeriodDays around k*30 participates every
	// k-th cycle.
	TaskTypes []types.TaskType `yaml:"taskTypes"`

	// Eligibility maps each equipment type to the servicing attribute it
	// requires. Equipment types missing from the map accept every active
	// staff member.
	Eligibility roster.Policy `yaml:"eligibility"`

	// SiteAliases maps each canonical site key to the alternate spellings
	// found in shift records (local-language names, transliterations,
	// casing variants).
	SiteAliases map[string][]string `yaml:"siteAliases"`

	// WeightWindowDays is the trailing shift window used when weights are
	// aggregated from a duty log. Sources that pre-aggregate ignore it.
	WeightWindowDays int `yaml:"weightWindowDays"`

	// OperationTimeout bounds each external call the engine makes
	// (roster, inventory and weight fetches).
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// DefaultConfig returns a Config with production default values.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		TaskTypes: []types.TaskType{
			{ID: "service-workstation", Equipment: types.EquipmentWorkstation, PeriodDays: 60},
			{ID: "clean-keyboard", Equipment: types.EquipmentKeyboard, PeriodDays: 30},
			{ID: "clean-mouse", Equipment: types.EquipmentMouse, PeriodDays: 30},
		},
		Eligibility:      roster.DefaultPolicy(),
		WeightWindowDays: 30,
		OperationTimeout: 30 * time.Second,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if len(cfg.TaskTypes) == 0 {
		cfg.TaskTypes = defaults.TaskTypes
	}
	if cfg.Eligibility == nil {
		cfg.Eligibility = defaults.Eligibility
	}
	if cfg.WeightWindowDays == 0 {
		cfg.WeightWindowDays = defaults.WeightWindowDays
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
}

// Validate checks the configuration for hard errors.
func (cfg *Config) Validate() error {
	if len(cfg.TaskTypes) == 0 {
		return fmt.Errorf("at least one task type is required")
	}

	seen := make(map[string]bool, len(cfg.TaskTypes))
	for _, tt := range cfg.TaskTypes {
		if tt.ID == "" {
			return fmt.Errorf("task type ID must not be empty")
		}
		if seen[tt.ID] {
			return fmt.Errorf("duplicate task type ID %q", tt.ID)
		}
		seen[tt.ID] = true

		if !tt.Equipment.Valid() {
			return fmt.Errorf("task type %q references unknown equipment type %q", tt.ID, tt.Equipment)
		}
		if tt.PeriodDays <= 0 {
			return fmt.Errorf("task type %q must have PeriodDays > 0, got %d", tt.ID, tt.PeriodDays)
		}
	}

	if cfg.WeightWindowDays < 0 {
		return fmt.Errorf("WeightWindowDays must be >= 0, got %d", cfg.WeightWindowDays)
	}
	if cfg.OperationTimeout <= 0 {
		return fmt.Errorf("OperationTimeout must be > 0, got %v", cfg.OperationTimeout)
	}

	return nil
}

// TestConfig returns a Config suitable for tests: the default catalog with a
// short operation timeout.
//
// Returns:
//   - Config: Configuration tuned for fast test execution
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.OperationTimeout = 2 * time.Second

	return cfg
}

// LoadConfig reads a YAML configuration file, applies defaults and validates
// the result.
//
// Duration fields accept standard Go duration strings like "30s" or "5m".
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - Config: Loaded configuration with defaults applied
//   - error: Read, parse or validation failure
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw struct {
		TaskTypes        []types.TaskType    `yaml:"taskTypes"`
		Eligibility      roster.Policy       `yaml:"eligibility"`
		SiteAliases      map[string][]string `yaml:"siteAliases"`
		WeightWindowDays int                 `yaml:"weightWindowDays"`
		OperationTimeout string              `yaml:"operationTimeout"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Config{
		TaskTypes:        raw.TaskTypes,
		Eligibility:      raw.Eligibility,
		SiteAliases:      raw.SiteAliases,
		WeightWindowDays: raw.WeightWindowDays,
	}
	if raw.OperationTimeout != "" {
		timeout, err := time.ParseDuration(raw.OperationTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse operationTimeout: %w", err)
		}
		cfg.OperationTimeout = timeout
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
