package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Files names the input and output files of a matching run
type Files struct {
	Students          string `yaml:"students" validate:"required"`
	ProjectIDMappings string `yaml:"projectIDMappings" validate:"required"`
	Output            string `yaml:"output" validate:"required"`
}

// TeamComposition is the minimum number of each track on every team
type TeamComposition struct {
	MinTrackA int `yaml:"minTrackA" validate:"min=0"`
	MinTrackB int `yaml:"minTrackB" validate:"min=0"`
}

// PreferenceCost selects how a student's rank of their project is charged
type PreferenceCost struct {
	Policy       string    `yaml:"policy,omitempty" validate:"omitempty,oneof=linear quadratic table"`
	Table        []float64 `yaml:"table,omitempty" validate:"omitempty,dive,min=0"`
	UnrankedCost *float64  `yaml:"unrankedCost,omitempty" validate:"omitempty,min=0"`
}

// Annealing overrides the optimiser defaults. Zero values keep the default.
type Annealing struct {
	Steps               int      `yaml:"steps,omitempty" validate:"omitempty,min=1"`
	MaxTemperature      float64  `yaml:"maxTemperature,omitempty" validate:"omitempty,gt=0"`
	MinTemperature      float64  `yaml:"minTemperature,omitempty" validate:"omitempty,gt=0"`
	Updates             int      `yaml:"updates,omitempty" validate:"omitempty,min=0"`
	ExchangeProbability *float64 `yaml:"exchangeProbability,omitempty" validate:"omitempty,min=0,max=1"`
	Seed                *int64   `yaml:"seed,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Files                 Files           `yaml:"files"`
	TeamComposition       TeamComposition `yaml:"teamComposition"`
	NumberProjectRankings int             `yaml:"numberProjectRankings" validate:"required,min=1"`
	PreferenceCost        PreferenceCost  `yaml:"preferenceCost,omitempty"`
	Annealing             Annealing       `yaml:"annealing,omitempty"`
	UseDiversity          *bool           `yaml:"useDiversity,omitempty"`
	DatabaseURL           string          `yaml:"databaseURL,omitempty"`
	TeamsSheetID          string          `yaml:"teamsSheetID,omitempty"`
}

// DiversityEnabled reports whether team diversity is part of the energy.
// It is on unless useDiversity is explicitly false.
func (c *Config) DiversityEnabled() bool {
	return c.UseDiversity == nil || *c.UseDiversity
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration from matcher_config.<env>.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(configFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and the rules that span fields
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.TeamComposition.MinTrackA+cfg.TeamComposition.MinTrackB == 0 {
		return fmt.Errorf("config validation failed: team size cannot be 0, set teamComposition.minTrackA or minTrackB")
	}

	a := cfg.Annealing
	if a.MaxTemperature > 0 && a.MinTemperature > 0 && a.MinTemperature > a.MaxTemperature {
		return fmt.Errorf("config validation failed: annealing.minTemperature %v exceeds maxTemperature %v",
			a.MinTemperature, a.MaxTemperature)
	}

	cost := cfg.PreferenceCost
	if cost.Policy == "table" {
		if len(cost.Table) != cfg.NumberProjectRankings {
			return fmt.Errorf("config validation failed: preferenceCost.table has %d entries, expected %d",
				len(cost.Table), cfg.NumberProjectRankings)
		}
		if cost.UnrankedCost == nil {
			return fmt.Errorf("config validation failed: preferenceCost.unrankedCost is required for the table policy")
		}
	}

	return nil
}

func configFileName(env string) string {
	if env == "" {
		return "matcher_config.yaml"
	}
	return "matcher_config." + env + ".yaml"
}

// findFile searches for a file in the current directory and then the home directory
func findFile(name string) (string, error) {
	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
