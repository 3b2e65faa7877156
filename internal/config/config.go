// Package config holds the configuration of a regret matching run.
package config

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/go-regret"
	"github.com/timpalpant/go-regret/games"
)

// Config holds all run configuration.
type Config struct {
	// Game selection
	Game         string `mapstructure:"game"`
	GameFile     string `mapstructure:"game_file"`
	Units        int    `mapstructure:"units"`
	Battlefields int    `mapstructure:"battlefields"`

	// Simulation
	NumIterations         int     `mapstructure:"iter"`
	Seed                  uint64  `mapstructure:"seed"`
	Tolerance             float64 `mapstructure:"tolerance"`
	AccumulateRawRegret   bool    `mapstructure:"accumulate_raw_regret"`
	UseRegretMatchingPlus bool    `mapstructure:"regret_matching_plus"`

	// Output
	Output     string `mapstructure:"output"`
	Checkpoint string `mapstructure:"checkpoint"`
	Resume     string `mapstructure:"resume"`
	Store      string `mapstructure:"store"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Game:          "rock-paper-scissors",
		Units:         games.DefaultOptions.Units,
		Battlefields:  games.DefaultOptions.Battlefields,
		NumIterations: 10000,
		Seed:          123,
		Tolerance:     regret.DefaultTolerance,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Game == "" && c.GameFile == "" && c.Resume == "" {
		return errors.New("one of game, game_file or resume is required")
	}
	if c.NumIterations < 0 {
		return errors.Errorf("iter must be non-negative, got %d", c.NumIterations)
	}
	if c.Units <= 0 || c.Battlefields <= 0 {
		return errors.Errorf("units and battlefields must be positive, got %d and %d",
			c.Units, c.Battlefields)
	}
	if c.Tolerance <= 0 {
		return errors.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	return nil
}

// Params returns the regret accumulation parameters.
func (c *Config) Params() regret.Params {
	return regret.Params{
		AccumulateRawRegret:   c.AccumulateRawRegret,
		UseRegretMatchingPlus: c.UseRegretMatchingPlus,
	}
}

// LoadGame builds the configured game, preferring GameFile over Game.
func (c *Config) LoadGame() (name string, game *regret.Game, err error) {
	var payoffs *regret.Tensor
	if c.GameFile != "" {
		def, err := games.LoadFile(c.GameFile)
		if err != nil {
			return "", nil, err
		}

		name, payoffs = def.Name, def.Tensor()
	} else {
		payoffs, err = games.Lookup(c.Game, games.Options{
			Units:        c.Units,
			Battlefields: c.Battlefields,
		})
		if err != nil {
			return "", nil, err
		}

		name = c.Game
	}

	game, err = regret.NewGame(payoffs, regret.WithTolerance(c.Tolerance))
	if err != nil {
		return "", nil, errors.Wrapf(err, "game %q", name)
	}

	return name, game, nil
}
