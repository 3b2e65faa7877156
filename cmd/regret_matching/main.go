// Simulate repeated play of a normal-form game between regret-matching players.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"golang.org/x/exp/rand"

	"github.com/timpalpant/go-regret"
	"github.com/timpalpant/go-regret/games"
	"github.com/timpalpant/go-regret/internal/config"
	"github.com/timpalpant/go-regret/ldbstore"
)

var cfg = config.Default()

// finalSavers persist the finished simulation to optional stores
// that are only compiled in with build tags.
var finalSavers []func(sim *regret.Simulation) error

var rootCmd = &cobra.Command{
	Use:   "regret_matching",
	Short: "Learn mixed strategies for normal-form games by regret matching",
	Long: fmt.Sprintf(`Simulates repeated play of a normal-form game in which every player
updates its mixed strategy by regret matching, and reports the average
strategy of each player.

Available games: %v`, games.Names()),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()

	// Game selection
	flags.StringVar(&cfg.Game, "game", cfg.Game, "Name of the game to play")
	flags.StringVar(&cfg.GameFile, "game-file", cfg.GameFile, "YAML file with a game definition (overrides --game)")
	flags.IntVar(&cfg.Units, "units", cfg.Units, "Number of units in Colonel Blotto")
	flags.IntVar(&cfg.Battlefields, "battlefields", cfg.Battlefields, "Number of battlefields in Colonel Blotto")

	// Simulation
	flags.IntVar(&cfg.NumIterations, "iter", cfg.NumIterations, "Number of rounds to play")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flags.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "Tolerance for mixed strategies summing to 1")
	flags.BoolVar(&cfg.AccumulateRawRegret, "raw-regret", cfg.AccumulateRawRegret,
		"Accumulate negative regret instead of clamping each round's regret at zero")
	flags.BoolVar(&cfg.UseRegretMatchingPlus, "regret-matching-plus", cfg.UseRegretMatchingPlus,
		"Floor cumulative regret at zero (RM+)")

	// Output
	flags.StringVar(&cfg.Output, "output", cfg.Output,
		"Save the average strategy history to this .npz file (or directory)")
	flags.StringVar(&cfg.Checkpoint, "checkpoint", cfg.Checkpoint, "Save the final simulation state to this file")
	flags.StringVar(&cfg.Resume, "resume", cfg.Resume, "Resume from a checkpoint file")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "LevelDB directory to record strategies and checkpoints in")

	// Bind flags to viper for environment variable support, e.g. REGRET_GAME_FILE.
	for key, name := range map[string]string{
		"game":                 "game",
		"game_file":            "game-file",
		"units":                "units",
		"battlefields":         "battlefields",
		"iter":                 "iter",
		"seed":                 "seed",
		"tolerance":            "tolerance",
		"accumulate_raw_regret": "raw-regret",
		"regret_matching_plus": "regret-matching-plus",
		"output":               "output",
		"checkpoint":           "checkpoint",
		"resume":               "resume",
		"store":                "store",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("REGRET")
	viper.AutomaticEnv()

	// glog registers its flags (-v, -logtostderr, ...) with the standard flag package.
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func run(cmd *cobra.Command, args []string) error {
	if err := viper.Unmarshal(cfg); err != nil {
		return errors.Wrap(err, "reading configuration")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	runID := uuid.New()
	rng := rand.New(rand.NewSource(cfg.Seed))
	name, sim, err := newSimulation(rng)
	if err != nil {
		return err
	}

	history := regret.NewHistory()
	observers := []regret.Observer{history}
	var store *ldbstore.Store
	if cfg.Store != "" {
		store, err = ldbstore.New(cfg.Store, &opt.Options{})
		if err != nil {
			return errors.Wrapf(err, "opening store %v", cfg.Store)
		}
		defer store.Close()

		observers = append(observers, store)
	}

	glog.Infof("[run %v] Playing %d rounds of %s (%d players, strategies: %v)",
		runID, cfg.NumIterations, name, sim.Game().NumPlayers(), sim.Game().NumStrategies())
	start := time.Now()
	if err := sim.Run(cfg.NumIterations, observers...); err != nil {
		return err
	}

	elapsed := time.Since(start)
	glog.Infof("Finished %d rounds in %v (%.1f rounds/sec)", cfg.NumIterations, elapsed,
		float64(cfg.NumIterations)/elapsed.Seconds())
	for i, strat := range sim.AverageStrategies() {
		glog.Infof("Player %d converged strategy: %.4f", i, strat)
	}

	if cfg.Output != "" {
		output := historyFilename(cfg.Output, name, runID)
		if err := saveHistory(history, output); err != nil {
			return errors.Wrapf(err, "saving history to %v", output)
		}
		glog.Infof("Saved average strategy history to %v", output)
	}

	if cfg.Checkpoint != "" {
		if err := saveCheckpoint(sim, cfg.Checkpoint); err != nil {
			return errors.Wrapf(err, "saving checkpoint to %v", cfg.Checkpoint)
		}
		glog.Infof("Saved checkpoint to %v", cfg.Checkpoint)
	}

	if store != nil {
		if err := store.Save(sim); err != nil {
			return errors.Wrapf(err, "saving checkpoint to %v", cfg.Store)
		}
	}

	for _, save := range finalSavers {
		if err := save(sim); err != nil {
			return err
		}
	}

	return nil
}

func newSimulation(rng regret.Rand) (string, *regret.Simulation, error) {
	if cfg.Resume != "" {
		sim, err := loadCheckpoint(cfg.Resume, rng)
		if err != nil {
			return "", nil, errors.Wrapf(err, "resuming from %v", cfg.Resume)
		}

		glog.Infof("Resuming from round %d of %v", sim.Iter(), cfg.Resume)
		return filepath.Base(cfg.Resume), sim, nil
	}

	name, game, err := cfg.LoadGame()
	if err != nil {
		return "", nil, err
	}

	sim, err := regret.NewSimulation(game, cfg.Params(), rng)
	return name, sim, err
}

func main() {
	// Keep glog from complaining that flags were not parsed;
	// cobra parses them into the same flag values.
	flag.CommandLine.Parse([]string{})
	defer glog.Flush()

	if err := rootCmd.Execute(); err != nil {
		glog.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
