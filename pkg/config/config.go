package config

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/IlikeChooros/go-slidevote/pkg/decision"
	"github.com/IlikeChooros/go-slidevote/pkg/heuristic"
	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

const EnvPrefix = "SLIDEVOTE"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Games         int      `mapstructure:"games"`
	Workers       int      `mapstructure:"workers"`
	MaxDepth      int      `mapstructure:"max-depth"`
	Afterstates   bool     `mapstructure:"afterstates"`
	Weighting     string   `mapstructure:"weighting"`
	Heuristics    []string `mapstructure:"heuristics"`
	Decider       string   `mapstructure:"decider"`
	Seed          int64    `mapstructure:"seed"`
	ProgressEvery int      `mapstructure:"progress-every"`
	MaxMoves      int      `mapstructure:"max-moves"`
	ScoreCSV      string   `mapstructure:"score-csv"`
	BoardFile     string   `mapstructure:"board-file"`
	ParquetFile   string   `mapstructure:"parquet-file"`
	Debug         bool     `mapstructure:"debug"`
	ShowBoard     bool     `mapstructure:"show-board"`
	ConfigFile    string   `mapstructure:"config"`

	// Whether the seed was given explicitly, otherwise a random one is used
	HasSeed bool `mapstructure:"-"`
}

func flagSet(output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("slidevote", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Int("games", 100, "number of games to play")
	fs.Int("workers", runtime.NumCPU(), "number of games played in parallel")
	fs.Int("max-depth", search.DefaultMaxDepth, "maximum depth of the search, 0 scores only the root moves")
	fs.Bool("afterstates", false, "score only the deterministic afterstates, instead of every random insertion")
	fs.String("weighting", search.NoWeighting.String(), "depth weighting of the heuristic scores: none, linear")
	fs.StringSlice("heuristics", nil, fmt.Sprintf("heuristics voting on the moves (%s), combine with 'a:2+b:0.5'",
		strings.Join(heuristic.Names(), ", ")))
	fs.String("decider", "majority", "decision strategy: majority, preference, random")
	fs.Int64("seed", 0, "seed of the first game, game i uses seed+i (random if not set)")
	fs.Int("progress-every", 10, "log progress after every N finished games")
	fs.Int("max-moves", 0, "stop a game after this many moves, 0 means no limit")
	fs.String("score-csv", "", "write 'gameid,gamescore' csv to this file")
	fs.String("board-file", "", "write the final boards to this file")
	fs.String("parquet-file", "", "write the game results as parquet to this file")
	fs.Bool("debug", false, "enable debug logging")
	fs.Bool("show-board", false, "render the best final board")
	fs.String("config", "", "path to a yaml, json or toml config file")
	return fs
}

// Load the configuration from command line arguments, SLIDEVOTE_* environment
// variables and the optional config file, in this order of precedence
func Load(args []string) (*Config, error) {
	return load(args, io.Discard)
}

// Same as Load, but prints usage and flag errors to given writer
func LoadWithOutput(args []string, output io.Writer) (*Config, error) {
	return load(args, output)
}

func load(args []string, output io.Writer) (*Config, error) {
	fs := flagSet(output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.HasSeed = v.IsSet("seed")
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.ProgressEvery < 0 || c.MaxMoves < 0 {
		errs = append(errs, errors.New("progress-every and max-moves can't be negative"))
	}
	if _, err := c.SearchConfig(); err != nil {
		errs = append(errs, err)
	}
	if _, err := heuristic.Parse(c.Heuristics); err != nil {
		errs = append(errs, err)
	}
	if _, err := decision.ByName(c.Decider); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Engine configuration, the tie-break generators are not seeded here,
// the arena passes every game its own generator
func (c *Config) SearchConfig() (search.Config, error) {
	weighting, err := search.ParseDepthWeighting(c.Weighting)
	if err != nil {
		return search.Config{}, err
	}
	config := search.DefaultConfig().
		WithMaxDepth(c.MaxDepth).
		WithAfterstates(c.Afterstates).
		WithWeighting(weighting)
	return config, config.Validate()
}

func (c *Config) BuildHeuristics() ([]heuristic.Heuristic, error) {
	return heuristic.Parse(c.Heuristics)
}

func (c *Config) Strategy() (decision.Strategy, error) {
	return decision.ByName(c.Decider)
}
