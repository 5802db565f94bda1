package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apastel/secret-santa-generator/internal/config"
	"github.com/apastel/secret-santa-generator/internal/export"
	"github.com/apastel/secret-santa-generator/internal/loader"
	"github.com/apastel/secret-santa-generator/internal/log"
	"github.com/apastel/secret-santa-generator/internal/participant"
	"github.com/apastel/secret-santa-generator/internal/solver"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	flagDebug bool
	flagJSON  bool
	flagSeed  uint64
)

var rootCmd = &cobra.Command{
	Use:   "secret-santa",
	Short: "Draw anonymous gift assignments with exclusion constraints",
	Long: `Assign each participant exactly one other participant to gift anonymously.

Participants are loaded from a JSON or YAML file; each entry names a person
and optionally the people they must not be matched with. The draw is a
random derangement: nobody gifts themselves and no excluded pair appears.

Examples:
  # Draw and print pairings to the console
  secret-santa --participants resources/participants.json

  # Also write one PDF per giver
  secret-santa --participants people.json --outdir pairings_pdfs

  # Reproducible draw for testing
  secret-santa --participants people.json --seed 42`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !flagDebug && os.Getenv("SANTA_DEBUG") == "" {
			return nil
		}
		cleanup, err := log.Init("santa-debug.log")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		cobra.OnFinalize(cleanup)
		return nil
	},
	RunE: runDraw,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/secret-santa/config.yaml)")
	rootCmd.PersistentFlags().StringP("participants", "p", "",
		"path to participants JSON or YAML file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"write debug logs to santa-debug.log")
	rootCmd.Flags().StringP("outdir", "o", "",
		"directory to write pairing PDFs (if omitted, PDFs are not written)")
	rootCmd.Flags().Int("attempts", config.Defaults().Attempts,
		"attempt bound for the random assignment search")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0,
		"seed the search for a reproducible assignment")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false,
		"also print the result as JSON")

	// Bind flags to viper
	_ = viper.BindPFlag("participants", rootCmd.PersistentFlags().Lookup("participants"))
	_ = viper.BindPFlag("outdir", rootCmd.Flags().Lookup("outdir"))
	_ = viper.BindPFlag("attempts", rootCmd.Flags().Lookup("attempts"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("attempts", defaults.Attempts)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .santa/config.yaml (current directory)
		// 2. ~/.config/secret-santa/config.yaml (user config)
		if _, err := os.Stat(".santa/config.yaml"); err == nil {
			viper.SetConfigFile(".santa/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "secret-santa"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .santa/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".santa/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runDraw(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reg, err := loadRegistry(cfg.Participants)
	if err != nil {
		return err
	}

	opts := []solver.Option{solver.WithMaxAttempts(cfg.Attempts)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, solver.WithSeed(flagSeed))
	}

	result, err := solver.New(opts...).Solve(reg)
	if err != nil {
		return fmt.Errorf("solving assignment: %w", err)
	}

	// The assignment is complete at this point; exporter failures are
	// reported but never trigger a re-solve.
	exporters := export.Multi{export.NewConsole(cmd.OutOrStdout(), cfg.Theme)}
	if flagJSON {
		exporters = append(exporters, export.NewJSON(cmd.OutOrStdout()))
	}
	if cfg.Outdir != "" {
		exporters = append(exporters, export.NewPDF(cfg.Outdir))
	}
	if err := exporters.Export(result, reg); err != nil {
		return fmt.Errorf("exporting assignment: %w", err)
	}
	return nil
}

func loadRegistry(path string) (*participant.Registry, error) {
	entries, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading participants: %w", err)
	}
	reg, err := participant.NewRegistry(entries)
	if err != nil {
		return nil, fmt.Errorf("building roster: %w", err)
	}
	return reg, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
