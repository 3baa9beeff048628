package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdamMil/BirdhouseManor/internal/catalog"
	"github.com/AdamMil/BirdhouseManor/internal/config"
	"github.com/AdamMil/BirdhouseManor/internal/document"
	"github.com/AdamMil/BirdhouseManor/internal/logger"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "birdhouse",
	Short: "Tool for compiling and inspecting dungeon board game definitions",
	Long: `Birdhouse compiles game definition files (squares, dungeon tiles, card templates, cards,
heroes and monsters) into a validated catalog and lets you inspect the result.
Games live in your game library (XDG_DATA_HOME/birdhouse/games) or anywhere on disk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.LogLevel = level
		}
		logger.Init(cfg.LogLevel, cfg.LogFormat)
		logger.Log.WithField("config", config.GetConfigFilePath()).Debug("configuration loaded")
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// gameArg returns the game named by the --game flag, or the default game.
func gameArg(cmd *cobra.Command) (string, error) {
	name, _ := cmd.Flags().GetString("game")
	return config.ResolveGame(name)
}

// loadCatalog loads and compiles the game at path.
func loadCatalog(path string) (*catalog.Catalog, *document.Document, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, nil, err
	}
	log := logger.Log.WithField("game", path)
	cat, err := catalog.Compile(doc, catalog.WithLogger(log))
	if err != nil {
		return nil, nil, fmt.Errorf("error compiling %s: %w", path, err)
	}
	return cat, doc, nil
}
