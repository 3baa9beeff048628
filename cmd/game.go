package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AdamMil/BirdhouseManor/internal/catalog"
	"github.com/AdamMil/BirdhouseManor/internal/config"
	"github.com/AdamMil/BirdhouseManor/internal/document"
)

// gameCmd represents the game command group
var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage games in your game library",
	Long:  `Commands for managing game definitions in your game library.`,
}

// gameListCmd represents the game ls command
var gameListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available games in your game library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetGameLibraryPath()
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Printf("Game library at %s does not exist.\n", libraryPath)
			fmt.Println("Run 'birdhouse game init' to create it.")
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		games, err := config.ListGames()
		if err != nil {
			return err
		}

		if len(games) == 0 {
			fmt.Println("No games found in your game library.")
			fmt.Println("You can add games by copying them to:", libraryPath)
			return nil
		}

		for _, name := range games {
			// the document's name is shown when it parses; compile errors are for validate
			title := "unreadable"
			if doc, err := document.Load(filepath.Join(libraryPath, name)); err == nil {
				title = doc.Name
			}
			if name == cfg.DefaultGame {
				fmt.Printf("* %s (%s) [DEFAULT]\n", name, title)
			} else {
				fmt.Printf("  %s (%s)\n", name, title)
			}
		}
		if line := extensionLine(); line != "" {
			fmt.Println()
			fmt.Println(line)
		}
		return nil
	},
}

// extensionLine lists the built-in extensions a game can name, or returns "" if there are none.
func extensionLine() string {
	names := catalog.Extensions()
	if len(names) == 0 {
		return ""
	}
	return "Extensions: " + strings.Join(names, ", ")
}

// gameSetDefaultCmd represents the game set-default command
var gameSetDefaultCmd = &cobra.Command{
	Use:   "set-default [game_name]",
	Short: "Set the default game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		gamePath, err := config.GetGamePath(name)
		if err != nil {
			return err
		}
		if _, _, err := loadCatalog(gamePath); err != nil {
			return fmt.Errorf("not a valid game: %w", err)
		}

		if err := config.SetDefaultGame(name); err != nil {
			return fmt.Errorf("error setting default game: %w", err)
		}
		fmt.Printf("Default game set to: %s\n", name)
		return nil
	},
}

// gameInitCmd represents the game init command
var gameInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the game library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetGameLibraryPath()
		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating game library: %w", err)
		}
		fmt.Println("Game library initialized at:", libraryPath)
		fmt.Println("You can now add games by copying them to this directory.")

		// PersistentPreRunE already created the config file
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(gameCmd)
	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameSetDefaultCmd)
	gameCmd.AddCommand(gameInitCmd)
}
