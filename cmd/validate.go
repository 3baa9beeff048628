package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AdamMil/BirdhouseManor/internal/config"
	"github.com/AdamMil/BirdhouseManor/internal/logger"
	"github.com/AdamMil/BirdhouseManor/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a game definition",
	Long: `Validate compiles a game definition and reports the first error it finds, along with
warnings about missing images and cards that will never be dealt. If no path is given, the
default game from your config is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		gamePath, err := config.ResolveGame(name)
		if err != nil {
			return err
		}

		v := validator.NewValidator(gamePath, logger.Log.WithField("game", gamePath))
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if results.OK() {
			color.Green("✅ Game '%s' is valid.", gamePath)
			if fp, err := v.Catalog.Fingerprint(); err == nil {
				fmt.Printf("Fingerprint: %s\n", fp)
			}
		} else {
			color.Red("❌ Game '%s' has %d validation errors:", gamePath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			color.Yellow("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if !results.OK() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
