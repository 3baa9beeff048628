package cmd

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AdamMil/BirdhouseManor/internal/deck"
	"github.com/AdamMil/BirdhouseManor/internal/logger"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Build the starting decks of a game and deal from them",
	Long: `Decks builds the shuffled starting piles of a game from the card counts in its
definition and prints their sizes. Use --draw to deal tiles from the dungeon deck, and
--seed to make the shuffle repeatable.

Examples:
  birdhouse decks --game ravenloft
  birdhouse decks --draw 5 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gamePath, err := gameArg(cmd)
		if err != nil {
			return err
		}
		cat, _, err := loadCatalog(gamePath)
		if err != nil {
			return err
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}
		logger.Log.WithField("seed", seed).Debug("shuffling decks")
		decks := deck.DefaultDecks(cat, rand.New(rand.NewPCG(seed, seed)))

		fmt.Println(label("Start tiles") + value("%d", len(decks.Start)))
		fmt.Println(label("Dungeon") + value("%d", decks.Tiles.Len()))
		fmt.Println(label("Encounters") + value("%d", decks.Encounters.Len()))
		fmt.Println(label("Treasures") + value("%d", decks.Treasures.Len()))
		fmt.Println(label("Monsters") + value("%d", decks.Monsters.Len()))
		fmt.Println(label("Villains") + value("%d", len(decks.Villains)))

		draw, _ := cmd.Flags().GetInt("draw")
		for i := 0; i < draw; i++ {
			tile, ok := decks.Tiles.Draw(deck.Top)
			if !ok {
				color.Yellow("The dungeon deck is empty.")
				break
			}
			fmt.Printf("\n%s %s\n", color.HiWhiteString("%d.", i+1), tile.Key())
			fmt.Print(tile.GridString())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(decksCmd)

	decksCmd.Flags().StringP("game", "g", "", "Specify a game from your game library or a path to a game")
	decksCmd.Flags().Uint64("seed", 0, "Shuffle seed")
	decksCmd.Flags().IntP("draw", "n", 0, "Number of dungeon tiles to deal")
}
