package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top scores for the specified mode.

With --tui, opens the interactive scoreboard instead; the mode argument
is optional there and picks the mode shown first.

Examples:
  blast scores blast
  blast scores blast_mini --limit 20
  blast scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultLimit, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}

	if gameID == "" && !flagScoresTUI {
		fmt.Fprintln(os.Stderr, "Error: a mode is required (or use --tui)")
		fmt.Fprintln(os.Stderr, "Run 'blast list' to see available modes.")
		os.Exit(1)
	}

	// Check if mode exists
	if gameID != "" && !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blast list' to see available modes.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, width, height, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	printScores(store, gameID)
}

func printScores(store *storage.Store, gameID string) {
	title := gameID
	if game, err := registry.Create(gameID); err == nil {
		title = game.Title()
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blast play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %s\n", "Rank", "Score", "Lines", "Combo", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %-5s  %s\n", i+1, entry.Score, entry.Lines, comboLabel(entry.BestCombo), dateStr)
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	fmt.Printf("Best: %d  Games: %d  Avg: %.0f  Lines: %d  Top combo: %s\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines, comboLabel(stats.BestCombo))
}

func comboLabel(combo int) string {
	if combo < 2 {
		return "-"
	}
	return fmt.Sprintf("x%d", combo)
}
