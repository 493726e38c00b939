package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagShapes     string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD    - Move the piece
  Tab/Shift+Tab  - Cycle tray slots
  1-5            - Select a tray slot
  Space/Enter    - Place the piece
  H/?            - Hint
  P/Esc          - Pause
  R              - Restart (after game over)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Small pieces early, large pieces arrive slowly
  normal - Default progression
  hard   - Large pieces from the start
  fixed  - No progression, stays at config's initial level

Examples:
  blast play blast
  blast play blast_mini --difficulty easy
  blast play blast --shapes classic
  blast play blast --shapes ./my-shapes.yaml
  blast play blast --config ./my-blast.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags that tune a game before it starts.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagShapes, "shapes", "", "Shape set ID, or path to a shape-set file or directory")
}

// applyGameFlags hands the game flags to the blast package. An explicit
// --config must load here so a broken file fails the command.
func applyGameFlags() error {
	if flagConfig != "" {
		if _, _, err := config.LoadBlastFrom(flagConfig); err != nil {
			return err
		}
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	blast.SetConfigPath(flagConfig)
	blast.SetDifficultyPreset(flagDifficulty)

	switch {
	case flagShapes == "":
		blast.SetShapeSet("", "")
	case fileExists(flagShapes):
		blast.SetShapeSet("", flagShapes)
	default:
		blast.SetShapeSet(flagShapes, "")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blast list' to see available modes.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameLogger := interactiveLogger()
	blast.SetLogger(gameLogger)

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	gameLogger.Info("game started", "game", gameID, "seed", cfg.Seed)
	runErr := tui.Run(game, store, cfg, gameLogger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLogFile()
		os.Exit(1)
	}
}
