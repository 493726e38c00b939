package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/shapes"
	"github.com/vovakirdan/tui-blast/internal/games/blast/shapes/formats"
)

var flagShapeDir string

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Inspect and validate shape sets",
	Long: `Work with the shape sets that feed the tray.

Built-in sets are embedded in the binary. Custom sets are YAML files;
pass a directory with --path to use them.

Examples:
  blast shapes list
  blast shapes list --path ./shapes
  blast shapes show classic
  blast shapes validate ./shapes`,
}

var shapesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shape sets",
	Args:  cobra.NoArgs,
	Run:   runShapesList,
}

var shapesShowCmd = &cobra.Command{
	Use:   "show <set>",
	Short: "Print every shape of a set in all four rotations",
	Args:  cobra.ExactArgs(1),
	Run:   runShapesShow,
}

var shapesValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check shape-set files for errors",
	Long: `Parse every shape-set file under path (a file or a directory) and
report the ones that fail. Exits with status 1 if any file is invalid.`,
	Args: cobra.ExactArgs(1),
	Run:  runShapesValidate,
}

func init() {
	shapesCmd.PersistentFlags().StringVar(&flagShapeDir, "path", "", "Directory of custom shape-set files")

	shapesCmd.AddCommand(shapesListCmd)
	shapesCmd.AddCommand(shapesShowCmd)
	shapesCmd.AddCommand(shapesValidateCmd)
}

func runShapesList(_ *cobra.Command, _ []string) {
	fmt.Println("Built-in shape sets:")
	fmt.Println()
	for _, id := range shapes.BuiltinIDs() {
		set, err := shapes.Builtin(id)
		if err != nil {
			fmt.Printf("  %-12s  (broken: %v)\n", id, err)
			continue
		}
		fmt.Printf("  %-12s  %-20s  %d shapes\n", set.ID, set.Name, len(set.Shapes))
	}

	if flagShapeDir == "" {
		return
	}

	sets, err := shapes.NewLoader(flagShapeDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", flagShapeDir, err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Custom shape sets in %s:\n", flagShapeDir)
	fmt.Println()
	if len(sets) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, set := range sets {
		fmt.Printf("  %-12s  %-20s  %d shapes  %s\n", set.ID, set.Name, len(set.Shapes), set.FilePath)
	}
}

func runShapesShow(_ *cobra.Command, args []string) {
	set, err := shapes.Resolve(args[0], flagShapeDir)
	if err != nil && flagShapeDir != "" {
		// Fall back to the embedded sets when the directory lacks the ID.
		set, err = shapes.Builtin(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'blast shapes list' to see available sets.")
		os.Exit(1)
	}

	fmt.Printf("%s - %s (%d shapes)\n", set.ID, set.Name, len(set.Shapes))
	for i, sh := range set.Shapes {
		fmt.Println()
		weight := 1
		if i < len(set.Weights) {
			weight = set.Weights[i]
		}
		fmt.Printf("%s  %s  weight %d  %d cells\n", sh.ID(), sh.Name(), weight, sh.Len())
		fmt.Print(renderRotations(sh))
	}
}

// renderRotations draws the four rotations of a shape side by side.
func renderRotations(sh core.Shape) string {
	const gap = "   "

	grids := make([][]string, 4)
	height := 0
	for steps := range grids {
		grids[steps] = shapeRows(sh, steps)
		height = max(height, len(grids[steps]))
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		b.WriteString("  ")
		for steps, grid := range grids {
			w, _ := sh.Bounds(steps)
			line := strings.Repeat(" ", w)
			if row < len(grid) {
				line = grid[row]
			}
			b.WriteString(line)
			if steps < len(grids)-1 {
				b.WriteString(gap)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shapeRows(sh core.Shape, steps int) []string {
	w, h := sh.Bounds(steps)
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", w))
	}
	for _, c := range sh.NormalizedCells(steps) {
		rows[c.Y][c.X] = '#'
	}
	out := make([]string, h)
	for y, r := range rows {
		out[y] = string(r)
	}
	return out
}

func runShapesValidate(_ *cobra.Command, args []string) {
	root := args[0]
	loader := shapes.NewLoader(root)
	exts := formats.FormatExtensions()

	var checked, failed int
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		checked++
		set, loadErr := loader.LoadFile(path)
		if loadErr != nil {
			failed++
			fmt.Printf("FAIL  %s\n      %v\n", path, loadErr)
			return nil
		}
		fmt.Printf("ok    %s (%s, %d shapes)\n", path, set.ID, len(set.Shapes))
		return nil
	})
	if walkErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", walkErr)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("%d file(s) checked, %d invalid\n", checked, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
