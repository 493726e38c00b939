package config

import (
	_ "embed"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the classic 8x8 configuration.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
		},
		Tray: TrayConfig{
			Slots:  3,
			Refill: "slot",
		},
		Scoring: ScoringConfig{
			PointsPerLine: 100,
		},
		Shapes: ShapesConfig{
			Set: "standard",
		},
		Display: DisplayConfig{
			ComboTicks: 45, // 1.5s at 30 ticks/s
			FlashTicks: 9,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				LargeShapeBoost: 1.5,
			},
		},
	}
}

// DefaultYAML returns the annotated default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultBlastYAML...)
}
