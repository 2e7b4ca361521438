package config

import (
	_ "embed"
)

//go:embed defaults/tilegame.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/tilegame.yaml.
func Default() Config {
	return Config{
		World: WorldConfig{
			TileWidth: 1,
			ViewTiles: ViewTiles{W: 16, H: 12},
		},
		Player: PlayerConfig{
			Start:        [2]float64{-1, 0},
			SizeTiles:    2,
			MaxSizeTiles: 0,
			Color:        "red",
		},
		Tiles: TilesConfig{
			Behavior: BehaviorPush,
		},
		Render: RenderConfig{
			Background: "grey",
			Debug:      true,
		},
		Display: DisplayConfig{
			TUI: TUIConfig{
				Scale: 4,
				FPS:   30,
			},
			Window: WindowConfig{
				Scale:  30,
				Width:  640,
				Height: 480,
				TPS:    60,
			},
		},
		Map: MapConfig{
			Path: "level1.json",
		},
		Palette: []string{"white", "grey", "light_grey", "red"},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}
