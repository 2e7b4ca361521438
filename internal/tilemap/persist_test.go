package tilemap

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tilegame/internal/core"
)

func sampleMap() *TileMap {
	return FromTiles(
		Tile{Pos: Key{0, 0}, Color: core.ColorWhite},
		Tile{Pos: Key{-1, 2}, Color: core.ColorRed},
	)
}

func TestSaveMatchesLevelFileBytes(t *testing.T) {
	expected, err := os.ReadFile(filepath.Join("testdata", "level1.json"))
	if err != nil {
		t.Fatalf("reading testdata: %v", err)
	}

	got, err := Encode(sampleMap(), FormatJSON)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if string(got) != string(expected) {
		t.Errorf("Encode() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestLoadLevelFile(t *testing.T) {
	for _, name := range []string{"level1.json", "level1.yaml"} {
		t.Run(name, func(t *testing.T) {
			m, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if !m.Equal(sampleMap()) {
				t.Errorf("Load() = %v, expected %v", m.Tiles(), sampleMap().Tiles())
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	maps := map[string]*TileMap{
		"empty":  New(),
		"sample": sampleMap(),
		"translucent": FromTiles(
			Tile{Pos: Key{3, -7}, Color: core.ColorLightGrey.WithAlpha(100)},
			Tile{Pos: Key{-20, 11}, Color: core.Color{}},
		),
	}

	dir := t.TempDir()
	for name, m := range maps {
		for _, ext := range []string{".json", ".yaml"} {
			t.Run(name+ext, func(t *testing.T) {
				path := filepath.Join(dir, name+ext)
				if err := Save(path, m); err != nil {
					t.Fatalf("Save() failed: %v", err)
				}
				loaded, err := Load(path)
				if err != nil {
					t.Fatalf("Load() failed: %v", err)
				}
				if !loaded.Equal(m) {
					t.Errorf("round trip = %v, expected %v", loaded.Tiles(), m.Tiles())
				}

				// Saving what was loaded reproduces the file.
				first, _ := os.ReadFile(path)
				if err := Save(path, loaded); err != nil {
					t.Fatalf("second Save() failed: %v", err)
				}
				second, _ := os.ReadFile(path)
				if string(first) != string(second) {
					t.Error("save(load(save(m))) changed the file")
				}
			})
		}
	}
}

func TestDecodeRekeysByPos(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "rekey.json"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !m.Has(Key{1, 0}) || m.Has(Key{9, 9}) {
		t.Errorf("Keys() = %v, expected [(1, 0)]", m.Keys())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected error
	}{
		{"missing pos", `{"(0, 0)": {"color": [1, 2, 3, 4]}}`, ErrMissingField},
		{"missing color", `{"(0, 0)": {"pos": [0, 0]}}`, ErrMissingField},
		{"null record", `{"(0, 0)": null}`, ErrNotObject},
		{"number record", `{"(0, 0)": 5}`, ErrNotObject},
		{"null pos", `{"(0, 0)": {"pos": null, "color": [1, 2, 3, 4]}}`, ErrMissingField},
		{"capitalized key", `{"(0, 0)": {"pos": [0, 0], "color": [1, 2, 3, 4], "Pos": [9, 9]}}`, ErrUnknownField},
		{"capitalized only", `{"(0, 0)": {"Pos": [0, 0], "Color": [1, 2, 3, 4]}}`, ErrUnknownField},
		{"extra key", `{"(0, 0)": {"pos": [0, 0], "color": [1, 2, 3, 4], "solid": true}}`, ErrUnknownField},
		{"pos arity", `{"(0, 0)": {"pos": [0], "color": [1, 2, 3, 4]}}`, ErrArity},
		{"color arity", `{"(0, 0)": {"pos": [0, 0], "color": [1, 2, 3]}}`, ErrArity},
		{"color range", `{"(0, 0)": {"pos": [0, 0], "color": [1, 2, 300, 4]}}`, ErrColorRange},
		{"negative color", `{"(0, 0)": {"pos": [0, 0], "color": [-1, 2, 3, 4]}}`, ErrColorRange},
		{"bad key", `{"zero": {"pos": [0, 0], "color": [1, 2, 3, 4]}}`, ErrBadKey},
		{
			"duplicate pos",
			`{"(0, 0)": {"pos": [0, 0], "color": [1, 2, 3, 4]}, "(5, 5)": {"pos": [0, 0], "color": [1, 2, 3, 4]}}`,
			ErrDuplicateTile,
		},
		{"array document", `[1, 2]`, ErrNotObject},
		{"null document", `null`, ErrNotObject},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data), FormatJSON)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Decode() error = %v, expected *LoadError", err)
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("Decode() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestDecodeYAMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected error
	}{
		{"empty document", ``, ErrNotObject},
		{"null document", `~`, ErrNotObject},
		{"explicit null", `null`, ErrNotObject},
		{"sequence document", `[1, 2]`, ErrNotObject},
		{"scalar record", `"(0, 0)": 5`, ErrNotObject},
		{"capitalized key", "\"(0, 0)\":\n  Pos: [0, 0]\n  color: [1, 2, 3, 4]\n", ErrUnknownField},
		{"missing color", "\"(0, 0)\":\n  pos: [0, 0]\n", ErrMissingField},
		{"duplicate key", "\"(0, 0)\": {pos: [0, 0], color: [1, 2, 3, 4]}\n\"(0, 0)\": {pos: [0, 0], color: [1, 2, 3, 4]}\n", ErrDuplicateTile},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data), FormatYAML)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Decode() error = %v, expected *LoadError", err)
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("Decode() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestDecodeEmptyObjectIsEmptyMap(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		m, err := Decode([]byte(`{}`), f)
		if err != nil {
			t.Fatalf("Decode({}, %v) failed: %v", f, err)
		}
		if m.Len() != 0 {
			t.Errorf("Decode({}, %v).Len() = %d, expected 0", f, m.Len())
		}
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode([]byte(`{"(0, 0)": `), FormatJSON)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Decode() error = %v, expected *LoadError", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")
	_, err := Load(path)

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, expected *LoadError", err)
	}
	if le.Path != path {
		t.Errorf("LoadError.Path = %q, expected %q", le.Path, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, expected fs.ErrNotExist", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"level1.json": FormatJSON,
		"level1.yaml": FormatYAML,
		"LEVEL.YML":   FormatYAML,
		"level":       FormatJSON,
	}
	for path, expected := range tests {
		if got := FormatFor(path); got != expected {
			t.Errorf("FormatFor(%q) = %v, expected %v", path, got, expected)
		}
	}
}
