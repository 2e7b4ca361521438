package tilemap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilegame/internal/core"
)

var (
	ErrMissingField  = errors.New("missing field")
	ErrArity         = errors.New("wrong number of values")
	ErrColorRange    = errors.New("color channel out of range 0..255")
	ErrDuplicateTile = errors.New("two records share one position")
	ErrBadKey        = errors.New("malformed key")
	ErrNotObject     = errors.New("document is not an object of tile records")
	ErrUnknownField  = errors.New("unknown field")
)

// LoadError is returned for any map file that can't be read or parsed.
// Unwrap yields the I/O error, the syntax error, or one of the Err* values
// above.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "tilemap: load: " + e.Err.Error()
	}
	return fmt.Sprintf("tilemap: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Format is a map file encoding.
type Format int

const (
	// FormatJSON is the canonical format shared with existing level files.
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the format from a file extension. Anything that isn't
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// record is one tile as persisted. Field order is the on-disk order.
type record struct {
	Pos   []int `json:"pos" yaml:"pos,flow"`
	Color []int `json:"color" yaml:"color,flow"`
}

func toRecord(t Tile) record {
	return record{
		Pos:   []int{t.Pos.X, t.Pos.Y},
		Color: []int{int(t.Color.R), int(t.Color.G), int(t.Color.B), int(t.Color.A)},
	}
}

// Load reads a map file.
func Load(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	m, err := Decode(data, FormatFor(path))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Save writes a map file. Loading it back yields an equal map.
func Save(path string, m *TileMap) error {
	data, err := Encode(m, FormatFor(path))
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tilemap: save %s: %w", path, err)
	}
	return nil
}

// Encode serializes a map. JSON output matches the layout of existing level
// files byte for byte: four-space indent, one array element per line,
// records in key order, no trailing newline.
func Encode(m *TileMap, f Format) ([]byte, error) {
	if f == FormatYAML {
		return encodeYAML(m)
	}
	return encodeJSON(m)
}

func encodeJSON(m *TileMap) ([]byte, error) {
	tiles := m.Tiles()
	if len(tiles) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, t := range tiles {
		key, err := json.Marshal(t.Pos.String())
		if err != nil {
			return nil, fmt.Errorf("tilemap: encode key: %w", err)
		}
		rec, err := json.MarshalIndent(toRecord(t), "    ", "    ")
		if err != nil {
			return nil, fmt.Errorf("tilemap: encode %s: %w", t.Pos, err)
		}
		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(rec)
		if i < len(tiles)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeYAML(m *TileMap) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, t := range m.Tiles() {
		var val yaml.Node
		if err := val.Encode(toRecord(t)); err != nil {
			return nil, fmt.Errorf("tilemap: encode %s: %w", t.Pos, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Pos.String(), Style: yaml.DoubleQuotedStyle}
		doc.Content = append(doc.Content, key, &val)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("tilemap: encode yaml: %w", err)
	}
	return out, nil
}

// Decode parses a map. Every failure is a *LoadError. The pos field is
// authoritative: a record filed under a key that disagrees with its pos is
// re-keyed, and two records with the same pos are rejected. Each record
// holds exactly the keys pos and color, matched case-sensitively.
func Decode(data []byte, f Format) (*TileMap, error) {
	var (
		records map[string]fields
		err     error
	)
	if f == FormatYAML {
		records, err = decodeYAML(data)
	} else {
		records, err = decodeJSON(data)
	}
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	m := New()
	seen := make(map[Key]string, len(records))
	for _, name := range sortedNames(records) {
		t, err := decodeRecord(name, records[name])
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		if prev, dup := seen[t.Pos]; dup {
			return nil, &LoadError{Err: fmt.Errorf("%w: %q and %q are both at %s", ErrDuplicateTile, prev, name, t.Pos)}
		}
		seen[t.Pos] = name
		m.Place(t.Pos, t.Color)
	}
	return m, nil
}

// fields maps a record's keys to decoders for their values.
type fields map[string]func(dst any) error

func decodeJSON(data []byte) (map[string]fields, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
		}
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrNotObject)
	}

	records := make(map[string]fields, len(doc))
	for name, raw := range doc {
		var rec map[string]json.RawMessage
		if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
			return nil, fmt.Errorf("%w: %q is not an object", ErrNotObject, name)
		}
		fs := make(fields, len(rec))
		for key, val := range rec {
			fs[key] = func(dst any) error { return json.Unmarshal(val, dst) }
		}
		records[name] = fs
	}
	return records, nil
}

func decodeYAML(data []byte) (map[string]fields, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document is empty or not a mapping", ErrNotObject)
	}

	records := make(map[string]fields, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if _, dup := records[name]; dup {
			return nil, fmt.Errorf("%w: key %q appears twice", ErrDuplicateTile, name)
		}
		rec := resolveAlias(root.Content[i+1])
		if rec.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %q is not a mapping", ErrNotObject, name)
		}
		fs := make(fields, len(rec.Content)/2)
		for j := 0; j+1 < len(rec.Content); j += 2 {
			fs[rec.Content[j].Value] = rec.Content[j+1].Decode
		}
		records[name] = fs
	}
	return records, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func sortedNames(records map[string]fields) []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func decodeRecord(name string, fs fields) (Tile, error) {
	if _, err := ParseKey(name); err != nil {
		return Tile{}, err
	}
	for _, key := range sortedKeys(fs) {
		if key != "pos" && key != "color" {
			return Tile{}, fmt.Errorf("%w: %q has key %q", ErrUnknownField, name, key)
		}
	}

	var rec record
	for _, field := range []struct {
		key string
		dst *[]int
	}{{"pos", &rec.Pos}, {"color", &rec.Color}} {
		decode, ok := fs[field.key]
		if !ok {
			return Tile{}, fmt.Errorf("%w: %q has no %s", ErrMissingField, name, field.key)
		}
		if err := decode(field.dst); err != nil {
			return Tile{}, fmt.Errorf("%q %s: %w", name, field.key, err)
		}
		if *field.dst == nil {
			return Tile{}, fmt.Errorf("%w: %q has no %s", ErrMissingField, name, field.key)
		}
	}

	if len(rec.Pos) != 2 {
		return Tile{}, fmt.Errorf("%w: %q pos has %d values, expected 2", ErrArity, name, len(rec.Pos))
	}
	if len(rec.Color) != 4 {
		return Tile{}, fmt.Errorf("%w: %q color has %d values, expected 4", ErrArity, name, len(rec.Color))
	}
	var ch [4]uint8
	for i, v := range rec.Color {
		if v < 0 || v > 255 {
			return Tile{}, fmt.Errorf("%w: %q color[%d] = %d", ErrColorRange, name, i, v)
		}
		ch[i] = uint8(v)
	}
	return Tile{
		Pos:   Key{X: rec.Pos[0], Y: rec.Pos[1]},
		Color: core.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]},
	}, nil
}

func sortedKeys(fs fields) []string {
	keys := make([]string, 0, len(fs))
	for k := range fs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
