// Package capture serializes engine state to disk for offline replay.
// Snapshots are written as YAML, one file per named piece of state, so
// captures stay diffable and hand-editable when debugging a frame.
package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrSnapshotCorrupt is returned when a snapshot file exists but does
// not parse. A corrupt snapshot means the capture itself is broken;
// callers must not silently continue without the state.
var ErrSnapshotCorrupt = errors.New("capture: corrupt snapshot")

// Bits selects which engine state a capture includes.
type Bits uint8

const (
	// BitsScene captures the retained scene: pipelines, display lists,
	// and the root designation.
	BitsScene Bits = 1 << iota

	// BitsFrame captures the last built frame.
	BitsFrame

	// BitsAll captures everything.
	BitsAll = BitsScene | BitsFrame
)

// Has reports whether all of the given bits are set.
func (b Bits) Has(want Bits) bool {
	return b&want == want
}

// Config names a capture on disk: its root directory and which state
// to include.
type Config struct {
	Root string
	Bits Bits
}

// New creates a capture config rooted at dir.
func New(dir string, bits Bits) Config {
	return Config{Root: dir, Bits: bits}
}

// Serialize writes v as pretty YAML to root/name.yaml, creating the
// root directory if needed.
func (c Config) Serialize(v any, name string) error {
	if err := os.MkdirAll(c.Root, 0o755); err != nil {
		return fmt.Errorf("capture: create root: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("capture: marshal %s: %w", name, err)
	}
	path := filepath.Join(c.Root, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("capture: write %s: %w", name, err)
	}
	return nil
}

// Deserialize reads root/name.yaml into a T. A missing or unreadable
// file returns (zero, false, nil): captures legitimately omit state
// their Bits did not include, and a capture that cannot be opened is
// treated the same way. A file that reads but does not parse returns an
// ErrSnapshotCorrupt-wrapped error.
func Deserialize[T any](root, name string) (T, bool, error) {
	var v T
	path := filepath.Join(root, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return v, false, nil
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("%w: %s: %v", ErrSnapshotCorrupt, name, err)
	}
	return v, true, nil
}
