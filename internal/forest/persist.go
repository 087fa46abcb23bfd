package forest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Named conditions for the model artifact file, mirroring the dataset
// package so the bootstrap path can map each to its own fallback.
var (
	// ErrArtifactNotFound means there is no artifact at the given path.
	ErrArtifactNotFound = errors.New("forest: artifact not found")
	// ErrArtifactCorrupt means the artifact exists but cannot be decoded.
	ErrArtifactCorrupt = errors.New("forest: artifact corrupt")
)

// Save serializes the fitted forest to path. The write goes through a
// temporary file and a rename so a crash never leaves a half-written
// artifact for the next startup to load.
func (f *Forest) Save(path string) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("forest: encode artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("forest: create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("forest: create temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("forest: write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("forest: close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("forest: replace artifact: %w", err)
	}
	return nil
}

// Load reads a previously saved artifact.
func Load(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}

	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	if len(f.Trees) == 0 || f.NumFeatures == 0 {
		return nil, fmt.Errorf("%w: artifact has no trees", ErrArtifactCorrupt)
	}
	return &f, nil
}
