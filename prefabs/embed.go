package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed tuning.yaml
var tuningYAML []byte

const (
	TuningFile    = "tuning.yaml"
	DefaultScript = "hopper.tengo"
)

// LoadTuning resolves the tuning file and returns it with the path it came
// from ("" for the embedded copy).
// Search order: customPath -> ~/.skyhop/tuning.yaml -> ./prefabs/tuning.yaml -> embedded.
func LoadTuning(customPath string) (Tuning, string, error) {
	if customPath != "" {
		t, err := LoadTuningFile(customPath)
		return t, customPath, err
	}

	for _, path := range []string{userTuningPath(), diskPrefabPath(TuningFile)} {
		if path == "" {
			continue
		}
		t, err := LoadTuningFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return t, path, err
	}

	t, err := ParseTuning(tuningYAML)
	if err != nil {
		return DefaultTuning(), "", nil
	}
	return t, "", nil
}

func LoadTuningFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("prefabs: read %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadScript reads a bot script from disk, falling back to the embedded
// scripts directory.
func LoadScript(name string) ([]byte, error) {
	if name == "" {
		name = DefaultScript
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	data, err := ScriptsFS.ReadFile(cleanScriptPath(name))
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return data, nil
}

func userTuningPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyhop", TuningFile)
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
