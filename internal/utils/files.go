package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BundleManifest is the file that marks a study bundle directory.
const BundleManifest = "bundle.json"

// ErrNoBundle is returned when no bundle.json is found above a path.
var ErrNoBundle = errors.New("bundle root not found (" + BundleManifest + ")")

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON with a trailing newline.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(b, '\n'), nil
}

// FindBundleRoot walks up from start to the nearest directory holding a bundle.json.
// If start is a file, the walk begins at its directory; empty start means the working directory.
func FindBundleRoot(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	info, err := os.Stat(start)
	if err != nil {
		return "", err
	}
	dir := start
	if !info.IsDir() {
		dir = filepath.Dir(start)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, BundleManifest)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNoBundle
}
