package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/utils"
	"github.com/google/uuid"
)

// Bundle is a study workspace persisted on disk as bundle.json.
type Bundle struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Inputs       Inputs               `json:"inputs"`
	Artifacts    map[string]*Artifact `json:"artifacts"`
	LastAnalyzed time.Time            `json:"last_analyzed,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`

	rootDir string
}

// Inputs records the two study tables the bundle was analyzed from.
type Inputs struct {
	Metadata string `json:"metadata,omitempty"`
	Results  string `json:"results,omitempty"`
}

// New constructs an in-memory bundle. Call Save to persist.
func New(name, description, rootDir string) *Bundle {
	now := time.Now()
	return &Bundle{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Artifacts:   make(map[string]*Artifact),
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
	}
}

// Load reads bundle.json from dir.
func Load(dir string) (*Bundle, error) {
	path := filepath.Join(dir, utils.BundleManifest)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bundle not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	var bd Bundle
	if err := json.Unmarshal(b, &bd); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if bd.Artifacts == nil {
		bd.Artifacts = make(map[string]*Artifact)
	}
	bd.rootDir = dir
	return &bd, nil
}

// RootDir returns the on-disk bundle directory.
func (b *Bundle) RootDir() string { return b.rootDir }

// Save writes bundle.json atomically.
func (b *Bundle) Save() error {
	if b.rootDir == "" {
		return errors.New("bundle root directory not set")
	}
	if err := utils.EnsureDir(b.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	b.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(b)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(b.rootDir, utils.BundleManifest), data)
}

// SetInputs records absolute paths of the metadata and results tables.
func (b *Bundle) SetInputs(metadata, results string) error {
	var err error
	if b.Inputs.Metadata, err = absExisting(metadata); err != nil {
		return fmt.Errorf("metadata input: %w", err)
	}
	if b.Inputs.Results, err = absExisting(results); err != nil {
		return fmt.Errorf("results input: %w", err)
	}
	b.UpdatedAt = time.Now()
	return nil
}

func absExisting(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// WriteFile writes data under the bundle root and records it as an artifact of kind.
func (b *Bundle) WriteFile(kind Kind, name string, data []byte) (string, error) {
	p := filepath.Join(b.rootDir, filepath.FromSlash(name))
	if err := utils.EnsureDir(filepath.Dir(p)); err != nil {
		return "", fmt.Errorf("ensure dir: %w", err)
	}
	if err := utils.SafeWriteFile(p, data); err != nil {
		return "", err
	}
	if err := b.Track(kind, p); err != nil {
		return "", err
	}
	return p, nil
}

// Track records an existing file inside the bundle as an artifact.
// Re-tracking the same path refreshes it and keeps its id.
func (b *Bundle) Track(kind Kind, path string) error {
	rel, err := b.relative(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(filepath.Join(b.rootDir, rel))
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}
	key := filepath.ToSlash(rel)
	if b.Artifacts == nil {
		b.Artifacts = make(map[string]*Artifact)
	}
	a, ok := b.Artifacts[key]
	if !ok {
		a = &Artifact{ID: uuid.NewString(), Path: key}
		b.Artifacts[key] = a
	}
	a.Kind = kind
	a.Size = info.Size()
	a.WrittenAt = info.ModTime()
	b.UpdatedAt = time.Now()
	return nil
}

func (b *Bundle) relative(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.rootDir, path)
	}
	rel, err := filepath.Rel(b.rootDir, path)
	if err != nil {
		return "", fmt.Errorf("artifact path: %w", err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact %s is outside bundle %s", path, b.rootDir)
	}
	return rel, nil
}

// List returns artifacts of the given kinds (all when none given) sorted by path.
func (b *Bundle) List(kinds ...Kind) []*Artifact {
	out := make([]*Artifact, 0, len(b.Artifacts))
	for _, a := range b.Artifacts {
		if len(kinds) == 0 || containsKind(kinds, a.Kind) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// MarkAnalyzed stamps the time of the latest analysis run.
func (b *Bundle) MarkAnalyzed() {
	b.LastAnalyzed = time.Now()
	b.UpdatedAt = b.LastAnalyzed
}

// Discover returns the bundles directly under root, sorted by name.
// Subdirectories without a bundle.json are skipped.
func Discover(root string) ([]*Bundle, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []*Bundle
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, utils.BundleManifest)); err != nil {
			continue
		}
		b, err := Load(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
