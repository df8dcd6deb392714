// Package config reads a yo.toml project manifest: the entry module name and
// the module search paths a ModuleLoader resolves `use` directives against.
//
// Grounded on surge/cmd/surge/project_manifest.go's findSurgeToml/
// loadProjectConfig shape (walk up from a start directory looking for the
// manifest file, then toml.DecodeFile with meta.IsDefined checks in place of
// zero-value validation) using the same github.com/BurntSushi/toml the
// teacher depends on. SPEC_FULL.md §1: only the shape of config loading is
// kept here, not a real build pipeline — this package never invokes a
// compiler backend, it only hands internal/driver a resolved Manifest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the name of the project manifest this package looks for,
// the yo.toml counterpart to the teacher's surge.toml.
const ManifestFile = "yo.toml"

// Manifest is a fully loaded, path-resolved yo.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors yo.toml's top-level tables.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig is yo.toml's [package] table.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig is yo.toml's [build] table: the entry module and the ordered
// list of directories a ModuleLoader searches for a `use`-directive name.
type BuildConfig struct {
	Entry      string   `toml:"entry"`
	Target     string   `toml:"target"`
	ModulePath []string `toml:"module_path"`
}

// Find walks up from startDir looking for a yo.toml, the same upward-search
// findSurgeToml performs, stopping at the filesystem root.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the yo.toml reachable from startDir. ok is false
// (with a nil error) when no manifest exists on the walk up.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := decode(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// decode parses path and validates the required fields are present, the same
// meta.IsDefined pattern the teacher's loadProjectConfig uses in place of
// zero-value checks (an explicitly empty string and an absent key must be
// told apart).
func decode(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build") {
		return Config{}, fmt.Errorf("%s: missing [build]", path)
	}
	if !meta.IsDefined("build", "entry") || strings.TrimSpace(cfg.Build.Entry) == "" {
		return Config{}, fmt.Errorf("%s: missing [build].entry", path)
	}
	return cfg, nil
}

// SearchPaths returns the absolute directories a ModuleLoader should search,
// relative to the manifest's root, defaulting to the root itself when
// module_path is empty.
func (m *Manifest) SearchPaths() []string {
	if len(m.Config.Build.ModulePath) == 0 {
		return []string{m.Root}
	}
	paths := make([]string, len(m.Config.Build.ModulePath))
	for i, p := range m.Config.Build.ModulePath {
		paths[i] = filepath.Join(m.Root, filepath.FromSlash(p))
	}
	return paths
}

// EntryPath resolves [build].entry against the manifest root.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Entry))
}
