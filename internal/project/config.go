package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"tsmend/internal/diag"
	"tsmend/internal/rules"
)

// ManifestName is the per-project configuration file tsmend looks for.
const ManifestName = "tsmend.toml"

// Config is the full per-project configuration. Every field has a default,
// so an empty (or absent) manifest is a valid project.
type Config struct {
	Project     ProjectConfig     `toml:"project"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Rules       RulesConfig       `toml:"rules"`
}

// ProjectConfig scopes which files a blind scan visits.
type ProjectConfig struct {
	// Root is the directory scanned recursively, relative to the manifest.
	Root string `toml:"root"`
	// Extensions filters files by suffix.
	Extensions []string `toml:"extensions"`
}

// DiagnosticsConfig locates the compiler diagnostics listing.
type DiagnosticsConfig struct {
	Path string `toml:"path"`
}

// RulesConfig holds the per-family rule parameters.
type RulesConfig struct {
	Assertions AssertionsConfig `toml:"assertions"`
	Imports    ImportsConfig    `toml:"imports"`
	Narrow     NarrowConfig     `toml:"narrow"`
}

// AssertionsConfig parametrises the chained-assertion cleanup family.
type AssertionsConfig struct {
	RowType string   `toml:"row_type"`
	Methods []string `toml:"methods"`
}

// ImportsConfig parametrises the import-rewrite family.
type ImportsConfig struct {
	TypeName      string `toml:"type_name"`
	HelpersModule string `toml:"helpers_module"`
}

// NarrowConfig parametrises the unknown-type narrowing family.
type NarrowConfig struct {
	ErrorNames      []string `toml:"error_names"`
	CallbackMethods []string `toml:"callback_methods"`
}

// Default returns the built-in configuration. Значения повторяют параметры
// семейств правил: manifest переопределяет только то, что задал явно.
func Default() Config {
	a := rules.DefaultAssertionParams()
	i := rules.DefaultImportParams()
	n := rules.DefaultNarrowParams()
	return Config{
		Project: ProjectConfig{
			Root:       "lib",
			Extensions: []string{".ts", ".tsx"},
		},
		Diagnostics: DiagnosticsConfig{
			Path: diag.DefaultDiagnosticsPath,
		},
		Rules: RulesConfig{
			Assertions: AssertionsConfig{RowType: a.RowType, Methods: a.Methods},
			Imports:    ImportsConfig{TypeName: i.TypeName, HelpersModule: i.HelpersModule},
			Narrow:     NarrowConfig{ErrorNames: n.ErrorNames, CallbackMethods: n.CallbackMethods},
		},
	}
}

// Manifest is a located and parsed tsmend.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// FindManifest walks up from startDir to locate tsmend.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
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

// Load reads the manifest at path and merges it over the defaults.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Resolve находит манифест вверх от startDir; если его нет — возвращает
// манифест с дефолтами, укоренённый в startDir.
func Resolve(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, err
		}
		return &Manifest{Root: root, Config: Default()}, nil
	}
	return Load(path)
}

// ScanRoot returns the absolute directory a blind scan starts from.
func (m *Manifest) ScanRoot() string {
	if filepath.IsAbs(m.Config.Project.Root) {
		return m.Config.Project.Root
	}
	return filepath.Join(m.Root, m.Config.Project.Root)
}

// AssertionParams converts the manifest section into rule parameters.
func (m *Manifest) AssertionParams() rules.AssertionParams {
	return rules.AssertionParams{
		RowType: m.Config.Rules.Assertions.RowType,
		Methods: m.Config.Rules.Assertions.Methods,
	}
}

// ImportParams converts the manifest section into rule parameters.
func (m *Manifest) ImportParams() rules.ImportParams {
	return rules.ImportParams{
		TypeName:      m.Config.Rules.Imports.TypeName,
		HelpersModule: m.Config.Rules.Imports.HelpersModule,
	}
}

// NarrowParams converts the manifest section into rule parameters.
func (m *Manifest) NarrowParams() rules.NarrowParams {
	return rules.NarrowParams{
		ErrorNames:      m.Config.Rules.Narrow.ErrorNames,
		CallbackMethods: m.Config.Rules.Narrow.CallbackMethods,
	}
}
