package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tsmend/internal/diag"
	"tsmend/internal/engine"
	"tsmend/internal/project"
)

// resolveManifest loads tsmend.toml from --config or by walking up from cwd.
// Без манифеста команда работает на дефолтах, укоренённых в cwd.
func resolveManifest(cmd *cobra.Command) (*project.Manifest, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		return project.Load(configPath)
	}
	return project.Resolve(".")
}

// resolveTargets returns the files a blind-scan command operates on: explicit
// arguments win, otherwise the manifest's scan root is walked.
func resolveTargets(manifest *project.Manifest, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	root := manifest.ScanRoot()
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scan root does not exist: %s", root)
		}
		return nil, fmt.Errorf("failed to stat scan root %s: %w", root, err)
	}
	return engine.ListSourceFiles(root, manifest.Config.Project.Extensions)
}

// setupColor применяет --color к глобальному состоянию fatih/color.
func setupColor(cmd *cobra.Command) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	mode, err := parseTermMode("color", colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(os.Stdout)
	return nil
}

// newEngine builds the rewrite engine from the persistent flags.
func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return nil, err
	}
	useCache, err := cmd.Root().PersistentFlags().GetBool("disk-cache")
	if err != nil {
		return nil, err
	}

	eng := &engine.Engine{Jobs: jobs}
	if useCache {
		cache, err := engine.OpenDiskCache("tsmend")
		if err != nil {
			return nil, fmt.Errorf("open disk cache: %w", err)
		}
		eng.Cache = cache
	}
	return eng, nil
}

// newEmitter builds the report emitter from the persistent flags. Базой для
// --paths relative служит директория манифеста.
func newEmitter(cmd *cobra.Command, manifest *project.Manifest) (*engine.Emitter, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, err
	}
	pathMode, err := cmd.Root().PersistentFlags().GetString("paths")
	if err != nil {
		return nil, err
	}
	switch pathMode {
	case "auto", "absolute", "relative", "basename":
		// supported
	default:
		return nil, fmt.Errorf("invalid --paths value %q (expected auto|absolute|relative|basename)", pathMode)
	}
	return &engine.Emitter{
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Quiet:    quiet,
		PathMode: pathMode,
		BaseDir:  manifest.Root,
	}, nil
}

// restrictGroups keeps only the diagnostic groups whose file is among the
// explicitly requested paths. Пустой список аргументов ничего не фильтрует.
func restrictGroups(groups []diag.FileGroup, args []string) []diag.FileGroup {
	if len(args) == 0 {
		return groups
	}
	wanted := make(map[string]bool, len(args))
	for _, arg := range args {
		wanted[filepath.Clean(arg)] = true
	}
	kept := groups[:0]
	for _, g := range groups {
		if wanted[filepath.Clean(g.Path)] {
			kept = append(kept, g)
		}
	}
	return kept
}
