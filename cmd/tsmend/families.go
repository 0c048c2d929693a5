package main

import (
	"os"

	"github.com/spf13/cobra"

	"tsmend/internal/engine"
	"tsmend/internal/pipeline"
	"tsmend/internal/project"
	"tsmend/internal/rules"
)

var assertionsCmd = &cobra.Command{
	Use:   "assertions [files...]",
	Short: "Remove type assertions stranded mid query chain",
	Long:  "Scan for `as { data: ... }` assertions left in the middle of a builder chain and reattach the chain without them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlindFamily(cmd, args, "tsmend assertions", func(m *project.Manifest) *rules.Set {
			return rules.NewSet(rules.NewAssertionRules(m.AssertionParams())...)
		})
	},
}

var importsCmd = &cobra.Command{
	Use:   "imports [files...]",
	Short: "Untangle type imports inserted into open import blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlindFamily(cmd, args, "tsmend imports", func(m *project.Manifest) *rules.Set {
			return rules.NewSet(rules.NewImportRule(m.ImportParams()))
		})
	},
}

func init() {
	assertionsCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	importsCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

// runBlindFamily выполняет один blind-scan прогон: цели из аргументов либо
// из scan root манифеста, отчёт в stdout/stderr.
func runBlindFamily(cmd *cobra.Command, args []string, title string, build func(*project.Manifest) *rules.Set) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	manifest, err := resolveManifest(cmd)
	if err != nil {
		return err
	}
	targets, err := resolveTargets(manifest, args)
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	emitter, err := newEmitter(cmd, manifest)
	if err != nil {
		return err
	}

	set := build(manifest)

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := parseTermMode("ui", uiFlag)
	if err != nil {
		return err
	}

	var results []engine.FileResult
	if mode.enabled(os.Stdout) {
		results, err = runWithUI(title, targets, func(sink pipeline.ProgressSink) ([]engine.FileResult, error) {
			eng.Sink = sink
			return eng.RunBlind(cmd.Context(), targets, set)
		})
	} else {
		results, err = eng.RunBlind(cmd.Context(), targets, set)
	}
	if err != nil {
		return err
	}

	emitter.ObserveAll(results)
	emitter.Summarize()
	return nil
}
