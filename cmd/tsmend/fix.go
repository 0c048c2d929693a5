package main

import (
	"os"

	"github.com/spf13/cobra"

	"tsmend/internal/diag"
	"tsmend/internal/engine"
	"tsmend/internal/pipeline"
	"tsmend/internal/rules"
)

var fixCmd = &cobra.Command{
	Use:   "fix [files...]",
	Short: "Run every fix family over the project",
	Long: `Run the blind-scan families (stranded assertions, tangled imports) over the
target files, then apply the diagnostic-driven unknown-type narrowing.
Families run in a fixed order; each sees the output of the previous one.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	fixCmd.Flags().String("diagnostics", "", "compiler output listing ('-' for stdin; default from tsmend.toml)")
}

func runFix(cmd *cobra.Command, args []string) error {
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

	// Порядок семейств фиксированный: сначала снимаем утверждения, потом
	// чиним импорты, и только затем сужаем unknown по диагностикам.
	blind := rules.NewSet(append(
		rules.NewAssertionRules(manifest.AssertionParams()),
		rules.NewImportRule(manifest.ImportParams()),
	)...)

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := parseTermMode("ui", uiFlag)
	if err != nil {
		return err
	}

	var blindResults []engine.FileResult
	if mode.enabled(os.Stdout) {
		blindResults, err = runWithUI("tsmend fix", targets, func(sink pipeline.ProgressSink) ([]engine.FileResult, error) {
			eng.Sink = sink
			return eng.RunBlind(cmd.Context(), targets, blind)
		})
		eng.Sink = nil
	} else {
		blindResults, err = eng.RunBlind(cmd.Context(), targets, blind)
	}
	if err != nil {
		return err
	}
	emitter.ObserveAll(blindResults)

	diagPath, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return err
	}
	var provider diag.Provider
	switch diagPath {
	case "-":
		provider = diag.ReaderProvider{R: cmd.InOrStdin()}
	case "":
		provider = diag.FileProvider{Path: manifest.Config.Diagnostics.Path}
	default:
		provider = diag.FileProvider{Path: diagPath}
	}
	records, err := provider.Records()
	if err != nil {
		return err
	}
	groups := restrictGroups(diag.GroupByFile(records), args)

	narrowResults, err := eng.RunDiagnostics(cmd.Context(), groups, rules.NewClassifier(manifest.NarrowParams()))
	if err != nil {
		return err
	}
	emitter.ObserveAll(narrowResults)

	emitter.Summarize()
	return nil
}
