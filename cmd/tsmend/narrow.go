package main

import (
	"github.com/spf13/cobra"

	"tsmend/internal/diag"
	"tsmend/internal/rules"
)

var narrowCmd = &cobra.Command{
	Use:   "narrow [files...]",
	Short: "Narrow 'unknown' values named by compiler diagnostics",
	Long: `Read TS18046 diagnostics from the compiler output listing and rewrite
each named line: conventional error bindings get an Error cast, bare callback
parameters get an any annotation, everything else gets an any cast.

With file arguments only diagnostics for those files are applied.`,
	RunE: runNarrow,
}

func init() {
	narrowCmd.Flags().String("diagnostics", "", "compiler output listing ('-' for stdin; default from tsmend.toml)")
}

func runNarrow(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	manifest, err := resolveManifest(cmd)
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

	classifier := rules.NewClassifier(manifest.NarrowParams())
	results, err := eng.RunDiagnostics(cmd.Context(), groups, classifier)
	if err != nil {
		return err
	}

	emitter.ObserveAll(results)
	emitter.Summarize()
	return nil
}
