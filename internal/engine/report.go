package engine

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"tsmend/internal/source"
)

// Report aggregates fix counts across all edit sessions of a run.
// Read-only after emission.
type Report struct {
	TotalFixes   int
	FilesChanged int
	FilesFailed  int
}

// Emitter prints per-file status lines and the final summary.
// У эмиттера нет состояния за пределами одного запуска.
type Emitter struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
	// PathMode controls how file paths are rendered (see source.FormatPath);
	// empty prints them as reported.
	PathMode string
	// BaseDir is the base for PathMode "relative".
	BaseDir string

	report Report
}

func (e *Emitter) display(path string) string {
	if e.PathMode == "" {
		return path
	}
	return source.FormatPath(path, e.PathMode, e.BaseDir)
}

// Цвет резолвится в момент печати, чтобы --color успел повлиять.
var (
	okColor      = color.New(color.FgGreen)
	summaryColor = color.New(color.FgCyan)
)

// Observe accounts one file result and prints its status line.
func (e *Emitter) Observe(res FileResult) {
	if res.Err != nil {
		e.report.FilesFailed++
		fmt.Fprintf(e.Err, "Error processing %s: %v\n", e.display(res.Path), res.Err)
		return
	}
	if !res.Changed {
		return // silently skip files with no changes
	}
	e.report.TotalFixes += res.Fixes
	e.report.FilesChanged++
	if !e.Quiet {
		fmt.Fprintf(e.Out, "%s %s: fixed %d fix(es)\n", okColor.Sprint("✅"), e.display(res.Path), res.Fixes)
	}
}

// ObserveAll accounts a batch of results in order.
func (e *Emitter) ObserveAll(results []FileResult) {
	for _, res := range results {
		e.Observe(res)
	}
}

// Summarize prints the final summary line and returns the report.
func (e *Emitter) Summarize() Report {
	fmt.Fprintf(e.Out, "\n%s Summary: fixed %d fixes in %d files\n",
		summaryColor.Sprint("📊"), e.report.TotalFixes, e.report.FilesChanged)
	return e.report
}
