package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tsmend/internal/engine"
	"tsmend/internal/pipeline"
	"tsmend/internal/ui"
)

type fixOutcome struct {
	results []engine.FileResult
	err     error
}

// runWithUI drives a fix run under the Bubble Tea progress view. The run
// executes in a goroutine feeding events through a channel sink; closing the
// channel tells the model the run is over.
func runWithUI(title string, files []string, run func(sink pipeline.ProgressSink) ([]engine.FileResult, error)) ([]engine.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	go func() {
		results, err := run(pipeline.ChannelSink{Ch: events})
		outcomeCh <- fixOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
