package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tusktsk/internal/factory"
	"tusktsk/internal/ui"
)

// runValidateWithUI validates the batch while a Bubble Tea progress view
// consumes status events. The results are returned after the view exits.
func runValidateWithUI(ctx context.Context, title string, f *factory.Factory, paths []string) ([]factory.FileResult, error) {
	events := make(chan ui.Event, 256)
	resultsCh := make(chan []factory.FileResult, 1)

	go func() {
		results := f.ParseFilesProgress(ctx, paths, func(path string, state factory.ProgressState) {
			status := ui.StatusParsing
			switch state {
			case factory.ProgressSucceeded:
				status = ui.StatusDone
			case factory.ProgressFailed:
				status = ui.StatusError
			}
			events <- ui.Event{Path: path, Status: status}
		})
		resultsCh <- results
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	results := <-resultsCh
	return results, uiErr
}
