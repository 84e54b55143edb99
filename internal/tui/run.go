// Package tui is the interactive collaborator over the engine's progress
// observer: a live progress view while the pool runs, then a results
// browser. It consumes only observer updates and the final result; it never
// reaches into the engine's internals.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leakscope/leakscope/internal/engine"
	"github.com/leakscope/leakscope/internal/types"
)

// Run executes scan while displaying live progress, then leaves the user in
// the results browser until they quit. The scan's observer updates are
// marshaled onto the bubbletea loop through a channel; slow frames drop
// updates rather than stalling workers. Quit keys pressed mid-scan invoke
// cancel and the view stays up to show the partial result.
func Run(total int, cancel func(), scan func(engine.Observer) (engine.Result, error)) (engine.Result, error) {
	updates := make(chan tea.Msg, 64)
	done := make(chan tea.Msg, 1)

	go func() {
		res, err := scan(func(path string, stats types.Stats) {
			select {
			case updates <- progressMsg{path: path, stats: stats}:
			default: // rendering is advisory, never backpressure the pool
			}
		})
		// capacity 1: the send completes even if the program already
		// exited, so the scan goroutine never leaks
		done <- doneMsg{res: res, err: err}
	}()

	final, err := tea.NewProgram(NewModel(total, updates, done, cancel), tea.WithAltScreen()).Run()
	if err != nil {
		return engine.Result{}, fmt.Errorf("error running TUI: %w", err)
	}
	m := final.(Model)
	if m.err != nil {
		return engine.Result{}, m.err
	}
	return m.res, nil
}
