package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fixit/internal/driver"
	"fixit/internal/ui"
)

// runWithUI lints files while a Bubble Tea progress view follows the
// driver events. Results are collected in completion order.
func runWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	done := make(chan []driver.Result, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		var results []driver.Result
		for r := range driver.LintFiles(ctx, files, opts) {
			results = append(results, r)
		}
		close(events)
		done <- results
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после выхода из UI (в т.ч. по Ctrl-C) события никто не читает
	go func() {
		for range events {
		}
	}()
	results := <-done
	return results, uiErr
}
