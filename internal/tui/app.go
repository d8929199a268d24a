// Package tui is the interactive terminal viewer for walkthroughs.
package tui

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/Iron-Ham/stepthrough/internal/logging"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	logger  *logging.Logger

	watchPath  string
	lessonOpts []lesson.Option
}

// New creates a new TUI application over wt.
func New(wt *walkthrough.Walkthrough, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &App{
		model:  NewModel(wt, opts),
		logger: logger,
	}
}

// Watch makes Run reload the lesson at path whenever it changes. Each reload
// restarts the walkthrough from the first step.
func (a *App) Watch(path string, opts ...lesson.Option) *App {
	a.watchPath = path
	a.lessonOpts = opts
	return a
}

// Run starts the TUI application and blocks until the user quits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Quit cleanly on SIGTERM/SIGHUP so the terminal is restored.
	stopSignals := quitOnSignal(a.program.Quit, syscall.SIGTERM, syscall.SIGHUP)
	defer stopSignals()

	if a.watchPath != "" {
		w, err := lesson.NewWatcher(a.watchPath, a.logger, func(r lesson.Reload) {
			a.program.Send(ReloadMsg(r))
		}, a.lessonOpts...)
		if err != nil {
			return fmt.Errorf("watching lesson: %w", err)
		}
		w.Start()
		defer w.Stop()
		a.logger.Info("watching lesson", "path", a.watchPath)
	}

	if _, err := a.program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// quitOnSignal calls quit when one of sigs arrives. The returned stop
// function unregisters the signals and waits for the listener to exit.
func quitOnSignal(quit func(), sigs ...os.Signal) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		select {
		case <-sigChan:
			quit()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
		})
		<-exited
	}
}
