package tui

import (
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

func TestQuitOnSignal_StopEndsListener(t *testing.T) {
	var quits atomic.Int32
	stop := quitOnSignal(func() { quits.Add(1) }, syscall.SIGUSR1)

	finished := make(chan struct{})
	go func() {
		stop()
		stop()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not return; signal listener still running")
	}
	if n := quits.Load(); n != 0 {
		t.Errorf("quit called %d times without a signal", n)
	}
}

func TestQuitOnSignal_QuitsOnSignal(t *testing.T) {
	quit := make(chan struct{}, 1)
	stop := quitOnSignal(func() { quit <- struct{}{} }, syscall.SIGUSR1)
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("quit was not called after the signal")
	}
}
