package platform

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSupervisorRestartsPermanentTask(t *testing.T) {
	restarted := make(chan int, 8)
	sup := NewSupervisorWithHooks(SupervisorPolicy{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
	}, SupervisorHooks{
		OnTaskRestart: func(_ string, _ error, count int) {
			restarted <- count
		},
	})
	defer sup.StopAll()

	var attempts atomic.Int32
	err := sup.Start("worker", func(ctx context.Context) error {
		if attempts.Add(1) <= 2 {
			return errors.New("boom")
		}
		<-ctx.Done()
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for want := 1; want <= 2; want++ {
		select {
		case count := <-restarted:
			if count != want {
				t.Fatalf("restart count = %d, want %d", count, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for restart %d", want)
		}
	}
}

func TestSupervisorTemporaryTaskRunsOnce(t *testing.T) {
	sup := NewSupervisor(SupervisorPolicy{InitialBackoff: time.Millisecond})
	defer sup.StopAll()

	var attempts atomic.Int32
	finished := make(chan struct{})
	err := sup.StartSpec(SupervisorChildSpec{
		Name:    "once",
		Restart: SupervisorRestartTemporary,
	}, func(context.Context) error {
		attempts.Add(1)
		close(finished)
		return errors.New("boom")
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
	time.Sleep(20 * time.Millisecond)
	if got := attempts.Load(); got != 1 {
		t.Fatalf("temporary task ran %d times", got)
	}
}

func TestSupervisorTransientTaskStopsOnCleanExit(t *testing.T) {
	sup := NewSupervisor(SupervisorPolicy{InitialBackoff: time.Millisecond})
	defer sup.StopAll()

	var attempts atomic.Int32
	err := sup.StartSpec(SupervisorChildSpec{
		Name:    "clean",
		Restart: SupervisorRestartTransient,
	}, func(context.Context) error {
		attempts.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for len(sup.Tasks()) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("task never finished")
		}
		time.Sleep(time.Millisecond)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("transient task restarted after clean exit: %d runs", got)
	}
}

func TestSupervisorMaxRestartsMarksPermanentFailure(t *testing.T) {
	failed := make(chan struct{})
	sup := NewSupervisorWithHooks(SupervisorPolicy{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		MaxRestarts:    2,
	}, SupervisorHooks{
		OnTaskPermanentFailure: func(string, error, int) {
			close(failed)
		},
	})
	defer sup.StopAll()

	err := sup.Start("doomed", func(context.Context) error {
		return errors.New("boom")
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-failed:
	case <-time.After(2 * time.Second):
		t.Fatal("permanent failure hook never fired")
	}

	deadline := time.Now().Add(time.Second)
	for {
		children := sup.Children()
		if len(children) == 1 && children[0].PermanentFailed {
			if children[0].RestartCount != 2 {
				t.Fatalf("restart count = %d, want 2", children[0].RestartCount)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("failed child status never retained: %+v", children)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSupervisorStopCancelsTask(t *testing.T) {
	sup := NewSupervisor(SupervisorPolicy{})

	cancelled := make(chan struct{})
	err := sup.Start("long", func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	sup.Stop("long")
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("task context never cancelled")
	}
	if tasks := sup.Tasks(); len(tasks) != 0 {
		t.Fatalf("tasks still registered after stop: %v", tasks)
	}
}

func TestSupervisorRejectsDuplicateNames(t *testing.T) {
	sup := NewSupervisor(SupervisorPolicy{})
	defer sup.StopAll()

	block := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := sup.Start("worker", block); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := sup.Start("worker", block); err == nil {
		t.Fatal("expected an error for a duplicate task name")
	}
}
