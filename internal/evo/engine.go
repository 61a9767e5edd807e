package evo

import (
	"context"
	"fmt"
	"math/rand"

	"nqueens/internal/model"
)

// State is the scheduler's lifecycle phase.
type State string

const (
	StateIdle        State = "idle"
	StateInitialized State = "initialized"
	StateRunning     State = "running"
	StatePaused      State = "paused"
	StateTerminated  State = "terminated"
)

// CommandType names an inbound control message.
type CommandType string

const (
	CommandInit  CommandType = "init"
	CommandStart CommandType = "start"
	CommandPause CommandType = "pause"
	CommandReset CommandType = "reset"
)

// Command is one control-protocol message. Params is optional and only
// read by init and reset; when nil the previously held parameters apply.
type Command struct {
	Type   CommandType
	Params *model.Parameters
}

// EventType names an outbound event.
type EventType string

const (
	EventStats    EventType = "stats"
	EventSolution EventType = "solution"
	EventError    EventType = "error"
)

// Event is one engine-to-caller message. Exactly one payload field is set,
// matching Type.
type Event struct {
	Type  EventType
	Stats *model.GenerationStats
	Best  *model.Individual
	Err   string
}

// EngineConfig configures one engine session.
type EngineConfig struct {
	// Params seeds the active parameters; the zero value means defaults.
	// Programmatic configurations are taken as given (see NewMonitor);
	// parameters arriving later through the protocol are always clamped.
	Params model.Parameters
	Seed   int64
	// CommandBuffer and EventBuffer size the protocol channels; zero
	// picks sensible defaults.
	CommandBuffer int
	EventBuffer   int
}

// Engine is one search session: it owns the population, generation
// counter, best-ever individual, and active parameters exclusively, and
// exchanges only messages with its caller. All engine state is touched by
// the single goroutine executing Run; commands are applied atomically at
// generation boundaries and a generation step, once begun, is never
// interrupted.
type Engine struct {
	monitor  *Monitor
	params   model.Parameters
	state    State
	commands chan Command
	events   chan Event
}

// NewEngine builds an idle engine. Every random decision of the run draws
// from a source seeded with cfg.Seed, so equal seeds give equal runs.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	params := cfg.Params
	if params == (model.Parameters{}) {
		params = DefaultParameters()
	}
	monitor, err := NewMonitor(params, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	commandBuffer := cfg.CommandBuffer
	if commandBuffer <= 0 {
		commandBuffer = 16
	}
	eventBuffer := cfg.EventBuffer
	if eventBuffer <= 0 {
		eventBuffer = 64
	}
	return &Engine{
		monitor:  monitor,
		params:   params,
		state:    StateIdle,
		commands: make(chan Command, commandBuffer),
		events:   make(chan Event, eventBuffer),
	}, nil
}

// Commands is the caller-to-engine channel.
func (e *Engine) Commands() chan<- Command {
	return e.commands
}

// Events is the engine-to-caller channel.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Run executes the message loop until ctx is cancelled. While running, one
// generation is advanced per loop pass and the command channel is polled
// between generations; that poll is the only point where a pending pause
// or reset can interrupt a run.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if e.state == StateRunning {
			select {
			case cmd := <-e.commands:
				e.handle(ctx, cmd)
				continue
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			e.step(ctx)
			continue
		}
		select {
		case cmd := <-e.commands:
			e.handle(ctx, cmd)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (e *Engine) handle(ctx context.Context, cmd Command) {
	switch cmd.Type {
	case CommandInit, CommandReset:
		e.initialize(ctx, cmd.Params)
	case CommandStart:
		if e.state == StateRunning {
			return
		}
		if !e.monitor.Initialized() {
			e.initialize(ctx, nil)
		}
		e.state = StateRunning
	case CommandPause:
		if e.state == StateRunning {
			e.state = StatePaused
		}
	default:
		e.emit(ctx, Event{Type: EventError, Err: fmt.Sprintf("unknown command type: %q", cmd.Type)})
		// Safety default: an engine that just received garbage stops
		// advancing.
		if e.state == StateRunning {
			e.state = StatePaused
		}
	}
}

// initialize applies init/reset: clamp any requested parameters, rebuild
// the population, and emit generation-zero statistics. Reset with no
// payload reuses the previously held parameters unchanged.
func (e *Engine) initialize(ctx context.Context, requested *model.Parameters) {
	params := e.params
	if requested != nil {
		params = ClampParameters(*requested)
	}
	e.params = params
	stats, err := e.monitor.Reset(e.params)
	if err != nil {
		// Unreachable after clamping; reported rather than dropped.
		e.emit(ctx, Event{Type: EventError, Err: err.Error()})
		return
	}
	e.emit(ctx, Event{Type: EventStats, Stats: &stats})
	e.state = StateInitialized
}

func (e *Engine) step(ctx context.Context) {
	stats := e.monitor.Step()
	e.emit(ctx, Event{Type: EventStats, Stats: &stats})
	if !e.monitor.Done() {
		return
	}
	e.state = StateTerminated
	if best, ok := e.monitor.Best(); ok {
		e.emit(ctx, Event{Type: EventSolution, Best: &best})
	}
}

func (e *Engine) emit(ctx context.Context, event Event) {
	select {
	case e.events <- event:
	case <-ctx.Done():
	}
}
