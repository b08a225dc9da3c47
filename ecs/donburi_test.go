package ecs

import (
	"errors"
	"testing"
	"time"

	"github.com/williamjxj/ambient"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type fakeSurface struct{ w, h int }

func (s fakeSurface) Size() (int, int)                                    { return s.w, s.h }
func (s fakeSurface) Clear(ambient.Color) error                           { return nil }
func (s fakeSurface) FillCircle(float64, float64, float64, ambient.Color) {}

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []ambient.LifecycleEvent
	LifecycleEventType.Subscribe(world, func(w donburi.World, e ambient.LifecycleEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(ambient.LifecycleEvent{Type: ambient.EventStarted, State: ambient.StateRunning, Alive: 3})
	sink.EmitEvent(ambient.LifecycleEvent{Type: ambient.EventResized, Width: 640, Height: 480})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	LifecycleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Type != ambient.EventStarted || e0.State != ambient.StateRunning || e0.Alive != 3 {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != ambient.EventResized || e1.Width != 640 || e1.Height != 480 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_EngineLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	var types []ambient.EventType
	LifecycleEventType.Subscribe(world, func(w donburi.World, e ambient.LifecycleEvent) {
		types = append(types, e.Type)
	})

	clock := ambient.NewManualClock()
	e := ambient.NewEngine(ambient.DefaultConfig(),
		ambient.WithClock(clock),
		ambient.WithSeed(1),
		ambient.WithEventSink(NewDonburiSink(world)))

	if err := e.Init(fakeSurface{200, 100}, ambient.Signals{Tier: ambient.TierHigh}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Run(10, 16*time.Millisecond)
	e.Resize(300, 150)
	e.Stop()
	e.Dispose()

	events.ProcessAllEvents(world)

	want := []ambient.EventType{
		ambient.EventInitialized,
		ambient.EventStarted,
		ambient.EventResized,
		ambient.EventStopped,
		ambient.EventDisposed,
	}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink ambient.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

// lostSurface fails every Clear, like a surface whose host was torn down.
type lostSurface struct{ fakeSurface }

func (lostSurface) Clear(ambient.Color) error { return errors.New("context lost") }

func TestOnDegraded(t *testing.T) {
	world := donburi.NewWorld()

	var errs []error
	OnDegraded(world, func(w donburi.World, err error) {
		errs = append(errs, err)
	})

	clock := ambient.NewManualClock()
	e := ambient.NewEngine(ambient.DefaultConfig(),
		ambient.WithClock(clock),
		ambient.WithEventSink(NewDonburiSink(world)))
	if err := e.Init(lostSurface{fakeSurface{100, 100}}, ambient.Signals{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Step(16 * time.Millisecond)

	// Handlers run outside the engine lock, so they may call back into it.
	var status ambient.Status
	OnDegraded(world, func(donburi.World, error) { status = e.Status() })
	LifecycleEventType.ProcessEvents(world)

	if len(errs) != 1 {
		t.Fatalf("degraded callbacks = %d, want 1", len(errs))
	}
	if !errors.Is(errs[0], ambient.ErrSurfaceUnavailable) {
		t.Errorf("err = %v, want ErrSurfaceUnavailable", errs[0])
	}
	if !status.Degraded || status.State != ambient.StateStopped {
		t.Errorf("status seen by handler = %+v, want degraded and stopped", status)
	}
}
