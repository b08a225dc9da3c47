package ambient

// EventSink is the interface for optional lifecycle observers (e.g. an ECS
// bridge). EmitEvent is called while the engine holds its lock: it must not
// call back into the engine.
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}

// EventType identifies a lifecycle transition.
type EventType uint8

const (
	EventInitialized EventType = iota // Init completed
	EventStarted                      // Idle -> Running
	EventStopped                      // Running or Idle -> Stopped
	EventDegraded                     // the surface was lost; the engine stopped itself
	EventResized                      // bounds changed
	EventDisposed                     // Dispose completed
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventInitialized:
		return "initialized"
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventDegraded:
		return "degraded"
	case EventResized:
		return "resized"
	case EventDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// LifecycleEvent carries a transition and a snapshot of the engine at that
// moment.
type LifecycleEvent struct {
	Type   EventType
	State  FrameState
	Tier   Tier
	Width  float64
	Height float64
	Alive  int
	Static bool
	Err    error // set for EventDegraded
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(LifecycleEvent)

// EmitEvent calls f.
func (f EventSinkFunc) EmitEvent(event LifecycleEvent) { f(event) }
