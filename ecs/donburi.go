// Package ecs provides ECS adapters for ambient.
package ecs

import (
	"github.com/williamjxj/ambient"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType carries engine transitions into a Donburi world. Every
// event snapshots the engine at the transition: its frame state, resolved
// tier, surface bounds and live particle count. A lost surface arrives as
// EventDegraded with Err set, immediately followed by EventStopped.
var LifecycleEventType = events.NewEventType[ambient.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an ambient.EventSink that queues engine lifecycle
// events on LifecycleEventType. The engine emits while holding its lock, so
// handlers only run when the world calls ProcessEvents and are free to call
// back into the engine (for example to read its Status).
func NewDonburiSink(world donburi.World) ambient.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event ambient.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}

// OnDegraded subscribes fn to engines that lost their surface. fn receives
// the error behind the degradation, which wraps ambient.ErrSurfaceUnavailable.
func OnDegraded(world donburi.World, fn func(w donburi.World, err error)) {
	LifecycleEventType.Subscribe(world, func(w donburi.World, e ambient.LifecycleEvent) {
		if e.Type == ambient.EventDegraded {
			fn(w, e.Err)
		}
	})
}
