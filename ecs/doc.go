// Package ecs provides ECS adapters for ambient's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges engine lifecycle
// events (initialized, started, stopped, degraded, resized, disposed) into a
// [Donburi] world as typed events. Subscribe to [LifecycleEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine := ambient.NewEngine(cfg, ambient.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
