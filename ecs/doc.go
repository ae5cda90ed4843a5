// Package ecs provides ECS adapters for reel's engine events.
//
// The primary adapter is [NewDonburiStore], which publishes engine events
// (story selected, viewer closed, cursor changed, gesture) into a [Donburi]
// world as typed events. Subscribe to [EngineEventType] in your ECS systems
// to receive them, and use [SelectionSystem] to keep a component in sync
// with the current selection.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
