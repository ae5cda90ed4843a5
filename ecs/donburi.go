package ecs

import (
	"github.com/phanxgames/reel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for reel engine events.
var EngineEventType = events.NewEventType[reel.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events are
// published to EngineEventType and consumed with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) reel.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event reel.Event) {
	EngineEventType.Publish(s.world, event)
}

// SelectionData mirrors the entry currently shown by the viewer.
type SelectionData struct {
	Key    reel.EntryKey
	Cursor int
	Open   bool
}

// Selection is the component holding SelectionData.
var Selection = donburi.NewComponentType[SelectionData]()

// SelectionSystem keeps a single Selection entity in sync with engine
// events.
type SelectionSystem struct {
	entity donburi.Entity
}

// NewSelectionSystem creates the Selection entity in world and subscribes it
// to EngineEventType.
func NewSelectionSystem(world donburi.World) *SelectionSystem {
	sys := &SelectionSystem{entity: world.Create(Selection)}
	Selection.SetValue(world.Entry(sys.entity), SelectionData{Cursor: reel.CursorEmpty})
	EngineEventType.Subscribe(world, sys.onEvent)
	return sys
}

// Entity returns the Selection entity.
func (sys *SelectionSystem) Entity() donburi.Entity {
	return sys.entity
}

func (sys *SelectionSystem) onEvent(w donburi.World, ev reel.Event) {
	entry := w.Entry(sys.entity)
	sel := Selection.Get(entry)
	switch ev.Type {
	case reel.EventStorySelected:
		sel.Key = ev.Key
		sel.Cursor = ev.Cursor
		sel.Open = true
	case reel.EventViewerClosed:
		sel.Open = false
	}
}
