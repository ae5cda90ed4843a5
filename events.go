package reel

import "slices"

// EventStore is the interface for optional ECS integration. When set on an
// Engine, every emitted event is forwarded to it.
type EventStore interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside a callback, including the one being removed.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			// Copy on write: an emit in progress keeps ranging over the old slice.
			h.reg.byType[h.event] = slices.Delete(slices.Clone(s), i, i+1)
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

// live reports whether handler id is still registered for t. A callback may
// remove a later one during dispatch.
func (r *handlerRegistry) live(t EventType, id uint32) bool {
	return slices.ContainsFunc(r.byType[t], func(h eventHandler) bool { return h.id == id })
}

// OnStorySelected registers a callback fired when the viewer opens an entry or
// navigates to another one.
func (e *Engine) OnStorySelected(fn func(Event)) CallbackHandle {
	return e.handlers.add(EventStorySelected, fn)
}

// OnViewerClosed registers a callback fired when the viewer closes.
func (e *Engine) OnViewerClosed(fn func(Event)) CallbackHandle {
	return e.handlers.add(EventViewerClosed, fn)
}

// OnCursorChanged registers a callback fired when the preview cursor moves.
func (e *Engine) OnCursorChanged(fn func(Event)) CallbackHandle {
	return e.handlers.add(EventCursorChanged, fn)
}

// OnGesture registers a callback fired for every classified gesture.
func (e *Engine) OnGesture(fn func(Event)) CallbackHandle {
	return e.handlers.add(EventGesture, fn)
}

// SetEventStore sets the optional ECS bridge.
func (e *Engine) SetEventStore(store EventStore) {
	e.store = store
}

func (e *Engine) emit(ev Event) {
	for _, h := range e.handlers.byType[ev.Type] {
		if !e.handlers.live(ev.Type, h.id) {
			continue
		}
		h.fn(ev)
	}
	if e.store != nil {
		e.store.EmitEvent(ev)
	}
}
