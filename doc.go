// Package reel is a Stories-style carousel interaction engine: category icons
// lead to partner stories shown one at a time in a full-screen viewer.
//
// The engine is headless. It consumes raw pointer frames (mouse button and
// touch contacts), classifies them into taps, swipes and pinches, and keeps
// the preview strip, the expanded list and the viewer consistent with a
// flattened index of the source data. Rendering is left to the host; the
// reel/display package provides an Ebitengine host.
//
// # Quick start
//
//	cat, err := reel.LoadCatalog("stories.yaml")
//	if err != nil { ... }
//	e := reel.NewEngine(reel.DefaultConfig())
//	e.SetSource(cat.Categories)
//	e.OnStorySelected(func(ev reel.Event) {
//		fmt.Println("selected", ev.Key)
//	})
//
// Then, once per frame:
//
//	e.Update(time.Now())
//
// # Data flow
//
// Input flows Normalizer -> Classifier -> index or viewer mutation. Display
// flows from the Index to the preview strip and the viewer. The surrounding
// application supplies source snapshots through [Engine.SetSource] or, from
// another goroutine, [Engine.QueueSource], and listens for events.
//
// # Surfaces
//
// Addressable elements are registered as [Surface] values with a [Region]
// that fixes how gestures on them are read: the preview strip delegates
// horizontal motion to scrolling, the viewer claims horizontal swipes and
// pinch-to-dismiss, and the expanded list only takes taps.
//
// # Timing
//
// Every time-dependent operation takes the frame time explicitly, so a
// session can be replayed deterministically with [Engine.InjectTap],
// [Engine.InjectSwipe], [Engine.InjectPinch] or a scripted [TestRunner].
package reel
