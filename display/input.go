package display

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/reel"
)

// EbitenInput polls Ebitengine's mouse, touch and wheel state into raw frames.
// Screen coordinates are passed through unchanged.
type EbitenInput struct {
	touchIDs []ebiten.TouchID
	touches  []reel.Touch
}

// Poll samples the current input state. It must be called from the game's
// Update.
func (in *EbitenInput) Poll() reel.RawFrame {
	mx, my := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	in.touches = in.touches[:0]
	for _, id := range in.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.touches = append(in.touches, reel.Touch{ID: int(id), X: float64(tx), Y: float64(ty)})
	}

	return reel.RawFrame{
		MouseDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		MouseX:    float64(mx),
		MouseY:    float64(my),
		Touches:   in.touches,
		WheelX:    wx,
		WheelY:    wy,
	}
}
