// Package display hosts a reel engine in an Ebitengine window: it polls
// pointer input, lays out the preview strip, the expanded list and the
// viewer as engine surfaces, and draws them with flat colored rectangles.
package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/reel"
)

// Layout constants in screen pixels.
const (
	stripHeight = 110
	iconSize    = 80
	iconGap     = 12
	iconTop     = 12
	listTop     = 40
	listRow     = 22
	listGap     = 2
	listIndent  = 24
)

var (
	colorBackground = color.RGBA{0x1c, 0x1a, 0x24, 0xff}
	colorStrip      = color.RGBA{0x26, 0x23, 0x31, 0xff}
	colorCategory   = color.RGBA{0x6a, 0x4c, 0x93, 0xff}
	colorStory      = color.RGBA{0x3a, 0x86, 0xa8, 0xff}
	colorCursor     = color.RGBA{0xf2, 0xc1, 0x4e, 0xff}
	colorViewer     = color.RGBA{0x0e, 0x0d, 0x12, 0xff}
	colorDetail     = color.RGBA{0x30, 0x2d, 0x3b, 0xff}
)

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ScreenshotDir receives PNGs captured with the P key. Defaults to
	// "screenshots".
	ScreenshotDir string
	// Logger defaults to the logrus standard logger.
	Logger *logrus.Logger
}

// Run opens a window and drives e until the window closes. The engine is
// closed on return.
func Run(e *reel.Engine, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 480, 800
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	e.SetInput(&EbitenInput{})
	defer e.Close()
	g := NewGame(e, cfg.Width, cfg.Height)
	if cfg.ScreenshotDir != "" {
		g.screenshotDir = cfg.ScreenshotDir
	}
	if cfg.Logger != nil {
		g.log = cfg.Logger.WithField("session", e.SessionID().String())
	}
	return ebiten.RunGame(g)
}

// Game implements ebiten.Game for a reel engine.
type Game struct {
	engine *reel.Engine
	width  int
	height int
	strip  *reel.Viewport
	clock  func() time.Time

	laidOut    bool
	generation uint64
	showFPS    bool

	screenshotDir   string
	screenshotQueue []string
	log             *logrus.Entry
}

// NewGame creates a game of the given logical size.
func NewGame(e *reel.Engine, width, height int) *Game {
	return &Game{
		engine: e,
		width:  width,
		height: height,
		strip:  &reel.Viewport{Bounds: reel.HitRect{Width: float64(width), Height: stripHeight}},
		clock:  time.Now,

		screenshotDir: "screenshots",
		log:           logrus.WithField("session", e.SessionID().String()),
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if !g.laidOut || g.generation != g.engine.Generation() {
		g.relayout()
	}
	g.handleKeys()
	g.engine.Update(g.clock())
	return nil
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// relayout registers one surface per addressable element. Registration order
// is bottom to top.
func (g *Game) relayout() {
	e := g.engine
	e.ClearSurfaces()
	n := e.Index().Len()

	g.strip.ContentWidth = float64(iconGap + n*(iconSize+iconGap))
	g.strip.ScrollBy(0)
	e.AddSurface(&reel.Surface{
		ID:       "strip",
		Region:   reel.RegionStrip,
		Bounds:   reel.HitRect{Width: max(g.strip.ContentWidth, float64(g.width)), Height: stripHeight},
		Entry:    reel.CursorEmpty,
		Viewport: g.strip,
	})
	for i := 0; i < n; i++ {
		e.AddSurface(&reel.Surface{
			ID:       fmt.Sprintf("strip/%d", i),
			Region:   reel.RegionStrip,
			Bounds:   iconRect(i),
			Entry:    i,
			Viewport: g.strip,
		})
	}

	for i := 0; i < n; i++ {
		e.AddSurface(&reel.Surface{
			ID:     fmt.Sprintf("list/%d", i),
			Region: reel.RegionList,
			Bounds: g.listRect(i),
			Entry:  i,
		})
	}

	e.AddSurface(&reel.Surface{
		ID:     "viewer",
		Region: reel.RegionViewer,
		Bounds: reel.HitRect{Width: float64(g.width), Height: float64(g.height)},
		Entry:  reel.CursorEmpty,
	})

	g.laidOut = true
	g.generation = e.Generation()
}

func iconRect(i int) reel.HitRect {
	return reel.HitRect{
		X:      float64(iconGap + i*(iconSize+iconGap)),
		Y:      iconTop,
		Width:  iconSize,
		Height: iconSize,
	}
}

func (g *Game) listRect(i int) reel.HitRect {
	x := float64(listIndent)
	if entry, ok := g.engine.Index().EntryAt(i); ok && entry.Kind == reel.EntryStory {
		x += listIndent
	}
	return reel.HitRect{
		X:      x,
		Y:      float64(stripHeight + listTop + i*(listRow+listGap)),
		Width:  float64(g.width) - x - listIndent,
		Height: listRow,
	}
}

// handleKeys maps keyboard shortcuts to host actions.
func (g *Game) handleKeys() {
	e := g.engine
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		e.Interact()
		if e.Viewer().ListMode() == reel.ListExpanded {
			e.CollapseList()
		} else {
			e.ExpandList()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		switch {
		case e.Viewer().DetailOpen():
			e.CloseDetail()
		case e.Viewer().IsOpen():
			e.CloseViewer()
		default:
			e.CollapseList()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		if !e.OpenDetail() {
			e.CloseDetail()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		e.StepViewer(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		e.StepViewer(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		label := "strip"
		if entry, ok := e.Index().EntryAt(e.ViewerCursor()); ok && e.Viewer().IsOpen() {
			label = entry.Key().String()
		}
		g.Screenshot(label)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.showFPS = !g.showFPS
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.drawStrip(screen)
	if g.engine.Viewer().ListMode() == reel.ListExpanded {
		g.drawList(screen)
	}
	if alpha := g.engine.ViewerAlpha(); alpha > 0 {
		g.drawViewer(screen, alpha)
	}
	ebitenutil.DebugPrintAt(screen, "L: list  D: details  Esc: close  arrows: step  P: screenshot", 8, g.height-16)
	if g.showFPS {
		g.drawFPS(screen)
	}
	g.flushScreenshots(screen)
}

func (g *Game) drawFPS(screen *ebiten.Image) {
	x := float64(g.width - 124)
	fillRect(screen, x, 4, 120, 48, color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrintAt(screen, statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), g.engine.Claim()), int(x)+2, 4)
}

// statsText formats the overlay shown with the F key. The claim line shows
// whether the gesture in progress is owned by the engine or left to
// scrolling.
func statsText(fps, tps float64, claim reel.Claim) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nClaim: %s", fps, tps, claim)
}

func (g *Game) drawStrip(screen *ebiten.Image) {
	fillRect(screen, 0, 0, float64(g.width), stripHeight, colorStrip)
	ix := g.engine.Index()
	cursor := g.engine.PreviewCursor()
	for i := 0; i < ix.Len(); i++ {
		r := iconRect(i)
		x := g.strip.Bounds.X + r.X - g.strip.ScrollX
		if x+r.Width < 0 || x > float64(g.width) {
			continue
		}
		entry, _ := ix.EntryAt(i)
		if i == cursor {
			fillRect(screen, x-3, r.Y-3, r.Width+6, r.Height+6, colorCursor)
		}
		fillRect(screen, x, r.Y, r.Width, r.Height, entryColor(entry))
		ebitenutil.DebugPrintAt(screen, truncate(entry.Name(), 12), int(x)+2, int(r.Y+r.Height)-14)
	}
}

func (g *Game) drawList(screen *ebiten.Image) {
	fillRect(screen, 0, stripHeight, float64(g.width), float64(g.height-stripHeight), colorBackground)
	ix := g.engine.Index()
	for i := 0; i < ix.Len(); i++ {
		r := g.listRect(i)
		entry, _ := ix.EntryAt(i)
		fillRect(screen, r.X, r.Y, r.Width, r.Height, entryColor(entry))
		ebitenutil.DebugPrintAt(screen, entry.Name(), int(r.X)+4, int(r.Y)+3)
	}
}

func (g *Game) drawViewer(screen *ebiten.Image, alpha float64) {
	fillRect(screen, 0, 0, float64(g.width), float64(g.height), scaleAlpha(colorViewer, alpha))

	entry, ok := g.engine.Index().EntryAt(g.engine.ViewerCursor())
	if !ok {
		return
	}
	fillRect(screen, 24, 80, float64(g.width-48), float64(g.height-200), scaleAlpha(entryColor(entry), alpha))
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  (%s)", entry.Name(), entry.Category.Name), 24, 40)
	if img := g.engine.ImageFor(entry); img != "" {
		ebitenutil.DebugPrintAt(screen, truncate(img, 60), 32, 88)
	}
	if entry.Description() != "" && !g.engine.Viewer().DetailOpen() {
		ebitenutil.DebugPrintAt(screen, "swipe up: read more", 24, g.height-100)
	}
	if g.engine.Viewer().DetailOpen() {
		fillRect(screen, 0, float64(g.height/2), float64(g.width), float64(g.height/2), colorDetail)
		ebitenutil.DebugPrintAt(screen, entry.Description(), 16, g.height/2+16)
	}
}

func entryColor(e reel.Entry) color.RGBA {
	if e.Kind == reel.EntryCategory {
		return colorCategory
	}
	return colorStory
}

// scaleAlpha returns c faded by alpha. RGBA is premultiplied, so every
// channel is scaled.
func scaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// whitePixel is a 1x1 white image scaled and tinted to draw solid rectangles.
var whitePixel *ebiten.Image

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(whitePixel, &op)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
