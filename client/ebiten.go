// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build ebiten

package client

import (
	"errors"
	"github.com/SoftbearStudios/tileworld/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"image"
	"image/png"
	"log"
	"os"
)

// ScreenshotPath is where F2 saves the screen.
const ScreenshotPath = "SCREENSHOT.png"

// EbitenGame adapts a Game to ebiten.Game.
type EbitenGame struct {
	game     *Game
	renderer *ebitenRenderer
	input    *ebitenInput

	// Called after every frame, for example to publish debug status.
	OnFrame func(game *Game)
}

func NewEbitenGame(game *Game) *EbitenGame {
	return &EbitenGame{
		game:     game,
		renderer: &ebitenRenderer{images: make(map[*image.RGBA]*ebiten.Image)},
		input:    &ebitenInput{},
	}
}

func (g *EbitenGame) Update() error {
	if err := g.game.Step(g.input); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	if g.OnFrame != nil {
		g.OnFrame(g.game)
	}
	return nil
}

func (g *EbitenGame) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.renderer.begin(screen)
	g.game.Draw(g.renderer)
	g.renderer.end()

	if g.game.TakeScreenshotRequest() {
		if err := saveScreenshot(screen, ScreenshotPath); err != nil {
			log.Println("could not save screenshot:", err)
		} else {
			log.Println("saved", ScreenshotPath)
		}
	}
}

func (g *EbitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.game.Camera().Resize(float32(outsideWidth), float32(outsideHeight))
	return outsideWidth, outsideHeight
}

func saveScreenshot(screen *ebiten.Image, path string) error {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ebitenRenderer uploads each chunk cache once and disposes it when it stops being drawn.
type ebitenRenderer struct {
	screen *ebiten.Image
	images map[*image.RGBA]*ebiten.Image
	used   map[*image.RGBA]struct{}
}

func (r *ebitenRenderer) begin(screen *ebiten.Image) {
	r.screen = screen
	r.used = make(map[*image.RGBA]struct{}, len(r.images))
}

func (r *ebitenRenderer) end() {
	for pixels, img := range r.images {
		if _, ok := r.used[pixels]; !ok {
			img.Dispose()
			delete(r.images, pixels)
		}
	}
	r.screen = nil
}

func (r *ebitenRenderer) RectIntersectsViewport(rect world.AABB) bool {
	b := r.screen.Bounds()
	return rect.Overlaps(world.AABBFrom(0, 0, float32(b.Dx()), float32(b.Dy())))
}

func (r *ebitenRenderer) DrawPixelBlock(pixels *image.RGBA, screenPos world.Vec2f, screenSize world.Vec2f) {
	img, ok := r.images[pixels]
	if !ok {
		img = ebiten.NewImageFromImage(pixels)
		r.images[pixels] = img
	}
	r.used[pixels] = struct{}{}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screenPos.X), float64(screenPos.Y))
	r.screen.DrawImage(img, op)
}

func (r *ebitenRenderer) ScaleCache(pixels *image.RGBA, width, height int) *image.RGBA {
	return ScaleNearest(pixels, width, height)
}

func (r *ebitenRenderer) DrawOutline(rect world.AABB) {
	vector.StrokeRect(r.screen, rect.X, rect.Y, rect.Width, rect.Height, 1, outlineColor, false)
}

// ebitenInput turns ebiten's polled state into events.
type ebitenInput struct {
	cursor  world.Vec2f
	focused bool
}

var keys = map[ebiten.Key]Key{
	ebiten.KeyEscape: KeyEscape,
	ebiten.KeySpace:  KeySpace,
	ebiten.KeyF2:     KeyF2,
	ebiten.KeyO:      KeyO,
}

func (input *ebitenInput) Events() (events []Event) {
	for ebitenKey, key := range keys {
		if inpututil.IsKeyJustPressed(ebitenKey) {
			events = append(events, Event{Kind: KeyPress, Key: key})
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		events = append(events, Event{Kind: MouseWheel, WheelY: float32(dy)})
	}

	x, y := ebiten.CursorPosition()
	if cursor := (world.Vec2f{X: float32(x), Y: float32(y)}); cursor != input.cursor {
		input.cursor = cursor
		events = append(events, Event{Kind: MouseMoved, Position: cursor})
	}

	if focused := ebiten.IsFocused(); focused != input.focused {
		input.focused = focused
		events = append(events, Event{Kind: MouseFocusChanged, Focused: focused})
	}

	return
}

func (input *ebitenInput) CursorPosition() world.Vec2f {
	return input.cursor
}
