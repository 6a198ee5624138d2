// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client runs the camera, input and chunk streaming of one viewer,
// independent of how frames reach the screen.
package client

import (
	"errors"
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/chunk"
	"github.com/SoftbearStudios/tileworld/terrain/humidity"
	"github.com/SoftbearStudios/tileworld/terrain/noise"
	"github.com/SoftbearStudios/tileworld/world"
)

// ErrQuit is returned by Game.Step when the viewer asks to quit.
var ErrQuit = errors.New("quit")

// SourceFunc creates the height source of a world.
type SourceFunc func(config *terrain.Config) terrain.Source

// NoiseSource is the default SourceFunc.
func NoiseSource(config *terrain.Config) terrain.Source {
	return noise.New(config)
}

type GameOptions struct {
	NewSource SourceFunc // nil means NoiseSource
}

// Game is stepped once per frame by a front-end.
type Game struct {
	config    terrain.Config
	newSource SourceFunc
	camera    *Camera
	manager   *chunk.Manager
	world     *chunk.World // Only in batch mode

	focused    bool
	screenshot bool
	frame      int64
}

// Stats summarize a Game for debugging.
type Stats struct {
	Frame    int64        `json:"frame"`
	Seed     int64        `json:"seed"`
	Mode     terrain.Mode `json:"mode"`
	Position world.Vec2f  `json:"position"`
	Scale    float32      `json:"scale"`
	Focused  bool         `json:"focused"`
	Chunks   chunk.Stats  `json:"chunks"`
}

func NewGame(config terrain.Config, opts GameOptions) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if opts.NewSource == nil {
		opts.NewSource = NoiseSource
	}

	g := &Game{
		config:    config,
		newSource: opts.NewSource,
		camera:    NewCamera(&config),
	}

	var err error
	switch config.Mode {
	case terrain.Batch:
		g.world, err = chunk.NewWorld(config, g.newSource(&config), humidity.New(&config))
		if err == nil {
			g.manager, err = chunk.NewBatchManager(g.world)
		}
	default:
		g.manager, err = chunk.NewManager(config, g.newSource(&config), humidity.New(&config))
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Step applies input and advances chunk streaming by one frame.
func (g *Game) Step(input InputSource) error {
	for _, event := range input.Events() {
		switch event.Kind {
		case Quit:
			return ErrQuit
		case KeyPress:
			switch event.Key {
			case KeyEscape:
				return ErrQuit
			case KeySpace:
				if err := g.Regenerate(); err != nil {
					return err
				}
			case KeyF2:
				g.screenshot = true
			case KeyO:
				g.manager.SetDrawOutlines(!g.manager.DrawOutlines())
			}
		case MouseWheel:
			if event.WheelY > 0 {
				g.camera.ZoomAt(input.CursorPosition(), 1)
			} else if event.WheelY < 0 {
				g.camera.ZoomAt(input.CursorPosition(), -1)
			}
		case MouseFocusChanged:
			g.focused = event.Focused
		}
	}

	if g.focused {
		g.camera.EdgePan(input.CursorPosition())
	}

	g.manager.Update(g.camera.Position, g.camera, g.camera)
	g.frame++
	return nil
}

// Regenerate replaces the terrain with that of the next seed.
func (g *Game) Regenerate() error {
	g.config.Seed++
	source := g.newSource(&g.config)
	field := humidity.New(&g.config)

	if g.world != nil {
		g.world.Reseed(g.config, source, field)
		return g.manager.Load(g.world)
	}
	return g.manager.Reseed(g.config, source, field)
}

// Draw renders every visible chunk.
func (g *Game) Draw(renderer chunk.Renderer) {
	g.manager.Render(renderer, g.camera)
}

// TakeScreenshotRequest returns true once per F2 press.
func (g *Game) TakeScreenshotRequest() bool {
	requested := g.screenshot
	g.screenshot = false
	return requested
}

func (g *Game) Camera() *Camera {
	return g.camera
}

func (g *Game) Manager() *chunk.Manager {
	return g.manager
}

func (g *Game) Config() terrain.Config {
	return g.config
}

func (g *Game) Stats() Stats {
	return Stats{
		Frame:    g.frame,
		Seed:     g.config.Seed,
		Mode:     g.config.Mode,
		Position: g.camera.Position,
		Scale:    g.camera.Scale(),
		Focused:  g.focused,
		Chunks:   g.manager.Stats(),
	}
}
