// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/humidity"
	"github.com/SoftbearStudios/tileworld/terrain/noise"
	"github.com/SoftbearStudios/tileworld/world"
	"image"
	"testing"
)

// funcSource is a terrain.Source backed by a function of world tile coordinates.
type funcSource func(x, y int) float64

func (f funcSource) HeightAt(x, y int) float64 {
	return f(x, y)
}

func (f funcSource) Generate(x, y, width, height int) *terrain.Heightmap {
	h := terrain.NewHeightmap(x, y, width, height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			h.Data[i+j*width] = f(x+i, y+j)
		}
	}
	return h
}

// fixedCamera is a Projector that never moves.
type fixedCamera struct {
	pos   world.Vec2f
	scale float32
}

func (c fixedCamera) WorldToScreen(pos world.Vec2f) world.Vec2f {
	return pos.Sub(c.pos).Mul(c.scale)
}

func (c fixedCamera) Scale() float32 {
	return c.scale
}

// recorder is a Renderer with a width x height viewport that records calls.
type recorder struct {
	width, height float32
	drawn         int
	scaled        int
	outlines      int
}

func (r *recorder) RectIntersectsViewport(rect world.AABB) bool {
	return rect.Overlaps(world.AABBFrom(0, 0, r.width, r.height))
}

func (r *recorder) DrawPixelBlock(pixels *image.RGBA, screenPos world.Vec2f, screenSize world.Vec2f) {
	r.drawn++
}

func (r *recorder) ScaleCache(pixels *image.RGBA, width, height int) *image.RGBA {
	r.scaled++
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *recorder) DrawOutline(rect world.AABB) {
	r.outlines++
}

func testConfig() terrain.Config {
	c := terrain.DefaultConfig()
	c.WorldWidth = 20
	c.WorldHeight = 20
	c.ChunkWidth = 5
	c.ChunkHeight = 5
	c.TileSize = 2
	c.ErosionIterations = 10
	c.HumidityJitter = 0
	return c
}

// Every tile at x < 3 is water, the rest rises towards the bottom right.
func slope(x, y int) float64 {
	if x < 3 {
		return 0.1
	}
	return 0.3 + float64(x+y)/50
}

func checkInvariants(m *Manager) error {
	for coord := range m.frontier {
		if m.chunks.Contains(coord) {
			return fmt.Errorf("%s is generated and in the frontier", coord)
		}
		if !m.hasGeneratedNeighbor(coord) {
			return fmt.Errorf("%s is in the frontier without a generated neighbor", coord)
		}
	}
	return nil
}

func TestCoordOf(t *testing.T) {
	tests := []struct {
		tile world.Vec2i
		want Coord
	}{
		{world.Vec2i{X: 0, Y: 0}, Coord{0, 0}},
		{world.Vec2i{X: 4, Y: 4}, Coord{0, 0}},
		{world.Vec2i{X: 5, Y: 9}, Coord{1, 1}},
		{world.Vec2i{X: -1, Y: -5}, Coord{-1, -1}},
		{world.Vec2i{X: -6, Y: 0}, Coord{-2, 0}},
	}

	for _, test := range tests {
		if got := CoordOf(test.tile, 5, 5); got != test.want {
			t.Errorf("CoordOf(%s) = %s, want %s", test.tile, got, test.want)
		}
	}

	if origin := (Coord{-2, 3}).Origin(5, 4); origin != (world.Vec2i{X: -10, Y: 12}) {
		t.Errorf("unexpected origin %s", origin)
	}
}

func TestNew_PanicsOnWrongLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(Coord{}, 2, 2, make([]terrain.Tile, 3))
}

func TestGenerate_Idempotent(t *testing.T) {
	c := testConfig()
	c.HumidityMargin = 2
	c.HumidityJitter = 0.1
	source := noise.New(&c)
	field := humidity.New(&c)

	for _, coord := range []Coord{{0, 0}, {3, -2}, {-1, 7}} {
		a := Generate(coord, &c, source, field)
		b := Generate(coord, &c, source, field)

		if a.Width() != c.ChunkWidth || a.Height() != c.ChunkHeight {
			t.Fatalf("%s has size %dx%d", coord, a.Width(), a.Height())
		}
		for i := range a.tiles {
			if a.tiles[i] != b.tiles[i] {
				t.Fatalf("%s tile %d differs: %v != %v", coord, i, a.tiles[i], b.tiles[i])
			}
		}
		if !a.Dirty() || a.State() != Generated {
			t.Errorf("%s should start dirty", coord)
		}
	}
}

func TestGenerate_LocalHumidity(t *testing.T) {
	c := testConfig()
	c.HumidityCap = 10
	field := humidity.New(&c)

	// Chunk (1, 0) starts at x = 5, the water ends at x = 3.
	blind := Generate(Coord{1, 0}, &c, funcSource(slope), field)
	c.HumidityMargin = 3
	seeing := Generate(Coord{1, 0}, &c, funcSource(slope), field)

	if blind.At(0, 0).Kind == terrain.Water || seeing.At(0, 0).Kind == terrain.Water {
		t.Fatal("expected land")
	}
	// Without a margin no water is visible, so the chunk is dry.
	for _, tile := range blind.tiles {
		if tile.Kind == terrain.Grass {
			t.Fatal("chunk without visible water should have no grass")
		}
	}
	if seeing.At(0, 0).Kind != terrain.Grass {
		t.Errorf("tile next to water should be grass, got %s", seeing.At(0, 0).Kind)
	}
}

func TestWorld_RenderChunks(t *testing.T) {
	c := testConfig()
	c.Mode = terrain.Batch

	w, err := NewWorld(c, noise.New(&c), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}

	chunks := w.Chunks()
	if len(chunks) != (20/5)*(20/5) {
		t.Fatalf("expected 16 chunks, got %d", len(chunks))
	}

	covered := make(map[world.Vec2i]int)
	for _, ch := range chunks {
		if ch.Width() != 5 || ch.Height() != 5 || len(ch.tiles) != 25 {
			t.Fatalf("%s has shape %dx%d", ch.Coord, ch.Width(), ch.Height())
		}
		origin := ch.Coord.Origin(5, 5)
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				tile := origin.Add(world.Vec2i{X: x, Y: y})
				covered[tile]++

				want, ok := w.TileAt(tile)
				if !ok || ch.At(x, y) != want {
					t.Fatalf("%s tile (%d, %d) does not match the world", ch.Coord, x, y)
				}
			}
		}
	}

	if len(covered) != 400 {
		t.Errorf("expected 400 covered tiles, got %d", len(covered))
	}
	for tile, count := range covered {
		if count != 1 {
			t.Errorf("tile %s covered %d times", tile, count)
		}
	}

	if _, ok := w.TileAt(world.Vec2i{X: 20, Y: 0}); ok {
		t.Error("tile outside the world")
	}
}

func TestNewWorld_Invalid(t *testing.T) {
	c := testConfig()
	c.Mode = terrain.Batch
	c.ChunkWidth = 6

	if _, err := NewWorld(c, funcSource(slope), humidity.New(&c)); err == nil {
		t.Error("expected error for chunks not dividing the world")
	}

	c = testConfig()
	if _, err := NewWorld(c, funcSource(slope), humidity.New(&c)); err == nil {
		t.Error("expected error for streaming mode")
	}
}

func TestWorld_Reseed(t *testing.T) {
	c := testConfig()
	c.Mode = terrain.Batch
	w, err := NewWorld(c, funcSource(slope), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}
	before := w.Chunks()[0]

	m, err := NewBatchManager(w)
	if err != nil {
		t.Fatal(err)
	}
	old := m.texture

	c.Seed++
	flat := funcSource(func(x, y int) float64 { return 0 })
	w.Reseed(c, flat, humidity.New(&c))
	if err := m.Load(w); err != nil {
		t.Fatal(err)
	}

	if w.Chunks()[0] == before {
		t.Error("reseed should rebuild chunks")
	}
	if got := w.Config().Seed; got != c.Seed {
		t.Errorf("expected world seed %d, got %d", c.Seed, got)
	}

	// The texture follows the new seed.
	expected := TextureOf(&c)
	changed := false
	for i := 0; i < 16; i++ {
		x, y := float64(i)*0.37, float64(i)*0.59
		if m.texture.At(x, y) != expected.At(x, y) {
			t.Fatalf("texture at (%g, %g) is not that of seed %d", x, y, c.Seed)
		}
		if m.texture.At(x, y) != old.At(x, y) {
			changed = true
		}
	}
	if !changed {
		t.Error("texture kept the old seed")
	}
	for _, tile := range w.Tiles() {
		if tile.Kind != terrain.Water {
			t.Fatalf("flat world should be water, got %s", tile.Kind)
		}
	}
}

func TestManager_Streaming(t *testing.T) {
	c := testConfig()
	m, err := NewManager(c, funcSource(slope), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}

	// Viewport covers 2x2 chunks of 10x10 pixels.
	cam := fixedCamera{scale: 1}
	r := &recorder{width: 20, height: 20}
	focus := world.Vec2f{X: 1, Y: 1}

	m.Update(focus, cam, r)
	if s := m.State(Coord{0, 0}); s != Generated {
		t.Fatalf("current chunk should be generated, got %s", s)
	}
	if got := len(m.Frontier()); got != 4 {
		t.Fatalf("expected 4 frontier chunks, got %d", got)
	}
	if err := checkInvariants(m); err != nil {
		t.Fatal(err)
	}

	// Second frame generates the visible frontier: (1, 0) and (0, 1).
	m.Update(focus, cam, r)
	if err := checkInvariants(m); err != nil {
		t.Fatal(err)
	}
	for _, coord := range []Coord{{1, 0}, {0, 1}} {
		if s := m.State(coord); s != Generated {
			t.Errorf("%s should be generated, got %s", coord, s)
		}
	}
	for _, coord := range []Coord{{-1, 0}, {0, -1}} {
		if s := m.State(coord); s != Frontier {
			t.Errorf("%s is off screen and should stay in the frontier, got %s", coord, s)
		}
	}

	// Third frame reaches (1, 1), after which nothing visible is left.
	m.Update(focus, cam, r)
	m.Update(focus, cam, r)
	if s := m.State(Coord{1, 1}); s != Generated {
		t.Errorf("(1, 1) should be generated, got %s", s)
	}
	if s := m.State(Coord{2, 0}); s != Frontier {
		t.Errorf("(2, 0) should be in the frontier, got %s", s)
	}
	if got := m.Stats().Resident; got != 4 {
		t.Errorf("expected 4 resident chunks, got %d", got)
	}
	if err := checkInvariants(m); err != nil {
		t.Fatal(err)
	}

	if tile, ok := m.TileAt(world.Vec2i{X: 1, Y: 1}); !ok || tile.Kind != terrain.Water {
		t.Errorf("expected water at (1, 1), got %v %v", tile, ok)
	}
	if _, ok := m.TileAt(world.Vec2i{X: -1, Y: 0}); ok {
		t.Error("tile of a frontier chunk should be missing")
	}

	if s := m.State(Coord{9, 9}); s != Unknown {
		t.Errorf("far chunk should be unknown, got %s", s)
	}
}

func TestManager_Budget(t *testing.T) {
	c := testConfig()
	c.MaxGeneratePerFrame = 1
	m, err := NewManager(c, funcSource(slope), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}

	cam := fixedCamera{pos: world.Vec2f{X: -20, Y: -20}, scale: 1}
	r := &recorder{width: 60, height: 60}

	m.Update(world.Vec2f{}, cam, r)
	m.Update(world.Vec2f{}, cam, r)
	if got := m.Stats().GeneratedLastFrame; got != 1 {
		t.Fatalf("expected 1 chunk generated, got %d", got)
	}
	// Nearest first, ties broken by X then Y.
	if s := m.State(Coord{-1, 0}); s != Generated {
		t.Errorf("expected (-1, 0) first, got %s", s)
	}
}

func TestManager_Eviction(t *testing.T) {
	c := testConfig()
	c.MaxChunks = terrain.MinResidentChunks
	m, err := NewManager(c, funcSource(slope), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}

	r := &recorder{width: 30, height: 30}

	// Walk right, one chunk (10 pixels) every few frames.
	for step := 0; step < 20; step++ {
		focus := world.Vec2f{X: float32(step*10 + 1), Y: 1}
		cam := fixedCamera{pos: focus.Sub(world.Vec2f{X: 10, Y: 10}), scale: 1}
		for frame := 0; frame < 3; frame++ {
			m.Update(focus, cam, r)
			if err := checkInvariants(m); err != nil {
				t.Fatalf("step %d frame %d: %s", step, frame, err)
			}
			if got := m.Stats().Resident; got > c.MaxChunks {
				t.Fatalf("%d chunks resident with a limit of %d", got, c.MaxChunks)
			}
		}
		if s := m.State(m.CoordAt(focus)); s == Unknown || s == Frontier {
			t.Fatalf("step %d: current chunk is %s", step, s)
		}
	}

	stats := m.Stats()
	if stats.Evicted == 0 {
		t.Error("expected evictions")
	}
	if stats.Generated-stats.Evicted != int64(stats.Resident) {
		t.Errorf("generated %d - evicted %d != resident %d", stats.Generated, stats.Evicted, stats.Resident)
	}
	if s := m.State(Coord{0, 0}); s == Generated || s == Rendered {
		t.Error("first chunk should be evicted")
	}
}

func TestManager_EvictionKeepsVisible(t *testing.T) {
	c := testConfig()
	c.MaxChunks = terrain.MinResidentChunks
	m, err := NewManager(c, funcSource(slope), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}

	// 3x3 chunks are visible, more than fit.
	cam := fixedCamera{scale: 1}
	r := &recorder{width: 30, height: 30}
	focus := world.Vec2f{X: 1, Y: 1}

	for frame := 0; frame < 200; frame++ {
		m.Update(focus, cam, r)
		m.Render(r, cam)
		if err := checkInvariants(m); err != nil {
			t.Fatalf("frame %d: %s", frame, err)
		}
	}

	stats := m.Stats()
	if stats.GeneratedLastFrame != 0 {
		t.Errorf("static camera still generating %d chunks per frame", stats.GeneratedLastFrame)
	}
	if stats.Evicted != 0 {
		t.Errorf("expected no evictions, got %d", stats.Evicted)
	}
	if stats.Generated != int64(c.MaxChunks) || stats.Painted != int64(c.MaxChunks) {
		t.Errorf("expected %d chunks generated and painted once, got %d and %d", c.MaxChunks, stats.Generated, stats.Painted)
	}
	if stats.Deferred == 0 {
		t.Error("expected deferred frames")
	}
	if s := m.State(Coord{0, 0}); s != Rendered {
		t.Errorf("current chunk should be rendered, got %s", s)
	}
}

func TestManager_Render(t *testing.T) {
	c := testConfig()
	m, err := NewManager(c, funcSource(slope), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}

	cam := fixedCamera{scale: 1}
	r := &recorder{width: 20, height: 20}
	for i := 0; i < 3; i++ {
		m.Update(world.Vec2f{X: 1, Y: 1}, cam, r)
	}

	m.Render(r, cam)
	if r.drawn != 4 || r.scaled != 4 {
		t.Fatalf("expected 4 draws and scales, got %d and %d", r.drawn, r.scaled)
	}
	if s := m.State(Coord{0, 0}); s != Rendered {
		t.Errorf("expected rendered, got %s", s)
	}
	painted := m.Stats().Painted

	// Same scale reuses the caches.
	m.Render(r, cam)
	if r.scaled != 4 || m.Stats().Painted != painted {
		t.Errorf("unexpected rescale or repaint: %d scales, %d paints", r.scaled, m.Stats().Painted)
	}

	// New scale rescales without repainting.
	zoomed := fixedCamera{scale: 2}
	m.Render(r, zoomed)
	if m.Stats().Painted != painted {
		t.Error("zoom should not repaint")
	}
	if m.Stats().DrawnLastFrame != 1 || r.scaled != 5 {
		t.Errorf("at scale 2 only (0, 0) is visible, drew %d and scaled %d", m.Stats().DrawnLastFrame, r.scaled)
	}

	if r.outlines != 0 {
		t.Error("outlines are off")
	}
	m.SetDrawOutlines(true)
	m.Render(r, cam)
	if r.outlines != 4 {
		t.Errorf("expected 4 outlines, got %d", r.outlines)
	}
}

func TestManager_Batch(t *testing.T) {
	c := testConfig()
	c.Mode = terrain.Batch
	w, err := NewWorld(c, funcSource(slope), humidity.New(&c))
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewBatchManager(w)
	if err != nil {
		t.Fatal(err)
	}
	if m.Streaming() {
		t.Error("batch manager should not stream")
	}

	r := &recorder{width: 1000, height: 1000}
	m.Update(world.Vec2f{X: -500, Y: -500}, fixedCamera{scale: 1}, r)
	if stats := m.Stats(); stats.Resident != 16 || stats.Frontier != 0 || stats.GeneratedLastFrame != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}

	m.Render(r, fixedCamera{scale: 1})
	if r.drawn != 16 {
		t.Errorf("expected 16 draws, got %d", r.drawn)
	}

	if err := m.Reseed(c, funcSource(slope), humidity.New(&c)); err == nil {
		t.Error("batch manager should not reseed")
	}
}

func TestPaint(t *testing.T) {
	tiles := []terrain.Tile{
		{Kind: terrain.Water, Shade: 1}, {Kind: terrain.Stone, Shade: 1},
		{Kind: terrain.Grass, Shade: 0}, {Kind: terrain.Snow, Shade: 0.5},
	}
	c := New(Coord{}, 2, 2, tiles)

	img := Paint(c, 3, nil)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if got, want := img.RGBAAt(4, 1), tiles[1].Color().Color(); got != want {
		t.Errorf("stone pixel %v, want %v", got, want)
	}

	// Stone is untextured, so texture must not change it.
	textured := Paint(c, 3, CellularTexture(noise.NewCellular(1), 2))
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			if textured.RGBAAt(x, y) != img.RGBAAt(x, y) {
				t.Fatal("texture changed stone")
			}
		}
	}
}

func TestCellularTexture(t *testing.T) {
	cellular := noise.NewCellular(4)
	edges := CellularTexture(cellular, 2)
	bubbles := CellularTexture(cellular, 2, 1)

	for i := 0; i < 20; i++ {
		x, y := float64(i)*0.23, float64(i)*0.41
		if got, want := edges.At(x, y), cellular.Edges(x*2, y*2, 1, 1); got != want {
			t.Fatalf("default texture at (%g, %g) = %g, want edges %g", x, y, got, want)
		}
		if got, want := bubbles.At(x, y), cellular.Value(x*2, y*2, 1, 1, []float64{1}); got != want {
			t.Fatalf("bubble texture at (%g, %g) = %g, want %g", x, y, got, want)
		}
	}

	c := testConfig()
	c.TextureScale = 0
	if TextureOf(&c) != nil {
		t.Error("expected no texture with a scale of 0")
	}
}

func BenchmarkGenerate(b *testing.B) {
	c := terrain.DefaultConfig()
	source := noise.New(&c)
	field := humidity.New(&c)
	for i := 0; i < b.N; i++ {
		Generate(Coord{X: i % 16, Y: i / 16 % 16}, &c, source, field)
	}
}
