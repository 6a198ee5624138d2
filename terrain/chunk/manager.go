// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/humidity"
	"github.com/SoftbearStudios/tileworld/world"
	"github.com/chewxy/math32"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"math"
	"sort"
)

// Stats are counters of a Manager, safe to copy.
type Stats struct {
	Current   Coord `json:"current"`
	Resident  int   `json:"resident"`
	Frontier  int   `json:"frontier"`
	Generated int64 `json:"generated"`
	Evicted   int64 `json:"evicted"`
	Painted   int64 `json:"painted"`
	Frames    int64 `json:"frames"`
	Deferred  int64 `json:"deferred"` // Frames that stopped generating to keep visible chunks

	GeneratedLastFrame int `json:"generatedLastFrame"`
	DrawnLastFrame     int `json:"drawnLastFrame"`
}

// Manager owns generated chunks and the frontier of coordinates next to them.
// It is not safe for concurrent use, call it from the game loop only.
//
// Invariants, true between calls:
//   - No coordinate is both generated and in the frontier.
//   - Every frontier coordinate has at least one generated neighbor.
type Manager struct {
	config    terrain.Config
	source    terrain.Source
	humidity  *humidity.Field
	texture   Texture
	streaming bool

	chunks   *simplelru.LRU[Coord, *Chunk]
	frontier map[Coord]struct{}
	stats    Stats

	pending []Coord // reused by Update
}

// NewManager creates a streaming manager with nothing generated. The first
// Update generates the chunk under the focus.
func NewManager(config terrain.Config, source terrain.Source, field *humidity.Field) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Mode != terrain.Streaming {
		return nil, fmt.Errorf("%w: manager requires %s mode, got %s", terrain.ErrInvalidConfig, terrain.Streaming, config.Mode)
	}

	m := &Manager{
		config:    config,
		source:    source,
		humidity:  field,
		texture:   TextureOf(&config),
		streaming: true,
	}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewBatchManager serves the chunks of a batch world. Update never generates.
func NewBatchManager(w *World) (*Manager, error) {
	config := w.Config()
	m := &Manager{config: config}
	if err := m.Load(w); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) reset() error {
	size := m.config.MaxChunks
	if size <= 0 {
		size = math.MaxInt
	}
	chunks, err := simplelru.NewLRU[Coord, *Chunk](size, m.onEvict)
	if err != nil {
		return err
	}
	m.chunks = chunks
	m.frontier = make(map[Coord]struct{})
	return nil
}

// Load replaces every chunk with the chunks of a batch world, and the
// texture with that of its seed.
func (m *Manager) Load(w *World) error {
	if m.streaming {
		return fmt.Errorf("%w: cannot load a batch world into a streaming manager", terrain.ErrInvalidConfig)
	}
	m.config.Seed = w.Config().Seed
	m.texture = TextureOf(&m.config)
	if err := m.reset(); err != nil {
		return err
	}
	for _, c := range w.Chunks() {
		m.chunks.Add(c.Coord, c)
	}
	m.stats.Generated += int64(len(w.Chunks()))
	return nil
}

// Reseed drops every chunk and continues streaming from a new source.
func (m *Manager) Reseed(config terrain.Config, source terrain.Source, field *humidity.Field) error {
	if !m.streaming {
		return fmt.Errorf("%w: reseed a batch manager with Load", terrain.ErrInvalidConfig)
	}
	m.config.Seed = config.Seed
	m.source = source
	m.humidity = field
	m.texture = TextureOf(&m.config)
	return m.reset()
}

// SetDrawOutlines toggles outlines around drawn chunks.
func (m *Manager) SetDrawOutlines(outlines bool) {
	m.config.DrawOutlines = outlines
}

func (m *Manager) DrawOutlines() bool {
	return m.config.DrawOutlines
}

// Streaming is false for a batch manager.
func (m *Manager) Streaming() bool {
	return m.streaming
}

// CoordAt returns the chunk under a position in world pixels.
func (m *Manager) CoordAt(pos world.Vec2f) Coord {
	tile := pos.Div(float32(m.config.TileSize)).Vec2i()
	return CoordOf(tile, m.config.ChunkWidth, m.config.ChunkHeight)
}

// Update advances streaming by one frame. If the chunk under focus is missing
// it is generated and nothing else happens this frame. Otherwise frontier
// chunks that are visible through proj are generated, nearest first, up to
// MaxGeneratePerFrame. Frontier chunks that are not visible stay queued.
// The chunk under focus is never evicted by its own Update, and frontier
// generation never evicts a visible chunk: it stops for the frame instead.
func (m *Manager) Update(focus world.Vec2f, proj Projector, viewport Viewport) {
	m.stats.Frames++
	m.stats.GeneratedLastFrame = 0
	if !m.streaming {
		return
	}

	current := m.CoordAt(focus)
	m.stats.Current = current

	if _, ok := m.chunks.Get(current); !ok {
		m.generate(current)
		return
	}

	// Snapshot so generating (and evicting) doesn't disturb iteration.
	m.pending = m.pending[:0]
	for coord := range m.frontier {
		m.pending = append(m.pending, coord)
	}
	sort.Slice(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		da, db := a.distanceSquared(current), b.distanceSquared(current)
		if da != db {
			return da < db
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	budget := m.config.MaxGeneratePerFrame
	for _, coord := range m.pending {
		if budget > 0 && m.stats.GeneratedLastFrame >= budget {
			break
		}
		// Eviction may have dropped it since the snapshot.
		if _, ok := m.frontier[coord]; !ok {
			continue
		}
		if !viewport.RectIntersectsViewport(m.ScreenRect(coord, proj)) {
			continue
		}
		// An evicted visible chunk would be back in the frontier next frame.
		if m.full() && m.oldestVisible(proj, viewport) {
			m.stats.Deferred++
			break
		}
		m.generate(coord)
		// Keep the current chunk from becoming the oldest.
		m.chunks.Get(current)
	}
}

func (m *Manager) generate(coord Coord) {
	c := Generate(coord, &m.config, m.source, m.humidity)

	delete(m.frontier, coord)
	m.chunks.Add(coord, c)
	for _, n := range coord.Neighbors() {
		if !m.chunks.Contains(n) {
			m.frontier[n] = struct{}{}
		}
	}

	m.stats.Generated++
	m.stats.GeneratedLastFrame++
}

func (m *Manager) full() bool {
	return m.config.MaxChunks > 0 && m.chunks.Len() >= m.config.MaxChunks
}

// oldestVisible is true if the next chunk to be evicted is on screen.
func (m *Manager) oldestVisible(proj Projector, viewport Viewport) bool {
	coord, _, ok := m.chunks.GetOldest()
	return ok && viewport.RectIntersectsViewport(m.ScreenRect(coord, proj))
}

// onEvict runs after coord has left the cache.
func (m *Manager) onEvict(coord Coord, _ *Chunk) {
	m.stats.Evicted++

	// Neighbors may have lost their only generated neighbor.
	for _, n := range coord.Neighbors() {
		if _, ok := m.frontier[n]; ok && !m.hasGeneratedNeighbor(n) {
			delete(m.frontier, n)
		}
	}
	if m.hasGeneratedNeighbor(coord) {
		m.frontier[coord] = struct{}{}
	}
}

func (m *Manager) hasGeneratedNeighbor(coord Coord) bool {
	for _, n := range coord.Neighbors() {
		if m.chunks.Contains(n) {
			return true
		}
	}
	return false
}

// ScreenRect is the screen rectangle covered by a chunk.
func (m *Manager) ScreenRect(coord Coord, proj Projector) world.AABB {
	size := float32(m.config.TileSize)
	origin := coord.Origin(m.config.ChunkWidth, m.config.ChunkHeight).Vec2f().Mul(size)
	pos := proj.WorldToScreen(origin)
	scale := proj.Scale()
	return world.AABB{
		Vec2f:  pos,
		Width:  float32(m.config.ChunkWidth) * size * scale,
		Height: float32(m.config.ChunkHeight) * size * scale,
	}
}

// Render draws every visible chunk, painting dirty chunks and rescaling
// caches whose scale is stale. Chunks off screen are left as they are.
func (m *Manager) Render(renderer Renderer, proj Projector) {
	m.stats.DrawnLastFrame = 0
	scale := proj.Scale()
	tileSize := m.config.TileSize

	for _, coord := range m.chunks.Keys() {
		rect := m.ScreenRect(coord, proj)
		// Don't do the work of scaling an image if it won't be on screen
		if !renderer.RectIntersectsViewport(rect) {
			continue
		}
		c, _ := m.chunks.Get(coord)

		if c.dirty || c.cache == nil {
			c.cache = Paint(c, tileSize, m.texture)
			c.scaled = nil
			c.dirty = false
			m.stats.Painted++
		}

		if c.scaled == nil || c.scaledFor != scale {
			bounds := c.cache.Bounds()
			width := int(math32.Ceil(float32(bounds.Dx()) * scale))
			height := int(math32.Ceil(float32(bounds.Dy()) * scale))
			c.scaled = renderer.ScaleCache(c.cache, width, height)
			c.scaledFor = scale
		}

		renderer.DrawPixelBlock(c.scaled, rect.Vec2f, world.Vec2f{X: rect.Width, Y: rect.Height})
		if m.config.DrawOutlines {
			renderer.DrawOutline(rect)
		}
		m.stats.DrawnLastFrame++
	}
}

// State of a chunk coordinate. Doesn't count as a use for eviction.
func (m *Manager) State(coord Coord) State {
	if c, ok := m.chunks.Peek(coord); ok {
		return c.State()
	}
	if _, ok := m.frontier[coord]; ok {
		return Frontier
	}
	return Unknown
}

// Chunk returns a generated chunk, or nil. Doesn't count as a use for eviction.
func (m *Manager) Chunk(coord Coord) *Chunk {
	c, _ := m.chunks.Peek(coord)
	return c
}

// Chunks returns the generated chunks, least recently used first.
func (m *Manager) Chunks() []*Chunk {
	return m.chunks.Values()
}

// Frontier returns the frontier coordinates in no particular order.
func (m *Manager) Frontier() []Coord {
	coords := make([]Coord, 0, len(m.frontier))
	for coord := range m.frontier {
		coords = append(coords, coord)
	}
	return coords
}

// Stats returns a copy of the counters.
func (m *Manager) Stats() Stats {
	stats := m.stats
	stats.Resident = m.chunks.Len()
	stats.Frontier = len(m.frontier)
	return stats
}

// TileAt returns a generated tile, or false if its chunk isn't generated.
func (m *Manager) TileAt(tile world.Vec2i) (terrain.Tile, bool) {
	cw, ch := m.config.ChunkWidth, m.config.ChunkHeight
	c := m.Chunk(CoordOf(tile, cw, ch))
	if c == nil {
		return terrain.Tile{}, false
	}
	return c.At(world.FloorMod(tile.X, cw), world.FloorMod(tile.Y, ch)), true
}
