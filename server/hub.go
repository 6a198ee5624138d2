// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes a running client.Game over HTTP for debugging: a
// status endpoint, a websocket feed of the chunk under the camera and
// periodic terrain snapshots.
package server

import (
	"context"
	"errors"
	"github.com/SoftbearStudios/tileworld/client"
	"github.com/SoftbearStudios/tileworld/terrain/chunk"
	"github.com/SoftbearStudios/tileworld/terrain/compressed"
	"image"
	"log"
	"sync/atomic"
	"time"
)

const (
	defaultTPS         = 60
	defaultFeedPeriod  = time.Second / 4
	defaultDebugPeriod = time.Second * 5
)

type HubOptions struct {
	Game *client.Game
	// Input steps the game from the hub goroutine. Leave nil when a front-end
	// steps the game and calls Publish after each frame.
	Input client.InputSource
	Cloud Cloud

	TPS         int
	FeedPeriod  time.Duration
	DebugPeriod time.Duration
	LogPath     string // CSV of debug stats, empty to disable
}

// snapshot is published by the goroutine that owns the game and never modified after.
type snapshot struct {
	stats   client.Stats
	status  []byte
	feed    []byte
	minimap *image.RGBA
}

// Status is served as JSON by ServeIndex.
type Status struct {
	Time    int64                    `json:"time"`
	Clients int32                    `json:"clients"`
	Game    client.Stats             `json:"game"`
	Benches map[string]time.Duration `json:"benches,omitempty"`
}

// Feed is sent to every socket client each feed period.
type Feed struct {
	Frame  int64       `json:"frame"`
	Chunk  chunk.Coord `json:"chunk"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Kinds  []byte      `json:"kinds"` // compressed.EncodeKinds
}

// Hub maintains the set of socket clients and what they are sent.
type Hub struct {
	game     *client.Game
	input    client.InputSource
	renderer *client.ImageRenderer // Only if the hub steps the game
	cloud    Cloud
	logPath  string

	// Served atomically by HTTP
	published   atomic.Value // *snapshot
	benches     atomic.Value // map[string]time.Duration
	clientCount int32

	clients map[*SocketClient]struct{}
	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	register   chan *SocketClient
	unregister chan *SocketClient
	done       chan struct{}

	tps         int
	feedPeriod  time.Duration
	debugPeriod time.Duration
}

func NewHub(opts HubOptions) *Hub {
	if opts.Cloud == nil {
		opts.Cloud = Offline{}
	}
	if opts.TPS <= 0 {
		opts.TPS = defaultTPS
	}
	if opts.FeedPeriod <= 0 {
		opts.FeedPeriod = defaultFeedPeriod
	}
	if opts.DebugPeriod <= 0 {
		opts.DebugPeriod = defaultDebugPeriod
	}

	h := &Hub{
		game:        opts.Game,
		input:       opts.Input,
		cloud:       opts.Cloud,
		logPath:     opts.LogPath,
		clients:     make(map[*SocketClient]struct{}),
		register:    make(chan *SocketClient, 8),
		unregister:  make(chan *SocketClient, 16),
		done:        make(chan struct{}),
		tps:         opts.TPS,
		feedPeriod:  opts.FeedPeriod,
		debugPeriod: opts.DebugPeriod,
	}

	if h.input != nil {
		config := h.game.Config()
		h.renderer = client.NewImageRenderer(config.ScreenWidth, config.ScreenHeight)
	}

	// Nothing else touches the game yet.
	h.Publish(h.game)
	return h
}

// Run serves socket clients until ctx is done. If the hub has an Input it also
// steps the game, and returns nil once the game quits.
func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		close(h.done)
		for c := range h.clients {
			c.Close()
		}
	}()

	var updates <-chan time.Time
	if h.input != nil {
		updateTicker := time.NewTicker(time.Second / time.Duration(h.tps))
		defer updateTicker.Stop()
		updates = updateTicker.C
	}

	feedTicker := time.NewTicker(h.feedPeriod)
	defer feedTicker.Stop()
	debugTicker := time.NewTicker(h.debugPeriod)
	defer debugTicker.Stop()
	cloudTicker := time.NewTicker(h.cloud.UpdatePeriod())
	defer cloudTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-h.register:
			h.clients[c] = struct{}{}
			atomic.StoreInt32(&h.clientCount, int32(len(h.clients)))
			c.Init()
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				atomic.StoreInt32(&h.clientCount, int32(len(h.clients)))
				c.Close()
			}
		case <-updates:
			if err := h.Update(); err != nil {
				if errors.Is(err, client.ErrQuit) {
					return nil
				}
				return err
			}
		case <-feedTicker.C:
			h.Broadcast()
		case <-debugTicker.C:
			h.Debug()
			h.SnapshotTerrain()
		case <-cloudTicker.C:
			h.Cloud()
		}
	}
}

// Update steps, draws and publishes one frame. Only for hubs with an Input.
func (h *Hub) Update() error {
	if err := h.step(); err != nil {
		return err
	}
	h.draw()
	h.Publish(h.game)

	if h.game.TakeScreenshotRequest() {
		h.SnapshotTerrain()
	}
	return nil
}

func (h *Hub) step() error {
	defer h.timeFunction("step", time.Now())
	return h.game.Step(h.input)
}

func (h *Hub) draw() {
	defer h.timeFunction("draw", time.Now())
	h.renderer.Clear()
	h.game.Draw(h.renderer)
}

// Publish copies what HTTP and socket clients see out of game. Call it from the
// goroutine that steps game.
func (h *Hub) Publish(game *client.Game) {
	stats := game.Stats()
	benches, _ := h.benches.Load().(map[string]time.Duration)

	status, err := json.Marshal(Status{
		Time:    unixMillis(),
		Clients: atomic.LoadInt32(&h.clientCount),
		Game:    stats,
		Benches: benches,
	})
	if err != nil {
		log.Println("Error encoding status:", err)
		return
	}

	s := &snapshot{stats: stats, status: status}

	if c := game.Manager().Chunk(stats.Chunks.Current); c != nil {
		s.feed, err = json.Marshal(Feed{
			Frame:  stats.Frame,
			Chunk:  c.Coord,
			Width:  c.Width(),
			Height: c.Height(),
			Kinds:  compressed.EncodeKinds(c.Kinds()),
		})
		if err != nil {
			log.Println("Error encoding feed:", err)
		}
		s.minimap = renderTiles(c)
	}

	h.published.Store(s)
}

func (h *Hub) snapshot() *snapshot {
	s, _ := h.published.Load().(*snapshot)
	return s
}

// Broadcast sends the latest feed to every socket client.
func (h *Hub) Broadcast() {
	s := h.snapshot()
	if s == nil || s.feed == nil {
		return
	}
	for c := range h.clients {
		c.Send(s.feed)
	}
}
