// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"fmt"
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/chunk"
	"image"
	"image/png"
	"log"
	"runtime"
	"time"
)

func unixMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// Debug prints debugging info to console and the debug log.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v] %s\n", time.Now().Format(time.UnixDate), h.cloud)
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	fmt.Printf(" - memstats: %dM/%dM\n", mem.HeapInuse/1e6, mem.NextGC/1e6)
	fmt.Printf(" - clients: %d\n", len(h.clients))

	s := h.snapshot()
	if s != nil {
		stats := s.stats
		chunks := stats.Chunks
		fmt.Printf(" - frame: %d, seed: %d, mode: %s, position: %s, scale: %.02f\n",
			stats.Frame, stats.Seed, stats.Mode, stats.Position, stats.Scale)
		fmt.Printf(" - chunks: %d resident, %d frontier, %d generated, %d evicted, %d painted, current: %s\n",
			chunks.Resident, chunks.Frontier, chunks.Generated, chunks.Evicted, chunks.Painted, chunks.Current)

		if h.logPath != "" {
			if err := AppendLog(h.logPath, unixMillis(), stats.Frame, chunks.Resident, chunks.Frontier, chunks.Generated, chunks.Evicted, stats.Scale); err != nil {
				log.Println("Error appending debug log:", err)
			}
		}
	}

	// Function benchmarks
	var totalDuration time.Duration
	benches := make(map[string]time.Duration, len(h.funcBenches))

	fmt.Print(" - ")
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration
		benches[bench.name] = duration

		fmt.Print(bench.name, ": ", duration, ", ")
	}
	fmt.Println("total:", totalDuration)

	h.benches.Store(benches)
}

// SnapshotTerrain uploads a PNG of the last frame if the hub draws frames,
// otherwise of the chunk under the camera.
func (h *Hub) SnapshotTerrain() {
	var img image.Image
	if h.renderer != nil {
		img = h.renderer.Frame()
	} else if s := h.snapshot(); s != nil && s.minimap != nil {
		img = s.minimap
	} else {
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Println("Error encoding snapshot:", err)
		return
	}
	if err := h.cloud.UploadTerrainSnapshot(buf.Bytes()); err != nil {
		log.Println("Error uploading snapshot:", err)
	}
}

// renderTiles draws one pixel per tile.
func renderTiles(c *chunk.Chunk) *image.RGBA {
	return terrain.RenderTiles(c.Tiles(), c.Width())
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
