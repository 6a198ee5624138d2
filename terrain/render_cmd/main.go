// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/chunk"
	"github.com/SoftbearStudios/tileworld/terrain/compressed"
	"github.com/SoftbearStudios/tileworld/terrain/humidity"
	"github.com/SoftbearStudios/tileworld/terrain/noise"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"runtime/pprof"
)

func main() {
	config := terrain.DefaultConfig()
	config.Mode = terrain.Batch
	config.Bind(flag.CommandLine)

	var (
		cpuProfile string
		out        string
		textured   bool
	)
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&out, "out", "out.png", "output PNG `file`")
	flag.BoolVar(&textured, "textured", false, "paint tile-size pixels per tile with texture instead of one pixel per tile")
	flag.Parse()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(&config, out, textured); err != nil {
		log.Fatal(err)
	}
}

func run(config *terrain.Config, out string, textured bool) error {
	w, err := chunk.NewWorld(*config, noise.New(config), humidity.New(config))
	if err != nil {
		return err
	}

	kinds := make([]terrain.Kind, len(w.Tiles()))
	for i, tile := range w.Tiles() {
		kinds[i] = tile.Kind
	}
	encoded := compressed.EncodeKinds(kinds)
	heights := w.Heights()
	fmt.Printf("eroded for %d iterations to a mean height of %.3f, kinds compressed to %d%% (%dkb)\n",
		w.ErosionIterations, heights.Sum()/float64(len(heights.Data)), 100*len(encoded)/len(kinds), len(encoded)/1024)

	var img image.Image
	if textured {
		img = paintWorld(w, config)
	} else {
		img = terrain.RenderTiles(w.Tiles(), config.WorldWidth)
	}

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// paintWorld paints every chunk the way the client does and stitches them together.
func paintWorld(w *chunk.World, config *terrain.Config) *image.RGBA {
	size := config.TileSize
	img := image.NewRGBA(image.Rect(0, 0, config.WorldWidth*size, config.WorldHeight*size))

	texture := chunk.TextureOf(config)

	for _, c := range w.Chunks() {
		painted := chunk.Paint(c, size, texture)
		origin := c.Coord.Origin(config.ChunkWidth, config.ChunkHeight)
		at := image.Pt(origin.X*size, origin.Y*size)
		draw.Draw(img, painted.Bounds().Add(at), painted, image.Point{}, draw.Src)
	}
	return img
}
