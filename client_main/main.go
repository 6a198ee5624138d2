// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/tileworld/client"
	"github.com/SoftbearStudios/tileworld/server"
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/hajimehoshi/ebiten/v2"
	"log"
	"net/http"
)

func main() {
	config := terrain.DefaultConfig()
	config.Bind(flag.CommandLine)

	var debugPort int
	flag.IntVar(&debugPort, "debug-port", 0, "serve status and the chunk feed on this port, 0 to disable")
	flag.Parse()

	game, err := client.NewGame(config, client.GameOptions{})
	if err != nil {
		log.Fatal(err)
	}
	ebitenGame := client.NewEbitenGame(game)

	if debugPort > 0 {
		// The ebiten loop steps the game, the hub only serves what is published.
		hub := server.NewHub(server.HubOptions{Game: game})
		ebitenGame.OnFrame = hub.Publish

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			_ = hub.Run(ctx)
		}()

		mux := http.NewServeMux()
		mux.HandleFunc("/", hub.ServeIndex)
		mux.HandleFunc("/ws", hub.ServeSocket)
		go func() {
			log.Println(http.ListenAndServe(fmt.Sprint("localhost:", debugPort), mux))
		}()
	}

	ebiten.SetWindowTitle(fmt.Sprintf("tileworld (seed %d)", config.Seed))
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(ebitenGame); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
