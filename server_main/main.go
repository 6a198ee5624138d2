// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/tileworld/client"
	"github.com/SoftbearStudios/tileworld/server"
	"github.com/SoftbearStudios/tileworld/server/cloud/fs"
	"github.com/SoftbearStudios/tileworld/server_main/cloud"
	"github.com/SoftbearStudios/tileworld/terrain"
	"golang.org/x/net/netutil"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"time"
)

func main() {
	config := terrain.DefaultConfig()
	config.Bind(flag.CommandLine)

	var (
		port           int
		maxConnections int
		tps            int
		snapshotDir    string
		logPath        string
		useCloud       bool
		debugPeriod    time.Duration
	)

	flag.IntVar(&port, "port", 8192, "http service port, negative to only simulate")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.IntVar(&tps, "tps", 60, "frames per second")
	flag.StringVar(&snapshotDir, "snapshot-dir", "", "directory for terrain snapshots and status")
	flag.StringVar(&logPath, "log", "", "CSV debug log `file`")
	flag.BoolVar(&useCloud, "cloud", false, "upload snapshots to S3 using EC2 user data")
	flag.DurationVar(&debugPeriod, "debug-period", 5*time.Second, "how often to print debug info")
	flag.Parse()

	game, err := client.NewGame(config, client.GameOptions{})
	if err != nil {
		log.Fatal(err)
	}

	var c server.Cloud = server.Offline{}
	if useCloud {
		if c, err = cloud.New(); err != nil {
			// Cloud is not required for server to function, just log an error
			log.Printf("Cloud error: %v\n", err)
			c = server.Offline{}
		}
	} else if snapshotDir != "" {
		local, err := fs.NewLocalFilesystem(snapshotDir)
		if err != nil {
			log.Fatal(err)
		}
		c = server.NewFilesystemCloud(snapshotDir, local)
	}

	// Fixed camera, so input never arrives
	hub := server.NewHub(server.HubOptions{
		Game:        game,
		Input:       client.NewScriptedInput(),
		Cloud:       c,
		TPS:         tps,
		DebugPeriod: debugPeriod,
		LogPath:     logPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := hub.Run(ctx); err != nil && err != context.Canceled {
			log.Println("hub stopped:", err)
		}
		stop()
	}()

	if port < 0 {
		log.Println("simulation started")
		<-ctx.Done()
		return
	}

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)
	log.Printf("server started on http://localhost:%d\n", port)

	srv := &http.Server{}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
		log.Fatal("Serve: ", err)
	}
}
