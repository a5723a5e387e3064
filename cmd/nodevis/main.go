// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/nodevis/internal/app"
	"github.com/relabs-tech/nodevis/internal/config"
	"github.com/relabs-tech/nodevis/internal/shellext"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	tuiMode := flag.Bool("tui", false, "drive playback from the terminal as well")
	snapshotPath := flag.String("snapshot", "", "render one frame to this PNG file and exit")
	frame := flag.Int("frame", 0, "frame to render with -snapshot")
	installMenu := flag.Bool("install-context-menu", false, "register the file manager entry and exit")
	uninstallMenu := flag.Bool("uninstall-context-menu", false, "remove the file manager entry and exit")
	flag.Parse()

	if *installMenu {
		if err := shellext.Install(); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}
	if *uninstallMenu {
		if err := shellext.Uninstall(); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dataPath := flag.Arg(0)

	if *snapshotPath != "" {
		if dataPath == "" {
			log.Fatal("snapshot mode needs a recording: nodevis -snapshot out.png <data-file>")
		}
		if err := app.RunSnapshot(dataPath, *frame, *snapshotPath); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}

	if err := app.RunPlayer(app.PlayerOptions{DataPath: dataPath, TUI: *tuiMode}); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
