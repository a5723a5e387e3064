// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/nodevis/internal/config"
	"github.com/relabs-tech/nodevis/internal/dataset"
	"github.com/relabs-tech/nodevis/internal/session"
	"github.com/relabs-tech/nodevis/internal/tui"
	"github.com/relabs-tech/nodevis/internal/viewer"
)

// PlayerOptions select what RunPlayer loads and which front ends it drives.
type PlayerOptions struct {
	DataPath string      // recording to load at startup; empty starts a synthetic demo
	TUI      bool        // also drive the terminal front end
	Clock    clock.Clock // nil means the wall clock
}

// player owns the playback session. Every mutation, whether it comes from a
// browser, the terminal, or the playback ticker, happens on the run goroutine.
type player struct {
	cfg      *config.Config
	sess     *session.Session
	server   *viewer.Server
	commands chan session.Command
	clk      clock.Clock
	client   mqtt.Client   // nil when no broker is configured
	sendTUI  func(tea.Msg) // nil when the TUI is off
	dirty    bool
}

func newPlayer(cfg *config.Config, data *dataset.Dataset, clk clock.Clock) *player {
	if clk == nil {
		clk = clock.New()
	}
	p := &player{
		cfg:      cfg,
		sess:     session.New(cfg, data),
		commands: make(chan session.Command, 16),
		clk:      clk,
	}
	p.server = viewer.New(p.commands)
	p.sess.Subscribe(func() { p.dirty = true })
	return p
}

func RunPlayer(opts PlayerOptions) error {
	log.Println("starting nodevis playback engine")

	cfg := config.Get()

	var data *dataset.Dataset
	if opts.DataPath != "" {
		var err error
		data, err = dataset.Load(opts.DataPath)
		if err != nil {
			return fmt.Errorf("load %s: %w", opts.DataPath, err)
		}
		log.Printf("player: loaded %s: %d nodes, %d frames", opts.DataPath, data.NodeCount(), data.FrameCount)
	} else {
		data = dataset.Synthetic(4, 240)
		log.Println("player: no recording given, starting with synthetic demo data")
	}

	p := newPlayer(cfg, data, opts.Clock)

	// --- connect to MQTT ---
	if cfg.MQTTBroker != "" {
		mqttOpts := mqtt.NewClientOptions().
			AddBroker(cfg.MQTTBroker).
			SetClientID(cfg.MQTTClientIDPlayer)

		client := mqtt.NewClient(mqttOpts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return fmt.Errorf("MQTT connect error: %w", token.Error())
		}
		defer client.Disconnect(250)
		log.Printf("player: connected to MQTT broker at %s", cfg.MQTTBroker)
		p.client = client
	}

	serverErr := make(chan error, 1)
	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	go func() { serverErr <- p.server.Run(addr) }()

	tuiDone := make(chan error, 1)
	if opts.TUI {
		// The TUI owns the terminal, so route the standard logger to a file.
		if f, err := tea.LogToFile("nodevis.log", "nodevis"); err == nil {
			defer f.Close()
		}
		prog := tea.NewProgram(tui.New(p.commands), tea.WithAltScreen())
		p.sendTUI = prog.Send
		go func() {
			_, err := prog.Run()
			tuiDone <- err
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	return p.run(sigCh, serverErr, tuiDone)
}

func (p *player) run(stop <-chan os.Signal, serverErr, tuiDone <-chan error) error {
	interval := time.Second / time.Duration(p.cfg.PlaybackFPS)
	ticker := p.clk.Ticker(interval)
	defer ticker.Stop()

	// Push the initial state so /api/state and early clients see something.
	p.dirty = true
	p.flush()

	for {
		select {
		case cmd := <-p.commands:
			if err := cmd.Apply(p.sess); err != nil {
				log.Printf("player: command failed: %v", err)
				p.server.BroadcastError(err.Error())
				if p.sendTUI != nil {
					p.sendTUI(tui.ErrorMsg(err.Error()))
				}
			} else if cmd.Op == session.OpLoad {
				log.Printf("player: loaded %s: %d nodes, %d frames",
					cmd.Path, p.sess.Dataset().NodeCount(), p.sess.FrameCount())
				p.server.BroadcastDataset(p.sess.State())
			}
		case <-ticker.C:
			p.sess.Tick()
		case err := <-serverErr:
			return err
		case err := <-tuiDone:
			log.Println("player: terminal closed, shutting down")
			return err
		case <-stop:
			log.Println("player: shutting down")
			return nil
		}
		p.flush()
	}
}

// flush pushes the session state to every front end after a change.
func (p *player) flush() {
	if !p.dirty {
		return
	}
	p.dirty = false

	st := p.sess.State()
	p.server.Broadcast(st)
	if p.sendTUI != nil {
		p.sendTUI(tui.StateMsg(st))
	}
	if p.client != nil {
		payload, err := json.Marshal(st)
		if err != nil {
			log.Printf("player: json marshal error (state): %v", err)
			return
		}
		if token := p.client.Publish(p.cfg.TopicFrame, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("player: MQTT publish error (frame): %v", token.Error())
		}
	}
}
