package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/nodevis/internal/config"
	"github.com/relabs-tech/nodevis/internal/session"
)

// RunConsole subscribes to the frame topic and pretty-prints every snapshot
// the player publishes. Useful for watching playback from another machine.
func RunConsole() error {
	cfg := config.Get()
	broker := cfg.MQTTBroker
	if broker == "" {
		broker = "tcp://localhost:1883"
		log.Printf("console: MQTT_BROKER not set, trying %s", broker)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", broker)

	frameToken := client.Subscribe(cfg.TopicFrame, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var st session.State
		if err := json.Unmarshal(msg.Payload(), &st); err != nil {
			log.Printf("console: frame unmarshal error: %v", err)
			return
		}

		status := "paused "
		if st.Playing {
			status = "playing"
		}
		fmt.Printf("[FRAME] %4d/%-4d  %s  file=%s\n", st.Frame, st.FrameCount, status, st.File)
		for _, n := range st.Nodes {
			q := n.Rotation
			fmt.Printf("[NODE%s] w=%+7.4f x=%+7.4f y=%+7.4f z=%+7.4f\n",
				n.Label, q[0], q[1], q[2], q[3])
		}
	})
	frameToken.Wait()
	if frameToken.Error() != nil {
		return frameToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicFrame)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
