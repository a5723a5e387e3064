package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values. Every key is optional;
// Default supplies the values a missing file or key falls back to.
type Config struct {
	// MQTT. An empty broker disables publishing entirely.
	MQTTBroker          string
	MQTTClientIDPlayer  string
	MQTTClientIDConsole string

	// Topics
	TopicFrame string

	// Playback
	PlaybackFPS int

	// Scene
	NodeSpacing float64

	// Camera interaction
	CameraRotateSpeed   float64 // radians per pixel of drag
	CameraPanSpeed      float64 // world units per pixel per unit distance
	CameraZoomFactor    float64 // distance divisor per scroll notch
	CameraDragZoomSpeed float64 // exponential rate per pixel of drag zoom
	CameraMinDistance   float64 // closest eye approach to the focal point

	// Web Server
	WebServerPort int

	// Snapshot
	SnapshotWidth  int
	SnapshotHeight int
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly
//     and must go through Get(), which takes the read lock.
//   - configOnce: ensures InitGlobal() only runs once, even if called
//     multiple times.
//   - configMu: RWMutex protecting concurrent access; write lock for
//     initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used when no file (or key) is given.
func Default() *Config {
	return &Config{
		MQTTBroker:          "",
		MQTTClientIDPlayer:  "nodevis-player",
		MQTTClientIDConsole: "nodevis-console",
		TopicFrame:          "nodevis/frame",
		PlaybackFPS:         30,
		NodeSpacing:         0.2,
		CameraRotateSpeed:   0.01,
		CameraPanSpeed:      0.002,
		CameraZoomFactor:    1.1,
		CameraDragZoomSpeed: 0.005,
		CameraMinDistance:   0.01,
		WebServerPort:       8080,
		SnapshotWidth:       1000,
		SnapshotHeight:      800,
	}
}

// Load reads the configuration file and returns a Config struct. An empty
// path skips the file and returns the defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, cfg.validate()
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PLAYER":
		c.MQTTClientIDPlayer = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value

	// Topics
	case "TOPIC_FRAME":
		c.TopicFrame = value

	// Playback
	case "PLAYBACK_FPS":
		fps, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid PLAYBACK_FPS %q: %w", value, err)
		}
		c.PlaybackFPS = fps

	// Scene
	case "NODE_SPACING":
		spacing, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid NODE_SPACING %q: %w", value, err)
		}
		c.NodeSpacing = spacing

	// Camera
	case "CAMERA_ROTATE_SPEED":
		speed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid CAMERA_ROTATE_SPEED %q: %w", value, err)
		}
		c.CameraRotateSpeed = speed
	case "CAMERA_PAN_SPEED":
		speed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid CAMERA_PAN_SPEED %q: %w", value, err)
		}
		c.CameraPanSpeed = speed
	case "CAMERA_ZOOM_FACTOR":
		factor, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid CAMERA_ZOOM_FACTOR %q: %w", value, err)
		}
		c.CameraZoomFactor = factor
	case "CAMERA_DRAG_ZOOM_SPEED":
		speed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid CAMERA_DRAG_ZOOM_SPEED %q: %w", value, err)
		}
		c.CameraDragZoomSpeed = speed
	case "CAMERA_MIN_DISTANCE":
		dist, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid CAMERA_MIN_DISTANCE %q: %w", value, err)
		}
		c.CameraMinDistance = dist

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Snapshot
	case "SNAPSHOT_WIDTH":
		w, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SNAPSHOT_WIDTH %q: %w", value, err)
		}
		c.SnapshotWidth = w
	case "SNAPSHOT_HEIGHT":
		h, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SNAPSHOT_HEIGHT %q: %w", value, err)
		}
		c.SnapshotHeight = h

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all values are inside their working ranges.
func (c *Config) validate() error {
	if c.PlaybackFPS < 1 || c.PlaybackFPS > 240 {
		return fmt.Errorf("PLAYBACK_FPS must be 1-240, got %d", c.PlaybackFPS)
	}
	if c.NodeSpacing <= 0 {
		return fmt.Errorf("NODE_SPACING must be positive, got %g", c.NodeSpacing)
	}
	if c.CameraRotateSpeed <= 0 {
		return fmt.Errorf("CAMERA_ROTATE_SPEED must be positive, got %g", c.CameraRotateSpeed)
	}
	if c.CameraPanSpeed <= 0 {
		return fmt.Errorf("CAMERA_PAN_SPEED must be positive, got %g", c.CameraPanSpeed)
	}
	if c.CameraZoomFactor <= 1 {
		return fmt.Errorf("CAMERA_ZOOM_FACTOR must be greater than 1, got %g", c.CameraZoomFactor)
	}
	if c.CameraDragZoomSpeed <= 0 {
		return fmt.Errorf("CAMERA_DRAG_ZOOM_SPEED must be positive, got %g", c.CameraDragZoomSpeed)
	}
	if c.CameraMinDistance <= 0 {
		return fmt.Errorf("CAMERA_MIN_DISTANCE must be positive, got %g", c.CameraMinDistance)
	}
	if c.WebServerPort < 1 || c.WebServerPort > 65535 {
		return fmt.Errorf("WEB_SERVER_PORT must be 1-65535, got %d", c.WebServerPort)
	}
	if c.SnapshotWidth < 16 {
		return fmt.Errorf("SNAPSHOT_WIDTH must be at least 16, got %d", c.SnapshotWidth)
	}
	if c.SnapshotHeight < 16 {
		return fmt.Errorf("SNAPSHOT_HEIGHT must be at least 16, got %d", c.SnapshotHeight)
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses
// sync.Once so only the first call loads; later calls are no-ops.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
