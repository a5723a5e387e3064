package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodevis.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30, cfg.PlaybackFPS)
	assert.Equal(t, 0.2, cfg.NodeSpacing)
	assert.Equal(t, "", cfg.MQTTBroker)
	assert.Equal(t, "nodevis/frame", cfg.TopicFrame)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
# playback tuning
PLAYBACK_FPS = 60
NODE_SPACING = 0.5

MQTT_BROKER = tcp://localhost:1883
CAMERA_ZOOM_FACTOR=1.25
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.PlaybackFPS)
	assert.Equal(t, 0.5, cfg.NodeSpacing)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, 1.25, cfg.CameraZoomFactor)

	// Untouched keys keep their defaults.
	assert.Equal(t, 8080, cfg.WebServerPort)
	assert.Equal(t, 0.01, cfg.CameraRotateSpeed)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.conf"))
	assert.Error(t, err)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "PLAYBACK_FPS = 30\nNODE_COLOR = red\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "NODE_COLOR")
}

func TestLoadBadNumber(t *testing.T) {
	path := writeConfig(t, "PLAYBACK_FPS = fast\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLAYBACK_FPS")
}

func TestLoadMalformedLine(t *testing.T) {
	path := writeConfig(t, "PLAYBACK_FPS\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	for name, content := range map[string]string{
		"fps zero":      "PLAYBACK_FPS = 0\n",
		"fps huge":      "PLAYBACK_FPS = 1000\n",
		"spacing":       "NODE_SPACING = -0.2\n",
		"zoom factor":   "CAMERA_ZOOM_FACTOR = 0.9\n",
		"min distance":  "CAMERA_MIN_DISTANCE = 0\n",
		"port":          "WEB_SERVER_PORT = 70000\n",
		"snapshot tiny": "SNAPSHOT_WIDTH = 4\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestInitGlobal(t *testing.T) {
	require.NoError(t, InitGlobal(""))
	cfg := Get()
	require.NotNil(t, cfg)
	assert.Equal(t, 30, cfg.PlaybackFPS)

	// A second init is a no-op, not a reload.
	require.NoError(t, InitGlobal("/nonexistent/path"))
	assert.Same(t, cfg, Get())
}
