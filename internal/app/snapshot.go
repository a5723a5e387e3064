package app

import (
	"fmt"
	"log"

	"github.com/relabs-tech/nodevis/internal/config"
	"github.com/relabs-tech/nodevis/internal/dataset"
	"github.com/relabs-tech/nodevis/internal/session"
	"github.com/relabs-tech/nodevis/internal/snapshot"
)

// RunSnapshot renders one frame of a recording to a PNG file and exits.
func RunSnapshot(dataPath string, frame int, outPath string) error {
	cfg := config.Get()

	data, err := dataset.Load(dataPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", dataPath, err)
	}

	sess := session.New(cfg, data)
	if _, err := sess.Seek(frame); err != nil {
		return err
	}

	if err := snapshot.WritePNG(outPath, sess.State(), cfg.SnapshotWidth, cfg.SnapshotHeight); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Printf("snapshot: wrote frame %d of %s to %s", sess.CurrentFrame(), dataPath, outPath)
	return nil
}
