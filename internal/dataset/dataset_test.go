package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/nodevis/internal/orientation"
)

func TestSlotLookup(t *testing.T) {
	d := &Dataset{Series: []SensorSeries{{Node: 2}, {Node: 5}, {Node: 7}}}

	slot, ok := d.Slot(5)
	assert.True(t, ok)
	assert.Equal(t, 1, slot)

	_, ok = d.Slot(3)
	assert.False(t, ok)
}

func TestSyntheticShape(t *testing.T) {
	d := Synthetic(3, 40)

	assert.Equal(t, 3, d.NodeCount())
	assert.Equal(t, 40, d.FrameCount)
	for _, s := range d.Series {
		assert.Len(t, s.Rotations, 40)
		for _, q := range s.Rotations {
			assert.InDelta(t, 1.0, orientation.Norm(q), 1e-12)
		}
	}

	// Frame zero is always the identity pose.
	assert.True(t, orientation.AlmostEqual(d.Rotation(0, 0), orientation.Identity(), 1e-12))
	assert.True(t, orientation.AlmostEqual(d.Rotation(2, 0), orientation.Identity(), 1e-12))
}

func TestSyntheticClampsNodeCount(t *testing.T) {
	assert.Equal(t, MaxNodes, Synthetic(50, 10).NodeCount())
	assert.Equal(t, 1, Synthetic(0, 10).NodeCount())
}
