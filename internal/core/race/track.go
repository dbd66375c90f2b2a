package race

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Game constants shared by the tracker, the predictor and the policy.
const (
	CheckpointRadius = 600
	PodRadius        = 400
	// CollisionDistance is the centre distance at which two pods touch.
	CollisionDistance = 2 * PodRadius
	// TurnsToCheckpoint is the timeout budget a pod gets per checkpoint.
	TurnsToCheckpoint = 100
)

// Track is the fixed checkpoint layout of one race.
type Track struct {
	Laps        int
	Checkpoints []physics.Vector
}

// Len is the number of checkpoints in one lap.
func (t Track) Len() int { return len(t.Checkpoints) }

// Checkpoint returns checkpoint i, wrapping around the lap.
func (t Track) Checkpoint(i int) physics.Vector {
	n := len(t.Checkpoints)
	return t.Checkpoints[((i%n)+n)%n]
}

// NextIndex is the index after i, wrapping around the lap.
func (t Track) NextIndex(i int) int { return (i + 1) % len(t.Checkpoints) }

// Fingerprint identifies a layout independently of lap count.
func (t Track) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, cp := range t.Checkpoints {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(cp.X)))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(cp.Y)))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
