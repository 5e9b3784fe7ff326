package spatial

import "sync/atomic"

// RoomParams describe the wall standing between the listener and the source
// while the listener is inside an enclosed region.
type RoomParams struct {
	// Thickness of the wall, in world units.
	WallWidth float32

	// Material attenuation per unit of wall thickness.
	WallAttenuationFactor float32

	// Low-pass cutoff the room imposes, in Hz. When zero or negative, a
	// configured room default is used instead.
	CutoffFrequency float32
}

// A Pose is one wholesale observation of the listener relative to the
// source: where the listener stands, which way it faces, and whether it is
// currently inside a room.
//
// Direction is intended to be unit length and must be non-zero; a zero
// direction makes the orientation coefficient undefined, and the gain
// computer guards against it by centering the pan.
type Pose struct {
	Position  Vec3
	Direction Vec3
	Room      *RoomParams
}

// DefaultPose is the pose the store holds at process start: listener at the
// source, facing along +X, outside any room.
func DefaultPose() Pose {
	return Pose{
		Position:  Vec3{0, 0, 0},
		Direction: Vec3{1, 0, 0},
		Room:      nil,
	}
}

// Store holds the most recently committed listener pose.
//
// The pose writer (e.g. a visual frame loop) and the control loop run on
// independent schedules, so neither side may ever stall the other. The
// store publishes each write as an immutable snapshot behind an atomic
// pointer swap: writes always commit without blocking, and a read returns
// the last committed snapshot wholesale, never a mix of old and new fields.
type Store struct {
	current atomic.Pointer[Pose]
}

// NewStore creates a store holding the default pose.
func NewStore() *Store {
	s := &Store{}
	p := DefaultPose()
	s.current.Store(&p)
	return s
}

// Write commits a new pose, replacing the previous one wholesale.
// Never blocks. Room parameters are copied, so the caller is free to reuse
// or mutate its own RoomParams afterwards.
func (s *Store) Write(p Pose) {
	if p.Room != nil {
		room := *p.Room
		p.Room = &room
	}
	s.current.Store(&p)
}

// Read returns the most recently committed pose. Never blocks; concurrent
// writes are invisible until committed, so the returned snapshot is always
// internally consistent (possibly stale).
func (s *Store) Read() Pose {
	return *s.current.Load()
}
