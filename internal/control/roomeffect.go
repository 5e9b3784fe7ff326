// Package control runs the low-rate half of the pipeline: a periodic loop
// that turns pose snapshots into published gain and filter parameters.
package control

import "github.com/earshot-audio/earshot/pkg/spatial"

// RoomEffect tracks room membership across control ticks and turns the
// enter/leave edges into amplitude and cutoff changes. The cutoff target is
// moved exactly once per edge; ticks with unchanged membership touch
// nothing, so the filter setting is never churned redundantly.
type RoomEffect struct {
	openAirCutoff float32
	roomCutoff    float32

	inside          bool
	amplitudeFactor float32
	cutoff          float32
}

// NewRoomEffect creates the state machine in the Outside state.
// openAirCutoff is the cutoff restored when leaving a room; roomCutoff is
// the fallback used for rooms that do not carry their own cutoff.
func NewRoomEffect(openAirCutoff, roomCutoff float32) *RoomEffect {
	return &RoomEffect{
		openAirCutoff:   openAirCutoff,
		roomCutoff:      roomCutoff,
		amplitudeFactor: 1,
		cutoff:          openAirCutoff,
	}
}

// Update feeds one observed room membership into the state machine and
// reports whether this tick crossed an enter or leave edge (and therefore
// moved the cutoff target).
func (e *RoomEffect) Update(room *spatial.RoomParams) bool {
	switch {
	case room != nil && !e.inside:
		e.inside = true
		e.amplitudeFactor = spatial.RoomAmplitudeFactor(room)
		if room.CutoffFrequency > 0 {
			e.cutoff = room.CutoffFrequency
		} else {
			e.cutoff = e.roomCutoff
		}
		return true

	case room == nil && e.inside:
		e.inside = false
		e.amplitudeFactor = 1
		e.cutoff = e.openAirCutoff
		return true
	}
	return false
}

// Inside reports the current membership.
func (e *RoomEffect) Inside() bool {
	return e.inside
}

// AmplitudeFactor is the wall attenuation multiplied into the published
// amplitude: exp(-wallWidth*wallAttenuationFactor) inside, 1 outside.
func (e *RoomEffect) AmplitudeFactor() float32 {
	return e.amplitudeFactor
}

// Cutoff is the current low-pass cutoff target in Hz.
func (e *RoomEffect) Cutoff() float32 {
	return e.cutoff
}
