package spatial

import "math"

// Gains are the pure per-pose gain terms, before any smoothing.
//
// Left + Right is always exactly 1: panning redistributes energy between
// the ears, it never creates or destroys it. DistanceAttenuation scales the
// overall level independently of the split.
type Gains struct {
	DistanceAttenuation float32
	Left                float32
	Right               float32
}

// ComputeGains derives the distance and panning gains for a pose.
//
// Distance attenuation follows an inverse-square falloff against the
// reference distance: 1 / (1 + (d/D0)^2). It is 1 at the source and tends
// to 0 with distance.
//
// The panning coefficient is derived from the listener's facing: with
// u = position x direction, coeff = (|u| / distance) signed by whether u
// points below or above the world up axis. This is a cheap azimuth
// approximation, not an ITD/HRTF model. Degenerate geometry (listener at
// the source, or a zero facing vector) centers the pan instead of
// propagating NaN into the audible signal.
//
// With panning disabled the coefficient is pinned to 0 and both ears
// receive half the energy.
func ComputeGains(p Pose, referenceDistance float32, panning bool) Gains {
	distance := p.Position.Length()

	ratio := float64(distance) / float64(referenceDistance)
	attenuation := float32(1.0 / (1.0 + ratio*ratio))

	coeff := float32(0)
	if panning && distance > 0 && !p.Direction.IsZero() {
		u := p.Position.Cross(p.Direction)
		coeff = (u.Length() / distance) * sign(u.Dot(Up.Neg()))
		coeff = clamp(coeff, -1, 1)
	}

	return Gains{
		DistanceAttenuation: attenuation,
		Left:                (1 + coeff) / 2,
		Right:               (1 - coeff) / 2,
	}
}

// RoomAmplitudeFactor is the amplitude scale a wall imposes:
// exp(-wallWidth * wallAttenuationFactor), in (0, 1] for positive
// parameters, and exactly 1 when the listener is in no room.
func RoomAmplitudeFactor(room *RoomParams) float32 {
	if room == nil {
		return 1
	}
	return float32(math.Exp(float64(-room.WallWidth * room.WallAttenuationFactor)))
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
