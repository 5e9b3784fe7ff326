package control

import (
	"context"
	"log/slog"
	"time"

	"github.com/earshot-audio/earshot/internal/params"
	"github.com/earshot-audio/earshot/pkg/spatial"
)

// Config fixes the controller's behavior at startup.
type Config struct {
	// How often the loop recomputes parameters. Reference cadence 5ms.
	Interval time.Duration

	// Reference distance D0 for the attenuation falloff.
	ReferenceDistance float32

	// Whether orientation panning is applied at all. When false every tick
	// publishes a centered split and only the scalar amplitude varies.
	Panning bool

	// Cutoff defaults handed to the RoomEffect state machine.
	OpenAirCutoff float32
	RoomCutoff    float32
}

// Controller is the control domain: once per interval it reads the pose
// store, derives gains, advances the room state machine, and publishes one
// consistent GainParameters set for the render path. It is the only writer
// of the publisher and never blocks the store's writer.
type Controller struct {
	logger    *slog.Logger
	cfg       Config
	store     *spatial.Store
	publisher *params.Publisher
	room      *RoomEffect
}

// NewController wires a controller between a pose store and a parameter
// publisher.
func NewController(
	store *spatial.Store,
	publisher *params.Publisher,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger:    logger.With("component", "controller"),
		cfg:       cfg,
		store:     store,
		publisher: publisher,
		room:      NewRoomEffect(cfg.OpenAirCutoff, cfg.RoomCutoff),
	}
}

// Run ticks the controller until the context is canceled.
func (c *Controller) Run(ctx context.Context) {
	c.logger.Debug(
		"control loop starting",
		"interval", c.cfg.Interval,
		"referenceDistance", c.cfg.ReferenceDistance,
		"panning", c.cfg.Panning,
	)

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("control loop stopped")
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick runs one control cycle: snapshot, compute, publish.
func (c *Controller) tick() {
	pose := c.store.Read()
	gains := spatial.ComputeGains(pose, c.cfg.ReferenceDistance, c.cfg.Panning)

	if c.room.Update(pose.Room) {
		c.logger.Debug(
			"room membership edge",
			"inside", c.room.Inside(),
			"amplitudeFactor", c.room.AmplitudeFactor(),
			"cutoff", c.room.Cutoff(),
		)
	}

	c.publisher.Publish(params.GainParameters{
		Amplitude:    gains.DistanceAttenuation * c.room.AmplitudeFactor(),
		LeftGain:     gains.Left,
		RightGain:    gains.Right,
		FilterCutoff: c.room.Cutoff(),
	})
}
