package player

import (
	"context"
	"time"

	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/callebjorkell/rfid-jukebox/volume"
	log "github.com/sirupsen/logrus"
)

const DefaultPollInterval = 100 * time.Millisecond

// Jukebox is the main loop. Everything runs on the goroutine calling Run, one cycle at a time, so a card event is
// always fully handled before the reader is polled again.
type Jukebox struct {
	Reader     nfc.CardReader
	Knob       volume.Knob
	Tracker    *nfc.Tracker
	Controller *Controller
	Interval   time.Duration
}

// Cycle samples the volume, polls the reader once and acts on the outcome.
func (j *Jukebox) Cycle() {
	if j.Knob.Sensor != nil {
		if level, err := j.Knob.Level(); err != nil {
			log.Debugf("Could not read the volume knob: %v", err)
		} else {
			j.Controller.SetVolume(level)
		}
	}

	if e, ok := j.Tracker.Update(nfc.Poll(j.Reader)); ok {
		j.Controller.HandleEvent(e)
	}
}

// Run cycles until the context is cancelled.
func (j *Jukebox) Run(ctx context.Context) error {
	interval := j.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	log.Infof("Polling for cards every %v", interval)

	for {
		j.Cycle()

		select {
		case <-ctx.Done():
			log.Debugln("Jukebox stopped. Returning.")
			return ctx.Err()
		case <-time.After(interval):
			// just do another loop
		}
	}
}
