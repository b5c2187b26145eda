package player

import (
	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/callebjorkell/rfid-jukebox/ui"
	log "github.com/sirupsen/logrus"
)

// Audio is the one-way command surface of the audio module.
type Audio interface {
	PlayTrack(n tracks.Number)
	Pause()
	SetVolume(level int)
}

type Router interface {
	Resolve(id nfc.CardID) tracks.Number
}

const volumeUnset = -1

// Controller turns card events and volume levels into audio commands. It owns the belief of whether something
// is playing, since the audio module can't be asked.
type Controller struct {
	audio  Audio
	router Router
	led    ui.StatusLed

	playing    bool
	lastVolume int
}

func NewController(audio Audio, router Router, led ui.StatusLed) *Controller {
	if led == nil {
		led = noLed{}
	}
	return &Controller{
		audio:      audio,
		router:     router,
		led:        led,
		lastVolume: volumeUnset,
	}
}

func (c *Controller) HandleEvent(e nfc.CardEvent) {
	switch e.State {
	case nfc.Arrived, nfc.Changed:
		c.cardPresented(e.CardID)
	case nfc.Removed:
		log.Infoln("Card removed")
		c.pause()
		c.led.Off()
	}
}

func (c *Controller) cardPresented(id nfc.CardID) {
	log.Infof("Card detected: %v", id)

	track := c.router.Resolve(id)
	if track == tracks.Unknown {
		log.Warnf("No track mapped for card %v", id)
		c.pause()
		c.led.Red()
		return
	}

	// a new card always starts over, even when something else was playing
	log.Infof("Playing track %v", track.Filename())
	c.audio.PlayTrack(track)
	c.playing = true
	c.led.Green()
}

func (c *Controller) pause() {
	if c.playing {
		c.audio.Pause()
	}
	c.playing = false
}

// SetVolume forwards the level to the audio module, but only when it has changed since the last time.
func (c *Controller) SetVolume(level int) {
	if level == c.lastVolume {
		return
	}
	log.Debugf("Volume: %d", level)
	c.audio.SetVolume(level)
	c.lastVolume = level
}

func (c *Controller) Playing() bool {
	return c.playing
}

// Volume returns the last level sent, and false if none has been sent yet.
func (c *Controller) Volume() (int, bool) {
	return c.lastVolume, c.lastVolume != volumeUnset
}

type noLed struct{}

func (noLed) Green() {}
func (noLed) Red()   {}
func (noLed) Blue()  {}
func (noLed) Off()   {}
