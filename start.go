package main

import (
	"context"
	"io"

	"github.com/callebjorkell/rfid-jukebox/config"
	"github.com/callebjorkell/rfid-jukebox/dfplayer"
	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/callebjorkell/rfid-jukebox/player"
	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/callebjorkell/rfid-jukebox/ui"
	"github.com/callebjorkell/rfid-jukebox/volume"
	log "github.com/sirupsen/logrus"
)

func startJukebox(ctx context.Context, cfg *config.Config) {
	// the card table has to be complete before the first poll
	router, err := loadRouter(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Loaded %d cards", router.Len())

	led, err := ui.GetStatusLED(cfg.Led)
	if err != nil {
		log.Fatal(err)
	}

	reader, err := nfc.CreateReader(cfg.Reader)
	if err != nil {
		log.Fatal(err)
	}
	defer reader.Close()

	sensor, sensorCloser, err := volume.OpenSensor(cfg.Volume)
	if err != nil {
		log.Fatal(err)
	}
	defer sensorCloser.Close()

	audio, audioCloser := openAudio(cfg)
	defer audioCloser.Close()
	audio.Initialize()
	showAudioState(audio.Ready(), led)

	j := player.Jukebox{
		Reader: reader,
		Knob: volume.Knob{
			Sensor: sensor,
			RawMax: volume.RawMax,
			Min:    cfg.Volume.Min,
			Max:    cfg.Volume.Max,
		},
		Tracker:    nfc.NewTracker(cfg.RemovalThreshold),
		Controller: player.NewController(audio, router, led),
		Interval:   cfg.PollInterval(),
	}
	j.Run(ctx)
	led.Off()
}

// showAudioState reports an audio module that never became ready. Cards are still read and routed, and playback
// is attempted anyway.
func showAudioState(ready bool, led ui.StatusLed) {
	if !ready {
		log.Warn("DFPlayer not ready. RFID will still work.")
		led.Blue()
		return
	}
	led.Off()
}

func openAudio(cfg *config.Config) (*dfplayer.Player, io.Closer) {
	if *noAudio {
		return dfplayer.Discard(), io.NopCloser(nil)
	}
	p, closer, err := dfplayer.Open(cfg.Audio, dfplayer.DefaultDelays)
	if err != nil {
		// not fatal: without the module nothing is heard, but the rest keeps working
		log.Warnf("Could not open the DFPlayer: %v", err)
		return dfplayer.Discard(), io.NopCloser(nil)
	}
	return p, closer
}

// loadRouter merges the cards from the config file with the ones in the database. A card mapped in both places
// is refused rather than letting one of them win.
func loadRouter(cfg *config.Config) (*tracks.Router, error) {
	entries, err := cfg.Entries()
	if err != nil {
		return nil, err
	}

	db, err := tracks.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	stored, err := db.ReadAll()
	if err != nil {
		return nil, err
	}
	return tracks.NewRouter(append(entries, stored...))
}
