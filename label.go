package main

import (
	"context"
	"fmt"
	"os"

	"github.com/callebjorkell/rfid-jukebox/config"
	"github.com/callebjorkell/rfid-jukebox/label"
	log "github.com/sirupsen/logrus"
)

func createLabel(ctx context.Context, cfg *config.Config, cardId, cover, out string) {
	id := cardOrRead(ctx, cfg, cardId)

	router, err := loadRouter(cfg)
	if err != nil {
		log.Fatal(err)
	}
	e, ok := router.Lookup(id)
	if !ok {
		log.Fatalf("Card %v is not mapped to a track", id)
	}

	l := label.Label{Track: e.Track, Title: e.Title, CardID: id}
	if cover != "" {
		if l.Cover, err = label.LoadCover(cover); err != nil {
			log.Fatal(err)
		}
	}

	if out == "" {
		out = fmt.Sprintf("%v.png", e.Track.Filename())
	}
	log.Infof("Generating label for %v into %v", id, out)

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := label.Create(l, f); err != nil {
		log.Fatal(err)
	}
}
