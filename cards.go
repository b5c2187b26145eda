package main

import (
	"context"
	"fmt"

	"github.com/callebjorkell/rfid-jukebox/config"
	"github.com/callebjorkell/rfid-jukebox/tracks"
	log "github.com/sirupsen/logrus"
)

func openDB(cfg *config.Config) *tracks.DB {
	db, err := tracks.Open(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	return db
}

func addCard(ctx context.Context, cfg *config.Config, track int, cardId, title string) {
	id := cardOrRead(ctx, cfg, cardId)

	entries, err := cfg.Entries()
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range entries {
		if e.ID == id {
			log.Fatalf("Card %v is already mapped to track %d in %v", id, e.Track, *configFile)
		}
	}

	db := openDB(cfg)
	defer db.Close()

	e := tracks.Entry{ID: id, Track: tracks.Number(track), Title: title}
	if err := db.StoreCard(e); err != nil {
		log.Fatal(err)
	}
	log.Infof("Card %v now plays %v", id, e.Track.Path())
}

func removeCard(ctx context.Context, cfg *config.Config, cardId string) {
	id := cardOrRead(ctx, cfg, cardId)

	db := openDB(cfg)
	defer db.Close()

	if err := db.DeleteCard(id); err != nil {
		log.Warnf("Could not remove card %v: %v", id, err.Error())
	}
}

func listCards(cfg *config.Config) {
	router, err := loadRouter(cfg)
	if err != nil {
		log.Fatal(err)
	}

	entries := router.Entries()
	if len(entries) == 0 {
		fmt.Println("No cards found...")
		return
	}
	fmt.Println("                      ID │ Track │ Title")
	fmt.Println("─────────────────────────┼───────┼─────────────────────────────────────────")
	for _, e := range entries {
		title := e.Title
		if len(title) > 40 {
			title = fmt.Sprintf("%.39v…", title)
		}
		fmt.Printf("%24v │  %v │ %v\n", e.ID, e.Track.Filename(), title)
	}
}
