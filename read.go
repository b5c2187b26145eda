package main

import (
	"context"
	"fmt"
	"time"

	"github.com/callebjorkell/rfid-jukebox/config"
	"github.com/callebjorkell/rfid-jukebox/nfc"
	log "github.com/sirupsen/logrus"
)

const readTimeout = 30 * time.Second

// readSingleCard waits for a card to be put on the reader and returns its id once it has been seen a few times
// in a row.
func readSingleCard(ctx context.Context, cfg *config.Config) (nfc.CardID, error) {
	reader, err := nfc.CreateReader(cfg.Reader)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	log.Infoln("Put a card on the reader...")
	var last nfc.CardID
	seen := 0
	for {
		if r := nfc.Poll(reader); r.Detected {
			if r.Card == last {
				seen++
			} else {
				last, seen = r.Card, 1
			}
			if seen >= 3 {
				return last, nil
			}
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("no card read: %w", ctx.Err())
		case <-time.After(cfg.PollInterval()):
		}
	}
}

// cardOrRead returns the given card id in canonical form, or reads one from the reader if none was given.
func cardOrRead(ctx context.Context, cfg *config.Config, given string) nfc.CardID {
	if given != "" {
		id, err := nfc.ParseCardID(given)
		if err != nil {
			log.Fatal(err)
		}
		return id
	}
	id, err := readSingleCard(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	return id
}
