package tracks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/tidwall/buntdb"
)

const cardPrefix = "card:"

// DB holds cards enrolled from the command line, on top of the ones in the config file.
type DB struct {
	instance *buntdb.DB
}

func Open(path string) (*DB, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open card database %v: %w", path, err)
	}
	return &DB{instance: db}, nil
}

func (db *DB) Close() error {
	return db.instance.Close()
}

func (db *DB) StoreCard(e Entry) error {
	if !e.Track.Valid() {
		return fmt.Errorf("card %v: %w, got %d", e.ID, ErrTrackRange, e.Track)
	}
	return db.instance.Update(func(tx *buntdb.Tx) error {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(getCardKey(e.ID), string(data), nil)
		return err
	})
}

func (db *DB) ReadCard(id nfc.CardID) (Entry, error) {
	var e Entry
	err := db.instance.View(func(tx *buntdb.Tx) error {
		s, err := tx.Get(getCardKey(id))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(s), &e)
	})
	return e, err
}

func (db *DB) DeleteCard(id nfc.CardID) error {
	return db.instance.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(getCardKey(id))
		return err
	})
}

func (db *DB) ReadAll() ([]Entry, error) {
	var entries []Entry
	err := db.instance.View(func(tx *buntdb.Tx) error {
		var decodeErr error
		err := tx.Ascend("", func(key, value string) bool {
			if !strings.HasPrefix(key, cardPrefix) {
				return true
			}
			var e Entry
			if decodeErr = json.Unmarshal([]byte(value), &e); decodeErr != nil {
				decodeErr = fmt.Errorf("decode %v: %w", key, decodeErr)
				return false
			}
			entries = append(entries, e)
			return true
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	return entries, err
}

func getCardKey(id nfc.CardID) string {
	return cardPrefix + id.String()
}
