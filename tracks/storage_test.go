package tracks

import (
	"testing"

	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/buntdb"
)

func TestReadWriteCard(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	c := Entry{ID: "C1:98:CC:E4", Track: 6, Title: "Old MacDonald"}
	require.NoError(t, db.StoreCard(c))

	b, err := db.ReadCard(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, b)

	require.NoError(t, db.DeleteCard(c.ID))
	_, err = db.ReadCard(c.ID)
	assert.Equal(t, buntdb.ErrNotFound, err)
}

func TestStoreCardRejectsUnplayableTrack(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = db.StoreCard(Entry{ID: "C1:98:CC:E4", Track: 0})
	assert.ErrorIs(t, err, ErrTrackRange)
}

func TestReadAll(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	cards := []Entry{
		{ID: "B1:A0:CC:E4", Track: 2},
		{ID: "C1:9E:CC:E4", Track: 1},
		{ID: "04:11:22:33:44:55:66", Track: 42},
	}
	for _, c := range cards {
		require.NoError(t, db.StoreCard(c))
	}
	// unrelated keys are skipped
	require.NoError(t, db.instance.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("meta:version", "1", nil)
		return err
	}))

	all, err := db.ReadAll()
	require.NoError(t, err)
	assert.ElementsMatch(t, cards, all)

	r, err := NewRouter(all)
	require.NoError(t, err)
	assert.Equal(t, Number(42), r.Resolve(nfc.CardID("04:11:22:33:44:55:66")))
}
