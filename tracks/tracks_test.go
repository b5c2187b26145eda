package tracks

import (
	"testing"

	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name      string
		track     Number
		assertion func(t *testing.T, n Number)
	}{
		{
			"single digit",
			1,
			func(t *testing.T, n Number) {
				assert.Equal(t, "0001", n.Filename())
				assert.Equal(t, "/0001.mp3", n.Path())
				assert.True(t, n.Valid())
			},
		},
		{
			"card six",
			6,
			func(t *testing.T, n Number) {
				assert.Equal(t, "0006", n.Filename())
			},
		},
		{
			"three digits",
			123,
			func(t *testing.T, n Number) {
				assert.Equal(t, "/0123.mp3", n.Path())
			},
		},
		{
			"largest",
			9999,
			func(t *testing.T, n Number) {
				assert.Equal(t, "9999", n.Filename())
				assert.True(t, n.Valid())
			},
		},
		{
			"unknown",
			Unknown,
			func(t *testing.T, n Number) {
				assert.False(t, n.Valid())
			},
		},
		{
			"too large",
			10000,
			func(t *testing.T, n Number) {
				assert.False(t, n.Valid())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.assertion(t, tc.track)
		})
	}
}

func TestResolve(t *testing.T) {
	r, err := NewRouter([]Entry{
		{ID: "C1:9E:CC:E4", Track: 1},
		{ID: "B1:A0:CC:E4", Track: 2},
		{ID: "C1:98:CC:E4", Track: 6},
	})
	require.NoError(t, err)

	assert.Equal(t, Number(6), r.Resolve("C1:98:CC:E4"))
	assert.Equal(t, Number(1), r.Resolve("C1:9E:CC:E4"))
	assert.Equal(t, Unknown, r.Resolve("00:00:00:00"))
	assert.Equal(t, Unknown, r.Resolve(""))
	assert.Equal(t, 3, r.Len())
}

func TestResolveEmptyTable(t *testing.T) {
	r, err := NewRouter(nil)
	require.NoError(t, err)

	assert.Equal(t, Unknown, r.Resolve(nfc.EncodeCardID([]byte{0, 0, 0, 0})))
}

func TestNewRouterRejectsDuplicates(t *testing.T) {
	_, err := NewRouter([]Entry{
		{ID: "C1:98:CC:E4", Track: 6},
		{ID: "C1:98:CC:E4", Track: 7},
	})
	assert.ErrorIs(t, err, ErrDuplicateCard)
}

func TestNewRouterRejectsOutOfRange(t *testing.T) {
	for _, n := range []Number{0, -1, 10000} {
		_, err := NewRouter([]Entry{{ID: "C1:98:CC:E4", Track: n}})
		assert.ErrorIs(t, err, ErrTrackRange, "track %d", n)
	}
}

func TestEntriesSorted(t *testing.T) {
	r, err := NewRouter([]Entry{
		{ID: "F1:94:CC:E4", Track: 5},
		{ID: "91:A2:CC:E4", Track: 4},
		{ID: "E1:96:CC:E4", Track: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{ID: "91:A2:CC:E4", Track: 4},
		{ID: "E1:96:CC:E4", Track: 4},
		{ID: "F1:94:CC:E4", Track: 5},
	}, r.Entries())
}
