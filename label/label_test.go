package label

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name  string
		label Label
	}{
		{"plain", Label{Track: 6, CardID: "C1:98:CC:E4"}},
		{"with title", Label{Track: 1, Title: "Twinkle twinkle little star", CardID: "C1:9E:CC:E4"}},
		{"with cover", Label{Track: 2, Title: "Cover", CardID: "B1:A0:CC:E4", Cover: solid(200, 200)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Create(tc.label, &buf))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, width, height), img.Bounds())
		})
	}
}

func TestCreateRejectsUnknownTrack(t *testing.T) {
	var buf bytes.Buffer
	err := Create(Label{Track: tracks.Unknown}, &buf)
	assert.ErrorIs(t, err, tracks.ErrTrackRange)
	assert.Zero(t, buf.Len())
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x32, G: 0xCD, B: 0x32, A: 0xFF})
		}
	}
	return img
}
