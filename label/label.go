package label

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/gobold"
)

// image size of 50x81.6mm (85.60 mm × 53.98 with 2mm margin on each side) at 600 DPI
// = 1181 x 1928 pix
const (
	height  = 1928
	width   = 1181
	artSize = 900
)

var font = mustParseFont()

// Label is what gets printed and stuck on a card.
type Label struct {
	Track  tracks.Number
	Title  string
	CardID nfc.CardID
	// Cover is optional art drawn at the top of the label.
	Cover image.Image
}

// Create renders the label as a PNG.
func Create(l Label, out io.Writer) error {
	if !l.Track.Valid() {
		return fmt.Errorf("cannot label track %d: %w", l.Track, tracks.ErrTrackRange)
	}
	logrus.Debugf("Rendering label for track %v", l.Track.Filename())

	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	origin := width / 2
	if l.Cover != nil {
		scaled := resize.Resize(artSize, 0, l.Cover, resize.Lanczos3)
		c.DrawImageAnchored(scaled, origin, origin, 0.5, 0.5)
	} else {
		c.SetRGB(0.1, 0.1, 0.1)
		renderLines(c, l.Track.Filename(), 320, float64(origin))
	}

	if l.Title != "" {
		c.SetRGB(0, 0, 0)
		renderLines(c, strings.ToUpper(l.Title), 112, 1300)
	}

	c.SetRGB(0.4, 0.4, 0.4)
	renderLines(c, fmt.Sprintf("%v  ·  %v", l.Track.Filename(), l.CardID), 48, 1800)

	if err := c.EncodePNG(out); err != nil {
		return fmt.Errorf("could not render PNG: %w", err)
	}
	return nil
}

// LoadCover reads a PNG or JPEG from disk.
func LoadCover(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func renderLines(c *gg.Context, s string, size, y float64) {
	c.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	lines := c.WordWrap(s, width-(width/10))
	for i, line := range lines {
		c.DrawStringAnchored(line, float64(width/2), y+float64(i)*size*1.2, 0.5, 0.5)
	}
}

func mustParseFont() *truetype.Font {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		panic(err)
	}
	return f
}
