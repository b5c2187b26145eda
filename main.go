package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/callebjorkell/rfid-jukebox/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("jukebox", "Plays a track from a DFPlayer whenever an RFID card is put on the reader, and pauses when it's taken away.")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Path to the configuration file.").Default("jukebox.toml").String()
	database   = app.Flag("db", "Path to the card database. Overrides the config file.").String()

	start   = app.Command("start", "Start the jukebox and start listening for cards.")
	noAudio = start.Flag("no-audio", "Run without the DFPlayer attached, logging the commands instead.").Bool()

	read = app.Command("read", "Wait for a card and print its ID.")

	cards          = app.Command("cards", "Manage the cards enrolled in the database.")
	cardsAdd       = cards.Command("add", "Map a card to a track.")
	cardsAddTrack  = cardsAdd.Arg("track", "The track number the card should play.").Required().Int()
	cardsAddCardId = cardsAdd.Flag("cardId", "Manually specify the card id to be used.").String()
	cardsAddTitle  = cardsAdd.Flag("title", "A title for the track, used on labels.").String()
	cardsRemove    = cards.Command("remove", "Remove a card from the database.")
	cardsRemoveId  = cardsRemove.Flag("cardId", "Manually specify the card id to be removed.").String()
	cardsList      = cards.Command("list", "List all known cards, from both the config file and the database.")

	labelCmd    = app.Command("label", "Create a printable label for a card.")
	labelCardId = labelCmd.Flag("cardId", "Manually specify the card that the label should be printed for.").String()
	labelCover  = labelCmd.Flag("cover", "Image to put on the label.").ExistingFile()
	labelOut    = labelCmd.Flag("out", "File to write the PNG to. Defaults to <track>.png.").String()

	sample = app.Command("sample-config", "Print an example configuration file.")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if command == sample.FullCommand() {
		fmt.Print(config.Sample())
		return
	}

	cfg, exists, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if !exists {
		log.Warnf("No config file at %v, using defaults", *configFile)
	}
	if *database != "" {
		cfg.Database = *database
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		log.Infoln("Shutting down")
		cancel()
	}()

	switch command {
	case start.FullCommand():
		startJukebox(ctx, cfg)
	case read.FullCommand():
		id, err := readSingleCard(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(id)
	case cardsAdd.FullCommand():
		addCard(ctx, cfg, *cardsAddTrack, *cardsAddCardId, *cardsAddTitle)
	case cardsRemove.FullCommand():
		removeCard(ctx, cfg, *cardsRemoveId)
	case cardsList.FullCommand():
		listCards(cfg)
	case labelCmd.FullCommand():
		createLabel(ctx, cfg, *labelCardId, *labelCover, *labelOut)
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
}
