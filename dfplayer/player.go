// Package dfplayer drives a DFPlayer PRO (DF1201S) over its UART using AT commands.
//
// The module never acknowledges anything in a way that is worth parsing, so every command is fire-and-forget.
// Whether audio is actually playing is a belief held by the caller, not something this package can tell.
package dfplayer

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/sirupsen/logrus"
)

const (
	MinVolume     = 0
	MaxVolume     = 30
	InitialVolume = 15

	terminator = "\r\n"
)

// Delays are the settle times the module needs. They are hard floors: at 115200 baud the module happily accepts
// the bytes, but drops commands that arrive while it is still busy with the previous one.
type Delays struct {
	// Boot is waited once after the port has been opened.
	Boot time.Duration
	// Command is waited after every single command.
	Command time.Duration
	// Mode is waited after switching to music mode.
	Mode time.Duration
	// Track is waited after starting a file, before the play mode is restored.
	Track time.Duration
}

var DefaultDelays = Delays{
	Boot:    time.Second,
	Command: 50 * time.Millisecond,
	Mode:    500 * time.Millisecond,
	Track:   100 * time.Millisecond,
}

// Player is not safe for concurrent use. The jukebox only ever drives it from its poll loop.
type Player struct {
	out    io.Writer
	delays Delays
	sleep  func(time.Duration)

	// detached players have no module behind them and never become ready.
	detached bool
	ready    bool
	// failed is set when a write fails, so that Initialize can tell whether the module got its setup.
	failed bool
}

func New(out io.Writer, delays Delays) *Player {
	return &Player{
		out:    out,
		delays: delays,
		sleep:  time.Sleep,
	}
}

// Initialize puts the module in music mode with single track looping and a sane volume.
func (p *Player) Initialize() {
	logrus.Infoln("Initializing DFPlayer")
	p.failed = false

	p.command("AT+FUNCTION=MUSIC")
	p.sleep(p.delays.Mode)
	p.setLoop()
	p.setVolume(InitialVolume)

	p.ready = !p.detached && !p.failed
	if p.ready {
		logrus.Infoln("DFPlayer ready")
	}
}

// Ready reports whether Initialize went through without write errors on an attached module. It says nothing
// about the module actually listening.
func (p *Player) Ready() bool {
	return p.ready
}

// SetVolume clamps the level to what the module accepts and sends it.
func (p *Player) SetVolume(level int) {
	p.setVolume(level)
}

// PlayTrack starts the given track from the root of the module's storage. Unknown is ignored.
func (p *Player) PlayTrack(n tracks.Number) {
	if n == tracks.Unknown {
		return
	}
	p.command("AT+PLAYFILE=" + n.Path())

	// The module forgets the play mode whenever a file is started, so it has to be restored every time.
	p.sleep(p.delays.Track)
	p.setLoop()
}

// PlayFile plays a file by its path on the module's storage.
func (p *Player) PlayFile(path string) {
	p.command("AT+PLAYFILE=" + path)
}

// Pause toggles between play and pause. The module can't be asked which one it is in, so only call this when
// something is believed to be playing.
func (p *Player) Pause() {
	p.command("AT+PLAY=PP")
}

func (p *Player) Stop() {
	p.Pause()
}

func (p *Player) setVolume(level int) {
	if level < MinVolume {
		level = MinVolume
	}
	if level > MaxVolume {
		level = MaxVolume
	}
	p.command("AT+VOL=" + strconv.Itoa(level))
}

// setLoop makes the module repeat the current track forever.
func (p *Player) setLoop() {
	p.command("AT+PLAYMODE=1")
}

func (p *Player) command(cmd string) {
	logrus.Debugf("DFPlayer <- %v", cmd)
	if _, err := fmt.Fprint(p.out, cmd+terminator); err != nil {
		p.failed = true
		logrus.Warnf("Could not send %q to the DFPlayer: %v", cmd, err)
	}
	p.sleep(p.delays.Command)
}
