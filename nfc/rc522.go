//go:build pi
// +build pi

package nfc

// MFRC522 spec can be found here: https://www.nxp.com/docs/en/data-sheet/MFRC522.pdf

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ecc1/spi"
	"github.com/jdevelop/golang-rpi-extras/rf522/commands"
	"github.com/jdevelop/gpio"
	rpio "github.com/jdevelop/gpio/rpi"
	log "github.com/sirupsen/logrus"
)

const (
	tModeReg      = 0x2A
	tPrescalerReg = 0x2B
	tReloadRegH   = 0x2C
	tReloadRegL   = 0x2D
	txASKReg      = 0x15
	modeReg       = 0x11
	rfCfgReg      = 0x26

	piccRequestA   = 0x26
	piccSelectCL1  = 0x93
	piccSelectCL2  = 0x95
	piccCascadeTag = 0x88
)

var stateLock sync.Mutex
var active bool

type rfid struct {
	resetPin    gpio.Pin
	antennaGain int
	spiDev      *spi.Device
}

// CreateReader opens the RC522 on the given SPI device. Only one reader can be open at a time.
func CreateReader(cfg ReaderConfig) (CardReader, error) {
	stateLock.Lock()
	defer stateLock.Unlock()
	if active {
		return nil, errors.New("reader already in use")
	}

	// the IRQ pin is connected on the board but never fires reliably, so the reader is polled instead.
	r, err := makeRFID(cfg)
	if err != nil {
		return nil, err
	}
	active = true
	return r, nil
}

func makeRFID(cfg ReaderConfig) (*rfid, error) {
	dev, err := spi.Open(fmt.Sprintf("/dev/spidev%d.%d", cfg.Bus, cfg.Device), cfg.SpeedHz, 0)
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}
	if err := dev.SetLSBFirst(false); err != nil {
		dev.Close()
		return nil, err
	}
	if err := dev.SetBitsPerWord(8); err != nil {
		dev.Close()
		return nil, err
	}

	pin, err := rpio.OpenPin(cfg.ResetPin, gpio.ModeOutput)
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("open reset pin %d: %w", cfg.ResetPin, err)
	}
	pin.Set()

	r := &rfid{
		spiDev:      dev,
		resetPin:    pin,
		antennaGain: 7,
	}
	if cfg.Gain >= 0 && cfg.Gain <= 7 {
		r.antennaGain = cfg.Gain
	}
	if err := r.init(); err != nil {
		r.release()
		return nil, err
	}
	log.Infof("RC522 initialized on /dev/spidev%d.%d", cfg.Bus, cfg.Device)
	return r, nil
}

func (r *rfid) Close() error {
	stateLock.Lock()
	active = false
	stateLock.Unlock()
	return r.release()
}

func (r *rfid) release() error {
	pinErr := r.resetPin.Close()
	if err := r.spiDev.Close(); err != nil {
		return err
	}
	return pinErr
}

// ReadCardID performs a full REQA + anticollision round. The chip is reset first so that a card left on the
// reader answers every time instead of staying in the ACTIVE state after the previous select.
func (r *rfid) ReadCardID() ([]byte, error) {
	if err := r.init(); err != nil {
		return nil, err
	}
	if err := r.request(); err != nil {
		return nil, err
	}
	return r.antiColl()
}

func (r *rfid) init() error {
	writes := []struct {
		reg int
		val byte
	}{
		{commands.CommandReg, commands.PCD_RESETPHASE},
		{tModeReg, 0x8D},
		{tPrescalerReg, 0x3E},
		{tReloadRegL, 30},
		{tReloadRegH, 0},
		{txASKReg, 0x40},
		{modeReg, 0x3D},
		{rfCfgReg, byte(r.antennaGain) << 4},
	}
	for _, w := range writes {
		if err := r.devWrite(w.reg, w.val); err != nil {
			return err
		}
	}
	return r.antennaOn()
}

func (r *rfid) transfer(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	err := r.spiDev.Transfer(out)
	return out, err
}

func (r *rfid) devWrite(address int, data byte) error {
	_, err := r.transfer([]byte{(byte(address) << 1) & 0x7E, data})
	return err
}

func (r *rfid) devRead(address int) (byte, error) {
	rb, err := r.transfer([]byte{((byte(address) << 1) & 0x7E) | 0x80, 0})
	if err != nil {
		return 0, err
	}
	return rb[1], nil
}

func (r *rfid) setBitmask(address int, mask byte) error {
	current, err := r.devRead(address)
	if err != nil {
		return err
	}
	return r.devWrite(address, current|mask)
}

func (r *rfid) clearBitmask(address int, mask byte) error {
	current, err := r.devRead(address)
	if err != nil {
		return err
	}
	return r.devWrite(address, current&^mask)
}

func (r *rfid) antennaOn() error {
	current, err := r.devRead(commands.TxControlReg)
	if err != nil {
		return err
	}
	if current&0x03 == 0 {
		return r.setBitmask(commands.TxControlReg, 0x03)
	}
	return nil
}

// transceive sends data to the card and returns whatever came back together with the number of valid bits.
func (r *rfid) transceive(data []byte) ([]byte, int, error) {
	const irqEn, irqWait = 0x77, 0x30

	setup := []func() error{
		func() error { return r.devWrite(commands.CommIEnReg, irqEn|0x80) },
		func() error { return r.clearBitmask(commands.CommIrqReg, 0x80) },
		func() error { return r.setBitmask(commands.FIFOLevelReg, 0x80) },
		func() error { return r.devWrite(commands.CommandReg, commands.PCD_IDLE) },
	}
	for _, f := range setup {
		if err := f(); err != nil {
			return nil, 0, err
		}
	}
	for _, v := range data {
		if err := r.devWrite(commands.FIFODataReg, v); err != nil {
			return nil, 0, err
		}
	}
	if err := r.devWrite(commands.CommandReg, commands.PCD_TRANSCEIVE); err != nil {
		return nil, 0, err
	}
	if err := r.setBitmask(commands.BitFramingReg, 0x80); err != nil {
		return nil, 0, err
	}

	var irq byte
	i := 2000
	for ; i > 0; i-- {
		n, err := r.devRead(commands.CommIrqReg)
		if err != nil {
			return nil, 0, err
		}
		if n&(irqWait|1) != 0 {
			irq = n
			break
		}
	}
	r.clearBitmask(commands.BitFramingReg, 0x80)

	if i == 0 {
		return nil, 0, NoCardErr
	}
	if e, err := r.devRead(commands.ErrorReg); err != nil {
		return nil, 0, err
	} else if e&0x1B != 0 {
		return nil, 0, fmt.Errorf("rc522 error register %02x", e)
	}
	if irq&irqEn&0x01 != 0 {
		return nil, 0, NoCardErr
	}

	n, err := r.devRead(commands.FIFOLevelReg)
	if err != nil {
		return nil, 0, err
	}
	lastBits, err := r.devRead(commands.ControlReg)
	if err != nil {
		return nil, 0, err
	}
	backBits := int(n) * 8
	if lastBits&0x07 != 0 {
		backBits = (int(n)-1)*8 + int(lastBits&0x07)
	}
	if n == 0 {
		n = 1
	}
	if n > 16 {
		n = 16
	}

	back := make([]byte, 0, n)
	for j := byte(0); j < n; j++ {
		b, err := r.devRead(commands.FIFODataReg)
		if err != nil {
			return nil, 0, err
		}
		back = append(back, b)
	}
	return back, backBits, nil
}

func (r *rfid) request() error {
	if err := r.devWrite(commands.BitFramingReg, 0x07); err != nil {
		return err
	}
	_, backBits, err := r.transceive([]byte{piccRequestA})
	if err != nil {
		return NoCardErr
	}
	if backBits != 0x10 {
		return fmt.Errorf("wrong number of bits %d", backBits)
	}
	return nil
}

// anticollCascade runs the anticollision step for one cascade level and checks the BCC.
func (r *rfid) anticollCascade(sel byte) ([]byte, error) {
	if err := r.devWrite(commands.BitFramingReg, 0x00); err != nil {
		return nil, err
	}
	back, _, err := r.transceive([]byte{sel, 0x20})
	if err != nil {
		return nil, err
	}
	if len(back) != 5 {
		return nil, fmt.Errorf("anticollision returned %d bytes, expected 5", len(back))
	}
	bcc := byte(0)
	for _, v := range back[:4] {
		bcc ^= v
	}
	if bcc != back[4] {
		return nil, fmt.Errorf("BCC mismatch, expected %02x actual %02x", bcc, back[4])
	}
	return back, nil
}

func (r *rfid) antiColl() ([]byte, error) {
	cl1, err := r.anticollCascade(piccSelectCL1)
	if err != nil {
		return nil, err
	}
	if cl1[0] != piccCascadeTag {
		return cl1[:4], nil
	}

	// 7 byte UID: select cascade level 1 before asking for the rest.
	log.Debug("cascade level 2 required")
	cmd := []byte{piccSelectCL1, 0x70, cl1[0], cl1[1], cl1[2], cl1[3], cl1[4]}
	crc, err := r.crc(cmd)
	if err != nil {
		return nil, err
	}
	sak, _, err := r.transceive(append(cmd, crc...))
	if err != nil {
		return nil, err
	}
	if len(sak) == 0 || sak[0]&0x04 == 0 {
		return nil, fmt.Errorf("unexpected select response: %v", sak)
	}

	cl2, err := r.anticollCascade(piccSelectCL2)
	if err != nil {
		return nil, err
	}
	uid := make([]byte, 0, 7)
	uid = append(uid, cl1[1:4]...)
	return append(uid, cl2[:4]...), nil
}

func (r *rfid) crc(data []byte) ([]byte, error) {
	if err := r.clearBitmask(commands.DivIrqReg, 0x04); err != nil {
		return nil, err
	}
	if err := r.setBitmask(commands.FIFOLevelReg, 0x80); err != nil {
		return nil, err
	}
	for _, v := range data {
		if err := r.devWrite(commands.FIFODataReg, v); err != nil {
			return nil, err
		}
	}
	if err := r.devWrite(commands.CommandReg, commands.PCD_CALCCRC); err != nil {
		return nil, err
	}
	for i := 0xFF; i > 0; i-- {
		n, err := r.devRead(commands.DivIrqReg)
		if err != nil {
			return nil, err
		}
		if n&0x04 != 0 {
			break
		}
	}
	lsb, err := r.devRead(commands.CRCResultRegL)
	if err != nil {
		return nil, err
	}
	msb, err := r.devRead(commands.CRCResultRegM)
	if err != nil {
		return nil, err
	}
	return []byte{lsb, msb}, nil
}
