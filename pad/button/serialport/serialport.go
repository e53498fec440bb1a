package serialport

import (
	"fmt"
	"github.com/allape/openpad/pad/button"
	"github.com/allape/openpad/pad/serial"
	"strconv"
)

const (
	FrameHeader  byte = 0xff
	FrameSetup   byte = 0x01
	FrameState   byte = 0x02
	StatePressed byte = 0x01
)

type Button struct {
	// Pins maps a button to a pin number on the device, a missing entry or "" leaves the button unwired
	Pins map[button.ID]string
	Port serial.Port

	pins map[button.ID]byte
}

func (b *Button) parsePins() error {
	pins := make(map[button.ID]byte, len(button.IDs))

	for _, id := range button.IDs {
		src := b.Pins[id]
		if src == "" {
			continue
		}
		p, err := strconv.ParseUint(src, 10, 8)
		if err != nil {
			return fmt.Errorf("pin of button %s: %w", id, err)
		}
		pins[id] = byte(p)
	}

	if len(pins) == 0 {
		return fmt.Errorf("no button pin configured")
	}

	b.pins = pins
	return nil
}

// pin parses Pins on first use, so frames can be sent before Open.
func (b *Button) pin(id button.ID) (byte, error) {
	if b.pins == nil {
		err := b.parsePins()
		if err != nil {
			return 0, err
		}
	}
	p, ok := b.pins[id]
	if !ok {
		return 0, fmt.Errorf("button %s is not wired", id)
	}
	return p, nil
}

func (b *Button) Open() error {
	err := b.parsePins()
	if err != nil {
		return err
	}

	for _, id := range button.IDs {
		p, ok := b.pins[id]
		if !ok {
			continue
		}
		_, err := b.Port.Write([]byte{FrameHeader, FrameSetup, p, 0x00})
		if err != nil {
			return fmt.Errorf("open %s button: %w", id, err)
		}
	}

	return nil
}

func (b *Button) Close() error {
	return b.Port.Close()
}

func (b *Button) write(id button.ID, state byte) error {
	p, err := b.pin(id)
	if err != nil {
		return err
	}
	_, err = b.Port.Write([]byte{FrameHeader, FrameState, p, state})
	return err
}

func (b *Button) Press(id button.ID) error {
	return b.write(id, StatePressed)
}

func (b *Button) Release(id button.ID) error {
	return b.write(id, 0x00)
}
