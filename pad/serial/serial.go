package serial

import (
	"errors"
	"github.com/allape/gogger"
	"go.bug.st/serial"
	"io"
	"strings"
	"sync"
	"time"
)

var l = gogger.New("pad.serial")

// MagicWord is sent right after the port opens, the firmware ignores frames until it sees it.
const MagicWord = "open-pad"

const DefaultWarmup = 3 * time.Second

type Port interface {
	io.Writer
	io.Closer
	Open() error
}

type Driver struct {
	openLocker  sync.Locker
	writeLocker sync.Locker

	port serial.Port

	Name   string
	Baud   int
	Warmup time.Duration
	// OnLine receives each line the device writes back
	OnLine func(line string)
}

func (d *Driver) Open() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.port != nil {
		return nil
	}

	port, err := serial.Open(d.Name, &serial.Mode{
		BaudRate: d.Baud,
	})
	if err != nil {
		return err
	}
	d.port = port

	go d.readLines(port)

	_, err = port.Write([]byte(MagicWord))
	if err != nil {
		return err
	}

	time.Sleep(d.Warmup)

	return nil
}

// readLines splits what the device writes back into lines, a trailing partial line waits for more input.
func (d *Driver) readLines(r io.Reader) {
	buf := make([]byte, 1024)
	unfinishedLine := ""
	for {
		n, err := r.Read(buf)
		if err != nil && err != io.EOF {
			l.Error().Println("read error:", err)
		}
		if n == 0 {
			l.Warn().Println("EOF")
			return
		}
		lines := strings.Split(unfinishedLine+string(buf[:n]), "\n")
		for _, line := range lines[:len(lines)-1] {
			line = strings.TrimRight(line, "\r")
			l.Verbose().Println(">", line)
			if d.OnLine != nil {
				d.OnLine(line)
			}
		}
		unfinishedLine = lines[len(lines)-1]
	}
}

func (d *Driver) Close() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.port == nil {
		return nil
	}

	err := d.port.Close()
	d.port = nil
	return err
}

// Write opens the port on demand and closes it again after a failed write, so the next write reconnects.
func (d *Driver) Write(data []byte) (int, error) {
	err := d.Open()
	if err != nil {
		return 0, err
	}

	d.writeLocker.Lock()
	defer d.writeLocker.Unlock()

	if d.port == nil {
		return 0, errors.New("port closed")
	}

	n, err := d.port.Write(data)
	if err != nil {
		_ = d.Close()
		return n, err
	}

	return n, nil
}

func New(name string, baud int) *Driver {
	return &Driver{
		openLocker:  &sync.Mutex{},
		writeLocker: &sync.Mutex{},
		Name:        name,
		Baud:        baud,
		Warmup:      DefaultWarmup,
	}
}
