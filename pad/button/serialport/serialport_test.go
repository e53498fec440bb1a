package serialport

import (
	"bytes"
	"testing"

	"github.com/allape/openpad/pad/button"
	"github.com/stretchr/testify/require"
)

type bufferPort struct {
	bytes.Buffer
	closed bool
}

func (p *bufferPort) Open() error  { return nil }
func (p *bufferPort) Close() error { p.closed = true; return nil }

func TestButton(t *testing.T) {
	port := &bufferPort{}
	b := &Button{
		Pins: map[button.ID]string{
			button.A: "2",
			button.B: "3",
			button.Y: "5",
		},
		Port: port,
	}

	require.NoError(t, b.Open())
	require.Equal(t, []byte{
		0xff, 0x01, 2, 0x00,
		0xff, 0x01, 3, 0x00,
		0xff, 0x01, 5, 0x00,
	}, port.Bytes())
	port.Reset()

	require.NoError(t, b.Press(button.B))
	require.NoError(t, b.Release(button.B))
	require.Equal(t, []byte{
		0xff, 0x02, 3, 0x01,
		0xff, 0x02, 3, 0x00,
	}, port.Bytes())

	require.Error(t, b.Press(button.X))

	require.NoError(t, b.Close())
	require.True(t, port.closed)
}

func TestOpenInvalidPins(t *testing.T) {
	b := &Button{Pins: map[button.ID]string{button.A: "pin"}, Port: &bufferPort{}}
	require.Error(t, b.Open())

	b = &Button{Pins: map[button.ID]string{button.A: "300"}, Port: &bufferPort{}}
	require.Error(t, b.Open())

	b = &Button{Port: &bufferPort{}}
	require.Error(t, b.Open())
}

func TestPressBeforeOpen(t *testing.T) {
	port := &bufferPort{}
	b := &Button{
		Pins: map[button.ID]string{button.A: "9"},
		Port: port,
	}

	require.NoError(t, b.Press(button.A))
	require.Equal(t, []byte{0xff, 0x02, 9, 0x01}, port.Bytes())

	require.Error(t, (&Button{Port: port}).Press(button.A))
}
