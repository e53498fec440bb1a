package pad

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/allape/openpad/pad/button"
	"github.com/stretchr/testify/require"
)

func decodeSnapshot(msg []byte) (sticky bool, pressed []int, ok bool) {
	if len(msg) != 3 || msg[0] != OpSnapshot {
		return false, nil, false
	}
	pressed = make([]int, 0)
	for _, id := range button.IDs {
		if msg[2]&(1<<id) != 0 {
			pressed = append(pressed, int(id))
		}
	}
	return msg[1] != 0, pressed, true
}

type recordingDriver struct {
	sync.Mutex
	calls []string
	fail  bool
}

func (d *recordingDriver) Open() error  { return nil }
func (d *recordingDriver) Close() error { return nil }

func (d *recordingDriver) Press(id button.ID) error {
	d.Lock()
	defer d.Unlock()
	d.calls = append(d.calls, "press "+id.String())
	if d.fail {
		return errors.New("device unplugged")
	}
	return nil
}

func (d *recordingDriver) Release(id button.ID) error {
	d.Lock()
	defer d.Unlock()
	d.calls = append(d.calls, "release "+id.String())
	return nil
}

// pipeClient delivers one message per Read, like a websocket connection.
type pipeClient struct {
	in     chan []byte
	out    chan []byte
	closed chan struct{}
	once   sync.Once
}

func newPipeClient() *pipeClient {
	return &pipeClient{
		in:     make(chan []byte, 16),
		out:    make(chan []byte, 64),
		closed: make(chan struct{}),
	}
}

func (p *pipeClient) Read(dst []byte) (int, error) {
	select {
	case msg := <-p.in:
		return copy(dst, msg), nil
	case <-p.closed:
		return 0, io.EOF
	}
}

func (p *pipeClient) Write(src []byte) (int, error) {
	p.out <- append([]byte(nil), src...)
	return len(src), nil
}

func (p *pipeClient) Close() error {
	p.once.Do(func() {
		close(p.closed)
	})
	return nil
}

func (p *pipeClient) next(t *testing.T) []byte {
	select {
	case msg := <-p.out:
		return msg
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for server message")
		return nil
	}
}

func serve(t *testing.T, s *Server) *pipeClient {
	p := newPipeClient()
	done := make(chan error, 1)
	go func() {
		done <- s.HandleClient(NewClient(p))
	}()
	t.Cleanup(func() {
		_ = p.Close()
		<-done
	})
	return p
}

func TestServerForwardsToDrivers(t *testing.T) {
	d := &recordingDriver{}
	s := New([]button.Driver{d}, Options{Sticky: true})

	require.NoError(t, s.Press(button.A))
	require.NoError(t, s.Release(button.A))
	require.NoError(t, s.SetButtonChecked(button.B, true))
	s.SetStickyMode(false)

	require.Equal(t, []string{"press A", "press B", "release A", "release B"}, d.calls)
	require.Empty(t, s.PressedButtons())
}

func TestServerDriverErrorKeepsState(t *testing.T) {
	d := &recordingDriver{fail: true}
	s := New([]button.Driver{d}, Options{})

	require.NoError(t, s.Press(button.X))
	require.Equal(t, []int{2}, s.PressedButtons())
}

func TestServerUnknownID(t *testing.T) {
	s := New(nil, Options{})
	err := s.SetButtonChecked(button.ID(99), true)
	var notFound *button.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestHandleClient(t *testing.T) {
	s := New(nil, Options{})
	p := serve(t, s)

	sticky, pressed, ok := decodeSnapshot(p.next(t))
	require.True(t, ok)
	require.False(t, sticky)
	require.Empty(t, pressed)

	p.in <- []byte{OpPress, byte(button.A)}
	require.Equal(t, EncodeStateChanged(0, true), p.next(t))

	p.in <- []byte{OpRelease, byte(button.A)}
	require.Equal(t, EncodeStateChanged(0, false), p.next(t))

	p.in <- []byte{OpStickyMode, 1}
	require.Equal(t, []byte{OpSnapshot, 1, 0}, p.next(t))

	p.in <- []byte{OpPress, byte(button.B)}
	p.in <- []byte{OpRelease, byte(button.B)}
	require.Equal(t, EncodeStateChanged(1, true), p.next(t))

	p.in <- []byte{OpSetChecked, byte(button.Y), 1}
	require.Equal(t, EncodeStateChanged(3, true), p.next(t))

	p.in <- []byte{OpQuery}
	sticky, pressed, ok = decodeSnapshot(p.next(t))
	require.True(t, ok)
	require.True(t, sticky)
	require.Equal(t, []int{1, 3}, pressed)

	p.in <- []byte{OpReset}
	require.Equal(t, EncodeStateChanged(1, false), p.next(t))
	require.Equal(t, EncodeStateChanged(3, false), p.next(t))
	require.Empty(t, s.PressedButtons())
}

func TestHandleClientErrors(t *testing.T) {
	s := New(nil, Options{})
	p := serve(t, s)
	_ = p.next(t)

	p.in <- []byte{OpSetChecked, 99, 1}
	require.Equal(t, EncodeError((&button.NotFoundError{ID: 99}).Error()), p.next(t))

	p.in <- []byte{OpPress}
	msg := p.next(t)
	require.Equal(t, OpError, msg[0])

	p.in <- []byte{0x42}
	msg = p.next(t)
	require.Equal(t, OpError, msg[0])
	require.Contains(t, string(msg[3:]), "unsupported message type")
}

func TestBroadcast(t *testing.T) {
	s := New(nil, Options{})
	p1 := serve(t, s)
	p2 := serve(t, s)
	_ = p1.next(t)
	_ = p2.next(t)

	p1.in <- []byte{OpPress, byte(button.Y)}
	require.Equal(t, EncodeStateChanged(3, true), p1.next(t))
	require.Equal(t, EncodeStateChanged(3, true), p2.next(t))

	require.NoError(t, s.Release(button.Y))
	require.Equal(t, EncodeStateChanged(3, false), p1.next(t))
	require.Equal(t, EncodeStateChanged(3, false), p2.next(t))
}

func TestSnapshotEncoding(t *testing.T) {
	msg := EncodeSnapshot(Snapshot{Sticky: true, Pressed: []int{0, 2}})
	require.Equal(t, []byte{OpSnapshot, 1, 0b0101}, msg)

	_, _, ok := decodeSnapshot([]byte{OpStateChanged, 0, 1})
	require.False(t, ok)
}
