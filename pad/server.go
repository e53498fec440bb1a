package pad

import (
	"encoding/hex"
	"fmt"
	"github.com/allape/gogger"
	"github.com/allape/openpad/pad/button"
	"io"
	"sync"
)

var l = gogger.New("pad.server")

type Client struct {
	rwc    io.ReadWriteCloser
	locker sync.Locker
}

func NewClient(rwc io.ReadWriteCloser) *Client {
	return &Client{
		rwc:    rwc,
		locker: &sync.Mutex{},
	}
}

func (c *Client) Read(dst []byte) (int, error) {
	return c.rwc.Read(dst)
}

func (c *Client) Write(src []byte) (int, error) {
	c.locker.Lock()
	defer c.locker.Unlock()
	return c.rwc.Write(src)
}

func (c *Client) Close() error {
	return c.rwc.Close()
}

type Options struct {
	Sticky bool
}

// Server serializes every access to a Group, so input from many clients is applied one at a time.
// Each transition is forwarded to the drivers and broadcast to all clients before the next input is applied.
type Server struct {
	Drivers []button.Driver
	Options Options

	group  *Group
	locker sync.Locker

	clients       map[*Client]struct{}
	clientsLocker sync.Locker
}

func (s *Server) onChanged(id int, checked bool) {
	for _, d := range s.Drivers {
		var err error
		if checked {
			err = d.Press(button.ID(id))
		} else {
			err = d.Release(button.ID(id))
		}
		if err != nil {
			l.Error().Printf("forward %s checked=%v: %v", button.ID(id), checked, err)
		}
	}

	s.broadcast(EncodeStateChanged(id, checked))
}

func (s *Server) broadcast(msg []byte) {
	s.clientsLocker.Lock()
	defer s.clientsLocker.Unlock()

	for c := range s.clients {
		_, err := c.Write(msg)
		if err != nil {
			l.Warn().Println("broadcast:", err)
		}
	}
}

func (s *Server) do(fn func(g *Group) error) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	return fn(s.group)
}

func (s *Server) Press(id button.ID) error {
	return s.do(func(g *Group) error {
		return g.Press(id)
	})
}

func (s *Server) Release(id button.ID) error {
	return s.do(func(g *Group) error {
		return g.Release(id)
	})
}

func (s *Server) Cancel(id button.ID) error {
	return s.do(func(g *Group) error {
		return g.Cancel(id)
	})
}

func (s *Server) SetButtonChecked(id button.ID, checked bool) error {
	return s.do(func(g *Group) error {
		return g.SetButtonChecked(id, checked)
	})
}

func (s *Server) SetStickyMode(enabled bool) {
	_ = s.do(func(g *Group) error {
		l.Info().Println("sticky mode:", enabled)
		g.SetStickyMode(enabled)
		// clients only learn the mode from snapshots
		s.broadcast(EncodeSnapshot(g.Snapshot()))
		return nil
	})
}

func (s *Server) ResetAll() {
	_ = s.do(func(g *Group) error {
		g.ResetAll()
		return nil
	})
}

func (s *Server) PressedButtons() (pressed []int) {
	_ = s.do(func(g *Group) error {
		pressed = g.PressedButtons()
		return nil
	})
	return pressed
}

func (s *Server) Snapshot() (snapshot Snapshot) {
	_ = s.do(func(g *Group) error {
		snapshot = g.Snapshot()
		return nil
	})
	return snapshot
}

func (s *Server) addClient(c *Client) error {
	return s.do(func(g *Group) error {
		s.clientsLocker.Lock()
		s.clients[c] = struct{}{}
		s.clientsLocker.Unlock()

		_, err := c.Write(EncodeSnapshot(g.Snapshot()))
		return err
	})
}

func (s *Server) removeClient(c *Client) {
	s.clientsLocker.Lock()
	defer s.clientsLocker.Unlock()
	delete(s.clients, c)
}

func (s *Server) handleMessage(client *Client, msg []byte) error {
	switch msg[0] {
	case OpPress, OpRelease, OpCancel:
		if len(msg) != 2 {
			return fmt.Errorf("malformed message: %s", hex.EncodeToString(msg))
		}
		id := button.ID(msg[1])
		switch msg[0] {
		case OpPress:
			return s.Press(id)
		case OpRelease:
			return s.Release(id)
		default:
			return s.Cancel(id)
		}
	case OpSetChecked:
		if len(msg) != 3 {
			return fmt.Errorf("malformed message: %s", hex.EncodeToString(msg))
		}
		return s.SetButtonChecked(button.ID(msg[1]), msg[2] != 0)
	case OpStickyMode:
		if len(msg) != 2 {
			return fmt.Errorf("malformed message: %s", hex.EncodeToString(msg))
		}
		s.SetStickyMode(msg[1] != 0)
	case OpReset:
		s.ResetAll()
	case OpQuery:
		// under the lock, so no broadcast can overtake the snapshot
		return s.do(func(g *Group) error {
			_, err := client.Write(EncodeSnapshot(g.Snapshot()))
			return err
		})
	default:
		return fmt.Errorf("unsupported message type: %s", hex.EncodeToString(msg))
	}
	return nil
}

// HandleClient blocks until the client disconnects.
func (s *Server) HandleClient(client *Client) error {
	err := s.addClient(client)
	if err != nil {
		return err
	}
	defer s.removeClient(client)

	// a message is a few bytes, this is plenty
	buf := make([]byte, 64)

	for {
		n, err := client.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}

		msg := buf[:n]
		l.Verbose().Println("msg:", hex.EncodeToString(msg))

		err = s.handleMessage(client, msg)
		if err != nil {
			l.Warn().Println("handle message:", err)
			_, err = client.Write(EncodeError(err.Error()))
			if err != nil {
				return err
			}
		}
	}
}

func New(drivers []button.Driver, options Options) *Server {
	s := &Server{
		Drivers: drivers,
		Options: options,

		group:  NewGroup(options.Sticky),
		locker: &sync.Mutex{},

		clients:       make(map[*Client]struct{}),
		clientsLocker: &sync.Mutex{},
	}

	s.group.OnButtonStateChanged(s.onChanged)

	return s
}
