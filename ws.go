package main

import (
	"errors"
	"github.com/allape/openpad/pad"
	"github.com/gorilla/websocket"
	"time"
)

// WriteTimeout bounds a write to one client, broadcasts to the others wait on it.
const WriteTimeout = 5 * time.Second

var ErrTextFrame = errors.New("text frames are not part of the pad protocol")

// WebsocketPadClient carries one protocol message per binary frame.
type WebsocketPadClient struct {
	Conn *websocket.Conn
}

func (w *WebsocketPadClient) Read(dst []byte) (int, error) {
	messageType, src, err := w.Conn.ReadMessage()
	if err != nil {
		return 0, err
	}
	if messageType != websocket.BinaryMessage {
		_ = w.Conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseUnsupportedData, ErrTextFrame.Error()),
			time.Now().Add(WriteTimeout),
		)
		return 0, ErrTextFrame
	}
	return copy(dst, src), nil
}

func (w *WebsocketPadClient) Write(src []byte) (int, error) {
	err := w.Conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err != nil {
		return 0, err
	}
	err = w.Conn.WriteMessage(websocket.BinaryMessage, src)
	if err != nil {
		return 0, err
	}
	return len(src), nil
}

func (w *WebsocketPadClient) Close() error {
	return w.Conn.Close()
}

func Websocket2PadClient(conn *websocket.Conn) *pad.Client {
	return pad.NewClient(&WebsocketPadClient{Conn: conn})
}
