package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/photonai/arena/internal/proto"
)

const (
	// writeDeadline bounds a single WebSocket write.
	writeDeadline = 10 * time.Second
	// pongWait is how long a read may go without a pong before the
	// connection is considered dead.
	pongWait = 60 * time.Second
	// pingPeriod must stay comfortably under pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Upgrader is the shared websocket.Upgrader a caller uses to accept an
// inbound bot connection before handing it to NewWebSocketBot. CheckOrigin
// is permissive by default; callers running across an untrusted network
// should replace it with a real origin check before use.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketBot is a Bot backed by a websocket connection, framing each
// Request/ControllerState as a JSON text message (spec.md §6). Writes go
// through a single writer goroutine (writePump) so a ping and a Call
// response can never race on the same connection, mirroring the
// single-writer discipline a websocket connection requires.
type WebSocketBot struct {
	conn      *websocket.Conn
	done      chan struct{}
	writeChan chan []byte
	replyChan chan json.RawMessage
	readErr   chan error
}

// NewWebSocketBot wraps an already-upgraded connection (the caller ran
// Upgrader.Upgrade) as a Bot.
func NewWebSocketBot(conn *websocket.Conn) *WebSocketBot {
	b := &WebSocketBot{
		conn:      conn,
		done:      make(chan struct{}),
		writeChan: make(chan []byte, 8),
		replyChan: make(chan json.RawMessage, 1),
		readErr:   make(chan error, 1),
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go b.writePump()
	go b.readPump()

	return b
}

func (b *WebSocketBot) Call(ctx context.Context, req proto.Request) (*proto.ControllerState, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("websocketbot: encoding request: %w", err)
	}

	select {
	case <-b.done:
		return nil, fmt.Errorf("websocketbot: connection closed")
	case b.writeChan <- payload:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case raw := <-b.replyChan:
		if len(raw) == 0 || string(raw) == "null" {
			return nil, nil
		}
		var resp proto.ControllerState
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("websocketbot: decoding response: %w", err)
		}
		return &resp, nil
	case err := <-b.readErr:
		return nil, fmt.Errorf("websocketbot: reading response: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *WebSocketBot) Close() error {
	select {
	case <-b.done:
		return nil
	default:
		close(b.done)
		return b.conn.Close()
	}
}

// readPump is the connection's single reader goroutine: every inbound
// text message is assumed to be one Call's response, in order.
func (b *WebSocketBot) readPump() {
	for {
		msgType, data, err := b.conn.ReadMessage()
		if err != nil {
			select {
			case b.readErr <- err:
			case <-b.done:
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		select {
		case b.replyChan <- json.RawMessage(data):
		case <-b.done:
			return
		}
	}
}

// writePump is the connection's single writer goroutine: Call payloads
// and keepalive pings both funnel through here so they never race.
func (b *WebSocketBot) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case data := <-b.writeChan:
			if err := b.write(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := b.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (b *WebSocketBot) write(messageType int, data []byte) error {
	b.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return b.conn.WriteMessage(messageType, data)
}
