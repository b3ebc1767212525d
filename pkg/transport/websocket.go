package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// NewWebSocket returns a SubscribeFunc that opens one WebSocket per
// subscription, passing the document in the query string. Every inbound
// message is a JSON envelope whose data field is delivered as an Event.
func NewWebSocket(host string, opts ...Option) SubscribeFunc {
	cfg := newConfig(opts)
	return func(ctx context.Context, query string) (Stream, error) {
		target := cfg.wsURL
		if target == "" {
			target = host
		}
		u, err := websocketURL(target, query)
		if err != nil {
			return nil, err
		}

		conn, _, err := cfg.dialer.DialContext(ctx, u, cfg.header)
		if err != nil {
			return nil, fmt.Errorf("failed to open websocket: %w", err)
		}
		cfg.logger.Debug("websocket open", zap.String("url", u))

		s := &wsStream{
			conn:   conn,
			events: make(chan Event),
			done:   make(chan struct{}),
			logger: cfg.logger,
		}
		go s.read()
		go func() {
			select {
			case <-ctx.Done():
				_ = s.Close()
			case <-s.done:
			}
		}()
		return s, nil
	}
}

func websocketURL(target, query string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid websocket url %q: %w", target, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	params := u.Query()
	params.Set("query", query)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

type wsStream struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

func (s *wsStream) Events() <-chan Event {
	return s.events
}

// Close closes the socket. It is safe to call more than once.
func (s *wsStream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = s.conn.Close()
		s.logger.Debug("websocket closed")
	})
	return err
}

func (s *wsStream) read() {
	defer close(s.events)
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.send(Event{Err: err})
			}
			_ = s.Close()
			return
		}

		var envelope Response
		if err := json.Unmarshal(msg, &envelope); err != nil {
			if !s.send(Event{Err: fmt.Errorf("malformed subscription message: %w", err)}) {
				return
			}
			continue
		}
		event := Event{Data: envelope.Data}
		if len(envelope.Errors) > 0 {
			event = Event{Err: &GraphQLError{Response: envelope}}
		}
		if !s.send(event) {
			return
		}
	}
}

// send delivers e unless the stream is closing.
func (s *wsStream) send(e Event) bool {
	select {
	case s.events <- e:
		return true
	case <-s.done:
		return false
	}
}
