package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"wallboard-backend/internal/libraries"
)

// Listen dials the push channel and invokes onEvent for every change event
// until the context is canceled or the connection drops. Callers treat each
// event as a cue to repull the snapshot; the payload itself is advisory.
// There is no automatic reconnect: a dropped listener misses events until
// the caller dials again, and the next repull converges the state anyway.
func (c *Client) Listen(ctx context.Context, onEvent func(libraries.Event)) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial push channel: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("push channel closed: %w", err)
		}

		var event libraries.Event
		if err := json.Unmarshal(data, &event); err != nil {
			// tolerate garbage frames; the repull design makes them harmless
			continue
		}
		switch event.Type {
		case libraries.EventNewMessage, libraries.EventDeleteMessage,
			libraries.EventUpdateMessage, libraries.EventNewFolder,
			libraries.EventDeleteFolder:
			onEvent(event)
		}
	}
}
