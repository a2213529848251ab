package topology

import (
	"context"
	"fmt"
	"log"

	"github.com/gorilla/websocket"
)

// Stream connects to a websocket feed at url and decodes every text or binary message as a
// full snapshot, passing each to fn. It blocks until ctx is cancelled or the server closes
// the connection. Snapshots that fail to decode are delivered with Err set and the stream
// keeps reading.
//
// Parameters:
//   - ctx: cancels the stream
//   - url: the ws:// or wss:// feed address
//   - fn: receives each update, on the calling goroutine
//
// Returns:
//   - error: nil on cancellation or normal closure, otherwise the connection error
func Stream(ctx context.Context, url string, fn func(Update)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to topology feed %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	defer stop()

	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read topology feed: %w", err)
		}
		if typ != websocket.TextMessage && typ != websocket.BinaryMessage {
			continue
		}

		t, err := Parse(msg)
		if err != nil {
			log.Printf("[Topology] dropped feed snapshot: %v", err)
		}
		fn(Update{Topology: t, Err: err})
	}
}
