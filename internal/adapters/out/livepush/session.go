package livepush

import (
	"context"
	"encoding/json"
	"time"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/metrics"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// sendBufferSize bounds how far a slow client may fall behind before
	// frames are dropped for it.
	sendBufferSize = 32

	policyTimeout = 3 * time.Second
)

// Actions a client may send after connecting.
const (
	actionTrackDelivery     = "track_delivery"
	actionStopTrackDelivery = "stop_track_delivery"
	actionTrackOrder        = "track_order"
	actionStopTrackOrder    = "stop_track_order"
)

type clientMessage struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// session is one authenticated websocket connection.
//
// send is never closed: a push racing a disconnect may land a frame in a
// dead session's buffer, which the GC reclaims, but must never hit a closed
// channel. writePump exits via done instead.
type session struct {
	hub   *Hub
	conn  *websocket.Conn
	id    identity
	send  chan frame
	done  chan struct{}
	rooms map[string]struct{}
}

func newSession(hub *Hub, conn *websocket.Conn, id identity) *session {
	return &session{
		hub:   hub,
		conn:  conn,
		id:    id,
		send:  make(chan frame, sendBufferSize),
		done:  make(chan struct{}),
		rooms: make(map[string]struct{}),
	}
}

// readPump consumes track/stop-track messages until the connection dies,
// then tears the session down.
func (s *session) readPump() {
	defer func() {
		s.hub.drop(s)
		close(s.done)
		_ = s.conn.Close()
		metrics.LiveConnections.Dec()
		s.hub.logger.Info("client disconnected", "userId", s.id.userID)
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.hub.logger.Warn("read failed", "userId", s.id.userID, "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.hub.logger.Warn("malformed client message", "userId", s.id.userID, "error", err)
			continue
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg clientMessage) {
	targetID, err := kernel.UUIDFromString(msg.ID)
	if err != nil {
		s.hub.logger.Warn("client message with bad id",
			"userId", s.id.userID, "action", msg.Action, "error", err)
		return
	}

	switch msg.Action {
	case actionTrackDelivery:
		if s.mayTrack(func(ctx context.Context) (bool, error) {
			return s.hub.policy.CanTrackDelivery(ctx, s.id.userID, s.id.role, targetID)
		}) {
			s.hub.join(s, deliveryRoom(targetID))
		}
	case actionStopTrackDelivery:
		s.hub.leave(s, deliveryRoom(targetID))
	case actionTrackOrder:
		if s.mayTrack(func(ctx context.Context) (bool, error) {
			return s.hub.policy.CanTrackOrder(ctx, s.id.userID, s.id.role, targetID)
		}) {
			s.hub.join(s, orderRoom(targetID))
		}
	case actionStopTrackOrder:
		s.hub.leave(s, orderRoom(targetID))
	default:
		s.hub.logger.Warn("unknown client action", "userId", s.id.userID, "action", msg.Action)
	}
}

// mayTrack runs one policy check. A check that errors denies: tracking is an
// optimization for the client, not a right.
func (s *session) mayTrack(check func(ctx context.Context) (bool, error)) bool {
	ctx, cancel := context.WithTimeout(context.Background(), policyTimeout)
	defer cancel()

	allowed, err := check(ctx)
	if err != nil {
		s.hub.logger.Error("track authorization failed", "userId", s.id.userID, "error", err)
		return false
	}
	if !allowed {
		s.hub.logger.Warn("track denied", "userId", s.id.userID, "role", s.id.role)
	}
	return allowed
}

// writePump serializes all writes on the connection, interleaving frames
// with keepalive pings.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case f := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(f); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
