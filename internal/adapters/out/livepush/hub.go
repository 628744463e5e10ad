package livepush

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/metrics"

	"github.com/gorilla/websocket"
)

// AccessPolicy decides whether a connected user may track a delivery or an
// order. Implementations consult persisted ownership; the hub itself knows
// nothing about the data model.
type AccessPolicy interface {
	CanTrackDelivery(ctx context.Context, userID kernel.UUID, role string, deliveryID kernel.UUID) (bool, error)
	CanTrackOrder(ctx context.Context, userID kernel.UUID, role string, orderID kernel.UUID) (bool, error)
}

// frame is the envelope every client receives.
type frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub maintains the room membership of all live connections and fans
// payloads out to them. It implements ports.LivePusher.
type Hub struct {
	secret   []byte
	policy   AccessPolicy
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*session]struct{}
}

// NewHub creates a hub verifying tokens with secret and authorizing track
// requests through policy.
func NewHub(secret []byte, policy AccessPolicy, logger *slog.Logger) *Hub {
	return &Hub{
		secret: secret,
		policy: policy,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "live-push"),
		rooms:  make(map[string]map[*session]struct{}),
	}
}

// ServeHTTP authenticates and upgrades one websocket connection. The token
// comes from the `token` query parameter or an Authorization bearer header.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if token == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := verifyToken(token, h.secret)
	if err != nil {
		h.logger.Warn("rejected connection", "error", err)
		http.Error(w, "authentication failed", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}

	s := newSession(h, conn, id)
	h.join(s, userRoom(id.userID))
	h.join(s, roleRoom(id.role))
	metrics.LiveConnections.Inc()
	h.logger.Info("client connected", "userId", id.userID, "role", id.role)

	go s.writePump()
	go s.readPump()
}

// PushToUser delivers payload to every connection of one user.
func (h *Hub) PushToUser(userID kernel.UUID, event string, payload any) {
	h.pushToRoom(userRoom(userID), event, payload)
}

// PushToDelivery delivers payload to clients tracking one delivery.
func (h *Hub) PushToDelivery(deliveryID kernel.UUID, event string, payload any) {
	h.pushToRoom(deliveryRoom(deliveryID), event, payload)
}

// PushToOrder delivers payload to clients tracking one order.
func (h *Hub) PushToOrder(orderID kernel.UUID, event string, payload any) {
	h.pushToRoom(orderRoom(orderID), event, payload)
}

// PushToRole delivers payload to every connected user holding the role.
func (h *Hub) PushToRole(role string, event string, payload any) {
	h.pushToRoom(roleRoom(role), event, payload)
}

func (h *Hub) pushToRoom(room, event string, payload any) {
	h.mu.RLock()
	members := make([]*session, 0, len(h.rooms[room]))
	for s := range h.rooms[room] {
		members = append(members, s)
	}
	h.mu.RUnlock()

	for _, s := range members {
		select {
		case s.send <- frame{Event: event, Data: payload}:
		default:
			h.logger.Warn("dropping frame for slow client", "room", room, "event", event)
		}
	}
}

func (h *Hub) join(s *session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*session]struct{})
	}
	h.rooms[room][s] = struct{}{}
	s.rooms[room] = struct{}{}
}

func (h *Hub) leave(s *session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(s, room)
}

// drop removes the session from every room it joined.
func (h *Hub) drop(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range s.rooms {
		h.removeFromRoom(s, room)
	}
}

// removeFromRoom must be called with mu held.
func (h *Hub) removeFromRoom(s *session, room string) {
	delete(s.rooms, room)
	if members, ok := h.rooms[room]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func userRoom(userID kernel.UUID) string {
	return fmt.Sprintf("user_%s", userID)
}

func roleRoom(role string) string {
	return fmt.Sprintf("role_%s", role)
}

func deliveryRoom(deliveryID kernel.UUID) string {
	return fmt.Sprintf("delivery_%s", deliveryID)
}

func orderRoom(orderID kernel.UUID) string {
	return fmt.Sprintf("order_%s", orderID)
}
