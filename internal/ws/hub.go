package ws

import (
	"context"
	"encoding/json"

	"talentbridge/internal/events"
	"talentbridge/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type envelope struct {
	userID  uuid.UUID
	message []byte
}

type membership struct {
	client *Client
	join   bool
}

// Hub tracks sockets per user. All map mutations happen on the Run goroutine.
// Joins and leaves share one unbuffered channel, so they are applied in the
// order callers made them and never queue up behind a stopped hub.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	direct     chan envelope
	membership chan membership
	count      chan chan int
	done       chan struct{}
	logger     *zap.Logger
	metrics    *metrics.Registry
}

func NewHub(logger *zap.Logger, m *metrics.Registry) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		direct:     make(chan envelope, 1024),
		membership: make(chan membership),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    m,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
					h.metrics.WSDisconnected()
				}
			}
			h.clients = map[uuid.UUID]map[*Client]struct{}{}
			return

		case m := <-h.membership:
			if m.client == nil {
				continue
			}
			if m.join {
				h.add(m.client)
			} else {
				h.remove(m.client)
			}

		case env := <-h.direct:
			for client := range h.clients[env.userID] {
				select {
				case client.send <- env.message:
				default:
					h.remove(client)
				}
			}

		case reply := <-h.count:
			n := 0
			for _, set := range h.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (h *Hub) add(client *Client) {
	if client.left {
		// Its leave was applied first; the socket is already gone.
		close(client.send)
		return
	}
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
	h.metrics.WSConnected()
	h.logger.Debug("[WS] connected", zap.String("user_id", client.userID.String()), zap.Int("user_sockets", len(set)))
}

func (h *Hub) remove(client *Client) {
	if client == nil || client.left {
		return
	}
	client.left = true
	set := h.clients[client.userID]
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.metrics.WSDisconnected()
	h.logger.Debug("[WS] disconnected", zap.String("user_id", client.userID.String()))
}

// Register reports false when the hub has stopped; the caller owns the
// socket then.
func (h *Hub) Register(client *Client) bool {
	return h.change(membership{client: client, join: true})
}

func (h *Hub) Unregister(client *Client) {
	h.change(membership{client: client})
}

func (h *Hub) change(m membership) bool {
	select {
	case h.membership <- m:
		return true
	case <-h.done:
		return false
	}
}

// SendToUser queues message for every socket of userID and drops it when
// the hub is backed up.
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) bool {
	select {
	case h.direct <- envelope{userID: userID, message: message}:
		return true
	default:
		h.logger.Warn("[WS] message dropped", zap.String("reason", "buffer_full"))
		return false
	}
}

// ClientCount blocks until the Run loop answers.
func (h *Hub) ClientCount(ctx context.Context) int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
	case <-ctx.Done():
		return 0
	case <-h.done:
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-ctx.Done():
		return 0
	}
}

func (h *Hub) Name() string { return "ws" }

// Deliver makes the hub an events sink.
func (h *Hub) Deliver(_ context.Context, e events.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if !h.SendToUser(e.UserID, b) {
		return errHubBusy
	}
	return nil
}
