package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alvmarrod/web-pathfinder/internal/search"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout = 60 * time.Second // wait for the first message
	writeTimeout   = 10 * time.Second
	closeGrace     = time.Second // wait for the peer's close reply
)

// errPeerGone reports that the observer went away mid-search
var errPeerGone = errors.New("peer disconnected")

// Searcher runs one search request against an emitter
type Searcher interface {
	Run(ctx context.Context, req search.Request, alg search.Algorithm, emit search.Emitter, log *logrus.Entry) (search.Result, error)
}

// Handler serves one search per websocket connection
type Handler struct {
	searcher        Searcher
	defaultMaxNodes int
	upgrader        websocket.Upgrader
	log             *logrus.Entry
}

// NewHandler creates a websocket search handler
func NewHandler(searcher Searcher, defaultMaxNodes int, log *logrus.Entry) *Handler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Handler{
		searcher:        searcher,
		defaultMaxNodes: defaultMaxNodes,
		upgrader: websocket.Upgrader{
			// Observers are browser apps served from anywhere
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: log.WithField("component", "channel"),
	}
}

// ServeHTTP upgrades the connection, reads the request and streams the search
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("Failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	log := h.log.WithField("search_id", uuid.NewString())
	log.Debugf("Client connected from %s", r.RemoteAddr)

	_ = conn.SetReadDeadline(time.Now().Add(requestTimeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Infof("No search request received: %v", err)
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	emitter := &wsEmitter{conn: conn}

	var req search.Request
	if err := json.Unmarshal(data, &req); err != nil {
		reject(r.Context(), conn, emitter, log, fmt.Errorf("%w: %v", search.ErrInvalidRequest, err))
		return
	}

	req, alg, err := req.Normalize(h.defaultMaxNodes)
	if err != nil {
		reject(r.Context(), conn, emitter, log, err)
		return
	}

	log = log.WithFields(logrus.Fields{
		"algorithm": alg,
		"start":     req.StartURL,
		"target":    req.TargetURL,
	})
	log.Infof("Search started (max_nodes=%d)", req.MaxNodes)

	g, ctx := errgroup.WithContext(r.Context())
	done := make(chan struct{})

	// The peer never sends after the request; a read error means it left
	g.Go(func() error {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				select {
				case <-done:
					return nil
				default:
					return fmt.Errorf("%w: %v", errPeerGone, err)
				}
			}
		}
	})

	g.Go(func() error {
		res, err := h.searcher.Run(ctx, req, alg, emitter, log)
		close(done)
		if err != nil {
			// Unblock the reader
			conn.Close()
			return err
		}

		log.WithField("outcome", res.Outcome).Debugf("Closing channel after %d expansions", res.Expanded)
		closeNormally(conn)
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, errPeerGone) || errors.Is(err, context.Canceled) {
			log.Infof("Search abandoned: %v", err)
			return
		}
		log.Warnf("Search failed: %v", err)
	}
}

// reject reports an unusable request as a single status and closes
func reject(ctx context.Context, conn *websocket.Conn, emitter *wsEmitter, log *logrus.Entry, err error) {
	log.Infof("Rejected request: %v", err)
	if emitter.Emit(ctx, search.StatusEvent(fmt.Sprintf("Invalid request: %v", err))) == nil {
		closeNormally(conn)
		drain(conn)
	}
}

// closeNormally sends a close frame and bounds the wait for the reply
func closeNormally(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	_ = conn.SetReadDeadline(time.Now().Add(closeGrace))
}

// drain reads until the close handshake completes or the deadline passes
func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// wsEmitter writes events as JSON text frames
type wsEmitter struct {
	conn *websocket.Conn
}

func (e *wsEmitter) Emit(ctx context.Context, event search.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_ = e.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return e.conn.WriteJSON(event)
}
