package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"solitaire-go/internal/models"
	"solitaire-go/internal/tracing"
	ws "solitaire-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			// Non-browser clients (no Origin) are allowed.
			return true
		}
		if cfgDevAllowAll() {
			return true
		}
		if cfgIsDev() {
			return isLocalhostOrigin(origin) || isAllowedOrigin(origin)
		}
		return isAllowedOrigin(origin)
	},
}

// set by config at startup
var originMu sync.RWMutex
var allowedOrigins = map[string]bool{}
var devMode = false
var devAllowAll = false

func SetWebSocketOriginPolicy(isDev bool, allowAllDev bool, origins []string) {
	originMu.Lock()
	defer originMu.Unlock()
	devMode = isDev
	devAllowAll = allowAllDev
	allowedOrigins = map[string]bool{}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowedOrigins[o] = true
		}
	}
}

func cfgIsDev() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode
}
func cfgDevAllowAll() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode && devAllowAll
}
func isAllowedOrigin(origin string) bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return allowedOrigins[origin]
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

const idleRoom = "idle"

// WebSocketHandler upgrades the connection and registers the client. With
// ?table=<id> the client starts out watching that table.
func WebSocketHandler(hubProvider func() (*ws.Hub, bool), mgr *TableManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Preconditions before attempting the upgrade so we can return HTTP errors normally.
		tableID := strings.TrimSpace(c.Query("table"))
		room := idleRoom
		if tableID != "" {
			if _, err := mgr.Get(tableID); err != nil {
				writeAPIError(c, err)
				return
			}
			room = tableRoom(tableID)
		}
		hub, ok := hubProvider()
		if !ok || hub == nil {
			log.Printf("WebSocketHandler hubProvider returned nil: room=%q", room)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocketHandler upgrade failed: method=%s path=%s remote=%s origin=%q err=%v",
				c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Request.Header.Get("Origin"), err,
			)
			return
		}

		client := ws.NewClient(conn, hub, room, uuid.NewString())
		hub.Register(client)

		// The read pump is the only goroutine touching session.
		session := &wsSession{hub: hub, mgr: mgr, client: client, tableID: tableID}
		go client.WritePump()
		go client.ReadPump(session.handle)

		_ = sendDirect(client, "connected", map[string]any{
			"client_id": client.ID,
			"table_id":  tableID,
		})
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wsSession struct {
	hub     *ws.Hub
	mgr     *TableManager
	client  *ws.Client
	tableID string
}

func (s *wsSession) handle(msg []byte) {
	var in inboundMessage
	if err := json.Unmarshal(msg, &in); err != nil {
		s.sendError(models.ErrInvalidJSON)
		return
	}

	switch in.Type {
	case "join_table":
		var p struct {
			TableID string `json:"table_id"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			s.sendError(models.ErrInvalidJSON)
			return
		}
		id := strings.TrimSpace(p.TableID)
		t, err := s.mgr.Get(id)
		if err != nil {
			s.sendError(err)
			return
		}
		s.tableID = id
		s.hub.Join(s.client, tableRoom(id))
		_ = sendDirect(s.client, "table_update", t.View())
	case EventPointerDown, EventPointerMove, EventPointerUp:
		ev := Event{Type: in.Type}
		if len(in.Payload) > 0 {
			if err := json.Unmarshal(in.Payload, &ev); err != nil {
				s.sendError(models.ErrInvalidJSON)
				return
			}
			ev.Type = in.Type
		}
		if err := ev.Validate(); err != nil {
			s.sendError(err)
			return
		}
		t, err := s.mgr.Get(s.tableID)
		if err != nil {
			s.sendError(err)
			return
		}
		_, span := tracing.StartEventSpan(context.Background(), s.tableID, ev.Type)
		out, _, err := t.Apply(ev, time.Now().UTC(), publishTableUpdate(s.tableID))
		if err != nil {
			span.End()
			s.sendError(err)
			return
		}
		tracing.RecordOutcome(span, out)
		span.End()
		_ = sendDirect(s.client, "outcome", out)
	default:
		s.sendError(models.ErrUnknownEventType)
	}
}

func (s *wsSession) sendError(err error) {
	_ = sendDirect(s.client, "error", map[string]any{"error": wsErrorMessage(err)})
}

func sendDirect(c *ws.Client, typ string, payload any) error {
	b, err := ws.Encode(typ, payload)
	if err != nil {
		return err
	}
	if !c.TrySend(b) {
		log.Printf("ws send drop: client_id=%s type=%s", c.ID, typ)
	}
	return nil
}
