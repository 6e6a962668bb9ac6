package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"solitaire-go/internal/game"
	"solitaire-go/internal/game/solitaire"
	ws "solitaire-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newWSServer(t *testing.T) (*httptest.Server, *TableManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	provider := func() (*ws.Hub, bool) { return hub, true }
	SetHubProvider(provider)
	SetWebSocketOriginPolicy(false, false, nil)

	mgr := NewTableManager(game.NewDefaultRegistry(), 0)
	r := gin.New()
	r.GET("/ws", WebSocketHandler(provider, mgr))
	RegisterTableRoutes(r.Group("/api"), mgr, testConfig())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, mgr
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// next reads frames until one of type typ arrives.
func next(t *testing.T, conn *websocket.Conn, typ string) json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var env wsEnvelope
		require.NoError(t, conn.ReadJSON(&env))
		if env.Type == typ {
			return env.Payload
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"type": typ, "payload": payload}))
}

func TestWebSocketPointerEventsBroadcast(t *testing.T) {
	srv, mgr := newWSServer(t)
	tbl, err := mgr.Create(solitaire.GameType, solitaire.Options{})
	require.NoError(t, err)
	id := tbl.Info().ID

	player := dial(t, srv, "?table="+id)
	next(t, player, "connected")
	watcher := dial(t, srv, "")
	next(t, watcher, "connected")
	send(t, watcher, "join_table", map[string]string{"table_id": id})
	next(t, watcher, "table_update")

	send(t, player, EventPointerDown, map[string]float64{"x": 60, "y": 60})
	var out solitaire.Outcome
	require.NoError(t, json.Unmarshal(next(t, player, "outcome"), &out))
	assert.Equal(t, solitaire.OutcomeDrew, out.Kind)

	var view struct {
		State struct {
			Moves int `json:"moves"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(next(t, watcher, "table_update"), &view))
	assert.Equal(t, 1, view.State.Moves)
}

func TestWebSocketTableDeletedNotice(t *testing.T) {
	srv, mgr := newWSServer(t)
	tbl, err := mgr.Create(solitaire.GameType, solitaire.Options{})
	require.NoError(t, err)
	id := tbl.Info().ID

	watcher := dial(t, srv, "?table="+id)
	next(t, watcher, "connected")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/tables/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var p struct {
		TableID string `json:"table_id"`
	}
	require.NoError(t, json.Unmarshal(next(t, watcher, "table_deleted"), &p))
	assert.Equal(t, id, p.TableID)

	send(t, watcher, EventPointerDown, map[string]float64{"x": 60, "y": 60})
	var e struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(next(t, watcher, "error"), &e))
	assert.Equal(t, "table not found", e.Error)
}

func TestWebSocketErrors(t *testing.T) {
	srv, _ := newWSServer(t)
	conn := dial(t, srv, "")
	next(t, conn, "connected")

	errorText := func() string {
		var p struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(next(t, conn, "error"), &p))
		return p.Error
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	assert.Equal(t, "invalid json", errorText())

	send(t, conn, "shuffle", nil)
	assert.Equal(t, "unknown event type", errorText())

	// Pointer events need a table first.
	send(t, conn, EventPointerDown, map[string]float64{"x": 1, "y": 1})
	assert.Equal(t, "table not found", errorText())

	send(t, conn, "join_table", map[string]string{"table_id": "nope"})
	assert.Equal(t, "table not found", errorText())
}

func TestWebSocketUnknownTableRejected(t *testing.T) {
	srv, _ := newWSServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?table=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketOriginPolicy(t *testing.T) {
	t.Cleanup(func() { SetWebSocketOriginPolicy(false, false, nil) })
	check := func(origin string) bool {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return upgrader.CheckOrigin(r)
	}

	SetWebSocketOriginPolicy(false, false, []string{"https://cards.example"})
	assert.True(t, check(""))
	assert.True(t, check("https://cards.example"))
	assert.False(t, check("http://localhost:5173"))

	SetWebSocketOriginPolicy(true, false, nil)
	assert.True(t, check("http://localhost:5173"))
	assert.False(t, check("https://cards.example"))

	SetWebSocketOriginPolicy(true, true, nil)
	assert.True(t, check("https://anything.example"))
}
