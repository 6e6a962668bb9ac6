package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"solitaire-go/internal/config"
	"solitaire-go/internal/game"
	"solitaire-go/internal/game/solitaire"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{AppEnv: "development", MaxTables: 10, EmptyTableau: "king"}
}

func newTestRouter(t *testing.T, cfg config.Config) (*gin.Engine, *TableManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mgr := NewTableManager(game.NewDefaultRegistry(), cfg.MaxTables)
	r := gin.New()
	RegisterTableRoutes(r.Group("/api"), mgr, cfg)
	return r, mgr
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type viewResponse struct {
	Table struct {
		ID           string `json:"id"`
		Type         string `json:"type"`
		Status       string `json:"status"`
		Seed         *int64 `json:"seed"`
		MaxPasses    int    `json:"max_passes"`
		EmptyTableau string `json:"empty_tableau"`
		Events       int64  `json:"events"`
	} `json:"table"`
	State struct {
		Piles []struct {
			ID    string `json:"id"`
			Role  string `json:"role"`
			Cards []struct {
				Card   *json.RawMessage `json:"card"`
				FaceUp bool             `json:"face_up"`
			} `json:"cards"`
		} `json:"piles"`
		Held   *json.RawMessage `json:"held"`
		Source string           `json:"source"`
		Moves  int              `json:"moves"`
		Passes int              `json:"passes"`
		Won    bool             `json:"won"`
	} `json:"state"`
}

func createTable(t *testing.T, r http.Handler, body any) viewResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/tables", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var v viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func pileCount(v viewResponse, id string) int {
	for _, p := range v.State.Piles {
		if p.ID == id {
			return len(p.Cards)
		}
	}
	return -1
}

func TestCreateTableDefaults(t *testing.T) {
	r, mgr := newTestRouter(t, testConfig())

	v := createTable(t, r, nil)
	assert.NotEmpty(t, v.Table.ID)
	assert.Equal(t, solitaire.GameType, v.Table.Type)
	assert.Equal(t, "playing", v.Table.Status)
	assert.Equal(t, "king", v.Table.EmptyTableau)
	assert.Nil(t, v.Table.Seed)
	assert.Equal(t, 1, v.State.Passes)
	assert.Len(t, v.State.Piles, 13)
	assert.Equal(t, 24, pileCount(v, "stock"))
	assert.Equal(t, 7, pileCount(v, "tableau-6"))
	assert.Len(t, mgr.List(), 1)
}

func TestCreateTableHidesFaceDownCards(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	v := createTable(t, r, map[string]any{"seed": 7})

	for _, p := range v.State.Piles {
		for _, c := range p.Cards {
			if c.FaceUp {
				assert.NotNil(t, c.Card, "pile %s", p.ID)
			} else {
				assert.Nil(t, c.Card, "pile %s", p.ID)
			}
		}
	}
}

func TestCreateTableRequestOverrides(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	v := createTable(t, r, map[string]any{
		"type":          "klondike",
		"seed":          42,
		"max_passes":    3,
		"empty_tableau": "any",
	})
	require.NotNil(t, v.Table.Seed)
	assert.Equal(t, int64(42), *v.Table.Seed)
	assert.Equal(t, 3, v.Table.MaxPasses)
	assert.Equal(t, "any", v.Table.EmptyTableau)
}

func TestCreateTableSameSeedSameDeal(t *testing.T) {
	r, mgr := newTestRouter(t, testConfig())
	a := createTable(t, r, map[string]any{"seed": 99})
	b := createTable(t, r, map[string]any{"seed": 99})

	ta, err := mgr.Get(a.Table.ID)
	require.NoError(t, err)
	tb, err := mgr.Get(b.Table.ID)
	require.NoError(t, err)
	sa, _ := ta.Debug()
	sb, _ := tb.Debug()
	assert.Equal(t, sa.Piles, sb.Piles)
}

func TestCreateTableErrors(t *testing.T) {
	cases := []struct {
		name string
		body any
		code int
		msg  string
	}{
		{"bad json", `{"seed":`, http.StatusBadRequest, "invalid json"},
		{"unknown type", map[string]any{"type": "spider"}, http.StatusBadRequest, "unknown game type"},
		{"negative passes", map[string]any{"max_passes": -1}, http.StatusBadRequest, "invalid rules"},
		{"bad policy", map[string]any{"empty_tableau": "queen"}, http.StatusBadRequest, "invalid rules"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newTestRouter(t, testConfig())
			w := doJSON(t, r, http.MethodPost, "/api/tables", tc.body)
			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, `{"error":"`+tc.msg+`"}`, w.Body.String())
		})
	}
}

func TestCreateTableLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTables = 1
	r, _ := newTestRouter(t, cfg)
	createTable(t, r, nil)

	w := doJSON(t, r, http.MethodPost, "/api/tables", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetAndDeleteTable(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	v := createTable(t, r, nil)

	w := doJSON(t, r, http.MethodGet, "/api/tables/"+v.Table.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/tables/"+v.Table.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/tables/"+v.Table.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/tables/"+v.Table.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListGameTypes(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	w := doJSON(t, r, http.MethodGet, "/api/game-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"types":["klondike"]}`, w.Body.String())
}

type eventResponse struct {
	Outcome solitaire.Outcome `json:"outcome"`
	Table   viewResponse      `json:"table"`
}

func postEvent(t *testing.T, r http.Handler, id string, ev Event) eventResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/tables/"+id+"/events", ev)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp eventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestTableEventStockDraw(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	v := createTable(t, r, map[string]any{"seed": 1})

	resp := postEvent(t, r, v.Table.ID, Event{Type: EventPointerDown, X: 60, Y: 60})
	assert.Equal(t, solitaire.OutcomeDrew, resp.Outcome.Kind)
	assert.Equal(t, 23, pileCount(resp.Table, "stock"))
	assert.Equal(t, 1, pileCount(resp.Table, "waste"))
	assert.Equal(t, 1, resp.Table.State.Moves)
	assert.Equal(t, int64(1), resp.Table.Table.Events)
}

func TestTableEventDragAndReturn(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	v := createTable(t, r, map[string]any{"seed": 1})
	id := v.Table.ID

	// Top card of the last column sits at (1000, 384).
	down := postEvent(t, r, id, Event{Type: EventPointerDown, X: 1010, Y: 394})
	require.Equal(t, solitaire.OutcomeLifted, down.Outcome.Kind)
	assert.Equal(t, solitaire.TableauID(6), down.Outcome.Source)
	assert.Equal(t, 1, down.Outcome.Cards)
	assert.NotNil(t, down.Table.State.Held)
	assert.Equal(t, 6, pileCount(down.Table, "tableau-6"))

	move := postEvent(t, r, id, Event{Type: EventPointerMove, X: 1010, Y: 900})
	assert.Equal(t, solitaire.OutcomeNone, move.Outcome.Kind)
	assert.NotNil(t, move.Table.State.Held)

	up := postEvent(t, r, id, Event{Type: EventPointerUp, X: 1010, Y: 900})
	assert.Equal(t, solitaire.OutcomeReturned, up.Outcome.Kind)
	assert.Nil(t, up.Table.State.Held)
	assert.Equal(t, 7, pileCount(up.Table, "tableau-6"))
	assert.Equal(t, 0, up.Table.State.Moves)
}

func TestTableEventErrors(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	v := createTable(t, r, nil)
	path := "/api/tables/" + v.Table.ID + "/events"

	w := doJSON(t, r, http.MethodPost, path, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid json"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, path, Event{Type: "double_click"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"unknown event type"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/tables/missing/events", Event{Type: EventPointerDown})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTableDebugRoute(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	v := createTable(t, r, nil)

	w := doJSON(t, r, http.MethodGet, "/api/tables/"+v.Table.ID+"/debug", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		InvariantsOK bool               `json:"invariants_ok"`
		State        solitaire.Snapshot `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.InvariantsOK)
	assert.Len(t, resp.State.Piles, 13)

	prod := testConfig()
	prod.AppEnv = "production"
	r, _ = newTestRouter(t, prod)
	v = createTable(t, r, nil)
	w = doJSON(t, r, http.MethodGet, "/api/tables/"+v.Table.ID+"/debug", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
