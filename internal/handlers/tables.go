package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"solitaire-go/internal/config"
	"solitaire-go/internal/game/solitaire"
	"solitaire-go/internal/models"
	"solitaire-go/internal/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type createTableRequest struct {
	Type         string  `json:"type"`
	Seed         *int64  `json:"seed"`
	MaxPasses    *int    `json:"max_passes"`
	EmptyTableau *string `json:"empty_tableau"`
}

// options fills anything the request leaves out from the server defaults.
func (r createTableRequest) options(cfg config.Config) (string, solitaire.Options) {
	gameType := strings.TrimSpace(r.Type)
	if gameType == "" {
		gameType = solitaire.GameType
	}
	rules := solitaire.Rules{
		MaxPasses:    cfg.MaxPasses,
		EmptyTableau: solitaire.EmptyTableauPolicy(cfg.EmptyTableau),
	}
	if r.MaxPasses != nil {
		rules.MaxPasses = *r.MaxPasses
	}
	if r.EmptyTableau != nil {
		rules.EmptyTableau = solitaire.EmptyTableauPolicy(strings.TrimSpace(*r.EmptyTableau))
	}
	return gameType, solitaire.Options{Seed: r.Seed, Rules: rules}
}

func ListGameTypesHandler(mgr *TableManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"types": mgr.Registry().Types()})
	}
}

func ListTablesHandler(mgr *TableManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tables": mgr.List()})
	}
}

func CreateTableHandler(mgr *TableManager, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.CreateTableHandler")
		defer span.End()

		var req createTableRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		gameType, opts := req.options(cfg)
		t, err := mgr.Create(gameType, opts)
		if err != nil {
			span.RecordError(err)
			writeAPIError(c, err)
			return
		}
		info := t.Info()
		span.SetAttributes(attribute.String("table.id", info.ID), attribute.String("table.type", info.Type))
		log.Printf("table created: table_id=%s type=%s seeded=%v", info.ID, info.Type, info.Seed != nil)
		c.JSON(http.StatusCreated, t.View())
	}
}

func GetTableHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := tableFromContext(c)
		if !ok {
			writeAPIError(c, models.ErrTableNotFound)
			return
		}
		c.JSON(http.StatusOK, t.View())
	}
}

func DeleteTableHandler(mgr *TableManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if err := mgr.Delete(id); err != nil {
			writeAPIError(c, err)
			return
		}
		broadcastTableDeleted(id)
		log.Printf("table deleted: table_id=%s", id)
		c.Status(http.StatusNoContent)
	}
}

// TableEventHandler applies one pointer event and pushes the new frame to
// every client watching the table.
func TableEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := tableFromContext(c)
		if !ok {
			writeAPIError(c, models.ErrTableNotFound)
			return
		}
		id := t.Info().ID

		var ev Event
		if err := c.ShouldBindJSON(&ev); err != nil {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		if err := ev.Validate(); err != nil {
			writeAPIError(c, err)
			return
		}
		_, span := tracing.StartEventSpan(c.Request.Context(), id, ev.Type)
		defer span.End()
		out, view, err := t.Apply(ev, time.Now().UTC(), publishTableUpdate(id))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		tracing.RecordOutcome(span, out)
		c.JSON(http.StatusOK, gin.H{"outcome": out, "table": view})
	}
}

// TableDebugHandler exposes face-down cards and the invariant check. It is
// only routed in development.
func TableDebugHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := tableFromContext(c)
		if !ok {
			writeAPIError(c, models.ErrTableNotFound)
			return
		}
		snap, err := t.Debug()
		resp := gin.H{"table": t.Info(), "state": snap, "invariants_ok": err == nil}
		if err != nil {
			log.Printf("table invariant violation: table_id=%s err=%v", t.Info().ID, err)
			resp["invariant_error"] = err.Error()
		}
		c.JSON(http.StatusOK, resp)
	}
}
