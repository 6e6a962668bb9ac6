package handlers

import (
	"solitaire-go/internal/config"

	"github.com/gin-gonic/gin"
)

// RegisterTableRoutes wires the table endpoints under rg.
func RegisterTableRoutes(rg *gin.RouterGroup, mgr *TableManager, cfg config.Config) {
	rg.GET("/game-types", ListGameTypesHandler(mgr))
	rg.GET("/tables", ListTablesHandler(mgr))
	rg.POST("/tables", CreateTableHandler(mgr, cfg))
	rg.DELETE("/tables/:id", DeleteTableHandler(mgr))

	table := rg.Group("/tables/:id", loadTable(mgr))
	table.GET("", GetTableHandler())
	table.POST("/events", TableEventHandler())
	if cfg.IsDev() {
		table.GET("/debug", TableDebugHandler())
	}
}
