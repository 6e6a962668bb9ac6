package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const tableContextKey = "table"

// loadTable resolves :id once per request and stores the table on the context.
func loadTable(mgr *TableManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := mgr.Get(strings.TrimSpace(c.Param("id")))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.Set(tableContextKey, t)
		c.Next()
	}
}

func tableFromContext(c *gin.Context) (*Table, bool) {
	v, ok := c.Get(tableContextKey)
	if !ok || v == nil {
		return nil, false
	}
	t, ok := v.(*Table)
	return t, ok && t != nil
}
