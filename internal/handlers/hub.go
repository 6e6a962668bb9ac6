package handlers

import (
	ws "solitaire-go/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// hubProvider is set by main at startup so HTTP handlers can broadcast realtime updates.
var hubProvider func() (*ws.Hub, bool)

func SetHubProvider(p func() (*ws.Hub, bool)) {
	hubProvider = p
}

func tableRoom(tableID string) string { return "table:" + tableID }

func broadcastToTable(tableID, typ string, payload any) {
	if hubProvider == nil {
		return
	}
	hub, ok := hubProvider()
	if !ok || hub == nil {
		return
	}
	hub.Broadcast(tableRoom(tableID), typ, payload)
}

// publishTableUpdate returns the publish hook Table.Apply calls under the
// table lock.
func publishTableUpdate(tableID string) func(*TableView) {
	return func(view *TableView) {
		broadcastToTable(tableID, "table_update", view)
	}
}

func broadcastTableDeleted(tableID string) {
	broadcastToTable(tableID, "table_deleted", gin.H{"table_id": tableID})
}
