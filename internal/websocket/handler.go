package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches one transcript viewer connection to the hub.
func ServeWs(hub *Hub, c *websocket.Conn, caseID string) {
	client := &Client{Hub: hub, Conn: c, CaseID: caseID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
