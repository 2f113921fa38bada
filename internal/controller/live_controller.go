package controller

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/live"
)

// liveCollections are the public collections clients may watch.
var liveCollections = map[string]bool{
	string(store.Destinations): true,
	string(store.Hotels):       true,
	string(store.Activities):   true,
	string(store.TravelThemes): true,
}

const localCollection = "live_collection"

// LiveController streams change events so open pages can re-fetch their lists.
type LiveController struct {
	hub *live.Hub
}

func NewLiveController(hub *live.Hub) *LiveController {
	return &LiveController{hub: hub}
}

// Upgrade accepts websocket handshakes for watchable collections only.
func (ctl *LiveController) Upgrade(c *fiber.Ctx) error {
	collection := c.Params("collection")
	if !liveCollections[collection] {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown collection",
		})
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(localCollection, collection)
	return c.Next()
}

// Stream forwards hub events until the client goes away.
func (ctl *LiveController) Stream(conn *websocket.Conn) {
	collection, _ := conn.Locals(localCollection).(string)
	events, unsubscribe := ctl.hub.Subscribe(collection)
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("Live %s: write failed: %v", collection, err)
				return
			}
		case <-closed:
			return
		}
	}
}
