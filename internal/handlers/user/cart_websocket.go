package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"smartgear_back_end/internal/database"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket synchronise le panier en temps réel entre les onglets d'une
// même session : chaque modification publiée sur le canal Redis du panier est
// repoussée au client avec les totaux recalculés.
func CartWebSocket(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session requise"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.RedisClient.Subscribe(ctx, "cart:"+sessionID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	persister := cartPersister()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" && msg.Payload != "drawer" {
				continue
			}

			store, err := persister.Load(ctx, sessionID)
			if err != nil {
				log.Printf("⚠️ Panier illisible pendant la synchro WebSocket: %v", err)
				continue
			}

			response := cartResponse(ctx, sessionID, store)
			response["type"] = "cart_updated"

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
