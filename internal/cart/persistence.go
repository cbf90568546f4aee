package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Persister fait survivre un panier au rechargement de la page. Load doit
// tolérer un état absent ou corrompu et rendre un panier vide.
type Persister interface {
	Load(ctx context.Context, sessionID string) (*Store, error)
	Save(ctx context.Context, sessionID string, s *Store) error
	Delete(ctx context.Context, sessionID string) error
}

// Durée de vie d'un panier en Redis : 30 jours, comme la session.
const cartTTL = 30 * 24 * time.Hour

// RedisPersister stocke les lignes du panier en JSON sous cart:<sessionID> et
// publie sur le canal du même nom pour la synchro temps réel.
type RedisPersister struct {
	client *redis.Client
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (r *RedisPersister) Load(ctx context.Context, sessionID string) (*Store, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil || data == "" {
		return NewStore(), nil
	}
	if err != nil {
		return nil, err
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		// État corrompu : on repart d'un panier vide plutôt que d'échouer
		log.Printf("⚠️ Panier illisible pour %s, réinitialisé: %v", sessionID, err)
		return NewStore(), nil
	}
	return NewStoreFrom(items), nil
}

func (r *RedisPersister) Save(ctx context.Context, sessionID string, s *Store) error {
	data, err := json.Marshal(s.Items())
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, cartKey(sessionID), data, cartTTL).Err(); err != nil {
		return err
	}
	r.client.Publish(ctx, cartKey(sessionID), "updated")
	return nil
}

func (r *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return err
	}
	r.client.Publish(ctx, cartKey(sessionID), "cleared")
	return nil
}
