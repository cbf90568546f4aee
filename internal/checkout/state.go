package checkout

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Le tunnel survit à un rechargement de page : étape courante et infos de
// livraison sont gardées en Redis sous checkout:<sessionID> pendant 24 h.
const flowTTL = 24 * time.Hour

type FlowStore struct {
	client *redis.Client
}

func NewFlowStore(client *redis.Client) *FlowStore {
	return &FlowStore{client: client}
}

func flowKey(sessionID string) string {
	return "checkout:" + sessionID
}

// Load relit le tunnel d'une session. Absent ou corrompu : on repart au panier.
func (fs *FlowStore) Load(ctx context.Context, sessionID string) *Flow {
	data, err := fs.client.Get(ctx, flowKey(sessionID)).Result()
	if err != nil || data == "" {
		return NewFlow()
	}

	var f Flow
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		log.Printf("⚠️ État checkout illisible pour %s, réinitialisé: %v", sessionID, err)
		return NewFlow()
	}
	switch f.Step {
	case StepCart, StepShipping, StepPayment, StepConfirmation:
	default:
		return NewFlow()
	}
	return &f
}

func (fs *FlowStore) Save(ctx context.Context, sessionID string, f *Flow) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return fs.client.Set(ctx, flowKey(sessionID), data, flowTTL).Err()
}

func (fs *FlowStore) Delete(ctx context.Context, sessionID string) error {
	return fs.client.Del(ctx, flowKey(sessionID)).Err()
}

// AcquirePlacementLock empêche une double soumission pendant qu'un placement
// est en vol : le bouton est désactivé côté client, le verrou côté serveur.
func (fs *FlowStore) AcquirePlacementLock(ctx context.Context, sessionID string) (bool, error) {
	return fs.client.SetNX(ctx, "checkout:placing:"+sessionID, "1", 30*time.Second).Result()
}

func (fs *FlowStore) ReleasePlacementLock(ctx context.Context, sessionID string) {
	fs.client.Del(ctx, "checkout:placing:"+sessionID)
}
