package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/restaurant-admin-api/internal/application/preview"
)

var _ preview.Store = (*PreviewStore)(nil)

const previewPrefix = "preview:"

// PreviewStore guarda cada scope como JSON en preview:<scopeID> con TTL.
type PreviewStore struct {
	c *redis.Client
}

// NewPreviewStore construye el store.
func NewPreviewStore(c *redis.Client) *PreviewStore {
	return &PreviewStore{c: c}
}

// Save registra el scope. ttl <= 0 no se acepta: un scope sin vencimiento nunca se abandona.
func (s *PreviewStore) Save(ctx context.Context, sc preview.Scope, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("preview store: ttl inválido %s", ttl)
	}
	raw, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encode preview scope: %w", err)
	}
	if err := s.c.Set(ctx, previewPrefix+sc.ScopeID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save preview scope: %w", err)
	}
	return nil
}

// Get devuelve (nil, nil) si la clave no existe.
func (s *PreviewStore) Get(ctx context.Context, scopeID string) (*preview.Scope, error) {
	raw, err := s.c.Get(ctx, previewPrefix+scopeID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preview scope: %w", err)
	}
	var sc preview.Scope
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("decode preview scope: %w", err)
	}
	return &sc, nil
}

// Delete borra la clave. Borrar un scope inexistente no es error.
func (s *PreviewStore) Delete(ctx context.Context, scopeID string) error {
	if err := s.c.Del(ctx, previewPrefix+scopeID).Err(); err != nil {
		return fmt.Errorf("delete preview scope: %w", err)
	}
	return nil
}
