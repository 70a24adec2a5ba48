package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/estilobarber/reservas-api/internal/models"
)

const (
	keyServices = "catalog:services"
	keyBarbers  = "catalog:barbers"
)

// Catalog cachea las proyecciones de solo lectura que consume el
// asistente (catálogo de servicios y barberos disponibles). Las
// fallas de Redis degradan a un miss: la fuente de verdad sigue
// siendo Postgres.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewCatalog(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Catalog {
	return &Catalog{rdb: rdb, ttl: ttl, log: log}
}

func (c *Catalog) GetServices(ctx context.Context) ([]models.Service, bool) {
	var services []models.Service
	if !c.get(ctx, keyServices, &services) {
		return nil, false
	}
	return services, true
}

func (c *Catalog) SetServices(ctx context.Context, services []models.Service) {
	c.set(ctx, keyServices, services)
}

func (c *Catalog) GetBarbers(ctx context.Context) ([]models.Profile, bool) {
	var barbers []models.Profile
	if !c.get(ctx, keyBarbers, &barbers) {
		return nil, false
	}
	return barbers, true
}

func (c *Catalog) SetBarbers(ctx context.Context, barbers []models.Profile) {
	c.set(ctx, keyBarbers, barbers)
}

// InvalidateBarbers se llama cuando cambia el estado de un barbero
// para que el paso 2 no ofrezca barberos recién deshabilitados.
func (c *Catalog) InvalidateBarbers(ctx context.Context) {
	if err := c.rdb.Del(ctx, keyBarbers).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache invalidate failed")
	}
}

func (c *Catalog) get(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache decode failed")
		return false
	}
	return true
}

func (c *Catalog) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
