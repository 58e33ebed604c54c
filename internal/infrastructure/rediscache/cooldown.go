package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/cardstock-pro/internal/application/monitor"
	"github.com/tu-usuario/cardstock-pro/pkg/config"
)

var _ monitor.CooldownStore = (*CooldownStore)(nil)

const cooldownKeyPrefix = "cooldown:"

// CooldownStore ventana de enfriamiento de alertas sobre Redis: un SET NX con
// TTL por bucket. El primer caller dentro de la ventana gana; los demás
// no repiten la alerta hasta que la clave expire.
type CooldownStore struct {
	client *redis.Client
}

// NewClient crea el cliente Redis de la app.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewCooldownStore construye el store con un cliente ya configurado.
func NewCooldownStore(client *redis.Client) *CooldownStore {
	return &CooldownStore{client: client}
}

// Acquire devuelve true si este caller ganó la ventana para la clave.
func (s *CooldownStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, cooldownKeyPrefix+key, 1, ttl).Result()
}

// Release devuelve la ventana antes de que expire el TTL.
func (s *CooldownStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, cooldownKeyPrefix+key).Err()
}
