// Package redis caché de lectura de usuarios sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
)

var _ repository.UserCache = (*UserCache)(nil)

const keyPrefix = "users:"

// NewClient conecta con Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis: dirección vacía")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// UserCache guarda usuarios serializados en JSON bajo users:<id>.
// El hash de contraseña nunca se almacena en caché.
type UserCache struct {
	rc  redis.Cmdable
	ttl time.Duration
}

func NewUserCache(rc redis.Cmdable, ttl time.Duration) *UserCache {
	return &UserCache{rc: rc, ttl: ttl}
}

// Key clave de caché de un usuario.
func Key(id string) string {
	return keyPrefix + id
}

type cachedUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Image     *string    `json:"image,omitempty"`
	Username  string     `json:"username"`
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreateAt  time.Time  `json:"create_at"`
	UpdateAt  *time.Time `json:"update_at,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (c *UserCache) Get(ctx context.Context, id string) (*entity.User, bool, error) {
	raw, err := c.rc.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, false, fmt.Errorf("decodificar usuario en caché: %w", err)
	}
	return &entity.User{
		ID:        cu.ID,
		Email:     cu.Email,
		Image:     cu.Image,
		Username:  cu.Username,
		FirstName: cu.FirstName,
		LastName:  cu.LastName,
		IsActive:  cu.IsActive,
		CreateAt:  cu.CreateAt,
		UpdateAt:  cu.UpdateAt,
		LastLogin: cu.LastLogin,
	}, true, nil
}

func (c *UserCache) Set(ctx context.Context, u *entity.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:        u.ID,
		Email:     u.Email,
		Image:     u.Image,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreateAt:  u.CreateAt,
		UpdateAt:  u.UpdateAt,
		LastLogin: u.LastLogin,
	})
	if err != nil {
		return fmt.Errorf("codificar usuario: %w", err)
	}
	if err := c.rc.Set(ctx, Key(u.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *UserCache) Delete(ctx context.Context, id string) error {
	if err := c.rc.Del(ctx, Key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
