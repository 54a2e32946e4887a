package auth

import (
	"context"
	"strings"
	"time"
)

// Session datos guardados por token de staff.
type Session struct {
	Token    string    `json:"token"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}

// SessionStore almacén de sesiones con vencimiento (Redis en producción).
type SessionStore interface {
	Save(ctx context.Context, key string, s Session, ttl time.Duration) error
	// Load devuelve nil, nil si la clave no existe o venció.
	Load(ctx context.Context, key string) (*Session, error)
	Delete(ctx context.Context, key string) error
}

// AuthSession guarda, recupera y limpia sesiones sobre un SessionStore.
type AuthSession struct {
	store SessionStore
	ttl   time.Duration
}

// NewAuthSession ttl <= 0 usa 12h.
func NewAuthSession(store SessionStore, ttl time.Duration) *AuthSession {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthSession{store: store, ttl: ttl}
}

func (a *AuthSession) Persist(ctx context.Context, s Session) error {
	return a.store.Save(ctx, sessionKey(s.Token), s, a.ttl)
}

func (a *AuthSession) Restore(ctx context.Context, token string) (*Session, error) {
	token = TokenFromHeader(token)
	if token == "" {
		return nil, nil
	}
	return a.store.Load(ctx, sessionKey(token))
}

func (a *AuthSession) Clear(ctx context.Context, token string) error {
	token = TokenFromHeader(token)
	if token == "" {
		return nil
	}
	return a.store.Delete(ctx, sessionKey(token))
}

func sessionKey(token string) string { return "session:" + token }

// TokenFromHeader quita el prefijo Bearer. Los literales "undefined" y "null"
// que mandan algunos clientes cuentan como token ausente.
func TokenFromHeader(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		h = strings.TrimSpace(h[7:])
	}
	switch h {
	case "undefined", "null":
		return ""
	}
	return h
}
