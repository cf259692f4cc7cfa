// Package auth is the boundary to the external identity collaborator. The
// service only reads identities: account lifecycle lives with the provider.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/domain"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// State is delivered to auth-state listeners on login and logout.
type State struct {
	Identity *domain.Identity
	LoggedIn bool
}

// Collaborator is the identity surface the rest of the system consumes: it
// stamps creator ids, gates dashboard/upload access, and prefills checkout
// metadata.
type Collaborator interface {
	// Me returns the signed-in identity for the given bearer token.
	Me(token string) (domain.Identity, error)
	// Login validates token, records the session, and notifies listeners.
	Login(token string) (domain.Identity, error)
	// Logout clears the session and notifies listeners.
	Logout()
	// OnAuthStateChanged registers fn and returns its unsubscribe handle.
	OnAuthStateChanged(fn func(State)) (unsubscribe func())
}

// Service implements Collaborator over HS256 bearer tokens issued by the
// identity provider.
type Service struct {
	secret []byte

	mu        sync.RWMutex
	current   *domain.Identity
	listeners map[int]func(State)
	nextID    int
}

var _ Collaborator = (*Service)(nil)

func New(secret string) *Service {
	return &Service{
		secret:    []byte(secret),
		listeners: make(map[int]func(State)),
	}
}

// Secret exposes the signing key for the HTTP layer's JWT middleware.
func (s *Service) Secret() []byte {
	return s.secret
}

func (s *Service) Me(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrNotAuthenticated
	}
	return s.parse(token)
}

func (s *Service) Login(token string) (domain.Identity, error) {
	id, err := s.parse(token)
	if err != nil {
		return domain.Identity{}, err
	}

	s.mu.Lock()
	s.current = &id
	fns := s.snapshotLocked()
	s.mu.Unlock()

	notify(fns, State{Identity: &id, LoggedIn: true})
	zap.L().Info("identity signed in", zap.String("userId", id.ID))
	return id, nil
}

func (s *Service) Logout() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	fns := s.snapshotLocked()
	s.mu.Unlock()

	notify(fns, State{LoggedIn: false})
	if prev != nil {
		zap.L().Info("identity signed out", zap.String("userId", prev.ID))
	}
}

func (s *Service) OnAuthStateChanged(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) parse(token string) (domain.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse identity token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, ErrNotAuthenticated
	}
	return IdentityFromClaims(claims), nil
}

// IdentityFromClaims maps provider token claims onto an Identity.
func IdentityFromClaims(claims map[string]interface{}) domain.Identity {
	return domain.Identity{
		ID:          cast.ToString(claims["sub"]),
		Email:       cast.ToString(claims["email"]),
		DisplayName: cast.ToString(claims["name"]),
		Avatar:      cast.ToString(claims["avatar"]),
	}
}

// IssueToken mints a signed token for id. Used by the development login
// endpoint and by tests; production deployments take tokens from the provider.
func (s *Service) IssueToken(id domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   id.ID,
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if id.DisplayName != "" {
		claims["name"] = id.DisplayName
	}
	if id.Avatar != "" {
		claims["avatar"] = id.Avatar
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign identity token: %w", err)
	}
	return signed, nil
}

func (s *Service) snapshotLocked() []func(State) {
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func(State), st State) {
	for _, fn := range fns {
		fn(st)
	}
}
