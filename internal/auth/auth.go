// Package auth is the mocked authentication from the storefront: any
// non-empty credentials succeed and the session is a persisted snapshot.
// No real credential verification happens here.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhnipu/smart-shopper-galaxy/internal/kv"
	"github.com/mhnipu/smart-shopper-galaxy/internal/notify"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const storageKey = "user"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	mu       sync.RWMutex
	current  *User
	store    kv.Store
	notifier notify.Notifier
}

func NewService(ctx context.Context, store kv.Store, notifier notify.Notifier) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
	}

	data, err := store.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("auth: load session: %v", err)
		}
		return s
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("auth: corrupt session, discarding: %v", err)
		if err := store.Delete(ctx, storageKey); err != nil {
			log.Printf("auth: delete corrupt session: %v", err)
		}
		return s
	}
	s.current = &user
	return s
}

// Login accepts any non-empty email/password pair. The role comes from the
// email, matching the demo behavior of the storefront.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user := &User{
		ID:        "user-" + uuid.NewString(),
		Email:     email,
		Name:      strings.SplitN(email, "@", 2)[0],
		Role:      roleFor(email),
		CreatedAt: time.Now().UTC(),
	}

	s.setCurrent(ctx, user)
	s.notifier.Notify("Login successful")
	return user, nil
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	if email == "" || password == "" || name == "" {
		return nil, ErrInvalidCredentials
	}

	user := &User{
		ID:        "user-" + uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      "customer",
		CreatedAt: time.Now().UTC(),
	}

	s.setCurrent(ctx, user)
	s.notifier.Notify("Registration successful")
	return user, nil
}

func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, storageKey); err != nil {
		log.Printf("auth: clear session: %v", err)
	}
	s.notifier.Notify("Logged out")
}

// CurrentUser returns the signed-in user, or nil.
func (s *Service) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *Service) setCurrent(ctx context.Context, user *User) {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		log.Printf("auth: marshal session: %v", err)
		return
	}
	if err := s.store.Set(ctx, storageKey, data); err != nil {
		log.Printf("auth: persist session: %v", err)
	}
}

func roleFor(email string) string {
	switch {
	case strings.Contains(email, "admin"):
		return "admin"
	case strings.Contains(email, "vendor"):
		return "vendor"
	default:
		return "customer"
	}
}
