package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"go-storefront/models"
	"go-storefront/utils"
)

// Session is the in-memory view of a logged-in principal.
type Session struct {
	Token     string      `json:"token"`
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SessionService holds active sessions in memory and mirrors them to a JSON
// file so a restart does not log everyone out. Login and signup check
// credentials against the remote principal records.
type SessionService struct {
	users UserStore

	mu       sync.RWMutex
	sessions map[string]Session
	file     string
}

// NewSessionService loads any previously persisted sessions from file. An
// empty file path keeps sessions memory-only.
func NewSessionService(users UserStore, file string) *SessionService {
	s := &SessionService{
		users:    users,
		sessions: make(map[string]Session),
		file:     file,
	}
	s.load()
	return s
}

// Signup creates a new principal with an empty cart, wishlist and history.
// The email must be unused; the password is stored bcrypt-hashed.
func (s *SessionService) Signup(ctx context.Context, firstname, lastname, email, password string) (*models.Principal, error) {
	existing, err := s.users.UsersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("signup lookup: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.CreateUser(ctx, models.Principal{
		Firstname:         firstname,
		Lastname:          lastname,
		Email:             email,
		Password:          string(hashed),
		Role:              models.RoleUser,
		Status:            models.StatusActive,
		Cart:              []models.CartEntry{},
		Wishlist:          []models.ProductRef{},
		Orders:            []models.Order{},
		ShippingAddresses: []models.Address{},
	})
	if err != nil {
		return nil, fmt.Errorf("signup create: %w", err)
	}
	created.Password = ""
	return created, nil
}

// Login checks credentials against the stored records and opens a session.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *models.Principal, error) {
	matches, err := s.users.UsersByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}
	if len(matches) == 0 {
		return "", nil, ErrInvalidCredentials
	}
	user := matches[0]

	if user.Status == models.StatusInactive {
		return "", nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	s.sessions[token] = Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	s.mu.Unlock()
	s.persist()

	user.Password = ""
	return token, &user, nil
}

// Logout drops the session for token; unknown tokens are a no-op.
func (s *SessionService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	s.persist()
}

// Current returns the session for token, if one is active.
func (s *SessionService) Current(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

// Principal fetches the full record backing the session.
func (s *SessionService) Principal(ctx context.Context, sess Session) (*models.Principal, error) {
	p, err := s.users.UserByID(ctx, sess.UserID)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Password = ""
	return p, nil
}

func (s *SessionService) load() {
	if s.file == "" {
		return
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to load session file %s: %v", s.file, err)
		}
		return
	}
	var sessions map[string]Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Printf("failed to parse session file %s: %v", s.file, err)
		return
	}
	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
}

// persist is best-effort; a failed write is logged, sessions stay usable in
// memory.
func (s *SessionService) persist() {
	if s.file == "" {
		return
	}
	s.mu.RLock()
	data, err := json.MarshalIndent(s.sessions, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		log.Printf("failed to encode sessions: %v", err)
		return
	}
	if err := os.WriteFile(s.file, data, 0o600); err != nil {
		log.Printf("failed to write session file %s: %v", s.file, err)
	}
}

// UpdateProfile edits the caller's own name fields.
func (s *SessionService) UpdateProfile(ctx context.Context, sess Session, firstname, lastname string) (*models.Principal, error) {
	fields := map[string]interface{}{}
	if firstname != "" {
		fields["firstname"] = firstname
	}
	if lastname != "" {
		fields["lastname"] = lastname
	}

	updated, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error { return nil },
		func(p *models.Principal) map[string]interface{} { return fields },
	)
	if err != nil {
		return nil, err
	}
	updated.Password = ""
	return updated, nil
}
