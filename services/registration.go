package services

import (
	"fmt"
	"sync"
	"time"

	"hr_timekeeping/models"
	"hr_timekeeping/types"
	"hr_timekeeping/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type pendingAdmin struct {
	Email     string
	Password  string
	ExpiresAt time.Time
}

// PendingStore keeps registration requests in memory until the email link is
// clicked. Entries expire after the configured TTL; the clock is injectable
// so expiry is testable.
type PendingStore struct {
	mu      sync.RWMutex
	pending map[string]pendingAdmin
	ttl     time.Duration
	now     func() time.Time
}

func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		pending: make(map[string]pendingAdmin),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores the credentials and returns the confirmation token. Tokens are
// random, never clock-derived, so they cannot be guessed or collide.
func (ps *PendingStore) Put(email, password string) string {
	token := uuid.New().String()

	ps.mu.Lock()
	ps.pending[token] = pendingAdmin{
		Email:     email,
		Password:  password,
		ExpiresAt: ps.now().Add(ps.ttl),
	}
	ps.mu.Unlock()

	return token
}

// Take removes and returns the entry for token. Expired entries are treated
// as missing and dropped.
func (ps *PendingStore) Take(token string) (string, string, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	entry, ok := ps.pending[token]
	if !ok {
		return "", "", false
	}
	delete(ps.pending, token)
	if ps.now().After(entry.ExpiresAt) {
		return "", "", false
	}
	return entry.Email, entry.Password, true
}

// RegistrationService handles the register-confirm handshake for new admin
// accounts: mail out a confirmation link, then create the account and push
// an EMAIL_CONFIRMED event once the link is followed.
type RegistrationService struct {
	DB             *gorm.DB
	Pending        *PendingStore
	Mailer         Mailer
	Notifier       Notifier
	ConfirmBaseURL string
}

func NewRegistrationService(db *gorm.DB, pending *PendingStore, mailer Mailer, notifier Notifier, confirmBaseURL string) *RegistrationService {
	return &RegistrationService{
		DB:             db,
		Pending:        pending,
		Mailer:         mailer,
		Notifier:       notifier,
		ConfirmBaseURL: confirmBaseURL,
	}
}

// Register parks the credentials and emails a confirmation link.
func (s *RegistrationService) Register(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", types.ErrValidation)
	}

	token := s.Pending.Put(email, password)
	confirmLink := fmt.Sprintf("%s?token=%s", s.ConfirmBaseURL, token)

	if err := s.Mailer.Send(email, "Email Confirmation",
		fmt.Sprintf("Click the link to confirm your email: %s", confirmLink)); err != nil {
		utils.Logger.Error("Failed to send confirmation email",
			zap.String("email", email),
			zap.Error(err))
		return err
	}
	return nil
}

// Confirm finishes registration for a pending token: the admin row is
// created with a bcrypt hash and connected clients are notified.
func (s *RegistrationService) Confirm(token string) error {
	email, password, ok := s.Pending.Take(token)
	if !ok {
		return fmt.Errorf("%w: invalid or expired token", types.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		utils.Logger.Error("Failed to create admin account",
			zap.String("email", email),
			zap.Error(err))
		return err
	}

	s.Notifier.NotifyEmailConfirmed(token)
	return nil
}
