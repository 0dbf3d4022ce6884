package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/isdelr/mindmate-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// PasswordStorage turns a password into its stored form and checks a
// candidate against it.
type PasswordStorage interface {
	Hash(password string) (string, error)
	Matches(stored, candidate string) bool
}

// PlainPasswords stores and compares passwords as given.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) { return password, nil }

func (PlainPasswords) Matches(stored, candidate string) bool { return stored == candidate }

// BcryptPasswords stores bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (BcryptPasswords) Matches(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// NewPasswordStorage returns the storage for a PASSWORD_STORAGE value.
func NewPasswordStorage(kind string) (PasswordStorage, error) {
	switch kind {
	case "", "plain":
		return PlainPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password storage %q", kind)
	}
}

// AccountServiceProvider defines the interface for the account directory.
type AccountServiceProvider interface {
	CreateAccount(username, password string) error
	Authenticate(username, password string) error
	UpdatePassword(username, newPassword string) error
	Exists(username string) bool
}

// AccountService is the in-memory account directory shared by all sessions.
// Accounts are never deleted.
type AccountService struct {
	mu        sync.RWMutex
	accounts  map[string]models.Account
	passwords PasswordStorage
}

// NewAccountService creates a new AccountService.
func NewAccountService(passwords PasswordStorage) *AccountService {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &AccountService{
		accounts:  make(map[string]models.Account),
		passwords: passwords,
	}
}

// CreateAccount adds a new account. It does not log anyone in.
func (s *AccountService) CreateAccount(username, password string) error {
	stored, err := s.passwords.Hash(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; exists {
		return ErrDuplicateUsername
	}
	s.accounts[username] = models.Account{
		Username:  username,
		Password:  stored,
		CreatedAt: time.Now(),
	}
	return nil
}

// Authenticate verifies a user's credentials.
func (s *AccountService) Authenticate(username, password string) error {
	s.mu.RLock()
	account, ok := s.accounts[username]
	s.mu.RUnlock()

	if !ok || !s.passwords.Matches(account.Password, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// UpdatePassword overwrites the stored password of an existing account.
func (s *AccountService) UpdatePassword(username, newPassword string) error {
	if newPassword == "" {
		return ErrEmptyPassword
	}
	stored, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[username]
	if !ok {
		return fmt.Errorf("could not find user %q to update password", username)
	}
	account.Password = stored
	s.accounts[username] = account
	return nil
}

// Exists reports whether username is taken.
func (s *AccountService) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[username]
	return ok
}
