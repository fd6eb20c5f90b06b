package users

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/misl-switch/mislswitch-go/pkg/perm"
)

// MaxUsers is the account capacity of the store.
const MaxUsers = 15

// Store errors.
var (
	// ErrBadCredentials indicates an unknown username or wrong password.
	// The two cases are deliberately indistinguishable.
	ErrBadCredentials = errors.New("authentication failed")

	// ErrStoreFull indicates the account capacity is exhausted.
	ErrStoreFull = errors.New("user store is full")

	// ErrDuplicateUser indicates the username is already taken.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrUnknownUser indicates no account with that username.
	ErrUnknownUser = errors.New("no such user")
)

// User is one account entry.
type User struct {
	Username     string     `yaml:"username"`
	FirstName    string     `yaml:"first_name"`
	LastName     string     `yaml:"last_name"`
	PasswordHash string     `yaml:"password_hash"`
	Permission   perm.Level `yaml:"permission"`
}

// storeFile is the on-disk layout.
type storeFile struct {
	Users []User `yaml:"users"`
}

// Store holds the accounts and persists them to a YAML file.
// It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	users []User
}

// Open loads the store at path. A missing file yields an empty store; the
// file is created on the first mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read user store: %w", err)
	}

	var f storeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse user store: %w", err)
	}
	if len(f.Users) > MaxUsers {
		return nil, fmt.Errorf("%w: %d entries, capacity %d", ErrStoreFull, len(f.Users), MaxUsers)
	}
	s.users = f.Users
	return s, nil
}

// save writes the store back to disk. Caller holds s.mu.
func (s *Store) save() error {
	data, err := yaml.Marshal(storeFile{Users: s.users})
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	return nil
}

// Authenticate verifies an exact username match plus password hash match and
// returns a copy of the account.
func (s *Store) Authenticate(username, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return User{}, ErrBadCredentials
		}
		return u, nil
	}
	return User{}, ErrBadCredentials
}

// Add creates an account with the given cleartext password, hashes it, and
// persists the store.
func (s *Store) Add(u User, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) >= MaxUsers {
		return ErrStoreFull
	}
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return fmt.Errorf("%w: %q", ErrDuplicateUser, u.Username)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	prev := s.users
	s.users = append(s.users, u)
	if err := s.save(); err != nil {
		s.users = prev
		return err
	}
	return nil
}

// Delete removes the account with the given username and persists the store.
func (s *Store) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.Username == username {
			// splice into a fresh slice so a failed save leaves the
			// in-memory accounts matching the file on disk
			next := make([]User, 0, len(s.users)-1)
			next = append(next, s.users[:i]...)
			next = append(next, s.users[i+1:]...)
			prev := s.users
			s.users = next
			if err := s.save(); err != nil {
				s.users = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownUser, username)
}

// List returns a snapshot of all accounts.
func (s *Store) List() []User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// HashPassword produces a bcrypt hash suitable for the store file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
