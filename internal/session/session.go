// Package session persists the scalar session fields: the current user, the
// auth token, and the post-login return URL. There is no authentication
// backend; this is session state only.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jcmexdev/mystore/internal/storage"
)

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

type Store struct {
	kv storage.KV
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) SetUser(ctx context.Context, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	return s.kv.Put(ctx, storage.KeyCurrentUser, raw)
}

// User returns the signed-in user, or false when no session exists or the
// stored record is unreadable.
func (s *Store) User(ctx context.Context) (User, bool, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyCurrentUser)
	if err != nil || !ok {
		return User{}, false, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, false, nil
	}
	return u, true, nil
}

func (s *Store) ClearUser(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeyCurrentUser); err != nil {
		return err
	}
	return s.kv.Delete(ctx, storage.KeyAuthToken)
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.kv.Put(ctx, storage.KeyAuthToken, []byte(token))
}

func (s *Store) Token(ctx context.Context) (string, error) {
	raw, _, err := s.kv.Get(ctx, storage.KeyAuthToken)
	return string(raw), err
}

func (s *Store) SetReturnURL(ctx context.Context, url string) error {
	return s.kv.Put(ctx, storage.KeyReturnURL, []byte(url))
}

func (s *Store) ReturnURL(ctx context.Context) (string, error) {
	raw, _, err := s.kv.Get(ctx, storage.KeyReturnURL)
	return string(raw), err
}
