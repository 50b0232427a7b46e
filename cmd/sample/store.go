package main

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence seam of the sample service. Both implementations
// return *UserError for domain failures, so every endpoint's error body and
// status match its documented examples.
type Store interface {
	List(ctx context.Context, role string) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgxStore persists users in Postgres via a pgx pool.
type pgxStore struct {
	pool *pgxpool.Pool
}

func (s *pgxStore) List(ctx context.Context, role string) ([]User, error) {
	const q = `SELECT id, name, email, role, created_at FROM users
	           WHERE $1 = '' OR role = $1 ORDER BY created_at`

	rows, err := s.pool.Query(ctx, q, role)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[User])
}

func (s *pgxStore) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	const q = `SELECT id, name, email, role, created_at FROM users WHERE id = $1`

	rows, err := s.pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgxStore) Create(ctx context.Context, u User) error {
	const q = `INSERT INTO users (id, name, email, role, created_at)
	           VALUES ($1, $2, $3, $4, $5)
	           ON CONFLICT (email) DO NOTHING`

	tag, err := s.pool.Exec(ctx, q, u.ID, u.Name, u.Email, u.Role, u.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errConflict(u.Email)
	}
	return nil
}

func (s *pgxStore) Update(ctx context.Context, u User) error {
	const q = `UPDATE users SET name = $2, email = $3, role = $4 WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNotFound(u.ID)
	}
	return nil
}

func (s *pgxStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNotFound(id)
	}
	return nil
}

// memStore is the in-memory fallback used when DATABASE_URL is unset.
type memStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]User)}
}

func (s *memStore) List(_ context.Context, role string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) Get(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errNotFound(id)
	}
	return &u, nil
}

func (s *memStore) Create(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return errConflict(u.Email)
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *memStore) Update(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return errNotFound(u.ID)
	}
	s.users[u.ID] = u
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return errNotFound(id)
	}
	delete(s.users, id)
	return nil
}
