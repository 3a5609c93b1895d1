package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "user-balance-service/internal/domain/user"
	"user-balance-service/pkg/logger"
)

// UserStore implements the ledger repository in process memory.
// Users are kept in a slice indexed by id-1, which is valid because ids
// are dense and never reused. A single RWMutex guards every read and write.
type UserStore struct {
	mu      sync.RWMutex
	users   []*domain.User   // users[id-1]
	byEmail map[string]int64 // exact email -> id
	log     *zap.Logger
}

// NewUserStore creates an empty store. The first created user gets id 1.
func NewUserStore(log *zap.Logger) *UserStore {
	return &UserStore{
		byEmail: make(map[string]int64),
		log:     log,
	}
}

// Create inserts a new user after checking email uniqueness.
// The duplicate check, id assignment and insertion happen under one lock.
func (s *UserStore) Create(ctx context.Context, name, email string, balance float64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		logger.WithContext(ctx, s.log).Debug("duplicate email rejected by store", zap.String("email", email))
		return nil, domain.ErrDuplicateEmail
	}

	u := &domain.User{
		ID:      int64(len(s.users)) + 1,
		Name:    name,
		Email:   email,
		Balance: balance,
	}
	s.users = append(s.users, u)
	s.byEmail[email] = u.ID

	logger.WithContext(ctx, s.log).Debug("user stored", zap.Int64("id", u.ID))
	out := *u
	return &out, nil
}

// GetByID returns a copy of the user, or nil when the id is unknown.
func (s *UserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.lookup(id)
	if u == nil {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// List returns copies of all users in creation order.
func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, len(s.users))
	for i, u := range s.users {
		users[i] = *u
	}
	return users, nil
}

// Transfer validates and applies a transfer as one critical section and
// returns a copy of the sender after the move. On error nothing is changed.
func (s *UserStore) Transfer(ctx context.Context, fromID, toID int64, amount float64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.lookup(fromID)
	to := s.lookup(toID)
	if err := domain.ValidateTransfer(from, to, fromID, toID, amount); err != nil {
		return nil, err
	}

	domain.ApplyTransfer(from, to, amount)

	logger.WithContext(ctx, s.log).Debug("transfer applied",
		zap.Int64("from_id", fromID),
		zap.Int64("to_id", toID),
		zap.Float64("amount", amount),
	)
	out := *from
	return &out, nil
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// TotalBalance returns the sum of all balances.
func (s *UserStore) TotalBalance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, u := range s.users {
		total += u.Balance
	}
	return total
}

// lookup must be called with s.mu held.
func (s *UserStore) lookup(id int64) *domain.User {
	if id < 1 || id > int64(len(s.users)) {
		return nil
	}
	return s.users[id-1]
}
