package integration

import (
	"context"
	"fmt"
	"sync"

	"receipt-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// --- In-Memory Ledger Store ---

type inMemoryLedgerStore struct {
	mu       sync.RWMutex
	receipts []domain.Receipt
	products map[uuid.UUID]domain.Product
	profile  *domain.MerchantProfile
	progress []domain.ChallengeProgress
}

func newInMemoryLedgerStore() *inMemoryLedgerStore {
	return &inMemoryLedgerStore{products: make(map[uuid.UUID]domain.Product)}
}

func (s *inMemoryLedgerStore) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &domain.Snapshot{
		Receipts: append([]domain.Receipt(nil), s.receipts...),
		Progress: append([]domain.ChallengeProgress(nil), s.progress...),
		Profile:  s.profile,
	}
	for _, p := range s.products {
		snap.Products = append(snap.Products, p)
	}
	return snap, nil
}

func (s *inMemoryLedgerStore) SaveReceipt(ctx context.Context, r *domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append([]domain.Receipt{*r}, s.receipts...)
	return nil
}

func (s *inMemoryLedgerStore) DeleteReceipts(ctx context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.receipts[:0]
	for _, r := range s.receipts {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	s.receipts = kept
	return nil
}

func (s *inMemoryLedgerStore) SaveProduct(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = *p
	return nil
}

func (s *inMemoryLedgerStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

func (s *inMemoryLedgerStore) SaveProfile(ctx context.Context, profile *domain.MerchantProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *profile
	s.profile = &cp
	return nil
}

func (s *inMemoryLedgerStore) SaveProgress(ctx context.Context, progress []domain.ChallengeProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append([]domain.ChallengeProgress(nil), progress...)
	return nil
}

// --- In-Memory User Store ---

type inMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserStore() *inMemoryUserStore {
	return &inMemoryUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *inMemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return fmt.Errorf("username already exists")
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *inMemoryUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *inMemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
