package ports

import (
	"context"

	"receipt-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// LedgerStore persists ledger state. The in-memory ledger is authoritative;
// the store is written after every mutating operation and read once at
// startup. A fresh store must load as an empty snapshot, not an error.
type LedgerStore interface {
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
	SaveReceipt(ctx context.Context, r *domain.Receipt) error
	DeleteReceipts(ctx context.Context, ids []uuid.UUID) error
	SaveProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SaveProfile(ctx context.Context, profile *domain.MerchantProfile) error
	SaveProgress(ctx context.Context, progress []domain.ChallengeProgress) error
}

// UserStore persists registered accounts.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
