package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SnapshotStore implements ports.LedgerStore on PostgreSQL. Receipts keep
// their in-memory ordering via added_at; amounts are stored as text so
// decimal values round-trip without precision loss.
type SnapshotStore struct {
	pool Pool
}

func NewSnapshotStore(pool Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

var _ ports.LedgerStore = (*SnapshotStore)(nil)

func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	receipts, err := s.loadReceipts(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.loadProgress(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Receipts: receipts,
		Products: products,
		Profile:  profile,
		Progress: progress,
	}, nil
}

func (s *SnapshotStore) loadReceipts(ctx context.Context) ([]domain.Receipt, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, merchant, location, amount, date, category, payment, currency, tags, items, notes
		FROM receipts
		ORDER BY added_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		var (
			r         domain.Receipt
			amount    string
			itemsJSON []byte
		)
		if err := rows.Scan(&r.ID, &r.Merchant, &r.Location, &amount, &r.Date,
			&r.Category, &r.Payment, &r.Currency, &r.Tags, &itemsJSON, &r.Notes); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse receipt amount: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &r.Items); err != nil {
			return nil, fmt.Errorf("decode receipt items: %w", err)
		}
		if r.Tags == nil {
			r.Tags = []string{}
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}
	return receipts, nil
}

func (s *SnapshotStore) loadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, category
		FROM products
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p     domain.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse product price: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *SnapshotStore) loadProfile(ctx context.Context) (*domain.MerchantProfile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, merchant_name, location, address, logo, default_currency, green_tags
		FROM merchant_profile
		LIMIT 1`)
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var (
		p    domain.MerchantProfile
		tags []string
	)
	if err := rows.Scan(&p.ID, &p.MerchantName, &p.Location, &p.Address,
		&p.Logo, &p.DefaultCurrency, &tags); err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.GreenTags = make([]domain.GreenTag, 0, len(tags))
	for _, t := range tags {
		p.GreenTags = append(p.GreenTags, domain.GreenTag(t))
	}
	return &p, rows.Err()
}

func (s *SnapshotStore) loadProgress(ctx context.Context) ([]domain.ChallengeProgress, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT challenge_id, current_count, is_completed, last_updated
		FROM challenge_progress`)
	if err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}
	defer rows.Close()

	var progress []domain.ChallengeProgress
	for rows.Next() {
		var cp domain.ChallengeProgress
		if err := rows.Scan(&cp.ChallengeID, &cp.CurrentCount, &cp.IsCompleted, &cp.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		progress = append(progress, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return progress, nil
}

func (s *SnapshotStore) SaveReceipt(ctx context.Context, r *domain.Receipt) error {
	itemsJSON, err := json.Marshal(r.Items)
	if err != nil {
		return fmt.Errorf("encode receipt items: %w", err)
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO receipts (id, merchant, location, amount, date, category, payment, currency, tags, items, notes, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO UPDATE SET
			merchant = EXCLUDED.merchant,
			location = EXCLUDED.location,
			amount = EXCLUDED.amount,
			date = EXCLUDED.date,
			category = EXCLUDED.category,
			payment = EXCLUDED.payment,
			currency = EXCLUDED.currency,
			tags = EXCLUDED.tags,
			items = EXCLUDED.items,
			notes = EXCLUDED.notes`,
		r.ID, r.Merchant, r.Location, r.Amount.String(), r.Date,
		string(r.Category), string(r.Payment), string(r.Currency), tags, itemsJSON, r.Notes)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

func (s *SnapshotStore) DeleteReceipts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM receipts WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete receipts: %w", err)
	}
	return nil
}

func (s *SnapshotStore) SaveProduct(ctx context.Context, p *domain.Product) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO products (id, name, price, category)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			category = EXCLUDED.category`,
		p.ID, p.Name, p.Price.String(), string(p.Category))
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *SnapshotStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// SaveProfile replaces the singleton profile row. Replace rather than upsert
// because a new profile may carry a new id.
func (s *SnapshotStore) SaveProfile(ctx context.Context, profile *domain.MerchantProfile) error {
	tags := make([]string, 0, len(profile.GreenTags))
	for _, gt := range profile.GreenTags {
		tags = append(tags, string(gt))
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save profile: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM merchant_profile`); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO merchant_profile (id, merchant_name, location, address, logo, default_currency, green_tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		profile.ID, profile.MerchantName, profile.Location, profile.Address,
		profile.Logo, string(profile.DefaultCurrency), tags); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save profile: %w", err)
	}
	return nil
}

// SaveProgress rewrites the full progress set. The set is tiny (one row per
// catalog challenge) so a delete-and-insert keeps it simple.
func (s *SnapshotStore) SaveProgress(ctx context.Context, progress []domain.ChallengeProgress) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save progress: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM challenge_progress`); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	for _, cp := range progress {
		if _, err := tx.Exec(ctx, `
			INSERT INTO challenge_progress (challenge_id, current_count, is_completed, last_updated)
			VALUES ($1, $2, $3, $4)`,
			cp.ChallengeID, cp.CurrentCount, cp.IsCompleted, cp.LastUpdated); err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save progress: %w", err)
	}
	return nil
}
