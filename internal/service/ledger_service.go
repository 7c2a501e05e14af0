package service

import (
	"context"
	"sync"
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ledgerService implements ports.LedgerService. The in-memory state is
// authoritative; the snapshot store is written before each mutation commits,
// so a storage failure leaves both memory and store unchanged.
type ledgerService struct {
	store ports.LedgerStore
	log   zerolog.Logger

	mu       sync.RWMutex
	receipts []domain.Receipt // head is most recently added
	products []domain.Product
	profile  *domain.MerchantProfile
	progress []domain.ChallengeProgress

	subMu   sync.Mutex
	subs    map[int]chan ports.LedgerEvent
	nextSub int
}

// NewLedgerService creates the ledger around a snapshot store.
func NewLedgerService(store ports.LedgerStore, log zerolog.Logger) ports.LedgerService {
	return &ledgerService{
		store:    store,
		log:      log,
		progress: RecomputeProgress(nil, time.Now()),
		subs:     make(map[int]chan ports.LedgerEvent),
	}
}

// Load replaces the in-memory state with the stored snapshot. A fresh store
// yields an empty ledger with zeroed progress. Progress is recomputed from
// the loaded receipts and merged with the stored progress under the
// completion ratchet, so completions recorded in earlier sessions survive.
func (s *ledgerService) Load(ctx context.Context) error {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return apperror.ErrStorageError(err)
	}
	if snap == nil {
		snap = &domain.Snapshot{}
	}

	now := time.Now()
	progress := mergeCompletionRatchet(RecomputeProgress(snap.Receipts, now), snap.Progress)

	s.mu.Lock()
	s.receipts = append([]domain.Receipt(nil), snap.Receipts...)
	s.products = append([]domain.Product(nil), snap.Products...)
	s.profile = cloneProfile(snap.Profile)
	s.progress = progress
	s.mu.Unlock()

	s.log.Info().
		Int("receipts", len(snap.Receipts)).
		Int("products", len(snap.Products)).
		Msg("ledger loaded from snapshot store")
	return nil
}

func (s *ledgerService) Receipts() []domain.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Receipt(nil), s.receipts...)
}

func (s *ledgerService) Receipt(id uuid.UUID) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.receipts {
		if s.receipts[i].ID == id {
			r := s.receipts[i]
			return &r, nil
		}
	}
	return nil, apperror.ErrReceiptNotFound()
}

// Add inserts a receipt at the head of the collection and advances challenge
// progress incrementally. The receipt must already carry an id and have been
// validated at the boundary.
func (s *ledgerService) Add(ctx context.Context, r domain.Receipt) (*domain.Receipt, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	progress := ApplyReceipt(s.progress, &r, time.Now())
	if err := s.store.SaveReceipt(ctx, &r); err != nil {
		return nil, apperror.ErrStorageError(err)
	}
	if err := s.store.SaveProgress(ctx, progress); err != nil {
		return nil, apperror.ErrStorageError(err)
	}

	s.receipts = append([]domain.Receipt{r}, s.receipts...)
	s.progress = progress

	s.publish(ports.LedgerEvent{
		Type:       ports.EventReceiptAdded,
		ReceiptIDs: []uuid.UUID{r.ID},
		At:         time.Now(),
	})
	return &r, nil
}

// Delete removes every receipt whose id appears in ids. Missing ids are
// ignored, so re-sending a delete is harmless. Challenge progress is fully
// recomputed from the survivors, then merged under the completion ratchet.
// Returns the number of receipts actually removed.
func (s *ledgerService) Delete(ctx context.Context, ids []uuid.UUID) (int, error) {
	idSet := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make([]domain.Receipt, 0, len(s.receipts))
	removed := make([]uuid.UUID, 0, len(ids))
	for _, r := range s.receipts {
		if _, hit := idSet[r.ID]; hit {
			removed = append(removed, r.ID)
			continue
		}
		remaining = append(remaining, r)
	}
	if len(removed) == 0 {
		return 0, nil
	}

	progress := mergeCompletionRatchet(RecomputeProgress(remaining, time.Now()), s.progress)
	if err := s.store.DeleteReceipts(ctx, removed); err != nil {
		return 0, apperror.ErrStorageError(err)
	}
	if err := s.store.SaveProgress(ctx, progress); err != nil {
		return 0, apperror.ErrStorageError(err)
	}

	s.receipts = remaining
	s.progress = progress

	s.publish(ports.LedgerEvent{
		Type:       ports.EventReceiptsDeleted,
		ReceiptIDs: removed,
		At:         time.Now(),
	})
	return len(removed), nil
}

func (s *ledgerService) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *ledgerService) AddProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveProduct(ctx, &p); err != nil {
		return nil, apperror.ErrStorageError(err)
	}
	s.products = append(s.products, p)

	s.publish(ports.LedgerEvent{Type: ports.EventProductAdded, At: time.Now()})
	return &p, nil
}

// DeleteProduct is a no-op when the id is absent. Receipts that snapshotted
// the product keep their line items; catalog mutation never rewrites history.
func (s *ledgerService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return apperror.ErrStorageError(err)
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)

	s.publish(ports.LedgerEvent{Type: ports.EventProductDeleted, At: time.Now()})
	return nil
}

func (s *ledgerService) Profile() *domain.MerchantProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.profile)
}

// SetProfile replaces the stored profile wholesale.
func (s *ledgerService) SetProfile(ctx context.Context, profile domain.MerchantProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveProfile(ctx, &profile); err != nil {
		return apperror.ErrStorageError(err)
	}
	s.profile = &profile

	s.publish(ports.LedgerEvent{Type: ports.EventProfileUpdated, At: time.Now()})
	return nil
}

func (s *ledgerService) Progress() []domain.ChallengeProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ChallengeProgress(nil), s.progress...)
}

// Subscribe registers a mutation listener. Events are dropped rather than
// blocking a mutation when the subscriber's buffer is full.
func (s *ledgerService) Subscribe(buffer int) (<-chan ports.LedgerEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan ports.LedgerEvent, buffer)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *ledgerService) publish(ev ports.LedgerEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.log.Warn().Str("event", string(ev.Type)).Msg("subscriber buffer full, event dropped")
		}
	}
}

func cloneProfile(p *domain.MerchantProfile) *domain.MerchantProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.GreenTags = append([]domain.GreenTag(nil), p.GreenTags...)
	if p.Logo != nil {
		cp.Logo = append([]byte(nil), p.Logo...)
	}
	return &cp
}
