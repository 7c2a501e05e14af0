package service

import (
	"sort"
	"time"

	"receipt-ledger/internal/core/domain"
)

// RecomputeProgress derives challenge progress from scratch over the whole
// receipt collection. Receipts are scanned oldest to newest by date, so the
// recorded LastUpdated is the date of the receipt that produced the final
// increment. Counting stops once a challenge reaches its target, which keeps
// a full recompute consistent with the incremental path.
func RecomputeProgress(receipts []domain.Receipt, now time.Time) []domain.ChallengeProgress {
	ordered := make([]*domain.Receipt, 0, len(receipts))
	for i := range receipts {
		ordered = append(ordered, &receipts[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	catalog := domain.ChallengeCatalog()
	progress := make([]domain.ChallengeProgress, 0, len(catalog))
	for _, ch := range catalog {
		p := domain.ChallengeProgress{
			ChallengeID: ch.ID,
			LastUpdated: now,
		}
		for _, r := range ordered {
			if p.IsCompleted {
				break
			}
			if !ch.Matches(r) {
				continue
			}
			p.CurrentCount++
			p.LastUpdated = r.Date
			if p.CurrentCount >= ch.TargetCount {
				p.IsCompleted = true
			}
		}
		progress = append(progress, p)
	}
	return progress
}

// ApplyReceipt advances challenge progress for one newly added receipt.
// Completed challenges are skipped, so a receipt can never move a count past
// its target. The returned slice is a fresh copy; the input is not mutated.
func ApplyReceipt(progress []domain.ChallengeProgress, r *domain.Receipt, now time.Time) []domain.ChallengeProgress {
	out := make([]domain.ChallengeProgress, len(progress))
	copy(out, progress)

	for i := range out {
		if out[i].IsCompleted {
			continue
		}
		ch, ok := domain.ChallengeByID(out[i].ChallengeID)
		if !ok {
			continue
		}
		if !ch.Matches(r) {
			continue
		}
		out[i].CurrentCount++
		out[i].LastUpdated = now
		if out[i].CurrentCount >= ch.TargetCount {
			out[i].IsCompleted = true
		}
	}
	return out
}

// mergeCompletionRatchet applies the session completion policy: a challenge
// completed before a recompute stays completed afterwards, even when the
// receipts that earned it were deleted. Counts always reflect the fresh
// recompute.
func mergeCompletionRatchet(fresh, prior []domain.ChallengeProgress) []domain.ChallengeProgress {
	completedAt := make(map[string]time.Time, len(prior))
	for _, p := range prior {
		if p.IsCompleted {
			completedAt[p.ChallengeID] = p.LastUpdated
		}
	}

	out := make([]domain.ChallengeProgress, len(fresh))
	copy(out, fresh)
	for i := range out {
		if at, ok := completedAt[out[i].ChallengeID]; ok && !out[i].IsCompleted {
			out[i].IsCompleted = true
			out[i].LastUpdated = at
		}
	}
	return out
}
