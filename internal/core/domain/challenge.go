package domain

import (
	"strings"
	"time"
)

// ChallengeType selects the classification rule a challenge counts with.
type ChallengeType string

const (
	ChallengeTransport ChallengeType = "transport"
	ChallengeGroceries ChallengeType = "groceries"
	ChallengeBYO       ChallengeType = "byo"
)

// Challenge is a fixed behavioral goal defined by the system. The catalog is
// static; users never create challenges. ID doubles as the title.
type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TargetCount int           `json:"target_count"`
	Type        ChallengeType `json:"type"`
	Icon        string        `json:"icon"`
}

// Matches reports whether a receipt counts toward this challenge.
func (c Challenge) Matches(r *Receipt) bool {
	switch c.Type {
	case ChallengeTransport:
		return r.Category == CategoryTransport
	case ChallengeGroceries:
		return r.Category == CategoryGroceries
	case ChallengeBYO:
		for _, tag := range r.Tags {
			if strings.Contains(strings.ToUpper(tag), "BYO") {
				return true
			}
		}
	}
	return false
}

// ChallengeCatalog returns the fixed, ordered set of challenges. Callers get
// a fresh slice and may not assume shared backing storage.
func ChallengeCatalog() []Challenge {
	return []Challenge{
		{
			ID:          "Green Commuter",
			Title:       "Green Commuter",
			Description: "Take public transport 5 times to reduce your carbon footprint.",
			TargetCount: 5,
			Type:        ChallengeTransport,
			Icon:        "bus",
		},
		{
			ID:          "Eco Shopper",
			Title:       "Eco Shopper",
			Description: "Log 3 grocery shopping trips this month.",
			TargetCount: 3,
			Type:        ChallengeGroceries,
			Icon:        "cart",
		},
		{
			ID:          "BYO Champion",
			Title:       "BYO Champion",
			Description: "Bring your own container/cup and log it 4 times.",
			TargetCount: 4,
			Type:        ChallengeBYO,
			Icon:        "cup",
		},
	}
}

// ChallengeByID looks up a catalog challenge.
func ChallengeByID(id string) (Challenge, bool) {
	for _, c := range ChallengeCatalog() {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}

// ChallengeProgress tracks one user's progress toward one challenge.
// Invariant: IsCompleted == (CurrentCount >= challenge.TargetCount), and
// CurrentCount never moves after completion.
type ChallengeProgress struct {
	ChallengeID  string    `json:"challenge_id"`
	CurrentCount int       `json:"current_count"`
	IsCompleted  bool      `json:"is_completed"`
	LastUpdated  time.Time `json:"last_updated"`
}
