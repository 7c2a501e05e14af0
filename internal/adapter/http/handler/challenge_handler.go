package handler

import (
	"time"

	"receipt-ledger/internal/adapter/http/dto"
	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// ChallengeHandler serves the fixed challenge catalog with live progress.
type ChallengeHandler struct {
	ledger ports.LedgerService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(ledger ports.LedgerService) *ChallengeHandler {
	return &ChallengeHandler{ledger: ledger}
}

// List handles GET /api/v1/challenges.
func (h *ChallengeHandler) List(c *gin.Context) {
	progress := h.ledger.Progress()
	byID := make(map[string]domain.ChallengeProgress, len(progress))
	for _, p := range progress {
		byID[p.ChallengeID] = p
	}

	catalog := domain.ChallengeCatalog()
	out := make([]dto.ChallengeStatusResponse, 0, len(catalog))
	for _, ch := range catalog {
		p := byID[ch.ID]
		out = append(out, dto.ChallengeStatusResponse{
			ID:           ch.ID,
			Title:        ch.Title,
			Description:  ch.Description,
			TargetCount:  ch.TargetCount,
			Icon:         ch.Icon,
			CurrentCount: p.CurrentCount,
			IsCompleted:  p.IsCompleted,
			LastUpdated:  p.LastUpdated.UTC().Format(time.RFC3339),
		})
	}
	response.OK(c, out)
}
