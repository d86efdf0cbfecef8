package services

import (
	"context"
	"fmt"

	"hookhunter/internal/models"
	"hookhunter/internal/store"
)

// HistoryService reads back executed searches.
type HistoryService struct {
	store store.SearchHistoryStore
}

func NewHistoryService(s store.SearchHistoryStore) *HistoryService {
	return &HistoryService{store: s}
}

// Enabled reports whether a history backend is configured.
func (h *HistoryService) Enabled() bool {
	return h != nil && h.store != nil
}

func (h *HistoryService) List(ctx context.Context, limit int) ([]*models.SearchRecord, error) {
	if !h.Enabled() {
		return nil, fmt.Errorf("%w: search history is disabled (history.driver is none)", models.ErrConfig)
	}
	return h.store.ListSearches(ctx, limit)
}
