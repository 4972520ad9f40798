package services

import (
	"context"

	"prodx/internal/domain"
	"prodx/internal/repos"
)

// QueueService lists the submissions waiting for a decision.
type QueueService struct {
	Products *repos.ProductRepo
}

func NewQueueService(products *repos.ProductRepo) *QueueService {
	return &QueueService{Products: products}
}

// Pending returns PendingApproval products, most recent id first.
func (s *QueueService) Pending(ctx context.Context) ([]domain.PendingProduct, error) {
	return s.Products.ListByStatus(ctx, domain.StatusPending)
}
