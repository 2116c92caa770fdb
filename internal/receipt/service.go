package receipt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	CreateReceipt(ctx context.Context, rec *StoredReceipt) error
	GetPoints(ctx context.Context, id string) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Process scores a validated receipt, persists it under a fresh identifier
// and returns that identifier. The identifier is a random UUID; the record is
// immutable once written.
func (s *Service) Process(ctx context.Context, r Receipt) (string, error) {
	if _, ok := purchaseDay(r.PurchaseDate); !ok {
		slog.Warn("invalid purchase date, odd-day rule not applied", "purchaseDate", r.PurchaseDate)
	}

	if _, ok := purchaseMinute(r.PurchaseTime); !ok {
		slog.Warn("invalid purchase time, afternoon rule not applied", "purchaseTime", r.PurchaseTime)
	}

	rec := &StoredReceipt{
		ID:      uuid.NewString(),
		Receipt: r,
		Points:  CalculatePoints(r),
	}

	if err := s.repo.CreateReceipt(ctx, rec); err != nil {
		return "", fmt.Errorf("storing receipt: %w", err)
	}

	slog.Info("processed receipt", "id", rec.ID, "points", rec.Points)

	return rec.ID, nil
}

// Points returns the stored score for an identifier. Returns ErrNotFound if
// no receipt exists under it.
func (s *Service) Points(ctx context.Context, id string) (int, error) {
	points, err := s.repo.GetPoints(ctx, id)
	if err != nil {
		return 0, err
	}

	slog.Info("retrieved points", "id", id, "points", points)

	return points, nil
}
