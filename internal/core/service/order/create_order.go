package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

func (s *orderService) CreateOrder(ctx context.Context, customerEmail string) (*domain.Order, error) {
	customerEmail = strings.TrimSpace(strings.ToLower(customerEmail))
	if customerEmail == "" || !strings.Contains(customerEmail, "@") {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEmail, customerEmail)
	}

	created := domain.Order{
		ID:             uuid.New(),
		CustomerEmail:  customerEmail,
		Status:         domain.OrderStatusPending,
		MigrationState: domain.MigrationStateNotStarted,
	}

	if err := s.uow.OrderRepo().Create(ctx, created); err != nil {
		return nil, fmt.Errorf("could not create order: %w", err)
	}

	return &created, nil
}
