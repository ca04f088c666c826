package paymentevent_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/completion"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/paymentevent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentEventService_HandleMessage_Confirmed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCompletion := completion.NewMockCompletionService()
	service := paymentevent.NewPaymentEventService(mockCompletion, slog.Default())

	orderID := uuid.New()
	mockCompletion.On("OnPaymentConfirmed", ctx, orderID).Return(nil)

	payload := []byte(`{"event_id":"evt_1","event_type":"payment.confirmed","order_id":"` + orderID.String() + `","amount_cent":2999,"currency":"EUR"}`)

	// Act
	err := service.HandleMessage(ctx, payload)

	// Assert
	assert.NoError(t, err)
	mockCompletion.AssertExpectations(t)
}

func TestPaymentEventService_HandleMessage_FailedEventIgnored(t *testing.T) {
	ctx := context.Background()
	mockCompletion := completion.NewMockCompletionService()
	service := paymentevent.NewPaymentEventService(mockCompletion, slog.Default())

	payload := []byte(`{"event_id":"evt_2","event_type":"payment.failed","order_id":"` + uuid.NewString() + `"}`)

	err := service.HandleMessage(ctx, payload)

	assert.NoError(t, err)
	mockCompletion.AssertNotCalled(t, "OnPaymentConfirmed", mock.Anything, mock.Anything)
}

func TestPaymentEventService_HandleMessage_UnknownTypeIgnored(t *testing.T) {
	ctx := context.Background()
	mockCompletion := completion.NewMockCompletionService()
	service := paymentevent.NewPaymentEventService(mockCompletion, slog.Default())

	payload := []byte(`{"event_id":"evt_3","event_type":"refund.issued","order_id":"` + uuid.NewString() + `"}`)

	err := service.HandleMessage(ctx, payload)

	assert.NoError(t, err)
	mockCompletion.AssertNotCalled(t, "OnPaymentConfirmed", mock.Anything, mock.Anything)
}

func TestPaymentEventService_HandleMessage_MalformedPayload(t *testing.T) {
	ctx := context.Background()
	mockCompletion := completion.NewMockCompletionService()
	service := paymentevent.NewPaymentEventService(mockCompletion, slog.Default())

	err := service.HandleMessage(ctx, []byte(`{not json`))

	assert.Error(t, err)
	mockCompletion.AssertNotCalled(t, "OnPaymentConfirmed", mock.Anything, mock.Anything)
}

func TestPaymentEventService_HandleMessage_InvalidOrderID(t *testing.T) {
	ctx := context.Background()
	mockCompletion := completion.NewMockCompletionService()
	service := paymentevent.NewPaymentEventService(mockCompletion, slog.Default())

	payload := []byte(`{"event_id":"evt_4","event_type":"payment.confirmed","order_id":"not-a-uuid"}`)

	err := service.HandleMessage(ctx, payload)

	assert.Error(t, err)
	mockCompletion.AssertNotCalled(t, "OnPaymentConfirmed", mock.Anything, mock.Anything)
}

func TestPaymentEventService_HandleMessage_CompletionErrorPropagates(t *testing.T) {
	// A migration conflict (or any completion failure) must surface so
	// the broker redelivers the event.
	ctx := context.Background()
	mockCompletion := completion.NewMockCompletionService()
	service := paymentevent.NewPaymentEventService(mockCompletion, slog.Default())

	orderID := uuid.New()
	mockCompletion.On("OnPaymentConfirmed", ctx, orderID).Return(domain.ErrMigrationInProgress)

	payload := []byte(`{"event_id":"evt_5","event_type":"payment.confirmed","order_id":"` + orderID.String() + `"}`)

	err := service.HandleMessage(ctx, payload)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMigrationInProgress))
}
