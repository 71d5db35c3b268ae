package settlement

import (
	"context"
	"fmt"
	"time"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/notification"

	"go.uber.org/zap"
)

type service struct {
	store    repositories.Store
	settings GatewaySettings
	gateway  gateway.Adapter
	ledger   Ledger
	notifier notification.Notifier
	metrics  MetricsCollector
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	store repositories.Store,
	settings GatewaySettings,
	adapter gateway.Adapter,
	ledger Ledger,
	notifier notification.Notifier,
	metrics MetricsCollector,
	log *zap.Logger,
) Service {
	if store == nil || settings == nil || adapter == nil || ledger == nil {
		panic("settlement: store, settings, gateway and ledger are required")
	}
	if notifier == nil {
		notifier = notification.Multi{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		store:    store,
		settings: settings,
		gateway:  adapter,
		ledger:   ledger,
		notifier: notifier,
		metrics:  metrics,
		log:      log.Named("settlement"),
		now:      time.Now,
	}
}

func (s *service) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	booking, err := s.store.Bookings().FindPayable(ctx, req.BookingID, req.PayerID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.GatewayConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve gateway settings: %w", err)
	}
	if !cfg.Enabled {
		return nil, appErrors.ErrGatewayUnavailable
	}

	orderID := NewOrderID(s.now())
	payment, err := s.gateway.BuildPaymentRequest(cfg, gateway.PaymentParams{
		OrderID:    orderID,
		CustomerID: booking.UserID,
		Amount:     booking.Amount,
		Origin:     req.Origin,
	})
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		BookingID:      models.StringPtr(booking.ID),
		PayerID:        models.StringPtr(booking.UserID),
		Kind:           models.TransactionKindPayment,
		Amount:         booking.Amount,
		Status:         models.TransactionStatusPending,
		PaymentMode:    models.PaymentModePaytm,
		GatewayOrderID: models.StringPtr(orderID),
	}
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Transactions().Create(ctx, txn); err != nil {
			return err
		}
		return tx.Bookings().AttachOrder(ctx, booking.ID, orderID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.log.Info("payment initiated",
		zap.String("order_id", orderID),
		zap.String("booking_id", booking.ID),
		zap.String("amount", booking.Amount.String()),
		zap.Bool("mock_mode", payment.MockMode))

	return &InitiateResult{
		OrderID:        orderID,
		TransactionID:  txn.ID,
		Amount:         booking.Amount,
		GatewayURL:     payment.GatewayURL,
		SignedFields:   payment.SignedFields,
		MockPaymentURL: payment.MockPaymentURL,
		MockMode:       payment.MockMode,
	}, nil
}

func (s *service) VerifyStatus(ctx context.Context, orderID string) (*StatusView, error) {
	txn, err := s.store.Transactions().GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &StatusView{
		OrderID:              models.StringValue(txn.GatewayOrderID),
		GatewayTransactionID: models.StringValue(txn.GatewayTransactionID),
		Status:               txn.Status,
		Amount:               txn.Amount,
		BookingID:            models.StringValue(txn.BookingID),
	}, nil
}

func (s *service) RequestPayment(ctx context.Context, bookingID, therapistID, origin string) (*RequestPaymentResult, error) {
	booking, err := s.store.Bookings().MarkAwaitingPayment(ctx, bookingID, therapistID)
	if err != nil {
		return nil, err
	}

	payment, err := s.Initiate(ctx, InitiateRequest{
		BookingID: booking.ID,
		PayerID:   booking.UserID,
		Origin:    origin,
	})
	if err != nil {
		return &RequestPaymentResult{Booking: booking}, err
	}

	booking.PaymentOrderID = models.StringPtr(payment.OrderID)
	booking.PaymentMode = models.PaymentModePaytm
	if err := s.notifier.Notify(ctx, notification.PaymentLink(booking, payment.OrderID, payment.PaymentURL())); err != nil {
		s.log.Warn("payment link notification failed", zap.String("booking_id", booking.ID), zap.Error(err))
	}

	return &RequestPaymentResult{Booking: booking, Payment: payment}, nil
}
