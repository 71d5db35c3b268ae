package settlement

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/notification"

	"go.uber.org/zap"
)

// errNotPending aborts the settlement transaction when another callback
// already moved the payment out of pending.
var errNotPending = errors.New("payment is no longer pending")

func (s *service) Reconcile(ctx context.Context, fields gateway.CallbackFields, fallbackOrderID string) Outcome {
	orderID := firstNonEmpty(fields.OrderID, fallbackOrderID)
	log := s.log.With(zap.String("order_id", orderID))

	cfg, err := s.settings.GatewayConfig(ctx)
	if err != nil {
		log.Error("cannot resolve gateway settings", zap.Error(err))
		s.metrics.RecordSettlement(outcomeError)
		return s.failure(orderID, ReasonUnavailable, fields.ResponseCode, CompensationSkipped)
	}

	v := s.gateway.VerifyCallback(cfg, fields)
	if orderID == "" {
		s.metrics.RecordSettlement(outcomeFailed)
		return s.failure("", ReasonMissingOrderID, v.Code, CompensationSkipped)
	}

	txn, err := s.store.Transactions().GetByOrderID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, appErrors.ErrNotFound) {
			log.Error("cannot load payment", zap.Error(err))
		}
		s.metrics.RecordSettlement(outcomeFailed)
		return s.failure(orderID, ReasonTransactionNotFound, v.Code, CompensationSkipped)
	}

	if txn.IsTerminal() {
		return s.recorded(txn, v.Code)
	}

	if v.Valid && v.HasAmount && !v.Amount.Equal(txn.Amount) {
		log.Warn("callback amount does not match payment",
			zap.String("expected", txn.Amount.String()),
			zap.String("received", v.Amount.String()))
		v.Valid = false
		v.FailureReason = ReasonAmountMismatch
	}

	if !v.Valid {
		return s.rejectPayment(ctx, txn, v, fields)
	}
	return s.settlePayment(ctx, txn, v, fields)
}

// rejectPayment fails the pending payment and, if this call did so, puts the
// booking back to awaiting payment.
func (s *service) rejectPayment(ctx context.Context, txn *models.Transaction, v gateway.Verification, fields gateway.CallbackFields) Outcome {
	orderID := models.StringValue(txn.GatewayOrderID)
	log := s.log.With(zap.String("order_id", orderID))

	applied, err := s.store.Transactions().Transition(ctx, txn.ID, models.TransactionStatusFailed, repositories.TransitionUpdate{
		GatewayResponse: models.JSONFromStrings(fields.Raw),
	})
	if err != nil {
		log.Error("cannot mark payment failed", zap.Error(err))
		s.metrics.RecordSettlement(outcomeFailed)
		return s.failure(orderID, v.FailureReason, v.Code, CompensationFailed)
	}
	if !applied {
		return s.reloadRecorded(ctx, orderID, v.Code)
	}

	compensation := CompensationSkipped
	if bookingID := models.StringValue(txn.BookingID); bookingID != "" {
		reverted, err := s.store.Bookings().RevertPayment(ctx, bookingID, orderID)
		switch {
		case err != nil:
			log.Error("cannot revert booking after failed payment", zap.String("booking_id", bookingID), zap.Error(err))
			compensation = CompensationFailed
		case reverted:
			compensation = CompensationApplied
		default:
			log.Info("booking has moved on to another order", zap.String("booking_id", bookingID))
		}
	}

	log.Info("payment failed", zap.String("reason", v.FailureReason), zap.String("code", v.Code))
	s.metrics.RecordSettlement(outcomeFailed)
	return s.failure(orderID, v.FailureReason, v.Code, compensation)
}

// settlePayment commits the successful payment, the booking update and the
// therapist credit together.
func (s *service) settlePayment(ctx context.Context, txn *models.Transaction, v gateway.Verification, fields gateway.CallbackFields) Outcome {
	orderID := models.StringValue(txn.GatewayOrderID)
	log := s.log.With(zap.String("order_id", orderID))

	var booking *models.Booking
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		applied, err := tx.Transactions().Transition(ctx, txn.ID, models.TransactionStatusSuccess, repositories.TransitionUpdate{
			GatewayTransactionID: v.GatewayTransactionID,
			GatewayResponse:      models.JSONFromStrings(fields.Raw),
		})
		if err != nil {
			return err
		}
		if !applied {
			return errNotPending
		}

		bookingID := models.StringValue(txn.BookingID)
		if bookingID == "" {
			return fmt.Errorf("payment %s has no booking", txn.ID)
		}
		booking, err = tx.Bookings().GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		credit, err := s.ledger.CreditWithin(ctx, tx, booking.TherapistID, booking.ID, txn.Amount)
		if err != nil {
			return fmt.Errorf("failed to credit wallet: %w", err)
		}

		if err := tx.Bookings().MarkPaid(ctx, booking.ID, orderID, v.GatewayTransactionID, credit.Commission); err != nil {
			return err
		}
		booking.Status = models.BookingStatusCompleted
		booking.PaymentStatus = models.PaymentStatusSuccess
		booking.PaymentTransactionID = models.StringPtr(v.GatewayTransactionID)
		booking.Commission = credit.Commission
		return nil
	})

	if errors.Is(err, errNotPending) {
		return s.reloadRecorded(ctx, orderID, v.Code)
	}
	if errors.Is(err, appErrors.ErrOrderSuperseded) {
		log.Error("payment captured for a superseded order, left pending for manual review",
			zap.String("booking_id", models.StringValue(txn.BookingID)))
	}
	if err != nil {
		log.Error("settlement rolled back", zap.Error(err))
		s.metrics.RecordSettlement(outcomeError)
		return s.failure(orderID, appErrors.MessageOf(err), v.Code, CompensationSkipped)
	}

	s.ledger.InvalidateCache(ctx, booking.TherapistID)
	if err := s.notifier.Notify(ctx, notification.PaymentSucceeded(booking, orderID)); err != nil {
		log.Warn("payment success notification failed", zap.Error(err))
	}

	log.Info("payment settled",
		zap.String("booking_id", booking.ID),
		zap.String("gateway_txn_id", v.GatewayTransactionID),
		zap.String("commission", booking.Commission.String()))
	s.metrics.RecordSettlement(outcomeSuccess)
	return Outcome{
		Success:      true,
		OrderID:      orderID,
		Code:         v.Code,
		Compensation: CompensationSkipped,
	}
}

func (s *service) reloadRecorded(ctx context.Context, orderID, code string) Outcome {
	txn, err := s.store.Transactions().GetByOrderID(ctx, orderID)
	if err != nil {
		s.metrics.RecordSettlement(outcomeError)
		return s.failure(orderID, appErrors.MessageOf(err), code, CompensationSkipped)
	}
	return s.recorded(txn, code)
}

// recorded reports the stored outcome of an already settled payment.
func (s *service) recorded(txn *models.Transaction, code string) Outcome {
	s.metrics.RecordSettlement(outcomeAlreadySettled)
	out := Outcome{
		Success:        txn.Status == models.TransactionStatusSuccess,
		OrderID:        models.StringValue(txn.GatewayOrderID),
		Code:           code,
		Compensation:   CompensationSkipped,
		AlreadySettled: true,
	}
	if !out.Success {
		out.Reason = ReasonAlreadyFailed
	}
	return out
}

func (s *service) failure(orderID, reason, code string, compensation CompensationResult) Outcome {
	if reason == "" {
		reason = gateway.ReasonPaymentFailed
	}
	return Outcome{
		OrderID:      orderID,
		Reason:       reason,
		Code:         code,
		Compensation: compensation,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
