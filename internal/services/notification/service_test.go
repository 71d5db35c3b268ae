package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, Event) error { return f.err }

func booking() *models.Booking {
	return &models.Booking{
		ID:          "b-1",
		UserID:      "u-1",
		TherapistID: "t-1",
		Amount:      decimal.NewFromInt(1000),
		Commission:  decimal.NewFromInt(100),
	}
}

func TestKafkaNotifier_Notify(t *testing.T) {
	w := new(MockWriter)
	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != "b-1" {
			return false
		}
		var e Event
		if err := json.Unmarshal(msgs[0].Value, &e); err != nil {
			return false
		}
		return e.Type == EventPaymentSucceeded && e.OrderID == "BRO1" && e.Commission.Equal(decimal.NewFromInt(100))
	})).Return(nil)

	n := NewKafkaNotifier(w, "payment-events", nil)
	require.NoError(t, n.Notify(context.Background(), PaymentSucceeded(booking(), "BRO1")))
	w.AssertExpectations(t)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	w := new(MockWriter)
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := NewKafkaNotifier(w, "payment-events", nil).Notify(context.Background(), PaymentLink(booking(), "BRO1", "https://pay"))
	assert.ErrorContains(t, err, "broker down")
}

func TestNewKafkaWriter_FlushesPromptly(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "payment-events")
	defer w.Close()

	assert.Equal(t, "payment-events", w.Topic)
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	assert.False(t, w.Async)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), PaymentLink(booking(), "BRO1", "https://pay")))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, EventPaymentLink, fields["type"])
	assert.Equal(t, "https://pay", fields["payment_url"])
}

func TestMulti_JoinsErrors(t *testing.T) {
	first := errors.New("first")
	m := Multi{NewLogNotifier(nil), failingNotifier{first}, failingNotifier{errors.New("second")}}

	err := m.Notify(context.Background(), PaymentSucceeded(booking(), "BRO1"))
	assert.ErrorIs(t, err, first)
	assert.ErrorContains(t, err, "second")

	assert.NoError(t, Multi{NewLogNotifier(nil)}.Notify(context.Background(), Event{}))
}
