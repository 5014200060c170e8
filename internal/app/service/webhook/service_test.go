package webhook

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ordersvc "github.com/fatflowers/hotspot/internal/app/service/order"
	"github.com/fatflowers/hotspot/internal/app/service/payment"
	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/internal/platform/queue"
	"github.com/fatflowers/hotspot/pkg/types"
)

type stubVerifier struct {
	result payment.CallbackVerification
}

func (s *stubVerifier) VerifyCallback(_ types.PaymentProvider, _ http.Header, _ []byte) payment.CallbackVerification {
	return s.result
}

type stubResolver struct {
	orders map[string]*models.Order
}

func (s *stubResolver) GetByProviderRef(_ context.Context, ref string) (*models.Order, error) {
	if o, ok := s.orders[ref]; ok {
		return o, nil
	}
	return nil, ordersvc.ErrOrderNotFound
}

type recordingEvents struct {
	recorded []*models.WebhookEvent
}

func (r *recordingEvents) Record(_ context.Context, e *models.WebhookEvent) error {
	r.recorded = append(r.recorded, e)
	return nil
}

type recordingJobs struct {
	published []*queue.ReconcileJob
}

func (r *recordingJobs) PublishReconcile(_ context.Context, j *queue.ReconcileJob) error {
	r.published = append(r.published, j)
	return nil
}

func TestHandle_CorruptedSignatureIsAuditedAndNotEnqueued(t *testing.T) {
	events := &recordingEvents{}
	jobs := &recordingJobs{}
	svc := NewService(
		&stubVerifier{result: payment.CallbackVerification{OK: false, Status: types.PaymentStatusFailed}},
		&stubResolver{},
		events, jobs, zap.NewNop().Sugar(),
	)

	err := svc.Handle(context.Background(), types.PaymentProviderMTN, http.Header{}, []byte(`{"reference":"r"}`))
	require.NoError(t, err)
	require.Len(t, events.recorded, 1)
	require.False(t, events.recorded[0].SignatureValid)
	require.Nil(t, events.recorded[0].OrderID)
	require.Empty(t, jobs.published)
}

func TestHandle_UnmatchedReferenceIsAuditedAndNotEnqueued(t *testing.T) {
	events := &recordingEvents{}
	jobs := &recordingJobs{}
	svc := NewService(
		&stubVerifier{result: payment.CallbackVerification{OK: true, Reference: "nope", Status: types.PaymentStatusPaid}},
		&stubResolver{},
		events, jobs, zap.NewNop().Sugar(),
	)

	err := svc.Handle(context.Background(), types.PaymentProviderMTN, http.Header{}, []byte(`{}`))
	require.NoError(t, err)
	require.Len(t, events.recorded, 1)
	require.True(t, events.recorded[0].SignatureValid)
	require.Nil(t, events.recorded[0].OrderID)
	require.Empty(t, jobs.published)
}

func TestHandle_VerifiedAndMatchedEnqueuesJob(t *testing.T) {
	amount := int64(5000)
	events := &recordingEvents{}
	jobs := &recordingJobs{}
	svc := NewService(
		&stubVerifier{result: payment.CallbackVerification{
			OK: true, Reference: "ref-1", Status: types.PaymentStatusPaid,
			TransactionID: "TX1", Amount: &amount,
		}},
		&stubResolver{orders: map[string]*models.Order{
			"ref-1": {ID: "order-1", ProviderTxRef: "ref-1"},
		}},
		events, jobs, zap.NewNop().Sugar(),
	)

	err := svc.Handle(context.Background(), types.PaymentProviderAirtel, http.Header{}, []byte(`{}`))
	require.NoError(t, err)
	require.Len(t, events.recorded, 1)
	require.NotNil(t, events.recorded[0].OrderID)
	require.Equal(t, "order-1", *events.recorded[0].OrderID)

	require.Len(t, jobs.published, 1)
	job := jobs.published[0]
	require.Equal(t, "order-1", job.OrderID)
	require.Equal(t, types.PaymentStatusPaid, job.Payload.Status)
	require.Equal(t, "TX1", job.Payload.TransactionID)
}

func TestHandle_EmptyReferenceSkipsLookup(t *testing.T) {
	events := &recordingEvents{}
	jobs := &recordingJobs{}
	svc := NewService(
		&stubVerifier{result: payment.CallbackVerification{OK: true, Reference: "", Status: types.PaymentStatusPaid}},
		&stubResolver{},
		events, jobs, zap.NewNop().Sugar(),
	)

	err := svc.Handle(context.Background(), types.PaymentProviderMTN, http.Header{}, []byte(`{}`))
	require.NoError(t, err)
	require.Len(t, events.recorded, 1)
	require.Empty(t, jobs.published)
}
