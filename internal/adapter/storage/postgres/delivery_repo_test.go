package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery(endpointID uuid.UUID) *domain.Delivery {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Delivery{
		ID:          uuid.New(),
		EndpointID:  endpointID,
		EventType:   "order.created",
		Payload:     json.RawMessage(`{"order_id":"o-1"}`),
		Status:      domain.DeliveryStatusPending,
		Attempts:    0,
		MaxAttempts: 5,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func deliveryColumnNames() []string {
	return []string{"id", "endpoint_id", "event_type", "payload", "status", "attempts", "max_attempts",
		"response_status", "response_body", "error_message", "next_retry_at", "created_at", "updated_at", "delivered_at"}
}

func deliveryRow(rows *pgxmock.Rows, d *domain.Delivery) *pgxmock.Rows {
	return rows.AddRow(
		d.ID, d.EndpointID, d.EventType, []byte(d.Payload), string(d.Status), d.Attempts, d.MaxAttempts,
		d.ResponseStatus, d.ResponseBody, d.ErrorMessage, d.NextRetryAt, d.CreatedAt, d.UpdatedAt, d.DeliveredAt,
	)
}

func deliveryExecArgs(d *domain.Delivery) []any {
	return []any{
		d.ID, d.EndpointID, d.EventType, []byte(d.Payload), string(d.Status), d.Attempts, d.MaxAttempts,
		d.ResponseStatus, d.ResponseBody, d.ErrorMessage, d.NextRetryAt, d.CreatedAt, d.UpdatedAt, d.DeliveredAt,
	}
}

func TestDeliveryRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery(uuid.New())

	mock.ExpectExec("INSERT INTO webhook_deliveries").
		WithArgs(deliveryExecArgs(d)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_CreateBatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	a, b := newTestDelivery(uuid.New()), newTestDelivery(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO webhook_deliveries").WithArgs(deliveryExecArgs(a)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO webhook_deliveries").WithArgs(deliveryExecArgs(b)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.CreateBatch(context.Background(), []*domain.Delivery{a, b}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_CreateBatch_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	a, b := newTestDelivery(uuid.New()), newTestDelivery(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO webhook_deliveries").WithArgs(deliveryExecArgs(a)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO webhook_deliveries").WithArgs(deliveryExecArgs(b)...).
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err = repo.CreateBatch(context.Background(), []*domain.Delivery{a, b})
	assert.ErrorContains(t, err, "fk violation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_CreateBatch_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.NoError(t, NewDeliveryRepo(mock).CreateBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery(uuid.New())
	code := 503
	d.ResponseStatus = &code

	mock.ExpectQuery("SELECT .+ FROM webhook_deliveries WHERE id").
		WithArgs(d.ID).
		WillReturnRows(deliveryRow(pgxmock.NewRows(deliveryColumnNames()), d))

	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, domain.DeliveryStatusPending, got.Status)
	assert.JSONEq(t, `{"order_id":"o-1"}`, string(got.Payload))
	require.NotNil(t, got.ResponseStatus)
	assert.Equal(t, 503, *got.ResponseStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM webhook_deliveries WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(deliveryColumnNames()))

	got, err := NewDeliveryRepo(mock).GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeliveryRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery(uuid.New())
	d.Status = domain.DeliveryStatusDelivered
	d.Attempts = 1
	now := time.Now().UTC()
	d.DeliveredAt = &now

	mock.ExpectExec("UPDATE webhook_deliveries").
		WithArgs(string(d.Status), d.Attempts, d.ResponseStatus, d.ResponseBody, d.ErrorMessage,
			d.NextRetryAt, d.DeliveredAt, d.UpdatedAt, d.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(context.Background(), d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_MarkSending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	d := newTestDelivery(uuid.New())
	at := time.Now().UTC()
	claimed := *d
	claimed.Status = domain.DeliveryStatusSending
	claimed.Attempts = 3
	claimed.UpdatedAt = at

	mock.ExpectQuery("UPDATE webhook_deliveries\\s+SET status = 'SENDING', attempts = attempts \\+ 1,.+ AND status = 'PENDING' AND attempts < max_attempts\\s+AND \\(next_retry_at IS NULL OR next_retry_at <= \\$1\\)\\s+RETURNING").
		WithArgs(at, d.ID).
		WillReturnRows(deliveryRow(pgxmock.NewRows(deliveryColumnNames()), &claimed))

	got, err := NewDeliveryRepo(mock).MarkSending(context.Background(), d.ID, at)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.DeliveryStatusSending, got.Status)
	assert.Equal(t, 3, got.Attempts, "attempts come from the claimed row")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_MarkSending_NotClaimable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	at := time.Now().UTC()

	mock.ExpectQuery("UPDATE webhook_deliveries").
		WithArgs(at, id).
		WillReturnRows(pgxmock.NewRows(deliveryColumnNames()))

	got, err := NewDeliveryRepo(mock).MarkSending(context.Background(), id, at)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_MarkSending_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("UPDATE webhook_deliveries").
		WillReturnError(errors.New("connection reset"))

	_, err = NewDeliveryRepo(mock).MarkSending(context.Background(), uuid.New(), time.Now())
	assert.ErrorContains(t, err, "claim delivery")
}

func TestDeliveryRepo_ReleaseStale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now().UTC()
	cutoff := at.Add(-time.Minute)

	mock.ExpectExec("UPDATE webhook_deliveries\\s+SET status = CASE WHEN attempts < max_attempts THEN 'PENDING' ELSE 'FAILED' END.+WHERE status = 'SENDING' AND updated_at < \\$3").
		WithArgs(domain.InterruptedMessage, at, cutoff).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := NewDeliveryRepo(mock).ReleaseStale(context.Background(), cutoff, at)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_Cancel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE webhook_deliveries\\s+SET status = 'FAILED'.+ AND status = 'PENDING'").
		WithArgs("cancelled", at, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := NewDeliveryRepo(mock).Cancel(context.Background(), id, at)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_ListDue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery(uuid.New())
	now := time.Now().UTC()

	mock.ExpectQuery("WHERE status = 'PENDING' AND \\(next_retry_at IS NULL OR next_retry_at <= \\$1\\) AND endpoint_id IN \\(SELECT id FROM webhook_endpoints WHERE is_active = TRUE\\)").
		WithArgs(now, 10).
		WillReturnRows(deliveryRow(pgxmock.NewRows(deliveryColumnNames()), d))

	items, err := repo.ListDue(context.Background(), now, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_ListRetryable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("next_retry_at IS NOT NULL AND next_retry_at <= \\$1 AND attempts < max_attempts").
		WithArgs(now, 50).
		WillReturnRows(pgxmock.NewRows(deliveryColumnNames()))

	items, err := repo.ListRetryable(context.Background(), now, 50)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_List_WithFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery(uuid.New())
	status := domain.DeliveryStatusFailed
	from := time.Now().Add(-time.Hour).UTC()

	mock.ExpectQuery("SELECT COUNT.+ FROM webhook_deliveries WHERE status = \\$1 AND endpoint_id IN \\(SELECT id FROM webhook_endpoints WHERE owner_id = \\$2\\) AND created_at >= \\$3").
		WithArgs("FAILED", "owner-1", from).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	mock.ExpectQuery("SELECT .+ FROM webhook_deliveries WHERE .+ LIMIT \\$4 OFFSET \\$5").
		WithArgs("FAILED", "owner-1", from, 20, 0).
		WillReturnRows(deliveryRow(pgxmock.NewRows(deliveryColumnNames()), d))

	items, total, err := repo.List(context.Background(), ports.DeliveryListParams{
		Status: &status, OwnerID: "owner-1", From: &from, Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_CountByEndpoints(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT endpoint_id, COUNT\\(\\*\\) FROM webhook_deliveries WHERE endpoint_id = ANY").
		WithArgs([]uuid.UUID{a, b}).
		WillReturnRows(pgxmock.NewRows([]string{"endpoint_id", "count"}).AddRow(a, int64(7)))

	counts, err := repo.CountByEndpoints(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(7), counts[a])
	assert.Equal(t, int64(0), counts[b])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_CountByEndpoints_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	counts, err := NewDeliveryRepo(mock).CountByEndpoints(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestDeliveryRepo_DeleteOlderThan(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cutoff := time.Now().Add(-30 * 24 * time.Hour).UTC()

	mock.ExpectExec("DELETE FROM webhook_deliveries WHERE status IN \\('DELIVERED', 'FAILED'\\) AND created_at < \\$1").
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 42))

	n, err := NewDeliveryRepo(mock).DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_GetStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM webhook_deliveries").
		WillReturnRows(pgxmock.NewRows([]string{"total", "pending", "sending", "delivered", "failed"}).
			AddRow(int64(10), int64(2), int64(1), int64(6), int64(1)))

	s, err := NewDeliveryRepo(mock).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Total)
	assert.Equal(t, int64(6), s.Delivered)
	assert.Equal(t, int64(1), s.Failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
