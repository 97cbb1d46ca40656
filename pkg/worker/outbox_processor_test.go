package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/messaging"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

type fakeOutbox struct {
	pending   []*model.OutboxEvent
	processed []uuid.UUID
	failed    map[uuid.UUID]string
	purged    int64
	claimErr  error
	lease     time.Duration
}

func (f *fakeOutbox) Create(ctx context.Context, event *model.OutboxEvent) error {
	f.pending = append(f.pending, event)
	return nil
}

func (f *fakeOutbox) ClaimPending(ctx context.Context, limit, maxRetries int, lease time.Duration) ([]*model.OutboxEvent, error) {
	f.lease = lease
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	var claimed []*model.OutboxEvent
	for _, e := range f.pending {
		if len(claimed) == limit {
			break
		}
		if e.RetryCount < maxRetries {
			claimed = append(claimed, e)
		}
	}
	return claimed, nil
}

func (f *fakeOutbox) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.failed == nil {
		f.failed = make(map[uuid.UUID]string)
	}
	f.failed[id] = reason
	return nil
}

func (f *fakeOutbox) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return f.purged, nil
}

type fakeBroker struct {
	published []messaging.Message
	failFor   map[string]int
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, msg messaging.Message) error {
	if b.failFor[msg.Type] > 0 {
		b.failFor[msg.Type]--
		return errors.New("broker unavailable")
	}
	b.published = append(b.published, msg)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan messaging.Message, error) {
	return nil, errors.New("not supported")
}

func (b *fakeBroker) Close() error { return nil }

func event(t *testing.T, eventType string) *model.OutboxEvent {
	t.Helper()
	e, err := model.NewOutboxEvent(eventType, uuid.New(), map[string]string{"time": "09:00"})
	require.NoError(t, err)
	return e
}

func setupProcessor(t *testing.T, repo *fakeOutbox, broker *fakeBroker) (*OutboxProcessor, *metrics.Metrics) {
	t.Helper()
	m := metrics.New("test", prometheus.NewRegistry())
	p, err := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		Channel:       "hospital.events",
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
		MaxRetries:    3,
	}, logger.New(logger.Config{Output: io.Discard}), m)
	require.NoError(t, err)
	return p, m
}

func TestProcessBatchPublishesEnvelope(t *testing.T) {
	created := event(t, model.EventAppointmentCreated)
	repo := &fakeOutbox{pending: []*model.OutboxEvent{created}}
	broker := &fakeBroker{}
	p, m := setupProcessor(t, repo, broker)

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, broker.published, 1)
	msg := broker.published[0]
	assert.Equal(t, created.ID, msg.ID)
	assert.Equal(t, model.EventAppointmentCreated, msg.Type)
	assert.Equal(t, created.AggregateID, msg.AggregateID)
	assert.Equal(t, json.RawMessage(created.Payload), msg.Payload)
	assert.Equal(t, []uuid.UUID{created.ID}, repo.processed)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxEventsProcessed))
}

func TestProcessBatchRetriesThenMarksFailed(t *testing.T) {
	flaky := event(t, model.EventAttendanceCreated)
	broken := event(t, model.EventAppointmentDeleted)
	repo := &fakeOutbox{pending: []*model.OutboxEvent{flaky, broken}}
	broker := &fakeBroker{failFor: map[string]int{
		model.EventAttendanceCreated:  1,
		model.EventAppointmentDeleted: 5,
	}}
	p, m := setupProcessor(t, repo, broker)

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []uuid.UUID{flaky.ID}, repo.processed)
	assert.Contains(t, repo.failed[broken.ID], "broker unavailable")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxEventsFailed))
}

func TestProcessBatchClaimsWithDefaultLease(t *testing.T) {
	repo := &fakeOutbox{}
	p, _ := setupProcessor(t, repo, &fakeBroker{})

	_, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, repo.lease)
}

func TestProcessBatchMarksFailedAfterShutdown(t *testing.T) {
	stuck := event(t, model.EventAppointmentUpdated)
	repo := &fakeOutbox{pending: []*model.OutboxEvent{stuck}}
	broker := &fakeBroker{failFor: map[string]int{model.EventAppointmentUpdated: 5}}
	p, _ := setupProcessor(t, repo, broker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := p.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, repo.failed, stuck.ID)
}

func TestProcessBatchClaimError(t *testing.T) {
	repo := &fakeOutbox{claimErr: errors.New("db down")}
	p, _ := setupProcessor(t, repo, &fakeBroker{})

	_, err := p.ProcessBatch(context.Background())
	assert.Error(t, err)
}

func TestCleanupCountsPurged(t *testing.T) {
	repo := &fakeOutbox{purged: 4}
	p, m := setupProcessor(t, repo, &fakeBroker{})

	n, err := p.Cleanup(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.OutboxEventsPurged))
}

func TestNewOutboxProcessorRejectsBadConfig(t *testing.T) {
	_, err := NewOutboxProcessor(&fakeOutbox{}, &fakeBroker{}, OutboxProcessorConfig{Channel: "x"},
		logger.New(logger.Config{Output: io.Discard}), metrics.New("test", prometheus.NewRegistry()))
	assert.Error(t, err)
}
