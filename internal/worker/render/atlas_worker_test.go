package render_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/worker/render"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockRenderProcessor is a mock of RenderProcessor
type MockRenderProcessor struct {
	mock.Mock
}

func (m *MockRenderProcessor) ProcessRenderEvent(ctx context.Context, event *domain.AtlasRenderEvent) (*domain.AtlasDoneEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AtlasDoneEvent), args.Error(1)
}

func TestAtlasRenderWorker_Name(t *testing.T) {
	w := render.NewAtlasRenderWorker(&MockStreamRepository{}, &MockRenderProcessor{}, "test-group", 10, zap.NewNop())
	assert.Equal(t, "atlas-render", w.Name())
}

func TestAtlasRenderWorker_Stop(t *testing.T) {
	w := render.NewAtlasRenderWorker(&MockStreamRepository{}, &MockRenderProcessor{}, "test-group", 10, zap.NewNop())

	// Stop should not error even if not started
	assert.NoError(t, w.Stop())

	// Calling stop multiple times should be safe
	assert.NoError(t, w.Stop())
}

func TestAtlasRenderWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAtlasRender, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAtlasRender, "test-group", mock.AnythingOfType("string"), 10).
		Return([]domain.StreamMessage{}, nil)

	w := render.NewAtlasRenderWorker(mockStream, &MockRenderProcessor{}, "test-group", 10, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	mockStream.AssertExpectations(t)
}

func TestAtlasRenderWorker_ProcessesEventAndPublishesDone(t *testing.T) {
	jobID := uuid.New()
	event := domain.AtlasRenderEvent{
		JobID:   jobID,
		TripIDs: []uuid.UUID{uuid.New()},
		Options: domain.AtlasOptions{EpsilonMeters: 12000, MinPoints: 4, Limit: 12},
	}
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	doneEvent := &domain.AtlasDoneEvent{JobID: jobID, CacheKey: "abc", Clusters: 2}

	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAtlasRender, "test-group").Return(nil)
	// first batch carries the event, later batches are empty
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAtlasRender, "test-group", mock.AnythingOfType("string"), 10).
		Return([]domain.StreamMessage{{ID: "1-0", Data: string(payload)}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAtlasRender, "test-group", mock.AnythingOfType("string"), 10).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("PublishToStream", mock.Anything, domain.StreamAtlasDone, doneEvent).Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamAtlasRender, "test-group", "1-0").Return(nil)

	mockProcessor := &MockRenderProcessor{}
	mockProcessor.On("ProcessRenderEvent", mock.Anything, mock.MatchedBy(func(e *domain.AtlasRenderEvent) bool {
		return e.JobID == jobID && len(e.TripIDs) == 1
	})).Return(doneEvent, nil)

	w := render.NewAtlasRenderWorker(mockStream, mockProcessor, "test-group", 10, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done

	mockProcessor.AssertExpectations(t)
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamAtlasRender, "test-group", "1-0")
	mockStream.AssertCalled(t, "PublishToStream", mock.Anything, domain.StreamAtlasDone, doneEvent)
}

func TestAtlasRenderWorker_MalformedMessageIsAcked(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAtlasRender, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAtlasRender, "test-group", mock.AnythingOfType("string"), 10).
		Return([]domain.StreamMessage{{ID: "1-0", Data: "not json"}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAtlasRender, "test-group", mock.AnythingOfType("string"), 10).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamAtlasRender, "test-group", "1-0").Return(nil)

	mockProcessor := &MockRenderProcessor{}

	w := render.NewAtlasRenderWorker(mockStream, mockProcessor, "test-group", 10, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done

	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamAtlasRender, "test-group", "1-0")
	mockProcessor.AssertNotCalled(t, "ProcessRenderEvent", mock.Anything, mock.Anything)
}
