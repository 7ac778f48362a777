package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pdf-qa-be/internal/pkg/logger"
	"pdf-qa-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingForwarder) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingForwarder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
}

func TestPublishConsume_ForwardsEvents(t *testing.T) {
	bus := newBus()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	forwarder := &recordingForwarder{}
	consumer := NewConsumerService(bus, "PDF_QA_EVENTS", forwarder, nopLogger)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("PDF_QA_EVENTS", bus)
	require.NoError(t, publisher.Publish(ctx, events.DocumentActivated("d-1", "notes.pdf", 3)))
	require.NoError(t, publisher.Publish(ctx, events.ArtifactGenerated("d-1", "summary")))

	assert.Eventually(t, func() bool { return forwarder.count() == 2 }, time.Second, 10*time.Millisecond)
	forwarder.mu.Lock()
	defer forwarder.mu.Unlock()
	types := []string{forwarder.events[0].EventType(), forwarder.events[1].EventType()}
	assert.ElementsMatch(t, []string{events.TypeDocumentActivated, events.TypeArtifactGenerated}, types)
}

func TestConsume_ForwardFailureIsLogged(t *testing.T) {
	bus := newBus()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, logs := observer.New(zapcore.DebugLevel)
	forwarder := &recordingForwarder{err: errors.New("nats down")}
	consumer := NewConsumerService(bus, "topic", forwarder, logger.NewObservedLogger(zap.New(core)))
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, NewPublisherService("topic", bus).Publish(ctx, events.ArtifactGenerated("d-1", "mcqs")))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Failed to forward event to NATS").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestConsume_BadPayloadIsDropped(t *testing.T) {
	bus := newBus()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	forwarder := &recordingForwarder{}
	require.NoError(t, NewConsumerService(bus, "topic", forwarder, nopLogger).Consume(ctx))

	require.NoError(t, bus.Publish("topic", message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, NewPublisherService("topic", bus).Publish(ctx, events.ArtifactGenerated("d-1", "mcqs")))

	assert.Eventually(t, func() bool { return forwarder.count() == 1 }, time.Second, 10*time.Millisecond)
}
