package event

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/metrics/metricstest"
)

type recorder struct {
	keys []string
	msgs []interface{}
	err  error
}

func (r *recorder) Publish(_ context.Context, key string, msg interface{}) error {
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, key)
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestEmit_Success(t *testing.T) {
	metrics.InitMetrics()
	labels := prometheus.Labels{"routing_key": OrderShipped, "result": "success"}
	before := metricstest.CounterVecValue(t, metrics.EventsPublishedTotal, labels)

	r := &recorder{}
	Emit(context.Background(), r, OrderShipped, OrderShippedEvent{OrderID: 3})

	require.Len(t, r.keys, 1)
	assert.Equal(t, OrderShipped, r.keys[0])
	assert.Equal(t, OrderShippedEvent{OrderID: 3}, r.msgs[0])
	assert.Equal(t, before+1, metricstest.CounterVecValue(t, metrics.EventsPublishedTotal, labels))
}

func TestEmit_FailureIsLoggedNotReturned(t *testing.T) {
	metrics.InitMetrics()
	labels := prometheus.Labels{"routing_key": BookCreated, "result": "failure"}
	before := metricstest.CounterVecValue(t, metrics.EventsPublishedTotal, labels)

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())
	Emit(ctx, &recorder{err: errors.New("channel closed")}, BookCreated, BookCreatedEvent{BookID: 1})

	assert.Contains(t, buf.String(), "channel closed")
	assert.Contains(t, buf.String(), BookCreated)
	assert.Equal(t, before+1, metricstest.CounterVecValue(t, metrics.EventsPublishedTotal, labels))
}

func TestEmit_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, OrderCreated, OrderCreatedEvent{})
	})
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), OrderCreated, nil))
}
