package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish(t *testing.T) {
	fw := &fakeWriter{}
	p := NewKafkaProducerWithWriter(fw, "member-events")

	err := p.Publish(context.Background(), "m1", map[string]string{"type": "member.enrolled"})
	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)

	assert.Equal(t, "m1", string(fw.msgs[0].Key))
	var payload map[string]string
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &payload))
	assert.Equal(t, "member.enrolled", payload["type"])
}

func TestPublishWriteError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker down")}
	p := NewKafkaProducerWithWriter(fw, "member-events")

	err := p.Publish(context.Background(), "m1", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member-events")
	assert.ErrorIs(t, err, fw.err)
}

func TestPublishMarshalError(t *testing.T) {
	fw := &fakeWriter{}
	p := NewKafkaProducerWithWriter(fw, "member-events")

	err := p.Publish(context.Background(), "m1", map[string]interface{}{"bad": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, fw.msgs)
}

func TestClose(t *testing.T) {
	fw := &fakeWriter{}
	require.NoError(t, NewKafkaProducerWithWriter(fw, "t").Close())
	assert.True(t, fw.closed)
}

func TestNewPublisherWithoutBroker(t *testing.T) {
	p := NewPublisher("", "member-events")
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), "k", "v"))
	assert.NoError(t, p.Close())
}
