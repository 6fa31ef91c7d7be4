package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorAggregatesRepeatedWarnings(t *testing.T) {
	sink := NewMemorySink(10)
	l := NewNop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 100, Sink: sink})

	for i := 0; i < 3; i++ {
		l.Warn("news source failed", String("source", "Reuters"))
	}
	l.Error("provider down", Error(errors.New("timeout")))
	l.Info("not collected")
	l.collector.Flush()

	entries := sink.Recent(0)
	require.Len(t, entries, 2)

	byMsg := map[string]AggregatedLogEntry{}
	for _, e := range entries {
		byMsg[e.Message] = e
	}
	assert.Equal(t, 3, byMsg["news source failed"].Count)
	assert.Equal(t, "warn", byMsg["news source failed"].Level)
	assert.Equal(t, "timeout", byMsg["provider down"].Fields["error"])

	l.RemoveCollector()
}

func TestMemorySinkRing(t *testing.T) {
	sink := NewMemorySink(2)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, sink.Write(context.Background(), []AggregatedLogEntry{{
			Message:  string(rune('a' + i)),
			LastSeen: base.Add(time.Duration(i) * time.Minute),
		}}))
	}

	got := sink.Recent(10)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Message)
	assert.Equal(t, "b", got[1].Message)
	assert.Len(t, sink.Recent(1), 1)
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf).With(String("request_id", "r1"))
	l.Info("fetched", Int("bars", 252), Duration("took_ms", 1500*time.Millisecond), Float64("price", 1.5),
		Any("origins", []string{"*"}))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fetched", line["message"])
	assert.Equal(t, "r1", line["request_id"])
	assert.EqualValues(t, 252, line["bars"])
	assert.EqualValues(t, 1500, line["took_ms"])
	assert.Equal(t, []interface{}{"*"}, line["origins"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}
