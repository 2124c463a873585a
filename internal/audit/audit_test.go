package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Log(t *testing.T) {
	tests := []struct {
		name          string
		event         Event
		wantEventType string
		wantSuccess   bool
	}{
		{
			name: "report published",
			event: Event{
				ReporterID: uuid.New(),
				EventType:  EventReportPublished,
				ReportID:   uuid.NewString(),
				Success:    true,
			},
			wantEventType: "REPORT_PUBLISHED",
			wantSuccess:   true,
		},
		{
			name: "match searched with metadata",
			event: Event{
				EventType: EventMatchSearched,
				Success:   true,
				Metadata:  map[string]string{"results": "4"},
			},
			wantEventType: "MATCH_SEARCHED",
			wantSuccess:   true,
		},
		{
			name: "confirmation with failed downstream",
			event: Event{
				EventType: EventMatchConfirmed,
				DraftID:   uuid.NewString(),
				Success:   false,
				Error:     "draft not found",
			},
			wantEventType: "MATCH_CONFIRMED",
			wantSuccess:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			auditLogger := NewSlogLogger(logger)
			require.NoError(t, auditLogger.Log(context.Background(), tt.event))

			var logged map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logged))

			assert.Equal(t, "audit_event", logged["msg"])
			assert.Equal(t, tt.wantEventType, logged["event_type"])
			assert.Equal(t, tt.wantSuccess, logged["success"])
			assert.Equal(t, "audit", logged["component"])
			assert.NotEmpty(t, logged["event_id"])
			assert.NotEmpty(t, logged["event_data"])
		})
	}
}

func TestSlogLogger_Log_FillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	auditLogger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, auditLogger.Log(context.Background(), Event{EventType: EventReportReunited, Success: true}))

	var logged map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logged))

	var payload Event
	require.NoError(t, json.Unmarshal([]byte(logged["event_data"].(string)), &payload))
	assert.NotEqual(t, uuid.Nil, payload.ID)
	assert.False(t, payload.Timestamp.IsZero())
}

func TestNoOpLogger(t *testing.T) {
	assert.NoError(t, (&NoOpLogger{}).Log(context.Background(), Event{EventType: EventReportPublished}))
}
