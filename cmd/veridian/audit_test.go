package main

import (
	"testing"
	"time"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		timeRange string
		wantErr   bool
	}{
		{
			name:      "valid range",
			timeRange: "2026-08-25T00:00:00Z/2026-08-26T00:00:00Z",
			wantErr:   false,
		},
		{
			name:      "missing separator",
			timeRange: "2026-08-25T00:00:00Z",
			wantErr:   true,
		},
		{
			name:      "invalid start",
			timeRange: "not-a-time/2026-08-26T00:00:00Z",
			wantErr:   true,
		},
		{
			name:      "invalid end",
			timeRange: "2026-08-25T00:00:00Z/not-a-time",
			wantErr:   true,
		},
		{
			name:      "end before start",
			timeRange: "2026-08-26T00:00:00Z/2026-08-25T00:00:00Z",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parseTimeRange(tt.timeRange)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !end.After(start) {
				t.Errorf("end %v should be after start %v", end, start)
			}
		})
	}
}

func TestBuildAuditQuery(t *testing.T) {
	auditFlags.timeRange = "2026-08-25T00:00:00Z/2026-08-26T00:00:00Z"
	auditFlags.recordType = "user"
	auditFlags.recordID = "user-42"
	auditFlags.valid = "false"
	auditFlags.limit = 50
	auditFlags.offset = 10
	defer func() {
		auditFlags.timeRange = ""
		auditFlags.recordType = ""
		auditFlags.recordID = ""
		auditFlags.valid = ""
		auditFlags.limit = 100
		auditFlags.offset = 0
	}()

	query, err := buildAuditQuery()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if query.RecordType != "user" {
		t.Errorf("RecordType = %q, want %q", query.RecordType, "user")
	}
	if query.RecordID != "user-42" {
		t.Errorf("RecordID = %q, want %q", query.RecordID, "user-42")
	}
	if query.Valid == nil || *query.Valid {
		t.Error("Valid filter should be false")
	}
	if query.Limit != 50 || query.Offset != 10 {
		t.Errorf("pagination = (%d, %d), want (50, 10)", query.Limit, query.Offset)
	}

	wantStart := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	if query.StartTime == nil || !query.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", query.StartTime, wantStart)
	}
}

func TestBuildAuditQueryRejectsBadValidValue(t *testing.T) {
	auditFlags.valid = "maybe"
	defer func() { auditFlags.valid = "" }()

	if _, err := buildAuditQuery(); err == nil {
		t.Error("expected error for invalid --valid value")
	}
}
