package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"go-bizdocs/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestDocumentPDFRequestedEvent_WireNames(t *testing.T) {
	event := events.DocumentPDFRequestedEvent{
		EventType:   events.DocumentPDFRequestedType,
		DocumentID:  "doc-1",
		CompanyID:   "company-1",
		RequestedBy: "user-1",
		OccurredAt:  time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(event)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"event_type": "document_pdf_requested",
		"document_id": "doc-1",
		"company_id": "company-1",
		"requested_by": "user-1",
		"occurred_at": "2026-10-19T08:00:00Z"
	}`, string(raw))
}
