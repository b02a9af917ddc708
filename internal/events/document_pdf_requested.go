package events

import "time"

const (
	DocumentPDFRequestedTopic = "bizdocs.document.pdf.requested.v1"
	DocumentPDFRequestedType  = "document_pdf_requested"
)

type DocumentPDFRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	DocumentID  string    `json:"document_id"`
	CompanyID   string    `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
