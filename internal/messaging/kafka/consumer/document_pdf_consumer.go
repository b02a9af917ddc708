package consumer

import (
	"context"
	"encoding/json"

	"go-bizdocs/internal/events"
	"go-bizdocs/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type PDFGenerator interface {
	GeneratePDF(ctx context.Context, companyID, documentID string) error
}

// ConsumeDocumentPDFRequested renders stored PDFs for queued requests.
// Failed renders are left uncommitted so the group redelivers them.
func ConsumeDocumentPDFRequested(
	ctx context.Context,
	reader MessageReader,
	generator PDFGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.document_pdf")
	log.Info("document pdf consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("document pdf consumer stopped")
				return
			}
			log.Error("fetch document pdf message failed", zap.Error(err))
			continue
		}

		var event events.DocumentPDFRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode document pdf event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := contextutil.WithRequestID(ctx, event.RequestID)
		msgCtx = contextutil.WithCompanyID(msgCtx, event.CompanyID)
		msgCtx = contextutil.WithUserID(msgCtx, event.RequestedBy)
		msgCtx = contextutil.WithLogger(msgCtx, log.With(contextutil.ExtractMetadata(msgCtx).Fields()...))

		if err := generator.GeneratePDF(msgCtx, event.CompanyID, event.DocumentID); err != nil {
			log.Error("generate document pdf failed",
				zap.String("request_id", event.RequestID),
				zap.String("document_id", event.DocumentID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit document pdf message failed", zap.Error(err))
			continue
		}

		log.Info("document pdf generated",
			zap.String("request_id", event.RequestID),
			zap.String("document_id", event.DocumentID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
