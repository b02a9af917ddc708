package salesdoc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-bizdocs/internal/company"
	"go-bizdocs/internal/events"
	"go-bizdocs/internal/messaging/kafka"
	"go-bizdocs/internal/pdflayout"
	"go-bizdocs/internal/pdfrender"
	salesdocerrors "go-bizdocs/internal/salesdoc/errors"
	"go-bizdocs/internal/shared/apperror"
	"go-bizdocs/internal/shared/contextutil"
	"go-bizdocs/internal/shared/counter"
	"go-bizdocs/internal/shared/currency"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

const (
	PDFStatusQueued = "queued"
)

//go:generate mockgen -source=salesdoc_service.go -destination=mock/salesdoc_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDocumentRequest) (DocumentResponse, error)
	GetAll(ctx context.Context, companyID string, kind Kind) ([]DocumentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DocumentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDocumentRequest) (DocumentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Convert(ctx context.Context, companyID, id string, req ConvertRequest) (DocumentResponse, error)
	Layout(ctx context.Context, companyID, id string) (pdflayout.Document, error)
	RenderPDF(ctx context.Context, companyID, id string) (RenderedPDF, error)
	RequestPDF(ctx context.Context, companyID, id string) (PDFRequestResponse, error)
	GeneratePDF(ctx context.Context, companyID, id string) error
	DownloadPDF(ctx context.Context, companyID, id string) (string, error)
}

type RenderedPDF struct {
	Filename string
	Body     []byte
}

type ProfileProvider interface {
	GetProfile(ctx context.Context, id string) (*company.ProfileResponse, error)
}

type AssetResolver interface {
	Logo(ctx context.Context, url string) (string, error)
	Watermark(ctx context.Context, url string) string
}

type Storage interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

// RenderDeps groups the collaborators used to turn a stored document into a PDF.
type RenderDeps struct {
	Profiles ProfileProvider
	Assets   AssetResolver
	Renderer pdfrender.Renderer
	Storage  Storage
	Measurer pdflayout.TextMeasurer
	Locale   string
	// Currency is used when the company has no currency of its own.
	Currency string
}

type service struct {
	db        *sql.DB
	repo      Repository
	sequencer *counter.Sequencer
	outbox    kafka.OutboxRepository
	render    RenderDeps
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	render RenderDeps,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salesdoc.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salesdoc.service")
	}
	if render.Renderer == nil {
		render.Renderer = pdfrender.New()
	}
	return &service{
		db:        db,
		repo:      repo,
		sequencer: counter.NewSequencer(counterRepo),
		outbox:    outboxRepo,
		render:    render,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDocumentRequest) (DocumentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)
	log.Debug("create document requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("kind", string(req.Kind)),
		zap.Int("items", len(req.Items)),
	)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return DocumentResponse{}, salesdocerrors.ErrInvalidCompanyID
	}
	if !req.Kind.Valid() {
		return DocumentResponse{}, salesdocerrors.ErrInvalidKind
	}
	docDate, err := time.Parse(dateLayout, req.DocumentDate)
	if err != nil {
		log.Warn("create document invalid document_date", zap.String("document_date", req.DocumentDate), zap.Error(err))
		return DocumentResponse{}, salesdocerrors.ErrInvalidDocumentDate
	}

	terms := req.Terms
	if terms == nil && s.render.Profiles != nil {
		profile, err := s.render.Profiles.GetProfile(ctx, companyID)
		if err != nil {
			log.Error("create document load company profile failed", zap.Error(err))
			return DocumentResponse{}, err
		}
		terms = profile.DefaultTerms
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create document begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	number, err := s.sequencer.NextDocumentNumber(ctx, companyID, req.Kind.Prefix())
	if err != nil {
		log.Error("create document generate number failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	doc := &SalesDocument{
		ID:           uuid.New(),
		CompanyID:    cid,
		Kind:         req.Kind,
		Number:       number,
		Title:        strings.TrimSpace(req.Title),
		ClientName:   strings.TrimSpace(req.ClientName),
		SiteLocation: strings.TrimSpace(req.SiteLocation),
		ClientMobile: strings.TrimSpace(req.ClientMobile),
		DocumentDate: docDate,
		Notes:        req.Notes,
		PreparedBy:   req.PreparedBy,
		ApprovedBy:   req.ApprovedBy,
	}
	if err := applyBody(doc, req.SectionNames, terms, req.Items); err != nil {
		return DocumentResponse{}, err
	}

	if err := s.repo.WithTx(tx).Create(ctx, doc); err != nil {
		log.Error("create document persist failed", zap.Error(err))
		return DocumentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create document commit failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}

	log.Info("create document success",
		zap.String("request_id", rid),
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
	)
	return mapToResponse(*doc)
}

func (s *service) GetAll(ctx context.Context, companyID string, kind Kind) ([]DocumentResponse, error) {
	s.logger.Debug("get all documents requested",
		zap.String("company_id", companyID),
		zap.String("kind", string(kind)),
	)
	if kind != "" && !kind.Valid() {
		return nil, salesdocerrors.ErrInvalidKind
	}

	docs, err := s.repo.FindAllByCompany(ctx, companyID, kind)
	if err != nil {
		s.logger.Error("get all documents failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		resp, err := mapToResponse(d)
		if err != nil {
			return nil, err
		}
		res = append(res, resp)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DocumentResponse, error) {
	doc, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*doc)
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateDocumentRequest) (DocumentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update document requested",
		zap.String("company_id", companyID),
		zap.String("document_id", id),
	)

	docDate, err := time.Parse(dateLayout, req.DocumentDate)
	if err != nil {
		return DocumentResponse{}, salesdocerrors.ErrInvalidDocumentDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update document begin tx failed", zap.Error(err))
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	doc, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	doc.Title = strings.TrimSpace(req.Title)
	doc.ClientName = strings.TrimSpace(req.ClientName)
	doc.SiteLocation = strings.TrimSpace(req.SiteLocation)
	doc.ClientMobile = strings.TrimSpace(req.ClientMobile)
	doc.DocumentDate = docDate
	doc.Notes = req.Notes
	doc.PreparedBy = req.PreparedBy
	doc.ApprovedBy = req.ApprovedBy
	// The stored PDF no longer matches the document.
	doc.PDFURL = ""
	doc.PDFGeneratedAt = nil
	if err := applyBody(doc, req.SectionNames, req.Terms, req.Items); err != nil {
		return DocumentResponse{}, err
	}

	if err := qtx.Update(ctx, doc); err != nil {
		log.Error("update document persist failed", zap.Error(err))
		return DocumentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update document commit failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	log.Info("update document success", zap.String("document_id", id))
	return mapToResponse(*doc)
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return salesdocerrors.ErrInvalidDocumentID
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		log.Error("delete document failed", zap.String("document_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	log.Info("delete document success", zap.String("document_id", id))
	return nil
}

// Convert derives a follow-up document (e.g. an invoice from a quotation).
// The copy gets its own number and remembers the source number.
func (s *service) Convert(ctx context.Context, companyID, id string, req ConvertRequest) (DocumentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("convert document begin tx failed", zap.Error(err))
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	src, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	if !canConvert(src.Kind, req.Kind) {
		log.Warn("convert document rejected",
			zap.String("document_id", id),
			zap.String("from", string(src.Kind)),
			zap.String("to", string(req.Kind)),
		)
		return DocumentResponse{}, salesdocerrors.ErrInvalidConversion
	}

	number, err := s.sequencer.NextDocumentNumber(ctx, companyID, req.Kind.Prefix())
	if err != nil {
		log.Error("convert document generate number failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	dst := &SalesDocument{
		ID:             uuid.New(),
		CompanyID:      src.CompanyID,
		Kind:           req.Kind,
		Number:         number,
		OriginalNumber: src.Number,
		ClientName:     src.ClientName,
		SiteLocation:   src.SiteLocation,
		ClientMobile:   src.ClientMobile,
		DocumentDate:   s.now().UTC().Truncate(24 * time.Hour),
		SectionNames:   src.SectionNames,
		Terms:          src.Terms,
		Notes:          src.Notes,
		PreparedBy:     src.PreparedBy,
		ApprovedBy:     src.ApprovedBy,
		TotalAmount:    src.TotalAmount,
		Items:          make([]SalesDocumentItem, len(src.Items)),
	}
	for i, it := range src.Items {
		it.ID = uuid.Nil
		it.DocumentID = uuid.Nil
		dst.Items[i] = it
	}

	if err := qtx.Create(ctx, dst); err != nil {
		log.Error("convert document persist failed", zap.Error(err))
		return DocumentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("convert document commit failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	log.Info("convert document success",
		zap.String("source_id", id),
		zap.String("document_id", dst.ID.String()),
		zap.String("number", dst.Number),
	)
	return mapToResponse(*dst)
}

func (s *service) Layout(ctx context.Context, companyID, id string) (pdflayout.Document, error) {
	doc, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return pdflayout.Document{}, err
	}
	layout, err := s.compose(ctx, companyID, doc)
	if err != nil {
		return pdflayout.Document{}, s.renderFailure(ctx, doc, err)
	}
	return layout, nil
}

func (s *service) RenderPDF(ctx context.Context, companyID, id string) (RenderedPDF, error) {
	doc, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return RenderedPDF{}, err
	}
	body, err := s.renderDocument(ctx, companyID, doc)
	if err != nil {
		return RenderedPDF{}, s.renderFailure(ctx, doc, err)
	}
	return RenderedPDF{Filename: doc.Number + ".pdf", Body: body}, nil
}

// RequestPDF queues background generation; the event is written in the same
// transaction that confirms the document exists.
func (s *service) RequestPDF(ctx context.Context, companyID, id string) (PDFRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	if s.outbox == nil {
		return PDFRequestResponse{}, apperror.New(apperror.CodeServiceUnavailable, "Background generation is not available", http.StatusServiceUnavailable)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("request pdf begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PDFRequestResponse{}, err
	}
	defer tx.Rollback()

	doc, err := s.find(ctx, s.repo.WithTx(tx), companyID, id)
	if err != nil {
		return PDFRequestResponse{}, err
	}

	otx := s.outbox.WithTx(tx)
	pending, err := otx.HasPending(ctx, doc.ID.String(), events.DocumentPDFRequestedType)
	if err != nil {
		log.Error("request pdf pending check failed", zap.String("document_id", id), zap.Error(err))
		return PDFRequestResponse{}, err
	}
	if pending {
		log.Info("request pdf already queued", zap.String("request_id", rid), zap.String("document_id", id))
		return PDFRequestResponse{DocumentID: doc.ID.String(), Status: PDFStatusQueued}, nil
	}

	event := events.DocumentPDFRequestedEvent{
		EventType:   events.DocumentPDFRequestedType,
		RequestID:   rid,
		DocumentID:  doc.ID.String(),
		CompanyID:   companyID,
		RequestedBy: contextutil.GetUserID(ctx),
		OccurredAt:  s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return PDFRequestResponse{}, err
	}

	if err := otx.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "sales_document",
		AggregateID:   doc.ID.String(),
		EventType:     event.EventType,
		Topic:         events.DocumentPDFRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		log.Error("request pdf outbox persist failed", zap.String("document_id", id), zap.Error(err))
		return PDFRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("request pdf commit failed", zap.String("request_id", rid), zap.Error(err))
		return PDFRequestResponse{}, err
	}

	log.Info("request pdf queued", zap.String("request_id", rid), zap.String("document_id", id))
	return PDFRequestResponse{DocumentID: doc.ID.String(), Status: PDFStatusQueued}, nil
}

// GeneratePDF is the consumer side of RequestPDF.
func (s *service) GeneratePDF(ctx context.Context, companyID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if s.render.Storage == nil {
		return errors.New("salesdoc: no storage configured")
	}

	doc, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return err
	}
	body, err := s.renderDocument(ctx, companyID, doc)
	if err != nil {
		return s.renderFailure(ctx, doc, err)
	}

	url, err := s.render.Storage.Save(ctx, fmt.Sprintf("%s/%s.pdf", companyID, doc.Number), body)
	if err != nil {
		log.Error("store pdf failed", zap.String("document_id", id), zap.Error(err))
		return err
	}

	if err := s.repo.MarkPDFGenerated(ctx, companyID, id, url, s.now().UTC()); err != nil {
		log.Error("mark pdf generated failed", zap.String("document_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	log.Info("pdf generated",
		zap.String("document_id", id),
		zap.String("number", doc.Number),
		zap.Int("bytes", len(body)),
	)
	return nil
}

func (s *service) DownloadPDF(ctx context.Context, companyID, id string) (string, error) {
	doc, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return "", err
	}
	if doc.PDFURL == "" {
		return "", salesdocerrors.ErrPDFNotReady
	}
	return doc.PDFURL, nil
}

func (s *service) find(ctx context.Context, repo Repository, companyID, id string) (*SalesDocument, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, salesdocerrors.ErrInvalidDocumentID
	}
	doc, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("find document failed",
			zap.String("company_id", companyID),
			zap.String("document_id", id),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}
	return doc, nil
}

func (s *service) compose(ctx context.Context, companyID string, doc *SalesDocument) (pdflayout.Document, error) {
	if s.render.Profiles == nil {
		return pdflayout.Document{}, errors.New("salesdoc: no company profile provider")
	}
	profile, err := s.render.Profiles.GetProfile(ctx, companyID)
	if err != nil {
		return pdflayout.Document{}, err
	}

	var img images
	if s.render.Assets != nil {
		if img.logo, err = s.render.Assets.Logo(ctx, profile.LogoURL); err != nil {
			return pdflayout.Document{}, err
		}
		img.watermark = s.render.Assets.Watermark(ctx, profile.WatermarkURL)
	}

	data, err := toDocumentData(doc, profile, img)
	if err != nil {
		return pdflayout.Document{}, err
	}

	code := profile.CurrencyCode
	if code == "" {
		code = s.render.Currency
	}
	emitter := pdflayout.NewEmitter(
		pdflayout.WithFormatter(currency.NewFormatterFromLocale(s.render.Locale, code)),
		pdflayout.WithMeasurer(s.render.Measurer),
	)
	return emitter.Generate(data), nil
}

func (s *service) renderDocument(ctx context.Context, companyID string, doc *SalesDocument) ([]byte, error) {
	layout, err := s.compose(ctx, companyID, doc)
	if err != nil {
		return nil, err
	}
	return s.render.Renderer.Render(ctx, layout)
}

// renderFailure logs the cause and hides it behind one actionable message.
// Errors that already speak to the client pass through.
func (s *service) renderFailure(ctx context.Context, doc *SalesDocument, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Error("generate pdf failed",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
		zap.Error(err),
	)
	return apperror.WrapAs(err, apperror.ErrPDFGenerationFailed)
}

func canConvert(from, to Kind) bool {
	switch from {
	case KindQuotation:
		return to == KindSalesOrder || to == KindInvoice || to == KindCashSale
	case KindSalesOrder:
		return to == KindInvoice || to == KindCashSale
	}
	return false
}

func applyBody(doc *SalesDocument, names map[string]string, terms []string, items []ItemRequest) error {
	if terms == nil {
		terms = []string{}
	}
	raw, err := json.Marshal(terms)
	if err != nil {
		return err
	}
	doc.Terms = datatypes.JSON(raw)

	doc.SectionNames = nil
	if len(names) > 0 {
		doc.SectionNames = make(datatypes.JSONMap, len(names))
		for k, v := range names {
			doc.SectionNames[k] = v
		}
	}

	doc.Items = buildItems(items)
	for i := range doc.Items {
		doc.Items[i].DocumentID = doc.ID
	}
	_, doc.TotalAmount = sectionTotals(doc.Items)
	return nil
}

func mapToResponse(doc SalesDocument) (DocumentResponse, error) {
	terms, err := decodeTerms(&doc)
	if err != nil {
		return DocumentResponse{}, err
	}
	sections, _ := sectionTotals(doc.Items)

	items := make([]ItemResponse, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = ItemResponse{
			Type:        it.Type,
			ItemNumber:  it.ItemNumber,
			Description: it.Description,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		}
	}

	title := doc.Title
	if title == "" {
		title = doc.Kind.Title()
	}

	resp := DocumentResponse{
		ID:             doc.ID.String(),
		CompanyID:      doc.CompanyID.String(),
		Kind:           doc.Kind,
		Number:         doc.Number,
		OriginalNumber: doc.OriginalNumber,
		Title:          title,
		ClientName:     doc.ClientName,
		SiteLocation:   doc.SiteLocation,
		ClientMobile:   doc.ClientMobile,
		DocumentDate:   doc.DocumentDate.Format(dateLayout),
		SectionNames:   sectionNames(&doc),
		SectionTotals:  sections,
		Terms:          terms,
		Notes:          doc.Notes,
		PreparedBy:     doc.PreparedBy,
		ApprovedBy:     doc.ApprovedBy,
		Items:          items,
		Total:          doc.TotalAmount,
		PDFURL:         doc.PDFURL,
	}
	if doc.PDFGeneratedAt != nil {
		resp.PDFGeneratedAt = doc.PDFGeneratedAt.Format(time.RFC3339)
	}
	return resp, nil
}
