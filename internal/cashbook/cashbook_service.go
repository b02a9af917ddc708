package cashbook

import (
	"context"
	"fmt"
	"strings"
	"time"

	cashbookerrors "go-bizdocs/internal/cashbook/errors"
	"go-bizdocs/internal/company"
	"go-bizdocs/internal/pdflayout"
	"go-bizdocs/internal/pdfrender"
	"go-bizdocs/internal/shared/apperror"
	"go-bizdocs/internal/shared/contextutil"
	"go-bizdocs/internal/shared/currency"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=cashbook_service.go -destination=mock/cashbook_service_mock.go -package=mock
type Service interface {
	CreateEntry(ctx context.Context, companyID string, req CreateEntryRequest) (EntryResponse, error)
	DeleteEntry(ctx context.Context, companyID, id string) error
	ListEntries(ctx context.Context, companyID string, q PeriodQuery) (CashBookResponse, error)
	Layout(ctx context.Context, companyID string, q PeriodQuery) (pdflayout.Document, error)
	RenderPDF(ctx context.Context, companyID string, q PeriodQuery) ([]byte, string, error)
}

type ProfileProvider interface {
	GetProfile(ctx context.Context, id string) (*company.ProfileResponse, error)
}

type service struct {
	repo     Repository
	profiles ProfileProvider
	renderer pdfrender.Renderer
	locale   string
	currency string
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	profiles ProfileProvider,
	renderer pdfrender.Renderer,
	locale, currencyCode string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("cashbook.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cashbook.service")
	}
	if renderer == nil {
		renderer = pdfrender.New()
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		renderer: renderer,
		locale:   locale,
		currency: currencyCode,
		logger:   l,
	}
}

func (s *service) CreateEntry(ctx context.Context, companyID string, req CreateEntryRequest) (EntryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return EntryResponse{}, cashbookerrors.ErrInvalidCompanyID
	}
	date, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		return EntryResponse{}, cashbookerrors.ErrInvalidEntryDate
	}
	if req.Cash == 0 && req.Bank == 0 && req.Discount == 0 {
		return EntryResponse{}, cashbookerrors.ErrEmptyEntry
	}

	entry := &Entry{
		ID:          uuid.New(),
		CompanyID:   cid,
		Side:        req.Side,
		EntryDate:   date,
		Particulars: strings.TrimSpace(req.Particulars),
		Ref:         strings.TrimSpace(req.Ref),
		Cash:        currency.Sum(req.Cash),
		Bank:        currency.Sum(req.Bank),
		Discount:    currency.Sum(req.Discount),
		CreatedBy:   contextutil.GetUserID(ctx),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error("create cash book entry failed", zap.String("company_id", companyID), zap.Error(err))
		return EntryResponse{}, mapRepositoryError(err)
	}

	log.Info("cash book entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("side", string(entry.Side)),
	)
	return mapToResponse(*entry), nil
}

func (s *service) DeleteEntry(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return cashbookerrors.ErrInvalidEntryID
	}
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("delete cash book entry failed", zap.String("entry_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) ListEntries(ctx context.Context, companyID string, q PeriodQuery) (CashBookResponse, error) {
	receipts, payments, err := s.load(ctx, companyID, q)
	if err != nil {
		return CashBookResponse{}, err
	}

	return CashBookResponse{
		From:          q.From,
		To:            q.To,
		Receipts:      mapToListResponse(receipts),
		Payments:      mapToListResponse(payments),
		ReceiptTotals: totalsResponse(receipts),
		PaymentTotals: totalsResponse(payments),
		Truncated:     len(receipts) > MaxRows || len(payments) > MaxRows,
	}, nil
}

func (s *service) Layout(ctx context.Context, companyID string, q PeriodQuery) (pdflayout.Document, error) {
	receipts, payments, err := s.load(ctx, companyID, q)
	if err != nil {
		return pdflayout.Document{}, err
	}
	if s.profiles == nil {
		return pdflayout.Document{}, apperror.ErrInternal
	}
	profile, err := s.profiles.GetProfile(ctx, companyID)
	if err != nil {
		return pdflayout.Document{}, err
	}

	code := profile.CurrencyCode
	if code == "" {
		code = s.currency
	}
	meta := Meta{
		CompanyName: profile.Name,
		PeriodFrom:  q.From,
		PeriodTo:    q.To,
		PreparedBy:  strings.TrimSpace(q.PreparedBy),
	}
	return Document(toTxns(receipts), toTxns(payments), meta, currency.NewFormatterFromLocale(s.locale, code)), nil
}

func (s *service) RenderPDF(ctx context.Context, companyID string, q PeriodQuery) ([]byte, string, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	doc, err := s.Layout(ctx, companyID, q)
	if err != nil {
		return nil, "", err
	}
	body, err := s.renderer.Render(ctx, doc)
	if err != nil {
		log.Error("render cash book failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, "", apperror.WrapAs(err, apperror.ErrPDFGenerationFailed)
	}
	return body, filename(q), nil
}

func (s *service) load(ctx context.Context, companyID string, q PeriodQuery) ([]Entry, []Entry, error) {
	from, to, err := parsePeriod(q)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.repo.FindByPeriod(ctx, companyID, from, to)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list cash book entries failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return nil, nil, mapRepositoryError(err)
	}

	var receipts, payments []Entry
	for _, e := range entries {
		if e.Side == SidePayment {
			payments = append(payments, e)
		} else {
			receipts = append(receipts, e)
		}
	}
	return receipts, payments, nil
}

func parsePeriod(q PeriodQuery) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if q.From != "" {
		t, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return nil, nil, cashbookerrors.ErrInvalidPeriod
		}
		from = &t
	}
	if q.To != "" {
		t, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return nil, nil, cashbookerrors.ErrInvalidPeriod
		}
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, cashbookerrors.ErrInvalidPeriod
	}
	return from, to, nil
}

func filename(q PeriodQuery) string {
	switch {
	case q.From != "" && q.To != "":
		return fmt.Sprintf("cash-book_%s_%s.pdf", q.From, q.To)
	case q.From != "":
		return fmt.Sprintf("cash-book_from_%s.pdf", q.From)
	case q.To != "":
		return fmt.Sprintf("cash-book_to_%s.pdf", q.To)
	}
	return "cash-book.pdf"
}

func toTxns(entries []Entry) []Txn {
	out := make([]Txn, len(entries))
	for i, e := range entries {
		out[i] = Txn{
			Date:        e.EntryDate.Format(dateLayout),
			Particulars: e.Particulars,
			Ref:         e.Ref,
			Cash:        e.Cash,
			Bank:        e.Bank,
			Discount:    e.Discount,
		}
	}
	return out
}

func totalsResponse(entries []Entry) TotalsResponse {
	t := SideTotals(toTxns(entries))
	return TotalsResponse{Cash: t.Cash, Bank: t.Bank, Discount: t.Discount}
}

func mapToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID.String(),
		Side:        e.Side,
		EntryDate:   e.EntryDate.Format(dateLayout),
		Particulars: e.Particulars,
		Ref:         e.Ref,
		Cash:        e.Cash,
		Bank:        e.Bank,
		Discount:    e.Discount,
	}
}

func mapToListResponse(entries []Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = mapToResponse(e)
	}
	return res
}
