package cashbook_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-bizdocs/internal/cashbook"
	cashbookerrors "go-bizdocs/internal/cashbook/errors"
	cashbookMock "go-bizdocs/internal/cashbook/mock"
	"go-bizdocs/internal/company"
	"go-bizdocs/internal/pdflayout"
	"go-bizdocs/internal/shared/apperror"
	"go-bizdocs/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeProfiles struct {
	GetProfileFn func(ctx context.Context, id string) (*company.ProfileResponse, error)
}

func (f *fakeProfiles) GetProfile(ctx context.Context, id string) (*company.ProfileResponse, error) {
	return f.GetProfileFn(ctx, id)
}

type fakeRenderer struct {
	RenderFn func(ctx context.Context, doc pdflayout.Document) ([]byte, error)
}

func (f *fakeRenderer) Render(ctx context.Context, doc pdflayout.Document) ([]byte, error) {
	return f.RenderFn(ctx, doc)
}

func setupCashBook(t *testing.T) (cashbook.Service, *cashbookMock.MockRepository, *fakeRenderer) {
	ctrl := gomock.NewController(t)
	repo := cashbookMock.NewMockRepository(ctrl)
	profiles := &fakeProfiles{GetProfileFn: func(ctx context.Context, id string) (*company.ProfileResponse, error) {
		return &company.ProfileResponse{ID: id, Name: "Stone Works", CurrencyCode: "KES"}, nil
	}}
	renderer := &fakeRenderer{RenderFn: func(ctx context.Context, doc pdflayout.Document) ([]byte, error) {
		return []byte("%PDF-1.3"), nil
	}}
	return cashbook.NewService(repo, profiles, renderer, "en-KE", "KES"), repo, renderer
}

func entries(side cashbook.Side, n int, cash float64) []cashbook.Entry {
	out := make([]cashbook.Entry, n)
	for i := range out {
		out[i] = cashbook.Entry{
			ID:          uuid.New(),
			Side:        side,
			EntryDate:   time.Date(2026, 10, i+1, 0, 0, 0, 0, time.UTC),
			Particulars: fmt.Sprintf("%s %d", side, i+1),
			Cash:        cash,
		}
	}
	return out
}

func TestCashBookService_CreateEntry(t *testing.T) {
	companyID := uuid.New().String()
	ctx := contextutil.WithUserID(context.Background(), "user-1")

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := setupCashBook(t)
		repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *cashbook.Entry) error {
				assert.Equal(t, companyID, e.CompanyID.String())
				assert.Equal(t, "Sale of offcuts", e.Particulars)
				assert.Equal(t, 1234.57, e.Cash)
				assert.Equal(t, "user-1", e.CreatedBy)
				return nil
			})

		resp, err := svc.CreateEntry(ctx, companyID, cashbook.CreateEntryRequest{
			Side: cashbook.SideReceipt, EntryDate: "2026-10-19", Particulars: " Sale of offcuts ", Cash: 1234.567,
		})

		assert.NoError(t, err)
		assert.Equal(t, "2026-10-19", resp.EntryDate)
	})

	t.Run("all amounts zero", func(t *testing.T) {
		svc, _, _ := setupCashBook(t)

		_, err := svc.CreateEntry(ctx, companyID, cashbook.CreateEntryRequest{
			Side: cashbook.SidePayment, EntryDate: "2026-10-19", Particulars: "Nothing",
		})

		assert.ErrorIs(t, err, cashbookerrors.ErrEmptyEntry)
	})

	t.Run("bad date", func(t *testing.T) {
		svc, _, _ := setupCashBook(t)

		_, err := svc.CreateEntry(ctx, companyID, cashbook.CreateEntryRequest{
			Side: cashbook.SidePayment, EntryDate: "yesterday", Particulars: "Fuel", Cash: 10,
		})

		assert.ErrorIs(t, err, cashbookerrors.ErrInvalidEntryDate)
	})
}

func TestCashBookService_ListEntries(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("splits sides and totals the full lists", func(t *testing.T) {
		svc, repo, _ := setupCashBook(t)
		all := append(entries(cashbook.SideReceipt, 15, 1000), entries(cashbook.SidePayment, 2, 250)...)
		repo.EXPECT().FindByPeriod(ctx, companyID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, companyID string, from, to *time.Time) ([]cashbook.Entry, error) {
				assert.Equal(t, "2026-10-01", from.Format("2006-01-02"))
				assert.Equal(t, "2026-10-31", to.Format("2006-01-02"))
				return all, nil
			})

		res, err := svc.ListEntries(ctx, companyID, cashbook.PeriodQuery{From: "2026-10-01", To: "2026-10-31"})

		assert.NoError(t, err)
		assert.Len(t, res.Receipts, 15)
		assert.Len(t, res.Payments, 2)
		assert.Equal(t, 15000.0, res.ReceiptTotals.Cash)
		assert.Equal(t, 500.0, res.PaymentTotals.Cash)
		assert.True(t, res.Truncated)
	})

	t.Run("open period", func(t *testing.T) {
		svc, repo, _ := setupCashBook(t)
		repo.EXPECT().FindByPeriod(ctx, companyID, (*time.Time)(nil), (*time.Time)(nil)).Return(nil, nil)

		res, err := svc.ListEntries(ctx, companyID, cashbook.PeriodQuery{})

		assert.NoError(t, err)
		assert.Empty(t, res.Receipts)
		assert.False(t, res.Truncated)
	})

	t.Run("reversed period", func(t *testing.T) {
		svc, _, _ := setupCashBook(t)

		_, err := svc.ListEntries(ctx, companyID, cashbook.PeriodQuery{From: "2026-10-31", To: "2026-10-01"})

		assert.ErrorIs(t, err, cashbookerrors.ErrInvalidPeriod)
	})
}

func TestCashBookService_Layout(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	svc, repo, _ := setupCashBook(t)
	repo.EXPECT().FindByPeriod(ctx, companyID, gomock.Any(), gomock.Any()).
		Return(append(entries(cashbook.SideReceipt, 13, 100), entries(cashbook.SidePayment, 1, 40.5)...), nil)

	doc, err := svc.Layout(ctx, companyID, cashbook.PeriodQuery{From: "2026-10-01", To: "2026-10-31", PreparedBy: "Alice"})

	assert.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount())
	in := doc.Inputs[0]
	assert.Equal(t, "Stone Works", in["companyName"])
	assert.Equal(t, "RECEIPT 12", in["receipt_11_particulars"])
	assert.Equal(t, "1,300.00", in["receipt_total_cash"])
	assert.Equal(t, "40.50", in["payment_0_cash"])
	assert.Equal(t, "", in["payment_1_cash"])
	assert.Equal(t, "Alice", in["preparedBy"])
}

func TestCashBookService_RenderPDF(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := setupCashBook(t)
		repo.EXPECT().FindByPeriod(ctx, companyID, gomock.Any(), gomock.Any()).Return(nil, nil)

		body, name, err := svc.RenderPDF(ctx, companyID, cashbook.PeriodQuery{From: "2026-10-01", To: "2026-10-31"})

		assert.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.3"), body)
		assert.Equal(t, "cash-book_2026-10-01_2026-10-31.pdf", name)
	})

	t.Run("renderer failure", func(t *testing.T) {
		svc, repo, renderer := setupCashBook(t)
		repo.EXPECT().FindByPeriod(ctx, companyID, gomock.Any(), gomock.Any()).Return(nil, nil)
		renderer.RenderFn = func(ctx context.Context, doc pdflayout.Document) ([]byte, error) {
			return nil, errors.New("boom")
		}

		_, _, err := svc.RenderPDF(ctx, companyID, cashbook.PeriodQuery{})

		assert.Equal(t, "Failed to generate PDF", apperror.ToHTTP(err).Message)
	})
}

func TestCashBookService_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	svc, repo, _ := setupCashBook(t)

	assert.ErrorIs(t, svc.DeleteEntry(ctx, companyID, "x"), cashbookerrors.ErrInvalidEntryID)

	id := uuid.New().String()
	repo.EXPECT().Delete(ctx, companyID, id).Return(errors.New("record not found"))
	assert.Error(t, svc.DeleteEntry(ctx, companyID, id))
}
