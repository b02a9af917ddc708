package salesdoc_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-bizdocs/internal/company"
	"go-bizdocs/internal/events"
	"go-bizdocs/internal/messaging/kafka"
	"go-bizdocs/internal/pdflayout"
	"go-bizdocs/internal/salesdoc"
	salesdocerrors "go-bizdocs/internal/salesdoc/errors"
	"go-bizdocs/internal/shared/apperror"
	"go-bizdocs/internal/shared/contextutil"

	kafkaMock "go-bizdocs/internal/messaging/kafka/mock"
	salesdocMock "go-bizdocs/internal/salesdoc/mock"
	counterMock "go-bizdocs/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeProfiles struct {
	GetProfileFn func(ctx context.Context, id string) (*company.ProfileResponse, error)
}

func (f *fakeProfiles) GetProfile(ctx context.Context, id string) (*company.ProfileResponse, error) {
	return f.GetProfileFn(ctx, id)
}

type fakeAssets struct {
	LogoFn func(ctx context.Context, url string) (string, error)
}

func (f *fakeAssets) Logo(ctx context.Context, url string) (string, error) {
	return f.LogoFn(ctx, url)
}

func (f *fakeAssets) Watermark(ctx context.Context, url string) string {
	return ""
}

type fakeRenderer struct {
	RenderFn func(ctx context.Context, doc pdflayout.Document) ([]byte, error)
}

func (f *fakeRenderer) Render(ctx context.Context, doc pdflayout.Document) ([]byte, error) {
	return f.RenderFn(ctx, doc)
}

type fakeStorage struct {
	SaveFn func(ctx context.Context, key string, data []byte) (string, error)
}

func (f *fakeStorage) Save(ctx context.Context, key string, data []byte) (string, error) {
	return f.SaveFn(ctx, key, data)
}

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  salesdoc.Service
	repo     *salesdocMock.MockRepository
	counter  *counterMock.MockRepository
	outbox   *kafkaMock.MockOutboxRepository
	profiles *fakeProfiles
	assets   *fakeAssets
	renderer *fakeRenderer
	storage  *fakeStorage
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    salesdocMock.NewMockRepository(ctrl),
		counter: counterMock.NewMockRepository(ctrl),
		outbox:  kafkaMock.NewMockOutboxRepository(ctrl),
		profiles: &fakeProfiles{GetProfileFn: func(ctx context.Context, id string) (*company.ProfileResponse, error) {
			return &company.ProfileResponse{
				ID:           id,
				Name:         "Stone Works",
				Location:     "Nairobi",
				LogoURL:      "https://cdn.example.com/logo.png",
				CurrencyCode: "KES",
				DefaultTerms: []string{"Valid for 30 days"},
			}, nil
		}},
		assets: &fakeAssets{LogoFn: func(ctx context.Context, url string) (string, error) {
			return "", nil
		}},
		renderer: &fakeRenderer{RenderFn: func(ctx context.Context, doc pdflayout.Document) ([]byte, error) {
			return []byte("%PDF-1.3"), nil
		}},
		storage: &fakeStorage{SaveFn: func(ctx context.Context, key string, data []byte) (string, error) {
			return "/files/" + key, nil
		}},
	}

	deps.service = salesdoc.NewService(db, deps.repo, deps.counter, deps.outbox, salesdoc.RenderDeps{
		Profiles: deps.profiles,
		Assets:   deps.assets,
		Renderer: deps.renderer,
		Storage:  deps.storage,
		Locale:   "en-KE",
		Currency: "KES",
	})
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func worktopItems() []salesdoc.ItemRequest {
	qty, price := 2.0, 7500.0
	return []salesdoc.ItemRequest{
		{Type: salesdoc.ItemTypeSection, Description: "Worktop"},
		{Type: salesdoc.ItemTypeItem, ItemNumber: "1", Description: "Granite slab", Unit: "pcs", Quantity: &qty, UnitPrice: &price},
		{Type: salesdoc.ItemTypeItem, ItemNumber: "2", Description: "Cutting", Unit: "lot", Quantity: &qty, UnitPrice: &price},
		{Type: salesdoc.ItemTypeSummary},
	}
}

func storedDocument(companyID string, kind salesdoc.Kind, number string) *salesdoc.SalesDocument {
	total := 15000.0
	summary := 30000.0
	qty, price := 2.0, 7500.0
	return &salesdoc.SalesDocument{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		Kind:         kind,
		Number:       number,
		ClientName:   "Jane Wanjiku",
		SiteLocation: "Karen",
		ClientMobile: "0712000000",
		DocumentDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Terms:        datatypes.JSON(`["Valid for 30 days"]`),
		TotalAmount:  30000,
		Items: []salesdoc.SalesDocumentItem{
			{Position: 0, Type: salesdoc.ItemTypeSection, Description: "Worktop"},
			{Position: 1, Type: salesdoc.ItemTypeItem, ItemNumber: "1", Description: "Granite slab", Quantity: &qty, UnitPrice: &price, Total: &total},
			{Position: 2, Type: salesdoc.ItemTypeItem, ItemNumber: "2", Description: "Cutting", Quantity: &qty, UnitPrice: &price, Total: &total},
			{Position: 3, Type: salesdoc.ItemTypeSummary, Description: "Worktop", Total: &summary},
		},
	}
}

func TestSalesDocService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success - numbers, prices and default terms", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := salesdoc.CreateDocumentRequest{
			Kind:         salesdoc.KindQuotation,
			ClientName:   " Jane Wanjiku ",
			DocumentDate: "2026-10-19",
			Items:        worktopItems(),
		}

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().GetNextValue(ctx, companyID, "document_QT").Return(int64(42), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *salesdoc.SalesDocument) error {
				assert.Equal(t, "QT-000042", d.Number)
				assert.Equal(t, "Jane Wanjiku", d.ClientName)
				assert.Equal(t, companyID, d.CompanyID.String())
				assert.Equal(t, 30000.0, d.TotalAmount)
				assert.Len(t, d.Items, 4)
				assert.Equal(t, 15000.0, *d.Items[1].Total)
				assert.Equal(t, "Worktop", d.Items[3].Description)
				assert.Equal(t, 30000.0, *d.Items[3].Total)
				assert.JSONEq(t, `["Valid for 30 days"]`, string(d.Terms))
				return nil
			})

		resp, err := deps.service.Create(ctx, companyID, req)

		assert.NoError(t, err)
		assert.Equal(t, "QT-000042", resp.Number)
		assert.Equal(t, "QUOTATION", resp.Title)
		assert.Equal(t, []salesdoc.SectionTotalResponse{{Name: "Worktop", Total: 30000}}, resp.SectionTotals)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit empty terms skip the profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.profiles.GetProfileFn = func(ctx context.Context, id string) (*company.ProfileResponse, error) {
			t.Fatal("profile must not be loaded")
			return nil, nil
		}

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().GetNextValue(ctx, companyID, "document_INV").Return(int64(1), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, companyID, salesdoc.CreateDocumentRequest{
			Kind: salesdoc.KindInvoice, ClientName: "Jane", DocumentDate: "2026-10-19", Terms: []string{},
		})

		assert.NoError(t, err)
		assert.Equal(t, "INV-000001", resp.Number)
		assert.Empty(t, resp.Terms)
	})

	t.Run("invalid date", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, companyID, salesdoc.CreateDocumentRequest{
			Kind: salesdoc.KindQuotation, ClientName: "Jane", DocumentDate: "19/10/2026",
		})

		assert.ErrorIs(t, err, salesdocerrors.ErrInvalidDocumentDate)
	})

	t.Run("invalid company id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, "nope", salesdoc.CreateDocumentRequest{Kind: salesdoc.KindQuotation})

		assert.ErrorIs(t, err, salesdocerrors.ErrInvalidCompanyID)
	})

	t.Run("duplicate number", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().GetNextValue(ctx, companyID, "document_CS").Return(int64(7), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_sales_document_number"})

		_, err := deps.service.Create(ctx, companyID, salesdoc.CreateDocumentRequest{
			Kind: salesdoc.KindCashSale, ClientName: "Jane", DocumentDate: "2026-10-19", Terms: []string{},
		})

		assert.ErrorIs(t, err, salesdocerrors.ErrDocumentNumberExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalesDocService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("filters by kind", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAllByCompany(ctx, companyID, salesdoc.KindInvoice).
			Return([]salesdoc.SalesDocument{*storedDocument(companyID, salesdoc.KindInvoice, "INV-000001")}, nil)

		res, err := deps.service.GetAll(ctx, companyID, salesdoc.KindInvoice)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "INVOICE", res[0].Title)
	})

	t.Run("unknown kind", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, companyID, salesdoc.Kind("RECEIPT"))

		assert.ErrorIs(t, err, salesdocerrors.ErrInvalidKind)
	})
}

func TestSalesDocService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, companyID, "abc")

		assert.ErrorIs(t, err, salesdocerrors.ErrInvalidDocumentID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New().String()
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, companyID, id)

		assert.ErrorIs(t, err, salesdocerrors.ErrDocumentNotFound)
	})
}

func TestSalesDocService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupServiceTest(t)
	doc := storedDocument(companyID, salesdoc.KindQuotation, "QT-000001")
	doc.PDFURL = "/files/old.pdf"
	id := doc.ID.String()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(doc, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, d *salesdoc.SalesDocument) error {
			assert.Equal(t, "QT-000001", d.Number)
			assert.Equal(t, "", d.PDFURL)
			assert.Len(t, d.Items, 2)
			return nil
		})

	qty, price := 3.0, 100.0
	resp, err := deps.service.Update(ctx, companyID, id, salesdoc.UpdateDocumentRequest{
		ClientName:   "Jane",
		DocumentDate: "2026-10-20",
		SectionNames: map[string]string{"Cabinet": "Kitchen Cabinets"},
		Items: []salesdoc.ItemRequest{
			{Type: salesdoc.ItemTypeSection, Description: "Cabinet"},
			{Type: salesdoc.ItemTypeItem, Description: "Door", Quantity: &qty, UnitPrice: &price},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 300.0, resp.Total)
	assert.Equal(t, "2026-10-20", resp.DocumentDate)
	assert.Equal(t, "Kitchen Cabinets", resp.SectionNames["Cabinet"])
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalesDocService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New().String()
		deps.repo.EXPECT().Delete(ctx, companyID, id).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, companyID, id))
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		assert.ErrorIs(t, deps.service.Delete(ctx, companyID, "x"), salesdocerrors.ErrInvalidDocumentID)
	})
}

func TestSalesDocService_Convert(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("quotation to invoice keeps the source number", func(t *testing.T) {
		deps := setupServiceTest(t)
		src := storedDocument(companyID, salesdoc.KindQuotation, "QT-000042")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, src.ID.String()).Return(src, nil)
		deps.counter.EXPECT().GetNextValue(ctx, companyID, "document_INV").Return(int64(5), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *salesdoc.SalesDocument) error {
				assert.NotEqual(t, src.ID, d.ID)
				assert.Equal(t, salesdoc.KindInvoice, d.Kind)
				assert.Len(t, d.Items, 4)
				assert.Equal(t, uuid.Nil, d.Items[0].ID)
				return nil
			})

		resp, err := deps.service.Convert(ctx, companyID, src.ID.String(), salesdoc.ConvertRequest{Kind: salesdoc.KindInvoice})

		assert.NoError(t, err)
		assert.Equal(t, "INV-000005", resp.Number)
		assert.Equal(t, "QT-000042", resp.OriginalNumber)
		assert.Equal(t, 30000.0, resp.Total)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invoice cannot become a sales order", func(t *testing.T) {
		deps := setupServiceTest(t)
		src := storedDocument(companyID, salesdoc.KindInvoice, "INV-000001")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, src.ID.String()).Return(src, nil)

		_, err := deps.service.Convert(ctx, companyID, src.ID.String(), salesdoc.ConvertRequest{Kind: salesdoc.KindSalesOrder})

		assert.ErrorIs(t, err, salesdocerrors.ErrInvalidConversion)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalesDocService_Layout(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	deps := setupServiceTest(t)
	doc := storedDocument(companyID, salesdoc.KindQuotation, "QT-000042")
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)

	layout, err := deps.service.Layout(ctx, companyID, doc.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, 1, layout.PageCount())
	in := layout.Inputs[0]
	assert.Equal(t, "Stone Works", in["companyName"])
	assert.Equal(t, "QUOTATION NO: QT-000042", in["documentNumber"])
	assert.Equal(t, "Worktop:", in["sectionTotalLabel_0"])
	assert.Equal(t, "KES 30,000.00", in["sectionTotalValue_0"])
	assert.Equal(t, "KES 30,000.00", in["grandTotalValue"])
}

func TestSalesDocService_RenderPDF(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		doc := storedDocument(companyID, salesdoc.KindInvoice, "INV-000003")
		doc.OriginalNumber = "QT-000042"
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)
		deps.renderer.RenderFn = func(ctx context.Context, layout pdflayout.Document) ([]byte, error) {
			assert.Equal(t, "INVOICE", layout.Inputs[0]["title"])
			assert.Equal(t, "REF NO: QT-000042", layout.Inputs[0]["originalNumber"])
			return []byte("%PDF-1.3"), nil
		}

		pdf, err := deps.service.RenderPDF(ctx, companyID, doc.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "INV-000003.pdf", pdf.Filename)
		assert.Equal(t, []byte("%PDF-1.3"), pdf.Body)
	})

	t.Run("renderer failure becomes one actionable message", func(t *testing.T) {
		deps := setupServiceTest(t)
		doc := storedDocument(companyID, salesdoc.KindQuotation, "QT-000001")
		cause := errors.New("font table missing")
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)
		deps.renderer.RenderFn = func(ctx context.Context, layout pdflayout.Document) ([]byte, error) {
			return nil, cause
		}

		_, err := deps.service.RenderPDF(ctx, companyID, doc.ID.String())

		assert.ErrorIs(t, err, cause)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, "Failed to generate PDF", httpErr.Message)
		assert.Equal(t, apperror.CodeRenderFailed, httpErr.Code)
	})

	t.Run("logo fetch failure is surfaced", func(t *testing.T) {
		deps := setupServiceTest(t)
		doc := storedDocument(companyID, salesdoc.KindQuotation, "QT-000001")
		cause := errors.New("logo: 404")
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)
		deps.assets.LogoFn = func(ctx context.Context, url string) (string, error) {
			assert.Equal(t, "https://cdn.example.com/logo.png", url)
			return "", cause
		}

		_, err := deps.service.RenderPDF(ctx, companyID, doc.ID.String())

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "Failed to generate PDF", apperror.ToHTTP(err).Message)
	})
}

func TestSalesDocService_RequestPDF(t *testing.T) {
	companyID := uuid.New().String()
	ctx := contextutil.WithRequestID(context.Background(), "req-123")
	ctx = contextutil.WithUserID(ctx, "user-1")

	deps := setupServiceTest(t)
	doc := storedDocument(companyID, salesdoc.KindQuotation, "QT-000001")

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().HasPending(ctx, doc.ID.String(), events.DocumentPDFRequestedType).Return(false, nil)
	deps.outbox.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, "req-123", e.RequestID)
			assert.Equal(t, events.DocumentPDFRequestedTopic, e.Topic)
			assert.Equal(t, doc.ID.String(), e.AggregateID)
			assert.Equal(t, kafka.OutboxStatusPending, e.Status)

			var payload events.DocumentPDFRequestedEvent
			assert.NoError(t, json.Unmarshal(e.Payload, &payload))
			assert.Equal(t, companyID, payload.CompanyID)
			assert.Equal(t, "user-1", payload.RequestedBy)
			return nil
		})

	resp, err := deps.service.RequestPDF(ctx, companyID, doc.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, salesdoc.PDFStatusQueued, resp.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalesDocService_RequestPDF_AlreadyQueued(t *testing.T) {
	companyID := uuid.New().String()
	ctx := context.Background()

	deps := setupServiceTest(t)
	doc := storedDocument(companyID, salesdoc.KindInvoice, "INV-000004")

	expectTx(t, deps.sqlMock, false)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().HasPending(ctx, doc.ID.String(), events.DocumentPDFRequestedType).Return(true, nil)

	resp, err := deps.service.RequestPDF(ctx, companyID, doc.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, salesdoc.PDFStatusQueued, resp.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalesDocService_GeneratePDF(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("stores and records the url", func(t *testing.T) {
		deps := setupServiceTest(t)
		doc := storedDocument(companyID, salesdoc.KindQuotation, "QT-000009")
		id := doc.ID.String()
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(doc, nil)
		deps.storage.SaveFn = func(ctx context.Context, key string, data []byte) (string, error) {
			assert.Equal(t, companyID+"/QT-000009.pdf", key)
			return "/files/" + key, nil
		}
		deps.repo.EXPECT().MarkPDFGenerated(ctx, companyID, id, "/files/"+companyID+"/QT-000009.pdf", gomock.Any()).Return(nil)

		assert.NoError(t, deps.service.GeneratePDF(ctx, companyID, id))
	})

	t.Run("storage failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		doc := storedDocument(companyID, salesdoc.KindQuotation, "QT-000009")
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)
		deps.storage.SaveFn = func(ctx context.Context, key string, data []byte) (string, error) {
			return "", errors.New("disk full")
		}

		assert.EqualError(t, deps.service.GeneratePDF(ctx, companyID, doc.ID.String()), "disk full")
	})
}

func TestSalesDocService_DownloadPDF(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	deps := setupServiceTest(t)

	pending := storedDocument(companyID, salesdoc.KindQuotation, "QT-000001")
	ready := storedDocument(companyID, salesdoc.KindQuotation, "QT-000002")
	ready.PDFURL = "/files/QT-000002.pdf"
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, pending.ID.String()).Return(pending, nil)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, ready.ID.String()).Return(ready, nil)

	_, err := deps.service.DownloadPDF(ctx, companyID, pending.ID.String())
	assert.ErrorIs(t, err, salesdocerrors.ErrPDFNotReady)

	url, err := deps.service.DownloadPDF(ctx, companyID, ready.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "/files/QT-000002.pdf", url)
}
