package cashbook

type CreateEntryRequest struct {
	Side        Side    `json:"side" binding:"required,oneof=RECEIPT PAYMENT"`
	EntryDate   string  `json:"entry_date" binding:"required,datetime=2006-01-02"`
	Particulars string  `json:"particulars" binding:"required,max=255"`
	Ref         string  `json:"ref" binding:"max=50"`
	Cash        float64 `json:"cash" binding:"gte=0"`
	Bank        float64 `json:"bank" binding:"gte=0"`
	Discount    float64 `json:"discount" binding:"gte=0"`
}

// PeriodQuery bounds a listing; either end may be empty.
type PeriodQuery struct {
	From       string `form:"from"`
	To         string `form:"to"`
	PreparedBy string `form:"prepared_by"`
}

type EntryResponse struct {
	ID          string  `json:"id"`
	Side        Side    `json:"side"`
	EntryDate   string  `json:"entry_date"`
	Particulars string  `json:"particulars"`
	Ref         string  `json:"ref,omitempty"`
	Cash        float64 `json:"cash"`
	Bank        float64 `json:"bank"`
	Discount    float64 `json:"discount"`
}

type TotalsResponse struct {
	Cash     float64 `json:"cash"`
	Bank     float64 `json:"bank"`
	Discount float64 `json:"discount"`
}

type CashBookResponse struct {
	From          string          `json:"from,omitempty"`
	To            string          `json:"to,omitempty"`
	Receipts      []EntryResponse `json:"receipts"`
	Payments      []EntryResponse `json:"payments"`
	ReceiptTotals TotalsResponse  `json:"receipt_totals"`
	PaymentTotals TotalsResponse  `json:"payment_totals"`
	// Truncated is set when a side has more rows than the printed grid holds.
	Truncated bool `json:"truncated"`
}
