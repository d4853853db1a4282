package label

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ScanItem is the persisted shape of one line item.
type ScanItem struct {
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// ScanResult is the persisted snapshot of a bill.
type ScanResult struct {
	Merchant      string     `json:"merchant"`
	Items         []ScanItem `json:"items"`
	TotalQuantity float64    `json:"total_quantity"`
	TotalPayment  float64    `json:"total_payment"`
	ReceiptDate   string     `json:"receipt_date"`
}

// Entry is one persisted bill record, tied to a receipt image by filename.
// The store owns entries exclusively; the edit buffer only ever holds a
// copy, so buffer edits reach the store through an explicit write-back.
type Entry struct {
	ImageFilename string     `json:"image_filename"`
	Success       bool       `json:"success"`
	TaskID        string     `json:"task_id"`
	ScanResult    ScanResult `json:"scan_result"`
	Timestamp     string     `json:"timestamp"`
}

// NewEntry creates a blank entry for an image with a fresh task id.
func NewEntry(imageFilename string, now time.Time) Entry {
	return Entry{
		ImageFilename: imageFilename,
		Success:       true,
		TaskID:        uuid.NewString(),
		ScanResult: ScanResult{
			Items: []ScanItem{{}},
		},
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// snapshot maps the edit buffer to the persisted scan-result shape,
// rounding every numeric field to one decimal place.
func snapshot(b Bill) ScanResult {
	items := make([]ScanItem, len(b.Items))
	for i, item := range b.Items {
		items[i] = ScanItem{
			SKU:        item.SKU,
			Name:       item.Name,
			Quantity:   round1(item.Quantity),
			UnitPrice:  round1(item.UnitPrice),
			TotalPrice: round1(item.TotalPrice),
		}
	}
	return ScanResult{
		Merchant:      b.Merchant,
		Items:         items,
		TotalQuantity: round1(b.TotalQuantity),
		TotalPayment:  round1(b.TotalPayment),
		ReceiptDate:   b.ReceiptDate,
	}
}

// Bill maps the entry's scan data back into an edit buffer. An entry with
// no items still yields a buffer with one blank row.
func (e Entry) Bill() Bill {
	items := make([]LineItem, 0, len(e.ScanResult.Items))
	for _, item := range e.ScanResult.Items {
		items = append(items, LineItem{
			SKU:        item.SKU,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	if len(items) == 0 {
		items = []LineItem{{}}
	}
	return Bill{
		Merchant:      e.ScanResult.Merchant,
		ReceiptDate:   e.ScanResult.ReceiptDate,
		TotalPayment:  e.ScanResult.TotalPayment,
		TotalQuantity: e.ScanResult.TotalQuantity,
		Items:         items,
	}
}
