package label

import (
	"strconv"
	"strings"
)

// LineItem is one row of a bill. TotalPrice is derived from quantity and
// unit price; it is never set directly.
type LineItem struct {
	SKU        string
	Name       string
	Quantity   float64
	UnitPrice  float64
	TotalPrice float64
}

// Bill is the edit buffer: the one in-progress bill bound to the form.
// TotalQuantity and TotalPayment are derived from the items after every
// item mutation. A bill always has at least one item row.
type Bill struct {
	Merchant      string
	ReceiptDate   string
	TotalPayment  float64
	TotalQuantity float64
	Items         []LineItem
}

func NewBill() Bill {
	return Bill{Items: []LineItem{{}}}
}

// DeriveTotals sums the item quantities and total prices.
func DeriveTotals(items []LineItem) (quantity, payment float64) {
	for _, item := range items {
		quantity += item.Quantity
		payment += item.TotalPrice
	}
	return quantity, payment
}

func (b *Bill) recompute() {
	b.TotalQuantity, b.TotalPayment = DeriveTotals(b.Items)
}

func (b *Bill) AddItem() {
	b.Items = append(b.Items, LineItem{})
	b.recompute()
}

// RemoveItem deletes the item at index. Removing the only remaining item is
// rejected so the form always keeps one row.
func (b *Bill) RemoveItem(index int) error {
	if index < 0 || index >= len(b.Items) {
		return nil
	}
	if len(b.Items) == 1 {
		return ErrLastItem
	}
	b.Items = append(b.Items[:index], b.Items[index+1:]...)
	b.recompute()
	return nil
}

func (b *Bill) SetItemSKU(index int, sku string) {
	if index < 0 || index >= len(b.Items) {
		return
	}
	b.Items[index].SKU = sku
}

func (b *Bill) SetItemName(index int, name string) {
	if index < 0 || index >= len(b.Items) {
		return
	}
	b.Items[index].Name = name
}

func (b *Bill) SetItemQuantity(index int, quantity float64) {
	if index < 0 || index >= len(b.Items) {
		return
	}
	b.Items[index].Quantity = quantity
	b.Items[index].TotalPrice = quantity * b.Items[index].UnitPrice
	b.recompute()
}

func (b *Bill) SetItemUnitPrice(index int, unitPrice float64) {
	if index < 0 || index >= len(b.Items) {
		return
	}
	b.Items[index].UnitPrice = unitPrice
	b.Items[index].TotalPrice = b.Items[index].Quantity * unitPrice
	b.recompute()
}

// clone returns a deep copy so the buffer never aliases store-owned items.
func (b Bill) clone() Bill {
	out := b
	out.Items = make([]LineItem, len(b.Items))
	copy(out.Items, b.Items)
	return out
}

// ParseAmount reads a numeric form value. Malformed input is normalized to
// zero rather than rejected.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
