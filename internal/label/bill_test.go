package label

import "testing"

func TestTotalsFollowItemEdits(t *testing.T) {
	b := NewBill()
	b.SetItemQuantity(0, 2)
	b.SetItemUnitPrice(0, 3.5)
	if b.Items[0].TotalPrice != 7 {
		t.Fatalf("item total = %v, want 7", b.Items[0].TotalPrice)
	}
	if b.TotalQuantity != 2 || b.TotalPayment != 7 {
		t.Fatalf("totals = (%v, %v), want (2, 7)", b.TotalQuantity, b.TotalPayment)
	}

	b.AddItem()
	b.SetItemQuantity(1, 1)
	b.SetItemUnitPrice(1, 10)
	if b.TotalQuantity != 3 || b.TotalPayment != 17 {
		t.Fatalf("totals = (%v, %v), want (3, 17)", b.TotalQuantity, b.TotalPayment)
	}

	b.SetItemUnitPrice(0, 1)
	if b.Items[0].TotalPrice != 2 {
		t.Fatalf("item total = %v after price edit, want 2", b.Items[0].TotalPrice)
	}
	if b.TotalPayment != 12 {
		t.Fatalf("TotalPayment = %v, want 12", b.TotalPayment)
	}

	if err := b.RemoveItem(1); err != nil {
		t.Fatalf("RemoveItem(1) error: %v", err)
	}
	if b.TotalQuantity != 2 || b.TotalPayment != 2 {
		t.Fatalf("totals = (%v, %v) after removal, want (2, 2)", b.TotalQuantity, b.TotalPayment)
	}
}

func TestTotalsAreSumsAfterEverySequenceStep(t *testing.T) {
	b := NewBill()
	steps := []func(){
		func() { b.SetItemQuantity(0, 4) },
		func() { b.SetItemUnitPrice(0, 0.3) },
		func() { b.AddItem() },
		func() { b.SetItemQuantity(1, 2.5) },
		func() { b.SetItemUnitPrice(1, 8) },
		func() { b.SetItemQuantity(0, 1) },
	}
	for i, step := range steps {
		step()
		wantQty, wantPay := DeriveTotals(b.Items)
		if b.TotalQuantity != wantQty || b.TotalPayment != wantPay {
			t.Fatalf("step %d: totals = (%v, %v), want (%v, %v)",
				i, b.TotalQuantity, b.TotalPayment, wantQty, wantPay)
		}
	}
}

func TestNameAndSKUEditsDoNotTouchTotals(t *testing.T) {
	b := NewBill()
	b.SetItemQuantity(0, 2)
	b.SetItemUnitPrice(0, 5)
	b.SetItemName(0, "coffee")
	b.SetItemSKU(0, "C-1")
	if b.TotalQuantity != 2 || b.TotalPayment != 10 {
		t.Fatalf("totals = (%v, %v), want (2, 10)", b.TotalQuantity, b.TotalPayment)
	}
}

func TestRemoveLastItemRejected(t *testing.T) {
	b := NewBill()
	if err := b.RemoveItem(0); err != ErrLastItem {
		t.Fatalf("RemoveItem(0) error = %v, want ErrLastItem", err)
	}
	if len(b.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(b.Items))
	}
}

func TestRemoveItemOutOfRangeIsNoOp(t *testing.T) {
	b := NewBill()
	b.AddItem()
	if err := b.RemoveItem(5); err != nil {
		t.Fatalf("RemoveItem(5) error = %v, want nil", err)
	}
	if len(b.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(b.Items))
	}
}

func TestParseAmountNormalizesMalformedInputToZero(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"3.5", 3.5},
		{" 12 ", 12},
		{"", 0},
		{"abc", 0},
		{"1,5", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
