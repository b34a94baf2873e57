package engine

import (
	"testing"

	"github.com/kenimay/billdesk/internal/models"
	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "0"},
		{"plain integer", "12", "12"},
		{"decimal", "3.5", "3.5"},
		{"padded", "  3.5  ", "3.5"},
		{"leading prefix wins", "12abc", "12"},
		{"non numeric", "abc", "0"},
		{"negative passes through", "-5", "-5"},
		{"explicit plus", "+2", "2"},
		{"second dot stops the scan", "1.2.3", "1.2"},
		{"lone dot", ".", "0"},
		{"trailing dot", "7.", "7"},
		{"sign only", "-", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, _ := decimal.NewFromString(tt.want)
			if got := ParseAmount(tt.in); !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, want)
			}
		})
	}
}

func TestRecomputeRow(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		price    string
		want     string
	}{
		{"two times fifty", "2", "50", "100.00"},
		{"fractional quantity", "2.5", "10", "25.00"},
		{"empty quantity is zero", "", "50", "0.00"},
		{"garbage price is zero", "3", "n/a", "0.00"},
		{"half rounds up", "1", "0.125", "0.13"},
		{"negative is a literal negative contribution", "-2", "50", "-100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.LineItem{Quantity: tt.qty, UnitPrice: tt.price}
			RecomputeRow(&item)
			if item.LineTotal != tt.want {
				t.Errorf("LineTotal = %q, want %q", item.LineTotal, tt.want)
			}
		})
	}
}

func TestRecomputeSummaryOrderIndependent(t *testing.T) {
	a := models.LineItem{LineTotal: "100.00"}
	b := models.LineItem{LineTotal: "59.99"}
	c := models.LineItem{LineTotal: "0.01"}
	p := DefaultPolicy()

	first := p.RecomputeSummary([]models.LineItem{a, b, c}, nil, nil)
	second := p.RecomputeSummary([]models.LineItem{c, a, b}, nil, nil)
	if first != second {
		t.Errorf("summary depends on row order: %+v vs %+v", first, second)
	}
	if first.Subtotal != "160.00" || first.Total != "160.00" {
		t.Errorf("unexpected summary %+v", first)
	}
	if first.Tax != "0.00" {
		t.Errorf("tax should be 0.00 under the default policy, got %q", first.Tax)
	}
}

func TestRecomputeSummaryPayslip(t *testing.T) {
	rows := []models.LineItem{
		{Quantity: "8", UnitPrice: "20"},
		{Quantity: "4", UnitPrice: "15"},
	}
	for i := range rows {
		RecomputeRow(&rows[i])
	}
	sum := DefaultPolicy().RecomputeSummary(rows, []string{"50"}, []string{"30"})
	if sum.Gross != "270.00" {
		t.Errorf("Gross = %q, want 270.00", sum.Gross)
	}
	if sum.Deductions != "30.00" {
		t.Errorf("Deductions = %q, want 30.00", sum.Deductions)
	}
	if sum.Total != "240.00" {
		t.Errorf("Total = %q, want 240.00", sum.Total)
	}
}

func TestRecomputeSummaryTaxRate(t *testing.T) {
	rate, _ := decimal.NewFromString("0.15")
	p := Policy{TaxRate: rate}
	sum := p.RecomputeSummary([]models.LineItem{{LineTotal: "100.00"}}, nil, nil)
	if sum.Subtotal != "100.00" || sum.Tax != "15.00" || sum.Total != "115.00" {
		t.Errorf("unexpected summary with 15%% tax: %+v", sum)
	}
}
