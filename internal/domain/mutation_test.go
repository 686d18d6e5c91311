package domain

import "testing"

func ptr(v int64) *int64 { return &v }

func TestMutationDeltas(t *testing.T) {
	tests := []struct {
		name         string
		mutationType MutationType
		from, to     *int64
		amount       int
		want         []LedgerDelta
		wantErr      bool
	}{
		{
			name:         "sales removes from source",
			mutationType: MutationSales,
			from:         ptr(1),
			amount:       5,
			want:         []LedgerDelta{{LocationID: 1, Delta: -5}},
		},
		{
			name:         "purchase adds to destination",
			mutationType: MutationPurchase,
			to:           ptr(2),
			amount:       7,
			want:         []LedgerDelta{{LocationID: 2, Delta: 7}},
		},
		{
			name:         "move touches both locations",
			mutationType: MutationMove,
			from:         ptr(1),
			to:           ptr(2),
			amount:       3,
			want: []LedgerDelta{
				{LocationID: 2, Delta: 3},
				{LocationID: 1, Delta: -3},
			},
		},
		{
			name:         "zero amount is allowed",
			mutationType: MutationPurchase,
			to:           ptr(2),
			amount:       0,
			want:         []LedgerDelta{{LocationID: 2, Delta: 0}},
		},
		{
			name:         "sales without source",
			mutationType: MutationSales,
			to:           ptr(2),
			amount:       5,
			wantErr:      true,
		},
		{
			name:         "purchase without destination",
			mutationType: MutationPurchase,
			from:         ptr(1),
			amount:       5,
			wantErr:      true,
		},
		{
			name:         "move without destination",
			mutationType: MutationMove,
			from:         ptr(1),
			amount:       5,
			wantErr:      true,
		},
		{
			name:         "move onto itself",
			mutationType: MutationMove,
			from:         ptr(1),
			to:           ptr(1),
			amount:       5,
			wantErr:      true,
		},
		{
			name:         "negative amount",
			mutationType: MutationPurchase,
			to:           ptr(2),
			amount:       -1,
			wantErr:      true,
		},
		{
			name:         "unknown type",
			mutationType: MutationType("transfer"),
			from:         ptr(1),
			to:           ptr(2),
			amount:       5,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MutationDeltas(tt.mutationType, tt.from, tt.to, tt.amount)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got deltas %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d deltas, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("delta %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMutationDeltasMoveConservesStock(t *testing.T) {
	deltas, err := MutationDeltas(MutationMove, ptr(10), ptr(20), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0
	for _, d := range deltas {
		sum += d.Delta
	}
	if sum != 0 {
		t.Fatalf("move deltas sum to %d, want 0", sum)
	}
}

func TestMutationSummary(t *testing.T) {
	tests := []struct {
		mutationType MutationType
		from, to     string
		want         string
	}{
		{MutationPurchase, "", "Warehouse A", "Purchase to Warehouse A"},
		{MutationSales, "Warehouse A", "", "Sales from Warehouse A"},
		{MutationMove, "Warehouse A", "Shop", "Move from Warehouse A to Shop"},
		{MutationType("bogus"), "x", "y", ""},
	}
	for _, tt := range tests {
		if got := MutationSummary(tt.mutationType, tt.from, tt.to); got != tt.want {
			t.Errorf("MutationSummary(%q) = %q, want %q", tt.mutationType, got, tt.want)
		}
	}
}

func TestProductShowName(t *testing.T) {
	short := "Bolt M8"
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{"both set", Product{Name: "Hex bolt M8x40 zinc", NameShort: &short}, "Bolt M8 (Hex bolt M8x40 zinc)"},
		{"only name", Product{Name: "Hex bolt M8x40 zinc"}, "Hex bolt M8x40 zinc"},
		{"only short", Product{NameShort: &short}, "Bolt M8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.ShowName(); got != tt.want {
				t.Errorf("ShowName() = %q, want %q", got, tt.want)
			}
		})
	}
}
