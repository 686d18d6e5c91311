package domain

import "fmt"

// MutationType tags a stock mutation event. Each type determines which
// locations the event touches and in which direction.
type MutationType string

const (
	MutationSales    MutationType = "sales"
	MutationPurchase MutationType = "purchase"
	MutationMove     MutationType = "move"
)

func (t MutationType) Valid() bool {
	switch t {
	case MutationSales, MutationPurchase, MutationMove:
		return true
	}
	return false
}

// LedgerDelta is one balance adjustment against a (product, location) pair.
type LedgerDelta struct {
	LocationID int64
	Delta      int
}

// MutationDeltas validates the type/location combination and returns the
// ledger adjustments the mutation produces. A sales mutation needs a source,
// a purchase a destination, a move both (and they must differ). Zero amounts
// are allowed; negative amounts are not.
func MutationDeltas(mutationType MutationType, from, to *int64, amount int) ([]LedgerDelta, error) {
	if !mutationType.Valid() {
		return nil, fmt.Errorf("mutation_type must be one of sales, purchase, move")
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	switch mutationType {
	case MutationSales:
		if from == nil {
			return nil, fmt.Errorf("sales mutation requires from_location")
		}
		return []LedgerDelta{{LocationID: *from, Delta: -amount}}, nil
	case MutationPurchase:
		if to == nil {
			return nil, fmt.Errorf("purchase mutation requires to_location")
		}
		return []LedgerDelta{{LocationID: *to, Delta: amount}}, nil
	case MutationMove:
		if from == nil || to == nil {
			return nil, fmt.Errorf("move mutation requires from_location and to_location")
		}
		if *from == *to {
			return nil, fmt.Errorf("move mutation requires distinct locations")
		}
		return []LedgerDelta{
			{LocationID: *to, Delta: amount},
			{LocationID: *from, Delta: -amount},
		}, nil
	}
	return nil, fmt.Errorf("unreachable mutation type %q", mutationType)
}

// MutationSummary renders the one-line description shown in mutation lists.
func MutationSummary(mutationType MutationType, fromName, toName string) string {
	switch mutationType {
	case MutationPurchase:
		return fmt.Sprintf("Purchase to %s", toName)
	case MutationSales:
		return fmt.Sprintf("Sales from %s", fromName)
	case MutationMove:
		return fmt.Sprintf("Move from %s to %s", fromName, toName)
	}
	return ""
}
