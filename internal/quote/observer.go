package quote

//go:generate mockgen -destination=mock_observer_test.go -package=quote_test . Observer

// Observer is notified by a Session after every recalculation.
type Observer interface {
	// Recalculated reports the operation that triggered a recalculation,
	// the number of line items and the resulting totals.
	Recalculated(op string, items int, totals Totals)
	// Adjusted reports one input that was clamped or coerced.
	Adjusted(adj Adjustment)
}

type nopObserver struct{}

func (nopObserver) Recalculated(string, int, Totals) {}
func (nopObserver) Adjusted(Adjustment)              {}
