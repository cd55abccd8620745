package quote

import (
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/dukerupert/cotizador/internal/domain"
	"github.com/google/uuid"
)

// Snapshot is the plain-data form of a quotation, suitable for JSON.
type Snapshot struct {
	ID          uuid.UUID         `json:"id"`
	Folio       string            `json:"folio"`
	Status      Status            `json:"status"`
	Date        time.Time         `json:"date"`
	Notes       string            `json:"notes,omitempty"`
	Items       []LineItem        `json:"items"`
	Discount    DiscountConfig    `json:"discount"`
	Tax         TaxConfig         `json:"tax"`
	DownPayment DownPaymentConfig `json:"down_payment"`
	Totals      Totals            `json:"totals"`
}

// Export returns a copy of the session's quotation.
func (s *Session) Export() Snapshot {
	return Snapshot{
		ID:          s.id,
		Folio:       s.folio,
		Status:      s.status,
		Date:        s.date,
		Notes:       s.state.notes,
		Items:       slices.Clone(s.state.items),
		Discount:    s.state.discount,
		Tax:         s.state.tax,
		DownPayment: s.state.downPayment,
		Totals:      s.totals,
	}
}

// Import replaces the session's quotation with snap. Identity fields left
// at their zero value keep the session's current ones. The stored totals
// are ignored and recomputed.
//
// Importing into a draft can be undone; importing an approved snapshot
// freezes the session.
func (s *Session) Import(snap Snapshot) error {
	if s.status == Approved {
		return s.reject(domain.Conflict("quote.import", "quotation already approved"))
	}

	s.pushUndo(s.state.clone())
	s.redo = nil

	if snap.ID != uuid.Nil {
		s.id = snap.ID
	}
	if snap.Folio != "" {
		s.folio = snap.Folio
		if !slices.Contains(s.issued, snap.Folio) {
			s.issued = append(s.issued, snap.Folio)
		}
	}
	if !snap.Date.IsZero() {
		s.date = snap.Date
	}
	s.state = state{
		items:       slices.Clone(snap.Items),
		discount:    snap.Discount,
		tax:         snap.Tax,
		downPayment: snap.DownPayment,
		notes:       snap.Notes,
	}
	s.recalculate("import")

	if snap.Status == Approved {
		s.status = Approved
		s.undo = nil
		s.logger.Info("Imported approved quotation", slog.String("folio", s.folio))
	}
	return nil
}

// ReadSnapshot decodes a JSON snapshot from r. Fields missing from the
// document keep the values in defaults.
//
// A tax rate above 1 and up to 100 is read as a percentage, so "rate": 16
// means 16%, the way IVA is written by hand; 1 itself still means 100%. Rates
// above 100 and amounts outside InRange are rejected with EINVALID.
func ReadSnapshot(r io.Reader, defaults Snapshot) (Snapshot, error) {
	snap := defaults
	snap.Items = nil

	var doc struct {
		Snapshot
		Items *[]LineItem `json:"items"`
	}
	doc.Snapshot = snap

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Snapshot{}, domain.WrapError(err, domain.EINVALID, "quote.read_snapshot", "malformed quotation snapshot")
	}

	snap = doc.Snapshot
	if doc.Items != nil {
		snap.Items = *doc.Items
	} else {
		snap.Items = slices.Clone(defaults.Items)
	}

	if err := checkSnapshotAmounts(snap); err != nil {
		return Snapshot{}, err
	}
	if snap.Tax.Rate.GreaterThan(one) {
		if snap.Tax.Rate.GreaterThan(hundred) {
			return Snapshot{}, domain.Invalid("quote.read_snapshot", "tax rate must be a fraction or a percentage up to 100")
		}
		snap.Tax.Rate = snap.Tax.Rate.Shift(-2)
	}
	return snap, nil
}

func checkSnapshotAmounts(snap Snapshot) error {
	const op = "quote.read_snapshot"
	for i, item := range snap.Items {
		if !InRange(item.Quantity) {
			return domain.Errorf(domain.EINVALID, op, "items[%d].quantity is out of range", i)
		}
		if !InRange(item.UnitPrice) {
			return domain.Errorf(domain.EINVALID, op, "items[%d].unit_price is out of range", i)
		}
	}
	if !InRange(snap.Discount.Value) {
		return domain.Errorf(domain.EINVALID, op, "discount.value is out of range")
	}
	if !InRange(snap.Tax.Rate) {
		return domain.Errorf(domain.EINVALID, op, "tax.rate is out of range")
	}
	if !InRange(snap.DownPayment.Value) {
		return domain.Errorf(domain.EINVALID, op, "down_payment.value is out of range")
	}
	return nil
}

// WriteSnapshot encodes snap as indented JSON.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return domain.Internal(err, "quote.write_snapshot", "failed to encode quotation snapshot")
	}
	return nil
}
