package quote

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/cotizador/internal/domain"
	"github.com/dukerupert/cotizador/internal/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultHistoryLimit bounds the undo history.
const DefaultHistoryLimit = 50

// state is the editable part of a quotation. Undo and redo swap whole states.
type state struct {
	items       []LineItem
	discount    DiscountConfig
	tax         TaxConfig
	downPayment DownPaymentConfig
	notes       string
}

func (st state) clone() state {
	st.items = slices.Clone(st.items)
	return st
}

// Session owns one quotation while it is being edited. Every mutation
// records undo history and recomputes the totals from scratch.
//
// A Session is not safe for concurrent use.
type Session struct {
	id     uuid.UUID
	folio  string
	status Status
	date   time.Time

	state  state
	totals Totals

	undo         []state
	redo         []state
	historyLimit int

	taxRate     decimal.Decimal
	folioPrefix string
	issued      []string

	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTaxRate sets the fractional tax rate new quotations start with.
func WithTaxRate(rate decimal.Decimal) SessionOption {
	return func(s *Session) { s.taxRate = rate }
}

// WithHistoryLimit bounds the number of undo steps kept. Values below 1 are ignored.
func WithHistoryLimit(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithObserver registers o to be notified after each recalculation.
func WithObserver(o Observer) SessionOption {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFolioPrefix sets the prefix of generated folios.
func WithFolioPrefix(prefix string) SessionOption {
	return func(s *Session) {
		if prefix != "" {
			s.folioPrefix = prefix
		}
	}
}

// WithIssuedFolios seeds the folios already used so numbering continues after them.
func WithIssuedFolios(folios []string) SessionOption {
	return func(s *Session) { s.issued = slices.Clone(folios) }
}

// NewSession starts a draft quotation with one empty row and tax enabled.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		historyLimit: DefaultHistoryLimit,
		taxRate:      tax.DefaultRate,
		folioPrefix:  DefaultFolioPrefix,
		observer:     nopObserver{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start()
	s.recalculate("new")
	return s
}

func (s *Session) start() {
	s.id = uuid.New()
	s.date = s.now()
	s.folio = NextFolio(s.folioPrefix, s.date, s.issued)
	s.issued = append(s.issued, s.folio)
	s.status = Draft
	s.state = state{
		items: []LineItem{{}},
		tax:   TaxConfig{Enabled: true, Rate: s.taxRate},
	}
	s.undo = nil
	s.redo = nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Folio returns the human-facing quotation number.
func (s *Session) Folio() string { return s.folio }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Date returns when the quotation was started.
func (s *Session) Date() time.Time { return s.date }

// Notes returns the free-text notes.
func (s *Session) Notes() string { return s.state.notes }

// Items returns a copy of the line items.
func (s *Session) Items() []LineItem { return slices.Clone(s.state.items) }

// Discount returns the discount configuration.
func (s *Session) Discount() DiscountConfig { return s.state.discount }

// Tax returns the tax configuration.
func (s *Session) Tax() TaxConfig { return s.state.tax }

// DownPayment returns the down payment configuration.
func (s *Session) DownPayment() DownPaymentConfig { return s.state.downPayment }

// Totals returns the totals of the current state in full precision.
func (s *Session) Totals() Totals { return s.totals }

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.status == Draft && len(s.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool { return s.status == Draft && len(s.redo) > 0 }

// AddItem appends an empty row and returns its index.
func (s *Session) AddItem() (int, error) {
	var idx int
	err := s.mutate("add_item", nil, func(st *state) error {
		st.items = append(st.items, LineItem{})
		idx = len(st.items) - 1
		return nil
	})
	if err != nil {
		return -1, err
	}
	return idx, nil
}

// RemoveItem deletes the row at index i.
func (s *Session) RemoveItem(i int) error {
	return s.mutate("remove_item", nil, func(st *state) error {
		if err := checkIndex("quote.remove_item", st.items, i); err != nil {
			return err
		}
		st.items = slices.Delete(st.items, i, i+1)
		return nil
	})
}

// SetItem replaces the row at index i.
func (s *Session) SetItem(i int, item LineItem) error {
	return s.mutate("set_item", nil, func(st *state) error {
		if err := checkIndex("quote.set_item", st.items, i); err != nil {
			return err
		}
		st.items[i] = item
		return nil
	})
}

// SetItemInput replaces the row at index i from the raw text of its fields.
// Text that does not parse as a number becomes zero and is reported as an
// invalid_input adjustment; empty text is taken as zero silently.
func (s *Session) SetItemInput(i int, description, quantity, unitPrice string) error {
	var extra []Adjustment
	if _, ok := ParseAmount(quantity); !ok && strings.TrimSpace(quantity) != "" {
		extra = append(extra, Adjustment{Field: fmt.Sprintf("items[%d].quantity", i), Reason: ReasonInvalidInput})
	}
	if _, ok := ParseAmount(unitPrice); !ok && strings.TrimSpace(unitPrice) != "" {
		extra = append(extra, Adjustment{Field: fmt.Sprintf("items[%d].unit_price", i), Reason: ReasonInvalidInput})
	}

	return s.mutate("set_item", extra, func(st *state) error {
		if err := checkIndex("quote.set_item", st.items, i); err != nil {
			return err
		}
		st.items[i] = LineItemFromInput(description, quantity, unitPrice)
		return nil
	})
}

// SetDiscount replaces the discount configuration.
func (s *Session) SetDiscount(cfg DiscountConfig) error {
	return s.mutate("set_discount", nil, func(st *state) error {
		st.discount = cfg
		return nil
	})
}

// SetTax replaces the tax configuration.
func (s *Session) SetTax(cfg TaxConfig) error {
	return s.mutate("set_tax", nil, func(st *state) error {
		st.tax = cfg
		return nil
	})
}

// SetDownPayment replaces the down payment configuration.
func (s *Session) SetDownPayment(cfg DownPaymentConfig) error {
	return s.mutate("set_down_payment", nil, func(st *state) error {
		st.downPayment = cfg
		return nil
	})
}

// SetNotes replaces the free-text notes.
func (s *Session) SetNotes(notes string) error {
	return s.mutate("set_notes", nil, func(st *state) error {
		st.notes = notes
		return nil
	})
}

// Undo restores the state before the last mutation. It returns false when
// there is nothing to undo or the quotation is approved.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	last := len(s.undo) - 1
	s.redo = append(s.redo, s.state)
	s.state = s.undo[last]
	s.undo = s.undo[:last]
	s.recalculate("undo")
	return true
}

// Redo reapplies the last undone mutation.
func (s *Session) Redo() bool {
	if !s.CanRedo() {
		return false
	}
	last := len(s.redo) - 1
	s.undo = append(s.undo, s.state)
	s.state = s.redo[last]
	s.redo = s.redo[:last]
	s.recalculate("redo")
	return true
}

// Validate checks the current state. See Validate.
func (s *Session) Validate() error {
	return Validate(s.state.items, s.state.discount, s.state.tax, s.state.downPayment)
}

// Approve validates the quotation and freezes it.
func (s *Session) Approve() error {
	if s.status == Approved {
		return s.reject(domain.Conflict("quote.approve", "quotation already approved"))
	}
	if err := s.Validate(); err != nil {
		return s.reject(err)
	}

	s.status = Approved
	s.undo = nil
	s.redo = nil
	s.logger.Info("Quotation approved",
		slog.String("folio", s.folio),
		slog.String("total", RoundCurrency(s.totals.Total).StringFixed(2)),
	)
	return nil
}

// Reset discards the current quotation and starts a new draft with the next folio.
func (s *Session) Reset() {
	prev := s.folio
	s.start()
	s.logger.Info("New quotation started",
		slog.String("previous_folio", prev),
		slog.String("folio", s.folio),
	)
	s.recalculate("reset")
}

func (s *Session) mutate(op string, extra []Adjustment, fn func(*state) error) error {
	if s.status == Approved {
		return s.reject(domain.Conflict("quote."+op, "quotation already approved"))
	}

	prev := s.state.clone()
	next := s.state.clone()
	if err := fn(&next); err != nil {
		return s.reject(err)
	}

	s.pushUndo(prev)
	s.redo = nil
	s.state = next
	s.recalculate(op, extra...)
	return nil
}

// reject logs an edit the session refused and returns err unchanged.
func (s *Session) reject(err error) error {
	s.logger.Debug("Edit rejected",
		slog.String("op", domain.ErrorOp(err)),
		slog.String("code", domain.ErrorCode(err)),
		slog.String("folio", s.folio),
	)
	return err
}

func (s *Session) pushUndo(st state) {
	s.undo = append(s.undo, st)
	if over := len(s.undo) - s.historyLimit; over > 0 {
		s.undo = slices.Delete(s.undo, 0, over)
	}
}

func (s *Session) recalculate(op string, extra ...Adjustment) {
	totals := ComputeTotals(s.state.items, s.state.discount, s.state.tax, s.state.downPayment)
	if len(extra) > 0 {
		totals.Adjustments = append(slices.Clone(extra), totals.Adjustments...)
	}
	s.totals = totals

	for _, adj := range totals.Adjustments {
		s.logger.Debug("Input adjusted",
			slog.String("op", op),
			slog.String("field", adj.Field),
			slog.String("reason", string(adj.Reason)),
		)
		s.observer.Adjusted(adj)
	}

	s.logger.Debug("Quotation recalculated",
		slog.String("op", op),
		slog.String("folio", s.folio),
		slog.Int("items", len(s.state.items)),
		slog.String("total", totals.Total.String()),
	)
	s.observer.Recalculated(op, len(s.state.items), totals)
}

func checkIndex(op string, items []LineItem, i int) error {
	if i < 0 || i >= len(items) {
		return domain.NotFound(op, "line item", strconv.Itoa(i))
	}
	return nil
}
