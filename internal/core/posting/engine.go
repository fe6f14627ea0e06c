// Package posting maps domain events to balanced journal entry drafts.
//
// The engine is table driven: each event kind has one registered Rule. Rules are pure and
// never touch storage; the posting service persists what they return.
package posting

import (
	"fmt"
	"sync"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
)

// Engine dispatches events to their posting rules.
type Engine struct {
	mu        sync.RWMutex
	rules     map[EventKind]Rule
	debitMode PaymentDebitMode
}

// Option configures an Engine.
type Option func(*Engine)

// WithPaymentDebitMode chooses the account debited by payments. Unknown modes are ignored.
func WithPaymentDebitMode(mode PaymentDebitMode) Option {
	return func(e *Engine) {
		if mode.IsValid() {
			e.debitMode = mode
		}
	}
}

// NewEngine returns an engine with the default rules registered.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:     make(map[EventKind]Rule),
		debitMode: DebitAccountsPayable,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Register(ExpenseRecorded, RuleFunc(expenseRule))
	e.Register(PaymentRecorded, paymentRule(e.debitMode))
	e.Register(SaleSaved, RuleFunc(saleRule))
	e.Register(OpeningBalancesSubmitted, RuleFunc(openingBalanceRule))
	return e
}

// Register adds or replaces the rule for kind.
func (e *Engine) Register(kind EventKind, rule Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules[kind] = rule
}

// PaymentDebitMode returns the configured payment debit convention.
func (e *Engine) PaymentDebitMode() PaymentDebitMode {
	return e.debitMode
}

// Build runs the rule registered for the event and checks the draft it produces.
// A nil draft with a nil error means the event posts nothing.
func (e *Engine) Build(event Event, chart Chart) (*Draft, error) {
	e.mu.RLock()
	rule, ok := e.rules[event.Kind()]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no posting rule registered for %q", apperrors.ErrValidation, event.Kind())
	}

	draft, err := rule.Build(event, chart)
	if err != nil {
		return nil, fmt.Errorf("posting rule %s: %w", event.Kind(), err)
	}
	if draft == nil {
		return nil, nil
	}
	if err := draft.Origin.Validate(); err != nil {
		return nil, err
	}
	lines, err := accounting.NormalizeLines(draft.Lines)
	if err != nil {
		return nil, fmt.Errorf("posting rule %s: %w", event.Kind(), err)
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, fmt.Errorf("posting rule %s: %w", event.Kind(), err)
	}
	draft.Lines = lines
	return draft, nil
}
