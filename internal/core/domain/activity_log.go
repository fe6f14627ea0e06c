package domain

import "time"

// ModelType is the closed set of entity kinds tracked by the audit chain.
type ModelType string

const (
	ModelAccount      ModelType = "account"
	ModelJournalEntry ModelType = "journal_entry"
	ModelExpense      ModelType = "expense"
	ModelPayment      ModelType = "payment"
	ModelSale         ModelType = "sale"
	ModelExchangeRate ModelType = "exchange_rate"
	ModelUser         ModelType = "user"
)

// IsValid reports whether m is a known model type.
func (m ModelType) IsValid() bool {
	switch m {
	case ModelAccount, ModelJournalEntry, ModelExpense, ModelPayment, ModelSale, ModelExchangeRate, ModelUser:
		return true
	}
	return false
}

// AuditAction is the kind of mutation recorded.
type AuditAction string

const (
	ActionCreate      AuditAction = "create"
	ActionUpdate      AuditAction = "update"
	ActionDelete      AuditAction = "delete"
	ActionPost        AuditAction = "post"
	ActionReverse     AuditAction = "reverse"
	ActionLogin       AuditAction = "login"
	ActionLogout      AuditAction = "logout"
	ActionLoginFailed AuditAction = "login_failed"
)

// IsAuthEvent reports whether a is an authentication event.
func (a AuditAction) IsAuthEvent() bool {
	return a == ActionLogin || a == ActionLogout || a == ActionLoginFailed
}

// Changes holds the before/after field values of an update.
type Changes struct {
	Before map[string]any `json:"before"`
	After  map[string]any `json:"after"`
}

// IsEmpty reports whether no field changed.
func (c *Changes) IsEmpty() bool {
	return c == nil || (len(c.Before) == 0 && len(c.After) == 0)
}

// ActivityLog is one row of the append-only audit chain.
type ActivityLog struct {
	ID        int64       `json:"id"`
	UserID    *string     `json:"userID,omitempty"`
	Action    AuditAction `json:"action"`
	ModelType ModelType   `json:"modelType"`
	ModelID   string      `json:"modelID"`
	Changes   *Changes    `json:"changes,omitempty"`
	IPAddress string      `json:"ipAddress"`
	URL       string      `json:"url"`
	UserAgent string      `json:"userAgent"`
	PrevHash  string      `json:"prevHash"`
	Hash      string      `json:"hash"`
	HashSalt  string      `json:"hashSalt"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuditChange describes an entity mutation to be recorded. Before is nil on create and
// After is nil on delete.
type AuditChange struct {
	Action    AuditAction
	ModelType ModelType
	ModelID   string
	Before    any
	After     any
}

// RequestMeta is the request context copied into every audit row.
type RequestMeta struct {
	UserID    string
	IPAddress string
	URL       string
	UserAgent string
}

// ChainBreakKind distinguishes why verification flagged a row.
type ChainBreakKind string

const (
	BreakLinkage ChainBreakKind = "linkage"
	BreakContent ChainBreakKind = "content"
)

// ChainBreak is one row that failed verification.
type ChainBreak struct {
	ID       int64          `json:"id"`
	Kind     ChainBreakKind `json:"kind"`
	Expected string         `json:"expected"`
	Actual   string         `json:"actual"`
}

// ChainReport is the outcome of verifying the audit chain.
type ChainReport struct {
	Intact  bool         `json:"intact"`
	Checked int          `json:"checked"`
	Breaks  []ChainBreak `json:"breaks"`
	Error   string       `json:"error,omitempty"`
}
