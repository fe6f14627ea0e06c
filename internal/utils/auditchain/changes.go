package auditchain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// defaultSensitive are never written to the audit log for any model.
var defaultSensitive = []string{"password", "passwordHash", "token", "secret", "refreshToken", "apiKey"}

// defaultTimestamps are fields whose change alone does not warrant an audit row.
var defaultTimestamps = []string{"createdAt", "lastUpdatedAt", "lastUpdatedBy"}

// Policy controls which fields of a model reach the audit log.
type Policy struct {
	Sensitive []string // removed from both before and after
	Ignored   []string // changes to these alone do not produce an update row
}

// Registry holds the tracked model kinds and their field policies.
type Registry struct {
	policies map[domain.ModelType]Policy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{policies: make(map[domain.ModelType]Policy)}
}

// DefaultRegistry tracks every ledger model kind with the default policies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, m := range []domain.ModelType{
		domain.ModelAccount,
		domain.ModelJournalEntry,
		domain.ModelExpense,
		domain.ModelPayment,
		domain.ModelSale,
		domain.ModelExchangeRate,
	} {
		r.Register(m, Policy{})
	}
	r.Register(domain.ModelUser, Policy{Sensitive: []string{"email"}})
	return r
}

// Register adds or replaces the policy of a model kind.
func (r *Registry) Register(model domain.ModelType, policy Policy) {
	r.policies[model] = policy
}

// IsTracked reports whether model is registered.
func (r *Registry) IsTracked(model domain.ModelType) bool {
	_, ok := r.policies[model]
	return ok
}

// BuildChanges computes the audited field changes of a mutation.
// Create stores the sanitized after snapshot, delete the before snapshot, update only the
// changed fields. The returned bool is false when the update should not be logged.
func (r *Registry) BuildChanges(change domain.AuditChange) (*domain.Changes, bool, error) {
	policy, ok := r.policies[change.ModelType]
	if !ok {
		return nil, false, fmt.Errorf("%w: model type %q is not tracked", apperrors.ErrValidation, change.ModelType)
	}
	sensitive := toSet(defaultSensitive, policy.Sensitive)
	ignored := toSet(defaultTimestamps, policy.Ignored)

	before, err := fieldMap(change.Before)
	if err != nil {
		return nil, false, err
	}
	after, err := fieldMap(change.After)
	if err != nil {
		return nil, false, err
	}
	strip(before, sensitive)
	strip(after, sensitive)

	if change.Action != domain.ActionUpdate || before == nil || after == nil {
		if before == nil && after == nil {
			return nil, true, nil
		}
		return &domain.Changes{Before: before, After: after}, true, nil
	}

	diff := &domain.Changes{Before: map[string]any{}, After: map[string]any{}}
	meaningful := false
	for key := range union(before, after) {
		b, a := before[key], after[key]
		if reflect.DeepEqual(b, a) {
			continue
		}
		diff.Before[key] = b
		diff.After[key] = a
		if _, skip := ignored[key]; !skip {
			meaningful = true
		}
	}
	if !meaningful {
		return nil, false, nil
	}
	return diff, true, nil
}

// fieldMap flattens a struct into its JSON field map. Nil yields nil.
func fieldMap(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal audit snapshot: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("audit snapshot must be an object: %w", err)
	}
	return m, nil
}

func strip(m map[string]any, sensitive map[string]struct{}) {
	for key := range m {
		if _, ok := sensitive[strings.ToLower(key)]; ok {
			delete(m, key)
		}
	}
}

func toSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			set[strings.ToLower(v)] = struct{}{}
			set[v] = struct{}{}
		}
	}
	return set
}

func union(a, b map[string]any) map[string]struct{} {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return keys
}
