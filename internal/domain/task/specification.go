package task

import (
	"strings"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
)

// Specification is a reusable predicate over tasks.
type Specification interface {
	IsSatisfiedBy(t *Task) bool
}

// SpecificationFunc adapts an ordinary function to a Specification.
type SpecificationFunc func(t *Task) bool

func (f SpecificationFunc) IsSatisfiedBy(t *Task) bool {
	return f(t)
}

// Spec wraps a Specification with fluent combinators. Composition follows
// the nesting of calls exactly; there is no implicit precedence.
type Spec struct {
	Specification
}

// Of wraps s for chaining.
func Of(s Specification) Spec {
	if w, ok := s.(Spec); ok {
		return w
	}
	return Spec{s}
}

// And returns a specification satisfied when both s and other are.
func (s Spec) And(other Specification) Spec {
	return Spec{And(s.Specification, other)}
}

// Or returns a specification satisfied when either s or other is.
func (s Spec) Or(other Specification) Spec {
	return Spec{Or(s.Specification, other)}
}

// AndSpecification evaluates Left first and Right only when Left holds.
type AndSpecification struct {
	Left, Right Specification
}

func (s AndSpecification) IsSatisfiedBy(t *Task) bool {
	return s.Left.IsSatisfiedBy(t) && s.Right.IsSatisfiedBy(t)
}

// OrSpecification evaluates Left first and Right only when Left fails.
type OrSpecification struct {
	Left, Right Specification
}

func (s OrSpecification) IsSatisfiedBy(t *Task) bool {
	return s.Left.IsSatisfiedBy(t) || s.Right.IsSatisfiedBy(t)
}

// NotSpecification negates Inner.
type NotSpecification struct {
	Inner Specification
}

func (s NotSpecification) IsSatisfiedBy(t *Task) bool {
	return !s.Inner.IsSatisfiedBy(t)
}

// And combines two specifications with logical AND.
func And(left, right Specification) Specification {
	return AndSpecification{Left: left, Right: right}
}

// Or combines two specifications with logical OR.
func Or(left, right Specification) Specification {
	return OrSpecification{Left: left, Right: right}
}

// Not negates a specification.
func Not(inner Specification) Specification {
	return NotSpecification{Inner: inner}
}

// AllOf folds specs with AND. With no arguments it matches every task.
func AllOf(specs ...Specification) Specification {
	if len(specs) == 0 {
		return All()
	}
	out := specs[0]
	for _, s := range specs[1:] {
		out = And(out, s)
	}
	return out
}

// All matches every task.
func All() Specification {
	return SpecificationFunc(func(*Task) bool { return true })
}

// StatusSpecification matches tasks with exactly Status.
type StatusSpecification struct {
	Status Status
}

func (s StatusSpecification) IsSatisfiedBy(t *Task) bool {
	return t.status == s.Status
}

// ByStatus matches tasks in the given status.
func ByStatus(status Status) Spec {
	return Spec{StatusSpecification{Status: status}}
}

// PrioritySpecification matches tasks with exactly Priority.
type PrioritySpecification struct {
	Priority Priority
}

func (s PrioritySpecification) IsSatisfiedBy(t *Task) bool {
	return t.priority == s.Priority
}

// ByPriority matches tasks with the given priority.
func ByPriority(priority Priority) Spec {
	return Spec{PrioritySpecification{Priority: priority}}
}

// TagSpecification matches tasks carrying TagID.
type TagSpecification struct {
	TagID tag.ID
}

func (s TagSpecification) IsSatisfiedBy(t *Task) bool {
	return t.HasTag(s.TagID)
}

// ByTag matches tasks carrying the given tag.
func ByTag(id tag.ID) Spec {
	return Spec{TagSpecification{TagID: id}}
}

// IDSpecification matches the task with ID.
type IDSpecification struct {
	ID ID
}

func (s IDSpecification) IsSatisfiedBy(t *Task) bool {
	return t.id.Equals(s.ID)
}

// ByID matches the task with the given identifier.
func ByID(id ID) Spec {
	return Spec{IDSpecification{ID: id}}
}

// OverdueSpecification matches open tasks whose due date has passed. The
// reference day is taken from Now at evaluation time.
type OverdueSpecification struct {
	Now shared.Clock
}

func (s OverdueSpecification) IsSatisfiedBy(t *Task) bool {
	return t.IsOverdue(DueDateFromTime(s.Now()))
}

// Overdue matches overdue tasks relative to now.
func Overdue(now shared.Clock) Spec {
	return Spec{OverdueSpecification{Now: now}}
}

// SearchField selects which text fields a keyword search looks at.
type SearchField int

const (
	SearchAll SearchField = iota
	SearchTitle
	SearchDescription
)

// ParseSearchField accepts title, description or all.
func ParseSearchField(s string) (SearchField, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return SearchAll, nil
	case "title":
		return SearchTitle, nil
	case "description":
		return SearchDescription, nil
	}
	return 0, shared.NewValidationError("invalid search field: %q (expected title, description or all)", s)
}

func (f SearchField) String() string {
	switch f {
	case SearchTitle:
		return "title"
	case SearchDescription:
		return "description"
	}
	return "all"
}

// KeywordSpecification matches when every keyword occurs, case-insensitively,
// in at least one of the selected fields. Keywords may match different fields.
type KeywordSpecification struct {
	keywords []string
	field    SearchField
}

// ByKeyword builds a keyword search. Blank keywords are ignored and an empty
// keyword list matches everything.
func ByKeyword(keywords []string, field SearchField) Spec {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			lowered = append(lowered, strings.ToLower(k))
		}
	}
	return Spec{KeywordSpecification{keywords: lowered, field: field}}
}

func (s KeywordSpecification) IsSatisfiedBy(t *Task) bool {
	title := strings.ToLower(t.title.Value())
	description := strings.ToLower(t.description.Value())
	for _, k := range s.keywords {
		if !s.matches(k, title, description) {
			return false
		}
	}
	return true
}

func (s KeywordSpecification) matches(keyword, title, description string) bool {
	switch s.field {
	case SearchTitle:
		return strings.Contains(title, keyword)
	case SearchDescription:
		return strings.Contains(description, keyword)
	}
	return strings.Contains(title, keyword) || strings.Contains(description, keyword)
}
