package matrix

import (
	"errors"
	"fmt"

	qerrors "github.com/qiniu/x/errors"
)

// Kind classifies a configuration error.
type Kind int

const (
	// InvalidCombination: a target pairs axis values that cannot go together,
	// or names a value the registry or rule table does not know.
	InvalidCombination Kind = iota + 1
	// RuleConflict: two rules contributed mutually exclusive values.
	RuleConflict
	// IdentityCollision: two targets resolved to the same output name.
	IdentityCollision
	// IncompleteDescriptor: a resolved descriptor misses a required field.
	IncompleteDescriptor
)

var (
	ErrInvalidCombination   = errors.New("invalid combination")
	ErrRuleConflict         = errors.New("rule conflict")
	ErrIdentityCollision    = errors.New("identity collision")
	ErrIncompleteDescriptor = errors.New("incomplete descriptor")
)

func (k Kind) sentinel() error {
	switch k {
	case InvalidCombination:
		return ErrInvalidCombination
	case RuleConflict:
		return ErrRuleConflict
	case IdentityCollision:
		return ErrIdentityCollision
	case IncompleteDescriptor:
		return ErrIncompleteDescriptor
	}
	return nil
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a configuration error found while enumerating or resolving a
// target. It matches the sentinel of its Kind with errors.Is.
type Error struct {
	Kind   Kind
	Target Target
	Detail string
}

// Errorf creates an Error of the given kind for target t.
func Errorf(kind Kind, t Target, format string, args ...any) *Error {
	return &Error{Kind: kind, Target: t, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Target, e.Kind, e.Detail)
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Problems flattens an error returned by this module into the individual
// violations it reports. A nil error has no problems.
func Problems(err error) []error {
	if err == nil {
		return nil
	}
	var list qerrors.List
	if errors.As(err, &list) {
		return []error(list)
	}
	return []error{err}
}

// HasKind reports whether any problem in err is of the given kind.
func HasKind(err error, kind Kind) bool {
	for _, p := range Problems(err) {
		var e *Error
		if errors.As(p, &e) && e.Kind == kind {
			return true
		}
	}
	return false
}
