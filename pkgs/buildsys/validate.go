package buildsys

import (
	"maps"
	"slices"
	"strings"

	"github.com/goplus/gfxmatrix/matrix"
	qerrors "github.com/qiniu/x/errors"
)

// DefineKey returns the symbol of a "KEY[=VALUE]" define.
func DefineKey(define string) string {
	key, _, _ := strings.Cut(define, "=")
	return key
}

// Slot is a group of define keys of which a descriptor carries exactly one
// define. Flags optionally pairs a key with the compiler flag that must
// accompany it; flags paired with the other keys must then be absent.
type Slot struct {
	Name  string
	Keys  []string
	Flags map[string]string
}

// Match reports whether define occupies the slot.
func (s Slot) Match(define string) bool {
	return slices.Contains(s.Keys, DefineKey(define))
}

// Occupants returns the defines of d that occupy the slot.
func (s Slot) Occupants(defines []string) []string {
	var out []string
	for _, def := range defines {
		if s.Match(def) {
			out = append(out, def)
		}
	}
	return out
}

// Validate checks a single descriptor: at least one source, exactly one
// define per slot, and each slot's paired flag. Every violation is reported.
func Validate(d *Descriptor, slots []Slot) error {
	var errs qerrors.List
	t := d.Target()
	if len(d.fields[Sources]) == 0 {
		errs.Add(matrix.Errorf(matrix.IncompleteDescriptor, t, "no source files"))
	}
	for _, slot := range slots {
		occ := slot.Occupants(d.fields[Defines])
		switch len(occ) {
		case 0:
			errs.Add(matrix.Errorf(matrix.IncompleteDescriptor, t, "no %s define", slot.Name))
			continue
		case 1:
		default:
			errs.Add(matrix.Errorf(matrix.RuleConflict, t, "%d %s defines: %s", len(occ), slot.Name, strings.Join(occ, ", ")))
			continue
		}
		if len(slot.Flags) == 0 {
			continue
		}
		key := DefineKey(occ[0])
		for _, k := range slices.Sorted(maps.Keys(slot.Flags)) {
			flag := slot.Flags[k]
			has := d.Has(CompilerFlags, flag)
			switch {
			case k == key && !has:
				errs.Add(matrix.Errorf(matrix.IncompleteDescriptor, t, "%s define %s without flag %s", slot.Name, key, flag))
			case k != key && has:
				errs.Add(matrix.Errorf(matrix.RuleConflict, t, "%s define %s with flag %s of %s", slot.Name, key, flag, k))
			}
		}
	}
	return errs.ToError()
}

// CheckUnique reports every descriptor whose output name was already used by
// an earlier one, including a repeat of the same target.
func CheckUnique(ds []*Descriptor) error {
	var errs qerrors.List
	owner := make(map[string]matrix.Target, len(ds))
	for _, d := range ds {
		name := d.OutputName()
		if prev, ok := owner[name]; ok {
			errs.Add(matrix.Errorf(matrix.IdentityCollision, d.Target(), "output name %q already used by %s", name, prev))
			continue
		}
		owner[name] = d.Target()
	}
	return errs.ToError()
}
