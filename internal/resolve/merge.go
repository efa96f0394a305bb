package resolve

import (
	"github.com/goplus/gfxmatrix/internal/rules"
	"github.com/goplus/gfxmatrix/matrix"
	"github.com/goplus/gfxmatrix/pkgs/buildsys"
	qerrors "github.com/qiniu/x/errors"
)

// origin records which rule contributed a define.
type origin struct {
	define string
	rule   string
}

// merger folds contributions into a builder by set union. A define that
// would give a key a second value, or put a second define in a slot, is a
// conflict: it is reported and left out.
type merger struct {
	b     *buildsys.Builder
	slots []buildsys.Slot

	keys     map[string]origin
	occupied map[string]origin
	errs     qerrors.List
}

func newMerger(t matrix.Target, slots []buildsys.Slot) *merger {
	return &merger{
		b:        buildsys.NewBuilder(t),
		slots:    slots,
		keys:     make(map[string]origin),
		occupied: make(map[string]origin),
	}
}

func (m *merger) merge(c rules.Contribution) {
	f := &c.Fragment
	if f.Native {
		m.b.SetNative()
	}
	for _, field := range buildsys.Fields {
		if field == buildsys.Defines {
			for _, def := range f.Defines {
				m.define(def, c.Rule)
			}
			continue
		}
		m.b.Add(field, f.Values(field)...)
	}
}

func (m *merger) define(def, rule string) {
	if m.b.Has(buildsys.Defines, def) {
		return
	}
	for _, slot := range m.slots {
		if !slot.Match(def) {
			continue
		}
		if prev, ok := m.occupied[slot.Name]; ok {
			m.errs.Add(matrix.Errorf(matrix.RuleConflict, m.b.Target(),
				"second %s define %s from rule %s, already have %s from rule %s",
				slot.Name, def, rule, prev.define, prev.rule))
			return
		}
		m.occupied[slot.Name] = origin{def, rule}
	}
	key := buildsys.DefineKey(def)
	if prev, ok := m.keys[key]; ok {
		m.errs.Add(matrix.Errorf(matrix.RuleConflict, m.b.Target(),
			"define %s from rule %s redefines %s from rule %s", def, rule, prev.define, prev.rule))
		return
	}
	m.keys[key] = origin{def, rule}
	m.b.Add(buildsys.Defines, def)
}
