package resolve

import (
	"runtime"

	"github.com/goplus/gfxmatrix/internal/rules"
	"github.com/goplus/gfxmatrix/matrix"
	"github.com/goplus/gfxmatrix/pkgs/buildsys"
	qerrors "github.com/qiniu/x/errors"
	"github.com/qiniu/x/log"
	"golang.org/x/sync/errgroup"
)

// Options configures a Resolver.
type Options struct {
	// Jobs bounds the number of targets resolved at once.
	// Zero or less means runtime.GOMAXPROCS(0).
	Jobs int
}

// Resolver turns targets of a registry into build descriptors using a rule
// table. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	reg  *matrix.Registry
	tbl  *rules.Table
	jobs int
}

// New creates a resolver over reg and tbl.
func New(reg *matrix.Registry, tbl *rules.Table, opts Options) *Resolver {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Resolver{reg: reg, tbl: tbl, jobs: jobs}
}

// Target resolves a single target into a validated descriptor.
func (r *Resolver) Target(t matrix.Target) (*buildsys.Descriptor, error) {
	if err := r.reg.Check(t); err != nil {
		return nil, err
	}
	cs, err := r.tbl.Contributions(t)
	if err != nil {
		return nil, err
	}

	m := newMerger(t, r.tbl.Slots)
	for _, c := range cs {
		m.merge(c)
	}
	if err := m.errs.ToError(); err != nil {
		return nil, err
	}

	d := m.b.Build(r.tbl.App)
	if err := buildsys.Validate(d, r.tbl.Slots); err != nil {
		return nil, err
	}
	log.Debugf("resolve: %s -> %s (%d rules, native=%v)", t, d.OutputName(), len(cs), m.b.Native())
	return d, nil
}

// All resolves targets and returns their descriptors in target order. A nil
// targets resolves the registry's full product; an explicit list is first
// validated and normalized with Registry.Select, so both are treated alike.
//
// The registry is validated first, so a registry with repeated or unknown
// axis values fails before anything is resolved. Targets are resolved
// concurrently. Output names are checked for
// uniqueness once every target has resolved. Any violation fails the whole
// run and every violation found is reported.
func (r *Resolver) All(targets []matrix.Target) ([]*buildsys.Descriptor, error) {
	if err := r.reg.Validate(); err != nil {
		return nil, err
	}
	if targets == nil {
		targets = r.reg.Targets()
	} else {
		var err error
		if targets, err = r.reg.Select(targets); err != nil {
			return nil, err
		}
	}

	descs := make([]*buildsys.Descriptor, len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	g.SetLimit(r.jobs)
	for i, t := range targets {
		g.Go(func() error {
			descs[i], errs[i] = r.Target(t)
			return nil
		})
	}
	_ = g.Wait()

	var problems qerrors.List
	resolved := make([]*buildsys.Descriptor, 0, len(descs))
	for i, err := range errs {
		if err != nil {
			for _, p := range matrix.Problems(err) {
				problems.Add(p)
			}
			continue
		}
		resolved = append(resolved, descs[i])
	}
	for _, p := range matrix.Problems(buildsys.CheckUnique(resolved)) {
		problems.Add(p)
	}
	if err := problems.ToError(); err != nil {
		return nil, err
	}
	log.Debugf("resolve: %d targets resolved with %d jobs", len(descs), r.jobs)
	return descs, nil
}
