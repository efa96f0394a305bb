package buildsys

import (
	"io"

	"github.com/goplus/gfxmatrix/matrix"
)

// Emitter renders resolved descriptors into a persisted build format
// (Makefiles, IDE projects, manifests). Implementations live outside the
// resolution engine and receive descriptors already grouped by platform.
type Emitter interface {
	Emit(w io.Writer, solutions []Solution) error
}

// Solution is the top-level artifact of one platform.
type Solution struct {
	Name     string
	Platform matrix.Platform
	Dir      string
	Projects []Project
}

// Project is one (windowing, graphics) pair within a solution.
type Project struct {
	Name      string
	Windowing matrix.Windowing
	Graphics  matrix.Graphics
	Configs   []Config
}

// Config is one optimization level of a project.
type Config struct {
	Name         string
	Optimization matrix.Optimization
	Descriptor   *Descriptor
}

// Group groups descriptors by platform into solutions, and within each
// solution by (windowing, graphics) into projects. Solutions, projects and
// configs keep the order in which they first appear in ds.
func Group(ds []*Descriptor) []Solution {
	var solutions []Solution
	solutionIdx := make(map[matrix.Platform]int)
	type projectKey struct {
		p matrix.Platform
		w matrix.Windowing
		g matrix.Graphics
	}
	projectIdx := make(map[projectKey]int)

	for _, d := range ds {
		t, id := d.Target(), d.Identity()
		si, ok := solutionIdx[t.Platform]
		if !ok {
			si = len(solutions)
			solutionIdx[t.Platform] = si
			solutions = append(solutions, Solution{Name: id.Solution, Platform: t.Platform, Dir: id.Dir})
		}
		sol := &solutions[si]

		key := projectKey{t.Platform, t.Windowing, t.Graphics}
		pi, ok := projectIdx[key]
		if !ok {
			pi = len(sol.Projects)
			projectIdx[key] = pi
			sol.Projects = append(sol.Projects, Project{Name: id.Project, Windowing: t.Windowing, Graphics: t.Graphics})
		}
		proj := &sol.Projects[pi]
		proj.Configs = append(proj.Configs, Config{Name: id.Config, Optimization: t.Optimization, Descriptor: d})
	}
	return solutions
}
