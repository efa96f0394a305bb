package manifest

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff returns a unified diff turning want into got, or "" if they are equal.
func Diff(name string, want, got []byte) string {
	if string(want) == string(got) {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), string(want), string(got))
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (resolved)", string(want), edits))
}
