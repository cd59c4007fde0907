package driver

import (
	"io"

	"github.com/davecgh/go-spew/spew"

	"slicegen/internal/plan"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes the full structure of m to w.
func Dump(w io.Writer, m *plan.Model) {
	dumpConfig.Fdump(w, m)
}
