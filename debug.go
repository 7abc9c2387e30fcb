package entitykit

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

var inspectConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Inspect dumps the flattened entity graph, keys sorted
func (e *Entity) Inspect() string {
	return fmt.Sprintf("%v %s", e, inspectConfig.Sdump(e.ToParams()))
}
