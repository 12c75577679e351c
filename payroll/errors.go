package payroll

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from an input table. It aborts
// the whole run.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("the %s file is missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// StructureError reports input that cannot be joined safely, such as a key
// column appearing twice.
type StructureError struct {
	Table  string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Table, e.Reason)
}
