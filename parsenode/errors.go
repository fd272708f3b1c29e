package parsenode

import (
	"fmt"

	"github.com/speakeasy-api/oasgraph/errors"
)

const (
	// ErrStructural is matched by every *StructuralError.
	ErrStructural = errors.Error("structural error")
	// ErrNoVersionService is returned when a reference is met before a version service is installed.
	ErrNoVersionService = errors.Error("no version service registered")
)

// StructuralError reports a node of the wrong shape where a specific shape was required.
// It aborts the subtree being built.
type StructuralError struct {
	Expected Kind
	Actual   Kind
	// Name is what was being built, e.g. "info" or "list".
	Name     string
	Location string
	Line     int
	Column   int
}

var _ error = (*StructuralError)(nil)

func (e *StructuralError) Error() string {
	name := e.Name
	if name == "" {
		name = "node"
	}
	msg := fmt.Sprintf("%s must be a %s, got %s", name, e.Expected, e.Actual)
	if e.Location != "" {
		msg = e.Location + ": " + msg
	}
	return msg
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}
