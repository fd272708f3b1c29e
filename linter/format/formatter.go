// Package format renders lint results for terminals and machines.
package format

// Formatter renders a list of results.
type Formatter interface {
	Format(results []error) (string, error)
}
