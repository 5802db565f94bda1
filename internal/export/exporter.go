// Package export defines the outbound boundary for rendering a computed
// assignment, plus the console, JSON, and PDF adapters.
//
// The solver never learns how its result is presented: it hands the
// immutable assignment (and the registry, for consistent name rendering) to
// an Exporter and receives only success or failure back. An export failure
// is reported to the caller and never triggers a re-solve.
package export

import (
	"errors"

	"github.com/apastel/secret-santa-generator/internal/assignment"
	"github.com/apastel/secret-santa-generator/internal/participant"
)

// Exporter renders a computed assignment.
type Exporter interface {
	Export(a *assignment.Assignment, reg *participant.Registry) error
}

// Multi runs several exporters in order, attempting every one even when an
// earlier adapter fails, and joins their errors.
type Multi []Exporter

// Export implements Exporter.
func (m Multi) Export(a *assignment.Assignment, reg *participant.Registry) error {
	var errs []error
	for _, exporter := range m {
		if err := exporter.Export(a, reg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
