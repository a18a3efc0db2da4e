// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

// FindRow finds an evaluated row by fee id.
// Returns nil if no row carries the id.
func FindRow(rows []tolerance.Row, id string) tolerance.Row {
	for _, row := range rows {
		if row.Envelope().ID == id {
			return row
		}
	}
	return nil
}

// FindException finds an exception by id.
// Returns a pointer to the exception if found, nil otherwise.
func FindException(exceptions []tolerance.Exception, id string) *tolerance.Exception {
	for i := range exceptions {
		if exceptions[i].ID == id {
			return &exceptions[i]
		}
	}
	return nil
}

// Amount returns a pointer to a currency amount for building fixtures.
func Amount(v float64) *float64 {
	return &v
}
