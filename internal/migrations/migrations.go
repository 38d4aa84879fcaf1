// Package migrations holds the storefront schema as ordered, reversible steps.
package migrations

import "github.com/pankajredekar/storefront/internal/runner"

var all []runner.Migration

func register(m runner.Migration) {
	all = append(all, m)
}

// Registry returns a fresh registry holding every storefront migration
func Registry() *runner.Registry {
	reg := runner.NewRegistry()
	for _, m := range all {
		reg.RegisterMigration(m)
	}
	return reg
}
