package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type spec struct {
		name      string
		mutate    func(*testing.T) []Selection
		catalog   string
		assertion require.ErrorAssertionFunc
	}

	specs := []spec{
		{
			name:    "Valid/Basic",
			catalog: "reg/catalog:v1",
			mutate: func(*testing.T) []Selection {
				return []Selection{
					{Operator: "foo", Channel: "stable", Version: "1.0.0"},
					{Operator: "bar", Channel: "stable", Version: "1.0.0"},
				}
			},
			assertion: require.NoError,
		},
		{
			name:    "Invalid/DuplicatePackage",
			catalog: "reg/catalog:v1",
			mutate: func(*testing.T) []Selection {
				return []Selection{
					{Operator: "foo", Channel: "stable", Version: "1.0.0"},
					{Operator: "foo", Channel: "fast", Version: "2.0.0"},
				}
			},
			assertion: require.Error,
		},
		{
			name:    "Invalid/MissingCatalog",
			catalog: "",
			mutate: func(*testing.T) []Selection {
				return []Selection{{Operator: "foo", Channel: "stable", Version: "1.0.0"}}
			},
			assertion: require.Error,
		},
	}

	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			cfg := Synthesize(s.catalog, s.mutate(t))
			s.assertion(t, Validate(&cfg))
		})
	}
}
