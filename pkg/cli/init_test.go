package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitValidate(t *testing.T) {
	type spec struct {
		name     string
		opts     *InitOptions
		expError string
	}

	cases := []spec{
		{
			name: "Valid/SingleSelection",
			opts: &InitOptions{
				Catalog:  "test-registry/catalog:v1",
				Packages: []string{"foo:stable:1.0.0"},
			},
			expError: "",
		},
		{
			name:     "Invalid/NoCatalog",
			opts:     &InitOptions{Packages: []string{"foo:stable:1.0.0"}},
			expError: "must specify --catalog",
		},
		{
			name:     "Invalid/NoSelections",
			opts:     &InitOptions{Catalog: "test-registry/catalog:v1"},
			expError: "must specify at least one --package selection",
		},
		{
			name: "Invalid/MalformedSelection",
			opts: &InitOptions{
				Catalog:  "test-registry/catalog:v1",
				Packages: []string{"foo:stable"},
			},
			expError: `selection "foo:stable" must have the form name:channel:minVersion`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.opts.Validate()
			if c.expError != "" {
				require.EqualError(t, err, c.expError)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
