package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListValidate(t *testing.T) {
	type spec struct {
		name     string
		opts     *ListOptions
		expError string
	}

	cases := []spec{
		{
			name:     "Valid/CatalogImage",
			opts:     &ListOptions{Catalog: "test-registry/catalog:v1"},
			expError: "",
		},
		{
			name:     "Valid/CatalogDir",
			opts:     &ListOptions{CatalogDir: "testdata/configs"},
			expError: "",
		},
		{
			name:     "Valid/ChannelWithPackage",
			opts:     &ListOptions{Catalog: "test-registry/catalog:v1", Package: "foo", Channel: "stable"},
			expError: "",
		},
		{
			name:     "Invalid/NoSource",
			opts:     &ListOptions{},
			expError: "must specify --catalog or --catalog-dir",
		},
		{
			name:     "Invalid/BothSources",
			opts:     &ListOptions{Catalog: "test-registry/catalog:v1", CatalogDir: "testdata/configs"},
			expError: "--catalog and --catalog-dir are mutually exclusive",
		},
		{
			name:     "Invalid/ChannelWithoutPackage",
			opts:     &ListOptions{Catalog: "test-registry/catalog:v1", Channel: "stable"},
			expError: "must specify --package with --channel",
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
