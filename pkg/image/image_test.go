package image

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	type spec struct {
		name string
		ref  string
		exp  Spec
	}

	specs := []spec{
		{
			name: "Valid/NameAndTag",
			ref:  "registry.redhat.io/redhat/redhat-operator-index:v4.12",
			exp: Spec{
				Reference: "registry.redhat.io/redhat/redhat-operator-index:v4.12",
				Name:      "registry.redhat.io/redhat/redhat-operator-index",
				Tag:       "v4.12",
			},
		},
		{
			name: "Valid/DigestPinned",
			ref:  "registry.example.com/catalog@sha256:0123456789abcdef",
			exp: Spec{
				Reference: "registry.example.com/catalog@sha256:0123456789abcdef",
				Name:      "registry.example.com/catalog",
				Digest:    "sha256:0123456789abcdef",
			},
		},
		{
			name: "Valid/PortNotMistakenForTag",
			ref:  "registry.example.com:5000/catalog",
			exp: Spec{
				Reference: "registry.example.com:5000/catalog",
				Name:      "registry.example.com:5000/catalog",
			},
		},
		{
			name: "Valid/PortAndTag",
			ref:  "registry.example.com:5000/catalog:v1",
			exp: Spec{
				Reference: "registry.example.com:5000/catalog:v1",
				Name:      "registry.example.com:5000/catalog",
				Tag:       "v1",
			},
		},
	}

	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			require.Equal(t, s.exp, ParseRef(s.ref))
		})
	}
}

func TestSpecVersion(t *testing.T) {
	require.Equal(t, "v4.12", ParseRef("reg/catalog:v4.12").Version())
	require.Equal(t, "sha256:abc", ParseRef("reg/catalog:v4.12@sha256:abc").Version())
	require.Equal(t, "latest", ParseRef("reg/catalog").Version())
}
