package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitStream(t *testing.T) {
	type spec struct {
		name      string
		input     string
		expValues []string
		expSkips  int
	}

	specs := []spec{
		{
			name:      "Valid/TwoConcatenatedObjects",
			input:     `{"schema":"olm.package","name":"foo"}{"schema":"olm.channel","name":"stable"}`,
			expValues: []string{`{"schema":"olm.package","name":"foo"}`, `{"schema":"olm.channel","name":"stable"}`},
		},
		{
			name:      "Valid/ObjectsSeparatedByWhitespace",
			input:     "{\"a\":1}\n\n  {\"b\":2}",
			expValues: []string{`{"a":1}`, `{"b":2}`},
		},
		{
			name:      "Valid/BracesInsideStrings",
			input:     `{"a":"}{"}{"b":"[\"{\"]"}`,
			expValues: []string{`{"a":"}{"}`, `{"b":"[\"{\"]"}`},
		},
		{
			name:      "Valid/EscapedQuoteInString",
			input:     `{"a":"quote \" and brace }"}`,
			expValues: []string{`{"a":"quote \" and brace }"}`},
		},
		{
			name:      "Valid/NestedArrays",
			input:     `[[1,2],[3,[4]]]{"a":1}`,
			expValues: []string{`[[1,2],[3,[4]]]`, `{"a":1}`},
		},
		{
			name:      "Invalid/ObjectThenGarbage",
			input:     `{"a":1}this is not json`,
			expValues: []string{`{"a":1}`},
			expSkips:  1,
		},
		{
			name:      "Invalid/GarbageThenObject",
			input:     `#leading junk {"a":1}`,
			expValues: []string{`{"a":1}`},
			expSkips:  1,
		},
		{
			// The unterminated wrapper is skipped once for the failed
			// scan and once for the stray text passed over during
			// resynchronization.
			name:      "Invalid/UnterminatedObjectThenValid",
			input:     `{"a": {"b":2}`,
			expValues: []string{`{"b":2}`},
			expSkips:  2,
		},
		{
			// The mismatched closer fails the scan, and the leftover
			// span text is passed over during resynchronization.
			name:      "Invalid/MismatchedCloserThenValid",
			input:     `{"a":1]}{"b":2}`,
			expValues: []string{`{"b":2}`},
			expSkips:  2,
		},
		{
			name:     "Invalid/OnlyGarbage",
			input:    `not json at all`,
			expSkips: 1,
		},
		{
			name:  "Valid/EmptyInput",
			input: "",
		},
		{
			// The balanced-but-invalid wrapper fails to parse, the
			// resynchronization pass recovers the nested array, and the
			// leftover wrapper text on either side is skipped.
			name:      "Invalid/BalancedButUnparsableSalvagesInner",
			input:     `{"a" [1,2]}`,
			expValues: []string{`[1,2]`},
			expSkips:  3,
		},
	}

	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			values, skips := splitStream([]byte(s.input))
			var got []string
			for _, v := range values {
				got = append(got, string(v))
			}
			require.Equal(t, s.expValues, got)
			require.Equal(t, s.expSkips, skips)
		})
	}
}

func TestScanValueMalformedSpans(t *testing.T) {
	type spec struct {
		name  string
		input string
	}

	specs := []spec{
		{name: "MismatchedCloserInsideObject", input: `{"a":1]}`},
		{name: "MismatchedCloserInsideArray", input: `[1,2}]`},
		{name: "StrayCloserBeforeAnyOpener", input: `}}`},
		{name: "UnterminatedObject", input: `{"a":1`},
		{name: "UnterminatedString", input: `{"a":"1`},
	}

	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			_, ok := scanValue([]byte(s.input), 0)
			require.False(t, ok)
		})
	}
}

func TestSplitStreamValuesAreValidJSON(t *testing.T) {
	input := `{"a":1}junk{"b":[1,2,3]}{"c":{"d":"}"}}`
	values, _ := splitStream([]byte(input))
	require.Len(t, values, 3)
	for _, v := range values {
		require.True(t, json.Valid(v))
	}
}
