package catalog

import (
	"bytes"
	"encoding/json"
)

// scanState tracks where the stream scanner is relative to JSON string
// syntax. Quote and backslash characters inside strings must not
// perturb the opener stack.
type scanState int

const (
	stateOutside scanState = iota
	stateInString
	stateAfterEscape
)

// splitStream scans data as a concatenated stream of JSON values. Each
// balanced {...} or [...] span is returned as one candidate value.
// Candidates that do not parse are counted as skips and scanning
// resynchronizes at the next opening brace or bracket. Non-whitespace
// text between values is also counted as a skip.
func splitStream(data []byte) (values []json.RawMessage, skips int) {
	i := 0
	for i < len(data) {
		j := i
		for j < len(data) && data[j] != '{' && data[j] != '[' {
			j++
		}
		if gap := data[i:j]; len(bytes.TrimSpace(gap)) > 0 {
			skips++
		}
		i = j
		if i >= len(data) {
			break
		}

		end, ok := scanValue(data, i)
		if !ok {
			// Unbalanced span. Resume the opener search one byte in so
			// nested values inside the broken span can still be found.
			skips++
			i++
			continue
		}

		cand := data[i:end]
		if json.Valid(cand) {
			values = append(values, json.RawMessage(cand))
			i = end
			continue
		}
		// Balanced but unparsable. Resynchronize inside the span.
		skips++
		i++
	}
	return values, skips
}

// scanValue walks data from the opener at start, tracking a stack of
// open braces and brackets along with string state, and returns the
// index just past the value once the stack empties. It reports false
// when the stream ends before the value closes, a closer does not
// match its opener, or a stray closer appears with nothing open.
func scanValue(data []byte, start int) (end int, ok bool) {
	var openers []byte
	state := stateOutside
	for i := start; i < len(data); i++ {
		c := data[i]
		switch state {
		case stateInString:
			switch c {
			case '\\':
				state = stateAfterEscape
			case '"':
				state = stateOutside
			}
		case stateAfterEscape:
			state = stateInString
		default:
			switch c {
			case '"':
				state = stateInString
			case '{', '[':
				openers = append(openers, c)
			case '}', ']':
				if len(openers) == 0 {
					return 0, false
				}
				opener := openers[len(openers)-1]
				if (c == '}') != (opener == '{') {
					return 0, false
				}
				openers = openers[:len(openers)-1]
				if len(openers) == 0 {
					return i + 1, true
				}
			}
		}
	}
	return 0, false
}
