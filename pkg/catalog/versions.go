package catalog

import (
	"github.com/blang/semver/v4"
)

// Compare orders two version strings with numeric awareness: runs of
// digits compare by magnitude rather than lexically, everything else
// compares byte-wise. It returns a negative number when a sorts before
// b, zero on equality, and a positive number otherwise. Bundle version
// strings are not guaranteed to be semver (bundle names stand in for
// missing versions), so this comparator makes no format assumptions.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			numA, nextI := digitRun(a, i)
			numB, nextJ := digitRun(b, j)
			if c := compareDigits(numA, numB); c != 0 {
				return c
			}
			i, j = nextI, nextJ
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

// digitRun returns the digit run starting at i and the index just past it.
func digitRun(s string, i int) (string, int) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[start:i], i
}

// compareDigits compares two digit runs by magnitude. Leading zeros
// are ignored for the length comparison.
func compareDigits(a, b string) int {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// NewerVersion reports whether candidate is strictly newer than
// current. Both are parsed as tolerant semver when possible; version
// surrogates that are not semver fall back to the numeric-aware
// comparator.
func NewerVersion(current, candidate string) bool {
	cur, errCur := semver.ParseTolerant(current)
	cand, errCand := semver.ParseTolerant(candidate)
	if errCur == nil && errCand == nil {
		return cand.GT(cur)
	}
	return Compare(candidate, current) > 0
}
