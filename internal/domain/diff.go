package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultDiffContext is the number of context lines around each hunk.
const DefaultDiffContext = 3

// UnifiedDiff renders the changes between before and after as a unified diff
// with a/ and b/ prefixed headers. It returns an empty string when the texts
// are equal.
func UnifiedDiff(path, before, after string, context int) (string, error) {
	if before == after {
		return "", nil
	}

	if context < 0 {
		context = DefaultDiffContext
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}

	return text, nil
}
