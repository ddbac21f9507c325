package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CollapseThreshold is the cell width above which single-line tool content
// is collapsed in the transcript view.
const CollapseThreshold = 72

// ShouldCollapse reports whether tool-interaction content gets the
// collapsed-by-default treatment: anything multi-line, or wider than the
// threshold, starts collapsed until the user expands it.
func ShouldCollapse(content string) bool {
	if strings.Contains(content, "\n") {
		return true
	}
	return runewidth.StringWidth(content) > CollapseThreshold
}

// CollapsePreview returns the one-line preview shown for collapsed content:
// the first line, truncated to the threshold with an ellipsis. Display only —
// exports always carry the full content.
func CollapsePreview(content string) string {
	line := content
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	return runewidth.Truncate(line, CollapseThreshold, "…")
}
