package repair

import (
	"regexp"
	"strings"

	"github.com/petal-labs/calla/core"
)

// listMarker matches one ordered-list or bullet-list line and captures the
// item text: "1. Do X", "2) Do Y", "- item", "* item", "• item".
var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+(.+)$`)

// blankLine splits text into blank-line-separated blocks.
var blankLine = regexp.MustCompile(`\n[ \t\r]*\n+`)

// ExtractList heuristically recovers list-style parameters from plain text.
// It is the last resort for models that answer "write a list" instructions
// with prose instead of a structured call, and it is deliberately scoped to
// tools whose schema is "list of informal items" — it must not be used for
// tools expecting scalar or deeply structured arguments.
//
// Each recognized item becomes one {hint.ItemField: text} entry, in order,
// under hint.ListField. Field names default to "items" and "text". The second
// return value is false when no list-like structure is recognized, so the
// caller can report a clean failure instead of fabricating data.
func ExtractList(text string, hint core.SchemaHint) (map[string]any, bool) {
	items := markedItems(text)
	if len(items) == 0 {
		items = paragraphItems(text)
	}
	if len(items) == 0 {
		return nil, false
	}

	listField := hint.ListField
	if listField == "" {
		listField = "items"
	}
	itemField := hint.ItemField
	if itemField == "" {
		itemField = "text"
	}

	entries := make([]any, 0, len(items))
	for _, item := range items {
		entries = append(entries, map[string]any{itemField: item})
	}
	return map[string]any{listField: entries}, true
}

// markedItems collects lines carrying an explicit list marker.
func markedItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if m := listMarker.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
		}
	}
	return items
}

// paragraphItems treats blank-line-separated paragraphs as items. A single
// paragraph is just prose, not a list, so fewer than two yields nothing.
func paragraphItems(text string) []string {
	var items []string
	for _, block := range blankLine.Split(text, -1) {
		para := strings.TrimSpace(block)
		if para == "" {
			continue
		}
		// A paragraph may wrap across lines; rejoin it.
		para = strings.Join(strings.Fields(para), " ")
		items = append(items, para)
	}
	if len(items) < 2 {
		return nil
	}
	return items
}
