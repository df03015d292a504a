package domain

import "strings"

// TokenizeKeywords splits a free-text query into normalized search
// tokens: lowercased, trimmed, split on any whitespace run, empty
// tokens dropped. A blank query yields no tokens, meaning no keyword
// filtering at all.
//
// Each token becomes one case-insensitive substring condition over
// title OR description OR author name; tokens are combined with AND,
// so every word must appear somewhere ("all words" semantics, never
// "any word").
func TokenizeKeywords(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}
