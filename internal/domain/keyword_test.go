package domain

import (
	"reflect"
	"testing"
)

func TestTokenizeKeywords(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "two words",
			query:    "red button",
			expected: []string{"red", "button"},
		},
		{
			name:     "lowercased",
			query:    "Red BUTTON",
			expected: []string{"red", "button"},
		},
		{
			name:     "collapses whitespace runs",
			query:    "  red \t  button\n",
			expected: []string{"red", "button"},
		},
		{
			name:     "empty query",
			query:    "",
			expected: nil,
		},
		{
			name:     "whitespace only treated as empty",
			query:    "   ",
			expected: nil,
		},
		{
			name:     "single token",
			query:    "animation",
			expected: []string{"animation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeKeywords(tt.query)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("TokenizeKeywords(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}
