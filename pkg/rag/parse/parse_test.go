package parse

import "testing"

func TestExtractFirstJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object",
			input:    `{"intent_type": "query"}`,
			expected: `{"intent_type": "query"}`,
		},
		{
			name:     "surrounded by prose",
			input:    "Sure! Here is the result:\n{\"type\": \"open_doc\", \"confidence\": 0.9}\nLet me know if you need more.",
			expected: `{"type": "open_doc", "confidence": 0.9}`,
		},
		{
			name:     "nested object",
			input:    `prefix {"a": {"b": 1}, "c": 2} suffix {"d": 3}`,
			expected: `{"a": {"b": 1}, "c": 2}`,
		},
		{
			name:     "brace inside string",
			input:    `{"note": "use { carefully", "page": 2}`,
			expected: `{"note": "use { carefully", "page": 2}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"note": "he said \"{\"", "page": 1}`,
			expected: `{"note": "he said \"{\"", "page": 1}`,
		},
		{
			name:     "no object",
			input:    "the model refused to answer",
			expected: "",
		},
		{
			name:     "unterminated object",
			input:    `{"type": "unknown"`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFirstJSONObject(tt.input)
			if got != tt.expected {
				t.Errorf("ExtractFirstJSONObject(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
