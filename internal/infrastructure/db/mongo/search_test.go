package mongo

import (
	"regexp"
	"testing"
)

func TestLiteralRegex(t *testing.T) {
	cases := []struct {
		query   string
		pattern string
	}{
		{"snake", "snake"},
		{"((", `\(\(`},
		{"a.b*c", `a\.b\*c`},
		{"[^$", `\[\^\$`},
	}
	for _, tc := range cases {
		got := literalRegex(tc.query)
		if got.Pattern != tc.pattern {
			t.Errorf("literalRegex(%q).Pattern = %q, want %q", tc.query, got.Pattern, tc.pattern)
		}
		if got.Options != "i" {
			t.Errorf("literalRegex(%q).Options = %q, want \"i\"", tc.query, got.Options)
		}
		// the escaped pattern is always a valid regex and matches the
		// query as a literal substring
		re, err := regexp.Compile("(?i)" + got.Pattern)
		if err != nil {
			t.Fatalf("pattern %q does not compile: %v", got.Pattern, err)
		}
		if !re.MatchString("xx" + tc.query + "xx") {
			t.Errorf("pattern %q does not match its own query", got.Pattern)
		}
	}
}
