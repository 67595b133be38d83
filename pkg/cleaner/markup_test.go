package cleaner

import (
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script_block", "<script>alert(1)</script>hello", "hello"},
		{"style_block_multiline_uppercase", "a<STYLE type=\"text/css\">\nbody { color: red }\n</style>b", "ab"},
		{"script_inside_style", "<style>a<script>b</script>c</style>d", "d"},
		{"mismatched_closer_kept_as_tags", "<style>x</script>y", "x y"},
		{"comment_then_tag", "<!-- comment -->visible <b>text</b>", "visible text"},
		{"comment_with_angle_brackets", "<!-- a <b> c -->\nvisible", "visible"},
		{"tags_become_spaces", "x<br/>y", "x y"},
		{"article_header", "##123 Header text", "Header text"},
		{"article_header_mid_line", "end. ##4012345 Next article", "end. Next article"},
		{"hash_without_digits", "##abc text", "abc text"},
		{"parenthetical", "Title (a parenthetical) remains", "Title remains"},
		{"nested_parenthetical_partial", "a (b (c) d) e", "a d e"},
		{"unbalanced_parenthesis", "a (b c", "a b c"},
		{"image_alt", `see alt="a cat" src="cat.png" here`, "see"},
		{"speaker_tag", "@!BOB: Hello there", "Hello there"},
		{"special_chars", `Wow! "quoted": 100% & more*`, "Wow quoted 100 more"},
		{"marker_span_chars_removed_first", "a %&%hidden%&% b", "a hidden b"},
		{"double_slash", "a//b", "ab"},
		{"url_like", "http://x", "httpx"},
		{"whitespace_runs", "a   b\t\tc", "a b c"},
		{"unicode_whitespace", "　a  b ", "a b"},
		{"single_newline_kept_as_is", "a\nb", "a\nb"},
		{"empty", "", ""},
		{"only_markup", "<p></p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarkupCleaner_Clean_NeverErrors(t *testing.T) {
	c := NewMarkup()
	inputs := []string{"", "<", "<script>", "((((", "%&%", "@!", "<!--",
		"<\u017fcript>x</script>y", "<\u017ftyle>x</style>y", "<STYLE>a</\u017fTYLE>b"}
	for _, in := range inputs {
		if _, err := c.Clean(in); err != nil {
			t.Errorf("Clean(%q) error = %v", in, err)
		}
	}
}

func TestMarkupCleaner_FoldedScriptStyleNames(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<\u017fcript>x</\u017fcript>y", "y"},
		{"<\u017fTYLE>x</\u017ftyle>y", "y"},
		{"<SCRIPT>x</script>y", "y"},
		// the closer must name the element as written, modulo lowercasing
		{"<\u017fcript>x</script>y", "x y"},
		{"<\u017ftyle>x</style>y", "x y"},
		{"<STYLE>a</\u017fTYLE>b", "a b"},
		{"<\u017fcript>x</style>y", "x y"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarkupCleaner_UnclosedScriptLeftForTagRule(t *testing.T) {
	got := Sanitize("<script>var x = 1; never closed")
	if got != "var x = 1; never closed" {
		t.Errorf("Sanitize() = %q", got)
	}
}

func TestMarkupCleaner_WhitespaceRulesIdempotent(t *testing.T) {
	c := NewMarkupWithRules(ruleByName(t, "whitespace"), ruleByName(t, "trim"))

	inputs := []string{
		"  a   b  ",
		"a\t\t\tb\n\nc",
		"  x",
		"plain",
		"",
	}
	for _, in := range inputs {
		once := c.Sanitize(in)
		if twice := c.Sanitize(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestMarkupCleaner_SanitizeTwice_PlainText(t *testing.T) {
	inputs := []string{"a   b\t\tc", "  The cat sat.  ", "##123 Header text"}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not stable for %q: %q then %q", in, once, twice)
		}
	}
}

func TestMarkupCleaner_MarkerSpanRule(t *testing.T) {
	apply := ruleByName(t, "marker-spans").Apply
	if got := apply("a %&%hidden%&% b"); got != "a  b" {
		t.Errorf("marker-spans = %q, want %q", got, "a  b")
	}
}

func TestMarkupCleaner_RuleOrder(t *testing.T) {
	want := []string{
		"script-style", "comments", "tags", "article-headers", "parentheticals",
		"image-alt", "speaker-tags", "special-chars", "marker-spans",
		"double-slash", "whitespace", "trim",
	}
	rules := NewMarkup().Rules()
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, r := range rules {
		if r.Name != want[i] {
			t.Errorf("rule %d = %q, want %q", i, r.Name, want[i])
		}
	}
}

func TestMarkupCleaner_Trace(t *testing.T) {
	c := NewMarkup()
	input := "<!-- c --><i>Title</i> (aside)  text"

	steps := c.Trace(input)
	if len(steps) != len(c.Rules()) {
		t.Fatalf("got %d steps, want %d", len(steps), len(c.Rules()))
	}

	last := steps[len(steps)-1]
	if last.Output != c.Sanitize(input) {
		t.Errorf("last step %q != Sanitize %q", last.Output, c.Sanitize(input))
	}

	if !steps[1].Changed || steps[1].Rule != "comments" {
		t.Errorf("comments step = %+v, want changed", steps[1])
	}
	if steps[0].Changed {
		t.Errorf("script-style step should not change input: %+v", steps[0])
	}
}

func TestMarkupCleaner_Name(t *testing.T) {
	if got := NewMarkup().Name(); got != "markup" {
		t.Errorf("Name() = %q, want %q", got, "markup")
	}
}

func ruleByName(t *testing.T, name string) Rule {
	t.Helper()
	for _, r := range DefaultRules() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no rule named %q", name)
	return Rule{}
}
