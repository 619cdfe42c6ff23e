package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line comment keeps the newline",
			in:   "def f():\n    # comment\n    return 1\n",
			want: "def f():\n    \n    return 1\n",
		},
		{
			name: "trailing comment on a code line",
			in:   "x = 1  # set x\ny = 2",
			want: "x = 1  \ny = 2",
		},
		{
			name: "unterminated line comment runs to end of text",
			in:   "x = 1 # no newline",
			want: "x = 1 ",
		},
		{
			name: "hash inside a string literal is still stripped",
			in:   "s = \"#not a comment\"\n",
			want: "s = \"\n",
		},
		{
			name: "double quoted block",
			in:   "def f():\n    \"\"\"Docstring\n    spanning lines.\"\"\"\n    return 1",
			want: "def f():\n    \n    return 1",
		},
		{
			name: "single quoted block",
			in:   "'''header'''\nx = 1",
			want: "\nx = 1",
		},
		{
			name: "blocks match non-greedily",
			in:   "\"\"\"a\"\"\" keep \"\"\"b\"\"\"",
			want: " keep ",
		},
		{
			name: "unterminated block is left alone",
			in:   "x = 1\n\"\"\"never closed\ny = 2",
			want: "x = 1\n\"\"\"never closed\ny = 2",
		},
		{
			name: "only a comment",
			in:   "# just a comment",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripComments(tt.in))
		})
	}
}

func TestStripComments_NoMarkersIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"for i in range(10):\n    print(i)\n",
		"  lots   of\t\tspace  \n\n\n",
		"x = \"a string\" + 'another'",
	}
	for _, in := range inputs {
		assert.Equal(t, in, StripComments(in))
	}
}

func TestStripComments_Idempotent(t *testing.T) {
	inputs := []string{
		"def f():\n    # comment\n    return 1\n",
		"\"\"\"doc\"\"\"\nx = [1, 2]  # list\n",
		"'''a''' '''b'''\n# tail",
	}
	for _, in := range inputs {
		once := StripComments(in)
		assert.Equal(t, once, StripComments(once))
	}
}

func TestStandardizeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\n\n   \n", ""},
		{"drops indentation and blank lines", "def f():\n    \n    return 1\n", "def f():\nreturn 1"},
		{"collapses inner runs", "x  =\t\t1   +  2", "x = 1 + 2"},
		{"keeps line separators", "a\n\n\nb\n  c  ", "a\nb\nc"},
		{"carriage returns are trimmed", "a = 1\r\nb = 2\r\n", "a = 1\nb = 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StandardizeWhitespace(tt.in))
		})
	}
}

func TestStandardizeWhitespace_Invariants(t *testing.T) {
	inputs := []string{
		"   if x:\n\t\ty  =  [ 1,  2 ]\n\n  else:\n        pass   \n",
		"\t\t\n \n",
		"a \t b\t \tc",
		"for  i  in  range( 3 ) :\n     total  +=  i\n\n\n",
	}

	for _, in := range inputs {
		out := StandardizeWhitespace(in)

		assert.NotContains(t, out, "  ")
		assert.Equal(t, strings.TrimSpace(out), out)
		if out != "" {
			for _, line := range strings.Split(out, "\n") {
				assert.NotEmpty(t, strings.TrimSpace(line), "blank line in %q", out)
				assert.Equal(t, strings.TrimSpace(line), line)
			}
		}
		assert.Equal(t, out, StandardizeWhitespace(out), "not idempotent for %q", in)
	}
}

func TestCanonicalize(t *testing.T) {
	t.Run("function with comment line", func(t *testing.T) {
		raw := "def f():\n    # comment\n    return 1\n"
		assert.Equal(t, "def f():\nreturn 1", Canonicalize(raw))
	})

	t.Run("comment only input is empty", func(t *testing.T) {
		assert.Equal(t, "", Canonicalize("# just a comment"))
	})

	t.Run("factorial", func(t *testing.T) {
		raw := "def factorial(n):\n    if n == 1:\n        return 1\n    else:\n        return n * factorial(n-1)"
		want := "def factorial(n):\nif n == 1:\nreturn 1\nelse:\nreturn n * factorial(n-1)"
		assert.Equal(t, want, Canonicalize(raw))
	})
}
