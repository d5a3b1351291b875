package properties

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "separators",
			input:    "a=1\nb: 2\nc 3\nd = 4\n",
			expected: map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"},
		},
		{
			name:     "comments and blanks",
			input:    "# comment\n! also comment\n\n   \nkey=value\n",
			expected: map[string]string{"key": "value"},
		},
		{
			name:     "continuation",
			input:    "path=one/\\\n    two/\\\n    three\n",
			expected: map[string]string{"path": "one/two/three"},
		},
		{
			name:     "escaped backslash is not a continuation",
			input:    "dir=C:\\\\keys\\\\\nnext=1\n",
			expected: map[string]string{"dir": `C:\keys\`, "next": "1"},
		},
		{
			name:     "escaped separators in key",
			input:    "my\\=key=v\nspaced\\ key:v2\n",
			expected: map[string]string{"my=key": "v", "spaced key": "v2"},
		},
		{
			name:     "unicode escape",
			input:    "name=caf\\u00e9\n",
			expected: map[string]string{"name": "café"},
		},
		{
			name:     "surrogate pair escape",
			input:    "keyPassword=p\\uD83D\\uDE00w\n",
			expected: map[string]string{"keyPassword": "p\U0001F600w"},
		},
		{
			name:     "escaped backslash before u is literal",
			input:    "dir=C:\\\\uD83D\\\\uDE00\n",
			expected: map[string]string{"dir": `C:\uD83D\uDE00`},
		},
		{
			name:     "references are not expanded",
			input:    "storePassword=${secret}x\nsecret=y\n",
			expected: map[string]string{"storePassword": "${secret}x", "secret": "y"},
		},
		{
			name:     "key without value",
			input:    "empty\nalso=\n",
			expected: map[string]string{"empty": "", "also": ""},
		},
		{
			name:     "value keeps trailing text and equals",
			input:    "storePassword=a=b==\n",
			expected: map[string]string{"storePassword": "a=b=="},
		},
		{
			name:     "later key wins",
			input:    "k=1\nk=2\n",
			expected: map[string]string{"k": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for k, v := range tt.expected {
				if got[k] != v {
					t.Errorf("%q = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestParse_MalformedUnicodeEscape(t *testing.T) {
	for _, input := range []string{"k=\\u12\n", "k=\\uZZZZ\n"} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) expected error", input)
		}
	}
}

func TestJoinSurrogateEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`\uD83D\uDE00`, "\U0001F600"},
		{`a\uD83D\uDE00b\uD83D\uDE01`, "a\U0001F600b\U0001F601"},
		{`\\uD83D\uDE00`, `\\uD83D\uDE00`},
		{`\\\uD83D\uDE00`, "\\\\\U0001F600"},
		{`\uDE00\uD83D`, `\uDE00\uD83D`},
		{`\u00e9\u00e9`, `\u00e9\u00e9`},
		{`\uD83D`, `\uD83D`},
	}
	for _, tt := range tests {
		if got := joinSurrogateEscapes(tt.in); got != tt.want {
			t.Errorf("joinSurrogateEscapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add([]byte("storeFile=release.keystore\nkeyAlias=release\n"))
	f.Add([]byte("a\\\n"))
	f.Add([]byte("\\u"))
	f.Add([]byte("=\n:\n \\\n"))
	f.Add([]byte("k=\\uD83D\\uDE00\\uD83D\n"))

	f.Fuzz(func(_ *testing.T, data []byte) {
		_, _ = Parse(strings.NewReader(string(data)))
	})
}
