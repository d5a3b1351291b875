// Package properties reads Java-style .properties files such as keystore.properties.
package properties

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	javaprops "github.com/magiconair/properties"
)

// Decode parses .properties content: '=', ':' or whitespace separators, '#' and '!'
// comments, backslash line continuations and escapes. Later keys override earlier ones.
// ${key} references are kept literally; passwords may contain them.
func Decode(data []byte) (*javaprops.Properties, error) {
	loader := &javaprops.Loader{Encoding: javaprops.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes([]byte(joinSurrogateEscapes(string(data))))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Parse reads all of r and returns its properties as a map
func Parse(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}

// joinSurrogateEscapes rewrites escaped UTF-16 surrogate pairs such as \uD83D\uDE00,
// as written by native2ascii, into the character they encode. The loader decodes each
// \uXXXX escape on its own and would turn both halves into U+FFFD.
func joinSurrogateEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	backslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && backslashes%2 == 0 {
			if r, ok := surrogatePair(s[i:]); ok {
				b.WriteRune(r)
				i += len(`\uXXXX\uXXXX`) - 1
				backslashes = 0
				continue
			}
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}

func surrogatePair(s string) (rune, bool) {
	if len(s) < 12 || s[1] != 'u' || s[6] != '\\' || s[7] != 'u' {
		return 0, false
	}
	hi, err := strconv.ParseUint(s[2:6], 16, 16)
	if err != nil {
		return 0, false
	}
	lo, err := strconv.ParseUint(s[8:12], 16, 16)
	if err != nil {
		return 0, false
	}
	r := utf16.DecodeRune(rune(hi), rune(lo))
	if r == unicode.ReplacementChar {
		return 0, false
	}
	return r, true
}
