package manifest

import (
	"bytes"
	"strings"
	"testing"
)

// FuzzParse checks the manifest parser never panics and never returns
// keys with surrounding whitespace.
//
// Run with: go test -fuzz=FuzzParse -fuzztime=30s
func FuzzParse(f *testing.F) {
	f.Add([]byte("Manifest-Version: 1.0\nMIDlet-Name: Demo\nMIDlet-Version: 1.0.1\n"))
	f.Add([]byte("Name: A\n continued\n"))
	f.Add([]byte(" leading continuation\n"))
	f.Add([]byte(":::\n"))
	f.Add([]byte("\r\n\r\n"))
	f.Add([]byte{0xff, 0xfe, ':', ' '})

	f.Fuzz(func(t *testing.T, data []byte) {
		attrs, err := Parse(bytes.NewReader(data))
		if err != nil {
			return
		}
		for k := range attrs {
			if k == "" || strings.TrimSpace(k) != k {
				t.Fatalf("bad key %q", k)
			}
		}
	})
}
