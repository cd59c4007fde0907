package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		value string
		want  bool
	}{
		{name: "ascii ok", src: "isASCII(s)", value: "hello", want: true},
		{name: "ascii latin1 byte", src: "isASCII(s)", value: "h\xe9llo", want: false},
		{name: "ascii utf8", src: "isASCII(s)", value: "héllo", want: false},
		{name: "bytes closure", src: "all(bytes(s), {# < 128})", value: "hello", want: true},
		{name: "bytes closure rejects", src: "all(bytes(s), {# < 128})", value: "h\xe9llo", want: false},
		{name: "utf8", src: "validUTF8(s)", value: "héllo", want: true},
		{name: "broken utf8", src: "validUTF8(s)", value: "h\xe9llo", want: false},
		{name: "rune count", src: "len(runes(s)) == 5", value: "héllo", want: true},
		{name: "empty", src: `s != ""`, value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.src, c.Source())

			got, err := c.Check(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{
		"len(s)",
		"isASCII(",
		"unknownFn(s)",
	} {
		_, err := Compile(src)
		assert.Error(t, err, src)
	}
}
