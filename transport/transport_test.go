package transport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ServeLines_skipsBlankAndCommentLines(t *testing.T) {
	var seen []string
	var handle = Handler(func(line string) string {
		seen = append(seen, line)

		return "OK"
	})

	var in = "PI 1000\n\n# a comment\nPS Hello\n"

	var err = ServeLines(strings.NewReader(in), nil, handle)

	assert.NoError(t, err)
	assert.Equal(t, []string{"PI 1000", "PS Hello"}, seen)
}

func Test_ServeLines_tolerantOfCRLF(t *testing.T) {
	var seen []string
	var handle = Handler(func(line string) string {
		seen = append(seen, line)

		return "OK"
	})

	var err = ServeLines(strings.NewReader("VOL 50\r\nRESET\r\n"), nil, handle)

	assert.NoError(t, err)
	assert.Equal(t, []string{"VOL 50", "RESET"}, seen)
}

func Test_ServeLines_writesRepliesInOrder(t *testing.T) {
	var handle = Handler(func(line string) string {
		return "echo:" + line
	})

	var out strings.Builder

	var err = ServeLines(strings.NewReader("one\ntwo\n"), &out, handle)

	assert.NoError(t, err)
	assert.Equal(t, "echo:one\necho:two\n", out.String())
}
