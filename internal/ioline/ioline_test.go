package ioline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadsLinesAndSignalsEOF(t *testing.T) {
	r := NewReader(strings.NewReader("one\ntwo\n"), nil)

	line, ok := r.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "one", line)

	line, ok = r.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "two", line)

	_, ok = r.ReadLine()
	assert.False(t, ok)
}

func TestReaderClosesOnlyWhenOwningACloser(t *testing.T) {
	r := NewReader(strings.NewReader(""), nil)
	assert.NoError(t, r.Close())
}

func TestWriterAppendsWithoutExtraSeparators(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteString("a"))
	require.NoError(t, w.WriteString("b"))
	require.NoError(t, w.Flush())
	assert.Equal(t, "ab", buf.String())
}
