package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputValue_JSONL(t *testing.T) {
	var buf bytes.Buffer
	err := OutputValue("jsonl", map[string]any{"name": "John", "age": 25}, &buf)
	require.NoError(t, err)
	assert.Equal(t, `{"age":25,"name":"John"}`+"\n", buf.String())
}

func TestOutputValue_Pretty(t *testing.T) {
	var buf bytes.Buffer
	err := OutputValue("pretty", []any{"a", "b"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"a\",\n  \"b\"\n]\n", buf.String())
}

func TestOutputValue_Nil(t *testing.T) {
	var buf bytes.Buffer
	err := OutputValue("jsonl", nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, "null\n", buf.String())
}

func TestOutputValue_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := OutputValue("xml", "x", &buf)
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestValidFormats(t *testing.T) {
	assert.True(t, ValidFormats["jsonl"])
	assert.True(t, ValidFormats["pretty"])
	assert.False(t, ValidFormats["xml"])
}
