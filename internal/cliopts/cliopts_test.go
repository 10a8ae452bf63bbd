package cliopts

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Defaults {
	return Defaults{FlushRate: 4096, MetricsAddr: "", LogLevel: "info", LogDev: false}
}

func TestParseDefaultsToWholeLine(t *testing.T) {
	opts, err := Parse([]string{"--", "cat"}, defaults(), io.Discard)
	require.NoError(t, err)

	assert.True(t, opts.Spec.UsesWholeLine())
	assert.Equal(t, "cat", opts.Child)
	assert.Empty(t, opts.ChildArgs)
}

func TestParseColumnKeyLongForm(t *testing.T) {
	opts, err := Parse([]string{"--key", "1,3", "--field_separator", ",", "--", "cat"}, defaults(), io.Discard)
	require.NoError(t, err)

	assert.False(t, opts.Spec.UsesWholeLine())
	assert.Equal(t, []int{1, 3}, opts.Spec.Columns)
	assert.Equal(t, ",", opts.Spec.Separator)
}

func TestParseColumnKeyShortForm(t *testing.T) {
	opts, err := Parse([]string{"-k", "1", "-t", "\t", "--", "cat"}, defaults(), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, opts.Spec.Columns)
}

func TestParseChildArgsPreservedVerbatim(t *testing.T) {
	opts, err := Parse([]string{"--", "python3", "script.py", "--verbose", "-k"}, defaults(), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "python3", opts.Child)
	assert.Equal(t, []string{"script.py", "--verbose", "-k"}, opts.ChildArgs)
}

func TestParseMissingChildIsError(t *testing.T) {
	_, err := Parse([]string{"--key", "1"}, defaults(), io.Discard)
	assert.Error(t, err)
}

func TestParseMalformedKeyIsError(t *testing.T) {
	_, err := Parse([]string{"--key", "abc", "--", "cat"}, defaults(), io.Discard)
	assert.Error(t, err)
}

func TestParseAmbientFlagsOverrideDefaults(t *testing.T) {
	opts, err := Parse([]string{"--metrics-addr", ":9090", "--log-level", "debug", "--log-dev", "--", "cat"}, defaults(), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ":9090", opts.MetricsAddr)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.True(t, opts.LogDev)
}

func TestParseFlushRateDefault(t *testing.T) {
	opts, err := Parse([]string{"--", "cat"}, defaults(), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 4096, opts.FlushRate)
}
