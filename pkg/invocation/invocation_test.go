package invocation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)

	assert.False(t, c.Yes)
	assert.False(t, c.KeepGoing)
	assert.False(t, c.DryRun)
	assert.False(t, c.NoElevate)
	assert.Empty(t, c.Skip)
	assert.Equal(t, "", c.Manifest)
	assert.Equal(t, "", c.LogFile)
	assert.Equal(t, 0, c.Verbosity)
}

func TestParseRejectsPositionals(t *testing.T) {
	_, err := Parse([]string{"--yes", "leftover"})
	assert.Error(t, err)
}

func TestParseRejectsUnknownFlags(t *testing.T) {
	_, err := Parse([]string{"--definitely-not-a-flag"})
	assert.Error(t, err)
}

func TestArgsRoundTripFixedCases(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
	}{
		{"empty", Context{}},
		{"booleans", Context{Yes: true, KeepGoing: true, NoElevate: true}},
		{"verbosity", Context{Verbosity: 3}},
		{"skips", Context{Skip: []string{"wsl", "docker"}}},
		{"path_with_spaces", Context{LogFile: `C:\Users\Jane Doe\logs\run.log`}},
		{"value_with_quotes", Context{Manifest: `manifest "v2".toml`}},
		{"skip_with_equals", Context{Skip: []string{"name=value"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.ctx.Args())
			require.NoError(t, err)
			assert.Equal(t, &tt.ctx, parsed)
		})
	}
}

// TestArgsRoundTripRandomized exercises the round-trip invariant over
// random flag combinations, including values with whitespace, quotes
// and separators.
func TestArgsRoundTripRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	charset := []rune(`abcXYZ019 	"'\=,-_./:`)

	randomValue := func() string {
		n := rng.Intn(12)
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = charset[rng.Intn(len(charset))]
		}
		return string(runes)
	}

	for i := 0; i < 200; i++ {
		ctx := Context{
			Yes:       rng.Intn(2) == 0,
			KeepGoing: rng.Intn(2) == 0,
			DryRun:    rng.Intn(2) == 0,
			NoElevate: rng.Intn(2) == 0,
			Verbosity: rng.Intn(4),
		}
		for j := rng.Intn(3); j > 0; j-- {
			ctx.Skip = append(ctx.Skip, randomValue())
		}
		if rng.Intn(2) == 0 {
			ctx.Manifest = "m-" + randomValue()
		}
		if rng.Intn(2) == 0 {
			ctx.LogFile = "l-" + randomValue()
		}

		parsed, err := Parse(ctx.Args())
		require.NoError(t, err, "args: %q", ctx.Args())
		assert.Equal(t, &ctx, parsed, "args: %q", ctx.Args())
	}
}

func TestSkipSet(t *testing.T) {
	c := Context{Skip: []string{"WSL", "docker"}}
	set := c.SkipSet()

	assert.True(t, set["wsl"])
	assert.True(t, set["docker"])
	assert.False(t, set["git"])
}
