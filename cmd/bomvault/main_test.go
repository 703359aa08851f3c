package main

import (
	"flag"
	"testing"

	"github.com/poiesic/bomvault/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func contextWithLogLevel(level string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", level, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogger(t *testing.T) {
	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO", "Debug"} {
			assert.NoError(t, setupLogger(contextWithLogLevel(level)), "level %q", level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		err := setupLogger(contextWithLogLevel("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestParseAppID(t *testing.T) {
	t.Run("numeric id", func(t *testing.T) {
		id, err := parseAppID("42")
		require.NoError(t, err)
		assert.Equal(t, core.ID(42), id)
	})

	t.Run("maximum id", func(t *testing.T) {
		id, err := parseAppID("18446744073709551615")
		require.NoError(t, err)
		assert.Equal(t, core.ID(18446744073709551615), id)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, arg := range []string{"", "abc", "-1", "1.5"} {
			_, err := parseAppID(arg)
			assert.Error(t, err, "arg %q", arg)
		}
	})
}
