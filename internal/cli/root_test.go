package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "storefront", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)

	levelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, levelFlag)

	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("migrate"))
}

func TestRootOptions_LogLevelOverride(t *testing.T) {
	opts := &RootOptions{LogLevel: "debug"}

	cfg, logger, err := opts.load()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, "debug", cfg.LogLevel)

	opts = &RootOptions{LogLevel: "chatty"}
	_, _, err = opts.load()
	require.ErrorContains(t, err, "logging.New")
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"migrate"})

	err := cmd.Execute()
	require.ErrorContains(t, err, "database_url is empty")
}
