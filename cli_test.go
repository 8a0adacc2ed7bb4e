// File: envgrove/config/cli_test.go
package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cliTestSchema() *Schema {
	return NewSchema("App").
		String("APP_NAME", Default("demo")).
		Int("CHECK_TEST_WORKERS")
}

func TestCLIExample(t *testing.T) {
	var out bytes.Buffer
	cli := &CLI{Schema: cliTestSchema(), Out: &out}

	require.NoError(t, cli.Run([]string{"example"}))
	assert.Contains(t, out.String(), "APP_NAME=demo")
	assert.Contains(t, out.String(), "CHECK_TEST_WORKERS=  # type: int | required")
}

func TestCLIDocs(t *testing.T) {
	var out bytes.Buffer
	cli := &CLI{Schema: cliTestSchema(), Out: &out}

	require.NoError(t, cli.Run([]string{"docs"}))
	assert.Contains(t, out.String(), "# App")
	assert.Contains(t, out.String(), "| `APP_NAME` |")
}

func TestCLICheck(t *testing.T) {
	dir := t.TempDir()

	t.Run("healthy configuration", func(t *testing.T) {
		path := writeFile(t, dir, "good.env", "CHECK_TEST_WORKERS=8\n")

		var out bytes.Buffer
		cli := &CLI{Schema: cliTestSchema(), Out: &out}

		require.NoError(t, cli.Run([]string{"check", "--env-file", path}))
		assert.Contains(t, out.String(), "configuration loaded successfully")
		assert.Contains(t, out.String(), "<App ")
	})

	t.Run("missing required field", func(t *testing.T) {
		path := writeFile(t, dir, "empty.env", "")

		var out bytes.Buffer
		cli := &CLI{Schema: cliTestSchema(), Out: &out}

		err := cli.Run([]string{"check", "--env-file", path})
		var me *MissingFieldError
		require.ErrorAs(t, err, &me)
		assert.Contains(t, out.String(), "configuration check failed")
	})
}

func TestCLIErrors(t *testing.T) {
	var out bytes.Buffer

	cli := &CLI{Schema: cliTestSchema(), Out: &out}
	require.Error(t, cli.Run(nil))
	require.Error(t, cli.Run([]string{"bogus"}))

	empty := &CLI{Out: &out}
	require.Error(t, empty.Run([]string{"docs"}))
}
