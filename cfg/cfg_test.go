// SPDX-License-Identifier: ice License 1.0

package cfg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testCfg struct{ A string }

func TestMustGet(t *testing.T) {
	MustInit(filepath.Join("..", "application.yaml"))

	require.Equal(t, "b", MustGet[testCfg]().A)
	require.Equal(t, filepath.Join("..", "application.yaml"), yamlConfigurationFilePath)

	t.Run("Missing", func(t *testing.T) {
		type missingCfg struct{ Missing int }
		require.Zero(t, MustGet[missingCfg]().Missing)
	})
}
