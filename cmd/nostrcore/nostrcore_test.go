// SPDX-License-Identifier: ice License 1.0

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/nostrcore/model"
)

const testSecretKey = "5c0c523f52a5b6fad39ed2403092df8cebc36318b39383bca6c00808626fab3a"

func helperExecute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	nostrcore.SetOut(&out)
	nostrcore.SetErr(&out)
	nostrcore.SetArgs(append(args, "--config", filepath.Join("..", "..", "application.yaml")))
	require.NoError(t, nostrcore.Execute(), out.String())

	return out.String()
}

func TestCommands(t *testing.T) {
	var event model.Event
	t.Run("Finalize", func(t *testing.T) {
		out := helperExecute(t, "finalize", "--sk", testSecretKey, "--kind", "30023", "--created-at", "1700000000",
			"--content", "hello", "--tag", "d,my-article")
		require.NoError(t, event.UnmarshalJSON([]byte(strings.TrimSpace(out))))
		require.True(t, event.CheckSignature())
		require.Equal(t, model.Kind(30023), event.Kind)
		require.Equal(t, model.Tags{{"d", "my-article"}}, event.Tags)
		require.Equal(t, "hello", event.Content)
	})
	t.Run("Verify", func(t *testing.T) {
		out := helperExecute(t, "verify", event.String())
		require.Equal(t, "ok "+event.ID.String()+"\n", out)

		out = helperExecute(t, "verify", `["EVENT","sub",`+event.String()+`]`)
		require.Equal(t, "ok "+event.ID.String()+"\n", out)
	})
	t.Run("Match", func(t *testing.T) {
		out := helperExecute(t, "match", "--filter", `{"kinds":[30023],"#d":["my-article"],"until":1}`, "--event", event.String())
		require.Equal(t, "structural: true\nmatches: false\n", out)
	})
	t.Run("Limit", func(t *testing.T) {
		req := `["REQ","sub",{"kinds":[30023],"authors":["` + event.PubKey.String() + `"],"#d":["a","b"],"limit":10},{"kinds":[1]}]`
		out := helperExecute(t, "limit", req)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 5)
		require.True(t, strings.HasPrefix(lines[0], "2\t"), lines[0])
		require.True(t, strings.HasPrefix(lines[1], "unbounded\t"), lines[1])
		require.Equal(t, "total\tunbounded", lines[2])
		require.Contains(t, lines[3], `"limit":2`)
		require.Contains(t, lines[4], `"limit":100`)
	})
}
