package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/picker/internal/testutils"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReplay(t *testing.T) {
	path := testutils.WriteFile(t, "click.yaml", `
machine: click-point
steps:
  - {kind: move, pos: {x: 1, y: 1}}
  - {kind: press, button: left, pos: {x: 3, y: 4}}
`)

	var buf bytes.Buffer
	report, err := RunReplay(context.Background(), ReplayOptions{Path: path, Out: &buf, Plain: true})
	require.NoError(t, err)
	require.Len(t, report.Selections, 1)
	assert.Contains(t, buf.String(), "begin append end")
	assert.Contains(t, buf.String(), "selected point (3.0000, 4.0000)")

	buf.Reset()
	_, err = RunReplay(context.Background(), ReplayOptions{Path: path, Out: &buf, JSON: true})
	require.NoError(t, err)
	var decoded script.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Trace, 2)
}

func TestLoadBindings(t *testing.T) {
	p, err := LoadBindings("")
	require.NoError(t, err)
	b, ok := p.KeyPattern(domain.KeyAbort)
	require.True(t, ok)
	assert.Equal(t, domain.KeyEscape, b.Key)

	path := testutils.WriteFile(t, "bindings.toml", "[keys.key-abort]\nkey = \"q\"\n")
	p, err = LoadBindings(path)
	require.NoError(t, err)
	b, _ = p.KeyPattern(domain.KeyAbort)
	assert.Equal(t, domain.Key("q"), b.Key)

	_, err = LoadBindings(testutils.WriteFile(t, "bad.yaml", "mouse: [\n"))
	assert.Error(t, err)
}

func TestCreateLogger(t *testing.T) {
	for _, lvl := range []string{"off", "debug", "info", "warn", "error"} {
		logger, err := CreateLogger(lvl)
		require.NoError(t, err, lvl)
		assert.NotNil(t, logger)
	}
	_, err := CreateLogger("chatty")
	assert.Error(t, err)
}
