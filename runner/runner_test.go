package runner

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glintjs/glint/config"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func TestRunWalksDirectories(t *testing.T) {
	fs := memFs(t, map[string]string{
		"src/a.js":                  "let x = 1;\n",
		"src/sub/b.js":              "!1 in [1,2];\n",
		"src/readme.md":             "not source\n",
		"src/node_modules/dep/c.js": "garbage !!!",
		"src/.cache/d.js":           "garbage !!!",
	})

	reports, err := New(fs, nil).Run(context.Background(), []string{"src"})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "src/a.js", reports[0].Path)
	assert.Equal(t, "src/sub/b.js", reports[1].Path)

	assert.Empty(t, reports[0].Findings)
	assert.Zero(t, reports[0].ErrorCount())

	require.Len(t, reports[1].Findings, 1)
	assert.Equal(t, "noUnsafeNegation", reports[1].Findings[0].Rule)
}

func TestRunExplicitFile(t *testing.T) {
	fs := memFs(t, map[string]string{"tool.js": "debugger;\n"})

	reports, err := New(fs, nil).Run(context.Background(), []string{"tool.js"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Findings, 1)
	assert.Equal(t, "noDebugger", reports[0].Findings[0].Rule)
}

func TestRunMissingPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := New(fs, nil).Run(context.Background(), []string{"nope.js"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.js")
}

func TestRunHonorsExclude(t *testing.T) {
	fs := memFs(t, map[string]string{
		"src/a.js":     "let x = 1;\n",
		"src/a.gen.js": "debugger;\n",
	})
	cfg := config.Default()
	cfg.Exclude = []string{"*.gen.js"}

	reports, err := New(fs, cfg).Run(context.Background(), []string{"src"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "src/a.js", reports[0].Path)
}

func TestRunHonorsDisabledRules(t *testing.T) {
	fs := memFs(t, map[string]string{"a.js": "debugger;\n"})
	cfg := config.Default()
	cfg.Rules["noDebugger"] = false

	reports, err := New(fs, cfg).Run(context.Background(), []string{"a.js"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Findings)
}

func TestRunCountsParseErrors(t *testing.T) {
	fs := memFs(t, map[string]string{"bad.js": "function (\n"})

	reports, err := New(fs, nil).Run(context.Background(), []string{"bad.js"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Positive(t, reports[0].ErrorCount())
}

func TestRunParallel(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["src/"+name+".js"] = "let " + name + " = 1;\n"
	}
	fs := memFs(t, files)
	cfg := config.Default()
	cfg.Jobs = 3

	reports, err := New(fs, cfg).Run(context.Background(), []string{"src"})
	require.NoError(t, err)
	require.Len(t, reports, 8)
	for i := 1; i < len(reports); i++ {
		assert.Less(t, reports[i-1].Path, reports[i].Path)
	}
}

func TestFixAppliesActions(t *testing.T) {
	fixed, changed := New(nil, nil).Fix([]byte("!1 in [1,2];\n"))
	assert.True(t, changed)
	assert.Equal(t, "(!1) in [1,2];\n", string(fixed))
}

func TestFixConverges(t *testing.T) {
	src := "!a in xs;\n!b instanceof C;\n"
	fixed, changed := New(nil, nil).Fix([]byte(src))
	assert.True(t, changed)
	assert.Equal(t, "(!a) in xs;\n(!b) instanceof C;\n", string(fixed))

	again, changed := New(nil, nil).Fix(fixed)
	assert.False(t, changed)
	assert.Equal(t, string(fixed), string(again))
}

func TestFixLeavesCleanSourceAlone(t *testing.T) {
	src := "const x = 1;\n"
	fixed, changed := New(nil, nil).Fix([]byte(src))
	assert.False(t, changed)
	assert.Equal(t, src, string(fixed))
}

func TestFixHonorsDisabledRules(t *testing.T) {
	src := "!1 in [1,2];\n"
	cfg := config.Default()
	cfg.Rules["noUnsafeNegation"] = false

	fixed, changed := New(nil, cfg).Fix([]byte(src))
	assert.False(t, changed)
	assert.Equal(t, src, string(fixed))
}

func TestRunAllRulesDisabled(t *testing.T) {
	fs := memFs(t, map[string]string{"a.js": "debugger;\n!1 in [1,2];\na == b;\n"})
	cfg := config.Default()
	for _, name := range []string{"noUnsafeNegation", "noDebugger", "noDoubleEquals"} {
		cfg.Rules[name] = false
	}

	reports, err := New(fs, cfg).Run(context.Background(), []string{"a.js"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Findings)
}
