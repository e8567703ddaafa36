package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hygieneerrors "github.com/standardbeagle/hygiene/internal/errors"
	"github.com/standardbeagle/hygiene/internal/model"
)

func TestExitCodeForError_UsageErrorIsSixtyFour(t *testing.T) {
	err := hygieneerrors.NewUsageError("bad flag")
	assert.Equal(t, 64, exitCodeForError(err))
}

func TestExitCodeForError_OtherErrorIsOne(t *testing.T) {
	assert.Equal(t, 1, exitCodeForError(errors.New("boom")))
}

func TestExitCodeForIssues_CleanIsZero(t *testing.T) {
	assert.Equal(t, 0, exitCodeForIssues(nil, model.SeverityWarning))
}

func TestExitCodeForIssues_ErrorSeverityIsTwo(t *testing.T) {
	issues := []model.CodeIssue{{Severity: model.SeverityError}}
	assert.Equal(t, 2, exitCodeForIssues(issues, model.SeverityWarning))
}

func TestExitCodeForIssues_AboveThresholdIsOne(t *testing.T) {
	issues := []model.CodeIssue{{Severity: model.SeverityWarning}}
	assert.Equal(t, 1, exitCodeForIssues(issues, model.SeverityWarning))
}

func TestExitCodeForIssues_BelowThresholdIsZero(t *testing.T) {
	issues := []model.CodeIssue{{Severity: model.SeverityInfo}}
	assert.Equal(t, 0, exitCodeForIssues(issues, model.SeverityWarning))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "lib/main.dart", joinPath("", "lib/main.dart"))
	assert.Equal(t, "lib/main.dart", joinPath(".", "lib/main.dart"))
	assert.Equal(t, "root"+string(os.PathSeparator)+"lib/main.dart", joinPath("root", "lib/main.dart"))
}

func TestOpenOutput_EmptyPathIsStdout(t *testing.T) {
	out, closeFn, err := openOutput("")
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, os.Stdout, out)
}

func TestOpenOutput_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	out, closeFn, err := openOutput(path)
	require.NoError(t, err)
	_, err = out.WriteString("hi")
	require.NoError(t, err)
	closeFn()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))
}

func newTestContext(t *testing.T, cmd *cli.Command, args []string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range cmd.Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestLoadConfigWithOverrides_AppliesExcludePublicAPI(t *testing.T) {
	cmd := unusedCodeCommand()
	c := newTestContext(t, cmd, []string{"--exclude-public-api", "--config", filepath.Join(t.TempDir(), "missing.kdl")})

	cfg, err := loadConfigWithOverrides(c)
	require.NoError(t, err)
	assert.True(t, cfg.PublicAPI.ConsiderExportsAsUsed)
}

func TestLoadConfigWithOverrides_AppendsExcludeGlobs(t *testing.T) {
	cmd := unusedCodeCommand()
	c := newTestContext(t, cmd, []string{"--exclude", "lib/generated/**", "--config", filepath.Join(t.TempDir(), "missing.kdl")})

	cfg, err := loadConfigWithOverrides(c)
	require.NoError(t, err)
	assert.Contains(t, cfg.Exclude, "lib/generated/**")
}
