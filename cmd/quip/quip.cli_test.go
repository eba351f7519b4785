package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/go-quip"
)

// Test data constants
const (
	testShoutoutTemplate = "${1.displayName} is playing ${1.game}"
	testInvalidTemplate  = "Hi ${sender"
	testDirectoryYAML    = `
broadcaster: streamer
users:
  - id: "1"
    name: nya
    display_name: Nya
    pronouns: shethem
    activity: Celeste
  - id: "2"
    name: rex
    display_name: Rex
    pronouns: hehim
  - id: "100"
    name: streamer
    display_name: Streamer
`
	testGivePattern = `^!give (?P<target>\w+) (?P<amount>\d+)$`
)

// setupTestData creates test files in a temp directory
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	files := map[string]string{
		"shoutout.txt":   testShoutoutTemplate,
		"invalid.txt":    testInvalidTemplate,
		"directory.yaml": testDirectoryYAML,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), FilePermissions))
	}

	return tmpDir
}

// runCLI runs the CLI with the given stdin and returns exit code, stdout and stderr
func runCLI(stdin string, args ...string) (int, string, string) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI("")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameRender)
	assert.Contains(t, stdout, CmdNameCheck)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, stdout, _ := runCLI("", "unknown")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stdout, ErrMsgUnknownCommand)
}

// ==================== Help command tests ====================

func TestHelp(t *testing.T) {
	tests := []struct {
		command  string
		expected string
	}{
		{CmdNameRender, HelpRenderUsage},
		{CmdNameCheck, HelpCheckUsage},
		{CmdNameVersion, HelpVersionUsage},
		{CmdNameHelp, HelpHelpUsage},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			assert.Equal(t, ExitCodeSuccess, runHelp([]string{tt.command}, stdout))
			assert.Contains(t, stdout.String(), tt.expected)
		})
	}
}

// ==================== Version command tests ====================

func TestVersion(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		code, stdout, _ := runCLI("", CmdNameVersion)
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Contains(t, stdout, CLIName)
	})

	t.Run("json", func(t *testing.T) {
		code, stdout, _ := runCLI("", CmdNameVersion, "-F", OutputFormatJSON)
		require.Equal(t, ExitCodeSuccess, code)

		var info buildInfo
		require.NoError(t, json.Unmarshal([]byte(stdout), &info))
		assert.NotEmpty(t, info.Version)
		assert.NotEmpty(t, info.GoVersion)
	})

	t.Run("nearest manifest wins", func(t *testing.T) {
		root := t.TempDir()
		manifest := "project:\n  version: 9.9.9\ngit:\n  branch: release\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, VersionsFileName), []byte(manifest), FilePermissions))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		t.Chdir(nested)

		info := currentBuild()
		assert.Equal(t, "9.9.9", info.Version)
		assert.Equal(t, "release", info.Branch)
		assert.NotEmpty(t, info.GoVersion)
	})

	t.Run("invalid format", func(t *testing.T) {
		code, _, stderr := runCLI("", CmdNameVersion, "--format", "xml")
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgInvalidFormat)
	})
}

// ==================== Render command tests ====================

func TestRender(t *testing.T) {
	tmpDir := setupTestData(t)
	shoutout := filepath.Join(tmpDir, "shoutout.txt")
	directory := filepath.Join(tmpDir, "directory.yaml")

	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:     "stdin template without directory",
			stdin:    "Hi ${sender}!",
			args:     []string{"-t", "-", "-s", "rex"},
			expected: "Hi rex!",
		},
		{
			name:     "directory lookup",
			args:     []string{"-t", shoutout, "-m", "!so nya", "-s", "rex", "-D", directory},
			expected: "Nya is playing Celeste",
		},
		{
			name:     "sender from directory",
			stdin:    "${sender} greets ${broadcaster}",
			args:     []string{"--template", "-", "--sender", "NYA", "--directory", directory},
			expected: "Nya greets Streamer",
		},
		{
			name:     "pattern captures",
			stdin:    "${<target>} gets ${<amount>} points",
			args:     []string{"-t", "-", "-m", "!give nya 5", "-p", testGivePattern},
			expected: "nya gets 5 points",
		},
		{
			name:     "fixed selector",
			stdin:    "${sender.they} ${sender.are} here",
			args:     []string{"-t", "-", "-s", "nya", "-D", directory, "--selector", "1"},
			expected: "they are here",
		},
		{
			name:     "other fixed selector",
			stdin:    "${sender.they} ${sender.are} here",
			args:     []string{"-t", "-", "-s", "nya", "-D", directory, "--selector", "0"},
			expected: "she is here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{CmdNameRender}, tt.args...)
			code, stdout, stderr := runCLI(tt.stdin, args...)
			require.Equal(t, ExitCodeSuccess, code, stderr)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestRender_ExitCodes(t *testing.T) {
	tmpDir := setupTestData(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
	}{
		{"missing template flag", "", []string{"-m", "hi"}, ExitCodeUsageError},
		{"unknown flag", "", []string{"-t", "-", "--bogus"}, ExitCodeUsageError},
		{"missing template file", "", []string{"-t", filepath.Join(tmpDir, "missing.txt")}, ExitCodeInputError},
		{"missing directory file", "Hi", []string{"-t", "-", "-D", filepath.Join(tmpDir, "missing.yaml")}, ExitCodeInputError},
		{"parse error", "", []string{"-t", filepath.Join(tmpDir, "invalid.txt")}, ExitCodeValidationError},
		{"invalid pattern", "Hi", []string{"-t", "-", "-p", "(?P<x>"}, ExitCodeUsageError},
		{"pattern mismatch", "${<target>}", []string{"-t", "-", "-m", "!take nya 5", "-p", testGivePattern}, ExitCodeNoMatch},
		{"assertion failure", "${assert(1)}Hi ${1}", []string{"-t", "-", "-m", "!hi"}, ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{CmdNameRender}, tt.args...)
			code, stdout, _ := runCLI(tt.stdin, args...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
		})
	}
}

func TestRender_SilentFailures(t *testing.T) {
	t.Run("pattern mismatch", func(t *testing.T) {
		code, stdout, stderr := runCLI("${<target>}", CmdNameRender, "-t", "-", "-m", "hello", "-p", testGivePattern)
		assert.Equal(t, ExitCodeNoMatch, code)
		assert.Empty(t, stdout)
		assert.Empty(t, stderr)
	})

	t.Run("assertion", func(t *testing.T) {
		code, stdout, stderr := runCLI("${assert(1)}", CmdNameRender, "-t", "-")
		assert.Equal(t, ExitCodeError, code)
		assert.Empty(t, stdout)
		assert.Empty(t, stderr)
	})
}

func TestRender_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")

	code, stdout, _ := runCLI("Hi ${sender}", CmdNameRender, "-t", "-", "-s", "nya", "-o", outPath)
	require.Equal(t, ExitCodeSuccess, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Hi nya", string(data))
}

func TestRender_Verbose(t *testing.T) {
	code, stdout, stderr := runCLI("Hi ${sender}", CmdNameRender, "-t", "-", "-s", "nya", "-v")
	require.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, "Hi nya", stdout)
	assert.NotEmpty(t, stderr)
}

func TestMatchCommand(t *testing.T) {
	captures, ok, err := matchCommand(`^!so (?P<target>\w+)(?: (?P<note>.+))?$`, "!so nya")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"target": "nya"}, captures)

	captures, ok, err = matchCommand("", "anything")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, captures)

	_, ok, err = matchCommand(`^!so`, "!hi")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = matchCommand(`(`, "!hi")
	assert.Error(t, err)
}

// ==================== Check command tests ====================

func TestCheck_Text(t *testing.T) {
	tmpDir := setupTestData(t)

	t.Run("valid", func(t *testing.T) {
		code, stdout, _ := runCLI("", CmdNameCheck, "-t", filepath.Join(tmpDir, "shoutout.txt"), "--no-color")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Contains(t, stdout, CheckTextSuccess)
	})

	t.Run("warnings pass unless strict", func(t *testing.T) {
		code, stdout, _ := runCLI("${sendr}", CmdNameCheck, "-t", "-", "--no-color")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Contains(t, stdout, CheckTextIssueHeader)
		assert.Contains(t, stdout, quip.SeverityNameWarning)
		assert.Contains(t, stdout, "sender")

		code, _, _ = runCLI("${sendr}", CmdNameCheck, "-t", "-", "--strict", "--no-color")
		assert.Equal(t, ExitCodeValidationError, code)
	})

	t.Run("parse error", func(t *testing.T) {
		code, stdout, _ := runCLI("", CmdNameCheck, "-t", filepath.Join(tmpDir, "invalid.txt"), "--no-color")
		assert.Equal(t, ExitCodeValidationError, code)
		assert.Contains(t, stdout, quip.SeverityNameError)
		assert.Contains(t, stdout, "line 1")
	})

	t.Run("missing capture group", func(t *testing.T) {
		code, stdout, _ := runCLI("${<who>}", CmdNameCheck, "-t", "-", "-p", testGivePattern, "--no-color")
		assert.Equal(t, ExitCodeValidationError, code)
		assert.Contains(t, stdout, "who")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		code, _, stderr := runCLI("${<who>}", CmdNameCheck, "-t", "-", "-p", "(")
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgInvalidPattern)
	})

	t.Run("invalid format", func(t *testing.T) {
		code, _, _ := runCLI("", CmdNameCheck, "-t", "-", "-F", "xml")
		assert.Equal(t, ExitCodeUsageError, code)
	})
}

func TestCheck_JSON(t *testing.T) {
	code, stdout, _ := runCLI("${sendr}\n${<target>}", CmdNameCheck, "-t", "-", "-F", OutputFormatJSON, "-p", testGivePattern)
	require.Equal(t, ExitCodeSuccess, code)

	var out checkOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.True(t, out.Valid)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, quip.SeverityNameWarning, out.Issues[0].Severity)
	assert.Equal(t, "sendr", out.Issues[0].Name)
	assert.Equal(t, 1, out.Issues[0].Line)
	assert.Contains(t, out.Issues[0].Suggestions, "sender")

	code, stdout, _ = runCLI("${sendr}", CmdNameCheck, "-t", "-", "-F", OutputFormatJSON, "--strict")
	assert.Equal(t, ExitCodeValidationError, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.False(t, out.Valid)
}
