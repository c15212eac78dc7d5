package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bojiang/typing-utils/internal/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		refsPath, refFlags = "", nil
		depthLimit, verbose = 0, false
		logLevel, logSections = int(slog.LevelError), nil
		log.SetLevel(slog.LevelError)
		log.EnableSections("typing", "parser", "suite")
	})
	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNormalize(t *testing.T) {
	out, err := execute(t, NormalizeCmd, "Dict[str, List[int]]", "Optional[str]")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"Dict[str, List[int]] => dict[str, list[int]]",
		"Optional[str] => typing.Union[NoneType, str]",
	}, lines)
}

func TestNormalizeSyntaxError(t *testing.T) {
	_, err := execute(t, NormalizeCmd, "List[int")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E004")
	assert.Contains(t, err.Error(), "^")
}

func TestIsSubtype(t *testing.T) {
	tests := []struct {
		left, right, want string
	}{
		{"List[int]", "Sequence[int]", "True"},
		{"int", "str", "False"},
		{"Union[int, str]", "Optional[Union[int, str]]", "True"},
	}
	for _, tt := range tests {
		t.Run(tt.left+" <: "+tt.right, func(t *testing.T) {
			out, err := execute(t, IsSubtypeCmd, tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestIsSubtypeRefFlag(t *testing.T) {
	out, err := execute(t, IsSubtypeCmd,
		"--ref", "JSON=Union[int, str, List['JSON'], Dict[str, 'JSON']]",
		"Dict[str, int]", "JSON")
	require.NoError(t, err)
	assert.Equal(t, "True", strings.TrimSpace(out))
}

func TestIsSubtypeRefsFile(t *testing.T) {
	path := writeFile(t, "animals.yaml", `
classes:
  - name: Animal
  - name: Dog
    bases: [Animal]
typevars:
  T:
    bound: Animal
refs:
  Pets: List[Animal]
`)
	out, err := execute(t, IsSubtypeCmd, "--refs", path, "List[Dog]", "Pets")
	require.NoError(t, err)
	assert.Equal(t, "True", strings.TrimSpace(out))
}

func TestIsSubtypeErrors(t *testing.T) {
	t.Run("bad ref flag", func(t *testing.T) {
		_, err := execute(t, IsSubtypeCmd, "--ref", "JSON", "int", "JSON")
		assert.ErrorContains(t, err, "expected NAME=EXPR")
	})
	t.Run("unknown name", func(t *testing.T) {
		_, err := execute(t, IsSubtypeCmd, "int", "Nope")
		assert.ErrorContains(t, err, "E001")
	})
	t.Run("missing refs file", func(t *testing.T) {
		_, err := execute(t, IsSubtypeCmd, "--refs", filepath.Join(t.TempDir(), "missing.yaml"), "int", "int")
		assert.ErrorContains(t, err, "could not open refs file")
	})
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "basics.yaml", `
name: basics
cases:
  - left: List[int]
    right: Sequence[int]
    want: true
  - left: int
    right: str
    want: false
  - normalize: ["List[int]", "typing.List[int]", "list[int]"]
`)
	out, err := execute(t, CheckCmd, "--verbose", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 cases passed")
	assert.Contains(t, out, "ok")
}

func TestCheckDirectory(t *testing.T) {
	path := writeFile(t, "one.yaml", `
cases:
  - left: bool
    right: int
    want: true
`)
	out, err := execute(t, CheckCmd, filepath.Dir(path))
	require.NoError(t, err)
	assert.Contains(t, out, "1 cases passed")
}

func TestCheckFailures(t *testing.T) {
	path := writeFile(t, "failing.yaml", `
name: failing
cases:
  - left: int
    right: str
    want: true
  - left: int
    right: Nope
    want: false
`)
	out, err := execute(t, CheckCmd, path)
	assert.ErrorContains(t, err, "2 of 2 cases failed")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "got False, want True")
	assert.Contains(t, out, "E001")
}

func TestCheckInvalidSuite(t *testing.T) {
	path := writeFile(t, "invalid.yaml", `
cases:
  - left: int
`)
	_, err := execute(t, CheckCmd, path)
	assert.ErrorContains(t, err, "could not load suite")
}
