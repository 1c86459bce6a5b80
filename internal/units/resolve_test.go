package units

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CurrentDirTakesPriorityOverSearchPaths(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pas"), []byte("current"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(other, "a.pas"), []byte("other"), 0o644))

	resolved, err := Resolve("a.pas", dir, []string{other})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.pas"), resolved)
}

func TestResolve_FallsBackToSearchPath(t *testing.T) {
	dir := t.TempDir()
	sp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sp, "b.pas"), []byte("b"), 0o644))

	resolved, err := Resolve("b.pas", dir, []string{sp})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sp, "b.pas"), resolved)
}

func TestResolve_AbsolutePathUsedDirectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.pas")
	require.NoError(t, os.WriteFile(path, []byte("c"), 0o644))

	resolved, err := Resolve(path, "", nil)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestResolve_AbsolutePathMissingIsError(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.pas"), "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolve_NotFoundAnywhereIsError(t *testing.T) {
	_, err := Resolve("nowhere.pas", t.TempDir(), []string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Include file not found")
}

func TestCanonicalize_ResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.pas")
	require.NoError(t, os.WriteFile(real, []byte("x"), 0o644))
	link := filepath.Join(dir, "link.pas")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	canonReal, err := Canonicalize(real)
	require.NoError(t, err)
	canonLink, err := Canonicalize(link)
	require.NoError(t, err)
	assert.Equal(t, canonReal, canonLink)
}

func TestCanonicalize_MissingFileIsError(t *testing.T) {
	_, err := Canonicalize(filepath.Join(t.TempDir(), "missing.pas"))
	require.Error(t, err)
}

func TestReadFile_ReturnsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "d.pas")
	require.NoError(t, os.WriteFile(path, []byte("const K = 1;"), 0o644))

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const K = 1;", content)
}

func TestReadFile_MissingIsWrappedError(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.pas"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot read include file")
}
