package helpers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, CreateParentDir(filepath.Join(dir, "db.chi")))
	require.DirExists(t, dir)
	require.NoError(t, CreateParentDir(filepath.Join(dir, "db.chi")))
}
