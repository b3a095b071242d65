package confstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_SetAndGet(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Set("/iap/profileA/type", "USB"))
	require.NoError(t, tree.Set("/iap/profileA/autoconnect", true))

	s, err := tree.GetString("/iap/profileA/type")
	require.NoError(t, err)
	assert.Equal(t, "USB", s)

	b, err := tree.GetBool("/iap/profileA/autoconnect")
	require.NoError(t, err)
	assert.True(t, b)
}

func TestTree_GetMissing(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Set("/iap/profileA/type", "USB"))

	_, err := tree.GetString("/iap/profileA/name")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tree.GetBool("/iap/profileB/autoconnect")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTree_TypeMismatch(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Set("/iap/p/autoconnect", "yes"))
	require.NoError(t, tree.Set("/iap/p/type", int64(3)))

	_, err := tree.GetBool("/iap/p/autoconnect")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = tree.GetString("/iap/p/type")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestTree_AllDirs(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Set("/iap/zeta/type", "USB"))
	require.NoError(t, tree.Set("/iap/alpha/type", "WLAN_INFRA"))
	require.NoError(t, tree.MkDir("/iap/middle"))
	require.NoError(t, tree.Set("/iap/version", int64(2)))

	dirs, err := tree.AllDirs("/iap")
	require.NoError(t, err)
	assert.Equal(t, []string{"/iap/alpha", "/iap/middle", "/iap/zeta"}, dirs)

	dirs, err = tree.AllDirs("/iap/")
	require.NoError(t, err)
	assert.Len(t, dirs, 3)
}

func TestTree_AllDirs_Missing(t *testing.T) {
	tree := NewTree()

	dirs, err := tree.AllDirs("/nowhere")
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestTree_RejectsRelativePaths(t *testing.T) {
	tree := NewTree()

	assert.Error(t, tree.Set("iap/p/type", "USB"))
	assert.Error(t, tree.Set("/", "USB"))
	_, err := tree.AllDirs("iap")
	assert.Error(t, err)
	_, err = tree.GetString("type")
	assert.Error(t, err)
}

func TestTree_SnapshotIsSelf(t *testing.T) {
	tree := NewTree()
	r, err := tree.Snapshot()
	require.NoError(t, err)
	assert.Same(t, tree, r)
}
