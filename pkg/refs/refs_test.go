package refs

import (
	"path/filepath"
	"testing"

	"github.com/marmos91/pasdb/pkg/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testID(b byte) objectstore.ID {
	var id objectstore.ID
	id[0] = b
	return id
}

func TestInit_CreatesLayoutAndHead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, err := Init(dir)
	require.NoError(t, err)

	branch, ok := r.CurrentBranch()
	require.True(t, ok)
	assert.Equal(t, "main", branch)

	assert.DirExists(t, filepath.Join(dir, "refs", "heads"))
	assert.DirExists(t, filepath.Join(dir, "refs", "tags"))
}

func TestUpdateRefAndBranchTip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, err := Init(dir)
	require.NoError(t, err)

	id := testID(0xab)
	require.NoError(t, r.UpdateRef("main", id))

	got, ok := r.BranchTip("main")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestResolve_FollowsSymbolicHead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, err := Init(dir)
	require.NoError(t, err)

	id := testID(0x42)
	require.NoError(t, r.UpdateRef("main", id))

	got, ok := r.Resolve()
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestResolve_DetachedHead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, err := Init(dir)
	require.NoError(t, err)

	id := testID(0x99)
	require.NoError(t, r.SetHeadDetached(id))

	branch, ok := r.CurrentBranch()
	assert.False(t, ok)
	assert.Empty(t, branch)

	got, ok := r.Resolve()
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestBranchTip_MissingBranchReturnsFalse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, err := Init(dir)
	require.NoError(t, err)

	_, ok := r.BranchTip("does-not-exist")
	assert.False(t, ok)
}

func TestListBranchesAndDeleteBranch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, err := Init(dir)
	require.NoError(t, err)

	require.NoError(t, r.UpdateRef("main", testID(1)))
	require.NoError(t, r.UpdateRef("feature-x", testID(2)))

	assert.Equal(t, []string{"feature-x", "main"}, r.ListBranches())

	require.NoError(t, r.DeleteBranch("feature-x"))
	assert.Equal(t, []string{"main"}, r.ListBranches())

	require.NoError(t, r.DeleteBranch("feature-x"))
}

func TestTagsRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, err := Init(dir)
	require.NoError(t, err)

	id := testID(7)
	require.NoError(t, r.SetTag("v1.0.0", id))

	got, ok := r.TagTarget("v1.0.0")
	require.True(t, ok)
	assert.Equal(t, id, got)

	assert.Equal(t, []string{"v1.0.0"}, r.ListTags())

	require.NoError(t, r.DeleteTag("v1.0.0"))
	assert.Empty(t, r.ListTags())
}
