package legacy

import (
	"testing"

	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressManager_CreateAndFind(t *testing.T) {
	t.Parallel()

	s := pas.New()
	am := NewAddressManager(s)

	off := am.CreateNamed("legacy_counter", "counter_a", 8)
	require.NotZero(t, off)

	assert.Equal(t, off, am.Find("legacy_counter", "counter_a"))
}

func TestAddressManager_CreateNamedRejectsDuplicate(t *testing.T) {
	t.Parallel()

	s := pas.New()
	am := NewAddressManager(s)

	first := am.CreateNamed("legacy_counter", "counter_a", 8)
	require.NotZero(t, first)

	second := am.CreateNamed("legacy_counter", "counter_a", 8)
	assert.Zero(t, second)
}

func TestAddressManager_DeleteThenFindReturnsZero(t *testing.T) {
	t.Parallel()

	s := pas.New()
	am := NewAddressManager(s)

	am.CreateNamed("legacy_counter", "counter_a", 8)
	am.Delete("legacy_counter", "counter_a")

	assert.Zero(t, am.Find("legacy_counter", "counter_a"))
}

func TestAddressManager_SeparateTypeNamesDoNotCollide(t *testing.T) {
	t.Parallel()

	s := pas.New()
	am := NewAddressManager(s)

	offA := am.CreateNamed("type_a", "shared_name", 8)
	offB := am.CreateNamed("type_b", "shared_name", 16)

	require.NotZero(t, offA)
	require.NotZero(t, offB)
	assert.NotEqual(t, offA, offB)
}
