package objectstore

import (
	"testing"

	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/marmos91/pasdb/pkg/pcontainer"
	"github.com/marmos91/pasdb/pkg/pjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetRoundTrips(t *testing.T) {
	t.Parallel()

	s := pas.New()
	dict := pcontainer.NewDictionary(s)
	st := New(dict)

	obj := pjson.NewObject(s)
	obj.Set(s, dict, "name", pjson.String(s, dict, "widget"))
	obj.Set(s, dict, "count", pjson.Int64(3))

	id, err := st.Put(s, obj)
	require.NoError(t, err)

	got, ok := st.Get(s, id)
	require.True(t, ok)
	assert.Equal(t, pjson.Serialize(s, obj), pjson.Serialize(s, got))
}

func TestStore_PutIsIdempotent(t *testing.T) {
	t.Parallel()

	s := pas.New()
	dict := pcontainer.NewDictionary(s)
	st := New(dict)

	v := pjson.Int64(42)

	id1, err := st.Put(s, v)
	require.NoError(t, err)
	id2, err := st.Put(s, v)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
}

func TestStore_GetMissingReturnsFalse(t *testing.T) {
	t.Parallel()

	s := pas.New()
	dict := pcontainer.NewDictionary(s)
	st := New(dict)

	var missing ID
	_, ok := st.Get(s, missing)
	assert.False(t, ok)
}

func TestStore_ExistsReflectsPut(t *testing.T) {
	t.Parallel()

	s := pas.New()
	dict := pcontainer.NewDictionary(s)
	st := New(dict)

	v := pjson.Bool(true)
	id, err := st.Put(s, v)
	require.NoError(t, err)

	assert.True(t, st.Exists(s, id))
}
