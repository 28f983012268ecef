package betslip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreUpsertIsIdempotentPerKey(t *testing.T) {
	s := NewStore()

	first := s.Upsert("07", 10)
	second := s.Upsert("07", 80)

	require.Equal(t, 1, s.Len())
	require.Equal(t, first.ID, second.ID)

	lines := s.Lines()
	require.Equal(t, "07", lines[0].Key)
	require.Equal(t, 80.0, lines[0].Amount)
}

func TestStorePreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Upsert("31", 10)
	s.Upsert("07", 20)
	s.Upsert("45", 30)

	// overwriting does not move the line
	s.Upsert("31", 99)

	keys := []string{}
	for _, ln := range s.Lines() {
		keys = append(keys, ln.Key)
	}
	require.Equal(t, []string{"31", "07", "45"}, keys)
}

func TestStoreRemoveByID(t *testing.T) {
	s := NewStore()
	s.Upsert("31", 10)
	target := s.Upsert("07", 20)
	s.Upsert("45", 30)

	require.True(t, s.Remove(target.ID))
	require.False(t, s.Remove(target.ID))
	require.Equal(t, 2, s.Len())

	// the key is free again and appends at the end
	s.Upsert("07", 50)
	lines := s.Lines()
	require.Equal(t, "07", lines[2].Key)
	require.Equal(t, 50.0, lines[2].Amount)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Upsert("31", 10)
	s.Upsert("07", 20)

	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Lines())

	ln := s.Upsert("31", 5)
	require.NotZero(t, ln.ID)
}
