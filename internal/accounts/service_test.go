package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmehta6/paisatrail/internal/common"
	"github.com/nmehta6/paisatrail/internal/model"
)

func TestCreateMapping(t *testing.T) {
	s := NewMappingService()

	first, superseded, err := s.CreateMapping("acct-1", "HDFC Bank", "XXXX1234")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.True(t, first.Active)
	assert.Empty(t, superseded)

	t.Run("identical active link is a no-op", func(t *testing.T) {
		again, superseded, err := s.CreateMapping("acct-1", "HDFC Bank", "XXXX1234")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Empty(t, superseded)
		assert.Len(t, s.All(), 1)
	})

	t.Run("relinking deactivates and reports the old mapping", func(t *testing.T) {
		replacement, superseded, err := s.CreateMapping("acct-2", "HDFC Bank", "XXXX1234")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, replacement.ID)

		// The caller gets the demoted mapping back so the flip can be
		// written through to storage.
		require.Len(t, superseded, 1)
		assert.Equal(t, first.ID, superseded[0].ID)
		assert.False(t, superseded[0].Active)

		// Only one active mapping per (institution, identifier).
		var active int
		for _, m := range s.All() {
			if m.Active {
				active++
			}
		}
		assert.Equal(t, 1, active)

		accountID, ok := s.FindAccount("HDFC Bank", "XXXX1234")
		require.True(t, ok)
		assert.Equal(t, "acct-2", accountID)
	})

	t.Run("rejects incomplete mappings", func(t *testing.T) {
		_, _, err := s.CreateMapping("", "HDFC Bank", "XXXX1234")
		assert.ErrorIs(t, err, common.ErrInvalidMapping)
		_, _, err = s.CreateMapping("acct-1", "", "XXXX1234")
		assert.ErrorIs(t, err, common.ErrInvalidMapping)
		_, _, err = s.CreateMapping("acct-1", "HDFC Bank", "")
		assert.ErrorIs(t, err, common.ErrInvalidMapping)
	})
}

func TestFindAccount(t *testing.T) {
	s := NewMappingService()
	_, _, err := s.CreateMapping("acct-1", "HDFC Bank", "XXXX1234")
	require.NoError(t, err)

	tests := []struct {
		name        string
		institution string
		identifier  string
		wantID      string
		wantFound   bool
	}{
		{"exact", "HDFC Bank", "XXXX1234", "acct-1", true},
		{"institution case-insensitive", "hdfc bank", "XXXX1234", "acct-1", true},
		{"identifier exact only", "HDFC Bank", "xxxx1234", "", false},
		{"unknown identifier", "HDFC Bank", "XXXX9999", "", false},
		{"unknown institution", "ICICI Bank", "XXXX1234", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := s.FindAccount(tt.institution, tt.identifier)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantID, got)
		})
	}
}

func TestActivateDeactivateDelete(t *testing.T) {
	s := NewMappingService()
	m, _, err := s.CreateMapping("acct-1", "HDFC Bank", "XXXX1234")
	require.NoError(t, err)

	require.NoError(t, s.Deactivate(m.ID))
	_, found := s.FindAccount("HDFC Bank", "XXXX1234")
	assert.False(t, found, "deactivated mappings must not resolve")

	require.NoError(t, s.Activate(m.ID))
	_, found = s.FindAccount("HDFC Bank", "XXXX1234")
	assert.True(t, found)

	require.NoError(t, s.Delete(m.ID))
	assert.Empty(t, s.All())
	assert.ErrorIs(t, s.Delete(m.ID), common.ErrNotFound)
	assert.ErrorIs(t, s.Deactivate(m.ID), common.ErrNotFound)
}

func TestRestore(t *testing.T) {
	s := NewMappingService()

	stored := &model.AccountMapping{
		ID:          "persisted-id",
		AccountID:   "acct-1",
		Institution: "HDFC Bank",
		Identifier:  "XXXX1234",
		Active:      true,
	}
	require.NoError(t, s.Restore(stored))

	accountID, found := s.FindAccount("HDFC Bank", "XXXX1234")
	require.True(t, found)
	assert.Equal(t, "acct-1", accountID)

	t.Run("restore requires an id", func(t *testing.T) {
		err := s.Restore(&model.AccountMapping{
			AccountID: "acct-2", Institution: "X", Identifier: "Y",
		})
		assert.ErrorIs(t, err, common.ErrInvalidMapping)
	})
}
