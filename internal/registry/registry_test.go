package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmehta6/paisatrail/internal/common"
	"github.com/nmehta6/paisatrail/internal/model"
)

func testBundle(id, institution, sender string) *model.PatternBundle {
	return &model.PatternBundle{
		ID:            id,
		Institution:   institution,
		SenderPattern: sender,
		AmountPattern: `([0-9]+)`,
		Active:        true,
	}
}

func TestRegister(t *testing.T) {
	r := New()

	require.NoError(t, r.Register(testBundle("b1", "HDFC Bank", `HDFC`)))
	assert.Equal(t, 1, r.Count())

	t.Run("assigns id when absent", func(t *testing.T) {
		b := testBundle("", "ICICI Bank", `ICICI`)
		require.NoError(t, r.Register(b))
		assert.NotEmpty(t, b.ID)
	})

	t.Run("re-registering overwrites", func(t *testing.T) {
		updated := testBundle("b1", "HDFC Bank", `HDFCBK`)
		require.NoError(t, r.Register(updated))
		got, err := r.Get("b1")
		require.NoError(t, err)
		assert.Equal(t, `HDFCBK`, got.SenderPattern)
		assert.Equal(t, 2, r.Count())
	})

	t.Run("rejects nil and invalid bundles", func(t *testing.T) {
		assert.ErrorIs(t, r.Register(nil), common.ErrInvalidPattern)
		assert.ErrorIs(t, r.Register(&model.PatternBundle{}), common.ErrInvalidPattern)
	})
}

func TestFindBySender(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testBundle("hdfc", "HDFC Bank", `HDFC`)))
	require.NoError(t, r.Register(testBundle("icici", "ICICI Bank", `ICICI`)))

	t.Run("matches case-insensitively", func(t *testing.T) {
		b := r.FindBySender("vk-hdfcbk")
		require.NotNil(t, b)
		assert.Equal(t, "hdfc", b.ID)
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		assert.Nil(t, r.FindBySender("RANDOM123"))
	})

	t.Run("skips inactive bundles", func(t *testing.T) {
		require.NoError(t, r.Deactivate("hdfc"))
		assert.Nil(t, r.FindBySender("VK-HDFCBK"))
		require.NoError(t, r.Activate("hdfc"))
		assert.NotNil(t, r.FindBySender("VK-HDFCBK"))
	})

	t.Run("registration order breaks ties", func(t *testing.T) {
		// Both of these match "AXISBANK": first registered wins.
		tie := New()
		require.NoError(t, tie.Register(testBundle("broad", "Generic", `BANK`)))
		require.NoError(t, tie.Register(testBundle("specific", "Axis Bank", `AXISBANK`)))

		b := tie.FindBySender("AXISBANK")
		require.NotNil(t, b)
		assert.Equal(t, "broad", b.ID)
	})

	t.Run("malformed sender pattern does not stop the scan", func(t *testing.T) {
		r2 := New()
		require.NoError(t, r2.Register(testBundle("broken", "Broken", `[bad`)))
		require.NoError(t, r2.Register(testBundle("good", "HDFC Bank", `HDFC`)))

		b := r2.FindBySender("VK-HDFCBK")
		require.NotNil(t, b)
		assert.Equal(t, "good", b.ID)
	})
}

func TestByInstitution(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testBundle("a", "HDFC Bank", `HDFC`)))
	require.NoError(t, r.Register(testBundle("b", "ICICI Bank", `ICICI`)))
	require.NoError(t, r.Register(testBundle("c", "HDFC Bank", `HDFCBK`)))

	got := r.ByInstitution("hdfc bank")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	assert.Empty(t, r.ByInstitution("Unknown Bank"))
}

func TestDelete(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testBundle("hdfc", "HDFC Bank", `HDFC`)))

	require.NoError(t, r.Delete("hdfc"))
	assert.Equal(t, 0, r.Count())
	assert.Nil(t, r.FindBySender("VK-HDFCBK"))

	assert.ErrorIs(t, r.Delete("hdfc"), common.ErrNotFound)
	assert.ErrorIs(t, r.Activate("hdfc"), common.ErrNotFound)
	assert.ErrorIs(t, r.Deactivate("hdfc"), common.ErrNotFound)
}

func TestAllPreservesOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testBundle("one", "A", `A1`)))
	require.NoError(t, r.Register(testBundle("two", "B", `B1`)))
	require.NoError(t, r.Register(testBundle("three", "C", `C1`)))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].ID)
	assert.Equal(t, "two", all[1].ID)
	assert.Equal(t, "three", all[2].ID)
}

func TestDefaultBundles(t *testing.T) {
	r := NewWithDefaults()
	require.Greater(t, r.Count(), 0)

	for _, b := range r.All() {
		assert.NoError(t, b.Validate(), "built-in bundle %s must validate", b.ID)
		assert.True(t, b.Active, "built-in bundle %s must start active", b.ID)
		assert.NotNil(t, b.FieldRegex(model.FieldAmount), "built-in amount pattern %s must compile", b.ID)
		assert.True(t, IsBuiltin(b.ID))
	}
	assert.False(t, IsBuiltin("my-custom-bundle"))

	tests := []struct {
		sender      string
		institution string
	}{
		{"VK-HDFCBK", "HDFC Bank"},
		{"VM-ICICIB", "ICICI Bank"},
		{"AD-SBIINB", "State Bank of India"},
		{"AX-AXISBK", "Axis Bank"},
		{"VK-KOTAKB", "Kotak Mahindra Bank"},
		{"BZ-PAYTMB", "Paytm Payments Bank"},
	}
	for _, tt := range tests {
		t.Run(tt.sender, func(t *testing.T) {
			b := r.FindBySender(tt.sender)
			require.NotNil(t, b, "no bundle matched %s", tt.sender)
			assert.Equal(t, tt.institution, b.Institution)
		})
	}
}
