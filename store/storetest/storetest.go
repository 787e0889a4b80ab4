// Package storetest holds the behavior every store.Store must satisfy.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clb2clb2/sgtri-desp-sub000/store"
)

// Run exercises a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("rates versions", func(t *testing.T) {
		ctx := context.Background()
		st := newStore(t)

		// GIVEN: an empty store
		_, err := st.LatestRates(ctx)
		assert.ErrorIs(t, err, store.ErrNotFound)

		// WHEN: two versions are saved
		v1, err := st.SaveRates(ctx, []byte(`{"mileage_rate":0.19}`))
		require.NoError(t, err)
		v2, err := st.SaveRates(ctx, []byte(`{"mileage_rate":0.26}`))
		require.NoError(t, err)

		// THEN: versions increase and the latest wins
		assert.Greater(t, v2.Version, v1.Version)

		latest, err := st.LatestRates(ctx)
		require.NoError(t, err)
		assert.Equal(t, v2.Version, latest.Version)
		assert.JSONEq(t, `{"mileage_rate":0.26}`, string(latest.ConfigJSON))
		assert.False(t, latest.CreatedAt.IsZero())

		all, err := st.ListRates(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, v2.Version, all[0].Version, "newest first")
		assert.Equal(t, v1.Version, all[1].Version)
	})

	t.Run("snapshots", func(t *testing.T) {
		ctx := context.Background()
		st := newStore(t)

		_, err := st.GetSnapshot(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.SaveSnapshot(ctx, "form-1", []byte(`{"trips":[]}`))
		require.NoError(t, err)

		got, err := st.GetSnapshot(ctx, "form-1")
		require.NoError(t, err)
		assert.Equal(t, "form-1", got.ID)
		assert.JSONEq(t, `{"trips":[]}`, string(got.Payload))

		// Saving the same id replaces the payload.
		_, err = st.SaveSnapshot(ctx, "form-1", []byte(`{"trips":[1]}`))
		require.NoError(t, err)

		got, err = st.GetSnapshot(ctx, "form-1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"trips":[1]}`, string(got.Payload))
	})
}
