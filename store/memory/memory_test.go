package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clb2clb2/sgtri-desp-sub000/store"
	"github.com/clb2clb2/sgtri-desp-sub000/store/memory"
	"github.com/clb2clb2/sgtri-desp-sub000/store/storetest"
)

func TestMemory(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return memory.New() })
}

func TestMemory_PayloadIsCopied(t *testing.T) {
	ctx := context.Background()
	m := memory.New()

	payload := []byte(`{"a":1}`)
	_, err := m.SaveSnapshot(ctx, "x", payload)
	require.NoError(t, err)
	payload[2] = 'b'

	got, err := m.GetSnapshot(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got.Payload))
}
