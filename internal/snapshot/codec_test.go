package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankimquy/FOODORDER/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	snap := domain.Snapshot{
		Foods: []domain.FoodItem{
			{ID: "f1", Name: "Phở bò", Price: 45000},
			{ID: "f2", Name: "Cà phê sữa", Price: 25000},
		},
		Orders: []domain.Order{
			{
				ID:           "o1",
				CustomerName: "Lan",
				Items: []domain.OrderItem{
					{FoodID: "f1", Quantity: 2},
					{FoodID: "f2", Quantity: 1},
				},
				OrderDate: "10:30:00 5/3/2025",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	decoded, err := Decode(&buf)
	require.NoError(t, err)

	// ids and structure survive untouched
	assert.Equal(t, snap, decoded)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"))

	assert.ErrorIs(t, err, domain.ErrImport)
}

func TestDecode_MissingCollections(t *testing.T) {
	decoded, err := Decode(strings.NewReader(`{}`))

	require.NoError(t, err)
	assert.NotNil(t, decoded.Foods)
	assert.NotNil(t, decoded.Orders)
	assert.Empty(t, decoded.Foods)
	assert.Empty(t, decoded.Orders)
}

func TestEncode_NilCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, domain.Snapshot{}))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, decoded.Foods)
	assert.Empty(t, decoded.Orders)
}
