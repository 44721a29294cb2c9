package mockbackend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jol/internal/db"
	"jol/internal/models"
)

func TestExecuteTool(t *testing.T) {
	_, conn := newTestServer(t)
	now := time.Now()

	t.Run("query filters by category and region", func(t *testing.T) {
		call := ToolCall{Name: ToolQueryListings, Args: map[string]interface{}{"category": "전자기기", "region": "서초구"}}
		out, err := ExecuteTool(conn, call, now)
		require.NoError(t, err)
		assert.Equal(t, true, out.Result["success"])
		assert.Equal(t, 1, out.Result["count"])
		items := out.Result["listings"].([]models.Listing)
		require.Len(t, items, 1)
		assert.Equal(t, "맥북 에어 M1", items[0].Title)
		assert.Empty(t, out.Updated)
		assert.Equal(t, "QUERY 전자기기 (1 listings)", GenerateToolSummary(call, out))
	})

	t.Run("query with no match returns an empty list", func(t *testing.T) {
		out, err := ExecuteTool(conn, ToolCall{Name: ToolQueryListings, Args: map[string]interface{}{"category": "도서"}}, now)
		require.NoError(t, err)
		assert.NotNil(t, out.Result["listings"])
		assert.Equal(t, 0, out.Result["count"])
	})

	t.Run("boost marks the listing updated", func(t *testing.T) {
		call := ToolCall{Name: ToolBoostListing, Args: map[string]interface{}{"listing_id": float64(2)}}
		out, err := ExecuteTool(conn, call, now)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, out.Updated)
		assert.Equal(t, "BOOST #2", GenerateToolSummary(call, out))

		l, err := db.GetListing(conn, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, l.BoostCount)
	})

	t.Run("boost of a missing listing reports failure", func(t *testing.T) {
		out, err := ExecuteTool(conn, ToolCall{Name: ToolBoostListing, Args: map[string]interface{}{"listing_id": int64(404)}}, now)
		require.NoError(t, err)
		assert.Equal(t, false, out.Result["success"])
		assert.Empty(t, out.Updated)
	})

	t.Run("price change", func(t *testing.T) {
		out, err := ExecuteTool(conn, ToolCall{Name: ToolAdjustPrice, Args: map[string]interface{}{"listing_id": 3, "new_price": 99000}}, now)
		require.NoError(t, err)
		assert.Equal(t, int64(120000), out.Result["old_price"])
		assert.Equal(t, []int64{3}, out.Updated)
	})

	t.Run("bad arguments", func(t *testing.T) {
		_, err := ExecuteTool(conn, ToolCall{Name: ToolAdjustPrice, Args: map[string]interface{}{"listing_id": 3, "new_price": -1}}, now)
		assert.Error(t, err)
		_, err = ExecuteTool(conn, ToolCall{Name: ToolBoostListing, Args: map[string]interface{}{}}, now)
		assert.Error(t, err)
		_, err = ExecuteTool(conn, ToolCall{Name: "delete_everything"}, now)
		assert.Error(t, err)
	})
}
