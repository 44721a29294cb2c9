package actions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jol/internal/models"
)

func record(t *testing.T, tool string, result any) models.ActionRecord {
	t.Helper()
	if result == nil {
		return models.ActionRecord{Tool: tool}
	}
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	return models.ActionRecord{Tool: tool, Result: raw}
}

func listingsResult(ids ...int64) map[string]any {
	items := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{
			"id":         id,
			"title":      "item",
			"price":      1000,
			"created_at": "2025-01-01 00:00:00",
		})
	}
	return map[string]any{"success": true, "listings": items, "count": len(items)}
}

func TestFirstQueriedListings_FirstMatchWins(t *testing.T) {
	records := []models.ActionRecord{
		record(t, "other", nil),
		record(t, models.ToolQueryListings, listingsResult(1)),
		record(t, models.ToolQueryListings, listingsResult(2)),
	}

	got, ok := FirstQueriedListings(records)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFirstQueriedListings_None(t *testing.T) {
	_, ok := FirstQueriedListings(nil)
	assert.False(t, ok)

	_, ok = FirstQueriedListings([]models.ActionRecord{})
	assert.False(t, ok)
}

func TestFirstQueriedListings_SkipsEmptyAndMissingResults(t *testing.T) {
	records := []models.ActionRecord{
		record(t, models.ToolQueryListings, nil),
		record(t, models.ToolQueryListings, map[string]any{"success": false, "listings": []any{}}),
		record(t, models.ToolQueryListings, map[string]any{"message": "no listings key"}),
		record(t, "boost_listing", listingsResult(9)),
		record(t, models.ToolQueryListings, listingsResult(4, 5)),
	}

	got, ok := FirstQueriedListings(records)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].ID)
	assert.Equal(t, int64(5), got[1].ID)
}

func TestFirstQueriedListings_UndecodableCountsAsMissing(t *testing.T) {
	records := []models.ActionRecord{
		{Tool: models.ToolQueryListings, Result: json.RawMessage(`{"listings":[{"id":"abc"}]}`)},
		record(t, models.ToolQueryListings, listingsResult(8)),
	}

	got, ok := FirstQueriedListings(records)
	require.True(t, ok)
	assert.Equal(t, int64(8), got[0].ID)
}

func TestFirstQueriedListings_OtherToolsOnly(t *testing.T) {
	records := []models.ActionRecord{
		record(t, "adjust_price", map[string]any{"success": true}),
		record(t, "get_market_insights", listingsResult(1)),
	}
	_, ok := FirstQueriedListings(records)
	assert.False(t, ok)
}

func TestCountQueries(t *testing.T) {
	records := []models.ActionRecord{
		record(t, models.ToolQueryListings, nil),
		record(t, "other", nil),
		record(t, models.ToolQueryListings, nil),
	}
	assert.Equal(t, 2, CountQueries(records))
}
