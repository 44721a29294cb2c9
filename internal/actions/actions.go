// Package actions interprets the tool records the agent reports with a reply.
package actions

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"jol/internal/logger"
	"jol/internal/models"
)

// FirstQueriedListings returns the listings of the first query_listings
// record that carries a non-empty listings array. Later matches in the same
// turn are ignored; when several searches run in one turn only the first is
// shown inline.
func FirstQueriedListings(records []models.ActionRecord) ([]models.Listing, bool) {
	return findFirst(records, queriedListings)
}

// findFirst walks records in order and returns the first value pick accepts.
func findFirst[T any](records []models.ActionRecord, pick func(models.ActionRecord) (T, bool)) (T, bool) {
	for _, rec := range records {
		if v, ok := pick(rec); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func queriedListings(rec models.ActionRecord) ([]models.Listing, bool) {
	if rec.Tool != models.ToolQueryListings || len(rec.Result) == 0 {
		return nil, false
	}

	raw := gjson.GetBytes(rec.Result, "listings")
	if !raw.IsArray() || len(raw.Array()) == 0 {
		return nil, false
	}

	var listings []models.Listing
	if err := json.Unmarshal([]byte(raw.Raw), &listings); err != nil {
		logger.Warn("Skipping undecodable query_listings result", "error", err)
		return nil, false
	}
	return listings, true
}

// CountQueries reports how many query_listings records a turn carried.
func CountQueries(records []models.ActionRecord) int {
	n := 0
	for _, rec := range records {
		if rec.Tool == models.ToolQueryListings {
			n++
		}
	}
	return n
}
