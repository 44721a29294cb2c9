package mockbackend

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jol/internal/db"
	"jol/internal/models"
)

const (
	ToolQueryListings = "query_listings"
	ToolBoostListing  = "boost_listing"
	ToolAdjustPrice   = "adjust_price"
)

// ToolCall is one step the rule-based agent decided to run.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// ToolOutcome is the JSON-ready result plus any listings the tool changed.
type ToolOutcome struct {
	Result  map[string]interface{}
	Updated []int64
}

// ExecuteTool runs a tool against the listing table.
func ExecuteTool(conn *sql.DB, call ToolCall, now time.Time) (ToolOutcome, error) {
	switch call.Name {
	case ToolQueryListings:
		return toolQueryListings(conn, call.Args)
	case ToolBoostListing:
		return toolBoostListing(conn, call.Args, now)
	case ToolAdjustPrice:
		return toolAdjustPrice(conn, call.Args, now)
	default:
		return ToolOutcome{}, fmt.Errorf("unknown tool: %s", call.Name)
	}
}

// GenerateToolSummary is the one-line description logged for each call.
func GenerateToolSummary(call ToolCall, out ToolOutcome) string {
	switch call.Name {
	case ToolQueryListings:
		count, _ := out.Result["count"].(int)
		if cat, _ := call.Args["category"].(string); cat != "" {
			return fmt.Sprintf("QUERY %s (%d listings)", cat, count)
		}
		return fmt.Sprintf("QUERY (%d listings)", count)
	case ToolBoostListing:
		return fmt.Sprintf("BOOST #%v", call.Args["listing_id"])
	case ToolAdjustPrice:
		return fmt.Sprintf("PRICE #%v -> %v", call.Args["listing_id"], call.Args["new_price"])
	default:
		return fmt.Sprintf("%s called", strings.ToUpper(call.Name))
	}
}

func toolQueryListings(conn *sql.DB, args map[string]interface{}) (ToolOutcome, error) {
	sortBy, _ := args["sort_by"].(string)
	sortOrder, _ := args["sort_order"].(string)
	if sortBy == "" {
		sortBy = "created_at"
	}
	all, err := db.GetListings(conn, "active", sortBy, sortOrder)
	if err != nil {
		return ToolOutcome{Result: map[string]interface{}{
			"success":  false,
			"listings": []interface{}{},
			"count":    0,
			"message":  fmt.Sprintf("매물 조회 실패: %v", err),
		}}, nil
	}

	category, _ := args["category"].(string)
	region, _ := args["region"].(string)
	matched := make([]models.Listing, 0, len(all))
	for _, l := range all {
		if category != "" && l.Category != category {
			continue
		}
		if region != "" && l.Region != region {
			continue
		}
		matched = append(matched, l)
	}

	return ToolOutcome{Result: map[string]interface{}{
		"success":  true,
		"listings": matched,
		"count":    len(matched),
		"message":  fmt.Sprintf("%d개의 매물을 찾았습니다.", len(matched)),
	}}, nil
}

func toolBoostListing(conn *sql.DB, args map[string]interface{}, now time.Time) (ToolOutcome, error) {
	id, ok := intArg(args, "listing_id")
	if !ok {
		return ToolOutcome{}, fmt.Errorf("listing_id is required")
	}
	if err := db.BoostListing(conn, id, now); err != nil {
		return ToolOutcome{Result: map[string]interface{}{
			"success": false,
			"message": fmt.Sprintf("끌어올리기 실패: %v", err),
		}}, nil
	}
	return ToolOutcome{
		Result: map[string]interface{}{
			"success":    true,
			"listing_id": id,
			"message":    fmt.Sprintf("%d번 매물을 끌어올렸습니다.", id),
		},
		Updated: []int64{id},
	}, nil
}

func toolAdjustPrice(conn *sql.DB, args map[string]interface{}, now time.Time) (ToolOutcome, error) {
	id, ok := intArg(args, "listing_id")
	if !ok {
		return ToolOutcome{}, fmt.Errorf("listing_id is required")
	}
	price, ok := intArg(args, "new_price")
	if !ok || price <= 0 {
		return ToolOutcome{}, fmt.Errorf("new_price must be positive")
	}

	before, err := db.GetListing(conn, id)
	if err != nil {
		return ToolOutcome{Result: map[string]interface{}{
			"success": false,
			"message": fmt.Sprintf("가격 변경 실패: %v", err),
		}}, nil
	}
	if err := db.UpdatePrice(conn, id, price, now); err != nil {
		return ToolOutcome{}, err
	}
	return ToolOutcome{
		Result: map[string]interface{}{
			"success":   true,
			"old_price": before.Price,
			"new_price": price,
			"message":   fmt.Sprintf("%d번 매물 가격을 변경했습니다.", id),
		},
		Updated: []int64{id},
	}, nil
}

func intArg(args map[string]interface{}, key string) (int64, bool) {
	switch v := args[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
