package mockbackend

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRE   = regexp.MustCompile(`\d[\d,]*`)
	categories = []string{"전자기기", "가구", "의류", "도서", "스포츠", "기타"}
	regions    = []string{"강남구", "서초구", "송파구", "강동구"}
)

// Plan maps a user message to tool calls with simple keyword rules. It
// stands in for the real LLM agent so the client can be exercised offline.
func Plan(message string) []ToolCall {
	msg := strings.ToLower(message)
	nums := numbers(message)

	switch {
	case containsAny(msg, "끌어올", "boost") && len(nums) > 0:
		return []ToolCall{{Name: ToolBoostListing, Args: map[string]interface{}{"listing_id": nums[0]}}}

	case containsAny(msg, "가격", "price") && len(nums) > 1:
		return []ToolCall{{Name: ToolAdjustPrice, Args: map[string]interface{}{
			"listing_id": nums[0],
			"new_price":  nums[1],
		}}}

	case containsAny(msg, "매물", "목록", "보여", "찾아", "list", "show"):
		args := map[string]interface{}{"sort_by": "created_at", "sort_order": "DESC"}
		if c := firstIn(message, categories); c != "" {
			args["category"] = c
		}
		if r := firstIn(message, regions); r != "" {
			args["region"] = r
		}
		return []ToolCall{{Name: ToolQueryListings, Args: args}}
	}
	return nil
}

func numbers(s string) []int64 {
	var out []int64
	for _, m := range numberRE.FindAllString(s, -1) {
		n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
		if err == nil {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func firstIn(s string, options []string) string {
	for _, o := range options {
		if strings.Contains(s, o) {
			return o
		}
	}
	return ""
}
