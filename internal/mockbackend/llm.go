package mockbackend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"jol/internal/models"
)

// Decision is what a planner wants done for one chat turn. Reply is the
// model's own text and is only used when no tool produced a message.
type Decision struct {
	Calls []ToolCall
	Reply string
}

// Planner turns a chat request into tool calls.
type Planner interface {
	Plan(ctx context.Context, req models.ChatRequest) (Decision, error)
}

// RulePlanner is the offline keyword planner.
type RulePlanner struct{}

func (RulePlanner) Plan(_ context.Context, req models.ChatRequest) (Decision, error) {
	return Decision{Calls: Plan(req.Message)}, nil
}

const DefaultModel = "gpt-4o-mini"

const SystemPrompt = `당신은 중고거래 플랫폼의 AI 판매 어시스턴트입니다.
사용자의 요청을 분석해 알맞은 함수를 호출하고, 항상 친절하고 명확하게 답합니다.

- query_listings: 매물 조회 (카테고리/지역 필터, 정렬)
- boost_listing: 끌어올리기 (24시간에 한 번)
- adjust_price: 가격 조정 (0원 이하 불가)`

var Definitions = []openai.ChatCompletionToolUnionParam{
	openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        ToolQueryListings,
		Description: openai.String("매물을 조회합니다. 카테고리와 지역으로 필터링하고 정렬할 수 있습니다."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"category": map[string]interface{}{"type": "string", "description": "카테고리 (예: 전자기기, 가구, 의류)"},
				"region":   map[string]interface{}{"type": "string", "description": "지역 (예: 강남구, 서초구)"},
				"sort_by": map[string]interface{}{
					"type": "string",
					"enum": []string{"created_at", "updated_at", "last_boosted_at", "price", "boost_count"},
				},
				"sort_order": map[string]interface{}{"type": "string", "enum": []string{"ASC", "DESC"}},
			},
		},
	}),
	openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        ToolBoostListing,
		Description: openai.String("매물을 끌어올립니다. 24시간에 한 번만 가능합니다."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"listing_id": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"listing_id"},
		},
	}),
	openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        ToolAdjustPrice,
		Description: openai.String("매물의 가격을 조정합니다."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"listing_id": map[string]interface{}{"type": "integer"},
				"new_price":  map[string]interface{}{"type": "integer", "description": "새 가격 (원 단위)"},
			},
			"required": []string{"listing_id", "new_price"},
		},
	}),
}

// LLMPlanner asks an OpenAI-compatible chat completions endpoint which
// tools to call.
type LLMPlanner struct {
	client openai.Client
	model  string
}

func NewLLMPlanner(apiKey, baseURL, model string) *LLMPlanner {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultModel
	}
	return &LLMPlanner{client: openai.NewClient(opts...), model: model}
}

func (p *LLMPlanner) Plan(ctx context.Context, req models.ChatRequest) (Decision, error) {
	history := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(SystemPrompt)}
	for _, turn := range req.History {
		switch turn.Role {
		case models.RoleUser:
			history = append(history, openai.UserMessage(turn.Content))
		case models.RoleAssistant:
			history = append(history, openai.AssistantMessage(turn.Content))
		}
	}
	history = append(history, openai.UserMessage(req.Message))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    p.model,
		Messages: history,
		Tools:    Definitions,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Decision{}, errors.New("empty response from model")
	}

	msg := resp.Choices[0].Message
	d := Decision{Reply: strings.TrimSpace(msg.Content)}
	for _, tc := range msg.ToolCalls {
		call, err := toToolCall(tc.Function.Name, tc.Function.Arguments)
		if err != nil {
			return Decision{}, err
		}
		d.Calls = append(d.Calls, call)
	}
	return d, nil
}

func toToolCall(name, arguments string) (ToolCall, error) {
	args := map[string]interface{}{}
	if strings.TrimSpace(arguments) != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return ToolCall{}, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
	}
	return ToolCall{Name: name, Args: args}, nil
}
