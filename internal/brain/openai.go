package brain

import (
	"context"
	"fmt"
	"log"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/antoniostano/shakti/internal/memory"
	"github.com/antoniostano/shakti/internal/tools"
)

const defaultReasonerModel = "gpt-4o-mini"

// OpenAIAdapter drives the chat completions API with the tool catalog
// attached. A turn costs at most two round trips: one that may request a
// tool, and one that folds the dispatched result into the final reply.
type OpenAIAdapter struct {
	client     openai.Client
	model      string
	dispatcher Dispatcher
}

func NewOpenAIAdapter(apiKey, model string, dispatcher Dispatcher) *OpenAIAdapter {
	if model == "" {
		model = defaultReasonerModel
	}
	return &OpenAIAdapter{
		client:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:      model,
		dispatcher: dispatcher,
	}
}

func (a *OpenAIAdapter) Respond(ctx context.Context, req Request) (Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages: conversationMessages(req),
		Model:    openai.ChatModel(a.model),
		Tools:    catalogParams(a.dispatcher.ListTools()),
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0].Message
	if len(choice.ToolCalls) == 0 {
		return Response{FinalText: choice.Content}, nil
	}

	call := choice.ToolCalls[0]
	result := a.dispatcher.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
	log.Printf("brain: turn=%s tool=%s resolved", req.TurnID, call.Function.Name)

	params.Messages = append(params.Messages, choice.ToParam())
	params.Messages = append(params.Messages, openai.ToolMessage(result, call.ID))

	final, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("chat completion after tool %s: %w", call.Function.Name, err)
	}
	if len(final.Choices) == 0 {
		return Response{}, fmt.Errorf("chat completion after tool %s returned no choices", call.Function.Name)
	}

	return Response{
		FinalText:  final.Choices[0].Message.Content,
		ToolName:   call.Function.Name,
		ToolResult: result,
	}, nil
}

// conversationMessages prefixes the persona prompt and maps the threaded
// memory entries to their provider roles.
func conversationMessages(req Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	for _, m := range req.Messages {
		switch m.Role {
		case memory.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	return messages
}

func catalogParams(catalog []tools.Tool) []openai.ChatCompletionToolUnionParam {
	params := make([]openai.ChatCompletionToolUnionParam, 0, len(catalog))
	for _, t := range catalog {
		properties := make(map[string]any, len(t.Properties))
		for name, prop := range t.Properties {
			properties[name] = propertySchema(prop)
		}
		params = append(params, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openai.String(t.Description),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": properties,
				"required":   t.Required,
			},
		}))
	}
	return params
}

func propertySchema(p tools.Property) map[string]any {
	schema := map[string]any{
		"type":        p.Type,
		"description": p.Description,
	}
	if len(p.Enum) > 0 {
		schema["enum"] = p.Enum
	}
	if p.Items != nil {
		schema["items"] = propertySchema(*p.Items)
	}
	return schema
}
