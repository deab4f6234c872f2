package adfilter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tokenizer "github.com/sandwich-go/gpt3-encoder"
	"github.com/sashabaranov/go-openai"

	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

// openAIChecker asks an LLM for a second opinion on messages the rule checks
// already flagged. Used as a veto only, it never promotes a clean message to spam.
type openAIChecker struct {
	client openAIClient
	params OpenAIConfig
}

// OpenAIConfig contains parameters for the openai advisor.
type OpenAIConfig struct {
	MaxTokensResponse int // hard limit for the number of tokens in the response
	MaxTokensRequest  int // max request length in tokens
	MaxSymbolsRequest int // fallback max request length in symbols, if tokenizer failed
	Model             string
	SystemPrompt      string
	Timeout           time.Duration // per-request timeout, no timeout if zero
}

//go:generate moq --out mocks/openai_client.go --pkg mocks --skip-ensure --with-resets . openAIClient:OpenAIClientMock

type openAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const defaultAdPrompt = `I'll give you a message from a group chat and you will return a json with three fields: ` +
	`{"ad": true/false, "reason": "why this is an advertisement", "confidence": 1-100}. ` +
	`Advertisement means unsolicited promotion: selling goods or services, recruiting into paid schemes, ` +
	`"contact me on wechat/telegram" solicitations and similar. The message may be in any language, ` +
	`including Chinese. Set ad:true only if confidence is above 80.`

type advisorResponse struct {
	IsAd       bool   `json:"ad"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
}

// newOpenAIChecker makes an advisor with the given client and params.
func newOpenAIChecker(client openAIClient, params OpenAIConfig) *openAIChecker {
	if params.SystemPrompt == "" {
		params.SystemPrompt = defaultAdPrompt
	}
	if params.MaxTokensResponse == 0 {
		params.MaxTokensResponse = 1024
	}
	if params.MaxTokensRequest == 0 {
		params.MaxTokensRequest = 2048
	}
	if params.MaxSymbolsRequest == 0 {
		params.MaxSymbolsRequest = 8192
	}
	if params.Model == "" {
		params.Model = "gpt-4o-mini"
	}
	return &openAIChecker{client: client, params: params}
}

// check asks the model if the message is an ad. The response Error field is
// set on transport or parse failures, callers decide what a failure means.
func (o *openAIChecker) check(msg string) modcheck.Response {
	if o == nil || o.client == nil {
		return modcheck.Response{Name: "openai", Spam: false, Details: "advisor disabled"}
	}

	resp, err := o.sendRequest(msg)
	if err != nil {
		return modcheck.Response{Name: "openai", Spam: false, Details: "advisor failed", Error: err}
	}

	details := strings.TrimSuffix(resp.Reason, ".")
	if details == "" {
		details = "no reason given"
	}
	return modcheck.Response{Name: "openai", Spam: resp.IsAd,
		Details: fmt.Sprintf("%s, confidence: %d%%", details, resp.Confidence)}
}

func (o *openAIChecker) sendRequest(msg string) (response advisorResponse, err error) {
	ctx := context.Background()
	if o.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.params.Timeout)
		defer cancel()
	}

	data := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: o.params.SystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: o.reduceRequest(msg)},
	}

	resp, err := o.client.CreateChatCompletion(ctx,
		openai.ChatCompletionRequest{Model: o.params.Model, MaxTokens: o.params.MaxTokensResponse, Messages: data})
	if err != nil {
		return advisorResponse{}, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return advisorResponse{}, fmt.Errorf("no choices in openai response")
	}

	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &response); err != nil {
		return advisorResponse{}, fmt.Errorf("can't unmarshal openai response: %w", err)
	}
	return response, nil
}

// reduceRequest trims the message to fit the request token budget, falling
// back to a symbol cut if the tokenizer fails.
func (o *openAIChecker) reduceRequest(text string) string {
	cutSymbols := func(text string) string {
		if len(text) <= o.params.MaxSymbolsRequest {
			return text
		}
		return text[:o.params.MaxSymbolsRequest]
	}

	encoder, err := tokenizer.NewEncoder()
	if err != nil {
		return cutSymbols(text)
	}
	tokens, err := encoder.Encode(text)
	if err != nil {
		return cutSymbols(text)
	}
	if len(tokens) <= o.params.MaxTokensRequest {
		return text
	}
	return encoder.Decode(tokens[:o.params.MaxTokensRequest])
}
