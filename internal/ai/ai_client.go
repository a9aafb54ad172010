package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"meetingbot/internal/config"
	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/service"
	"meetingbot/internal/slots"
)

type aiClient struct {
	provider       string
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	calendarClient service.CalendarClient
	finder         *slots.Finder
	searchWindow   time.Duration
	logger         *logger.Logger
}

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"
)

// NewAIClient builds the classifier collaborator. It owns slot resolution:
// on a positive classification it queries the calendar for busy intervals
// and runs the slot finder itself, so intake only consumes the result.
func NewAIClient(apiKey string, calendarClient service.CalendarClient, finder *slots.Finder, searchWindow time.Duration, logger *logger.Logger) service.Classifier {
	provider := config.GetEnv("AI_PROVIDER", ProviderOpenAI)

	return &aiClient{
		provider:       provider,
		apiKey:         apiKey,
		baseURL:        getBaseURL(provider),
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		calendarClient: calendarClient,
		finder:         finder,
		searchWindow:   searchWindow,
		logger:         logger,
	}
}

func getBaseURL(provider string) string {
	switch provider {
	case ProviderDeepSeek:
		return "https://api.deepseek.com"
	case ProviderGemini:
		return "https://generativelanguage.googleapis.com/v1beta"
	default:
		return "https://api.openai.com/v1"
	}
}

func getModel(provider string) string {
	switch provider {
	case ProviderDeepSeek:
		return "deepseek-chat"
	case ProviderGemini:
		return "gemini-2.0-flash-lite"
	default:
		return "gpt-4o"
	}
}

// OpenAI/DeepSeek API request/response structures
type chatCompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Gemini API request/response structures
type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content struct {
		Parts []geminiPart `json:"parts"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

// classifyResult is the raw shape the model is asked to return for an
// inbound email. It is validated before it becomes a model.Classification.
type classifyResult struct {
	IsDemoRequest   bool    `json:"is_demo_request"`
	Confidence      float64 `json:"confidence"`
	ContactName     string  `json:"contact_name"`
	ContactEmail    string  `json:"contact_email"`
	ResponseSubject string  `json:"response_subject"`
}

// replyResult is the raw shape for resolving a reply.
type replyResult struct {
	CreateEvent bool   `json:"create_event"`
	SlotIndex   *int   `json:"slot_index"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

func (a *aiClient) ClassifyInbound(ctx context.Context, user *model.User, email *model.EmailRecord, sendAt time.Time) (*model.Classification, error) {
	prompt := fmt.Sprintf(`You triage inbound sales email. Decide whether the email below is a request for a product demo or sales meeting.

Respond with ONLY a JSON object, no prose, shaped exactly like:
{"is_demo_request": bool, "confidence": number between 0 and 1, "contact_name": string, "contact_email": string, "response_subject": string}

contact_name and contact_email are the sender's, taken from the email. response_subject is a reply subject line (prefix "Re: " onto the original subject).

From: %s
Subject: %s

%s`, email.From, email.Subject, email.Body)

	out, err := a.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to classify email: %w", err)
	}

	var raw classifyResult
	if err := json.Unmarshal(extractJSON(out), &raw); err != nil {
		return nil, fmt.Errorf("unparseable classification %q: %w", out, err)
	}
	if raw.Confidence < 0 {
		raw.Confidence = 0
	}
	if raw.Confidence > 1 {
		raw.Confidence = 1
	}

	classification := &model.Classification{
		IsDemoRequest:   raw.IsDemoRequest,
		Confidence:      raw.Confidence,
		ContactName:     raw.ContactName,
		ContactEmail:    raw.ContactEmail,
		ResponseSubject: raw.ResponseSubject,
	}
	if !classification.IsDemoRequest {
		a.logger.Info("Message", email.MessageID, "classified as not a demo request")
		return classification, nil
	}

	a.logger.Info("Message", email.MessageID, "classified as demo request, confidence:", raw.Confidence)

	proposed, err := a.proposeSlots(ctx, user, sendAt)
	if err != nil {
		return nil, err
	}
	classification.Slots = proposed
	if len(proposed) == 0 {
		return classification, nil
	}

	body, err := a.draftResponseBody(ctx, user, raw.ContactName, email.Body, proposed)
	if err != nil {
		return nil, err
	}
	classification.ResponseBody = body
	return classification, nil
}

func (a *aiClient) proposeSlots(ctx context.Context, user *model.User, sendAt time.Time) ([]model.TimeSlot, error) {
	windowEnd := sendAt.Add(a.searchWindow)
	busy, err := a.calendarClient.ListBusyIntervals(ctx, user.Email, sendAt, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to look up busy intervals: %w", err)
	}
	return a.finder.FindSlots(sendAt, sendAt, windowEnd, busy), nil
}

func (a *aiClient) draftResponseBody(ctx context.Context, user *model.User, contactName, emailBody string, proposed []model.TimeSlot) (string, error) {
	labels := make([]string, len(proposed))
	for i, s := range proposed {
		labels[i] = "- " + s.Label
	}

	prompt := fmt.Sprintf(`Write a short, friendly reply from %s offering a product demo. Thank the sender, then offer exactly these times as options, keeping their wording:

%s

Ask them to pick one or suggest another time. Sign off as %s. Address the recipient as %s if a name is given. Respond with the email body only, no subject line, no JSON.

Original email for tone:
%s`, user.Name, strings.Join(labels, "\n"), user.Name, contactName, emailBody)

	body, err := a.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to draft response: %w", err)
	}
	return strings.TrimSpace(body), nil
}

func (a *aiClient) ResolveReply(ctx context.Context, user *model.User, replyBody string, proposed []model.TimeSlot) (*model.ReplyDecision, error) {
	labels := make([]string, len(proposed))
	for i, s := range proposed {
		labels[i] = fmt.Sprintf("%d: %s (%s to %s)", i, s.Label, s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
	}

	prompt := fmt.Sprintf(`A prospect was offered these meeting slots:

%s

They replied:

%s

Decide whether they accepted a meeting. Respond with ONLY a JSON object shaped exactly like:
{"create_event": bool, "slot_index": number or null, "start": "RFC3339 or empty", "end": "RFC3339 or empty"}

slot_index is the accepted slot's number above, or null if they proposed a different specific time (put it in start/end) or did not accept. If their intent is ambiguous, set create_event to false.`,
		strings.Join(labels, "\n"), replyBody)

	out, err := a.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reply: %w", err)
	}

	var raw replyResult
	if err := json.Unmarshal(extractJSON(out), &raw); err != nil {
		return nil, fmt.Errorf("unparseable reply decision %q: %w", out, err)
	}

	decision := &model.ReplyDecision{
		CreateEvent: raw.CreateEvent,
		SlotIndex:   -1,
	}
	if raw.SlotIndex != nil {
		decision.SlotIndex = *raw.SlotIndex
	}
	if raw.Start != "" {
		if t, err := time.Parse(time.RFC3339, raw.Start); err == nil {
			decision.Start = t
		}
	}
	if raw.End != "" {
		if t, err := time.Parse(time.RFC3339, raw.End); err == nil {
			decision.End = t
		}
	}

	a.logger.Info("Resolved reply for", user.Email, "- create event:", decision.CreateEvent)
	return decision, nil
}

// complete sends one prompt to the configured provider and returns the text.
func (a *aiClient) complete(ctx context.Context, prompt string) (string, error) {
	if a.provider == ProviderGemini {
		return a.completeGemini(ctx, prompt)
	}
	return a.completeOpenAIStyle(ctx, prompt)
}

func (a *aiClient) completeOpenAIStyle(ctx context.Context, prompt string) (string, error) {
	request := chatCompletionRequest{
		Model: getModel(a.provider),
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		MaxTokens: 600,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := a.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from AI")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func (a *aiClient) completeGemini(ctx context.Context, prompt string) (string, error) {
	request := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, getModel(a.provider), a.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	return strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text), nil
}

// extractJSON strips markdown fences some models wrap around JSON output.
func extractJSON(s string) []byte {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	if start := strings.Index(s, "{"); start > 0 {
		s = s[start:]
	}
	return []byte(s)
}
