package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/service"
)

type gmailClient struct {
	client *gmail.Service
	logger *logger.Logger
}

func NewGmailClient(accessToken string, logger *logger.Logger) (service.MailClient, error) {
	httpClient := &http.Client{
		Transport: &oauth2Transport{token: accessToken},
	}

	gmailService, err := gmail.NewService(context.Background(), option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &gmailClient{
		client: gmailService,
		logger: logger,
	}, nil
}

type oauth2Transport struct {
	token string
}

func (t *oauth2Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// ListMessagesAfter fetches up to maxResults messages received after the
// cursor timestamp, as unsaved EmailRecords. Direction and owning user are
// left for intake to decide.
func (g *gmailClient) ListMessagesAfter(ctx context.Context, userEmail string, maxResults int64, after time.Time) ([]*model.EmailRecord, error) {
	user := "me"
	call := g.client.Users.Messages.List(user).MaxResults(maxResults)
	if !after.IsZero() {
		call = call.Q(fmt.Sprintf("after:%d", after.Unix()))
	}
	list, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var records []*model.EmailRecord
	for _, msg := range list.Messages {
		message, err := g.client.Users.Messages.Get(user, msg.Id).Format("full").Do()
		if err != nil {
			g.logger.Error("Failed to get message:", msg.Id, err)
			continue
		}

		subject := message.Snippet
		from := ""
		to := ""
		headerMessageID := ""
		for _, header := range message.Payload.Headers {
			switch header.Name {
			case "Subject":
				subject = header.Value
			case "From":
				from = header.Value
			case "To":
				to = header.Value
			case "Message-ID", "Message-Id":
				headerMessageID = header.Value
			}
		}

		body := extractBody(message.Payload)
		receivedAt := time.Unix(message.InternalDate/1000, 0)

		record := model.NewEmailRecord("", msg.Id, message.ThreadId, from, to, subject, body, receivedAt)
		record.HeaderMessageID = headerMessageID
		records = append(records, record)
	}

	g.logger.Info("Fetched", len(records), "messages for", userEmail)
	return records, nil
}

// extractBody prefers the text/plain part and falls back to text/html,
// decoding recursively through multipart nesting.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if len(payload.Parts) == 0 {
		return decodePart(payload)
	}

	var htmlBody string
	for _, part := range payload.Parts {
		switch {
		case part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "":
			if text := decodePart(part); text != "" {
				return text
			}
		case part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "":
			if htmlBody == "" {
				htmlBody = decodePart(part)
			}
		case len(part.Parts) > 0:
			if nested := extractBody(part); nested != "" {
				return nested
			}
		}
	}
	return htmlBody
}

func decodePart(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}
	decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// SendReply sends a drafted response threaded onto the original
// conversation via the thread id and In-Reply-To/References headers.
func (g *gmailClient) SendReply(ctx context.Context, userEmail string, reply *service.OutgoingReply) (string, error) {
	user := "me"

	var raw strings.Builder
	fmt.Fprintf(&raw, "From: %s\r\n", userEmail)
	fmt.Fprintf(&raw, "To: %s\r\n", reply.To)
	fmt.Fprintf(&raw, "Subject: %s\r\n", reply.Subject)
	if reply.InReplyTo != "" {
		fmt.Fprintf(&raw, "In-Reply-To: %s\r\n", reply.InReplyTo)
		fmt.Fprintf(&raw, "References: %s\r\n", reply.InReplyTo)
	}
	raw.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	raw.WriteString("\r\n")
	raw.WriteString(reply.Body)

	message := &gmail.Message{
		Raw:      base64.URLEncoding.EncodeToString([]byte(raw.String())),
		ThreadId: reply.ThreadID,
	}

	sent, err := g.client.Users.Messages.Send(user, message).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send reply: %w", err)
	}

	g.logger.Info("Sent reply", sent.Id, "on thread", reply.ThreadID)
	return sent.Id, nil
}
