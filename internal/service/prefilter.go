package service

import "strings"

// Keyword heuristics for mail that should never reach the classifier:
// newsletters, bounces, and auto-replies. Matching is case-insensitive over
// sender, subject and body.
var (
	senderFilterKeywords = []string{
		"no-reply",
		"noreply",
		"donotreply",
		"mailer-daemon",
		"postmaster",
		"newsletter",
		"notifications@",
		"bounce",
	}
	contentFilterKeywords = []string{
		"unsubscribe",
		"view this email in your browser",
		"delivery status notification",
		"undeliverable",
		"out of office",
		"automatic reply",
		"auto-reply",
		"autoreply",
		"this is an automated message",
	}
)

// shouldSkipInbound reports whether an inbound message is non-actionable and
// should be stored as SKIPPED without classification.
func shouldSkipInbound(from, subject, body string) bool {
	sender := strings.ToLower(from)
	for _, kw := range senderFilterKeywords {
		if strings.Contains(sender, kw) {
			return true
		}
	}
	content := strings.ToLower(subject + "\n" + body)
	for _, kw := range contentFilterKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}
