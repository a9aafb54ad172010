package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSkipInbound(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		subject string
		body    string
		skip    bool
	}{
		{"plain demo request", "pat@example.com", "Demo please", "Can I see the product?", false},
		{"no-reply sender", "no-reply@service.example.com", "Your receipt", "Thanks for your order", true},
		{"newsletter sender", "newsletter@blog.example.com", "This week", "News inside", true},
		{"mailer daemon", "mailer-daemon@mail.example.com", "Returned mail", "Message bounced", true},
		{"unsubscribe footer", "pat@example.com", "Offer", "Great deal! Click to unsubscribe.", true},
		{"out of office", "pat@example.com", "Out of office", "I am away until Monday", true},
		{"bounce notice", "pat@example.com", "Delivery Status Notification", "could not be delivered", true},
		{"auto reply", "pat@example.com", "Automatic reply: Demo please", "I'll get back to you", true},
		{"keyword in uppercase", "PAT@EXAMPLE.COM", "AUTOMATIC REPLY", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.skip, shouldSkipInbound(tt.from, tt.subject, tt.body))
		})
	}
}
