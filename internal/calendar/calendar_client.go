package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"meetingbot/internal/logger"
	"meetingbot/internal/model"
	"meetingbot/internal/service"
	"meetingbot/internal/slots"
)

const primaryCalendar = "primary"

type calendarClient struct {
	client *calendar.Service
	logger *logger.Logger
}

func NewCalendarClient(accessToken string, logger *logger.Logger) (service.CalendarClient, error) {
	httpClient := &http.Client{
		Transport: &oauth2Transport{token: accessToken},
	}

	calendarService, err := calendar.NewService(context.Background(), option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &calendarClient{
		client: calendarService,
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

// ListBusyIntervals queries free/busy on the primary calendar for the window.
func (c *calendarClient) ListBusyIntervals(ctx context.Context, userEmail string, from, to time.Time) ([]slots.Interval, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: primaryCalendar}},
	}

	resp, err := c.client.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query free/busy: %w", err)
	}

	var busy []slots.Interval
	for _, cal := range resp.Calendars {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				c.logger.Error("Unparseable busy period start:", period.Start, err)
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				c.logger.Error("Unparseable busy period end:", period.End, err)
				continue
			}
			busy = append(busy, slots.Interval{Start: start, End: end})
		}
	}

	c.logger.Debug("Found", len(busy), "busy intervals for", userEmail)
	return busy, nil
}

// CreateEvent inserts the meeting on the primary calendar with the attendee
// invited, and returns the provider's event and calendar ids.
func (c *calendarClient) CreateEvent(ctx context.Context, userEmail string, event *model.CalendarEventRecord) (string, string, error) {
	summary := "Product demo"
	if event.AttendeeName != "" {
		summary = fmt.Sprintf("Product demo with %s", event.AttendeeName)
	}

	inserted, err := c.client.Events.Insert(primaryCalendar, &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: event.StartTime.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndTime.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: event.AttendeeEmail, DisplayName: event.AttendeeName},
		},
	}).Context(ctx).SendUpdates("all").Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to insert calendar event: %w", err)
	}

	c.logger.Info("Created calendar event", inserted.Id, "for", event.AttendeeEmail)
	return inserted.Id, primaryCalendar, nil
}
