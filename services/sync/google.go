package sync

import (
	"context"
	"fmt"
	"time"

	"mentorhub/config"
	"mentorhub/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarClient implements ProviderClient against the Google Calendar
// API. Token refresh happens transparently inside the oauth2 token source on
// every authenticated call.
type GoogleCalendarClient struct {
	oauth *oauth2.Config
}

// NewGoogleCalendarClient builds the client from the configured OAuth
// credentials.
func NewGoogleCalendarClient() *GoogleCalendarClient {
	return &GoogleCalendarClient{
		oauth: &oauth2.Config{
			ClientID:     config.AppConfig.GoogleClientID,
			ClientSecret: config.AppConfig.GoogleClientSecret,
			RedirectURL:  config.AppConfig.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				gcal.CalendarReadonlyScope,
				gcal.CalendarEventsScope,
			},
		},
	}
}

// AuthCodeURL builds the consent URL carrying the given state.
func (g *GoogleCalendarClient) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token set.
func (g *GoogleCalendarClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

func (g *GoogleCalendarClient) service(ctx context.Context, integ *models.UserIntegration) (*gcal.Service, error) {
	token := &oauth2.Token{
		AccessToken:  integ.AccessToken,
		RefreshToken: integ.RefreshToken,
		Expiry:       integ.TokenExpiry,
	}
	ts := g.oauth.TokenSource(ctx, token)
	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client: %w", err)
	}
	return svc, nil
}

func (g *GoogleCalendarClient) ListEvents(ctx context.Context, integ *models.UserIntegration, start, end time.Time) ([]ProviderEvent, error) {
	svc, err := g.service(ctx, integ)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Events.List("primary").
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("google calendar list failed: %w", err)
	}

	events := make([]ProviderEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, ProviderEvent{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
			Start:       parseEventTime(item.Start),
			End:         parseEventTime(item.End),
			MeetLink:    item.HangoutLink,
		})
	}
	return events, nil
}

// CreateEvent inserts the event into the user's primary calendar with a
// generated conferencing link request, returning the provider event id.
func (g *GoogleCalendarClient) CreateEvent(ctx context.Context, integ *models.UserIntegration, ev *ProviderEvent) (string, error) {
	svc, err := g.service(ctx, integ)
	if err != nil {
		return "", err
	}

	item := &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: ev.End.Format(time.RFC3339)},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: uuid.New().String(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := svc.Events.Insert("primary", item).ConferenceDataVersion(1).Do()
	if err != nil {
		return "", fmt.Errorf("google calendar insert failed: %w", err)
	}
	return created.Id, nil
}

func parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
