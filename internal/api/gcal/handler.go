package gcal

import (
	"net/http"
	"strings"
	"time"

	"roteiro-backend/config"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleEvent is the normalized shape the front end consumes, merging Google
// events with the internal calendar feed.
type GoogleEvent struct {
	ID                   string   `json:"id"`
	Source               string   `json:"source"`
	Title                string   `json:"title"`
	Start                string   `json:"start"`
	End                  string   `json:"end"`
	Description          string   `json:"description"`
	Location             string   `json:"location"`
	IsRecording          bool     `json:"isRecording"`
	ParticipantsInitials []string `json:"participantsInitials"`
}

// newCalendarService is swapped out in tests.
var newCalendarService = func(c *gin.Context) (*calendar.Service, error) {
	opts := []option.ClientOption{option.WithScopes(calendar.CalendarReadonlyScope)}
	if config.GOOGLE_APPLICATION_CREDENTIALS != "" {
		opts = append(opts, option.WithCredentialsFile(config.GOOGLE_APPLICATION_CREDENTIALS))
	}
	return calendar.NewService(c.Request.Context(), opts...)
}

// ------------------------------
// GET /google-calendar/events?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
//
// Read-only view over the service account's primary calendar. Credentials
// come from GOOGLE_APPLICATION_CREDENTIALS.
// ------------------------------
func GetGoogleCalendarEvents(c *gin.Context) {
	service, err := newCalendarService(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Erro de configuração do servidor: Não foi possível carregar as credenciais do Google. Verifique a variável de ambiente GOOGLE_APPLICATION_CREDENTIALS.",
			"error":   err.Error(),
		})
		return
	}

	timeMin := time.Now()
	if startDate := c.Query("startDate"); startDate != "" {
		if parsed, e := time.Parse("2006-01-02", startDate); e == nil {
			timeMin = parsed
		}
	}

	// Without an explicit end the window runs three months ahead.
	timeMax := timeMin.AddDate(0, 3, 0)
	if endDate := c.Query("endDate"); endDate != "" {
		if parsed, e := time.Parse("2006-01-02", endDate); e == nil {
			timeMax = parsed.Add(24*time.Hour - time.Millisecond)
		}
	}

	response, err := service.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(c.Request.Context()).
		Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == http.StatusForbidden {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Erro de permissão: A conta de serviço não tem permissão para acessar o calendário solicitado ou a API Google Calendar não está habilitada.",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar eventos do Google Calendar", "error": err.Error()})
		return
	}

	events := make([]GoogleEvent, 0, len(response.Items))
	for _, item := range response.Items {
		events = append(events, formatEvent(item))
	}
	c.JSON(http.StatusOK, events)
}

func formatEvent(item *calendar.Event) GoogleEvent {
	event := GoogleEvent{
		ID:                   item.Id,
		Source:               "google",
		Title:                item.Summary,
		Description:          item.Description,
		Location:             item.Location,
		ParticipantsInitials: []string{},
	}
	if event.Title == "" {
		event.Title = "(Sem título)"
	}

	if item.Start != nil {
		event.Start = item.Start.DateTime
		if event.Start == "" {
			event.Start = item.Start.Date
		}
	}
	if item.End != nil {
		event.End = item.End.DateTime
		if event.End == "" {
			event.End = item.End.Date
		}
	}

	if strings.Contains(strings.ToLower(item.Summary), "gravação") ||
		strings.Contains(strings.ToLower(item.Description), "gravação") {
		event.IsRecording = true
	}

	for _, attendee := range item.Attendees {
		if initials := attendeeInitials(attendee); initials != "" {
			event.ParticipantsInitials = append(event.ParticipantsInitials, initials)
		}
	}
	return event
}

func attendeeInitials(attendee *calendar.EventAttendee) string {
	if attendee.DisplayName != "" {
		names := strings.Fields(attendee.DisplayName)
		if len(names) > 1 {
			return strings.ToUpper(firstRune(names[0]) + firstRune(names[len(names)-1]))
		}
		if len(names) == 1 {
			return strings.ToUpper(firstRunes(names[0], 2))
		}
	}
	if attendee.Email != "" {
		return strings.ToUpper(firstRunes(attendee.Email, 2))
	}
	return ""
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
