package domain

import (
	"strings"
	"time"
)

type ClientSummary struct {
	ClientID   ClientID
	ClientName string
	Address    string
	DaysOnSite string
}

type RequestLogEntry struct {
	Type       string
	ClientName string
	Timestamp  time.Time
}

type NotificationTemplate struct {
	Title   string
	Subject string
	Text    string
}

const clientNamePlaceholder = "{{clientName}}"

var NotificationTemplates = []NotificationTemplate{
	{Title: "עדכון לגבי הזמנה", Subject: "עדכון לגבי הזמנתך", Text: "שלום {{clientName}}, יש לנו עדכון בנוגע להזמנתך."},
	{Title: "נהג בדרך", Subject: "הנהג בדרך אליך!", Text: "שלום {{clientName}}, הנהג בדרך אליך עם המכולה. צפי הגעה בקרוב."},
	{Title: "תזכורת לפינוי", Subject: "תזכורת לפינוי מכולה", Text: "שלום {{clientName}}, תזכורת קטנה שהמכולה צפויה להתפנות בקרוב. נשמח לעדכון."},
}

// Fill returns the notification title and body for a client.
func (t NotificationTemplate) Fill(clientName string) (title, body string) {
	return t.Subject, strings.Replace(t.Text, clientNamePlaceholder, clientName, 1)
}
