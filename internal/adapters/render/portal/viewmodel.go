package portal

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/containerdesk/internal/domain"
)

type Page string

const (
	PageHome       Page = "home"
	PageContainers Page = "containers"
	PageHistory    Page = "history"
	PageChat       Page = "chat"
)

var Pages = []Page{PageHome, PageContainers, PageHistory, PageChat}

func ParsePage(raw string) (Page, error) {
	for _, page := range Pages {
		if string(page) == strings.ToLower(strings.TrimSpace(raw)) {
			return page, nil
		}
	}
	return "", fmt.Errorf("unknown page %q (want home, containers, history or chat)", raw)
}

const (
	fallbackClientName  = "לקוח יקר"
	fallbackStatus      = "לא ידוע"
	fallbackAddress     = "לא צוינה"
	fallbackNA          = "N/A"
	fallbackDays        = "0"
	fallbackActionType  = "הורדה"
	fallbackAction      = "פעולה"
	fallbackContainer   = "מכולה"
	fallbackDate        = "אין תאריך"
	fallbackNoAddress   = "אין כתובת"
	etaLabel            = "צפי הגעה"
	etaNotUpdated       = "טרם עודכן"
	etaContactSoon      = "יצירת קשר בקרוב"
	noActiveOrders      = "אין לך הזמנות פעילות כרגע."
	noActiveContainers  = "אין לך מכולות פעילות כרגע."
	noHistory           = "לא נמצאה היסטוריית הזמנות."
	noActiveStatusOrder = "אין הזמנה פעילה כרגע."
	noClients           = "לא נמצאו לקוחות פעילים."
	noRequests          = "אין בקשות חדשות."
)

type Header struct {
	ClientName string `json:"clientName"`
	Greeting   string `json:"greeting"`
	Clock      string `json:"clock"`
	Date       string `json:"date"`
}

func BuildHeader(session domain.Session, now time.Time) Header {
	name := session.ClientName
	if strings.TrimSpace(name) == "" {
		name = fallbackClientName
	}

	return Header{
		ClientName: name,
		Greeting:   strings.TrimSpace(domain.Greeting(now.Hour()) + " " + domain.FirstName(name)),
		Clock:      now.Format("15:04"),
		Date:       hebrewWeekday(now.Weekday()) + ", " + now.Format("02.01"),
	}
}

type ETACard struct {
	Active bool   `json:"active"`
	Label  string `json:"label"`
	Value  string `json:"value"`
}

type HomeView struct {
	Header        Header   `json:"header"`
	HasActive     bool     `json:"hasActive"`
	ContainerType string   `json:"containerType,omitempty"`
	Address       string   `json:"address,omitempty"`
	ETA           *ETACard `json:"eta,omitempty"`
	Empty         string   `json:"empty,omitempty"`
}

func BuildHome(session domain.Session, now time.Time) HomeView {
	view := HomeView{Header: BuildHeader(session, now)}

	main, ok := session.MainOrder()
	if !ok {
		view.Empty = noActiveOrders
		return view
	}

	view.HasActive = true
	view.ContainerType = orDefault(main.ContainerType, fallbackContainer)
	view.Address = orDefault(main.Address, fallbackAddress)
	view.ETA = buildETA(main)

	return view
}

func buildETA(order domain.Order) *ETACard {
	eta := strings.TrimSpace(order.ETA)
	driver := strings.TrimSpace(order.DriverName)
	if eta == "" && driver == "" {
		return &ETACard{Label: etaLabel, Value: etaNotUpdated}
	}

	card := &ETACard{Active: true, Label: etaLabel, Value: orDefault(eta, etaContactSoon)}
	if driver != "" {
		card.Label = "הנהג " + driver + " בדרך"
	}
	return card
}

type ContainerCard struct {
	ContainerID   string               `json:"containerId"`
	Address       string               `json:"address"`
	StartDate     string               `json:"startDate"`
	EndDate       string               `json:"endDate"`
	Percent       float64              `json:"percent"`
	Level         domain.ProgressLevel `json:"level"`
	DaysRemaining int                  `json:"daysRemaining"`
	Badge         domain.BadgeClass    `json:"badge"`
}

type ContainersView struct {
	Cards []ContainerCard `json:"cards"`
	Empty string          `json:"empty,omitempty"`
}

func BuildContainers(session domain.Session, now time.Time) ContainersView {
	containers := session.ActiveContainers()
	view := ContainersView{Cards: make([]ContainerCard, 0, len(containers))}
	if len(containers) == 0 {
		view.Empty = noActiveContainers
		return view
	}

	for _, order := range containers {
		percent := domain.Progress(order.StartDate, order.EndDate, now)
		view.Cards = append(view.Cards, ContainerCard{
			ContainerID:   order.ContainerID,
			Address:       orDefault(order.Address, fallbackAddress),
			StartDate:     displayDate(order.StartDate),
			EndDate:       displayDate(order.EndDate),
			Percent:       percent,
			Level:         domain.LevelFor(percent, domain.PortalThresholds),
			DaysRemaining: domain.DaysRemaining(order.StartDate, order.EndDate, now),
			Badge:         domain.BadgeFor(order.Status),
		})
	}

	return view
}

type HistoryRow struct {
	DocNumber  string `json:"docNumber"`
	Date       string `json:"date"`
	ActionType string `json:"actionType"`
	Address    string `json:"address"`
	Status     string `json:"status"`
}

type MonthCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type HistoryView struct {
	Rows   []HistoryRow `json:"rows"`
	Months []MonthCount `json:"months"`
	Empty  string       `json:"empty,omitempty"`
}

// BuildHistory lists every order and counts orders per month in the order
// months first appear.
func BuildHistory(session domain.Session) HistoryView {
	view := HistoryView{
		Rows:   make([]HistoryRow, 0, len(session.Orders)),
		Months: []MonthCount{},
	}
	if len(session.Orders) == 0 {
		view.Empty = noHistory
		return view
	}

	index := map[string]int{}
	for _, order := range session.Orders {
		view.Rows = append(view.Rows, HistoryRow{
			DocNumber:  order.DocNumber,
			Date:       displayDate(order.StartDate),
			ActionType: orDefault(order.ActionType, fallbackActionType),
			Address:    order.Address,
			Status:     orDefault(order.Status, fallbackStatus),
		})

		label := monthLabel(order.StartDate)
		if i, ok := index[label]; ok {
			view.Months[i].Count++
			continue
		}
		index[label] = len(view.Months)
		view.Months = append(view.Months, MonthCount{Label: label, Count: 1})
	}

	return view
}

type ChatView struct {
	Templates []string `json:"templates"`
}

func BuildChat() ChatView {
	return ChatView{Templates: append([]string(nil), domain.ChatTemplates...)}
}

type StatusHistoryRow struct {
	Title   string            `json:"title"`
	Date    string            `json:"date"`
	Address string            `json:"address"`
	Status  string            `json:"status"`
	Badge   domain.BadgeClass `json:"badge"`
}

type ActiveOrderView struct {
	Status       string               `json:"status"`
	Badge        domain.BadgeClass    `json:"badge"`
	Address      string               `json:"address"`
	DocNumber    string               `json:"docNumber"`
	DaysOnSite   string               `json:"daysOnSite"`
	LastAction   string               `json:"lastAction"`
	ShowProgress bool                 `json:"showProgress"`
	Percent      float64              `json:"percent"`
	Level        domain.ProgressLevel `json:"level"`
	StartDate    string               `json:"startDate,omitempty"`
	EndDate      string               `json:"endDate,omitempty"`
}

type StatusPageView struct {
	Greeting    string             `json:"greeting"`
	ClientName  string             `json:"clientName"`
	ActiveOrder *ActiveOrderView   `json:"activeOrder,omitempty"`
	NoActive    string             `json:"noActive,omitempty"`
	History     []StatusHistoryRow `json:"history"`
	Empty       string             `json:"empty,omitempty"`
}

func BuildStatusPage(page domain.StatusPage, now time.Time) StatusPageView {
	name := orDefault(page.ClientName, fallbackClientName)
	view := StatusPageView{
		Greeting:   "שלום, " + name,
		ClientName: name,
		History:    make([]StatusHistoryRow, 0, len(page.History)),
	}

	if order := page.ActiveOrder; order != nil && order.DocNumber != "" {
		active := &ActiveOrderView{
			Status:     orDefault(order.Status, fallbackStatus),
			Badge:      domain.BadgeFor(order.Status),
			Address:    orDefault(order.Address, fallbackAddress),
			DocNumber:  orDefault(order.DocNumber, fallbackNA),
			DaysOnSite: orDefault(order.DaysOnSite, fallbackDays),
			LastAction: orDefault(order.LastAction, fallbackNA),
		}
		if strings.TrimSpace(order.StartDate) != "" && strings.TrimSpace(order.EndDate) != "" {
			active.ShowProgress = true
			active.Percent = domain.Progress(order.StartDate, order.EndDate, now)
			active.Level = domain.LevelFor(active.Percent, domain.StatusPageThresholds)
			active.StartDate = order.StartDate
			active.EndDate = order.EndDate
		}
		view.ActiveOrder = active
	} else {
		view.NoActive = noActiveStatusOrder
	}

	if len(page.History) == 0 {
		view.Empty = noHistory
	}
	for _, entry := range page.History {
		view.History = append(view.History, StatusHistoryRow{
			Title:   orDefault(entry.Action, fallbackAction) + " - תעודה: " + orDefault(entry.DocNumber, fallbackNA),
			Date:    orDefault(entry.Date, fallbackDate),
			Address: orDefault(entry.Address, fallbackNoAddress),
			Status:  orDefault(entry.Status, fallbackStatus),
			Badge:   domain.BadgeFor(entry.Status),
		})
	}

	return view
}

type AdminClientRow struct {
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
	Address    string `json:"address"`
	DaysOnSite string `json:"daysOnSite"`
}

type AdminClientsView struct {
	Rows  []AdminClientRow `json:"rows"`
	Empty string           `json:"empty,omitempty"`
}

func BuildAdminClients(clients []domain.ClientSummary) AdminClientsView {
	view := AdminClientsView{Rows: make([]AdminClientRow, 0, len(clients))}
	if len(clients) == 0 {
		view.Empty = noClients
	}
	for _, client := range clients {
		view.Rows = append(view.Rows, AdminClientRow{
			ClientID:   string(client.ClientID),
			ClientName: client.ClientName,
			Address:    client.Address,
			DaysOnSite: orDefault(client.DaysOnSite, fallbackDays),
		})
	}
	return view
}

type AdminRequestRow struct {
	Title string `json:"title"`
	Meta  string `json:"meta"`
	Swap  bool   `json:"swap"`
}

type AdminRequestsView struct {
	Rows  []AdminRequestRow `json:"rows"`
	Empty string            `json:"empty,omitempty"`
}

func BuildAdminRequests(requests []domain.RequestLogEntry, loc *time.Location) AdminRequestsView {
	if loc == nil {
		loc = time.Local
	}

	view := AdminRequestsView{Rows: make([]AdminRequestRow, 0, len(requests))}
	if len(requests) == 0 {
		view.Empty = noRequests
	}
	for _, request := range requests {
		when := fallbackDate
		if !request.Timestamp.IsZero() {
			when = request.Timestamp.In(loc).Format("2.1.2006, 15:04:05")
		}
		view.Rows = append(view.Rows, AdminRequestRow{
			Title: "בקשת " + request.Type,
			Meta:  request.ClientName + " • " + when,
			Swap:  request.Type == domain.RequestSwap.Label(),
		})
	}
	return view
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func displayDate(raw string) string {
	parsed, ok := domain.ParseSheetDate(raw)
	if !ok {
		return fallbackDate
	}
	return parsed.Format("2.1.2006")
}

var hebrewMonths = [...]string{"ינו׳", "פבר׳", "מרץ", "אפר׳", "מאי", "יוני", "יולי", "אוג׳", "ספט׳", "אוק׳", "נוב׳", "דצמ׳"}

func monthLabel(raw string) string {
	parsed, ok := domain.ParseSheetDate(raw)
	if !ok {
		return fallbackDate
	}
	return fmt.Sprintf("%s %s", hebrewMonths[parsed.Month()-1], parsed.Format("06"))
}

var hebrewWeekdays = [...]string{"יום ראשון", "יום שני", "יום שלישי", "יום רביעי", "יום חמישי", "יום שישי", "יום שבת"}

func hebrewWeekday(day time.Weekday) string {
	return hebrewWeekdays[day]
}
