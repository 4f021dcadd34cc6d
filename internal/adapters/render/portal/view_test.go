package portal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/containerdesk/internal/domain"
)

func TestRenderContainersPage(t *testing.T) {
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	output, err := Render(PageContainers, davidSession(), RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "צהריים טובים, דוד")
	assert.Contains(t, output, "מכולה C-1")
	assert.Contains(t, output, "50%")
	assert.Contains(t, output, "נשארו כ-5 ימים לסיום")
	assert.Contains(t, output, "[")
}

func TestRenderEveryPageToleratesEmptySession(t *testing.T) {
	for _, page := range Pages {
		t.Run(string(page), func(t *testing.T) {
			output, err := Render(page, domain.Session{}, RenderOptions{Now: time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)})
			require.NoError(t, err)
			assert.Contains(t, output, "לקוח יקר")
		})
	}
}

func TestRenderHistoryChart(t *testing.T) {
	session := domain.NewSession("c-1", domain.ClientData{
		ClientName: "דנה",
		Orders: []domain.Order{
			{DocNumber: "1", StartDate: "02/01/2024"},
			{DocNumber: "2", StartDate: "03/01/2024"},
		},
	})

	output := PageView(PageHistory, session, RenderOptions{Now: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)})

	assert.Contains(t, output, "כמות הזמנות")
	assert.Contains(t, output, "ינו׳ 24")
	assert.Contains(t, output, "█")
}

func TestRenderChatListsTemplates(t *testing.T) {
	output := PageView(PageChat, davidSession(), RenderOptions{})

	for _, template := range domain.ChatTemplates {
		assert.Contains(t, output, template)
	}
}

func TestRenderStatusPage(t *testing.T) {
	output, err := RenderStatusPage(domain.StatusPage{
		ClientName:  "דוד",
		ActiveOrder: &domain.Order{DocNumber: "501", Status: "פתוח", StartDate: "01/01/2024", EndDate: "10/01/2024"},
	}, RenderOptions{Now: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	assert.Contains(t, output, "שלום, דוד")
	assert.Contains(t, output, "מספר תעודה: 501")
	assert.Contains(t, output, "50%")
	assert.Contains(t, output, "לא נמצאה היסטוריית הזמנות.")
}

func TestRenderAdminViews(t *testing.T) {
	clients, err := RenderAdminClients([]domain.ClientSummary{{ClientID: "17", ClientName: "דנה", Address: "הרצל 1", DaysOnSite: "3"}})
	require.NoError(t, err)
	assert.Contains(t, clients, "clients: 1")
	assert.Contains(t, clients, "הרצל 1")

	requests, err := RenderAdminRequests(nil, RenderOptions{Location: time.UTC})
	require.NoError(t, err)
	assert.Contains(t, requests, "אין בקשות חדשות.")
}

func TestRenderProgressBarBounds(t *testing.T) {
	s := newStyles()

	assert.Empty(t, renderProgressBar(50, "success", 0, s))
	assert.Contains(t, renderProgressBar(150, "danger", 4, s), "====")
	assert.Contains(t, renderProgressBar(-5, "success", 4, s), "----")
}
