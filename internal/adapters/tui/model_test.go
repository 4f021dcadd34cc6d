package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portalview "github.com/bnema/containerdesk/internal/adapters/render/portal"
	"github.com/bnema/containerdesk/internal/application"
	"github.com/bnema/containerdesk/internal/domain"
)

type fakePortal struct {
	mu       sync.Mutex
	reloads  int
	requests []domain.RequestKind
	messages []string
	err      error
}

func (f *fakePortal) Reload(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	return f.err
}

func (f *fakePortal) RequestService(_ context.Context, kind domain.RequestKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, kind)
	return f.err
}

func (f *fakePortal) SendChatMessage(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return f.err
}

func testSession() domain.Session {
	return domain.NewSession("c-1", domain.ClientData{
		ClientName: "דוד לוי",
		Orders: []domain.Order{{
			Status:      "פתוח",
			Address:     "רחוב 1",
			ContainerID: "C-1",
			StartDate:   "01/01/2024",
			EndDate:     "10/01/2024",
		}},
	})
}

func newTestModel(p Portal) model {
	return newModel(context.Background(), p, testSession(), func() time.Time {
		return time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	updated, ok := next.(model)
	require.True(t, ok)
	return updated, cmd
}

func TestPageNavigation(t *testing.T) {
	m := newTestModel(&fakePortal{})

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, portalview.PageContainers, m.page)

	m, _ = update(t, m, key("shift+tab"))
	m, _ = update(t, m, key("shift+tab"))
	assert.Equal(t, portalview.PageChat, m.page)

	m, _ = update(t, m, key("3"))
	assert.Equal(t, portalview.PageHistory, m.page)
}

func TestSwapKeyDispatchesRequest(t *testing.T) {
	portal := &fakePortal{}
	m := newTestModel(portal)

	_, cmd := update(t, m, key("s"))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, actionDoneMsg{control: application.ControlSwap}, msg)
	assert.Equal(t, []domain.RequestKind{domain.RequestSwap}, portal.requests)
}

func TestPendingControlIsNotDispatchedTwice(t *testing.T) {
	portal := &fakePortal{}
	m := newTestModel(portal)

	m, _ = update(t, m, transitionMsg{Control: application.ControlRemoval, From: application.StateIdle, To: application.StateSubmitting})
	assert.Contains(t, m.View(), "שולח: פינוי")

	_, cmd := update(t, m, key("x"))
	assert.Nil(t, cmd)

	m, _ = update(t, m, transitionMsg{Control: application.ControlRemoval, From: application.StateSucceeded, To: application.StateIdle})
	assert.NotContains(t, m.View(), "שולח")
}

func TestChatTemplateSelection(t *testing.T) {
	portal := &fakePortal{}
	m := newTestModel(portal)

	m, _ = update(t, m, key("4"))
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	assert.Contains(t, m.View(), "› "+domain.ETAQuestion)

	_, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{domain.ETAQuestion}, portal.messages)
}

func TestChatFreeText(t *testing.T) {
	portal := &fakePortal{}
	m := newTestModel(portal)

	m, _ = update(t, m, key("4"))
	m, _ = update(t, m, key("i"))
	require.True(t, m.input.Focused())

	m, _ = update(t, m, key("שלום"))
	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"שלום"}, portal.messages)
	assert.Empty(t, m.input.Value())

	m, _ = update(t, m, key("esc"))
	assert.False(t, m.input.Focused())
}

func TestNoticeShowsToastUntilExpired(t *testing.T) {
	m := newTestModel(&fakePortal{})

	m, cmd := update(t, m, noticeMsg{Kind: domain.NoticeSuccess, Message: "הבקשה נשלחה בהצלחה!"})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "הבקשה נשלחה בהצלחה!")

	m, _ = update(t, m, toastExpiredMsg{id: m.toastID})
	assert.NotContains(t, m.View(), "הבקשה נשלחה בהצלחה!")
}

func TestStaleToastExpiryKeepsNewerToast(t *testing.T) {
	m := newTestModel(&fakePortal{})

	m, _ = update(t, m, noticeMsg{Kind: domain.NoticeInfo, Message: "first"})
	stale := m.toastID
	m, _ = update(t, m, noticeMsg{Kind: domain.NoticeInfo, Message: "second"})

	m, _ = update(t, m, toastExpiredMsg{id: stale})
	assert.Contains(t, m.View(), "second")
}

func TestUndispatchedErrorBecomesToast(t *testing.T) {
	m := newTestModel(&fakePortal{})

	m, _ = update(t, m, actionDoneMsg{control: application.ControlChat, err: errors.New("message is empty")})
	assert.Contains(t, m.View(), "message is empty")
}

func TestDispatcherFailureIsNotReportedTwice(t *testing.T) {
	m := newTestModel(&fakePortal{})

	m, _ = update(t, m, transitionMsg{Control: application.ControlSwap, To: application.StateSubmitting})
	m, _ = update(t, m, transitionMsg{Control: application.ControlSwap, To: application.StateFailed})
	m, _ = update(t, m, transitionMsg{Control: application.ControlSwap, To: application.StateIdle})

	m, cmd := update(t, m, actionDoneMsg{control: application.ControlSwap, err: domain.ErrNetwork})
	assert.Nil(t, cmd)
	assert.Nil(t, m.toast)
}

func TestRevokedSessionQuits(t *testing.T) {
	m := newTestModel(&fakePortal{})

	m, cmd := update(t, m, sessionMsg{session: domain.Session{}})
	require.NotNil(t, cmd)
	assert.ErrorIs(t, m.err, domain.ErrClientNotFound)
}

func TestSessionUpdateRerenders(t *testing.T) {
	m := newTestModel(&fakePortal{})
	m, _ = update(t, m, key("2"))

	next := domain.NewSession("c-1", domain.ClientData{
		ClientName: "דוד לוי",
		Orders:     []domain.Order{{Status: "פתוח", ContainerID: "C-77"}},
	})
	m, _ = update(t, m, sessionMsg{session: next})

	assert.Contains(t, m.View(), "מכולה C-77")
}

func TestViewShowsTabsAndHelp(t *testing.T) {
	view := newTestModel(&fakePortal{}).View()

	for _, title := range pageTitles {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, "r reload")
	assert.Contains(t, view, "צהריים טובים, דוד")
}
