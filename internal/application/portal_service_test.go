package application

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/containerdesk/internal/domain"
	"github.com/bnema/containerdesk/internal/ports"
	"github.com/bnema/containerdesk/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type portalFixture struct {
	gateway  *mocks.MockGateway
	identity *mocks.MockIdentityStore
	secrets  *mocks.MockSecretStore
	notices  *noticeRecorder
	service  *PortalService
}

func newPortalFixture(t *testing.T) portalFixture {
	t.Helper()

	gateway := mocks.NewMockGateway(t)
	identity := mocks.NewMockIdentityStore(t)
	secrets := mocks.NewMockSecretStore(t)
	notices := &noticeRecorder{}
	sessions := NewSessionStore()
	refresher := NewRefresher(testInterval)
	t.Cleanup(refresher.Stop)

	service := NewPortalService(gateway, identity, sessions, refresher, NewDispatcher(sessions, notices), PushConfig{
		Secrets:  secrets,
		TokenKey: "cdesk/push/token",
	})

	return portalFixture{gateway: gateway, identity: identity, secrets: secrets, notices: notices, service: service}
}

func sampleClientData() domain.ClientData {
	return domain.ClientData{
		ClientName: "דנה כהן",
		Orders: []domain.Order{
			{DocNumber: "101", Status: "פתוח", Address: "הרצל 1", ContainerID: "C-7", DriverName: "יוסי", ETA: "10:30"},
			{DocNumber: "99", Status: "סגור", Address: "ביאליק 7"},
		},
	}
}

func (f portalFixture) login(t *testing.T) {
	t.Helper()

	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).Return(sampleClientData(), nil).Once()
	f.identity.EXPECT().Save(mockAnyContext(), domain.ClientID("c-1")).Return(nil).Once()

	_, err := f.service.Login(context.Background(), "c-1")
	require.NoError(t, err)
}

func TestResumeWithoutStoredIdentityRequiresLogin(t *testing.T) {
	f := newPortalFixture(t)
	f.identity.EXPECT().Load(mockAnyContext()).Return(domain.ClientID(""), nil)

	_, err := f.service.Resume(context.Background())

	require.ErrorIs(t, err, domain.ErrIdentityRequired)
	assert.False(t, f.service.Sessions().Current().Active())
}

func TestResumeLoadsStoredClient(t *testing.T) {
	f := newPortalFixture(t)
	f.identity.EXPECT().Load(mockAnyContext()).Return(domain.ClientID("c-1"), nil)
	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).Return(sampleClientData(), nil)
	f.identity.EXPECT().Save(mockAnyContext(), domain.ClientID("c-1")).Return(nil)

	session, err := f.service.Resume(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "דנה כהן", session.ClientName)
	assert.Equal(t, []string{"הרצל 1", "ביאליק 7"}, session.Addresses())
	assert.Equal(t, session.ClientID, f.service.Sessions().Current().ClientID)
}

func TestLoginUnknownClientClearsIdentity(t *testing.T) {
	f := newPortalFixture(t)
	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("ghost")).
		Return(domain.ClientData{}, &domain.GatewayError{Kind: domain.ErrClientNotFound, Op: "getClientData"})
	f.identity.EXPECT().Clear(mockAnyContext()).Return(nil)

	_, err := f.service.Login(context.Background(), "ghost")

	require.ErrorIs(t, err, domain.ErrClientNotFound)
	assert.False(t, f.service.Sessions().Current().Active())
}

func TestLoginRejectsBlankIdentifier(t *testing.T) {
	f := newPortalFixture(t)

	_, err := f.service.Login(context.Background(), "   ")

	require.ErrorIs(t, err, domain.ErrIdentityRequired)
}

func TestReloadNetworkErrorKeepsSession(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).
		Return(domain.ClientData{}, &domain.GatewayError{Kind: domain.ErrNetwork, Op: "getClientData"})

	err := f.service.Reload(context.Background())

	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, "דנה כהן", f.service.Sessions().Current().ClientName)
	require.NotEmpty(t, f.notices.all())
	assert.Equal(t, domain.NoticeError, f.notices.all()[0].Kind)
}

func TestWatchRefreshesSession(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)

	updated := sampleClientData()
	updated.ClientName = "דנה לוי"
	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).Return(updated, nil)

	f.service.Watch(context.Background())

	require.Eventually(t, func() bool {
		return f.service.Sessions().Current().ClientName == "דנה לוי"
	}, time.Second, testInterval)
}

func TestWatchFailureKeepsCurrentSession(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)

	var failures atomic.Int32
	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).
		RunAndReturn(func(context.Context, domain.ClientID) (domain.ClientData, error) {
			failures.Add(1)
			return domain.ClientData{}, &domain.GatewayError{Kind: domain.ErrServer, Op: "getClientData", Message: "quota"}
		})

	f.service.Watch(context.Background())

	require.Eventually(t, func() bool { return failures.Load() >= 2 }, time.Second, testInterval)
	assert.Equal(t, "דנה כהן", f.service.Sessions().Current().ClientName)
	_, running := f.service.refresher.Running()
	assert.True(t, running)
}

func TestWatchUnknownClientStopsLoopAndClearsIdentity(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)

	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).
		Return(domain.ClientData{}, &domain.GatewayError{Kind: domain.ErrClientNotFound, Op: "getClientData"}).Once()
	f.identity.EXPECT().Clear(mockAnyContext()).Return(nil).Once()

	f.service.Watch(context.Background())

	require.Eventually(t, func() bool {
		_, running := f.service.refresher.Running()
		return !running
	}, time.Second, testInterval)
	assert.False(t, f.service.Sessions().Current().Active())
}

func TestLoginAsAnotherClientRestartsLoop(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).Return(sampleClientData(), nil).Maybe()
	f.service.Watch(context.Background())

	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-2")).
		Return(domain.ClientData{ClientName: "אבי"}, nil)
	f.identity.EXPECT().Save(mockAnyContext(), domain.ClientID("c-2")).Return(nil)

	_, err := f.service.Login(context.Background(), "c-2")
	require.NoError(t, err)

	key, running := f.service.refresher.Running()
	assert.True(t, running)
	assert.Equal(t, "c-2", key)

	time.Sleep(5 * testInterval)
	assert.Equal(t, domain.ClientID("c-2"), f.service.Sessions().Current().ClientID)
}

func TestLoginFailureKeepsPreviousLoop(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-1")).Return(sampleClientData(), nil).Maybe()
	f.service.Watch(context.Background())

	f.gateway.EXPECT().FetchClientData(mockAnyContext(), domain.ClientID("c-2")).
		Return(domain.ClientData{}, &domain.GatewayError{Kind: domain.ErrNetwork, Op: "getClientData"})

	_, err := f.service.Login(context.Background(), "c-2")
	require.ErrorIs(t, err, domain.ErrNetwork)

	key, running := f.service.refresher.Running()
	assert.True(t, running)
	assert.Equal(t, "c-1", key)
	assert.Equal(t, domain.ClientID("c-1"), f.service.Sessions().Current().ClientID)
}

func TestLogoutClearsEverything(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.identity.EXPECT().Clear(mockAnyContext()).Return(nil)

	require.NoError(t, f.service.Logout(context.Background()))

	assert.False(t, f.service.Sessions().Current().Active())
	_, running := f.service.refresher.Running()
	assert.False(t, running)
}

func TestRequestSwapSendsLogClientRequest(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.gateway.EXPECT().SubmitAction(mockAnyContext(), ports.ActionLogClientRequest, map[string]any{
		"clientId":    "c-1",
		"clientName":  "דנה כהן",
		"requestType": "swap",
	}).Return(nil)

	require.NoError(t, f.service.RequestSwap(context.Background()))
	assert.Equal(t, []domain.Notice{{Kind: domain.NoticeSuccess, Message: requestSentMessage}}, f.notices.all())
}

func TestRequestWithoutSessionRequiresIdentity(t *testing.T) {
	f := newPortalFixture(t)

	require.ErrorIs(t, f.service.RequestRemoval(context.Background()), domain.ErrIdentityRequired)
}

func TestSubmitOrderRequestValidatesAddress(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)

	err := f.service.SubmitOrderRequest(context.Background(), domain.OrderRequest{
		ActionType:      "הצבה",
		SelectedAddress: domain.NewAddressOption,
	})

	require.ErrorIs(t, err, domain.ErrValidation)
	f.gateway.AssertNotCalled(t, "SubmitAction", mock.Anything, mock.Anything, mock.Anything)
	require.Len(t, f.notices.all(), 1)
	assert.Equal(t, domain.NoticeError, f.notices.all()[0].Kind)
}

func TestSubmitOrderRequestSendsDetails(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.gateway.EXPECT().SubmitAction(mockAnyContext(), ports.ActionClientRequest, map[string]any{
		"clientId":    "c-1",
		"clientName":  "דנה כהן",
		"requestType": "הצבה",
		"details":     "כתובת: ביאליק 7. הערות: אין.",
	}).Return(nil)

	err := f.service.SubmitOrderRequest(context.Background(), domain.OrderRequest{
		ActionType:      "הצבה",
		SelectedAddress: "ביאליק 7",
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Notice{{Kind: domain.NoticeSuccess, Message: clientRequestSent}}, f.notices.all())
}

func TestRejectedWriteLeavesSessionUnchanged(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	before := f.service.Sessions().Current()
	f.gateway.EXPECT().SubmitAction(mockAnyContext(), ports.ActionClientRequest, mock.Anything).
		Return(&domain.GatewayError{Kind: domain.ErrValidation, Op: "clientRequest", Message: "invalid client"})

	err := f.service.SendChatMessage(context.Background(), "שלום")

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, before, f.service.Sessions().Current())
	assert.Equal(t, []domain.Notice{{Kind: domain.NoticeError, Message: "שליחת הבקשה נכשלה: invalid client"}}, f.notices.all())
	assert.Equal(t, StateIdle, f.service.Dispatcher().State(ControlChat))
}

func TestSendChatMessageETAAnswersLocally(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.gateway.EXPECT().SubmitAction(mockAnyContext(), ports.ActionClientRequest, map[string]any{
		"clientId":    "c-1",
		"clientName":  "דנה כהן",
		"requestType": domain.ChatRequestType,
		"details":     domain.ETAQuestion,
	}).Return(nil)

	require.NoError(t, f.service.SendChatMessage(context.Background(), domain.ETAQuestion))

	notices := f.notices.all()
	require.Len(t, notices, 2)
	assert.Equal(t, domain.Notice{Kind: domain.NoticeInfo, Message: "היי דנה, הנהג יוסי בדרך. זמן ההגעה המשוער הוא 10:30."}, notices[0])
	assert.Equal(t, domain.NoticeSuccess, notices[1].Kind)
}

func TestSendChatMessageRejectsEmpty(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)

	require.ErrorIs(t, f.service.SendChatMessage(context.Background(), "  "), domain.ErrValidation)
}

func TestRegisterPushTokenReadsSecret(t *testing.T) {
	f := newPortalFixture(t)
	f.login(t)
	f.secrets.EXPECT().Get(mockAnyContext(), "cdesk/push/token").Return("tok-123\n", nil)
	f.gateway.EXPECT().SubmitAction(mockAnyContext(), ports.ActionSaveFCMToken, map[string]any{
		"clientId": "c-1",
		"token":    "tok-123",
	}).Return(nil)

	require.NoError(t, f.service.RegisterPushToken(context.Background()))
}

func TestStatusPageRequiresID(t *testing.T) {
	f := newPortalFixture(t)

	_, err := f.service.StatusPage(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrIdentityRequired)

	f.gateway.EXPECT().FetchStatusPage(mockAnyContext(), domain.ClientID("c-9")).
		Return(domain.StatusPage{ClientName: "משה"}, nil)
	page, err := f.service.StatusPage(context.Background(), "c-9")
	require.NoError(t, err)
	assert.Equal(t, "משה", page.ClientName)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
