package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientFixture = `{"clientName":"דוד לוי","orders":[{"מספר תעודה":501,"סטטוס":"פתוח","כתובת":"רחוב 1","מכולה ירדה":"C-1","סוג מכולה":"8 קוב","תאריך":"01/01/2024","תאריך סיום":"10/01/2024","שם נהג":"יוסי","זמן הגעה משוער":"10:30"},{"מספר תעודה":480,"סטטוס":"סגור","כתובת":"הרצל 5","תאריך":"12/12/2023"}]}`

const statusPageFixture = `{"clientInfo":{"name":"דוד"},"activeOrder":{"orderId":501,"status":"פתוח","address":"רחוב 1","daysOnSite":4,"startDate":"01/01/2024","endDate":"10/01/2024"},"orderHistory":[{"action":"הורדה","orderId":480,"date":"12/12/2023","address":"הרצל 5","status":"סגור"}]}`

type fakeGateway struct {
	mu          sync.Mutex
	posts       []map[string]any
	writeStatus string
	message     string
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()

	gw := &fakeGateway{writeStatus: "success"}
	server := httptest.NewServer(http.HandlerFunc(gw.serveHTTP))
	t.Cleanup(server.Close)
	t.Setenv("CDESK_GATEWAY_URL", server.URL)

	return gw
}

func (g *fakeGateway) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		g.mu.Lock()
		g.posts = append(g.posts, body)
		status, message := g.writeStatus, g.message
		g.mu.Unlock()

		_, _ = fmt.Fprintf(w, `{"status":%q,"message":%q}`, status, message)
		return
	}

	query := r.URL.Query()
	switch query.Get("action") {
	case "getClientData":
		if query.Get("clientId") == "17" {
			_, _ = fmt.Fprint(w, clientFixture)
			return
		}
		_, _ = fmt.Fprint(w, `{"clientName":"","orders":[]}`)
	case "getAllClients":
		_, _ = fmt.Fprint(w, `{"clients":[{"clientId":17,"clientName":"דוד לוי","address":"רחוב 1","daysOnSite":4}]}`)
	case "getRecentRequests":
		_, _ = fmt.Fprint(w, `{"requests":[{"type":"החלפה","clientName":"דוד לוי","timestamp":"2024-01-05T09:03:00Z"}]}`)
	default:
		if query.Get("id") == "55" {
			_, _ = fmt.Fprint(w, statusPageFixture)
			return
		}
		_, _ = fmt.Fprint(w, `{"error":"not found"}`)
	}
}

func (g *fakeGateway) lastPost(t *testing.T) map[string]any {
	t.Helper()

	g.mu.Lock()
	defer g.mu.Unlock()
	require.NotEmpty(t, g.posts)
	return g.posts[len(g.posts)-1]
}

func (g *fakeGateway) postCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.posts)
}

func TestLoginRendersHomeAndPersistsClientID(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	stdout, stderr, err := executeCLI(t, home, "login", "17")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as דוד לוי (17)")
	assert.Contains(t, stdout, "ההזמנה הפעילה שלך")
	assert.Contains(t, stdout, "הנהג יוסי בדרך")
	assert.Contains(t, stderr, "Loading client data")

	raw, err := os.ReadFile(filepath.Join(home, ".cdesk", "identity.toml"))
	require.NoError(t, err)
	assert.Regexp(t, `id = ['"]17['"]`, string(raw))
}

func TestLoginUnknownClientIsRejected(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `client id "999" was not found`)

	_, err = os.Stat(filepath.Join(home, ".cdesk", "identity.toml"))
	assert.True(t, os.IsNotExist(err))
}

func TestShowRequiresLogin(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cdesk login <client-id>")
}

func TestShowContainersJSONOutput(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	stdout, _, err := executeCLI(t, home, "show", "containers", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"containerId": "C-1"`)
	assert.Contains(t, stdout, `"badge": "open"`)
}

func TestShowHistoryRendersMonthChart(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	stdout, _, err := executeCLI(t, home, "show", "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "כמות הזמנות")
	assert.Contains(t, stdout, "ינו׳ 24")
	assert.Contains(t, stdout, "דצמ׳ 23")
}

func TestShowUnknownPage(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "show", "settings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown page "settings"`)
}

func TestRequestSwapLogsClientRequest(t *testing.T) {
	gw := newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	_, stderr, err := executeCLI(t, home, "request", "swap")
	require.NoError(t, err)
	assert.Contains(t, stderr, "הבקשה נשלחה בהצלחה!")

	post := gw.lastPost(t)
	assert.Equal(t, "logClientRequest", post["action"])
	assert.Equal(t, "17", post["clientId"])
	assert.Equal(t, "דוד לוי", post["clientName"])
	assert.Equal(t, "swap", post["requestType"])
}

func TestRequestRejectedByGateway(t *testing.T) {
	gw := newFakeGateway(t)
	gw.writeStatus = "error"
	gw.message = "invalid client"
	home := t.TempDir()
	loginFixture(t, home)

	_, stderr, err := executeCLI(t, home, "request", "removal")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid client")
}

func TestRequestOrderNeedsAddress(t *testing.T) {
	gw := newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	_, stderr, err := executeCLI(t, home, "request", "order")
	require.Error(t, err)
	assert.Contains(t, stderr, "אנא בחר כתובת קיימת או הקלד כתובת חדשה.")
	assert.Zero(t, gw.postCount())
}

func TestRequestOrderWithKnownAddress(t *testing.T) {
	gw := newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	stdout, _, err := executeCLI(t, home, "request", "order", "--list")
	require.NoError(t, err)
	assert.Equal(t, "1\tרחוב 1\n2\tהרצל 5\n", stdout)

	_, _, err = executeCLI(t, home, "request", "order", "--pick", "2", "--notes", "ליד השער", "--gps", "32.08,34.78")
	require.NoError(t, err)

	post := gw.lastPost(t)
	assert.Equal(t, "clientRequest", post["action"])
	assert.Equal(t, "הזמנת מכולה", post["requestType"])
	assert.Equal(t, "כתובת: הרצל 5. הערות: ליד השער. מיקום GPS: 32.08,34.78", post["details"])
}

func TestChatSendTemplate(t *testing.T) {
	gw := newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	_, stderr, err := executeCLI(t, home, "chat", "send", "--template", "4")
	require.NoError(t, err)
	assert.Contains(t, stderr, "יוסי")
	assert.Contains(t, stderr, "בקשתך נשלחה בהצלחה!")

	post := gw.lastPost(t)
	assert.Equal(t, "הודעת צאט", post["requestType"])
	assert.Equal(t, "מה צפי ההגעה של הנהג?", post["details"])
}

func TestChatSendRejectsEmptyMessage(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "chat", "send", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is empty")
}

func TestChatTemplatesList(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "chat", "templates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "4\tמה צפי ההגעה של הנהג?")
}

func TestStatusPageByID(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "status", "--id", "55")
	require.NoError(t, err)
	assert.Contains(t, stdout, "שלום, דוד")
	assert.Contains(t, stdout, "מספר תעודה: 501")
	assert.Contains(t, stdout, "הורדה - תעודה: 480")
}

func TestStatusPageSendsRequest(t *testing.T) {
	gw := newFakeGateway(t)
	home := t.TempDir()

	_, stderr, err := executeCLI(t, home, "status", "--id", "55", "--request", "removal")
	require.NoError(t, err)
	assert.Contains(t, stderr, "הבקשה נשלחה בהצלחה!")

	post := gw.lastPost(t)
	assert.Equal(t, "logClientRequest", post["action"])
	assert.Equal(t, "55", post["clientId"])
	assert.Equal(t, "דוד", post["clientName"])
	assert.Equal(t, "removal", post["requestType"])
}

func TestStatusWithoutIDOrLogin(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --id")
}

func TestPushTokenRegistration(t *testing.T) {
	gw := newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	_, _, err := executeCLI(t, home, "push", "set-token", "fcm-token-1")
	require.NoError(t, err)

	_, stderr, err := executeCLI(t, home, "push", "register")
	require.NoError(t, err)
	assert.Contains(t, stderr, "אישרת קבלת עדכונים!")

	post := gw.lastPost(t)
	assert.Equal(t, "saveFCMToken", post["action"])
	assert.Equal(t, "17", post["clientId"])
	assert.Equal(t, "fcm-token-1", post["token"])

	_, _, err = executeCLI(t, home, "push", "clear")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "push", "register")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load push registration token")
}

func TestLogoutForgetsClient(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()
	loginFixture(t, home)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	_, _, err = executeCLI(t, home, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client id required")
}

func TestAdminClients(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "admin", "clients")
	require.NoError(t, err)
	assert.Contains(t, stdout, "clients: 1")
	assert.Contains(t, stdout, "דוד לוי")
}

func TestAdminRequestsWatch(t *testing.T) {
	newFakeGateway(t)
	t.Setenv("CDESK_ADMIN_REFRESH_INTERVAL", "10ms")
	t.Setenv("CDESK_TIME_ZONE", "UTC")
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "admin", "requests", "--watch", "--count", "2")
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count([]byte(stdout), []byte("בקשת החלפה")))
	assert.Contains(t, stdout, "דוד לוי • 5.1.2024, 09:03:00")
}

func TestAdminNotifyWithTemplate(t *testing.T) {
	gw := newFakeGateway(t)
	home := t.TempDir()

	_, stderr, err := executeCLI(t, home, "admin", "notify", "--client", "17", "--name", "דוד", "--template", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "ההתראה נשלחה בהצלחה!")

	post := gw.lastPost(t)
	assert.Equal(t, "sendAdminNotification", post["action"])
	assert.Equal(t, "הנהג בדרך אליך!", post["title"])
	assert.Equal(t, "שלום דוד, הנהג בדרך אליך עם המכולה. צפי הגעה בקרוב.", post["body"])
}

func TestAdminNotifyRequiresBody(t *testing.T) {
	newFakeGateway(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "admin", "notify", "--client", "17", "--title", "שלום")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title and body are required")
}

func TestGatewayURLMustBeConfigured(t *testing.T) {
	t.Setenv("CDESK_GATEWAY_URL", "")
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway url is not configured")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownIdentityBackend(t *testing.T) {
	t.Setenv("CDESK_IDENTITY_BACKEND", "sqlite")
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown identity.backend "sqlite"`)
}

func loginFixture(t *testing.T, home string) {
	t.Helper()

	_, stderr, err := executeCLI(t, home, "login", "17")
	require.NoError(t, err, "stderr: %s", stderr)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
