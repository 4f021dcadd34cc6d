package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/bnema/containerdesk/internal/domain"
	"github.com/bnema/containerdesk/internal/ports"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 30 * time.Second
	writeContentType      = "text/plain;charset=utf-8"
	unknownError          = "Unknown error"
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// Fields overrides entries of DefaultFields.
	Fields map[string]string
}

// Client talks to the spreadsheet web app. Reads are GET requests keyed by
// query parameters, writes are POSTs of a JSON body sent as text/plain.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	requestTimeout time.Duration
	fields         fieldMap
}

var _ ports.Gateway = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("gateway url is required")
	}
	baseURL, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("gateway url must be http(s), got %q", cfg.BaseURL)
	}

	fields, err := compileFields(cfg.Fields)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		requestTimeout: timeout,
		fields:         fields,
	}, nil
}

type clientDataResponse struct {
	ClientName string           `json:"clientName"`
	Orders     []map[string]any `json:"orders"`
	Error      string           `json:"error"`
}

func (c *Client) FetchClientData(ctx context.Context, id domain.ClientID) (domain.ClientData, error) {
	const op = "getClientData"

	var payload clientDataResponse
	if err := c.get(ctx, op, url.Values{"action": {op}, "clientId": {string(id)}}, &payload); err != nil {
		return domain.ClientData{}, err
	}
	if payload.Error != "" {
		return domain.ClientData{}, &domain.GatewayError{Kind: domain.ErrServer, Op: op, Message: payload.Error}
	}
	if strings.TrimSpace(payload.ClientName) == "" {
		return domain.ClientData{}, &domain.GatewayError{Kind: domain.ErrClientNotFound, Op: op}
	}

	orders := make([]domain.Order, 0, len(payload.Orders))
	for _, row := range payload.Orders {
		orders = append(orders, c.fields.order(row))
	}

	return domain.ClientData{ClientName: strings.TrimSpace(payload.ClientName), Orders: orders}, nil
}

type statusPageResponse struct {
	ClientInfo struct {
		Name string `json:"name"`
	} `json:"clientInfo"`
	ActiveOrder *struct {
		OrderID    any    `json:"orderId"`
		Status     string `json:"status"`
		Address    string `json:"address"`
		DaysOnSite any    `json:"daysOnSite"`
		LastAction string `json:"lastAction"`
		StartDate  string `json:"startDate"`
		EndDate    string `json:"endDate"`
	} `json:"activeOrder"`
	OrderHistory []struct {
		Action  string `json:"action"`
		OrderID any    `json:"orderId"`
		Date    string `json:"date"`
		Address string `json:"address"`
		Status  string `json:"status"`
	} `json:"orderHistory"`
	Error string `json:"error"`
}

func (c *Client) FetchStatusPage(ctx context.Context, id domain.ClientID) (domain.StatusPage, error) {
	const op = "getStatusPage"

	var payload statusPageResponse
	if err := c.get(ctx, op, url.Values{"id": {string(id)}}, &payload); err != nil {
		return domain.StatusPage{}, err
	}
	if payload.Error != "" {
		return domain.StatusPage{}, &domain.GatewayError{Kind: domain.ErrServer, Op: op, Message: payload.Error}
	}

	page := domain.StatusPage{
		ClientName: strings.TrimSpace(payload.ClientInfo.Name),
		History:    make([]domain.HistoryEntry, 0, len(payload.OrderHistory)),
	}
	if active := payload.ActiveOrder; active != nil && stringify(active.OrderID) != "" {
		page.ActiveOrder = &domain.Order{
			DocNumber:  stringify(active.OrderID),
			Status:     active.Status,
			Address:    active.Address,
			DaysOnSite: stringify(active.DaysOnSite),
			LastAction: active.LastAction,
			StartDate:  active.StartDate,
			EndDate:    active.EndDate,
		}
	}
	for _, entry := range payload.OrderHistory {
		page.History = append(page.History, domain.HistoryEntry{
			Action:    entry.Action,
			DocNumber: stringify(entry.OrderID),
			Date:      entry.Date,
			Address:   entry.Address,
			Status:    entry.Status,
		})
	}

	return page, nil
}

type clientsResponse struct {
	Clients []struct {
		ClientID   any    `json:"clientId"`
		ClientName string `json:"clientName"`
		Address    string `json:"address"`
		DaysOnSite any    `json:"daysOnSite"`
	} `json:"clients"`
	Error string `json:"error"`
}

func (c *Client) ListClients(ctx context.Context) ([]domain.ClientSummary, error) {
	const op = "getAllClients"

	var payload clientsResponse
	if err := c.get(ctx, op, url.Values{"action": {op}}, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &domain.GatewayError{Kind: domain.ErrServer, Op: op, Message: payload.Error}
	}

	clients := make([]domain.ClientSummary, 0, len(payload.Clients))
	for _, client := range payload.Clients {
		clients = append(clients, domain.ClientSummary{
			ClientID:   domain.ClientID(stringify(client.ClientID)),
			ClientName: client.ClientName,
			Address:    client.Address,
			DaysOnSite: stringify(client.DaysOnSite),
		})
	}
	return clients, nil
}

type requestsResponse struct {
	Requests []struct {
		Type       string `json:"type"`
		ClientName string `json:"clientName"`
		Timestamp  string `json:"timestamp"`
	} `json:"requests"`
	Error string `json:"error"`
}

func (c *Client) RecentRequests(ctx context.Context) ([]domain.RequestLogEntry, error) {
	const op = "getRecentRequests"

	var payload requestsResponse
	if err := c.get(ctx, op, url.Values{"action": {op}}, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &domain.GatewayError{Kind: domain.ErrServer, Op: op, Message: payload.Error}
	}

	requests := make([]domain.RequestLogEntry, 0, len(payload.Requests))
	for _, request := range payload.Requests {
		entry := domain.RequestLogEntry{Type: request.Type, ClientName: request.ClientName}
		if ts, ok := domain.ParseSheetDate(request.Timestamp); ok {
			entry.Timestamp = ts
		}
		requests = append(requests, entry)
	}
	return requests, nil
}

type writeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) SubmitAction(ctx context.Context, action ports.Action, payload map[string]any) error {
	op := string(action)

	body := make(map[string]any, len(payload)+1)
	for key, value := range payload {
		body[key] = value
	}
	body["action"] = op

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.baseURL.String(), bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", writeContentType)

	var result writeResponse
	if err := c.do(req, op, &result); err != nil {
		return err
	}
	if result.Status != "success" {
		message := strings.TrimSpace(result.Message)
		if message == "" {
			message = unknownError
		}
		return &domain.GatewayError{Kind: domain.ErrValidation, Op: op, Message: message}
	}

	return nil
}

func (c *Client) get(ctx context.Context, op string, query url.Values, out any) error {
	endpoint := *c.baseURL
	merged := endpoint.Query()
	for key, values := range query {
		merged[key] = values
	}
	endpoint.RawQuery = merged.Encode()

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}

	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	log.WithFields(log.Fields{"op": op, "method": req.Method}).Debug("gateway request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.GatewayError{Kind: domain.ErrNetwork, Op: op, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &domain.GatewayError{Kind: domain.ErrNetwork, Op: op, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return &domain.GatewayError{Kind: domain.ErrServer, Op: op, Message: "invalid response: " + err.Error()}
	}

	return nil
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}
