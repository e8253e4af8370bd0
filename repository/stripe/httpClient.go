package striperepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/Maksim124512M/LibraFlow/util/httpx"
)

const sessionsURL = "https://api.stripe.com/v1/checkout/sessions"

type httpRepo struct {
	apiKey string
	client *http.Client
}

func NewHTTP(apiKey string) Repo { return &httpRepo{apiKey: apiKey, client: httpx.Client()} }

func (r *httpRepo) CreateSession(ctx context.Context, req CreateSessionReq) (*CreateSessionResp, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][product_data][name]", req.Description)
	form.Set("line_items[0][price_data][unit_amount]", fmt.Sprintf("%d", int64(math.Round(req.Amount*100))))
	form.Set("line_items[0][quantity]", "1")
	form.Set("client_reference_id", req.ClientReference)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, sessionsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("stripe create session failed: %s: %s", resp.Status, body)
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("stripe: empty session id")
	}
	return &CreateSessionResp{SessionID: out.ID, CheckoutURL: out.URL}, nil
}

func (r *httpRepo) ParseEvent(rawBody []byte) (*CheckoutEvent, error) {
	var ev struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID              string            `json:"id"`
				ClientReference string            `json:"client_reference_id"`
				Metadata        map[string]string `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		return nil, fmt.Errorf("bad webhook json: %w", err)
	}
	if ev.Type == "" {
		return nil, errors.New("missing event type")
	}
	return &CheckoutEvent{
		Type:            ev.Type,
		SessionID:       ev.Data.Object.ID,
		ClientReference: ev.Data.Object.ClientReference,
		Metadata:        ev.Data.Object.Metadata,
	}, nil
}
