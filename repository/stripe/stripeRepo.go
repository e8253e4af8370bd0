package striperepo

import "context"

type CreateSessionReq struct {
	// Amount is in the major currency unit; the client converts to cents.
	Amount          float64
	Currency        string
	Description     string
	CustomerEmail   string
	ClientReference string
	Metadata        map[string]string
	SuccessURL      string
	CancelURL       string
}

type CreateSessionResp struct {
	SessionID   string
	CheckoutURL string
}

// CheckoutEvent is the slice of a webhook payload the rental flow needs:
// who paid (client_reference_id) for what (metadata book_id).
type CheckoutEvent struct {
	Type            string
	SessionID       string
	ClientReference string
	Metadata        map[string]string
}

type Repo interface {
	CreateSession(ctx context.Context, req CreateSessionReq) (*CreateSessionResp, error)
	ParseEvent(rawBody []byte) (*CheckoutEvent, error)
}
