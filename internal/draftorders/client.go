package draftorders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("draft-order api base url is required")

// Client wraps the remote draft-order API. Every operation is a single round
// trip with no automatic retry; the full item list travels on each write
// because the server has no partial-update semantics.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default per-call deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the draft-order client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

type createDraftResponse struct {
	Success         bool   `json:"success"`
	DraftOrderID    string `json:"draftOrderId"`
	DraftOrderToken string `json:"draftOrderToken"`
	Error           string `json:"error,omitempty"`
}

type getDraftResponse struct {
	Success bool   `json:"success"`
	Items   []Item `json:"items"`
	Error   string `json:"error,omitempty"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type enrichProductsResponse struct {
	Success  bool                       `json:"success"`
	Products map[string]EnrichedProduct `json:"products"`
	Error    string                     `json:"error,omitempty"`
}

// CreateDraft registers a new draft containing items and returns its credential.
func (c *Client) CreateDraft(ctx context.Context, items []Item) (Credential, error) {
	if c == nil {
		return Credential{}, pkgerrors.New(pkgerrors.CodeDependency, "draft-order client not configured")
	}
	if len(items) == 0 {
		return Credential{}, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	var out createDraftResponse
	err := c.post(ctx, "create-draft", map[string]any{"items": items}, &out)
	if err != nil {
		return Credential{}, err
	}
	if !out.Success {
		return Credential{}, validationFailure("create draft rejected", out.Error)
	}

	cred := Credential{DraftOrderID: out.DraftOrderID, Token: out.DraftOrderToken}
	if !cred.Valid() {
		return Credential{}, pkgerrors.New(pkgerrors.CodeDependency, "create draft returned incomplete credential")
	}
	return cred, nil
}

// GetDraft fetches the draft's full item list. A 404 surfaces as CodeNotFound,
// meaning the credential no longer identifies a live draft and the caller must
// clear it; every other failure is CodeDependency and leaves the credential alone.
func (c *Client) GetDraft(ctx context.Context, cred Credential) ([]Item, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "draft-order client not configured")
	}
	if !cred.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft credential is required")
	}

	query := url.Values{}
	query.Set("id", cred.DraftOrderID)
	query.Set("token", cred.Token)
	reqURL := fmt.Sprintf("%s?%s", c.buildURL("get-draft"), query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build get-draft request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute get-draft request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft order not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, dependencyStatus(resp, "get-draft request failed")
	}

	var out getDraftResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode get-draft response")
	}
	if !out.Success {
		return nil, validationFailure("get draft rejected", out.Error)
	}
	return out.Items, nil
}

// UpdateDraft replaces the entire item list of the draft.
func (c *Client) UpdateDraft(ctx context.Context, cred Credential, items []Item) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "draft-order client not configured")
	}
	if !cred.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "draft credential is required")
	}

	var out ackResponse
	err := c.post(ctx, "update-draft", map[string]any{
		"draftOrderId": cred.DraftOrderID,
		"token":        cred.Token,
		"items":        items,
	}, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return validationFailure("update draft rejected", out.Error)
	}
	return nil
}

// DeleteDraft removes the draft entirely; used when the edited list becomes empty.
func (c *Client) DeleteDraft(ctx context.Context, cred Credential) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "draft-order client not configured")
	}
	if !cred.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "draft credential is required")
	}

	var out ackResponse
	err := c.post(ctx, "delete-draft", map[string]any{
		"draftOrderId": cred.DraftOrderID,
		"token":        cred.Token,
	}, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return validationFailure("delete draft rejected", out.Error)
	}
	return nil
}

// UpdateEmail captures the customer's email ahead of submission.
func (c *Client) UpdateEmail(ctx context.Context, cred Credential, email string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "draft-order client not configured")
	}
	if !cred.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "draft credential is required")
	}
	if strings.TrimSpace(email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	var out ackResponse
	err := c.post(ctx, "update-email", map[string]any{
		"draftOrderId": cred.DraftOrderID,
		"token":        cred.Token,
		"email":        email,
	}, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return validationFailure("update email rejected", out.Error)
	}
	return nil
}

// Submit turns the draft into a quote request. All-or-nothing: a business-rule
// rejection comes back as CodeValidation carrying the server's message.
func (c *Client) Submit(ctx context.Context, cred Credential, sub Submission) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "draft-order client not configured")
	}
	if !cred.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "draft credential is required")
	}

	payload := map[string]any{
		"draftOrderId":  cred.DraftOrderID,
		"token":         cred.Token,
		"customerInfo":  sub.CustomerInfo,
		"comments":      sub.Comments,
		"companyName":   sub.CompanyName,
		"fileUploadUrl": sub.FileUploadURL,
		"sendEmail":     sub.SendEmail,
	}
	if sub.ShippingAddress != nil {
		payload["shippingAddress"] = sub.ShippingAddress
	}

	var out ackResponse
	err := c.post(ctx, "submit", payload, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return validationFailure("submission rejected", out.Error)
	}
	return nil
}

// EnrichProducts resolves display metadata for the given product GIDs.
func (c *Client) EnrichProducts(ctx context.Context, gids []string) (map[string]EnrichedProduct, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "draft-order client not configured")
	}
	if len(gids) == 0 {
		return map[string]EnrichedProduct{}, nil
	}

	var out enrichProductsResponse
	err := c.post(ctx, "enrich-products", map[string]any{"productGids": gids}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, validationFailure("enrich products rejected", out.Error)
	}
	if out.Products == nil {
		return map[string]EnrichedProduct{}, nil
	}
	return out.Products, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("marshal %s request", path))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("build %s request", path))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("execute %s request", path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dependencyStatus(resp, fmt.Sprintf("%s request failed", path))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", path))
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/api/enquiry/%s", trimmed, path)
}

func dependencyStatus(resp *http.Response, message string) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	return pkgerrors.Wrap(
		pkgerrors.CodeDependency,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		message,
	)
}

func validationFailure(message, serverError string) error {
	if strings.TrimSpace(serverError) != "" {
		message = serverError
	}
	return pkgerrors.New(pkgerrors.CodeValidation, message)
}
