package draftorders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient("http://draft.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestCreateDraftReturnsCredential(t *testing.T) {
	var capturedURL string
	var capturedPayload map[string]any

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		if err := json.Unmarshal(bodyBytes, &capturedPayload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"success":true,"draftOrderId":"D1","draftOrderToken":"T1"}`), nil
	})

	cred, err := client.CreateDraft(context.Background(), []Item{{VariantID: "V1", Quantity: 2}})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if capturedURL != "http://draft.test/api/enquiry/create-draft" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	items, ok := capturedPayload["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one item in payload, got %v", capturedPayload["items"])
	}
	first := items[0].(map[string]any)
	if first["variant_id"] != "V1" || first["quantity"] != float64(2) {
		t.Fatalf("unexpected item payload %v", first)
	}
	if cred.DraftOrderID != "D1" || cred.Token != "T1" {
		t.Fatalf("unexpected credential %+v", cred)
	}
}

func TestCreateDraftIncompleteCredentialIsDependencyError(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":true,"draftOrderId":"D1"}`), nil
	})

	_, err := client.CreateDraft(context.Background(), []Item{{VariantID: "V1", Quantity: 1}})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestGetDraftSendsCredentialAsQuery(t *testing.T) {
	var capturedURL string

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, `{"success":true,"items":[{"variant_id":"V1","quantity":3}]}`), nil
	})

	items, err := client.GetDraft(context.Background(), Credential{DraftOrderID: "D1", Token: "T1"})
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if !strings.Contains(capturedURL, "get-draft?") || !strings.Contains(capturedURL, "id=D1") || !strings.Contains(capturedURL, "token=T1") {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(items) != 1 || items[0].VariantID != "V1" || items[0].Quantity != 3 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestGetDraft404IsNotFound(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `not found`), nil
	})

	_, err := client.GetDraft(context.Background(), Credential{DraftOrderID: "D1", Token: "T1"})
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetDraftServerErrorIsDependency(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `upstream down`), nil
	})

	_, err := client.GetDraft(context.Background(), Credential{DraftOrderID: "D1", Token: "T1"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestUpdateDraftRoundTripsFullList(t *testing.T) {
	var capturedPayload map[string]any

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		bodyBytes, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(bodyBytes, &capturedPayload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"success":true}`), nil
	})

	err := client.UpdateDraft(context.Background(), Credential{DraftOrderID: "D1", Token: "T1"}, []Item{
		{VariantID: "V1", Quantity: 4},
		{VariantID: "V2", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("update draft: %v", err)
	}
	if capturedPayload["draftOrderId"] != "D1" || capturedPayload["token"] != "T1" {
		t.Fatalf("credential missing from payload %v", capturedPayload)
	}
	items := capturedPayload["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected full list, got %d items", len(items))
	}
}

func TestSubmitValidationFailureCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":false,"error":"minimum order value not met"}`), nil
	})

	err := client.Submit(context.Background(), Credential{DraftOrderID: "D1", Token: "T1"}, Submission{
		CustomerInfo: CustomerInfo{Email: "buyer@example.com"},
		SendEmail:    true,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "minimum order value not met" {
		t.Fatalf("expected server message, got %q", typed.Message())
	}
}

func TestEnrichProductsMapsByGID(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":true,"products":{"gid://shopify/Product/1":{"vendor":"Acme","handle":"widget","image":"https://cdn/img.png","imageAlt":"Widget"}}}`), nil
	})

	products, err := client.EnrichProducts(context.Background(), []string{"gid://shopify/Product/1"})
	if err != nil {
		t.Fatalf("enrich products: %v", err)
	}
	got, ok := products["gid://shopify/Product/1"]
	if !ok {
		t.Fatalf("missing product in map %v", products)
	}
	if got.Vendor != "Acme" || got.Handle != "widget" {
		t.Fatalf("unexpected product %+v", got)
	}
}

func TestEnrichProductsEmptyInputSkipsNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{"success":true}`), nil
	})

	products, err := client.EnrichProducts(context.Background(), nil)
	if err != nil {
		t.Fatalf("enrich products: %v", err)
	}
	if called {
		t.Fatal("expected no network call for empty input")
	}
	if len(products) != 0 {
		t.Fatalf("expected empty map, got %v", products)
	}
}
