package enquiry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diarmuidw/enquiry-backend/internal/draftorders"
	"github.com/diarmuidw/enquiry-backend/pkg/config"
)

func newTestStore() *CredentialStore {
	return NewCredentialStore(config.CookieConfig{TTLDays: 7, Secure: false})
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	store := newTestStore()

	rec := httptest.NewRecorder()
	store.Write(rec, draftorders.Credential{DraftOrderID: "D1", Token: "T1"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	cred := store.Read(req)
	if cred.DraftOrderID != "D1" || cred.Token != "T1" {
		t.Fatalf("unexpected credential %+v", cred)
	}
}

func TestCredentialStoreHalfPairReadsAsAbsent(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "enquiryDraftId", Value: "D1"})

	if cred := store.Read(req); cred.Valid() {
		t.Fatalf("expected absent credential, got %+v", cred)
	}
}

func TestCredentialStoreWriteRejectsIncompletePair(t *testing.T) {
	store := newTestStore()

	rec := httptest.NewRecorder()
	store.Write(rec, draftorders.Credential{DraftOrderID: "D1"})

	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("expected no cookies, got %d", len(cookies))
	}
}

func TestCredentialStoreClearExpiresBoth(t *testing.T) {
	store := newTestStore()

	rec := httptest.NewRecorder()
	store.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected two cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.Value != "" || c.MaxAge != -1 {
			t.Fatalf("cookie %s not expired: %+v", c.Name, c)
		}
	}
}
