package enquiry

import (
	"net/http"
	"time"

	"github.com/diarmuidw/enquiry-backend/internal/draftorders"
	"github.com/diarmuidw/enquiry-backend/pkg/config"
)

const (
	cookieDraftID = "enquiryDraftId"
	cookieToken   = "enquiryDraftToken"
)

// CredentialStore reads and writes the draft id/token cookie pair. The pair is
// all-or-nothing: a request carrying only one half is treated as carrying none.
type CredentialStore struct {
	ttl    time.Duration
	domain string
	secure bool
}

func NewCredentialStore(cfg config.CookieConfig) *CredentialStore {
	return &CredentialStore{
		ttl:    cfg.TTL(),
		domain: cfg.Domain,
		secure: cfg.Secure,
	}
}

// Read extracts the credential pair from the request cookies.
func (s *CredentialStore) Read(r *http.Request) draftorders.Credential {
	idCookie, err := r.Cookie(cookieDraftID)
	if err != nil {
		return draftorders.Credential{}
	}
	tokenCookie, err := r.Cookie(cookieToken)
	if err != nil {
		return draftorders.Credential{}
	}

	cred := draftorders.Credential{
		DraftOrderID: idCookie.Value,
		Token:        tokenCookie.Value,
	}
	if !cred.Valid() {
		return draftorders.Credential{}
	}
	return cred
}

// Write persists the pair with the configured expiry.
func (s *CredentialStore) Write(w http.ResponseWriter, cred draftorders.Credential) {
	if !cred.Valid() {
		return
	}
	expires := time.Now().Add(s.ttl)
	http.SetCookie(w, s.cookie(cookieDraftID, cred.DraftOrderID, expires))
	http.SetCookie(w, s.cookie(cookieToken, cred.Token, expires))
}

// Clear expires both cookies.
func (s *CredentialStore) Clear(w http.ResponseWriter) {
	expired := time.Unix(0, 0)
	http.SetCookie(w, s.cookie(cookieDraftID, "", expired))
	http.SetCookie(w, s.cookie(cookieToken, "", expired))
}

func (s *CredentialStore) cookie(name, value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		Expires:  expires,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}
