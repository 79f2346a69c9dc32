package draftorders

import "strings"

// Credential identifies a server-held draft order. The pair is opaque to this
// service and immutable for the draft's life: both values present or both absent.
type Credential struct {
	DraftOrderID string
	Token        string
}

// Valid reports whether both halves of the pair are present.
func (c Credential) Valid() bool {
	return strings.TrimSpace(c.DraftOrderID) != "" && strings.TrimSpace(c.Token) != ""
}

// Item is one line of a draft order as the remote API stores it.
type Item struct {
	VariantID    string `json:"variant_id"`
	ProductGID   string `json:"product_gid,omitempty"`
	Quantity     int    `json:"quantity"`
	Title        string `json:"title,omitempty"`
	VariantTitle string `json:"variant_title,omitempty"`
	Image        string `json:"image,omitempty"`
	Vendor       string `json:"vendor,omitempty"`
	Handle       string `json:"handle,omitempty"`
	URL          string `json:"url,omitempty"`
}

// EnrichedProduct carries the display metadata the remote API resolves per
// product GID.
type EnrichedProduct struct {
	Vendor   string `json:"vendor"`
	Handle   string `json:"handle"`
	Image    string `json:"image"`
	ImageAlt string `json:"imageAlt"`
}

// CustomerInfo is the contact block collected by the enquiry form.
type CustomerInfo struct {
	Email               string `json:"email"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Company             string `json:"company,omitempty"`
	Address1            string `json:"address1,omitempty"`
	Address2            string `json:"address2,omitempty"`
	City                string `json:"city,omitempty"`
	Postcode            string `json:"postcode,omitempty"`
	Country             string `json:"country,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Message             string `json:"message,omitempty"`
	AcceptsMarketing    bool   `json:"acceptsMarketing"`
	AcceptsSmsMarketing bool   `json:"acceptsSmsMarketing"`
}

// ShippingAddress is the delivery block attached on submit.
type ShippingAddress struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Company     string `json:"company,omitempty"`
	Address1    string `json:"address1,omitempty"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city,omitempty"`
	Zip         string `json:"zip,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Submission is the terminal payload that turns a draft into a quote request.
type Submission struct {
	CustomerInfo    CustomerInfo     `json:"customerInfo"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	Comments        string           `json:"comments,omitempty"`
	CompanyName     string           `json:"companyName,omitempty"`
	FileUploadURL   string           `json:"fileUploadUrl,omitempty"`
	SendEmail       bool             `json:"sendEmail"`
}
