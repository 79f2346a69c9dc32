package enquiry

import (
	"context"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/diarmuidw/enquiry-backend/internal/draftorders"
	"github.com/diarmuidw/enquiry-backend/internal/products"
	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

// DraftAPI is the remote surface the reconciler drives. Every write is a full
// list replacement: the remote store has no partial update, so each logical
// single-item edit reads the list, modifies it, and resubmits it. Two
// concurrent editors can race and the later write wins; callers are expected
// to treat the returned list as the authoritative outcome.
type DraftAPI interface {
	CreateDraft(ctx context.Context, items []draftorders.Item) (draftorders.Credential, error)
	GetDraft(ctx context.Context, cred draftorders.Credential) ([]draftorders.Item, error)
	UpdateDraft(ctx context.Context, cred draftorders.Credential, items []draftorders.Item) error
	DeleteDraft(ctx context.Context, cred draftorders.Credential) error
	UpdateEmail(ctx context.Context, cred draftorders.Credential, email string) error
	Submit(ctx context.Context, cred draftorders.Credential, sub draftorders.Submission) error
	EnrichProducts(ctx context.Context, gids []string) (map[string]draftorders.EnrichedProduct, error)
}

// SubmittedEvent is published after a successful enquiry submission.
type SubmittedEvent struct {
	DraftOrderID string    `json:"draft_order_id"`
	Email        string    `json:"email"`
	ItemCount    int       `json:"item_count"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Publisher emits enquiry lifecycle events. Optional; a nil publisher disables eventing.
type Publisher interface {
	PublishSubmitted(ctx context.Context, event SubmittedEvent) error
}

// ServiceParams groups dependencies for the enquiry service.
type ServiceParams struct {
	Drafts         DraftAPI
	Cache          *products.Cache
	Logger         *logger.Logger
	Publisher      Publisher
	DebounceWindow time.Duration
}

// Service owns the enquiry draft lifecycle: item reconciliation, credential
// transitions, enrichment, and submission.
type Service struct {
	drafts    DraftAPI
	cache     *products.Cache
	logg      *logger.Logger
	publisher Publisher
	coalescer *QuantityCoalescer
}

// NewService builds the enquiry service with the required dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.Drafts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft api client is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}

	s := &Service{
		drafts:    params.Drafts,
		cache:     params.Cache,
		logg:      params.Logger,
		publisher: params.Publisher,
	}
	s.coalescer = NewQuantityCoalescer(params.DebounceWindow, s.applyQuantity)
	return s, nil
}

// Start enables the quantity write coalescer.
func (s *Service) Start() {
	s.coalescer.Start()
}

// Stop cancels pending coalesced writes.
func (s *Service) Stop() {
	s.coalescer.Stop()
}

// AddItemInput describes the variant being added and its display metadata.
type AddItemInput struct {
	VariantID    string
	ProductGID   string
	Quantity     int
	Title        string
	VariantTitle string
	Image        string
	Vendor       string
	Handle       string
	URL          string
}

// MutationResult reports the written list plus any credential transition the
// HTTP layer must persist.
type MutationResult struct {
	Items           []draftorders.Item
	Count           int
	Credential      *draftorders.Credential
	ClearCredential bool
}

// AddItem merges a variant into the draft, creating the draft when no live
// credential exists. Adding an already-present variant adds the quantities.
func (s *Service) AddItem(ctx context.Context, cred draftorders.Credential, input AddItemInput) (MutationResult, error) {
	if strings.TrimSpace(input.VariantID) == "" {
		return MutationResult{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	newItem := draftorders.Item{
		VariantID:    input.VariantID,
		ProductGID:   input.ProductGID,
		Quantity:     clampQuantity(input.Quantity),
		Title:        input.Title,
		VariantTitle: input.VariantTitle,
		Image:        input.Image,
		Vendor:       input.Vendor,
		Handle:       input.Handle,
		URL:          input.URL,
	}

	if !cred.Valid() {
		return s.createWith(ctx, newItem)
	}

	existing, err := s.drafts.GetDraft(ctx, cred)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			// The stored credential points at a dead draft; start over.
			return s.createWith(ctx, newItem)
		}
		return MutationResult{}, err
	}

	merged := mergeItem(existing, newItem)
	if err := s.drafts.UpdateDraft(ctx, cred, merged); err != nil {
		return MutationResult{}, err
	}

	count := sumQuantities(merged)
	s.mirror(ctx, cred.DraftOrderID, merged, count)
	return MutationResult{Items: merged, Count: count}, nil
}

func (s *Service) createWith(ctx context.Context, item draftorders.Item) (MutationResult, error) {
	items := []draftorders.Item{item}
	cred, err := s.drafts.CreateDraft(ctx, items)
	if err != nil {
		return MutationResult{}, err
	}

	count := sumQuantities(items)
	s.mirror(ctx, cred.DraftOrderID, items, count)
	return MutationResult{
		Items:      items,
		Count:      count,
		Credential: &cred,
	}, nil
}

// ListResult carries the reconciled item list. Degraded means the remote read
// failed for a reason other than a dead credential: the list is empty but the
// credential must not be cleared.
type ListResult struct {
	Items           []draftorders.Item
	Count           int
	Degraded        bool
	ClearCredential bool
}

// List reads the draft and merges enrichment metadata into it. Enrichment
// failure falls back to cached hints and then to the bare server list.
func (s *Service) List(ctx context.Context, cred draftorders.Credential) (ListResult, error) {
	if !cred.Valid() {
		return ListResult{Items: []draftorders.Item{}}, nil
	}

	items, err := s.drafts.GetDraft(ctx, cred)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			s.cacheClear(ctx, cred.DraftOrderID)
			return ListResult{Items: []draftorders.Item{}, ClearCredential: true}, nil
		}
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "draft read failed, serving empty list")
		return ListResult{Items: []draftorders.Item{}, Degraded: true}, nil
	}

	items = s.enrich(ctx, cred.DraftOrderID, items)
	count := sumQuantities(items)
	s.mirror(ctx, cred.DraftOrderID, items, count)
	return ListResult{Items: items, Count: count}, nil
}

// QuantityResult echoes the accepted quantity; the network write is deferred
// behind the coalescing window.
type QuantityResult struct {
	VariantID string
	Quantity  int
	Deferred  bool
}

// SetQuantity clamps the requested quantity and schedules the coalesced write.
func (s *Service) SetQuantity(ctx context.Context, cred draftorders.Credential, variantID string, quantity int) (QuantityResult, error) {
	if !cred.Valid() {
		return QuantityResult{}, pkgerrors.New(pkgerrors.CodeValidation, "no active enquiry draft")
	}
	if strings.TrimSpace(variantID) == "" {
		return QuantityResult{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	quantity = clampQuantity(quantity)
	s.coalescer.Schedule(cred, variantID, quantity)
	return QuantityResult{VariantID: variantID, Quantity: quantity, Deferred: true}, nil
}

// applyQuantity is the coalescer's flush target: a full read-modify-write for
// the latest requested quantity. Failures are logged, never surfaced; the
// user re-triggers by editing again.
func (s *Service) applyQuantity(ctx context.Context, cred draftorders.Credential, variantID string, quantity int) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"draft_order_id": cred.DraftOrderID,
		"variant_id":     variantID,
	})

	items, err := s.drafts.GetDraft(ctx, cred)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "deferred quantity read failed")
		return
	}

	found := false
	for i := range items {
		if items[i].VariantID == variantID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		s.logg.Warn(ctx, "deferred quantity target no longer in draft")
		return
	}

	if err := s.drafts.UpdateDraft(ctx, cred, items); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "deferred quantity write failed")
		return
	}
	s.mirror(ctx, cred.DraftOrderID, items, sumQuantities(items))
}

// RemoveItem filters the variant out of the draft. When the filtered list is
// empty the draft itself is deleted and the credential must be cleared.
func (s *Service) RemoveItem(ctx context.Context, cred draftorders.Credential, variantID string) (MutationResult, error) {
	if !cred.Valid() {
		return MutationResult{Items: []draftorders.Item{}}, nil
	}

	items, err := s.drafts.GetDraft(ctx, cred)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			s.cacheClear(ctx, cred.DraftOrderID)
			return MutationResult{Items: []draftorders.Item{}, ClearCredential: true}, nil
		}
		return MutationResult{}, err
	}

	filtered := make([]draftorders.Item, 0, len(items))
	for _, item := range items {
		if item.VariantID != variantID {
			filtered = append(filtered, item)
		}
	}

	if len(filtered) == len(items) {
		// Variant already gone; nothing to write.
		count := sumQuantities(items)
		return MutationResult{Items: items, Count: count}, nil
	}

	if len(filtered) == 0 {
		if err := s.drafts.DeleteDraft(ctx, cred); err != nil {
			return MutationResult{}, err
		}
		s.cacheClear(ctx, cred.DraftOrderID)
		return MutationResult{Items: filtered, ClearCredential: true}, nil
	}

	if err := s.drafts.UpdateDraft(ctx, cred, filtered); err != nil {
		return MutationResult{}, err
	}

	count := sumQuantities(filtered)
	s.mirror(ctx, cred.DraftOrderID, filtered, count)
	return MutationResult{Items: filtered, Count: count}, nil
}

// UpdateEmail captures the customer's email before submission.
func (s *Service) UpdateEmail(ctx context.Context, cred draftorders.Credential, email string) error {
	if !cred.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "no active enquiry draft")
	}
	return s.drafts.UpdateEmail(ctx, cred, email)
}

// Submit finalizes the enquiry. On success the caller clears the credential;
// cache cleanup and event publication are best-effort and never fail the
// submission that already happened.
func (s *Service) Submit(ctx context.Context, cred draftorders.Credential, sub draftorders.Submission) error {
	if !cred.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "no active enquiry draft")
	}
	if strings.TrimSpace(sub.CustomerInfo.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	sub.CustomerInfo.Phone = NormalizePhone(sub.CustomerInfo.Phone, submissionCountry(sub))
	if sub.ShippingAddress != nil {
		sub.ShippingAddress.Phone = NormalizePhone(sub.ShippingAddress.Phone, sub.ShippingAddress.CountryCode)
	}

	itemCount := 0
	if items, err := s.drafts.GetDraft(ctx, cred); err == nil {
		itemCount = sumQuantities(items)
	}

	if err := s.drafts.Submit(ctx, cred, sub); err != nil {
		return err
	}

	var cleanup error
	s.cacheClear(ctx, cred.DraftOrderID)
	if s.publisher != nil {
		event := SubmittedEvent{
			DraftOrderID: cred.DraftOrderID,
			Email:        sub.CustomerInfo.Email,
			ItemCount:    itemCount,
			SubmittedAt:  time.Now().UTC(),
		}
		cleanup = multierr.Append(cleanup, s.publisher.PublishSubmitted(ctx, event))
	}
	if cleanup != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", cleanup.Error()), "post-submit cleanup incomplete")
	}
	return nil
}

// CountResult is the header-badge answer.
type CountResult struct {
	Count           int
	FromCache       bool
	Degraded        bool
	ClearCredential bool
}

// Count returns the total quantity across the draft. The Redis mirror answers
// first so the badge survives remote-API outages.
func (s *Service) Count(ctx context.Context, cred draftorders.Credential) (CountResult, error) {
	if !cred.Valid() {
		return CountResult{}, nil
	}

	if count, ok := s.cache.Count(ctx, cred.DraftOrderID); ok {
		return CountResult{Count: count, FromCache: true}, nil
	}

	items, err := s.drafts.GetDraft(ctx, cred)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			s.cacheClear(ctx, cred.DraftOrderID)
			return CountResult{ClearCredential: true}, nil
		}
		return CountResult{Degraded: true}, nil
	}

	count := sumQuantities(items)
	s.cache.SetCount(ctx, cred.DraftOrderID, count)
	return CountResult{Count: count}, nil
}

// enrich overlays vendor/handle/image metadata onto the server list. Fresh
// enrichment wins; cached hints cover an enrichment outage; otherwise the
// bare list ships as-is.
func (s *Service) enrich(ctx context.Context, draftID string, items []draftorders.Item) []draftorders.Item {
	gids := uniqueProductGIDs(items)
	if len(gids) == 0 {
		return items
	}

	enriched, err := s.drafts.EnrichProducts(ctx, gids)
	if err != nil {
		s.logg.Debug(s.logg.WithField(ctx, "error", err.Error()), "enrichment unavailable, using cached hints")
		hints := s.cache.Hints(ctx, draftID)
		for i := range items {
			if hint, ok := hints[items[i].VariantID]; ok {
				if items[i].Image == "" {
					items[i].Image = hint.Image
				}
				if items[i].Vendor == "" {
					items[i].Vendor = hint.Vendor
				}
			}
		}
		return items
	}

	for i := range items {
		meta, ok := enriched[items[i].ProductGID]
		if !ok {
			continue
		}
		if meta.Vendor != "" {
			items[i].Vendor = meta.Vendor
		}
		if meta.Handle != "" {
			items[i].Handle = meta.Handle
			items[i].URL = "/products/" + meta.Handle
		}
		if meta.Image != "" {
			items[i].Image = meta.Image
		}
	}
	return items
}

func (s *Service) mirror(ctx context.Context, draftID string, items []draftorders.Item, count int) {
	if s.cache == nil {
		return
	}
	s.cache.SetCount(ctx, draftID, count)

	hints := make(map[string]products.Hint, len(items))
	for _, item := range items {
		if item.Image == "" && item.Vendor == "" {
			continue
		}
		hints[item.VariantID] = products.Hint{Image: item.Image, Vendor: item.Vendor}
	}
	s.cache.StoreHints(ctx, draftID, hints)
}

func (s *Service) cacheClear(ctx context.Context, draftID string) {
	if s.cache == nil {
		return
	}
	s.cache.Clear(ctx, draftID)
}

func mergeItem(existing []draftorders.Item, incoming draftorders.Item) []draftorders.Item {
	merged := make([]draftorders.Item, len(existing))
	copy(merged, existing)

	for i := range merged {
		if merged[i].VariantID == incoming.VariantID {
			merged[i].Quantity += incoming.Quantity
			return merged
		}
	}
	return append(merged, incoming)
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func sumQuantities(items []draftorders.Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func uniqueProductGIDs(items []draftorders.Item) []string {
	seen := map[string]struct{}{}
	gids := []string{}
	for _, item := range items {
		gid := strings.TrimSpace(item.ProductGID)
		if gid == "" {
			continue
		}
		if _, ok := seen[gid]; ok {
			continue
		}
		seen[gid] = struct{}{}
		gids = append(gids, gid)
	}
	return gids
}

func submissionCountry(sub draftorders.Submission) string {
	if sub.ShippingAddress != nil && sub.ShippingAddress.CountryCode != "" {
		return sub.ShippingAddress.CountryCode
	}
	return sub.CustomerInfo.Country
}
