// Package entities is the fault-tolerant facade over the remote backend's
// resource collections. Every operation catches the underlying failure,
// logs it exactly once with an operation-identifying message, and returns a
// typed-safe default (empty slice, nil, or an ok:false result) instead of
// propagating an error. Callers can therefore assume success-shaped results
// and branch only on emptiness, nilness, or the OK flag.
package entities

import (
	"context"

	"github.com/orbitlettings/orbit-api/internal/backend"
	"github.com/orbitlettings/orbit-api/internal/logger"
	"github.com/orbitlettings/orbit-api/internal/models"
	"github.com/orbitlettings/orbit-api/internal/observability/metrics"
)

// PropertyReader is the facade surface for the Property collection.
type PropertyReader interface {
	// List returns every property ordered by sort, or an empty slice on
	// any failure.
	List(ctx context.Context, sort string) []models.Property

	// Filter returns properties matching the server-side criteria object,
	// or an empty slice on any failure. A limit of 0 means no limit.
	Filter(ctx context.Context, criteria map[string]interface{}, sort string, limit int) []models.Property

	// Get returns the property with the given id, or nil when it does not
	// exist or the backend fails.
	Get(ctx context.Context, id string) *models.Property
}

// InquiryStore is the facade surface for the TenantInquiry collection.
type InquiryStore interface {
	// Create submits a tenant application. On failure the result carries
	// OK=false and the failure message; it never returns an error.
	Create(ctx context.Context, payload models.InquiryPayload) CreateResult

	// List returns every inquiry ordered by sort, or an empty slice on any
	// failure.
	List(ctx context.Context, sort string) []models.TenantInquiry
}

// UserReader is the facade surface for the backend's auth collection.
type UserReader interface {
	// Me returns the currently authenticated user, or nil on failure or
	// when unauthenticated.
	Me(ctx context.Context) *models.User
}

// CreateResult is the defaulted result shape for inquiry creation. The
// failure message is preserved because an ok flag alone tells the caller
// nothing actionable.
type CreateResult struct {
	OK      bool                  `json:"ok"`
	Error   string                `json:"error,omitempty"`
	Inquiry *models.TenantInquiry `json:"inquiry,omitempty"`
}

// Facade bundles the three collection surfaces behind the uniform recovery
// policy.
type Facade struct {
	Properties PropertyReader
	Inquiries  InquiryStore
	Users      UserReader
}

// New creates a Facade over the given backend API.
func New(api backend.API, log *logger.Logger) *Facade {
	flog := log.WithComponent("entities")
	return &Facade{
		Properties: &properties{api: api, log: flog},
		Inquiries:  &inquiries{api: api, log: flog},
		Users:      &users{api: api, log: flog},
	}
}

type properties struct {
	api backend.API
	log *logger.Logger
}

func (p *properties) List(ctx context.Context, sort string) []models.Property {
	result, err := p.api.ListProperties(ctx, sort)
	if err != nil {
		p.log.Error("Property.list failed", err, map[string]interface{}{
			"sort": sort,
		})
		metrics.ObserveFacadeFailure("Property.list")
		return []models.Property{}
	}
	if result == nil {
		result = []models.Property{}
	}
	return result
}

func (p *properties) Filter(ctx context.Context, criteria map[string]interface{}, sort string, limit int) []models.Property {
	result, err := p.api.FilterProperties(ctx, criteria, sort, limit)
	if err != nil {
		p.log.Error("Property.filter failed", err, map[string]interface{}{
			"criteria": criteria,
			"sort":     sort,
			"limit":    limit,
		})
		metrics.ObserveFacadeFailure("Property.filter")
		return []models.Property{}
	}
	if result == nil {
		result = []models.Property{}
	}
	return result
}

func (p *properties) Get(ctx context.Context, id string) *models.Property {
	property, err := p.api.GetProperty(ctx, id)
	if err != nil {
		p.log.Error("Property.get failed", err, map[string]interface{}{
			"id": id,
		})
		metrics.ObserveFacadeFailure("Property.get")
		return nil
	}
	return property
}

type inquiries struct {
	api backend.API
	log *logger.Logger
}

func (i *inquiries) Create(ctx context.Context, payload models.InquiryPayload) CreateResult {
	inquiry, err := i.api.CreateInquiry(ctx, payload)
	if err != nil {
		i.log.Error("TenantInquiry.create failed", err, map[string]interface{}{
			"property_id": payload.PropertyID,
		})
		metrics.ObserveFacadeFailure("TenantInquiry.create")
		metrics.ObserveInquirySubmission("failure")
		return CreateResult{OK: false, Error: err.Error()}
	}
	metrics.ObserveInquirySubmission("success")
	return CreateResult{OK: true, Inquiry: inquiry}
}

func (i *inquiries) List(ctx context.Context, sort string) []models.TenantInquiry {
	result, err := i.api.ListInquiries(ctx, sort)
	if err != nil {
		i.log.Error("TenantInquiry.list failed", err, map[string]interface{}{
			"sort": sort,
		})
		metrics.ObserveFacadeFailure("TenantInquiry.list")
		return []models.TenantInquiry{}
	}
	if result == nil {
		result = []models.TenantInquiry{}
	}
	return result
}

type users struct {
	api backend.API
	log *logger.Logger
}

func (u *users) Me(ctx context.Context) *models.User {
	user, err := u.api.Me(ctx)
	if err != nil {
		u.log.Error("User.me failed", err, nil)
		metrics.ObserveFacadeFailure("User.me")
		return nil
	}
	return user
}
