package services

import (
	"context"

	"github.com/orbitlettings/orbit-api/internal/backend"
	"github.com/orbitlettings/orbit-api/internal/entities"
	"github.com/orbitlettings/orbit-api/internal/logger"
	"github.com/orbitlettings/orbit-api/internal/models"
	"github.com/orbitlettings/orbit-api/internal/search"
)

// FeaturedLimit is how many listings the home page shows.
const FeaturedLimit = 3

// availableCriteria is the server-side predicate every visitor-facing page
// fetches with; the remaining criteria are applied locally by the filter
// pipeline.
func availableCriteria() map[string]interface{} {
	return map[string]interface{}{"status": string(models.PropertyStatusAvailable)}
}

// HomeData is the home page payload: the most recent available listings.
type HomeData struct {
	Featured []models.Property `json:"featured"`
}

// BrowseData is the browsing page payload. Total counts the fetched base
// collection; Matched counts the subset surviving the filter pipeline.
type BrowseData struct {
	Properties []models.Property `json:"properties"`
	Total      int               `json:"total"`
	Matched    int               `json:"matched"`
}

// ApplyData is the application page payload: the selectable properties and
// the preselected property id echoed from the query string. The id is not
// validated against the list; referential integrity belongs to the backend.
type ApplyData struct {
	Properties         []models.Property `json:"properties"`
	SelectedPropertyID string            `json:"selected_property_id,omitempty"`
}

// DashboardStats are the headline numbers on the staff dashboard.
type DashboardStats struct {
	TotalProperties     int `json:"total_properties"`
	AvailableProperties int `json:"available_properties"`
	TotalInquiries      int `json:"total_inquiries"`
}

// DashboardData is the staff dashboard payload. User is nil when the caller
// is not authenticated; the dashboard is read-only either way.
type DashboardData struct {
	User       *models.User           `json:"user,omitempty"`
	Properties []models.Property      `json:"properties"`
	Inquiries  []models.TenantInquiry `json:"inquiries"`
	Stats      DashboardStats         `json:"stats"`
}

// PageService assembles page payloads from the entities facade. None of its
// methods return errors: the facade's defaulted results mean the worst case
// is an empty page, never a failed one.
type PageService interface {
	// HomePage returns the featured listings for the landing page.
	HomePage(ctx context.Context) HomeData

	// BrowseProperties fetches the available listings and applies the
	// local filter pipeline with the given criteria.
	BrowseProperties(ctx context.Context, criteria search.Criteria) BrowseData

	// PropertyDetails returns the property with the given id, or nil when
	// it does not exist or the backend fails.
	PropertyDetails(ctx context.Context, id string) *models.Property

	// ApplyOptions returns the selectable properties for the application
	// form, echoing back the preselected id from the query string.
	ApplyOptions(ctx context.Context, preselectedID string) ApplyData

	// SubmitApplication creates a tenant inquiry exactly once.
	SubmitApplication(ctx context.Context, payload models.InquiryPayload) entities.CreateResult

	// Dashboard returns the staff overview of properties and inquiries.
	Dashboard(ctx context.Context) DashboardData
}

// pageService is the concrete implementation of PageService.
type pageService struct {
	facade *entities.Facade
	log    *logger.Logger
}

// NewPageService creates a new instance of PageService.
func NewPageService(facade *entities.Facade, log *logger.Logger) PageService {
	return &pageService{
		facade: facade,
		log:    log,
	}
}

func (s *pageService) HomePage(ctx context.Context) HomeData {
	featured := s.facade.Properties.Filter(ctx, availableCriteria(), backend.DefaultSort, FeaturedLimit)

	s.log.Debug("Home page assembled", map[string]interface{}{
		"featured": len(featured),
	})

	return HomeData{Featured: featured}
}

func (s *pageService) BrowseProperties(ctx context.Context, criteria search.Criteria) BrowseData {
	base := s.facade.Properties.Filter(ctx, availableCriteria(), backend.DefaultSort, 0)
	matched := search.Apply(base, criteria)

	s.log.Info("Browse page assembled", map[string]interface{}{
		"fetched": len(base),
		"matched": len(matched),
	})

	return BrowseData{
		Properties: matched,
		Total:      len(base),
		Matched:    len(matched),
	}
}

func (s *pageService) PropertyDetails(ctx context.Context, id string) *models.Property {
	// The details page selects by id through the filter operation, taking
	// the first match. An empty result is the not-found signal.
	results := s.facade.Properties.Filter(ctx, map[string]interface{}{"id": id}, "", 0)
	if len(results) == 0 {
		s.log.Debug("Property not found", map[string]interface{}{
			"id": id,
		})
		return nil
	}
	return &results[0]
}

func (s *pageService) ApplyOptions(ctx context.Context, preselectedID string) ApplyData {
	available := s.facade.Properties.Filter(ctx, availableCriteria(), backend.DefaultSort, 0)

	return ApplyData{
		Properties:         available,
		SelectedPropertyID: preselectedID,
	}
}

func (s *pageService) SubmitApplication(ctx context.Context, payload models.InquiryPayload) entities.CreateResult {
	s.log.Info("Submitting tenant application", map[string]interface{}{
		"property_id": payload.PropertyID,
	})

	result := s.facade.Inquiries.Create(ctx, payload)
	if !result.OK {
		s.log.Warn("Tenant application was not accepted", map[string]interface{}{
			"property_id": payload.PropertyID,
			"error":       result.Error,
		})
	}
	return result
}

func (s *pageService) Dashboard(ctx context.Context) DashboardData {
	user := s.facade.Users.Me(ctx)
	properties := s.facade.Properties.List(ctx, backend.DefaultSort)
	inquiries := s.facade.Inquiries.List(ctx, backend.DefaultSort)

	available := 0
	for _, p := range properties {
		if p.Status == models.PropertyStatusAvailable {
			available++
		}
	}

	s.log.Info("Dashboard assembled", map[string]interface{}{
		"properties":    len(properties),
		"inquiries":     len(inquiries),
		"authenticated": user != nil,
	})

	return DashboardData{
		User:       user,
		Properties: properties,
		Inquiries:  inquiries,
		Stats: DashboardStats{
			TotalProperties:     len(properties),
			AvailableProperties: available,
			TotalInquiries:      len(inquiries),
		},
	}
}
