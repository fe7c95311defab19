package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/orbitlettings/orbit-api/internal/backend"
	apierrors "github.com/orbitlettings/orbit-api/internal/errors"
	"github.com/orbitlettings/orbit-api/internal/middleware"
	"github.com/orbitlettings/orbit-api/internal/models"
	"github.com/orbitlettings/orbit-api/internal/pages"
	"github.com/orbitlettings/orbit-api/internal/search"
	"github.com/orbitlettings/orbit-api/internal/services"
)

// PageHandler serves the site's page payloads.
type PageHandler struct {
	service services.PageService
}

// NewPageHandler creates a new PageHandler instance.
func NewPageHandler(service services.PageService) *PageHandler {
	return &PageHandler{
		service: service,
	}
}

// BrowseRequest represents the filter query parameters of the browsing page.
// The bounds mirror the original filter widgets; the pipeline itself does
// not enforce them.
type BrowseRequest struct {
	PropertyType string  `form:"property_type" binding:"omitempty,oneof=all apartment house studio penthouse townhouse"`
	MinBedrooms  int     `form:"min_bedrooms" binding:"omitempty,min=0,max=5"`
	MaxPrice     float64 `form:"max_price" binding:"omitempty,gt=0"`
	Furnished    string  `form:"furnished" binding:"omitempty,oneof=all yes no"`
	PetsAllowed  string  `form:"pets_allowed" binding:"omitempty,oneof=all yes no"`
}

// criteria converts the bound request into pipeline criteria, filling in
// the browsing page's defaults for parameters that were not supplied.
func (r *BrowseRequest) criteria() search.Criteria {
	c := search.DefaultCriteria()
	if r.PropertyType != "" {
		c.PropertyType = r.PropertyType
	}
	c.MinBedrooms = r.MinBedrooms
	if r.MaxPrice > 0 {
		c.MaxPrice = r.MaxPrice
	}
	if r.Furnished != "" {
		c.Furnished = r.Furnished
	}
	if r.PetsAllowed != "" {
		c.PetsAllowed = r.PetsAllowed
	}
	return c
}

// ApplicationRequest represents the tenant application form body. Field
// constraints stand in for the original form's widget constraints; note
// that property_id is deliberately NOT required, matching the form's
// current submit behavior.
type ApplicationRequest struct {
	PropertyID        string     `json:"property_id"`
	FullName          string     `json:"full_name" binding:"required"`
	Email             string     `json:"email" binding:"required,email"`
	Phone             string     `json:"phone" binding:"required"`
	CurrentAddress    string     `json:"current_address"`
	EmploymentStatus  string     `json:"employment_status" binding:"omitempty,oneof=employed self_employed student retired other"`
	AnnualIncome      *float64   `json:"annual_income" binding:"omitempty,gt=0"`
	MoveInDate        *time.Time `json:"move_in_date"`
	NumberOfOccupants int        `json:"number_of_occupants" binding:"omitempty,min=1"`
	HasPets           bool       `json:"has_pets"`
	AdditionalNotes   string     `json:"additional_notes"`
}

// payload converts the bound form into the outbound inquiry payload,
// applying the form's defaults for employment status and occupants.
func (r *ApplicationRequest) payload() models.InquiryPayload {
	employment := models.EmploymentStatus(r.EmploymentStatus)
	if employment == "" {
		employment = models.EmploymentStatusEmployed
	}
	occupants := r.NumberOfOccupants
	if occupants == 0 {
		occupants = 1
	}

	return models.InquiryPayload{
		PropertyID:        r.PropertyID,
		FullName:          r.FullName,
		Email:             r.Email,
		Phone:             r.Phone,
		CurrentAddress:    r.CurrentAddress,
		EmploymentStatus:  employment,
		AnnualIncome:      r.AnnualIncome,
		MoveInDate:        r.MoveInDate,
		NumberOfOccupants: occupants,
		HasPets:           r.HasPets,
		AdditionalNotes:   r.AdditionalNotes,
	}
}

// PropertyDetailsResponse wraps the details page payload.
type PropertyDetailsResponse struct {
	Property *models.Property `json:"property"`
}

// ResolveResponse is the route resolution payload.
type ResolveResponse struct {
	Page string `json:"page"`
	URL  string `json:"url"`
}

// Home handles GET /api/v1/pages/home.
// It returns the most recent available listings for the landing page.
func (h *PageHandler) Home(c *gin.Context) {
	data := h.service.HomePage(requestContext(c))
	c.JSON(http.StatusOK, data)
}

// Browse handles GET /api/v1/pages/properties.
// It fetches available listings and applies the local filter pipeline with
// criteria bound from the query string.
func (h *PageHandler) Browse(c *gin.Context) {
	var req BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid filter parameters", nil)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Processing browse request", map[string]interface{}{
			"criteria": req,
		})
	}

	data := h.service.BrowseProperties(requestContext(c), req.criteria())
	c.JSON(http.StatusOK, data)
}

// Details handles GET /api/v1/pages/property-details.
// The page selects a property with the id query parameter; an empty facade
// result is surfaced as a not-found state, not an error.
func (h *PageHandler) Details(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		apierrors.BadRequest(c, "The id query parameter is required", nil)
		return
	}

	property := h.service.PropertyDetails(requestContext(c), id)
	if property == nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	c.JSON(http.StatusOK, PropertyDetailsResponse{Property: property})
}

// ApplyOptions handles GET /api/v1/pages/apply.
// It returns the selectable properties for the application form and echoes
// back the preselected property id from the query string, unvalidated.
func (h *PageHandler) ApplyOptions(c *gin.Context) {
	data := h.service.ApplyOptions(requestContext(c), c.Query("property"))
	c.JSON(http.StatusOK, data)
}

// SubmitApplication handles POST /api/v1/pages/apply.
// A facade failure yields a 502 with the defaulted ok:false result; binding
// problems are the only client errors this endpoint produces.
func (h *PageHandler) SubmitApplication(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid application body", nil)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Processing application submission", map[string]interface{}{
			"property_id": req.PropertyID,
		})
	}

	result := h.service.SubmitApplication(requestContext(c), req.payload())
	if !result.OK {
		c.JSON(http.StatusBadGateway, result)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Dashboard handles GET /api/v1/pages/dashboard.
// The caller's bearer token, when present, is passed through to the
// backend's auth surface; an unauthenticated dashboard still renders.
func (h *PageHandler) Dashboard(c *gin.Context) {
	data := h.service.Dashboard(requestContext(c))
	c.JSON(http.StatusOK, data)
}

// Resolve handles GET /api/v1/pages/resolve.
// It maps an arbitrary site path to a page in the static registry, falling
// back to the home page for unknown paths.
func (h *PageHandler) Resolve(c *gin.Context) {
	page := pages.Resolve(c.Query("path"))
	c.JSON(http.StatusOK, ResolveResponse{
		Page: string(page),
		URL:  page.URL(),
	})
}

// requestContext returns the request's context, enriched with the caller's
// bearer token when an Authorization header is present.
func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && token != "" {
		ctx = backend.WithAuthToken(ctx, token)
	}
	return ctx
}
