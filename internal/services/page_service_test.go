package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orbitlettings/orbit-api/internal/backend"
	"github.com/orbitlettings/orbit-api/internal/entities"
	"github.com/orbitlettings/orbit-api/internal/logger"
	"github.com/orbitlettings/orbit-api/internal/models"
	"github.com/orbitlettings/orbit-api/internal/search"
)

// MockPropertyReader is a mock implementation of entities.PropertyReader.
type MockPropertyReader struct {
	mock.Mock
}

func (m *MockPropertyReader) List(ctx context.Context, sort string) []models.Property {
	args := m.Called(ctx, sort)
	return args.Get(0).([]models.Property)
}

func (m *MockPropertyReader) Filter(ctx context.Context, criteria map[string]interface{}, sort string, limit int) []models.Property {
	args := m.Called(ctx, criteria, sort, limit)
	return args.Get(0).([]models.Property)
}

func (m *MockPropertyReader) Get(ctx context.Context, id string) *models.Property {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Property)
}

// MockInquiryStore is a mock implementation of entities.InquiryStore.
type MockInquiryStore struct {
	mock.Mock
}

func (m *MockInquiryStore) Create(ctx context.Context, payload models.InquiryPayload) entities.CreateResult {
	args := m.Called(ctx, payload)
	return args.Get(0).(entities.CreateResult)
}

func (m *MockInquiryStore) List(ctx context.Context, sort string) []models.TenantInquiry {
	args := m.Called(ctx, sort)
	return args.Get(0).([]models.TenantInquiry)
}

// MockUserReader is a mock implementation of entities.UserReader.
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) Me(ctx context.Context) *models.User {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.User)
}

type serviceMocks struct {
	properties *MockPropertyReader
	inquiries  *MockInquiryStore
	users      *MockUserReader
}

func newTestService() (PageService, serviceMocks) {
	mocks := serviceMocks{
		properties: new(MockPropertyReader),
		inquiries:  new(MockInquiryStore),
		users:      new(MockUserReader),
	}
	facade := &entities.Facade{
		Properties: mocks.properties,
		Inquiries:  mocks.inquiries,
		Users:      mocks.users,
	}
	return NewPageService(facade, logger.New("test")), mocks
}

func availableFilter() map[string]interface{} {
	return map[string]interface{}{"status": "available"}
}

func TestHomePage_FetchesThreeFeaturedListings(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	featured := []models.Property{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}
	mocks.properties.On("Filter", ctx, availableFilter(), backend.DefaultSort, FeaturedLimit).
		Return(featured)

	data := service.HomePage(ctx)

	assert.Equal(t, featured, data.Featured)
	mocks.properties.AssertExpectations(t)
}

func TestBrowseProperties_AppliesLocalFilterPipeline(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	base := []models.Property{
		{ID: "p1", PricePerMonth: 800, Status: models.PropertyStatusAvailable},
		{ID: "p2", PricePerMonth: 1500, Status: models.PropertyStatusAvailable},
		{ID: "p3", PricePerMonth: 3000, Status: models.PropertyStatusAvailable},
	}
	mocks.properties.On("Filter", ctx, availableFilter(), backend.DefaultSort, 0).Return(base)

	criteria := search.DefaultCriteria()
	criteria.MaxPrice = 2000
	data := service.BrowseProperties(ctx, criteria)

	assert.Equal(t, 3, data.Total)
	assert.Equal(t, 2, data.Matched)
	require.Len(t, data.Properties, 2)
	assert.Equal(t, "p1", data.Properties[0].ID)
	assert.Equal(t, "p2", data.Properties[1].ID)
}

func TestBrowseProperties_EmptyFetchYieldsEmptyPage(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	mocks.properties.On("Filter", ctx, availableFilter(), backend.DefaultSort, 0).
		Return([]models.Property{})

	data := service.BrowseProperties(ctx, search.DefaultCriteria())

	assert.Zero(t, data.Total)
	assert.Zero(t, data.Matched)
	assert.Empty(t, data.Properties)
}

func TestPropertyDetails_FirstMatchWins(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	mocks.properties.On("Filter", ctx, map[string]interface{}{"id": "p1"}, "", 0).
		Return([]models.Property{{ID: "p1", Title: "Loft"}})

	property := service.PropertyDetails(ctx, "p1")

	require.NotNil(t, property)
	assert.Equal(t, "Loft", property.Title)
}

func TestPropertyDetails_EmptyResultIsTheNotFoundSignal(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	mocks.properties.On("Filter", ctx, map[string]interface{}{"id": "nonexistent-id"}, "", 0).
		Return([]models.Property{})

	property := service.PropertyDetails(ctx, "nonexistent-id")

	assert.Nil(t, property)
}

func TestApplyOptions_EchoesPreselectedID(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	available := []models.Property{{ID: "p1"}, {ID: "p2"}}
	mocks.properties.On("Filter", ctx, availableFilter(), backend.DefaultSort, 0).Return(available)

	data := service.ApplyOptions(ctx, "p2")

	assert.Equal(t, available, data.Properties)
	assert.Equal(t, "p2", data.SelectedPropertyID)
}

func TestApplyOptions_PreselectedIDNotValidatedAgainstList(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	mocks.properties.On("Filter", ctx, availableFilter(), backend.DefaultSort, 0).
		Return([]models.Property{{ID: "p1"}})

	data := service.ApplyOptions(ctx, "not-in-the-list")

	assert.Equal(t, "not-in-the-list", data.SelectedPropertyID)
}

func TestSubmitApplication_Success(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	payload := models.InquiryPayload{PropertyID: "p1", FullName: "Jane Doe"}
	mocks.inquiries.On("Create", ctx, payload).Return(entities.CreateResult{
		OK:      true,
		Inquiry: &models.TenantInquiry{ID: "i1"},
	})

	result := service.SubmitApplication(ctx, payload)

	assert.True(t, result.OK)
	require.NotNil(t, result.Inquiry)
	assert.Equal(t, "i1", result.Inquiry.ID)
	mocks.inquiries.AssertExpectations(t)
}

func TestSubmitApplication_FailureCarriesError(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	payload := models.InquiryPayload{PropertyID: "p1"}
	mocks.inquiries.On("Create", ctx, payload).Return(entities.CreateResult{
		OK:    false,
		Error: "backend down",
	})

	result := service.SubmitApplication(ctx, payload)

	assert.False(t, result.OK)
	assert.Equal(t, "backend down", result.Error)
}

func TestDashboard_AssemblesStats(t *testing.T) {
	service, mocks := newTestService()

	ctx := context.Background()
	user := &models.User{ID: "u1", FullName: "Staff Member"}
	properties := []models.Property{
		{ID: "p1", Status: models.PropertyStatusAvailable},
		{ID: "p2", Status: models.PropertyStatusRented},
		{ID: "p3", Status: models.PropertyStatusAvailable},
	}
	inquiries := []models.TenantInquiry{{ID: "i1"}, {ID: "i2"}}

	mocks.users.On("Me", ctx).Return(user)
	mocks.properties.On("List", ctx, backend.DefaultSort).Return(properties)
	mocks.inquiries.On("List", ctx, backend.DefaultSort).Return(inquiries)

	data := service.Dashboard(ctx)

	assert.Equal(t, user, data.User)
	assert.Equal(t, 3, data.Stats.TotalProperties)
	assert.Equal(t, 2, data.Stats.AvailableProperties)
	assert.Equal(t, 2, data.Stats.TotalInquiries)
}

func TestDashboard_UnauthenticatedStillRendersData(t *testing.T) {
	// The facade returns nil for an unauthenticated user; the dashboard
	// payload degrades to anonymous rather than failing.
	service, mocks := newTestService()

	ctx := context.Background()
	mocks.users.On("Me", ctx).Return(nil)
	mocks.properties.On("List", ctx, backend.DefaultSort).Return([]models.Property{})
	mocks.inquiries.On("List", ctx, backend.DefaultSort).Return([]models.TenantInquiry{})

	data := service.Dashboard(ctx)

	assert.Nil(t, data.User)
	assert.Zero(t, data.Stats.TotalProperties)
	assert.Zero(t, data.Stats.TotalInquiries)
}
