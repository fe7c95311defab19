package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitlettings/orbit-api/internal/config"
	"github.com/orbitlettings/orbit-api/internal/models"
)

// newTestClient points a Client at the given test server.
func newTestClient(server *httptest.Server) *Client {
	return NewClient(config.BackendConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestListProperties_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entities/Property", r.URL.Path)
		assert.Equal(t, "-created_date", r.URL.Query().Get("sort"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode([]models.Property{
			{ID: "p1", Title: "Flat One"},
			{ID: "p2", Title: "Flat Two"},
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server)

	properties, err := client.ListProperties(context.Background(), DefaultSort)

	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "p1", properties[0].ID)
	assert.Equal(t, "p2", properties[1].ID)
}

func TestFilterProperties_EncodesCriteriaAndLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entities/Property", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))

		var criteria map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("q")), &criteria))
		assert.Equal(t, "available", criteria["status"])

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode([]models.Property{{ID: "p1"}})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server)

	criteria := map[string]interface{}{"status": "available"}
	properties, err := client.FilterProperties(context.Background(), criteria, DefaultSort, 3)

	require.NoError(t, err)
	require.Len(t, properties, 1)
}

func TestGetProperty_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server)

	property, err := client.GetProperty(context.Background(), "nonexistent-id")

	assert.Nil(t, property)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProperty_EscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entities/Property/some%20id", r.URL.EscapedPath())

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(models.Property{ID: "some id"})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server)

	property, err := client.GetProperty(context.Background(), "some id")

	require.NoError(t, err)
	assert.Equal(t, "some id", property.ID)
}

func TestCreateInquiry_PostsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/entities/TenantInquiry", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload models.InquiryPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Jane Doe", payload.FullName)
		assert.Equal(t, "p1", payload.PropertyID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		err := json.NewEncoder(w).Encode(models.TenantInquiry{
			ID:         "i1",
			PropertyID: payload.PropertyID,
			FullName:   payload.FullName,
			Status:     models.InquiryStatusNew,
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server)

	inquiry, err := client.CreateInquiry(context.Background(), models.InquiryPayload{
		PropertyID: "p1",
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "i1", inquiry.ID)
	assert.Equal(t, models.InquiryStatusNew, inquiry.Status)
}

func TestCreateInquiry_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server)

	inquiry, err := client.CreateInquiry(context.Background(), models.InquiryPayload{PropertyID: "p1"})

	assert.Nil(t, inquiry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestListInquiries_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entities/TenantInquiry", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode([]models.TenantInquiry{{ID: "i1"}})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server)

	inquiries, err := client.ListInquiries(context.Background(), DefaultSort)

	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "i1", inquiries[0].ID)
}

func TestMe_PassesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer staff-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(models.User{ID: "u1", FullName: "Staff Member"})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server)

	ctx := WithAuthToken(context.Background(), "staff-token")
	user, err := client.Me(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Staff Member", user.FullName)
}

func TestMe_Unauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server)

	user, err := client.Me(context.Background())

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDo_MalformedResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte("{not json"))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server)

	properties, err := client.ListProperties(context.Background(), "")

	assert.Nil(t, properties)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestDo_NetworkFailure(t *testing.T) {
	// A closed server simulates a network-level failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server)

	_, err := client.ListProperties(context.Background(), "")

	require.Error(t, err)
}
