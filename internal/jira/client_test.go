package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilCode12/jira-team-bot/config"
	"github.com/NikhilCode12/jira-team-bot/internal/model"
)

func testConfig(baseURL string) config.JiraConfig {
	return config.JiraConfig{
		BaseURL:               baseURL,
		Email:                 "bot@example.com",
		APIToken:              "token",
		Project:               "ZRA",
		IssueType:             "Bug",
		Label:                 "BetaConnect",
		EpicLink:              "ZRA-51",
		EpicFieldID:           "customfield_10014",
		CFEnvironment:         "customfield_14669",
		CFCustomerReportedBug: "customfield_15855",
		CFCustomerName:        "customfield_15856",
		CFModule:              "customfield_14720",
	}
}

func TestGetComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/project/ZRA/components", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "bot@example.com", user)
		assert.Equal(t, "token", pass)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "100", "name": "RA_FE"},
			{"id": "101", "name": "RA_BE"},
		})
	}))
	defer srv.Close()

	components, err := NewClient(testConfig(srv.URL)).GetComponents(context.Background(), "ZRA")
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, "100", components[0].ID)
	assert.Equal(t, "RA_FE", components[0].Name)
}

func TestGetComponentsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorMessages":["Unauthorized"]}`))
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL)).GetComponents(context.Background(), "ZRA")
	var upErr *model.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "jira", upErr.Service)
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.Equal(t, "Unauthorized", upErr.Detail)
}

func TestGetAssignableUsersQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/user/assignable/search", r.URL.Path)
		assert.Equal(t, "ZRA", r.URL.Query().Get("project"))
		assert.Equal(t, "50", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "aeras", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"accountId": "acc-1", "displayName": "Aeras Alvi", "emailAddress": "aeras@example.com"},
		})
	}))
	defer srv.Close()

	users, err := NewClient(testConfig(srv.URL)).GetAssignableUsers(context.Background(), "ZRA", "aeras")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "acc-1", users[0].AccountID)
}

func TestResolveComponentID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "100", "name": "RA_FE"},
			{"id": "101", "name": "Billing"},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	id, err := client.ResolveComponentID(context.Background(), "ZRA", "ra_fe")
	require.NoError(t, err)
	assert.Equal(t, "100", id)

	id, err = client.ResolveComponentID(context.Background(), "ZRA", "  Billing  ")
	require.NoError(t, err)
	assert.Equal(t, "101", id)

	id, err = client.ResolveComponentID(context.Background(), "ZRA", "Payments")
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestResolveUserAccountIDSubstringMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"accountId": "acc-1", "displayName": "John Smith"},
			{"accountId": "acc-2", "displayName": "Smithers Jones"},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	id, err := client.ResolveUserAccountID(context.Background(), "ZRA", "smith")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", id)

	id, err = client.ResolveUserAccountID(context.Background(), "ZRA", "nobody matches this")
	require.NoError(t, err)
	assert.Equal(t, "", id)

	// Blank names never hit the network.
	id, err = client.ResolveUserAccountID(context.Background(), "ZRA", "   ")
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestResolvePriorityID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/priority", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "1", "name": "Highest"},
			{"id": "3", "name": "Medium"},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	id, err := client.ResolvePriorityID(context.Background(), "highest")
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	// Equality, not substring.
	id, err = client.ResolvePriorityID(context.Background(), "High")
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestResolveDefaultComponent(t *testing.T) {
	testCases := []struct {
		name       string
		components []map[string]string
		preferred  []string
		fallbackID string
		want       string
	}{
		{
			name:       "preferred name wins",
			components: []map[string]string{{"id": "100", "name": "RA_FE"}},
			preferred:  []string{"RA_FE", "RA FE"},
			fallbackID: "999",
			want:       "100",
		},
		{
			name:       "second preferred name",
			components: []map[string]string{{"id": "200", "name": "RA FE"}},
			preferred:  []string{"RA_FE", "RA FE"},
			want:       "200",
		},
		{
			name:       "fallback id when names miss",
			components: []map[string]string{{"id": "300", "name": "Other"}},
			preferred:  []string{"RA_FE"},
			fallbackID: "999",
			want:       "999",
		},
		{
			name:       "first component as last resort",
			components: []map[string]string{{"id": "300", "name": "Other"}},
			preferred:  []string{"RA_FE"},
			want:       "300",
		},
		{
			name:       "nothing resolvable",
			components: []map[string]string{},
			preferred:  []string{"RA_FE"},
			want:       "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(tc.components)
			}))
			defer srv.Close()

			id, err := NewClient(testConfig(srv.URL)).ResolveDefaultComponent(
				context.Background(), "ZRA", tc.preferred, tc.fallbackID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}
