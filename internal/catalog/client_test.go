package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCourses(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("nameInput")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"code":"MATE1105","title":"Calculo Diferencial","credits":3,"sections":[]}]`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)

	courses, err := client.SearchCourses(context.Background(), "Calculo%Diferencial")
	require.NoError(t, err)

	assert.Equal(t, "/courses/domain", gotPath)
	assert.Equal(t, "Calculo%Diferencial", gotQuery)
	require.Len(t, courses, 1)
	assert.Equal(t, "MATE1105", courses[0].Code)
	assert.Equal(t, float64(3), courses[0].Credits)
}

func TestSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/MATE1105/sections", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"nrc":"10876","sectionId":"1","ptrm":"8A","meetings":[{"day":"MONDAY","start":"08:00","end":"09:30"}]}]`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)

	sections, err := client.Sections(context.Background(), "MATE1105")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "10876", sections[0].NRC)
	require.Len(t, sections[0].Meetings, 1)
	assert.Equal(t, "08:00", sections[0].Meetings[0].Start)
}

func TestBackendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)

	_, err := client.SearchCourses(context.Background(), "calculo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestUnreachableBackend(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", 100*time.Millisecond, nil)

	_, err := client.Sections(context.Background(), "MATE1105")
	require.Error(t, err)
}
