package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nedaZarei/WeddingSite/pkg/models"
)

func TestLambdaHandler_Preflight(t *testing.T) {
	s, _ := newTestService(t)

	resp, err := s.LambdaHandler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodOptions,
		Path:       "/api/rsvp",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "GET, POST, OPTIONS", resp.Headers["Access-Control-Allow-Methods"])
}

func TestLambdaHandler_SubmitBase64Body(t *testing.T) {
	s, repo := newTestService(t)
	body := `{"name":"Anna","email":"a@b","attendance":"yes"}`

	resp, err := s.LambdaHandler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/api/rsvp",
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            base64.StdEncoding.EncodeToString([]byte(body)),
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out submitResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	assert.Equal(t, 101, out.ID)
	assert.Len(t, repo.created, 1)
}

func TestLambdaHandler_AdminHeader(t *testing.T) {
	s, repo := newTestService(t)
	repo.responses = []models.RSVPResponse{{ID: 1, Name: "Anna", Attendance: models.AttendanceYes}}

	resp, err := s.LambdaHandler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/rsvp",
		Headers:    map[string]string{"x-admin-key": "s3cret"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, `"name":"Anna"`)

	resp, err = s.LambdaHandler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/rsvp",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLambdaHandler_BadBase64(t *testing.T) {
	s, repo := newTestService(t)
	resp, err := s.LambdaHandler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/api/rsvp",
		Body:            "%%%",
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Contains(t, resp.Headers["Content-Type"], "application/json")

	var body errorBody
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.Empty(t, repo.created)
}

func TestToHTTPRequest_Query(t *testing.T) {
	req, err := toHTTPRequest(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:                      http.MethodGet,
		Path:                            "/api/rsvp",
		QueryStringParameters:           map[string]string{"a": "1"},
		MultiValueQueryStringParameters: map[string][]string{"b": {"2", "3"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", req.URL.Query().Get("a"))
	assert.Equal(t, []string{"2", "3"}, req.URL.Query()["b"])
}
