package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cinelist/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{}
}

type apiResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &resp)
	require.NoError(t, err, "failed to decode response envelope")
	return resp
}

func decodeAPIData(t *testing.T, data json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out), "failed to decode response data")
}
