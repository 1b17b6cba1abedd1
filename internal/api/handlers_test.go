package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"slotchecker/internal/browser"
	"slotchecker/pkg/config"
	"slotchecker/pkg/slots"
)

type fakeChecker struct {
	launches int
	result   *slots.Result
	err      error
}

func (f *fakeChecker) CheckSlots(ctx context.Context, req slots.CheckRequest) (*slots.Result, error) {
	f.launches++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testConfig() config.Config {
	return config.Config{Port: "3000", APISecret: "testsecret"}
}

func doRequest(t *testing.T, fake *fakeChecker, method, path, secret, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(testConfig(), fake)

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWelcome(t *testing.T) {
	rec := doRequest(t, &fakeChecker{}, "GET", "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Welcome to the Visa Slot Checker API!", rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, &fakeChecker{}, "GET", "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "ok", body["status"])

	ts, ok := body["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
}

func TestCheckSlotsMissingAuth(t *testing.T) {
	fake := &fakeChecker{}
	rec := doRequest(t, fake, "POST", "/check-slots", "",
		`{"username":"u","password":"p","appd":"12345"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Unauthorized", body["error"])
	require.Zero(t, fake.launches)
}

func TestCheckSlotsWrongSecret(t *testing.T) {
	fake := &fakeChecker{}
	rec := doRequest(t, fake, "POST", "/check-slots", "not-the-secret",
		`{"username":"u","password":"p","appd":"12345"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, fake.launches)
}

func TestCheckSlotsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no username", `{"password":"p","appd":"12345"}`},
		{"no password", `{"username":"u","appd":"12345"}`},
		{"no appd", `{"username":"u","password":"p"}`},
		{"empty body", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeChecker{}
			rec := doRequest(t, fake, "POST", "/check-slots", "testsecret", tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			require.Equal(t, false, body["success"])
			require.Equal(t, "Missing required fields: username, password, appd", body["error"])
			require.Zero(t, fake.launches, "no browser session may be created for invalid input")
		})
	}
}

func TestCheckSlotsInvalidBody(t *testing.T) {
	fake := &fakeChecker{}
	rec := doRequest(t, fake, "POST", "/check-slots", "testsecret", `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, fake.launches)
}

func TestCheckSlotsSuccess(t *testing.T) {
	payload := []interface{}{
		map[string]interface{}{
			"locationName":   "Berlin",
			"availableDates": []interface{}{"2024-06-10"},
		},
	}
	found := slots.Normalize(payload)
	fake := &fakeChecker{result: &slots.Result{
		Slots:     found,
		Total:     len(found),
		CheckedAt: time.Now().UTC(),
	}}

	rec := doRequest(t, fake, "POST", "/check-slots", "testsecret",
		`{"username":"u","password":"p","appd":"12345"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, fake.launches)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(1), body["totalSlots"])

	ts, ok := body["checkedAt"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)

	list, ok := body["slots"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)

	slot := list[0].(map[string]interface{})
	require.Equal(t, "Berlin", slot["location"])
	require.Equal(t, "2024-06-10", slot["date"])
	require.Equal(t, true, slot["available"])
	require.Nil(t, slot["time"])
}

func TestCheckSlotsZeroSlots(t *testing.T) {
	fake := &fakeChecker{result: &slots.Result{
		Slots:     []slots.Slot{},
		Total:     0,
		CheckedAt: time.Now().UTC(),
	}}

	rec := doRequest(t, fake, "POST", "/check-slots", "testsecret",
		`{"username":"u","password":"p","appd":"12345"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(0), body["totalSlots"])

	list, ok := body["slots"].([]interface{})
	require.True(t, ok)
	require.Empty(t, list)
}

func TestCheckSlotsUpstreamError(t *testing.T) {
	fake := &fakeChecker{err: &browser.UpstreamError{Status: 403, Message: "HTTP 403"}}

	rec := doRequest(t, fake, "POST", "/check-slots", "testsecret",
		`{"username":"u","password":"p","appd":"12345"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, "HTTP 403", body["error"])
	require.Equal(t, "Failed to fetch slot data", body["message"])
}

func TestCheckSlotsOrchestrationError(t *testing.T) {
	fake := &fakeChecker{err: errors.New("❌ Login navigation did not complete: context deadline exceeded")}

	rec := doRequest(t, fake, "POST", "/check-slots", "testsecret",
		`{"username":"u","password":"p","appd":"12345"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.NotEmpty(t, body["error"])
}

func TestHealthRequiresNoAuth(t *testing.T) {
	rec := doRequest(t, &fakeChecker{}, "GET", "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
