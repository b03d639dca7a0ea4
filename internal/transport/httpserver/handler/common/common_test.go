package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budgetbuddy-go/internal/currency"
	userdomain "budgetbuddy-go/internal/domain/user"
	"budgetbuddy-go/internal/transport/httpserver/middleware"
	"budgetbuddy-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "11111111-1111-4111-8111-111111111111"

type memoryProfiles struct {
	items map[string]userdomain.Profile
}

func (m *memoryProfiles) CreateProfileIfMissing(ctx context.Context, profile *userdomain.Profile) (bool, error) {
	if _, ok := m.items[profile.UserID]; ok {
		return false, nil
	}
	m.items[profile.UserID] = *profile
	return true, nil
}

func (m *memoryProfiles) UpdateIdentity(ctx context.Context, profile *userdomain.Profile) error {
	return nil
}

func (m *memoryProfiles) GetProfile(ctx context.Context, userID string) (*userdomain.Profile, error) {
	item, ok := m.items[userID]
	if !ok {
		return nil, userdomain.ErrProfileNotFound
	}
	return &item, nil
}

func (m *memoryProfiles) UpdateProfile(ctx context.Context, profile *userdomain.Profile) error {
	m.items[profile.UserID] = *profile
	return nil
}

type fixture struct {
	router   http.Handler
	profiles *memoryProfiles
}

func newFixture(t *testing.T, ratesURL string, withUser bool) *fixture {
	t.Helper()

	profiles := &memoryProfiles{items: make(map[string]userdomain.Profile)}
	rates := currency.NewRatesClient(currency.RatesConfig{URL: ratesURL, TTL: time.Hour, Timeout: time.Second}, logger.NewNop())
	h := New(userdomain.NewService(profiles, nil), rates, time.UTC, logger.NewNop())
	h.now = func() time.Time { return time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC) }

	r := chi.NewRouter()
	if withUser {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := middleware.WithUser(req.Context(), middleware.User{ID: testUserID, Email: "ada@example.com", Name: "Ada"})
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Get("/health", h.Health)
	r.Get("/auth/me", h.AuthMe)
	r.Get("/profile", h.GetProfile)
	r.Patch("/profile", h.UpdateProfile)
	r.Get("/currencies", h.ListCurrencies)
	r.Get("/currencies/rates", h.GetRates)
	r.Get("/months/{month}", h.GetMonth)

	return &fixture{router: r, profiles: profiles}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t, "", false)

	rec := f.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestHealthReportsChecks(t *testing.T) {
	h := New(userdomain.NewService(&memoryProfiles{items: map[string]userdomain.Profile{}}, nil), nil, time.UTC, logger.NewNop())
	h.AddHealthCheck("database", func(ctx context.Context) error { return nil })

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok"}}`, rec.Body.String())

	h.AddHealthCheck("rates", func(ctx context.Context) error { return errors.New("dial tcp: refused") })
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"database":"ok","rates":"unavailable"}}`, rec.Body.String())
}

func TestAuthMe(t *testing.T) {
	anonymous := newFixture(t, "", false)
	rec := anonymous.do(t, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")

	f := newFixture(t, "", true)
	rec = f.do(t, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got authMeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, testUserID, got.ID)
	assert.Equal(t, "Ada", got.Name)
}

func TestProfileLifecycle(t *testing.T) {
	f := newFixture(t, "", true)

	rec := f.do(t, http.MethodGet, "/profile", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "profile_not_found")

	f.profiles.items[testUserID] = userdomain.Profile{UserID: testUserID, Currency: userdomain.DefaultCurrency}

	rec = f.do(t, http.MethodPatch, "/profile", `{"display_name":" Ada L ","currency":"try"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.DisplayName)
	assert.Equal(t, "Ada L", *got.DisplayName)
	assert.Equal(t, "TRY", got.Currency)
	assert.Equal(t, "₺", got.CurrencySymbol)

	rec = f.do(t, http.MethodPatch, "/profile", `{"currency":"XYZ"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, "/profile", `{"display_name":"`+strings.Repeat("a", 81)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, "/profile", `{"nickname":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestListCurrencies(t *testing.T) {
	f := newFixture(t, "", true)

	rec := f.do(t, http.MethodGet, "/currencies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []currencyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, len(currency.Supported))
	assert.Equal(t, "USD", got[0].Code)
}

func TestGetRatesConvertsAmount(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"EUR":0.9,"TRY":32.5}}`))
	}))
	defer upstream.Close()

	f := newFixture(t, upstream.URL, true)

	rec := f.do(t, http.MethodGet, "/currencies/rates?amount=1000&to=try", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got ratesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Fallback)
	assert.Equal(t, "USD", got.Base)
	require.NotNil(t, got.Converted)
	assert.True(t, got.Converted.Amount.Equal(decimal.NewFromInt(32500)))
	assert.Equal(t, "TRY", got.Converted.Currency)
	assert.Equal(t, "₺32,500.00", got.Converted.Formatted)

	rec = f.do(t, http.MethodGet, "/currencies/rates?amount=abc&to=EUR", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/currencies/rates?amount=5&to=XYZ", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRatesFallsBackWhenUpstreamFails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	f := newFixture(t, upstream.URL, true)

	rec := f.do(t, http.MethodGet, "/currencies/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got ratesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Fallback)
	assert.Nil(t, got.Converted)
	assert.NotEmpty(t, got.Rates)
}

func TestGetMonth(t *testing.T) {
	f := newFixture(t, "", true)

	rec := f.do(t, http.MethodGet, "/months/2024-02", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var feb monthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feb))
	assert.Equal(t, "February 2024", feb.Display)
	assert.Equal(t, "2024-01", feb.Previous)
	assert.Equal(t, "2024-03", feb.Next)
	assert.Equal(t, 29, feb.End.Day())
	assert.False(t, feb.Current)

	rec = f.do(t, http.MethodGet, "/months/2025-13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_month")
}

func TestGetMonthUsesRequestTimezone(t *testing.T) {
	f := newFixture(t, "", true)

	rec := f.do(t, http.MethodGet, "/months/2026-01?timezone=Europe/Istanbul", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got monthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Current)
	_, offset := got.Start.Zone()
	assert.Equal(t, 3*60*60, offset)

	rec = f.do(t, http.MethodGet, "/months/2026-01?timezone=Not/AZone", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	plain, err := ParseDate("2025-03-09", loc)
	require.NoError(t, err)
	assert.True(t, plain.Equal(time.Date(2025, 3, 9, 0, 0, 0, 0, loc)))

	stamped, err := ParseDate("2025-03-09T10:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, stamped.Equal(time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)))

	_, err = ParseDate("", loc)
	assert.Error(t, err)
	_, err = ParseDate("03/09/2025", loc)
	assert.Error(t, err)
}

func TestParseMonthDefaultsToNow(t *testing.T) {
	key, err := ParseMonth(" ", time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-07", key)

	_, err = ParseMonth("2025-7", time.Now())
	assert.Error(t, err)
}

func TestRequestLocationPrefersQueryOverHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/months/2026-01?timezone=Asia/Tokyo", nil)
	req.Header.Set(TimezoneHeader, "Europe/Istanbul")
	loc, err := RequestLocation(req, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	req = httptest.NewRequest(http.MethodGet, "/months/2026-01", nil)
	req.Header.Set(TimezoneHeader, "Europe/Istanbul")
	loc, err = RequestLocation(req, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Istanbul", loc.String())

	loc, err = RequestLocation(httptest.NewRequest(http.MethodGet, "/", nil), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestDecodeJSONRejectsTrailingAndOversizedBodies(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Ada", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}{"name":"Bob"}`))
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrTrailingData)

	big := `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, DecodeJSON(req, &dst), &tooLarge)
}
