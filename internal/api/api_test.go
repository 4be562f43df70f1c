// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aterii/practice-4/internal/auth"
	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/config"
	"github.com/aterii/practice-4/internal/recommend"
	"github.com/aterii/practice-4/internal/store"
)

type fakeCatalog struct {
	cars []catalog.Car
	err  error
}

func (f *fakeCatalog) ListCars(ctx context.Context) ([]catalog.Car, error) {
	return f.cars, f.err
}

func (f *fakeCatalog) GetCar(ctx context.Context, id string) (*catalog.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.cars {
		if strconv.Itoa(f.cars[i].ID) == id {
			return &f.cars[i], nil
		}
	}
	return nil, catalog.ErrCarNotFound
}

func (f *fakeCatalog) ListCarsRaw(ctx context.Context) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.Marshal(f.cars)
}

func (f *fakeCatalog) GetCarRaw(ctx context.Context, id string) (json.RawMessage, error) {
	car, err := f.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}
	return json.Marshal(car)
}

type testServer struct {
	t       *testing.T
	router  http.Handler
	catalog *fakeCatalog
	jwt     *auth.JWTManager
}

func testCars() []catalog.Car {
	return []catalog.Car{
		{ID: 1, Brand: "Lada", Model: "Vesta", Price: 15000, Power: 106, FuelConsumption: 7.5, SafetyFeatures: []string{"abs"}, ComfortFeatures: []string{}},
		{ID: 2, Brand: "Skoda", Model: "Octavia", Price: 25000, Power: 150, FuelConsumption: 6, SafetyFeatures: []string{"abs", "esp"}, ComfortFeatures: []string{"climate"}},
		{ID: 3, Brand: "Toyota", Model: "Camry", Price: 35000, Power: 200, FuelConsumption: 8, SafetyFeatures: []string{"abs", "esp", "airbags"}, ComfortFeatures: []string{"climate", "leather"}},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := store.Open(store.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	secCfg := &config.SecurityConfig{
		JWTSecret:         "test-secret-with-enough-entropy-000",
		TokenTTL:          time.Hour,
		CORSOrigins:       []string{"http://localhost:3000"},
		RateLimitDisabled: true,
	}
	jwtManager, err := auth.NewJWTManager(secCfg)
	require.NoError(t, err)

	cat := &fakeCatalog{cars: testCars()}
	engine, err := recommend.NewEngine(nil, cat, st, st, recommend.WithNotFound(func(err error) bool {
		return errors.Is(err, store.ErrNotFound)
	}))
	require.NoError(t, err)

	h := NewHandler(Deps{
		Users:       st,
		Preferences: st,
		Comparisons: st,
		AHP:         st,
		Catalog:     cat,
		Recommender: engine,
		JWT:         jwtManager,
		Hasher:      auth.NewHasher(4),
	})

	return &testServer{
		t:       t,
		router:  NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(secCfg))),
		catalog: cat,
		jwt:     jwtManager,
	}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its token.
func (s *testServer) register(email string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secret123", "name": "Test",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *APIError {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "Ann@Example.com", "password": "secret123", "name": "Ann",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.Equal(t, "Ann", resp.User.Name)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	claims, err := s.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegister_Errors(t *testing.T) {
	s := newTestServer(t)
	s.register("taken@example.com")

	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
	}{
		{"missing password", map[string]string{"email": "a@example.com"}, http.StatusBadRequest, "Email and password are required"},
		{"missing email", map[string]string{"password": "x"}, http.StatusBadRequest, "Email and password are required"},
		{"empty body", "", http.StatusBadRequest, "Email and password are required"},
		{"duplicate", map[string]string{"email": "TAKEN@example.com", "password": "x"}, http.StatusBadRequest, "User already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}

	t.Run("invalid email", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "nope", "password": "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrCodeValidationFailed, decodeError(t, rec).Code)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register("bob@example.com")

	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "bob@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)

	for _, body := range []map[string]string{
		{"email": "bob@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "secret123"},
	} {
		rec := s.do(http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec).Message)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/preferences", "/api/comparisons", "/api/ahp/comparisons", "/api/recommendations"} {
		rec := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, ErrCodeUnauthorized, decodeError(t, rec).Code, path)
	}

	rec := s.do(http.MethodGet, "/api/preferences", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decodeError(t, rec).Message)
}

func TestPreferences(t *testing.T) {
	s := newTestServer(t)
	token := s.register("prefs@example.com")

	rec := s.do(http.MethodGet, "/api/preferences", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))

	rec = s.do(http.MethodPost, "/api/preferences", token, map[string]interface{}{
		"maxBudget":       -5,
		"bodyType":        "  SUV ",
		"criteriaWeights": map[string]float64{"price": 1},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(0), got["maxBudget"])
	assert.Equal(t, "SUV", got["bodyType"])
	assert.Nil(t, got["criteriaWeights"], "partial update ignores criteriaWeights")

	rec = s.do(http.MethodPost, "/api/preferences", token, map[string]interface{}{"minPower": 120})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "SUV", got["bodyType"], "partial update keeps other fields")
	assert.Equal(t, float64(120), got["minPower"])

	rec = s.do(http.MethodPut, "/api/preferences", token, map[string]interface{}{
		"fuelType":           "diesel",
		"maxFuelConsumption": 7,
		"criteriaWeights":    map[string]float64{"price": 0.5, "power": 0.5},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	got = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "SUV", got["bodyType"], "PUT keeps omitted fields")
	assert.Equal(t, float64(120), got["minPower"])
	assert.Equal(t, "diesel", got["fuelType"])
	assert.Equal(t, float64(7), got["maxFuelConsumption"])
	assert.Equal(t, map[string]interface{}{"price": 0.5, "power": 0.5}, got["criteriaWeights"])

	rec = s.do(http.MethodPost, "/api/preferences", token, map[string]interface{}{"maxBudget": "lots"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutPreferencesKeepsOmittedFields(t *testing.T) {
	s := newTestServer(t)
	token := s.register("merge@example.com")

	rec := s.do(http.MethodPost, "/api/preferences", token, map[string]interface{}{
		"maxBudget":      30000,
		"bodyType":       "SUV",
		"safetyFeatures": map[string]bool{"abs": true},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPut, "/api/preferences/weights", token, map[string]interface{}{
		"criteriaWeights": map[string]float64{"price": 0.6, "safety": 0.4},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/preferences", token, map[string]interface{}{"fuelType": "diesel"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(30000), got["maxBudget"])
	assert.Equal(t, "SUV", got["bodyType"])
	assert.Equal(t, "diesel", got["fuelType"])
	assert.Equal(t, map[string]interface{}{"abs": true}, got["safetyFeatures"])
	assert.Equal(t, map[string]interface{}{"price": 0.6, "safety": 0.4}, got["criteriaWeights"])
}

func TestUpdateCriteriaWeights(t *testing.T) {
	s := newTestServer(t)
	token := s.register("weights@example.com")

	for _, body := range []string{`{"criteriaWeights":[1,2]}`, `{"criteriaWeights":"x"}`, `{}`, `{"criteriaWeights":null}`} {
		rec := s.do(http.MethodPut, "/api/preferences/weights", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Invalid criteria weights format", decodeError(t, rec).Message, body)
	}

	rec := s.do(http.MethodPut, "/api/preferences/weights", token, `{"criteriaWeights":{"colour":1}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidationFailed, decodeError(t, rec).Code)

	// No preferences exist yet; the weights create them.
	rec = s.do(http.MethodPut, "/api/preferences/weights", token, `{"criteriaWeights":{"price":0.7,"safety":0.3}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/preferences", token, nil)
	var got struct {
		CriteriaWeights map[string]float64 `json:"criteriaWeights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]float64{"price": 0.7, "safety": 0.3}, got.CriteriaWeights)
}

func TestComparisons(t *testing.T) {
	s := newTestServer(t)
	token := s.register("cmp@example.com")

	rec := s.do(http.MethodGet, "/api/comparisons", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))

	rec = s.do(http.MethodPost, "/api/comparisons", token, map[string]interface{}{"carId": 2, "score": 4.5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID    string  `json:"id"`
		CarID int     `json:"carId"`
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 2, created.CarID)

	rec = s.do(http.MethodPut, "/api/comparisons/"+created.ID, token, map[string]interface{}{"score": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":3`)

	rec = s.do(http.MethodPost, "/api/comparisons", token, map[string]interface{}{"score": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/comparisons/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, "/api/comparisons/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Comparison not found", decodeError(t, rec).Message)

	rec = s.do(http.MethodPut, "/api/comparisons/missing", token, map[string]interface{}{"score": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComparisonsAreScopedToUser(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice@example.com")
	eve := s.register("eve@example.com")

	rec := s.do(http.MethodPost, "/api/comparisons", alice, map[string]interface{}{"carId": 1, "score": 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = s.do(http.MethodDelete, "/api/comparisons/"+created.ID, eve, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/comparisons", eve, nil)
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))
}

func TestAHPComparisons(t *testing.T) {
	s := newTestServer(t)
	token := s.register("ahp@example.com")

	rec := s.do(http.MethodGet, "/api/ahp/comparisons", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No comparison found", decodeError(t, rec).Message)

	matrix := [][]float64{{1, 3, 5}, {1.0 / 3, 1, 3}, {1.0 / 5, 1.0 / 3, 1}}
	rec = s.do(http.MethodPost, "/api/ahp/comparisons", token, map[string]interface{}{"matrix": matrix})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res AHPResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Weights, 3)
	assert.InDelta(t, 0.633, res.Weights[0], 0.001)
	assert.InDelta(t, 0.260, res.Weights[1], 0.001)
	assert.InDelta(t, 0.106, res.Weights[2], 0.001)
	assert.Less(t, res.CR, 0.1)
	assert.True(t, res.IsConsistent)

	rec = s.do(http.MethodGet, "/api/ahp/comparisons", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored AHPRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, matrix, stored.Matrix)
	assert.Equal(t, res.Weights, stored.Weights)
	assert.Equal(t, res.CR, stored.CR)

	// A second save replaces the first.
	rec = s.do(http.MethodPost, "/api/ahp/comparisons?method=power", token, map[string]interface{}{"matrix": [][]float64{{1, 1}, {1, 1}}})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/ahp/comparisons", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Len(t, stored.Matrix, 2)
}

func TestAHPComparisons_Invalid(t *testing.T) {
	s := newTestServer(t)
	token := s.register("bad-ahp@example.com")

	tests := []struct {
		name string
		body string
		path string
		code string
		msg  string
	}{
		{"missing", `{}`, "/api/ahp/comparisons", ErrCodeBadRequest, "Matrix is required"},
		{"object", `{"matrix":{"a":1}}`, "/api/ahp/comparisons", ErrCodeBadRequest, "Matrix is required"},
		{"string", `{"matrix":"1,2"}`, "/api/ahp/comparisons", ErrCodeBadRequest, "Matrix is required"},
		{"non-numeric", `{"matrix":[["a"]]}`, "/api/ahp/comparisons", ErrCodeInvalidMatrix, ""},
		{"non-square", `{"matrix":[[1,2],[3,4],[5,6]]}`, "/api/ahp/comparisons", ErrCodeInvalidMatrix, ""},
		{"empty", `{"matrix":[]}`, "/api/ahp/comparisons", ErrCodeInvalidMatrix, ""},
		{"negative", `{"matrix":[[1,-2],[0.5,1]]}`, "/api/ahp/comparisons", ErrCodeInvalidMatrix, ""},
		{"unknown method", `{"matrix":[[1]]}`, "/api/ahp/comparisons?method=eigen", ErrCodeBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, tt.path, token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			apiErr := decodeError(t, rec)
			assert.Equal(t, tt.code, apiErr.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, apiErr.Message)
			}
		})
	}

	rec := s.do(http.MethodGet, "/api/ahp/comparisons", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "rejected matrices are not stored")
}

func TestAHPFiveByFiveFeedsRecommendations(t *testing.T) {
	s := newTestServer(t)
	token := s.register("rank@example.com")

	// Safety dominates every other criterion.
	matrix := [][]float64{
		{1, 1.0 / 9, 1, 1, 1},
		{9, 1, 9, 9, 9},
		{1, 1.0 / 9, 1, 1, 1},
		{1, 1.0 / 9, 1, 1, 1},
		{1, 1.0 / 9, 1, 1, 1},
	}
	rec := s.do(http.MethodPost, "/api/ahp/comparisons", token, map[string]interface{}{"matrix": matrix})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/preferences", token, nil)
	var prefs struct {
		CriteriaWeights map[string]float64 `json:"criteriaWeights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	require.Len(t, prefs.CriteriaWeights, 5)
	assert.Greater(t, prefs.CriteriaWeights["safety"], prefs.CriteriaWeights["price"])

	rec = s.do(http.MethodGet, "/api/recommendations?limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp recommend.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.Items[0].Car.ID, "most safety features wins")
	assert.Equal(t, 1, resp.Items[0].Rank)
	assert.Equal(t, 3, resp.Metadata.TotalCandidates)
}

func TestRecommendations(t *testing.T) {
	s := newTestServer(t)
	token := s.register("rec@example.com")

	rec := s.do(http.MethodGet, "/api/recommendations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp recommend.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	assert.Equal(t, 1, resp.Items[0].Car.ID, "no weights ranks cheapest first")
	assert.Equal(t, recommend.WeightsNone, resp.Metadata.WeightsSource)

	rec = s.do(http.MethodGet, "/api/recommendations?limit=x", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.catalog.err = catalog.ErrUnavailable
	rec = s.do(http.MethodGet, "/api/recommendations", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCars(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/external-cars", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cars []catalog.Car
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cars))
	assert.Len(t, cars, 3)

	rec = s.do(http.MethodGet, "/api/external-cars/2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"model":"Octavia"`)

	rec = s.do(http.MethodGet, "/api/cars/3", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"model":"Camry"`)

	rec = s.do(http.MethodGet, "/api/cars/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Car not found", decodeError(t, rec).Message)
}

func TestCars_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"breaker open", catalog.ErrUnavailable, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"upstream 500", &catalog.UpstreamError{StatusCode: 500}, http.StatusBadGateway, ErrCodeExternalServiceFail},
		{"transport", errors.New("connection refused"), http.StatusBadGateway, ErrCodeExternalServiceFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.catalog.err = tt.err

			for _, path := range []string{"/api/cars", "/api/external-cars"} {
				rec := s.do(http.MethodGet, path, "", nil)
				assert.Equal(t, tt.status, rec.Code)
				assert.Equal(t, tt.code, decodeError(t, rec).Code)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/preferences", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRateLimit(t *testing.T) {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests:     1,
		RateLimitWindow:       time.Minute,
		AuthRateLimitRequests: 1,
	})
	handler := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/cars", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/cars", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, ErrCodeTooManyRequests, decodeError(t, second).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true})
	handler := mw.RateLimitAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
