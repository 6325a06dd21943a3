package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/draganm/sunspot/internal/search"
	"github.com/draganm/sunspot/internal/session"
	"github.com/draganm/sunspot/internal/store"
	"github.com/draganm/sunspot/internal/venue"
	"github.com/draganm/sunspot/internal/weather"
)

type stubProvider struct {
	configured bool
	body       []byte
	err        error
}

func (s *stubProvider) Name() string     { return "stub" }
func (s *stubProvider) Configured() bool { return s.configured }
func (s *stubProvider) FetchRaw(ctx context.Context, lat, lng float64) ([]byte, error) {
	return s.body, s.err
}

func newTestApp(t *testing.T, provider weather.RawProvider) *fiber.App {
	t.Helper()

	if provider == nil {
		provider = &stubProvider{}
	}
	weatherSvc := weather.NewService(provider, store.NewMemoryStore(10, time.Hour))

	sess := session.Open(session.Config{
		Weather: weatherSvc,
		Venues:  venue.NewStore(venue.Seed()),
		Center:  weather.Location{Lng: 20.46, Lat: 44.81},
	})
	t.Cleanup(sess.Close)

	app := fiber.New()
	RegisterRoutes(app, Deps{
		Session:  sess,
		Weather:  weatherSvc,
		Ingestor: search.NewIngestor(""),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	return resp, payload
}

func TestMockWeatherEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/weather/mock", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing params: expected 400, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/weather/mock?lat=44.81&lng=20.46", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "max-age=300" {
		t.Errorf("expected Cache-Control max-age=300, got %q", cc)
	}

	var snap weather.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.IsSunny || snap.Temperature != 27 || snap.Humidity != 67 {
		t.Errorf("unexpected mock snapshot: %+v", snap)
	}
}

func TestProxyEndpointStatuses(t *testing.T) {
	// Missing params.
	app := newTestApp(t, nil)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/weather/proxy?lat=44.81", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing lon: expected 400, got %d", resp.StatusCode)
	}

	// Unconfigured API key.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/weather/proxy?lat=44.81&lon=20.46", "")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unconfigured key: expected 500, got %d", resp.StatusCode)
	}

	// Malformed upstream payload.
	app = newTestApp(t, &stubProvider{configured: true, body: []byte(`{"cod":200}`)})
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/weather/proxy?lat=44.81&lon=20.46", "")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("malformed payload: expected 502, got %d", resp.StatusCode)
	}

	// Healthy upstream passes the body through untouched.
	raw := `{"main":{"temp":19.2,"humidity":50},"wind":{"speed":4},"weather":[{"id":800,"main":"Clear"}]}`
	app = newTestApp(t, &stubProvider{configured: true, body: []byte(raw)})
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/weather/proxy?lat=44.81&lon=20.46", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if string(body) != raw {
		t.Errorf("proxy modified the payload: %s", body)
	}
}

func TestWeatherHistoryLatest(t *testing.T) {
	app := newTestApp(t, nil)

	// Nothing stored for the point yet.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/weather/history?lat=44.81&lon=20.46&latest=true", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty history: expected 404, got %d", resp.StatusCode)
	}

	// A current-weather fetch records a snapshot.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/weather/current?lat=44.81&lon=20.46", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("current: expected 200, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/weather/history?lat=44.81&lon=20.46&latest=true", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("latest: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var snap weather.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatal(err)
	}
	if want := weather.Mock(20.46, 44.81); snap.Temperature != want.Temperature || snap.Condition != want.Condition {
		t.Errorf("latest snapshot does not match stored mock: %+v", snap)
	}
}

func TestVenuesEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/venues", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "max-age=3600" {
		t.Errorf("expected Cache-Control max-age=3600, got %q", cc)
	}
	var venues []venue.Venue
	if err := json.Unmarshal(body, &venues); err != nil {
		t.Fatal(err)
	}
	if len(venues) != 5 {
		t.Fatalf("expected 5 seed venues, got %d", len(venues))
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/venues?id=2", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var v venue.Venue
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatal(err)
	}
	if v.Name != "Miners Pub" {
		t.Errorf("expected Miners Pub, got %q", v.Name)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/venues?id=999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", resp.StatusCode)
	}

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/venues?filter=pub", "")
	if err := json.Unmarshal(body, &venues); err != nil {
		t.Fatal(err)
	}
	for _, v := range venues {
		if v.Category != venue.CategoryPub {
			t.Errorf("filter=pub returned %s", v.Category)
		}
	}
}

func TestSearchIngestEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	payload := `{
		"id": "poi.77",
		"geometry": {"coordinates": [20.47, 44.80]},
		"properties": {"name": "Zaokret", "category": "bar", "address": "Cetinjska 15"}
	}`
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/venues/search", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	var v venue.Venue
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatal(err)
	}
	if v.Category != venue.CategoryPub || v.Rating != 4.5 {
		t.Errorf("unexpected ingested venue: %+v", v)
	}
	if v.Weather == nil {
		t.Error("ingested venue came back without weather attached")
	}

	// Same id again: identity conflict.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/venues/search", payload)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate id: expected 409, got %d", resp.StatusCode)
	}

	// Missing coordinates: discarded, never added.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/venues/search",
		`{"properties": {"name": "Nowhere"}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing coords: expected 400, got %d", resp.StatusCode)
	}

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/venues", "")
	var venues []venue.Venue
	if err := json.Unmarshal(body, &venues); err != nil {
		t.Fatal(err)
	}
	if len(venues) != 6 {
		t.Fatalf("expected 6 venues after one successful ingest, got %d", len(venues))
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/venues/recommendations?strategy=top-rated", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Strategy        venue.Strategy `json:"strategy"`
		Recommendations []venue.Venue  `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(out.Recommendations))
	}
	if out.Recommendations[0].Name != "Greenet" {
		t.Errorf("expected highest rated first, got %q", out.Recommendations[0].Name)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/venues/recommendations?strategy=astrology", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown strategy: expected 400, got %d", resp.StatusCode)
	}
}

func TestTimeEndpoints(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/time", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var st struct {
		IsRealTime bool `json:"isRealTime"`
	}
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatal(err)
	}
	if !st.IsRealTime {
		t.Fatal("session clock should start in real-time mode")
	}

	// A scrub ends real-time mode.
	resp, body = doJSON(t, app, http.MethodPut, "/api/v1/time",
		`{"controlDate": "2024-06-21T15:30:00Z"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatal(err)
	}
	if st.IsRealTime {
		t.Fatal("scrub must end real-time mode")
	}
}

func TestSunEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/sun?time=2024-06-21T12:00:00Z", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var panel struct {
		Position struct {
			Azimuth  float64 `json:"azimuth"`
			Altitude float64 `json:"altitude"`
		} `json:"position"`
		Day struct {
			DayOfYear int `json:"dayOfYear"`
		} `json:"day"`
	}
	if err := json.Unmarshal(body, &panel); err != nil {
		t.Fatal(err)
	}
	if panel.Position.Altitude != 90 {
		t.Errorf("expected altitude 90 at noon, got %v", panel.Position.Altitude)
	}
	if panel.Day.DayOfYear != 173 {
		t.Errorf("expected day of year 173, got %d", panel.Day.DayOfYear)
	}
}
