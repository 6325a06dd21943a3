package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/draganm/sunspot/internal/search"
	"github.com/draganm/sunspot/internal/session"
	"github.com/draganm/sunspot/internal/store"
	"github.com/draganm/sunspot/internal/venue"
	"github.com/draganm/sunspot/internal/weather"
	"github.com/draganm/sunspot/internal/weather/providers"
)

var validate = validator.New()

// Deps bundles what the handlers need.
type Deps struct {
	Session  *session.Session
	Weather  *weather.Service
	Ingestor *search.Ingestor
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/proxy", proxyWeather(deps))
	v1.Get("/weather/mock", mockWeather)
	v1.Get("/weather/current", currentWeather(deps))
	v1.Get("/weather/history", weatherHistory(deps))

	v1.Get("/venues", listVenues(deps))
	v1.Post("/venues/search", ingestSearchResult(deps))
	v1.Post("/venues/weather/refresh", refreshVenueWeather(deps))
	v1.Get("/venues/recommendations", recommendVenues(deps))

	v1.Get("/sun", sunPanel(deps))
	v1.Get("/sun/light", sunLight(deps))

	v1.Get("/time", timeState(deps))
	v1.Put("/time", updateTime(deps))
}

// coordsQuery holds query parameters identifying a point. The weather proxy
// follows the upstream's "lon" spelling; the mock endpoint uses "lng".
type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lng float64 `validate:"gte=-180,lte=180"`
}

func (q coordsQuery) toLocation() weather.Location {
	return weather.Location{Lat: q.Lat, Lng: q.Lng}
}

func parseCoords(c *fiber.Ctx, lngParam string) (coordsQuery, error) {
	latStr := c.Query("lat")
	lngStr := c.Query(lngParam)
	if latStr == "" || lngStr == "" {
		return coordsQuery{}, errors.New("missing latitude or longitude")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return coordsQuery{}, errors.New("invalid latitude")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return coordsQuery{}, errors.New("invalid longitude")
	}

	q := coordsQuery{Lat: lat, Lng: lng}
	if err := validate.Struct(q); err != nil {
		return coordsQuery{}, err
	}
	return q, nil
}

// proxyWeather passes the raw provider payload through untouched. Distinct
// failure modes surface as distinct statuses: missing params 400, missing
// API key 500, malformed upstream payload 502, upstream non-2xx passthrough.
func proxyWeather(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseCoords(c, "lon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing latitude or longitude"})
		}

		body, err := deps.Weather.FetchRawValidated(c.Context(), q.toLocation())
		if err != nil {
			var statusErr *providers.StatusError
			switch {
			case errors.Is(err, providers.ErrNotConfigured):
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server configuration error"})
			case errors.As(err, &statusErr):
				return c.Status(statusErr.StatusCode).JSON(fiber.Map{"error": "Failed to fetch weather"})
			case errors.Is(err, weather.ErrMalformedPayload):
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Invalid data received from weather service"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
			}
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
}

// mockWeather serves the deterministic fallback snapshot directly.
func mockWeather(c *fiber.Ctx) error {
	q, err := parseCoords(c, "lng")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing lat/lng parameters"})
	}

	c.Set(fiber.HeaderCacheControl, "max-age=300")
	return c.JSON(weather.Mock(q.Lng, q.Lat))
}

func currentWeather(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseCoords(c, "lon")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(deps.Weather.Current(c.Context(), q.toLocation()))
	}
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Coords coordsQuery
	From   time.Time `validate:"required"`
	To     time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	coords, err := parseCoords(c, "lon")
	if err != nil {
		return err
	}
	h.Coords = coords

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

func weatherHistory(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// ?latest=true short-circuits the range query and serves the most
		// recent stored snapshot for the point.
		if c.QueryBool("latest") {
			q, err := parseCoords(c, "lon")
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			snap, err := deps.Weather.Latest(q.toLocation())
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "no weather history for location")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch latest weather")
			}
			return c.JSON(snap)
		}

		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Coords.toLocation()
		snapshots, err := deps.Weather.Range(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	}
}

// listVenues serves the collection: ?id= for a single venue, ?filter= for
// the cafe/pub/outdoor subsets, bare for everything.
func listVenues(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "max-age=3600")

		if id := c.Query("id"); id != "" {
			v, err := deps.Session.Venues().Get(id)
			if err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Venue not found"})
			}
			return c.JSON(v)
		}

		return c.JSON(deps.Session.Venues().Filter(c.Query("filter")))
	}
}

func ingestSearchResult(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var feature search.Feature
		if err := c.BodyParser(&feature); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid search feature payload")
		}

		v, err := deps.Ingestor.Ingest(feature)
		if err != nil {
			if errors.Is(err, search.ErrMissingCoordinates) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to ingest search result")
		}

		added, err := deps.Session.AddVenue(c.Context(), v)
		if err != nil {
			if errors.Is(err, venue.ErrDuplicateID) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to add venue")
		}

		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

func refreshVenueWeather(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deps.Session.AttachWeather(c.Context())
		return c.JSON(deps.Session.Venues().All())
	}
}

func recommendVenues(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		strategy, err := venue.ParseStrategy(c.Query("strategy"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"strategy":        strategy,
			"recommendations": deps.Session.Recommend(c.Context(), strategy),
		})
	}
}

func sunPanel(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var at time.Time
		if s := c.Query("time"); s != "" {
			t, err := parseTime(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			at = t
		}
		return c.JSON(deps.Session.Sun(at))
	}
}

func sunLight(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Session.Light())
	}
}

func timeState(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Session.Clock().State())
	}
}

// timeUpdate is the PUT /time body. Fields are pointers so a request can
// change one aspect without touching the others.
type timeUpdate struct {
	ControlDate *time.Time `json:"controlDate"`
	IsRealTime  *bool      `json:"isRealTime"`
	Show24h     *bool      `json:"show24h"`
}

func updateTime(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req timeUpdate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid time update payload")
		}

		clock := deps.Session.Clock()
		if req.ControlDate != nil {
			// A scrub always ends real-time mode.
			clock.SetControlDate(*req.ControlDate)
		}
		if req.IsRealTime != nil {
			clock.SetRealTime(*req.IsRealTime)
		}
		if req.Show24h != nil {
			clock.SetShow24h(*req.Show24h)
		}

		return c.JSON(clock.State())
	}
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
