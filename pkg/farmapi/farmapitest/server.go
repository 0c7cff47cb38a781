// Package farmapitest runs an in-memory stand-in for the external farm API.
package farmapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DefaultLat/DefaultLng place newly created vehicles when no position is sent.
const (
	DefaultLat = -18.9166
	DefaultLng = 29.8166
)

type Record = map[string]any

type collection struct {
	order []string
	items map[string]Record
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string]*collection
	users       map[string]string
	calls       map[string]int
	failNext    map[string]int
	rawNext     map[string]string
	hold        map[string]chan struct{}
}

// New starts the fake API with the admin/admin123 account.
func New() *Server {
	s := &Server{
		collections: map[string]*collection{},
		users:       map[string]string{"admin": "admin123"},
		calls:       map[string]int{},
		failNext:    map[string]int{},
		rawNext:     map[string]string{},
		hold:        map[string]chan struct{}{},
	}
	for _, k := range []string{"crops", "equipment", "production", "vehicles"} {
		s.collections[k] = &collection{items: map[string]Record{}}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.intercept)

	for _, k := range []string{"crops", "equipment", "production", "vehicles"} {
		kind := k
		e.GET("/"+kind, func(c echo.Context) error { return s.list(c, kind) })
		e.POST("/"+kind, func(c echo.Context) error { return s.create(c, kind) })
		e.DELETE("/"+kind+"/:id", func(c echo.Context) error { return s.remove(c, kind) })
		if kind != "production" {
			e.PUT("/"+kind+"/:id", func(c echo.Context) error { return s.update(c, kind) })
		}
	}
	e.PUT("/vehicles/:id/location", s.location)
	e.GET("/stats", s.stats)
	e.POST("/login", s.login)
	e.GET("/whoami", s.whoami)

	s.Server = httptest.NewServer(e)
	return s
}

// intercept counts calls and applies injected failures.
func (s *Server) intercept(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + c.Path()
		s.mu.Lock()
		s.calls[key]++
		gate := s.hold[key]
		code, fail := s.failNext[key]
		delete(s.failNext, key)
		raw, isRaw := s.rawNext[key]
		delete(s.rawNext, key)
		s.mu.Unlock()

		if gate != nil {
			<-gate
		}
		if fail {
			return c.JSON(code, map[string]string{"message": http.StatusText(code)})
		}
		if isRaw {
			return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(raw))
		}
		return next(c)
	}
}

// Calls reports how many requests hit key, e.g. "GET /vehicles".
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// FailNext answers the next request to key with status code.
func (s *Server) FailNext(key string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[key] = code
}

// RawNext answers the next request to key with body verbatim and status 200.
func (s *Server) RawNext(key, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawNext[key] = body
}

// Hold blocks requests to key until the returned release func is called.
func (s *Server) Hold(key string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold[key] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.hold, key)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Server) AddUser(name, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[name] = password
}

// Seed stores rec under kind and returns its id.
func (s *Server) Seed(kind string, rec Record) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(kind, rec)
}

// Records returns copies of the stored records in insertion order.
func (s *Server) Records(kind string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[kind]
	out := make([]Record, 0, len(col.order))
	for _, id := range col.order {
		out = append(out, copyRecord(col.items[id]))
	}
	return out
}

func (s *Server) insert(kind string, rec Record) string {
	col := s.collections[kind]
	rec = copyRecord(rec)
	id := uuid.NewString()
	rec["_id"] = id
	if kind == "vehicles" {
		if _, ok := rec["currentLat"]; !ok {
			rec["currentLat"] = DefaultLat
		}
		if _, ok := rec["currentLng"]; !ok {
			rec["currentLng"] = DefaultLng
		}
		rec["lastUpdate"] = time.Now().UTC().Format(time.RFC3339)
	}
	col.order = append(col.order, id)
	col.items[id] = rec
	return id
}

func (s *Server) list(c echo.Context, kind string) error {
	return c.JSON(http.StatusOK, s.Records(kind))
}

func (s *Server) create(c echo.Context, kind string) error {
	var in Record
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid json"})
	}
	s.mu.Lock()
	id := s.insert(kind, in)
	out := copyRecord(s.collections[kind].items[id])
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) update(c echo.Context, kind string) error {
	var in Record
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid json"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.collections[kind].items[c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "not found"})
	}
	for k, v := range in {
		if k != "_id" {
			cur[k] = v
		}
	}
	return c.JSON(http.StatusOK, copyRecord(cur))
}

func (s *Server) remove(c echo.Context, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[kind]
	id := c.Param("id")
	if _, ok := col.items[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "not found"})
	}
	delete(col.items, id)
	for i, v := range col.order {
		if v == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Server) location(c echo.Context) error {
	var in struct {
		CurrentLat *float64 `json:"currentLat"`
		CurrentLng *float64 `json:"currentLng"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil || in.CurrentLat == nil || in.CurrentLng == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "currentLat and currentLng are required"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.collections["vehicles"].items[c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "not found"})
	}
	cur["currentLat"] = *in.CurrentLat
	cur["currentLng"] = *in.CurrentLng
	cur["lastUpdate"] = time.Now().UTC().Format(time.RFC3339)
	return c.JSON(http.StatusOK, copyRecord(cur))
}

func (s *Server) stats(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]any{
		"cropCount":              len(s.collections["crops"].order),
		"equipmentCount":         len(s.collections["equipment"].order),
		"productionCount":        len(s.collections["production"].order),
		"vehicleCount":           len(s.collections["vehicles"].order),
		"totalCropQuantity":      0.0,
		"activeVehicles":         0,
		"equipmentNeedingRepair": 0,
	}
	total := 0.0
	for _, r := range s.collections["crops"].items {
		if q, ok := r["quantity"].(float64); ok {
			total += q
		}
	}
	out["totalCropQuantity"] = total
	active := 0
	for _, r := range s.collections["vehicles"].items {
		if r["status"] == "Active" {
			active++
		}
	}
	out["activeVehicles"] = active
	repair := 0
	for _, r := range s.collections["equipment"].items {
		if r["condition"] == "Needs Repair" {
			repair++
		}
	}
	out["equipmentNeedingRepair"] = repair
	return c.JSON(http.StatusOK, out)
}

func (s *Server) login(c echo.Context) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "invalid json"})
	}
	s.mu.Lock()
	pw, ok := s.users[in.Username]
	s.mu.Unlock()
	if !ok || pw != in.Password {
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid username or password"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "username": in.Username})
}

func (s *Server) whoami(c echo.Context) error {
	name := c.QueryParam("username")
	s.mu.Lock()
	_, ok := s.users[name]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "unknown user"})
	}
	return c.JSON(http.StatusOK, map[string]string{"username": name})
}

func copyRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
