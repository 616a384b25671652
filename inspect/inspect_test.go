package inspect

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/aliasdi/di"
	apperrors "github.com/kbukum/aliasdi/errors"
	"github.com/kbukum/aliasdi/logger"
	"github.com/kbukum/aliasdi/module"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	table := module.NewTable()
	table.Define("app/config", map[string]any{"port": 8080})
	c, err := di.New(
		di.WithResolver(table),
		di.WithLogger(logger.Nop()),
		di.WithConfig(map[string]any{
			"config": "app/config",
			"store":  map[string]any{"module": "store/postgres", "className": "Store", "instantiate": true},
		}),
	)
	if err != nil {
		t.Fatalf("di.New failed: %v", err)
	}
	return c
}

func serve(engine http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rr
}

func TestListAliases(t *testing.T) {
	c := newContainer(t)
	if _, err := c.Get(t.Context(), "config"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	engine := NewEngine(c, logger.Nop())

	rr := serve(engine, "/aliases")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body struct {
		Data []di.RegistrationInfo `json:"data"`
		Meta Meta                  `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Meta.Total != 2 || body.Meta.Scope != di.DefaultScopeName {
		t.Errorf("unexpected meta %+v", body.Meta)
	}
	if len(body.Data) != 2 || body.Data[0].Alias != "config" || body.Data[1].Alias != "store" {
		t.Fatalf("unexpected registrations %+v", body.Data)
	}
	if !body.Data[0].Cached || body.Data[1].Cached {
		t.Errorf("expected only config cached, got %+v", body.Data)
	}
	if body.Data[1].Strategy != di.StrategyConstructExport {
		t.Errorf("expected construct_export strategy, got %s", body.Data[1].Strategy)
	}
}

func TestGetAlias(t *testing.T) {
	engine := NewEngine(newContainer(t), logger.Nop())

	rr := serve(engine, "/aliases/store")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Data di.RegistrationInfo `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Data.Module != "store/postgres" || body.Data.ClassName != "Store" || body.Data.Cached {
		t.Errorf("unexpected registration %+v", body.Data)
	}
}

func TestGetAliasDoesNotResolve(t *testing.T) {
	c := newContainer(t)
	engine := NewEngine(c, logger.Nop())

	serve(engine, "/aliases/config")
	if info, _ := c.Registration("config"); info.Cached {
		t.Error("expected inspection to leave the alias unresolved")
	}
}

func TestGetUnknownAlias(t *testing.T) {
	engine := NewEngine(newContainer(t), logger.Nop())

	rr := serve(engine, "/aliases/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error.Code != apperrors.ErrCodeNotFound || body.Error.Details["id"] != "missing" {
		t.Errorf("unexpected error body %+v", body.Error)
	}
}

func TestRegisterOnGroup(t *testing.T) {
	engine := gin.New()
	Register(engine.Group("/debug/di"), newContainer(t))

	if rr := serve(engine, "/debug/di/aliases"); rr.Code != http.StatusOK {
		t.Errorf("expected 200 under group prefix, got %d", rr.Code)
	}
}

func TestRequestID(t *testing.T) {
	engine := NewEngine(newContainer(t), logger.Nop())

	rr := serve(engine, "/aliases")
	if rr.Header().Get(requestIDHeader) == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/aliases", http.NoBody)
	req.Header.Set(requestIDHeader, "req-1")
	rr = httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	if got := rr.Header().Get(requestIDHeader); got != "req-1" {
		t.Errorf("expected incoming request id to be kept, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.Nop()))
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	rr := serve(engine, "/boom")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error.Code != apperrors.ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", body.Error.Code)
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.NotRegistered("a"), http.StatusUnprocessableEntity},
		{apperrors.CyclicDependency([]string{"a", "a"}), http.StatusConflict},
		{apperrors.InvalidInput("alias", "empty"), http.StatusBadRequest},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rr)
		RespondWithError(ctx, tc.err)
		if rr.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, rr.Code)
		}
	}
}

func TestErrorResponseLiftsAliasAndChain(t *testing.T) {
	tests := []struct {
		name  string
		err   *apperrors.AppError
		alias string
		chain []string
	}{
		{"resolution", apperrors.NotRegistered("db"), "db", nil},
		{"cycle", apperrors.CyclicDependency([]string{"a", "b", "a"}), "", []string{"a", "b", "a"}},
		{"generic", apperrors.InvalidInput("alias", "empty"), "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := NewErrorResponse(tc.err).Error
			if body.Code != tc.err.Code || body.Message != tc.err.Message {
				t.Errorf("unexpected code/message %s %q", body.Code, body.Message)
			}
			if body.Alias != tc.alias {
				t.Errorf("expected alias %q, got %q", tc.alias, body.Alias)
			}
			if !reflect.DeepEqual(body.Chain, tc.chain) {
				t.Errorf("expected chain %v, got %v", tc.chain, body.Chain)
			}
		})
	}
}
