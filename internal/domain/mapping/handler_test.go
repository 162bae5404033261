package mapping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medsafe/medsafe/internal/platform/rxnorm"
)

func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerSave_Created(t *testing.T) {
	e := echo.New()
	term := &mockTerminology{concept: &rxnorm.Concept{RxCUI: "161", Name: "acetaminophen"}}
	h := NewHandler(newTestService(newMockRepo(), term, false))

	c, rec := newTestContext(e, http.MethodPost, "/",
		`{"rxnorm_code":"161","english_name":"acetaminophen","portuguese_name":"paracetamol"}`)
	if err := h.Save(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestHandlerSave_Conflict(t *testing.T) {
	e := echo.New()
	repo := newMockRepo()
	repo.byCode["161"] = &Mapping{RxNormCode: "161"}
	term := &mockTerminology{concept: &rxnorm.Concept{RxCUI: "161"}}
	h := NewHandler(newTestService(repo, term, false))

	c, _ := newTestContext(e, http.MethodPost, "/",
		`{"rxnorm_code":"161","english_name":"acetaminophen","portuguese_name":"paracetamol"}`)
	err := h.Save(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandlerSave_BadGatewayWhenUnavailable(t *testing.T) {
	e := echo.New()
	term := &mockTerminology{validateErr: rxnorm.ErrUnavailable}
	h := NewHandler(newTestService(newMockRepo(), term, false))

	c, _ := newTestContext(e, http.MethodPost, "/",
		`{"rxnorm_code":"161","english_name":"acetaminophen","portuguese_name":"paracetamol"}`)
	err := h.Save(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %v", err)
	}
}

func TestHandlerGetPortugueseName_NotFound(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(newMockRepo(), &mockTerminology{}, false))

	c, _ := newTestContext(e, http.MethodGet, "/", "")
	c.SetParamNames("code")
	c.SetParamValues("161")

	err := h.GetPortugueseName(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandlerSearch(t *testing.T) {
	e := echo.New()
	repo := newMockRepo()
	repo.search = []*Mapping{
		{RxNormCode: "161", EnglishName: "acetaminophen", PortugueseName: "paracetamol"},
	}
	h := NewHandler(newTestService(repo, &mockTerminology{}, false))

	c, rec := newTestContext(e, http.MethodGet, "/?q=paracetamol", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].PortugueseName != "paracetamol" {
		t.Errorf("unexpected results: %+v", body.Results)
	}
}

func TestHandlerSearch_EmptyTerm(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(newMockRepo(), &mockTerminology{}, false))

	c, _ := newTestContext(e, http.MethodGet, "/", "")
	err := h.Search(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
