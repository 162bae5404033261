package safety

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
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

func startSessionViaHandler(t *testing.T, e *echo.Echo, h *Handler) uuid.UUID {
	t.Helper()
	c, rec := newTestContext(e, http.MethodPost, "/", `{"patient_id":"`+uuid.New().String()+`"}`)
	if err := h.StartSession(c); err != nil {
		t.Fatalf("starting session: %v", err)
	}
	var sess Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	return sess.ID
}

func TestHandlerStartSession(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(&mockAllergySource{}, &mockWeightSource{}))

	c, rec := newTestContext(e, http.MethodPost, "/", `{"patient_id":"`+uuid.New().String()+`"}`)
	if err := h.StartSession(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestHandlerStartSession_MissingPatient(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(&mockAllergySource{}, &mockWeightSource{}))

	c, _ := newTestContext(e, http.MethodPost, "/", `{}`)
	err := h.StartSession(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandlerUpdateWeight_Invalid(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(&mockAllergySource{}, &mockWeightSource{}))
	id := startSessionViaHandler(t, e, h)

	c, _ := newTestContext(e, http.MethodPut, "/", `{"weight_kg":-5}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.UpdateWeight(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandlerUpdateWeight_UnknownSession(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(&mockAllergySource{}, &mockWeightSource{}))

	c, _ := newTestContext(e, http.MethodPut, "/", `{"weight_kg":70}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.UpdateWeight(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandlerEvaluate_FullFlow(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(&mockAllergySource{}, &mockWeightSource{}))
	id := startSessionViaHandler(t, e, h)

	// Review allergies
	c, _ := newTestContext(e, http.MethodPost, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	if err := h.MarkReviewed(c); err != nil {
		t.Fatalf("marking reviewed: %v", err)
	}

	// Verify weight
	c, _ = newTestContext(e, http.MethodPut, "/", `{"weight_kg":82}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	if err := h.UpdateWeight(c); err != nil {
		t.Fatalf("updating weight: %v", err)
	}

	// Evaluate a weight-based medication
	c, rec := newTestContext(e, http.MethodPost, "/", `{"medication_name":"enoxaparin 40mg"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	if err := h.Evaluate(c); err != nil {
		t.Fatalf("evaluating: %v", err)
	}

	var check MedicationSafetyCheck
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("decoding check: %v", err)
	}
	if !check.IsWeightBased {
		t.Error("expected enoxaparin to be weight-based")
	}
	if !check.HasPassed {
		t.Errorf("expected check to pass, got %+v", check)
	}
}

func TestHandlerOverride(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(&mockAllergySource{}, &mockWeightSource{}))
	id := startSessionViaHandler(t, e, h)

	c, rec := newTestContext(e, http.MethodPost, "/", `{"reason":"attending approved"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	if err := h.Override(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sess Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if !sess.IsOverrideConfirmed {
		t.Error("expected override to be confirmed")
	}
}

func TestHandlerGetSession_InvalidID(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(&mockAllergySource{}, &mockWeightSource{}))

	c, _ := newTestContext(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetSession(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
