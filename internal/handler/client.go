package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-registry/internal/domain"
)

// DeleteClient handles DELETE /api/trips/{idClient}.
func (s *Server) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := bindPathInt(w, r, "idClient")
	if !ok {
		return
	}

	if err := s.clients.RemoveClient(r.Context(), clientID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddClientToTrip handles POST /api/trips/{idTrip}/clients.
// The optional ?paymentDate= accepts YYYY-MM-DD or an RFC 3339 timestamp.
func (s *Server) AddClientToTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := bindPathInt(w, r, "idTrip")
	if !ok {
		return
	}

	paymentDate, err := bindPaymentDate(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "paymentDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
		return
	}

	client, err := decodeClient(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.clients.RegisterClient(r.Context(), tripID, client, paymentDate); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, msgClientAdded)
}

// --- binding helpers --------------------------------------------------------

// bindPathInt binds an integer path parameter, writing a 400 when it is not one.
func bindPathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeMessage(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// bindPaymentDate reads the optional paymentDate query parameter.
// Returns nil when it is absent.
func bindPaymentDate(r *http.Request) (*time.Time, error) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "paymentDate", r.URL.Query(), &raw); err != nil {
		return nil, err
	}
	if raw == nil || *raw == "" {
		return nil, nil
	}

	var t time.Time
	if err := runtime.BindStringToObject(*raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// decodeClient converts the request body into a domain.Client.
// Field-level validation is left to the service.
func decodeClient(r *http.Request) (domain.Client, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return domain.Client{}, errors.New("request body is required")
	}

	var body ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Client{}, err
		}
		return domain.Client{}, errors.New("request body must be a JSON object")
	}

	return domain.Client{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Telephone: body.Telephone,
		Pesel:     body.Pesel,
	}, nil
}
