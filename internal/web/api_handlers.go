package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/evcraddock/clinic-visits/internal/logging"
	"github.com/evcraddock/clinic-visits/internal/visit"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiMessage writes a JSON success message.
func apiMessage(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"message": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, visit.ErrNotFound), errors.Is(err, visit.ErrNoMatch):
		return http.StatusMethodNotAllowed
	case visit.IsValidation(err),
		errors.Is(err, visit.ErrIDTaken),
		errors.Is(err, visit.ErrDuplicateAppointment),
		errors.Is(err, visit.ErrSlotTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", logging.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		apiError(w, "internal server error", code)
		return
	}
	apiError(w, err.Error(), code)
}

// handleVisits routes /visit: POST creates, DELETE clears every visit.
func (s *Server) handleVisits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.apiCreateVisit(w, r)
	case http.MethodDelete:
		s.apiDeleteAll(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleVisitRoute routes /visit/{mode} for GET and /visit/{id} for PUT and DELETE.
func (s *Server) handleVisitRoute(w http.ResponseWriter, r *http.Request) {
	seg := strings.Trim(strings.TrimPrefix(r.URL.Path, "/visit/"), "/")

	if r.Method == http.MethodGet {
		s.apiFindVisits(w, r, seg)
		return
	}

	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		apiError(w, "Invalid visit ID...", http.StatusConflict)
		return
	}
	switch r.Method {
	case http.MethodPut:
		s.apiUpdateVisit(w, r, id)
	case http.MethodDelete:
		s.apiDeleteVisit(w, r, id)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiFindVisits(w http.ResponseWriter, r *http.Request, seg string) {
	mode, err := visit.ParseMode(seg)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	l, err := lookupFromQuery(mode, r.URL.Query())
	if err != nil {
		apiError(w, err.Error(), http.StatusConflict)
		return
	}

	visits, err := s.svc.Find(r.Context(), l)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	apiJSON(w, visits, http.StatusOK)
}

// lookupFromQuery reads the parameters a mode needs from the query string.
func lookupFromQuery(mode visit.Mode, q url.Values) (visit.Lookup, error) {
	l := visit.Lookup{
		Mode:        mode,
		PatientID:   strings.TrimSpace(q.Get("patient_id")),
		PatientName: q.Get("patient_name"),
		DoctorName:  q.Get("doctor_name"),
	}

	switch mode {
	case visit.ModeID:
		id, err := strconv.ParseInt(strings.TrimSpace(q.Get("visit_id")), 10, 64)
		if err != nil {
			return l, errors.New("Visit ID must be a number...")
		}
		l.VisitID = id
	case visit.ModeDate, visit.ModeSelected:
		d, err := strconv.ParseInt(strings.TrimSpace(q.Get("visit_date")), 10, 64)
		if err != nil {
			return l, errors.New("Invalid date format...")
		}
		l.VisitDate = visit.Date(d)
	}
	return l, nil
}

// visitRequest is the JSON body of create and update. patient_id may be sent
// as a number or a string.
type visitRequest struct {
	VisitID     int64      `json:"visit_id"`
	VisitDate   visit.Date `json:"visit_date"`
	PatientID   flexString `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	DoctorName  string     `json:"doctor_name"`
}

func (v visitRequest) toVisit() visit.Visit {
	return visit.Visit{
		VisitID:     v.VisitID,
		VisitDate:   v.VisitDate,
		PatientID:   string(v.PatientID),
		PatientName: v.PatientName,
		DoctorName:  v.DoctorName,
	}
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func decodeVisit(r *http.Request) (visit.Visit, error) {
	var req visitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return visit.Visit{}, err
	}
	return req.toVisit(), nil
}

func (s *Server) apiCreateVisit(w http.ResponseWriter, r *http.Request) {
	v, err := decodeVisit(r)
	if err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := s.svc.Create(r.Context(), v); err != nil {
		serviceError(w, r, err)
		return
	}
	apiMessage(w, "Visit added", http.StatusCreated)
}

func (s *Server) apiUpdateVisit(w http.ResponseWriter, r *http.Request, id int64) {
	v, err := decodeVisit(r)
	if err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := s.svc.Update(r.Context(), id, v); err != nil {
		serviceError(w, r, err)
		return
	}
	apiMessage(w, "Visit updated", http.StatusAccepted)
}

func (s *Server) apiDeleteVisit(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.svc.Delete(r.Context(), id); err != nil {
		serviceError(w, r, err)
		return
	}
	apiMessage(w, "Visit deleted", http.StatusOK)
}

func (s *Server) apiDeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.DeleteAll(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	apiJSON(w, map[string]interface{}{
		"message": "All visits deleted",
		"deleted": n,
	}, http.StatusOK)
}
