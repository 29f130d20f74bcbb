// Package client provides an HTTP client for the visits API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an HTTP client for the visits API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListAll returns every visit in booking order.
func (c *Client) ListAll(ctx context.Context) ([]visit.Visit, error) {
	return c.Find(ctx, visit.Lookup{Mode: visit.ModeAll})
}

// ByID returns the visit with the given id.
func (c *Client) ByID(ctx context.Context, id int64) ([]visit.Visit, error) {
	return c.Find(ctx, visit.Lookup{Mode: visit.ModeID, VisitID: id})
}

// ByPatient returns every visit of a patient.
func (c *Client) ByPatient(ctx context.Context, patientID string) ([]visit.Visit, error) {
	return c.Find(ctx, visit.Lookup{Mode: visit.ModePatient, PatientID: patientID})
}

// ByDoctor returns every visit with a doctor.
func (c *Client) ByDoctor(ctx context.Context, doctor string) ([]visit.Visit, error) {
	return c.Find(ctx, visit.Lookup{Mode: visit.ModeDoctor, DoctorName: doctor})
}

// ByDate returns every visit on the day of d, at any hour.
func (c *Client) ByDate(ctx context.Context, d visit.Date) ([]visit.Visit, error) {
	return c.Find(ctx, visit.Lookup{Mode: visit.ModeDate, VisitDate: d})
}

// Selected returns visits matching the whole booking of v.
func (c *Client) Selected(ctx context.Context, v visit.Visit) ([]visit.Visit, error) {
	return c.Find(ctx, visit.Lookup{
		Mode:        visit.ModeSelected,
		VisitDate:   v.VisitDate,
		PatientID:   v.PatientID,
		PatientName: v.PatientName,
		DoctorName:  v.DoctorName,
	})
}

// Find runs a lookup against GET /visit/{mode}.
func (c *Client) Find(ctx context.Context, l visit.Lookup) ([]visit.Visit, error) {
	params := url.Values{}
	switch l.Mode {
	case visit.ModeID:
		params.Set("visit_id", strconv.FormatInt(l.VisitID, 10))
	case visit.ModePatient:
		params.Set("patient_id", l.PatientID)
	case visit.ModeDoctor:
		params.Set("doctor_name", l.DoctorName)
	case visit.ModeDate:
		params.Set("visit_date", strconv.FormatInt(int64(l.VisitDate), 10))
	case visit.ModeSelected:
		params.Set("visit_date", strconv.FormatInt(int64(l.VisitDate), 10))
		params.Set("patient_id", l.PatientID)
		params.Set("patient_name", l.PatientName)
		params.Set("doctor_name", l.DoctorName)
	}

	path := "/visit/" + url.PathEscape(string(l.Mode))
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var visits []visit.Visit
	if err := c.get(ctx, path, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// Create books a visit and returns the server's confirmation.
func (c *Client) Create(ctx context.Context, v visit.Visit) (string, error) {
	var resp messageResponse
	if err := c.send(ctx, http.MethodPost, "/visit", v, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Update replaces the visit stored under id.
func (c *Client) Update(ctx context.Context, id int64, v visit.Visit) (string, error) {
	var resp messageResponse
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/visit/%d", id), v, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Delete removes one visit.
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/visit/%d", id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// DeleteAll removes every visit and returns how many were removed.
func (c *Client) DeleteAll(ctx context.Context) (int64, error) {
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.send(ctx, http.MethodDelete, "/visit", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// Doctors returns the server's doctor roster.
func (c *Client) Doctors(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.get(ctx, "/doctors", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Health reports whether the server and its store are up.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

type messageResponse struct {
	Message string `json:"message"`
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// send performs a request with an optional JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and turns error responses into *APIError.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
