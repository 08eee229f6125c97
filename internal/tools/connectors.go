package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config points the connectors at their providers.
type Config struct {
	// FulfillmentBaseURL hosts the booking/ordering endpoints.
	FulfillmentBaseURL string
	GeocodeBaseURL     string
	ForecastBaseURL    string
	GNewsBaseURL       string
	GNewsAPIKey        string
}

// Connectors fulfill tools by calling external providers and normalizing
// their responses into result strings. No call raises past this boundary
// with anything but a wrapped error for the dispatcher to stringify.
type Connectors struct {
	cfg    Config
	client *http.Client
}

func NewConnectors(cfg Config) *Connectors {
	return &Connectors{
		cfg: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type CabRequest struct {
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	Platform        string `json:"platform"`
	Time            string `json:"time,omitempty"`
}

// BookCab places a cab booking through the fulfillment endpoint. Validation
// failures reported by the provider (missing fields, unknown platform)
// become the result string so the caller hears what went wrong.
func (c *Connectors) BookCab(ctx context.Context, req CabRequest) (string, error) {
	return c.postFulfillment(ctx, "/v1/mock/cab-booking", req)
}

type GroceryRequest struct {
	Items           []string `json:"items"`
	DeliveryAddress string   `json:"delivery_address"`
	Platform        string   `json:"platform"`
	DeliveryTime    string   `json:"delivery_time,omitempty"`
}

func (c *Connectors) OrderGroceries(ctx context.Context, req GroceryRequest) (string, error) {
	return c.postFulfillment(ctx, "/v1/mock/grocery-medicine-ordering", req)
}

type AppointmentRequest struct {
	AppointmentType string `json:"appointment_type"`
	DoctorName      string `json:"doctor_name,omitempty"`
	LabName         string `json:"lab_name,omitempty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PatientName     string `json:"patient_name"`
}

func (c *Connectors) BookAppointment(ctx context.Context, req AppointmentRequest) (string, error) {
	return c.postFulfillment(ctx, "/v1/mock/doctor-lab-appointment", req)
}

func (c *Connectors) postFulfillment(ctx context.Context, path string, payload any) (string, error) {
	base := strings.TrimRight(c.cfg.FulfillmentBaseURL, "/")
	if base == "" {
		return "", fmt.Errorf("fulfillment endpoint not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	var decoded struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := decodeBody(res.Body, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	// The provider's own validation message is the outcome the caller
	// should hear, not a system error.
	if decoded.Error != "" {
		return decoded.Error, nil
	}
	if decoded.Message == "" {
		return "", fmt.Errorf("provider returned no confirmation (status %d)", res.StatusCode)
	}
	return decoded.Message, nil
}

func decodeBody(r io.Reader, out any) error {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
