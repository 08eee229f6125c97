package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Mock fulfillment endpoints. They simulate the downstream booking and
// ordering providers the connectors call, with real-looking validation so
// the reasoner has believable failure modes to explain to the caller.

var (
	cabPlatforms     = []string{"uber", "ola"}
	groceryPlatforms = []string{"swiggy", "zomato", "blinkit"}
)

func (s *Server) handleMockCabBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PickupLocation  string `json:"pickup_location"`
		DropoffLocation string `json:"dropoff_location"`
		Time            string `json:"time"`
		Platform        string `json:"platform"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.PickupLocation == "" || req.DropoffLocation == "" || req.Platform == "" {
		respondError(w, http.StatusBadRequest, "pickup_location, dropoff_location, and platform are required.")
		return
	}
	if !containsFold(cabPlatforms, req.Platform) {
		respondError(w, http.StatusBadRequest, "platform must be one of: "+strings.Join(cabPlatforms, ", "))
		return
	}

	when := ""
	if req.Time != "" {
		when = " at " + req.Time
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf(
			"Your cab booking has been placed on %s. The cab will pick you up from %s and drop you at %s%s. Thank you for using our service.",
			capitalize(req.Platform), req.PickupLocation, req.DropoffLocation, when,
		),
	})
}

func (s *Server) handleMockGroceryOrdering(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items           []string `json:"items"`
		DeliveryAddress string   `json:"delivery_address"`
		Platform        string   `json:"platform"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 || req.DeliveryAddress == "" || req.Platform == "" {
		respondError(w, http.StatusBadRequest, "items, delivery_address, and platform are required.")
		return
	}
	if !containsFold(groceryPlatforms, req.Platform) {
		respondError(w, http.StatusBadRequest, "platform must be one of: "+strings.Join(groceryPlatforms, ", "))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf(
			"Your order has been placed on %s for the following items: %s. The items will be delivered to %s. Thank you for using our service.",
			capitalize(req.Platform), strings.Join(req.Items, ", "), req.DeliveryAddress,
		),
	})
}

func (s *Server) handleMockAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AppointmentType string `json:"appointment_type"`
		DoctorName      string `json:"doctor_name"`
		LabName         string `json:"lab_name"`
		Date            string `json:"date"`
		Time            string `json:"time"`
		PatientName     string `json:"patient_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.AppointmentType == "" || (req.DoctorName == "" && req.LabName == "") ||
		req.Date == "" || req.Time == "" || req.PatientName == "" {
		respondError(w, http.StatusBadRequest, "appointment_type, doctor_name/lab_name, date, time, and patient_name are required.")
		return
	}

	provider := req.DoctorName
	if req.AppointmentType != "doctor" {
		provider = req.LabName
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf(
			"Your %s appointment with %s has been booked for %s on %s at %s. This is a mock confirmation.",
			req.AppointmentType, provider, req.PatientName, req.Date, req.Time,
		),
	})
}

func containsFold(allowed []string, value string) bool {
	for _, v := range allowed {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
