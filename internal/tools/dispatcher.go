package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Fixed dispatcher results. Dispatch never returns an error: every failure
// becomes conversational content the reasoner can explain to the caller.
const (
	resultArgParseError  = "error parsing tool arguments"
	resultNotImplemented = "tool not implemented"
)

// Dispatch outcome labels for the recorder.
const (
	outcomeOK             = "ok"
	outcomeParseError     = "parse_error"
	outcomeNotImplemented = "not_implemented"
	outcomeConnectorError = "connector_error"
)

// DispatchRecorder counts resolved dispatches by tool and outcome.
type DispatchRecorder interface {
	RecordToolDispatch(tool, outcome string)
}

// Dispatcher resolves reasoner-issued tool invocations against the
// fulfillment connectors.
type Dispatcher struct {
	connectors *Connectors
	timeout    time.Duration
	recorder   DispatchRecorder
}

func NewDispatcher(connectors *Connectors, timeout time.Duration, recorder DispatchRecorder) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{connectors: connectors, timeout: timeout, recorder: recorder}
}

// ListTools exposes the catalog in stable order.
func (d *Dispatcher) ListTools() []Tool {
	return Catalog()
}

// Dispatch executes the named tool with raw JSON-encoded arguments and
// always resolves to a human-readable result string. Each call is counted
// against the recorder with its outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, name, rawArgs string) string {
	result, outcome := d.resolve(ctx, name, rawArgs)
	if d.recorder != nil {
		d.recorder.RecordToolDispatch(name, outcome)
	}
	return result
}

func (d *Dispatcher) resolve(ctx context.Context, name, rawArgs string) (string, string) {
	var args map[string]any
	if strings.TrimSpace(rawArgs) == "" {
		args = map[string]any{}
	} else if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return resultArgParseError, outcomeParseError
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	switch name {
	case ToolCabBooking:
		result, err := d.connectors.BookCab(ctx, CabRequest{
			PickupLocation:  stringArg(args, "pickup_location"),
			DropoffLocation: stringArg(args, "dropoff_location"),
			Platform:        stringArg(args, "platform"),
			Time:            stringArg(args, "time"),
		})
		if err != nil {
			return fmt.Sprintf("Error booking cab: %v", err), outcomeConnectorError
		}
		return result, outcomeOK
	case ToolGroceryOrdering:
		result, err := d.connectors.OrderGroceries(ctx, GroceryRequest{
			Items:           stringListArg(args, "items"),
			DeliveryAddress: stringArg(args, "delivery_address"),
			Platform:        stringArg(args, "platform"),
			DeliveryTime:    stringArg(args, "delivery_time"),
		})
		if err != nil {
			return fmt.Sprintf("Error placing order: %v", err), outcomeConnectorError
		}
		return result, outcomeOK
	case ToolAppointment:
		result, err := d.connectors.BookAppointment(ctx, AppointmentRequest{
			AppointmentType: stringArg(args, "appointment_type"),
			DoctorName:      stringArg(args, "doctor_name"),
			LabName:         stringArg(args, "lab_name"),
			Date:            stringArg(args, "date"),
			Time:            stringArg(args, "time"),
			PatientName:     stringArg(args, "patient_name"),
		})
		if err != nil {
			return fmt.Sprintf("Error booking appointment: %v", err), outcomeConnectorError
		}
		return result, outcomeOK
	case ToolWeather:
		result, err := d.connectors.CurrentWeather(ctx, stringArg(args, "location"))
		if err != nil {
			return fmt.Sprintf("Error fetching weather: %v", err), outcomeConnectorError
		}
		return result, outcomeOK
	case ToolNews:
		result, err := d.connectors.NewsBriefing(ctx, stringArg(args, "location"), stringArg(args, "topic"))
		if err != nil {
			return fmt.Sprintf("Error fetching news: %v", err), outcomeConnectorError
		}
		return result, outcomeOK
	case ToolSearch:
		result, err := d.connectors.SearchNews(ctx, stringArg(args, "query"))
		if err != nil {
			return fmt.Sprintf("Error searching: %v", err), outcomeConnectorError
		}
		return result, outcomeOK
	default:
		return resultNotImplemented, outcomeNotImplemented
	}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func stringListArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{strings.TrimSpace(v)}
	default:
		return nil
	}
}
