package tools

// Property describes one parameter of a tool in JSON-schema terms.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
	// Items holds the element type when Type is "array".
	Items *Property `json:"items,omitempty"`
}

// Tool is one static catalog declaration shown to the reasoner.
type Tool struct {
	Name        string
	Description string
	Properties  map[string]Property
	Required    []string
}

// Canonical tool identifiers. The external-facing name shown to the model
// is the same string; dispatch keys on these constants only.
const (
	ToolCabBooking      = "cab_booking"
	ToolGroceryOrdering = "grocery_medicine_ordering"
	ToolAppointment     = "doctor_lab_appointment"
	ToolWeather         = "weather_briefing"
	ToolNews            = "news_briefing"
	ToolSearch          = "search"
)

// Catalog returns the full tool catalog in stable order.
func Catalog() []Tool {
	return []Tool{
		{
			Name:        ToolCabBooking,
			Description: "Book a cab for the caller between two locations.",
			Properties: map[string]Property{
				"pickup_location":  {Type: "string", Description: "Where the cab should pick the caller up."},
				"dropoff_location": {Type: "string", Description: "Where the cab should drop the caller."},
				"platform":         {Type: "string", Description: "Ride platform to book on.", Enum: []string{"uber", "ola"}},
				"time":             {Type: "string", Description: "Requested pickup time, if any."},
			},
			Required: []string{"pickup_location", "dropoff_location", "platform"},
		},
		{
			Name:        ToolGroceryOrdering,
			Description: "Order groceries, essentials, or medicines for delivery.",
			Properties: map[string]Property{
				"items":            {Type: "array", Description: "Items to order.", Items: &Property{Type: "string"}},
				"delivery_address": {Type: "string", Description: "Delivery address."},
				"platform":         {Type: "string", Description: "Delivery platform to order on.", Enum: []string{"swiggy", "zomato", "blinkit"}},
				"delivery_time":    {Type: "string", Description: "Preferred delivery time."},
			},
			Required: []string{"items", "delivery_address", "platform"},
		},
		{
			Name:        ToolAppointment,
			Description: "Schedule a doctor or lab appointment.",
			Properties: map[string]Property{
				"appointment_type": {Type: "string", Description: "Type of appointment.", Enum: []string{"doctor", "lab"}},
				"doctor_name":      {Type: "string", Description: "Doctor name when booking a doctor."},
				"lab_name":         {Type: "string", Description: "Lab name when booking a lab test."},
				"date":             {Type: "string", Description: "Preferred date (YYYY-MM-DD)."},
				"time":             {Type: "string", Description: "Preferred time."},
				"patient_name":     {Type: "string", Description: "Name of the patient."},
			},
			Required: []string{"appointment_type", "date", "time", "patient_name"},
		},
		{
			Name:        ToolWeather,
			Description: "Get current weather conditions for a location.",
			Properties: map[string]Property{
				"location": {Type: "string", Description: "City or place name for the weather report."},
			},
			Required: []string{"location"},
		},
		{
			Name:        ToolNews,
			Description: "Get a short briefing of top news headlines.",
			Properties: map[string]Property{
				"location": {Type: "string", Description: "Two-letter country code or place for local headlines."},
				"topic":    {Type: "string", Description: "Optional topic to filter headlines."},
			},
			Required: []string{},
		},
		{
			Name:        ToolSearch,
			Description: "Search recent news articles for general information.",
			Properties: map[string]Property{
				"query": {Type: "string", Description: "Search query."},
			},
			Required: []string{"query"},
		},
	}
}
