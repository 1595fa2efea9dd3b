package domain

import "fmt"

// Service is an entry of the static service catalog
// Services either carry their own duration/price or split into
// subcategories with individual durations/prices
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	Subcategories   []Subcategory
}

// Subcategory is a variant of a catalog service
type Subcategory struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
}

// ServiceColor holds the calendar colors of a service
type ServiceColor struct {
	Background string
	Border     string
}

// Services is the static service catalog of the salon
// Durations are denormalized onto appointments at booking time, so editing
// this table never reinterprets historical bookings
var Services = []Service{
	{
		ID:              "neumodellage",
		Name:            "Neumodellage inkl. French Weiß oder Farbe",
		DurationMinutes: 90,
		Price:           60,
	},
	{
		ID:   "auffuellen",
		Name: "Auffüllen",
		Subcategories: []Subcategory{
			{ID: "auffuellen-babyboomer", Name: "Babyboomer", DurationMinutes: 75, Price: 45},
			{ID: "auffuellen-natur", Name: "Natur", DurationMinutes: 60, Price: 40},
			{ID: "auffuellen-french", Name: "mit French/Farbe", DurationMinutes: 75, Price: 45},
		},
	},
	{
		ID:   "abloesen",
		Name: "Ablösen der Nagelmodellage",
		Subcategories: []Subcategory{
			{ID: "abloesen-gel", Name: "Gel", DurationMinutes: 30, Price: 15},
			{ID: "abloesen-acyl", Name: "Acyl", DurationMinutes: 45, Price: 20},
		},
	},
	{
		ID:   "manikuere",
		Name: "Maniküre",
		Subcategories: []Subcategory{
			{ID: "manikuere-lack", Name: "mit klarlack/Nagellack", DurationMinutes: 45, Price: 25},
		},
	},
	{
		ID:   "pedikuere",
		Name: "Pediküre (Fußbad, Hornhautentfernung, Massage)",
		Subcategories: []Subcategory{
			{ID: "pedikuere-lack", Name: "mit klarlack/Nagellack", DurationMinutes: 60, Price: 35},
			{ID: "pedikuere-french", Name: "mit French", DurationMinutes: 75, Price: 40},
		},
	},
}

// ServiceColors maps service ids to their calendar colors
var ServiceColors = map[string]ServiceColor{
	"neumodellage": {Background: "#d4af37", Border: "#b08d26"},
	"auffuellen":   {Background: "#FF6B9D", Border: "#e05a8a"},
	"abloesen":     {Background: "#1a1a1a", Border: "#000000"},
	"manikuere":    {Background: "#8e44ad", Border: "#7d3c98"},
	"pedikuere":    {Background: "#2980b9", Border: "#2471a3"},
}

// DefaultServiceColor is used for appointments whose service is no longer
// in the catalog
var DefaultServiceColor = ServiceColor{Background: "#7c3aed", Border: "#6d28d9"}

// FindService looks up a catalog service by id
func FindService(id string) (*Service, bool) {
	for i := range Services {
		if Services[i].ID == id {
			return &Services[i], true
		}
	}
	return nil, false
}

// ResolvedService is the outcome of resolving a booking request against
// the catalog
type ResolvedService struct {
	Name            string
	DurationMinutes int
	Price           float64
}

// ResolveService resolves a service (and optional subcategory) to the
// denormalized name, duration and price stored on the appointment.
// Services with subcategories require a subcategory id; the resolved name
// encodes both as "Category - Subcategory"
func ResolveService(serviceID, subcategoryID string) (*ResolvedService, error) {
	service, ok := FindService(serviceID)
	if !ok {
		return nil, fmt.Errorf("unknown service %q", serviceID)
	}

	if len(service.Subcategories) == 0 {
		if subcategoryID != "" {
			return nil, fmt.Errorf("service %q has no subcategories", serviceID)
		}
		duration := service.DurationMinutes
		if duration <= 0 {
			duration = DefaultDurationMinutes
		}
		return &ResolvedService{
			Name:            service.Name,
			DurationMinutes: duration,
			Price:           service.Price,
		}, nil
	}

	if subcategoryID == "" {
		return nil, fmt.Errorf("service %q requires a subcategory", serviceID)
	}

	for _, sub := range service.Subcategories {
		if sub.ID == subcategoryID {
			duration := sub.DurationMinutes
			if duration <= 0 {
				duration = DefaultDurationMinutes
			}
			return &ResolvedService{
				Name:            service.Name + " - " + sub.Name,
				DurationMinutes: duration,
				Price:           sub.Price,
			}, nil
		}
	}
	return nil, fmt.Errorf("unknown subcategory %q of service %q", subcategoryID, serviceID)
}

// ColorForServiceName returns the calendar color of a denormalized service
// name ("Category - Subcategory" or plain category name)
func ColorForServiceName(serviceName string) ServiceColor {
	for i := range Services {
		s := &Services[i]
		if serviceName == s.Name || hasNamePrefix(serviceName, s.Name+" - ") {
			if color, ok := ServiceColors[s.ID]; ok {
				return color
			}
		}
	}
	return DefaultServiceColor
}

func hasNamePrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
