package models

// BusinessConfig is the static catalog the dialogue runs against. It is
// loaded once at startup and never mutated afterwards.
type BusinessConfig struct {
	Name         string   `json:"name"`
	Services     []string `json:"services"`
	WorkingHours string   `json:"workingHours"`
	TimeSlots    []string `json:"timeSlots"`
}

// DefaultBusinessConfig returns the salon catalog used when nothing else is configured.
func DefaultBusinessConfig() BusinessConfig {
	return BusinessConfig{
		Name:         "Frizerski Salon Elegance",
		Services:     []string{"Šišanje", "Farbanje", "Feniranje", "Manikura"},
		WorkingHours: "09:00 - 20:00",
		TimeSlots:    []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"},
	}
}
