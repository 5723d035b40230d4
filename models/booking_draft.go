package models

// BookingDraft accumulates the fields collected during one booking attempt.
// Each field is written at most once per attempt.
type BookingDraft struct {
	Service string `json:"service,omitempty" bson:"service,omitempty"`
	Date    string `json:"date,omitempty" bson:"date,omitempty"`
	Time    string `json:"time,omitempty" bson:"time,omitempty"`
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// IsEmpty reports whether no field has been collected yet.
func (d BookingDraft) IsEmpty() bool {
	return d == BookingDraft{}
}

// Snapshot returns the collected fields keyed by name. Unset fields are omitted.
func (d BookingDraft) Snapshot() map[string]string {
	out := make(map[string]string, 5)
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("service", d.Service)
	set("date", d.Date)
	set("time", d.Time)
	set("name", d.Name)
	set("phone", d.Phone)
	return out
}
