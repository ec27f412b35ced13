package models

// Provider holds a provider's bookable calendar. Availability maps a date
// ("2006-01-02") to that day's slot grid, keyed by time of day ("15:04").
// Keys only exist once slot generation has expanded a submitted window.
type Provider struct {
	ID           string                      `bson:"id" json:"id"`
	Availability map[string]map[string]*Slot `bson:"availability" json:"availability"`
}

// Slot is one fixed 15-minute unit of provider time. Booked is true iff
// exactly one unexpired appointment currently references the slot.
type Slot struct {
	Booked bool `bson:"booked" json:"booked"`
}

// AvailabilityWindow is a provider-submitted block of open time on a single
// date, to be expanded into 15-minute slots. StartTime and EndTime use the
// "15:04" layout; windows spanning midnight are rejected.
type AvailabilityWindow struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}
