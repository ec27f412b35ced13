package models

// Document is the full persisted state of the scheduler: every provider's
// availability grid plus every outstanding appointment. The store reads and
// writes it as one unit.
type Document struct {
	Providers    map[string]*Provider    `bson:"providers" json:"Providers"`
	Appointments map[string]*Appointment `bson:"appointments" json:"Appointments"`
}

// NewDocument returns an empty document with both collections initialized.
func NewDocument() *Document {
	return &Document{
		Providers:    make(map[string]*Provider),
		Appointments: make(map[string]*Appointment),
	}
}

// EnsureMaps initializes any collection left nil by decoding, so callers can
// index into the document without nil checks.
func (d *Document) EnsureMaps() {
	if d.Providers == nil {
		d.Providers = make(map[string]*Provider)
	}
	if d.Appointments == nil {
		d.Appointments = make(map[string]*Appointment)
	}
}
