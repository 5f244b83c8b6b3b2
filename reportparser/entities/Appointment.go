package entities

// Payload is the top-level document found in every export file. Practice
// management systems wrap the appointments in a "data" array even when a
// file holds a single appointment.
type Payload struct {
	Data []Appointment `json:"data"`
}

type Appointment struct {
	AppointmentID     string   `json:"appointmentId"`
	AppointmentDate   string   `json:"appointmentDate,omitempty"`
	AppointmentReason string   `json:"appointmentReason"`
	ClientFirstName   string   `json:"clientFirstName"`
	ClientLastName    string   `json:"clientLastName"`
	PetName           string   `json:"petName"`
	Species           string   `json:"species,omitempty"`
	Breed             string   `json:"breed,omitempty"`
	ResourceName      string   `json:"resourceName"`
	Scribes           []Scribe `json:"scribes"`
}

// ClientName joins the client first and last names, tolerating either
// being empty.
func (a *Appointment) ClientName() string {
	switch {
	case a.ClientFirstName == "":
		return a.ClientLastName
	case a.ClientLastName == "":
		return a.ClientFirstName
	default:
		return a.ClientFirstName + " " + a.ClientLastName
	}
}

// Bundle ties a parsed payload to the file it came from. Stem is the file
// name without its extension and names the generated report.
type Bundle struct {
	SourceFile string  `json:"sourceFile"`
	Stem       string  `json:"stem"`
	Payload    Payload `json:"payload"`
}
