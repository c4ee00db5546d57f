package domain

// Role identifies the sender of a message in a consultation
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Message is one entry in a consultation transcript. Messages are immutable
// once created; the ordered slice they live in is the prompt context.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Doctor builds a doctor-authored message
func Doctor(text string) Message {
	return Message{Role: RoleDoctor, Content: text}
}

// Patient builds a patient-authored message
func Patient(text string) Message {
	return Message{Role: RolePatient, Content: text}
}

// IsDoctor reports whether the message came from the doctor side
func (m Message) IsDoctor() bool {
	return m.Role == RoleDoctor
}
