package entities

// Scribe is one transcription entry attached to an appointment. The two
// transcription model fields hold complete JSON documents serialized as
// strings; they are decoded lazily at render time so a malformed model
// never blocks parsing of the surrounding payload.
type Scribe struct {
	ScribeID               string `json:"scribeId,omitempty"`
	ScribeTitle            string `json:"scribeTitle"`
	RecordedAt             string `json:"recordedAt,omitempty"`
	TranscriptionText      string `json:"transcriptionText"`
	TranscriptionModelOne  string `json:"transcriptionModelOne,omitempty"`
	TranscriptionCardModel string `json:"transcriptionCardModel,omitempty"`
}

// HasModelOne reports whether the scribe carries a model-one document.
func (s *Scribe) HasModelOne() bool {
	return s.TranscriptionModelOne != ""
}

// HasCardModel reports whether the scribe carries a card-model document.
func (s *Scribe) HasCardModel() bool {
	return s.TranscriptionCardModel != ""
}
