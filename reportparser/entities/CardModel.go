package entities

import "encoding/json"

// CardModel is the second medical-note schema: the same clinical content as
// model one, reorganized into titled cards.
type CardModel struct {
	Cards []Card `json:"Cards"`
}

// Card is a titled block of clinical content. Fields carries the
// label/value pairs the card surface shows; Details holds whatever nested
// structure the card expands into.
type Card struct {
	CardTitle string          `json:"CardTitle"`
	CardType  string          `json:"CardType,omitempty"`
	Summary   string          `json:"Summary,omitempty"`
	Fields    []CardField     `json:"Fields,omitempty"`
	Details   json.RawMessage `json:"Details,omitempty"`
}

type CardField struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}
