package htmlreport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// DecodeCardModel parses the embedded card-model JSON string.
func DecodeCardModel(doc string) (*entities.CardModel, error) {
	var model entities.CardModel
	if err := json.Unmarshal([]byte(doc), &model); err != nil {
		return nil, fmt.Errorf("failed to parse card model document: %w", err)
	}
	return &model, nil
}

// renderCardModel writes every card: title, summary, field list and the
// nested details tree.
func renderCardModel(buf *bytes.Buffer, model *entities.CardModel) {
	for i := range model.Cards {
		renderCard(buf, &model.Cards[i])
	}
}

func renderCard(buf *bytes.Buffer, card *entities.Card) {
	buf.WriteString("<h3>")
	buf.WriteString(safe(card.CardTitle))
	if card.CardType != "" {
		buf.WriteString(" <small>(")
		buf.WriteString(safe(card.CardType))
		buf.WriteString(")</small>")
	}
	buf.WriteString("</h3>")
	renderCardBody(buf, card)
}

// renderCardBody writes the card content without its heading. The
// comparison table reuses it for the card-model cells.
func renderCardBody(buf *bytes.Buffer, card *entities.Card) {
	if card.Summary != "" {
		buf.WriteString("<p>")
		buf.WriteString(safe(card.Summary))
		buf.WriteString("</p>")
	}

	if len(card.Fields) > 0 {
		buf.WriteString("<ul>")
		for _, field := range card.Fields {
			buf.WriteString("<li><strong>")
			buf.WriteString(safe(field.Name))
			buf.WriteString("</strong>: ")
			buf.WriteString(safe(field.Value))
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")
	}

	if len(card.Details) > 0 && !bytes.Equal(card.Details, []byte("null")) {
		renderRawTree(buf, card.Details)
	}
}
