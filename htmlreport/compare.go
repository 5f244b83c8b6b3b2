package htmlreport

import (
	"bytes"
	"strings"

	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// comparisonRow pairs one clinical section across the two note schemas.
// Either cell may be empty when the section exists on one side only.
type comparisonRow struct {
	Section   string
	ModelOne  string
	CardModel string
}

// buildComparison reconciles a model-one document with a card-model
// document. Model-one sections keep their canonical order; card titles are
// matched case-insensitively ignoring spaces and punctuation, and cards
// that match nothing are appended in card order.
func buildComparison(model *entities.ModelOne, cards *entities.CardModel) []comparisonRow {
	cardBodies := make(map[string]string)
	cardOrder := make([]string, 0, len(cards.Cards))
	cardTitles := make(map[string]string)

	for i := range cards.Cards {
		card := &cards.Cards[i]
		key := normalizeSection(card.CardTitle)
		if _, seen := cardBodies[key]; seen {
			// Duplicate card titles merge into one cell.
			var buf bytes.Buffer
			renderCardBody(&buf, card)
			cardBodies[key] += buf.String()
			continue
		}
		var buf bytes.Buffer
		renderCardBody(&buf, card)
		cardBodies[key] = buf.String()
		cardTitles[key] = card.CardTitle
		cardOrder = append(cardOrder, key)
	}

	matched := make(map[string]bool)
	var rows []comparisonRow

	appendRow := func(section string, renderCell func(*bytes.Buffer)) {
		var buf bytes.Buffer
		renderCell(&buf)
		key := normalizeSection(section)
		row := comparisonRow{Section: section, ModelOne: buf.String()}
		if body, ok := cardBodies[key]; ok {
			row.CardModel = body
			matched[key] = true
		}
		rows = append(rows, row)
	}

	if len(model.TPR) > 0 {
		appendRow("TPR", func(buf *bytes.Buffer) { renderTPRList(buf, model.TPR) })
	}
	if len(model.PhysicalExamFindings) > 0 {
		appendRow("Physical Exam Findings", func(buf *bytes.Buffer) {
			renderPhysicalExamList(buf, model.PhysicalExamFindings)
		})
	}
	if len(model.AssessmentAndPlan) > 0 {
		appendRow("Assessment and Plan", func(buf *bytes.Buffer) {
			renderProblemBlocks(buf, model.AssessmentAndPlan)
		})
	}
	for _, key := range sortedExtraKeys(model) {
		raw := model.Extra[key]
		appendRow(key, func(buf *bytes.Buffer) { renderRawTree(buf, raw) })
	}

	for _, key := range cardOrder {
		if matched[key] {
			continue
		}
		rows = append(rows, comparisonRow{
			Section:   cardTitles[key],
			CardModel: cardBodies[key],
		})
	}

	return rows
}

// normalizeSection maps a section name or card title to its matching key.
// "AssessmentAndPlan" and "Assessment and Plan" must collide, so names are
// split into words on spaces, punctuation and camelCase boundaries, the
// standalone connective "and" is dropped, and the rest is lowercased and
// joined. Only whole words are dropped: "Handling" keeps its "and".
func normalizeSection(name string) string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	var prev rune
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			if prev >= 'a' && prev <= 'z' {
				flush()
			}
			cur.WriteRune(r)
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			cur.WriteRune(r)
		default:
			flush()
		}
		prev = r
	}
	flush()

	var b strings.Builder
	for _, word := range words {
		if word == "and" {
			continue
		}
		b.WriteString(word)
	}
	return b.String()
}

// renderComparison writes the side-by-side reconciliation table.
func renderComparison(buf *bytes.Buffer, model *entities.ModelOne, cards *entities.CardModel) {
	rows := buildComparison(model, cards)
	if len(rows) == 0 {
		return
	}

	buf.WriteString("<h3>Model Comparison</h3>")
	buf.WriteString(`<table class="compare"><tr><th>Section</th><th>Model One</th><th>Card Model</th></tr>`)
	for _, row := range rows {
		buf.WriteString("<tr><th>")
		buf.WriteString(safe(row.Section))
		buf.WriteString("</th><td>")
		writeCell(buf, row.ModelOne)
		buf.WriteString("</td><td>")
		writeCell(buf, row.CardModel)
		buf.WriteString("</td></tr>")
	}
	buf.WriteString("</table>")
}

func writeCell(buf *bytes.Buffer, fragment string) {
	if fragment == "" {
		buf.WriteString("&mdash;")
		return
	}
	buf.WriteString(fragment)
}
