// Package htmlreport turns parsed appointment bundles into self-contained
// HTML report documents. All clinical text passes through HTML escaping
// exactly once, on its way into the buffer.
package htmlreport

import (
	"bytes"

	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// Compile-time check to ensure Renderer implements the Renderer interface
var _ interfaces.Renderer = (*Renderer)(nil)

// Renderer implements the Renderer interface
type Renderer struct{}

// NewRenderer creates a new Renderer instance
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderBundle implements the Renderer interface
func (r *Renderer) RenderBundle(bundle *entities.Bundle) string {
	return RenderBundle(bundle)
}

const stylesheet = `body{font-family:Arial,sans-serif;margin:24px;color:#222}
h1{font-size:1.4em;border-bottom:2px solid #444;padding-bottom:4px}
h2{font-size:1.15em;margin-top:22px}
h3{font-size:1em;margin:14px 0 4px}
table{border-collapse:collapse;margin:8px 0}
th,td{border:1px solid #ccc;padding:4px 8px;text-align:left;vertical-align:top}
table.compare th{background:#f2f2f2}
ul{margin:4px 0 8px 20px;padding:0}
small{color:#666}`

// RenderBundle produces the complete HTML document for one export file.
func RenderBundle(bundle *entities.Bundle) string {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	buf.WriteString(safe(bundle.Stem))
	buf.WriteString("</title><style>")
	buf.WriteString(stylesheet)
	buf.WriteString("</style></head><body>\n")

	for i := range bundle.Payload.Data {
		renderAppointment(&buf, &bundle.Payload.Data[i])
	}

	buf.WriteString("\n</body></html>\n")
	return buf.String()
}

func renderAppointment(buf *bytes.Buffer, appt *entities.Appointment) {
	buf.WriteString("<h1>Appointment ")
	buf.WriteString(safe(appt.AppointmentID))
	buf.WriteString("</h1>")

	buf.WriteString("<table>")
	writeDetailRow(buf, "Client", appt.ClientName())
	writeDetailRow(buf, "Pet", appt.PetName)
	if appt.Species != "" || appt.Breed != "" {
		writeDetailRow(buf, "Species / Breed", joinNonEmpty(appt.Species, appt.Breed))
	}
	if appt.AppointmentDate != "" {
		writeDetailRow(buf, "Date", appt.AppointmentDate)
	}
	writeDetailRow(buf, "Reason", appt.AppointmentReason)
	writeDetailRow(buf, "Doctor", appt.ResourceName)
	buf.WriteString("</table>")

	for i := range appt.Scribes {
		renderScribe(buf, &appt.Scribes[i])
	}
}

func writeDetailRow(buf *bytes.Buffer, label, value string) {
	buf.WriteString("<tr><th>")
	buf.WriteString(safe(label))
	buf.WriteString("</th><td>")
	buf.WriteString(safe(value))
	buf.WriteString("</td></tr>")
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " / " + b
	}
}

func renderScribe(buf *bytes.Buffer, scribe *entities.Scribe) {
	buf.WriteString("<h2>")
	buf.WriteString(safe(scribe.ScribeTitle))
	buf.WriteString("</h2>")

	if scribe.RecordedAt != "" {
		buf.WriteString("<p><small>Recorded at ")
		buf.WriteString(safe(scribe.RecordedAt))
		buf.WriteString("</small></p>")
	}

	buf.WriteString("<p>")
	buf.WriteString(safe(scribe.TranscriptionText))
	buf.WriteString("</p>")

	var modelOne *entities.ModelOne
	var cardModel *entities.CardModel

	if scribe.HasModelOne() {
		decoded, err := DecodeModelOne(scribe.TranscriptionModelOne)
		if err != nil {
			writeParseFailure(buf, "transcriptionModelOne")
		} else {
			modelOne = decoded
		}
	}
	if scribe.HasCardModel() {
		decoded, err := DecodeCardModel(scribe.TranscriptionCardModel)
		if err != nil {
			writeParseFailure(buf, "transcriptionCardModel")
		} else {
			cardModel = decoded
		}
	}

	switch {
	case modelOne != nil && cardModel != nil:
		renderComparison(buf, modelOne, cardModel)
	case modelOne != nil:
		renderModelOne(buf, modelOne)
	case cardModel != nil:
		renderCardModel(buf, cardModel)
	}
}
