package htmlreport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// DecodeModelOne parses the embedded model-one JSON string.
func DecodeModelOne(doc string) (*entities.ModelOne, error) {
	var model entities.ModelOne
	if err := json.Unmarshal([]byte(doc), &model); err != nil {
		return nil, fmt.Errorf("failed to parse model one document: %w", err)
	}
	return &model, nil
}

// writeParseFailure emits the placeholder shown when an embedded document
// cannot be decoded. The report still generates.
func writeParseFailure(buf *bytes.Buffer, what string) {
	buf.WriteString("<p><em>Failed to parse ")
	buf.WriteString(safe(what))
	buf.WriteString("</em></p>")
}

// renderModelOne writes every model-one section in its dedicated layout,
// then any unrecognized sections through the generic tree renderer.
func renderModelOne(buf *bytes.Buffer, model *entities.ModelOne) {
	renderTPR(buf, model.TPR)
	renderPhysicalExam(buf, model.PhysicalExamFindings)
	renderAssessmentAndPlan(buf, model.AssessmentAndPlan)

	for _, key := range sortedExtraKeys(model) {
		buf.WriteString("<h3>")
		buf.WriteString(safe(key))
		buf.WriteString("</h3>")
		renderRawTree(buf, model.Extra[key])
	}
}

func renderTPR(buf *bytes.Buffer, tpr map[string]entities.Vital) {
	if len(tpr) == 0 {
		return
	}
	buf.WriteString("<h3>TPR</h3>")
	renderTPRList(buf, tpr)
}

func renderTPRList(buf *bytes.Buffer, tpr map[string]entities.Vital) {
	vitals := make([]string, 0, len(tpr))
	for name := range tpr {
		vitals = append(vitals, name)
	}
	sort.Strings(vitals)

	buf.WriteString("<ul>")
	for _, name := range vitals {
		info := tpr[name]
		line := strings.TrimSpace(name + ": " + formatScalar(info.Value) + " " + info.Unit)
		if info.Comment != "" {
			line += " (" + info.Comment + ")"
		}
		buf.WriteString("<li>")
		buf.WriteString(safe(line))
		buf.WriteString("</li>")
	}
	buf.WriteString("</ul>")
}

func renderPhysicalExam(buf *bytes.Buffer, exam map[string][]entities.ExamFinding) {
	if len(exam) == 0 {
		return
	}
	buf.WriteString("<h3>Physical Exam Findings</h3>")
	renderPhysicalExamList(buf, exam)
}

func renderPhysicalExamList(buf *bytes.Buffer, exam map[string][]entities.ExamFinding) {
	systems := make([]string, 0, len(exam))
	for system := range exam {
		systems = append(systems, system)
	}
	sort.Strings(systems)

	buf.WriteString("<ul>")
	for _, system := range systems {
		for _, finding := range exam[system] {
			buf.WriteString("<li>")
			buf.WriteString(safe(finding.StructureOrCharacteristic + ": " + finding.Finding))
			buf.WriteString("</li>")
		}
	}
	buf.WriteString("</ul>")
}

func renderAssessmentAndPlan(buf *bytes.Buffer, blocks []entities.ProblemBlock) {
	if len(blocks) == 0 {
		return
	}

	buf.WriteString("<h3>Assessment &amp; Plan</h3>")
	renderProblemBlocks(buf, blocks)
}

func renderProblemBlocks(buf *bytes.Buffer, blocks []entities.ProblemBlock) {
	for _, block := range blocks {
		buf.WriteString("<strong>")
		buf.WriteString(safe(strings.Join(block.ProblemsOrConcerns, ", ")))
		buf.WriteString("</strong><br>")

		if block.Assessment.Assessment != "" {
			buf.WriteString("Assessment: ")
			buf.WriteString(safe(block.Assessment.Assessment))
			buf.WriteString("<br>")
		}

		planKeys := make([]string, 0, len(block.Plan))
		for key := range block.Plan {
			planKeys = append(planKeys, key)
		}
		sort.Strings(planKeys)

		for _, key := range planKeys {
			if block.Plan[key] == "" {
				continue
			}
			buf.WriteString(safe(key))
			buf.WriteString(": ")
			buf.WriteString(safe(block.Plan[key]))
			buf.WriteString("<br>")
		}
	}
}

func sortedExtraKeys(model *entities.ModelOne) []string {
	keys := make([]string, 0, len(model.Extra))
	for key := range model.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
