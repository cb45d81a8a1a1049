package triage

import (
	"fmt"
	"io"
)

const (
	reportHeader = "=== MEDICAL TRIAGE REPORT ==="
	reportFooter = "============================"
)

// WriteReport renders r as the plain-text triage report.
func WriteReport(w io.Writer, r Result) error {
	_, err := fmt.Fprintf(w, "%s\nCondition: %s\nTreatment: %s\nMedication: %s\nSummary: %s\n%s\n",
		reportHeader,
		r.Category,
		r.Treatment,
		r.Medication,
		r.Summary,
		reportFooter,
	)
	return err
}
