package deck

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dwelli/backend/internal/models"
	"github.com/phpdave11/gofpdf"
)

// Profile is everything printed on a rental deck
type Profile struct {
	User      *models.User
	Summary   string
	Documents []models.Document
	Generated time.Time
}

// Build renders the rental deck PDF a tenant attaches to applications
func Build(p Profile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Dwelli Rental Deck", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Rental Deck")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Applicant: %s", p.User.Username)))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Email: %s", p.User.Email)))
	pdf.Ln(6)
	if p.User.Profession != "" {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Profession: %s", p.User.Profession)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Prepared: %s", p.Generated.Format("2 January 2006")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "About me")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, tr(p.Summary), "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Documents")
	pdf.Ln(8)

	if len(p.Documents) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No documents uploaded yet.")
		pdf.Ln(7)
	} else {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(90, 7, "Name")
		pdf.Cell(40, 7, "Category")
		pdf.Cell(50, 7, "Uploaded")
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		for _, d := range p.Documents {
			pdf.Cell(90, 7, tr(d.Name))
			pdf.Cell(40, 7, string(d.Category))
			pdf.Cell(50, 7, d.UploadedAt.Format("2006-01-02"))
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
