package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/apastel/secret-santa-generator/internal/assignment"
	"github.com/apastel/secret-santa-generator/internal/log"
	"github.com/apastel/secret-santa-generator/internal/participant"
)

const (
	defaultImagePath = "resources/secret-santa.png"
	repoLinkText     = "apastel/secret-santa-generator"
	repoURL          = "https://github.com/apastel/secret-santa-generator"
)

// PDFOption configures a PDF exporter.
type PDFOption func(*PDF)

// WithImagePath overrides the decorative image looked up for each page.
func WithImagePath(path string) PDFOption {
	return func(p *PDF) {
		p.imagePath = path
	}
}

// WithYear overrides the year used in output filenames (current year by default).
func WithYear(year int) PDFOption {
	return func(p *PDF) {
		p.year = year
	}
}

// PDF writes one single-page pairing document per giver, named
// "To be opened by {giver} - {year}.pdf", so each participant can open only
// their own envelope.
type PDF struct {
	outdir    string
	imagePath string
	year      int
}

// NewPDF creates a PDF exporter writing into outdir.
func NewPDF(outdir string, opts ...PDFOption) *PDF {
	p := &PDF{
		outdir:    outdir,
		imagePath: defaultImagePath,
		year:      time.Now().Year(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Export implements Exporter.
func (p *PDF) Export(a *assignment.Assignment, _ *participant.Registry) error {
	if err := os.MkdirAll(p.outdir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, pair := range a.Pairs() {
		if err := p.writePairing(pair); err != nil {
			log.ErrorErr(log.CatExport, "PDF export failed", err, "giver", pair.Giver)
			return fmt.Errorf("writing pairing PDF for %q: %w", pair.Giver, err)
		}
	}

	log.Info(log.CatExport, "Wrote pairing PDFs", "outdir", p.outdir, "count", a.Len())
	return nil
}

func (p *PDF) writePairing(pair assignment.Pair) error {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	width, height := doc.GetPageSize()

	doc.SetFont("Helvetica", "B", 18)
	doc.SetY(90)
	doc.CellFormat(0, 20, fmt.Sprintf("Hello %s!", pair.Giver), "", 1, "C", false, 0, "")

	p.drawImage(doc, width, height)

	// Assignment text goes after the image so it stays on top if they overlap.
	doc.SetFont("Helvetica", "", 14)
	doc.SetY(130)
	doc.CellFormat(0, 18, "You have been assigned: "+pair.Receiver, "", 1, "C", false, 0, "")

	drawFooterLink(doc, width, height)

	name := fmt.Sprintf("To be opened by %s - %d.pdf", sanitizeFilename(pair.Giver), p.year)
	return doc.OutputFileAndClose(filepath.Join(p.outdir, name))
}

// drawImage centers the decorative image on the page, scaled to at most 60%
// of the page width and 25% of the page height. A missing or unreadable
// image is skipped, never an error.
func (p *PDF) drawImage(doc *fpdf.Fpdf, width, height float64) {
	f, err := os.Open(p.imagePath) //nolint:gosec // G304: configured resource image path
	if err != nil {
		return
	}
	cfg, err := png.DecodeConfig(f)
	_ = f.Close()
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		log.Warn(log.CatExport, "Skipping unreadable image", "path", p.imagePath)
		return
	}

	aspect := float64(cfg.Width) / float64(cfg.Height)
	imgW := min(width*0.6, float64(cfg.Width))
	imgH := imgW / aspect
	if maxH := height * 0.25; imgH > maxH {
		imgH = maxH
		imgW = imgH * aspect
	}

	doc.ImageOptions(p.imagePath, (width-imgW)/2, (height-imgH)/2, imgW, imgH,
		false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// drawFooterLink renders the italic footer with a clickable repository link
// centered near the bottom of the page.
func drawFooterLink(doc *fpdf.Fpdf, width, height float64) {
	const fontSize = 10
	doc.SetFont("Helvetica", "I", fontSize)

	prefix := "This file was generated by "
	totalWidth := doc.GetStringWidth(prefix + repoLinkText)
	x := (width - totalWidth) / 2
	y := height - 60

	doc.SetTextColor(0, 0, 0)
	doc.Text(x, y, prefix)

	linkX := x + doc.GetStringWidth(prefix)
	linkWidth := doc.GetStringWidth(repoLinkText)
	doc.SetTextColor(0, 0, 255)
	doc.Text(linkX, y, repoLinkText)

	doc.SetDrawColor(0, 0, 255)
	doc.SetLineWidth(0.8)
	doc.Line(linkX, y+2, linkX+linkWidth, y+2)
	doc.SetTextColor(0, 0, 0)

	doc.LinkString(linkX, y-fontSize, linkWidth, fontSize+4, repoURL)
}

// sanitizeFilename keeps giver names safe to use as file names.
func sanitizeFilename(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
