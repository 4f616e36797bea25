package document

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const fontFamily = "dejavu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	embeddedRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	embeddedBold []byte
)

// fontSet holds the TrueType faces registered on every PDF.
type fontSet struct {
	regular []byte
	bold    []byte
}

func loadFonts(regularPath, boldPath string) (fontSet, error) {
	fonts := fontSet{regular: embeddedRegular, bold: embeddedBold}

	if path := strings.TrimSpace(regularPath); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fontSet{}, fmt.Errorf("read regular font: %w", err)
		}
		fonts.regular = raw
		fonts.bold = raw
	}
	if path := strings.TrimSpace(boldPath); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fontSet{}, fmt.Errorf("read bold font: %w", err)
		}
		fonts.bold = raw
	}

	// gofpdf swallows TrueType parse errors, so a bad face only surfaces on SetFont.
	pdf := gofpdf.New("L", "mm", "A4", "")
	fonts.register(pdf)
	pdf.SetFont(fontFamily, "", bodyFontSize)
	pdf.SetFont(fontFamily, "B", bodyFontSize)
	if err := pdf.Error(); err != nil {
		return fontSet{}, fmt.Errorf("load fonts: %w", err)
	}
	return fonts, nil
}

func (f fontSet) register(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8FontFromBytes(fontFamily, "", f.regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", f.bold)
}

// sanitize keeps text inside the Basic Multilingual Plane, the range gofpdf's width tables cover.
func sanitize(text string) string {
	for _, r := range text {
		if r > 0xFFFF {
			return strings.Map(func(r rune) rune {
				if r > 0xFFFF {
					return '\uFFFD'
				}
				return r
			}, text)
		}
	}
	return text
}
