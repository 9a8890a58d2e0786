package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
)

// TagView is a tag as the document prints it.
type TagView struct {
	Nome string
	Cor  string
}

// Coluna describes one printed column. Largura is a fraction of the usable
// page width; the fractions of a view's columns should sum to 1.
type Coluna struct {
	Titulo  string
	Campo   string
	Largura float64
}

// CenaView is one row of the printed roteiro. Linhas of type "divisoria"
// render as a full-width banner carrying NomeDivisao; every other row prints
// its column values plus tag chips.
type CenaView struct {
	TipoLinha    string
	Video        string
	TecTransicao string
	Audio        string
	NomeDivisao  string
	Tags         []TagView
}

// RoteiroView is the fully denormalized input of Render. Callers resolve all
// database lookups before building it; the renderer never touches storage.
type RoteiroView struct {
	Titulo        string
	TipoRoteiro   string
	Ano           int
	Mes           int
	DataDocumento string
	EventoNome    string
	CriadorNome   string
	LogoPath      string
	Colunas       []Coluna
	Cenas         []CenaView
}

const (
	pageMargin    = 30.0
	headerHeight  = 18.0
	lineHeight    = 12.0
	cellPadding   = 4.0
	chipHeight    = 11.0
	chipPadding   = 4.0
	chipGap       = 3.0
	footerReserve = 26.0
	bannerHeight  = 18.0
)

// DefaultColunas is the legacy three column layout used when a roteiro has no
// custom column configuration.
func DefaultColunas() []Coluna {
	return []Coluna{
		{Titulo: "VÍDEO", Campo: "video", Largura: 0.35},
		{Titulo: "TEC/TRANSIÇÃO", Campo: "tec_transicao", Largura: 0.25},
		{Titulo: "ÁUDIO", Campo: "audio", Largura: 0.40},
	}
}

// compressOutput is turned off in tests so the content streams stay
// inspectable as plain text.
var compressOutput = true

// Render produces the roteiro as a finished PDF document.
func Render(view RoteiroView) ([]byte, error) {
	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetCompression(compressOutput)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	colunas := view.Colunas
	if len(colunas) == 0 {
		colunas = DefaultColunas()
	}

	pageW, pageH := doc.GetPageSize()
	usableW := pageW - 2*pageMargin
	bottomLimit := pageH - pageMargin - footerReserve

	legend := legendTags(view.Cenas)

	newPage := func() {
		doc.AddPage()
		drawColumnHeaders(doc, tr, colunas, usableW)
	}

	doc.AddPage()
	drawDocumentHeader(doc, tr, view, usableW)
	drawColumnHeaders(doc, tr, colunas, usableW)

	for _, cena := range view.Cenas {
		if cena.TipoLinha == "divisoria" {
			if doc.GetY()+bannerHeight > bottomLimit {
				newPage()
			}
			drawDividerBanner(doc, tr, cena.NomeDivisao, usableW)
			continue
		}

		h := rowHeight(doc, tr, cena, colunas, usableW)
		if doc.GetY()+h > bottomLimit {
			newPage()
		}
		drawRow(doc, tr, cena, colunas, usableW, h)
	}

	// Footer pass over every page.
	total := doc.PageCount()
	for p := 1; p <= total; p++ {
		doc.SetPage(p)
		drawFooter(doc, tr, legend, usableW, pageH, p, total)
	}

	if doc.Err() {
		return nil, fmt.Errorf("renderizar pdf: %w", doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("renderizar pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawDocumentHeader(doc *fpdf.Fpdf, tr func(string) string, view RoteiroView, usableW float64) {
	if view.LogoPath != "" {
		doc.ImageOptions(view.LogoPath, pageMargin, pageMargin, 0, 28, false,
			fpdf.ImageOptions{AllowNegativePosition: false}, 0, "")
		doc.SetY(pageMargin)
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(usableW, 20, tr(view.Titulo), "", 1, "C", false, 0, "")

	meta := metadataLine(view)
	if meta != "" {
		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(90, 90, 90)
		doc.CellFormat(usableW, 12, tr(meta), "", 1, "C", false, 0, "")
	}
	doc.Ln(6)
}

func metadataLine(view RoteiroView) string {
	parts := []string{}
	if view.TipoRoteiro != "" {
		parts = append(parts, view.TipoRoteiro)
	}
	if view.Ano != 0 && view.Mes != 0 {
		parts = append(parts, fmt.Sprintf("%02d/%d", view.Mes, view.Ano))
	}
	if view.DataDocumento != "" {
		parts = append(parts, view.DataDocumento)
	}
	if view.EventoNome != "" {
		parts = append(parts, "Gravação: "+view.EventoNome)
	}
	if view.CriadorNome != "" {
		parts = append(parts, "Por: "+view.CriadorNome)
	}
	return strings.Join(parts, "  |  ")
}

func drawColumnHeaders(doc *fpdf.Fpdf, tr func(string) string, colunas []Coluna, usableW float64) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(230, 230, 230)
	doc.SetTextColor(0, 0, 0)
	doc.SetDrawColor(180, 180, 180)
	doc.SetX(pageMargin)
	for _, col := range colunas {
		doc.CellFormat(col.Largura*usableW, headerHeight, tr(col.Titulo), "1", 0, "C", true, 0, "")
	}
	doc.Ln(headerHeight)
}

func drawDividerBanner(doc *fpdf.Fpdf, tr func(string) string, nome string, usableW float64) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(242, 242, 242)
	doc.SetTextColor(0, 0, 0)
	doc.SetDrawColor(180, 180, 180)
	doc.SetX(pageMargin)
	doc.CellFormat(usableW, bannerHeight, tr(nome), "1", 1, "C", true, 0, "")
}

func cellText(cena CenaView, campo string) string {
	switch campo {
	case "video":
		return cena.Video
	case "tec_transicao":
		return cena.TecTransicao
	case "audio":
		return cena.Audio
	}
	return ""
}

// rowHeight measures the row before drawing so page breaks never split a row.
func rowHeight(doc *fpdf.Fpdf, tr func(string) string, cena CenaView, colunas []Coluna, usableW float64) float64 {
	doc.SetFont("Helvetica", "", 9)
	maxLines := 1
	for _, col := range colunas {
		txt := tr(cellText(cena, col.Campo))
		lines := doc.SplitText(txt, col.Largura*usableW-2*cellPadding)
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	h := float64(maxLines)*lineHeight + 2*cellPadding
	if len(cena.Tags) > 0 {
		h += chipHeight + chipGap
	}
	return h
}

func drawRow(doc *fpdf.Fpdf, tr func(string) string, cena CenaView, colunas []Coluna, usableW, h float64) {
	top := doc.GetY()
	x := pageMargin

	doc.SetDrawColor(180, 180, 180)
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)

	for _, col := range colunas {
		w := col.Largura * usableW
		doc.Rect(x, top, w, h, "D")
		doc.SetXY(x+cellPadding, top+cellPadding)
		doc.MultiCell(w-2*cellPadding, lineHeight, tr(cellText(cena, col.Campo)), "", "L", false)
		x += w
	}

	if len(cena.Tags) > 0 {
		drawChips(doc, tr, cena.Tags, pageMargin+cellPadding, top+h-chipHeight-chipGap, usableW-2*cellPadding)
	}

	doc.SetXY(pageMargin, top+h)
}

// drawChips lays tag chips left to right; chips that would overflow maxW are
// dropped rather than wrapped.
func drawChips(doc *fpdf.Fpdf, tr func(string) string, tagsList []TagView, x, y, maxW float64) {
	doc.SetFont("Helvetica", "B", 7)
	limit := x + maxW
	for _, tag := range tagsList {
		label := tr(tag.Nome)
		w := doc.GetStringWidth(label) + 2*chipPadding
		if x+w > limit {
			break
		}
		cr, cg, cb, ok := parseHexColor(tag.Cor)
		if !ok {
			cr, cg, cb = 204, 204, 204
		}
		trR, trG, trB := ContrastYIQ(tag.Cor)
		doc.SetFillColor(cr, cg, cb)
		doc.SetTextColor(trR, trG, trB)
		doc.RoundedRect(x, y, w, chipHeight, 3, "1234", "F")
		doc.SetXY(x, y)
		doc.CellFormat(w, chipHeight, label, "", 0, "C", false, 0, "")
		x += w + chipGap
	}
	doc.SetTextColor(0, 0, 0)
}

// legendTags collects the distinct tags used across the document, sorted by
// name.
func legendTags(cenas []CenaView) []TagView {
	seen := map[string]TagView{}
	for _, cena := range cenas {
		for _, tag := range cena.Tags {
			if _, ok := seen[tag.Nome]; !ok {
				seen[tag.Nome] = tag
			}
		}
	}
	out := make([]TagView, 0, len(seen))
	for _, tag := range seen {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out
}

func drawFooter(doc *fpdf.Fpdf, tr func(string) string, legend []TagView, usableW, pageH float64, page, total int) {
	y := pageH - pageMargin - chipHeight

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(90, 90, 90)
	pageLabel := fmt.Sprintf("Página %d de %d", page, total)
	labelW := doc.GetStringWidth(tr(pageLabel)) + 2
	doc.SetXY(pageMargin+usableW-labelW, y)
	doc.CellFormat(labelW, chipHeight, tr(pageLabel), "", 0, "R", false, 0, "")

	// Legend truncates when the chips would collide with the page number.
	drawChips(doc, tr, legend, pageMargin, y, usableW-labelW-10)
}
