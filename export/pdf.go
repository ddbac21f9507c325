package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/avencia/chatframe/chat"
)

// Page geometry. US Letter width, variable height, one continuous page.
const (
	pageWidthPt  = 612.0
	pageMarginPt = 54.0
	contentPtPer = 6.0  // Courier 10pt advance width
	lineHeightPt = 12.0 // 10pt type on 12pt leading
	captionGapPt = 4.0
	blockGapPt   = 14.0

	// PDF user space caps a page dimension at 14400pt (200in). A transcript
	// that lays out taller than that cannot be printed as a single page.
	maxPageHeightPt = 14400.0
)

// contentColumns is how many monospace cells fit between the margins.
const contentColumns = int((pageWidthPt - 2*pageMarginPt) / contentPtPer)

// PDFExporter renders the visible transcript as a print-ready, single-page
// PDF. Unlike JSON and text export it applies the configured visibility
// policy, so the printed page matches what the live view shows. Content is
// never truncated, regardless of any on-screen collapse state.
type PDFExporter struct {
	options *Options
}

// NewPDFExporter creates a PDF exporter using the policy in opts.
func NewPDFExporter(opts *Options) *PDFExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &PDFExporter{options: opts}
}

// block is one laid-out entity: wrapped content lines plus a caption.
type block struct {
	lines   []string
	caption string
}

func (b block) height() float64 {
	return float64(len(b.lines))*lineHeightPt + captionGapPt + lineHeightPt
}

// Export lays out each visible entity as a content-plus-caption block and
// writes the page. Entities that fail to lay out are skipped rather than
// aborting the export; a page that cannot be sized at all produces an error
// and no partial output.
func (e *PDFExporter) Export(c *chat.Chat) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("chat is nil")
	}

	layout := e.options.dateFormat()
	var blocks []block
	for _, line := range chat.DeriveView(c, e.options.Policy) {
		ent := line.Entity
		b, err := layoutBlock(ent, layout)
		if err != nil {
			// Skip the unrenderable entity, keep the rest of the page.
			continue
		}
		blocks = append(blocks, b)
	}

	height := 2 * pageMarginPt
	for _, b := range blocks {
		height += b.height() + blockGapPt
	}
	if height > maxPageHeightPt {
		return nil, fmt.Errorf("page height %.0fpt exceeds the %.0fpt single-page limit", height, maxPageHeightPt)
	}

	return writePDF(blocks, height), nil
}

// FileExtension returns ".pdf".
func (e *PDFExporter) FileExtension() string { return ".pdf" }

// MimeType returns "application/pdf".
func (e *PDFExporter) MimeType() string { return "application/pdf" }

// layoutBlock wraps an entity's content to the page columns and builds its
// caption. An entity whose content sanitizes down to nothing printable (and
// was not empty to begin with) has no measurable height and is reported as a
// layout failure.
func layoutBlock(ent chat.Entity, dateLayout string) (block, error) {
	lines := wrapContent(ent.Content)
	if len(lines) == 0 {
		return block{}, fmt.Errorf("entity %s: no printable content to measure", ent.ID)
	}
	caption := fmt.Sprintf("%s (%s)", ent.Role.DisplayName(), ent.Timestamp.Format(dateLayout))
	return block{lines: lines, caption: caption}, nil
}

// wrapContent splits content on newlines and wraps each paragraph to the
// page's monospace columns, measuring cells with runewidth so wide glyphs
// count double. An empty content string still occupies one blank line; a
// non-empty string of pure control characters yields nothing.
func wrapContent(content string) []string {
	if content == "" {
		return []string{""}
	}

	var lines []string
	for _, paragraph := range strings.Split(content, "\n") {
		paragraph = sanitizeLine(paragraph)
		if paragraph == "" {
			if len(lines) > 0 || strings.TrimSpace(content) == "" {
				lines = append(lines, "")
			}
			continue
		}
		lines = append(lines, wrapLine(paragraph, contentColumns)...)
	}
	return lines
}

// wrapLine breaks one sanitized paragraph into rows of at most cols cells,
// preferring space boundaries and hard-splitting unbreakable runs.
func wrapLine(line string, cols int) []string {
	var rows []string
	current := ""
	width := 0

	flush := func() {
		rows = append(rows, current)
		current = ""
		width = 0
	}

	for _, word := range strings.Split(line, " ") {
		w := runewidth.StringWidth(word)
		switch {
		case width == 0 && w <= cols:
			current, width = word, w
		case width+1+w <= cols:
			current += " " + word
			width += 1 + w
		case w <= cols:
			flush()
			current, width = word, w
		default:
			// Unbreakable run longer than the page: hard-split by cells.
			if width > 0 {
				flush()
			}
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if width+rw > cols {
					flush()
				}
				current += string(r)
				width += rw
			}
		}
	}
	if current != "" || len(rows) == 0 {
		rows = append(rows, current)
	}
	return rows
}

// sanitizeLine drops control characters and expands tabs so every remaining
// rune has a measurable cell width.
func sanitizeLine(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteString("    ")
		case r < 0x20 || r == 0x7f:
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// PDF WRITER
// =============================================================================

// writePDF emits a minimal PDF 1.4 document: one page of the computed height,
// Courier for content, Helvetica-Oblique for captions.
func writePDF(blocks []block, height float64) []byte {
	content := buildContentStream(blocks, height)

	var buf bytes.Buffer
	offsets := make([]int, 0, 6)
	buf.WriteString("%PDF-1.4\n")

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	obj(fmt.Sprintf(
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f %.0f] /Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>",
		pageWidthPt, height))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>")
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Oblique >>")
	obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefStart)

	return buf.Bytes()
}

// buildContentStream stacks the blocks top to bottom.
func buildContentStream(blocks []block, height float64) string {
	var b strings.Builder
	y := height - pageMarginPt

	for _, blk := range blocks {
		y -= lineHeightPt
		b.WriteString("BT /F1 10 Tf 12 TL\n")
		fmt.Fprintf(&b, "%.1f %.1f Td\n", pageMarginPt, y)
		for i, line := range blk.lines {
			if i > 0 {
				b.WriteString("T*\n")
				y -= lineHeightPt
			}
			fmt.Fprintf(&b, "(%s) Tj\n", escapePDFText(line))
		}
		b.WriteString("ET\n")

		y -= captionGapPt + lineHeightPt
		b.WriteString("BT /F2 8 Tf\n")
		fmt.Fprintf(&b, "%.1f %.1f Td\n", pageMarginPt, y+lineHeightPt-8)
		fmt.Fprintf(&b, "(%s) Tj\nET\n", escapePDFText(blk.caption))

		y -= blockGapPt
	}

	return b.String()
}

// escapePDFText escapes PDF string delimiters and folds non-Latin-1 runes to
// '?'. Runes in 0x80-0xFF are emitted as single Latin-1 bytes; the built-in
// Type1 fonts address the string one byte at a time, so UTF-8 multibyte
// sequences would render as mojibake.
func escapePDFText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			b.WriteByte('\\')
			b.WriteByte(byte(r))
		case r < 256:
			b.WriteByte(byte(r))
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
