package annex

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os/exec"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

//go:embed templates/annex.html
var templateFS embed.FS

var annexTemplate = template.Must(template.ParseFS(templateFS, "templates/annex.html"))

func renderHTML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := annexTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("execute annex template: %w", err)
	}
	return buf.Bytes(), nil
}

// renderWkhtmltopdf pipes the HTML through the external binary.
func renderWkhtmltopdf(ctx context.Context, binary string, html []byte) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "--quiet", "--encoding", "utf-8", "-", "-")
	cmd.Stdin = bytes.NewReader(html)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("wkhtmltopdf: empty output")
	}
	return stdout.Bytes(), nil
}

const (
	pageTop     = 800
	pageLeft    = 50
	lineLeading = 16
)

// renderBuiltinPDF writes a single A4 page with one Helvetica text line per
// entry.
func renderBuiltinPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Anexo"}
	}

	winAnsi := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())

	var content bytes.Buffer
	fmt.Fprintf(&content, "BT\n/F1 11 Tf\n%d TL\n%d %d Td\n", lineLeading, pageLeft, pageTop)
	for i, line := range lines {
		encoded, err := winAnsi.String(line)
		if err != nil {
			return nil, fmt.Errorf("encode annex line %d: %w", i, err)
		}
		if i > 0 {
			content.WriteString("T* ")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", pdfEscape(encoded))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart)

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
