package report

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 12
	titleSize = 16
	headSize  = 14
)

var (
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet    = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reHeadingMD = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
)

// WriteDocx writes the sections as a Word document at path, with the
// episode name as title.
func WriteDocx(title string, s Sections, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)

	for _, sec := range s.ordered() {
		addRun(doc.AddParagraph(""), sec.heading, true, headSize)
		for _, line := range strings.Split(sec.text, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if m := reHeadingMD.FindStringSubmatch(trimmed); m != nil {
				addRun(doc.AddParagraph(""), m[1], true, fontSize)
				continue
			}
			if m := reBullet.FindStringSubmatch(trimmed); m != nil {
				trimmed = "• " + m[1]
			}
			addRichText(doc.AddParagraph(""), trimmed)
		}
	}

	return doc.SaveTo(path)
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans (speaker names, emphasised entities) bold.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			addRun(p, part, false, fontSize)
		}
		if i < len(matches) {
			addRun(p, matches[i][1], true, fontSize)
		}
	}
}

func stripInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
