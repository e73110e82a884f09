package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// indentPaddingPixels is the left padding added per tree level.
const indentPaddingPixels = 20

var safeColorPattern = regexp.MustCompile(`^[#\w(),.%\s-]+$`)

var documentTemplate = template.Must(template.New("estimate").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
      body {
        font-family: Arial, sans-serif;
      }
      .estimation-table {
        width: 100%;
        border-collapse: collapse;
      }
      .note {
        vertical-align: top;
        font-size: 14px;
        color: grey;
        line-height: 14px;
        font-weight: normal;
      }
      .tag {
        display: inline-block;
        padding: 0 6px;
        margin-right: 4px;
        border-radius: 8px;
        font-size: 12px;
        font-weight: normal;
        color: #fff;
      }
      .estimate {
        text-align: right;
        padding-left: 20px;
        white-space: nowrap;
      }
    </style>
  </head>
  <body>
    <table class="estimation-table" border="0" cellspacing="0" cellpadding="0">
{{.Rows}}
    </table>
  </body>
</html>
`))

// HTMLRenderer produces a self-contained HTML document with one numbered
// table row per node. Labels are inline markdown; raw HTML in labels passes
// through unchanged.
type HTMLRenderer struct {
	Format domain.NumberFormat
	Lang   string
	Title  string

	md goldmark.Markdown
}

// NewHTMLRenderer creates an HTMLRenderer displaying durations with format.
func NewHTMLRenderer(format domain.NumberFormat, lang string) *HTMLRenderer {
	return &HTMLRenderer{
		Format: format,
		Lang:   domain.CoalesceStr(lang, "de"),
		Title:  "Estimation",
		md: goldmark.New(
			goldmark.WithParser(newLabelParser()),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Render builds the document for every top-level item under tree.
func (r *HTMLRenderer) Render(tree *domain.Node) (string, error) {
	var rows strings.Builder
	for i, child := range tree.Children {
		if err := r.writeRow(&rows, child, 0, strconv.Itoa(i+1)+"."); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, struct {
		Lang  string
		Title string
		Rows  template.HTML
	}{
		Lang:  r.Lang,
		Title: r.Title,
		Rows:  template.HTML(rows.String()),
	})
	if err != nil {
		return "", fmt.Errorf("executing html template: %w", err)
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) writeRow(b *strings.Builder, n *domain.Node, depth int, number string) error {
	label, err := r.renderLabel(n.Label)
	if err != nil {
		return err
	}

	rowStyles := []string{"line-height: 1.5em;", "vertical-align: top;", fontSizeFor(depth)}
	if !n.IsLeaf() {
		rowStyles = append(rowStyles, "font-weight: bold;")
	}

	fmt.Fprintf(b, "      <tr style=\"%s\">\n", strings.Join(rowStyles, " "))
	fmt.Fprintf(b, "        <td style=\"padding-left: %dpx;\">\n", depth*indentPaddingPixels)
	b.WriteString("          <table cellspacing=\"0\" cellpadding=\"0\" border=\"0\">\n")
	b.WriteString("            <tr style=\"vertical-align: top;\">\n")
	fmt.Fprintf(b, "              <td style=\"padding: 4px 0px;\">%s</td>\n", number)
	fmt.Fprintf(b, "              <td style=\"padding: 4px 0px 4px 5px;\">%s%s</td>\n", renderTags(n.Tags), label)
	b.WriteString("            </tr>\n")
	if n.Note != "" {
		b.WriteString("            <tr class=\"note\">\n")
		b.WriteString("              <td></td>\n")
		fmt.Fprintf(b, "              <td>%s</td>\n", renderNote(n.Note))
		b.WriteString("            </tr>\n")
	}
	b.WriteString("          </table>\n")
	b.WriteString("        </td>\n")
	fmt.Fprintf(b, "        <td class=\"estimate\">%s</td>\n", template.HTMLEscapeString(r.Format.FormatDuration(n.Duration)))
	b.WriteString("      </tr>\n")

	for i, child := range n.Children {
		if err := r.writeRow(b, child, depth+1, number+strconv.Itoa(i+1)+"."); err != nil {
			return err
		}
	}
	return nil
}

// renderLabel converts a label from inline markdown, dropping the paragraph
// wrapper goldmark adds around plain text.
func (r *HTMLRenderer) renderLabel(label string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(label), &buf); err != nil {
		return "", fmt.Errorf("rendering label %q: %w", label, err)
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}

// newLabelParser only knows paragraphs, so labels such as "1. Setup" or
// "# Phase two" keep their text instead of becoming lists or headings.
// Inline markdown and raw HTML still apply.
func newLabelParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

func fontSizeFor(depth int) string {
	switch depth {
	case 0:
		return "font-size: 24px;"
	case 1:
		return "font-size: 20px;"
	default:
		return "font-size: 18px;"
	}
}

// renderNote escapes note text while keeping segment breaks.
func renderNote(note string) string {
	parts := strings.Split(note, domain.NoteBreak)
	for i, p := range parts {
		parts[i] = template.HTMLEscapeString(strings.TrimSpace(p))
	}
	return strings.Join(parts, "<br>")
}

func renderTags(tags []domain.Tag) string {
	var b strings.Builder
	for _, tag := range tags {
		color := strings.TrimSpace(tag.Color)
		if !safeColorPattern.MatchString(color) {
			color = "grey"
		}
		fmt.Fprintf(&b, "<span class=\"tag\" style=\"background-color: %s;\">%s</span>",
			color, template.HTMLEscapeString(tag.Text))
	}
	return b.String()
}
