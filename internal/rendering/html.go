package rendering

import (
	"html/template"
	"strings"

	"github.com/resumix/resumix/internal/projection"
)

// resumeTemplate is the single-page print layout. Fonts and spacing mirror
// the height model in the optimizer; changing one without the other will
// over- or under-fill the page.
const resumeTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: letter; margin: 0.5in; }
  body {
    font-family: Georgia, "Times New Roman", serif;
    font-size: 10.5pt;
    line-height: 1.25;
    color: #111;
    margin: 0;
  }
  .heading { text-align: center; margin-bottom: 10pt; }
  .heading h1 { font-size: 20pt; margin: 0 0 2pt 0; }
  .contact { font-size: 9.5pt; margin: 0; }
  .section { margin-top: 8pt; }
  .section h2 {
    font-size: 12pt;
    margin: 0 0 2pt 0;
    border-bottom: 1px solid #333;
    text-transform: uppercase;
    letter-spacing: 0.5pt;
  }
  .item { margin-top: 4pt; }
  .titles { display: flex; justify-content: space-between; }
  .titles .left { font-weight: bold; }
  .titles .right { font-style: italic; }
  .compact { margin: 2pt 0 0 0; }
  ul { margin: 1pt 0 0 0; padding-left: 16pt; }
  li { margin-bottom: 1pt; }
</style>
</head>
<body>
  <div class="heading">
    <h1>{{.Heading.Name}}</h1>
    {{range .Heading.ContactLines}}{{if .}}<p class="contact">{{.}}</p>{{end}}{{end}}
  </div>
  {{range .Sections}}
  <div class="section">
    <h2>{{.Title}}</h2>
    {{range .Items}}
    <div class="item">
      {{if .Compact}}<p class="compact">{{.CompactText}}</p>{{else}}{{with .Titles}}
      <div class="titles"><span class="left">{{.Row1.Left.Text}}</span>{{with .Row1.Right}}<span class="right">{{.Text}}</span>{{end}}</div>
      {{with .Row2}}<div class="titles"><span class="left">{{.Left.Text}}</span>{{with .Right}}<span class="right">{{.Text}}</span>{{end}}</div>{{end}}
      {{end}}{{if .Lines}}<ul>{{range .Lines}}<li>{{.Text}}</li>{{end}}</ul>{{end}}{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
</body>
</html>`

var resumeTmpl = template.Must(template.New("resume").Parse(resumeTemplate))

// HTML renders the projected document as a printable HTML page.
func HTML(rendered projection.Rendered) (string, error) {
	var sb strings.Builder
	if err := resumeTmpl.Execute(&sb, rendered); err != nil {
		return "", &TemplateError{Message: "failed to execute resume template", Cause: err}
	}
	return sb.String(), nil
}
