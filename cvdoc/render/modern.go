package render

import (
	"bytes"
	"fmt"
	"html/template"

	"businessconnect-backend/cvdoc/model"
)

// ModernTemplate is the single-column layout with a colored header band.
type ModernTemplate struct {
	tpl *template.Template
}

// NewModernTemplate parses the modern layout.
func NewModernTemplate() *ModernTemplate {
	return &ModernTemplate{tpl: template.Must(template.New("modern").Funcs(templateFuncs).Parse(modernHTML))}
}

// ID implements Renderer.
func (t *ModernTemplate) ID() string { return "modern" }

// Render implements Renderer.
func (t *ModernTemplate) Render(cv model.CV, opts model.Customization, miniature bool) (Surface, error) {
	var buf bytes.Buffer
	v := newView(cv, opts, miniature)
	if err := t.tpl.Execute(&buf, v); err != nil {
		return Surface{}, fmt.Errorf("render modern template: %w", err)
	}
	return Surface{TemplateID: t.ID(), HTML: buf.String(), PageWidthPx: PageWidthPx}, nil
}

const modernHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: {{.C.FontFamily}}; font-size: {{.C.FontSize}}px; line-height: {{.C.Spacing | spacing}}; color: #111827; }
#surface { width: {{.PageWidth}}px; background: #fff;{{if .Miniature}} transform: scale(0.25); transform-origin: top left;{{end}} }
.header { background: {{.C.PrimaryColor}}; color: #fff; padding: 32px 40px; display: flex; align-items: center; gap: 24px; }
.photo { width: 96px; height: 96px; border-radius: 50%; object-fit: cover; }
.name { font-size: 1.8em; font-weight: 700; }
.headline { opacity: 0.9; margin-top: 4px; }
.contact { padding: 10px 40px; background: #f3f4f6; color: {{.C.SecondaryColor}}; font-size: 0.9em; }
.contact span + span::before { content: " | "; }
.body { padding: 24px 40px; }
h2 { color: {{.C.PrimaryColor}}; font-size: 1.05em; text-transform: uppercase; letter-spacing: 0.05em; margin: 18px 0 8px; }
.block { margin-bottom: 13px; break-inside: avoid; page-break-inside: avoid; }
.block .role { font-weight: 700; }
.block .meta { color: {{.C.SecondaryColor}}; font-size: 0.9em; margin: 2px 0 4px; }
.block ul { margin: 4px 0 0 18px; }
.cols { display: flex; gap: 40px; }
.cols > div { flex: 1; }
.pill { display: inline-block; background: #eef2ff; color: {{.C.PrimaryColor}}; border-radius: 10px; padding: 2px 10px; margin: 2px 4px 2px 0; font-size: 0.85em; }
.lang { display: flex; justify-content: space-between; margin: 3px 0; }
</style>
</head>
<body>
<div id="surface">
  <header class="header">
    {{if .CV.PersonalInfo.Photo}}<img class="photo" src="{{.CV.PersonalInfo.Photo}}" alt="">{{end}}
    <div>
      {{if fullName .CV.PersonalInfo}}<div class="name">{{fullName .CV.PersonalInfo}}</div>{{end}}
      {{if .CV.PersonalInfo.Title}}<div class="headline">{{.CV.PersonalInfo.Title}}</div>{{end}}
    </div>
  </header>
  {{if or .CV.PersonalInfo.Email .CV.PersonalInfo.Phone (cityLine .CV.PersonalInfo)}}
  <div class="contact">
    {{if .CV.PersonalInfo.Email}}<span>{{.CV.PersonalInfo.Email}}</span>{{end}}
    {{if .CV.PersonalInfo.Phone}}<span>{{.CV.PersonalInfo.Phone}}</span>{{end}}
    {{with cityLine .CV.PersonalInfo}}<span>{{.}}</span>{{end}}
    {{if .CV.PersonalInfo.LinkedIn}}<span>{{.CV.PersonalInfo.LinkedIn}}</span>{{end}}
  </div>
  {{end}}
  <div class="body">
    {{if .CV.PersonalInfo.Summary}}
    <h2>Profil</h2>
    <p>{{.CV.PersonalInfo.Summary}}</p>
    {{end}}
    {{if .CV.Experience}}
    <h2>Expérience professionnelle</h2>
    {{range .CV.Experience}}
    <div class="block">
      <div class="role">{{.Title}}{{if .Company}} — {{.Company}}{{end}}</div>
      <div class="meta">{{dateRange .StartDate .DisplayEndDate}}{{if .Location}} · {{.Location}}{{end}}</div>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
      {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
    </div>
    {{end}}
    {{end}}
    {{if .CV.Education}}
    <h2>Formation</h2>
    {{range .CV.Education}}
    <div class="block">
      <div class="role">{{.Degree}}{{if .Field}} — {{.Field}}{{end}}</div>
      <div class="meta">{{.Institution}}{{with dateRange .StartDate .EndDate}} · {{.}}{{end}}</div>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>
    {{end}}
    {{end}}
    <div class="cols">
      {{if .CV.Skills}}
      <div>
        <h2>Compétences</h2>
        {{range .CV.Skills}}<span class="pill">{{.Name}}</span>{{end}}
      </div>
      {{end}}
      {{if .CV.Languages}}
      <div>
        <h2>Langues</h2>
        {{range .CV.Languages}}<div class="lang"><span>{{.Name}}</span><span>{{.Level}}</span></div>{{end}}
      </div>
      {{end}}
    </div>
    {{if .CV.Certifications}}
    <h2>Certifications</h2>
    {{range .CV.Certifications}}
    <div class="block">
      <div class="role">{{.Name}}</div>
      <div class="meta">{{.Issuer}}{{if .Date}} · {{.Date}}{{end}}</div>
    </div>
    {{end}}
    {{end}}
    {{if .CV.Projects}}
    <h2>Projets</h2>
    {{range .CV.Projects}}
    <div class="block">
      <div class="role">{{.Name}}</div>
      {{if .URL}}<div class="meta">{{.URL}}</div>{{end}}
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>
    {{end}}
    {{end}}
    {{if .CV.Interests}}
    <h2>Centres d'intérêt</h2>
    <div>{{range .CV.Interests}}<span class="pill">{{.Name}}</span>{{end}}</div>
    {{end}}
  </div>
</div>
</body>
</html>`
