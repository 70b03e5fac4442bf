package render

import (
	"bytes"
	"fmt"
	"html/template"

	"businessconnect-backend/cvdoc/model"
)

// WindowTemplate is the two-column layout: a colored sidebar with
// contact, skills and languages, and a main column with experience and
// education.
type WindowTemplate struct {
	tpl *template.Template
}

// NewWindowTemplate parses the window layout.
func NewWindowTemplate() *WindowTemplate {
	return &WindowTemplate{tpl: template.Must(template.New("window").Funcs(templateFuncs).Parse(windowHTML))}
}

// ID implements Renderer.
func (t *WindowTemplate) ID() string { return "window" }

// Render implements Renderer.
func (t *WindowTemplate) Render(cv model.CV, opts model.Customization, miniature bool) (Surface, error) {
	var buf bytes.Buffer
	v := newView(cv, opts, miniature)
	if err := t.tpl.Execute(&buf, v); err != nil {
		return Surface{}, fmt.Errorf("render window template: %w", err)
	}
	return Surface{TemplateID: t.ID(), HTML: buf.String(), PageWidthPx: PageWidthPx}, nil
}

const windowHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: {{.C.FontFamily}}; font-size: {{.C.FontSize}}px; line-height: {{.C.Spacing | spacing}}; color: #1f2937; }
#surface { width: {{.PageWidth}}px; display: flex; background: #fff;{{if .Miniature}} transform: scale(0.25); transform-origin: top left;{{end}} }
.sidebar { width: 260px; min-height: 100%; background: {{.C.PrimaryColor}}; color: #fff; padding: 28px 20px; }
.main { flex: 1; padding: 28px 26px; }
.photo { width: 120px; height: 120px; border-radius: 50%; object-fit: cover; margin: 0 auto 16px; display: block; }
.name { font-size: 1.6em; font-weight: 700; }
.headline { color: {{.C.SecondaryColor}}; margin: 4px 0 14px; }
.sidebar h2 { font-size: 0.85em; text-transform: uppercase; letter-spacing: 0.08em; margin: 18px 0 8px; border-bottom: 1px solid rgba(255,255,255,0.4); padding-bottom: 4px; }
.main h2 { font-size: 1.05em; text-transform: uppercase; letter-spacing: 0.05em; color: {{.C.PrimaryColor}}; margin: 20px 0 10px; border-bottom: 2px solid {{.C.PrimaryColor}}; padding-bottom: 4px; }
.contact div { margin: 4px 0; word-break: break-word; }
.block { margin-bottom: 14px; break-inside: avoid; page-break-inside: avoid; }
.block .role { font-weight: 700; }
.block .meta { color: {{.C.SecondaryColor}}; font-size: 0.9em; margin: 2px 0 4px; }
.block ul { margin: 4px 0 0 18px; }
.skill { margin: 5px 0; }
.skill .bar { height: 5px; background: rgba(255,255,255,0.3); border-radius: 3px; margin-top: 3px; }
.skill .fill { height: 5px; background: #fff; border-radius: 3px; }
.lang { display: flex; justify-content: space-between; margin: 4px 0; }
.summary { margin-bottom: 6px; }
.interests span { display: inline-block; background: rgba(255,255,255,0.2); border-radius: 10px; padding: 2px 10px; margin: 2px 2px 2px 0; font-size: 0.85em; }
</style>
</head>
<body>
<div id="surface">
  <aside class="sidebar">
    {{if .CV.PersonalInfo.Photo}}<img class="photo" src="{{.CV.PersonalInfo.Photo}}" alt="">{{end}}
    {{if or .CV.PersonalInfo.Email .CV.PersonalInfo.Phone (cityLine .CV.PersonalInfo) .CV.PersonalInfo.LinkedIn .CV.PersonalInfo.GitHub .CV.PersonalInfo.Website}}
    <h2>Contact</h2>
    <div class="contact">
      {{if .CV.PersonalInfo.Email}}<div>{{.CV.PersonalInfo.Email}}</div>{{end}}
      {{if .CV.PersonalInfo.Phone}}<div>{{.CV.PersonalInfo.Phone}}</div>{{end}}
      {{with cityLine .CV.PersonalInfo}}<div>{{.}}</div>{{end}}
      {{if .CV.PersonalInfo.LinkedIn}}<div>{{.CV.PersonalInfo.LinkedIn}}</div>{{end}}
      {{if .CV.PersonalInfo.GitHub}}<div>{{.CV.PersonalInfo.GitHub}}</div>{{end}}
      {{if .CV.PersonalInfo.Website}}<div>{{.CV.PersonalInfo.Website}}</div>{{end}}
    </div>
    {{end}}
    {{if .CV.Skills}}
    <h2>Compétences</h2>
    {{range .CV.Skills}}
    <div class="skill">
      <div>{{.Name}}</div>
      <div class="bar"><div class="fill" style="width: {{levelPercent .}}%"></div></div>
    </div>
    {{end}}
    {{end}}
    {{if .CV.Languages}}
    <h2>Langues</h2>
    {{range .CV.Languages}}<div class="lang"><span>{{.Name}}</span><span>{{.Level}}</span></div>{{end}}
    {{end}}
    {{if .CV.Interests}}
    <h2>Centres d'intérêt</h2>
    <div class="interests">{{range .CV.Interests}}<span>{{.Name}}</span>{{end}}</div>
    {{end}}
  </aside>
  <main class="main">
    {{if fullName .CV.PersonalInfo}}<div class="name">{{fullName .CV.PersonalInfo}}</div>{{end}}
    {{if .CV.PersonalInfo.Title}}<div class="headline">{{.CV.PersonalInfo.Title}}</div>{{end}}
    {{if .CV.PersonalInfo.Summary}}
    <h2>Profil</h2>
    <p class="summary">{{.CV.PersonalInfo.Summary}}</p>
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
    {{if .CV.Certifications}}
    <h2>Certifications</h2>
    {{range .CV.Certifications}}
    <div class="block">
      <div class="role">{{.Name}}</div>
      <div class="meta">{{.Issuer}}{{if .Date}} · {{.Date}}{{end}}</div>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
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
  </main>
</div>
</body>
</html>`
