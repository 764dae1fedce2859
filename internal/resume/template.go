package resume

// resumeTemplateHTML 是简历渲染的 Go HTML 模板。
// 输出必须完全自包含（无外部资源），宽度固定为 816px
// （8.5in @ 96dpi），保证后续栅格化与客户端预览缩放结果一致。
const resumeTemplateHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>{{if .Name}}{{.Name}}{{else}}Resume{{end}}</title>
<style>
* { box-sizing: border-box; }
html, body { margin: 0; padding: 0; }
body {
  font-family: {{.Style.FontFamily}};
  color: #111827;
  font-size: {{.Style.BodyPx}}px;
}
.page { width: 816px; min-height: 1056px; padding: 40px 48px; background: #fff; }
.header { border-bottom: 2px solid {{.Style.Accent}}; padding-bottom: 8px; margin-bottom: 16px; }
.name { font-size: {{.Style.NamePx}}px; font-weight: 800; color: {{.Style.Accent}}; }
.contact { display: flex; flex-wrap: wrap; gap: 10px; font-size: 12px; color: #4B5563; margin-top: 6px; }
h2 { font-size: {{.Style.HeadingPx}}px; color: {{.Style.Accent}}; margin: 18px 0 10px; }
.section { margin-bottom: 14px; }
.row { display: flex; justify-content: space-between; gap: 8px; }
.muted { color: #6B7280; }
.small { font-size: 12px; }
.xs { font-size: 11px; }
.list { padding-left: 14px; margin: 0; }
.list li { margin: 3px 0; }
</style>
</head>
<body>
<div class="page">
  <div class="header">
    <div class="name">{{.Name}}</div>
    <div class="contact">
      {{- range .Contacts}}
      <span>{{.}}</span>
      {{- end}}
    </div>
  </div>
{{- if .Education}}
  <h2>Education</h2>
  {{- range .Education}}
  <div class="section">
    <div class="row"><strong>{{.Heading}}</strong><span class="small muted">{{.Range}}</span></div>
    <div class="small">{{.Institute}}</div>
    <div class="xs muted">CGPA: {{.Score}}</div>
  </div>
  {{- end}}
{{- end}}
{{- if .Positions}}
  <h2>Positions of Responsibility</h2>
  {{- range .Positions}}
  <div class="section">
    <div class="row"><strong>{{.Title}}</strong><span class="small muted">{{.Range}}</span></div>
    <div class="small">{{.Organization}}</div>
    {{- if .Description}}
    <div class="xs muted">{{.Description}}</div>
    {{- end}}
  </div>
  {{- end}}
{{- end}}
{{- if .Projects}}
  <h2>Projects</h2>
  {{- range .Projects}}
  <div class="section">
    <div class="row"><strong>{{.Title}}</strong><span class="small muted">{{.Range}}</span></div>
    {{- if .Description}}
    <div class="xs muted">{{.Description}}</div>
    {{- end}}
    {{- if .Tech}}
    <div class="xs">Tech: {{.Tech}}</div>
    {{- end}}
  </div>
  {{- end}}
{{- end}}
{{- if .Skills}}
  <h2>Skills</h2>
  {{- range .Skills}}
  <div class="section">
    <div class="small"><strong>{{.Category}}:</strong> {{.Names}}</div>
  </div>
  {{- end}}
{{- end}}
{{- if .Achievements}}
  <h2>Achievements</h2>
  <ul class="list small">
    {{- range .Achievements}}
    <li>{{.Title}}{{if .Date}} <span class="muted">({{.Date}})</span>{{end}}</li>
    {{- end}}
  </ul>
{{- end}}
{{- if .Certifications}}
  <h2>Certifications</h2>
  {{- range .Certifications}}
  <div class="section">
    <div class="small"><strong>{{.Title}}</strong></div>
    <div class="xs muted">{{.Issuer}}{{if .Date}} &middot; {{.Date}}{{end}}</div>
  </div>
  {{- end}}
{{- end}}
{{- if .Courses}}
  <h2>Courses</h2>
  {{- range .Courses}}
  <div class="section small">
    <div class="row"><strong>{{.Title}}</strong><span class="muted">{{.Provider}}{{if .Date}} &middot; {{.Date}}{{end}}</span></div>
  </div>
  {{- end}}
{{- end}}
</div>
</body>
</html>
`
