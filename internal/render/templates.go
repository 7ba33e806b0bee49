package render

// viewTemplates holds the markup of every view. All values taken from
// content documents go through html/template's contextual escaping; class
// names and data-* hooks come from fixed vocabularies.
const viewTemplates = `
{{define "header"}}<h2 class="page-title">{{.Title}}</h2>
<p class="page-description">{{.Description}}</p>{{end}}

{{define "table"}}<table class="section-table">
{{- if .Columns}}<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>{{end -}}
<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody></table>{{end}}

{{define "sections"}}
{{- if .HasSections}}{{range .Sections}}<div class="section">
<h4 class="section-title">{{.Title}}</h4>
{{content .Content}}
{{- with .Note}}<p class="section-note">{{.}}</p>{{end}}
{{- with .Table}}{{template "table" .}}{{end}}
</div>
{{end}}{{else}}{{content .Content}}{{end -}}
{{end}}

{{define "home"}}{{template "header" .Header}}
<section class="card section-stack">
<h3 class="section-title">カテゴリショートカット</h3>
<div class="inline-links">
{{- range .Shortcuts}}<a href="{{.Href}}">{{.Title}}{{with .Note}} ({{.}}){{end}}</a>{{end -}}
</div>
</section>
<section>
<h3 class="section-title">便利リンク</h3>
<div class="card-grid">
{{range .Links}}<article class="card link-card">
<h3>{{.Title}}</h3>
{{with .Description}}<p>{{.}}</p>{{end}}
{{with .URL}}<a class="card-link" href="{{.}}" target="_blank" rel="noopener noreferrer">開く ↗</a>{{end}}
</article>
{{end}}</div>
</section>
{{end}}

{{define "articles"}}{{template "header" .Header}}
<section class="section-stack">
{{range .Entries}}<article class="card section-stack">
<h3>{{.Title}}</h3>
{{template "sections" .}}
</article>
{{else}}<p class="empty">表示する項目がありません。</p>
{{end}}</section>
{{end}}

{{define "dailies"}}{{template "header" .Header}}
<section class="filter-bar">
{{range .Types}}<button type="button" class="filter-toggle type-{{.Value}}{{if .Active}} active{{end}}" data-filter-type="{{.Value}}" aria-pressed="{{.Active}}">{{.Label}}</button>
{{end}}
{{- if .HiddenCount}}<button type="button" class="reset-hidden" data-reset-hidden>非表示をリセット ({{.HiddenCount}})</button>
{{end -}}
</section>
<p class="result-count">{{.Visible}} / {{.Total}} 件</p>
<section class="card-grid">
{{range .Rows}}<article class="card daily-item" data-item-id="{{.ID}}">
<span class="tag {{.TypeClass}}">{{.TypeLabel}}</span>
<h3>{{.Title}}</h3>
{{with .Note}}<p>{{.}}</p>{{end}}
{{with .Cooldown}}<p class="section-content">cooldown: {{.}}日</p>{{end}}
<button type="button" class="hide-item" data-hide="{{.ID}}">非表示</button>
</article>
{{else}}<p class="empty">表示する項目がありません。</p>
{{end}}</section>
{{end}}

{{define "training"}}{{template "header" .Header}}
<section class="filter-bar">
{{range .Tags}}<button type="button" class="filter-toggle{{if .Active}} active{{end}}" data-filter-tag="{{.Value}}" aria-pressed="{{.Active}}">{{.Label}}</button>
{{end -}}
</section>
<p class="result-count">{{.Visible}} / {{.Total}} 件</p>
<section class="section-stack">
{{range .Rows}}<article class="card section-stack training-item{{if .Open}} open{{end}}" data-item-id="{{.ID}}">
<header class="item-header">
<h3>{{.Entry.Title}}</h3>
{{range .Entry.Tags}}<span class="tag">{{.}}</span>{{end}}
<button type="button" class="toggle-open" data-toggle-open="{{.ID}}" aria-expanded="{{.Open}}">{{if .Open}}閉じる{{else}}開く{{end}}</button>
</header>
{{if .Open}}<div class="item-detail">
{{template "sections" .Entry}}
</div>
{{end}}</article>
{{else}}<p class="empty">表示する項目がありません。</p>
{{end}}</section>
{{end}}

{{define "error"}}{{template "header" .Header}}
<article class="card error-panel"><p>{{.Message}}</p></article>
{{end}}
`
