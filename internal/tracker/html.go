package tracker

import "html/template"

var htmlTemplates = template.Must(template.New("tracker").Parse(`
{{- define "start" -}}
<table class="generaltable boxaligncenter flexible-wrap" summary="Upload results">
<tr class="heading r{{.}}"><th class="c0" scope="col">Line</th><th class="c1" scope="col">Result</th><th class="c2" scope="col">Username</th><th class="c3" scope="col">ID</th><th class="c4" scope="col">Full name</th><th class="c5" scope="col">Status</th></tr>
{{end -}}

{{- define "row" -}}
<tr class="{{.Class}}"><td class="c0">{{.Line}}</td><td class="c1">{{if .OK}}<span class="icon valid" title="OK">&#10004;</span>{{else}}<span class="icon invalid" title="NOK">&#10008;</span>{{end}}</td><td class="c2">{{.Username}}</td><td class="c3">{{.CourseID}}</td><td class="c4">{{.FullName}}</td><td class="c5">{{range $i, $s := .Status}}{{if $i}}<br>{{end}}{{$s}}{{end}}</td></tr>
{{end -}}

{{- define "results" -}}
<ul>
{{- range .}}
<li>{{.}}</li>
{{- end}}
</ul>
{{end -}}
`))
