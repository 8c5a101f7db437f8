package automock

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	mockTmplString = `{{ define "mock" -}}
{{ .Vis }}struct {{ .Name }}{{ .ImplGenerics }} {{ .Where }} {
{{- range .Fields }}
	{{ .Name }}: {{ .Type }},
{{- end }}
}
impl{{ .ImplGenerics }} ::std::default::Default for {{ .Name }}{{ .TypeGenerics }} {{ .Where }} {
	fn default() -> Self {
		Self {
		{{- range .Fields }}
			{{ .Name }}: {{ .Init }},
		{{- end }}
		}
	}
}
{{- range .Traits }}
{{ template "trait" . }}
{{- end }}
{{- range .Methods }}{{ if .Static }}
{{ template "store" . }}
{{- end }}{{ end }}
impl{{ .ImplGenerics }} {{ .Name }}{{ .TypeGenerics }} {{ .Where }} {
{{- range .Methods }}
	pub {{ .Signature }} {
		{{ template "call" . }}
	}
	{{ template "expect" . }}
{{- end }}
	pub fn checkpoint(&mut self) {
	{{- range .Traits }}
		self.{{ .Field }}.checkpoint();
	{{- end }}
	{{- range .Methods }}
		{{ template "checkpoint" . }}
	{{- end }}
	}
	pub fn new() -> Self {
		Self::default()
	}
}
{{- range $trait := .Traits }}
{{ if $trait.Unsafe }}unsafe {{ end }}impl{{ $.ImplGenerics }} {{ $trait.Path }} for {{ $.Name }}{{ $.TypeGenerics }} {{ $.Where }} {
{{- range $trait.Types }}
	{{ . }}
{{- end }}
{{- range $trait.Methods }}
	{{ .Signature }} {
		{{ template "call" . }}
	}
{{- end }}
}
impl{{ $.ImplGenerics }} {{ $.Name }}{{ $.TypeGenerics }} {{ $.Where }} {
{{- range $trait.Methods }}
	{{ template "expect" . }}
{{- end }}
}
{{- end }}
{{ end }}

{{- define "trait" -}}
struct {{ .Struct }}{{ .ImplGenerics }} {{ .Where }} {
{{- range .Fields }}
	{{ .Name }}: {{ .Type }},
{{- end }}
}
{{- range .Methods }}{{ if .Static }}
{{ template "store" . }}
{{- end }}{{ end }}
impl{{ .ImplGenerics }} ::std::default::Default for {{ .Struct }}{{ .TypeGenerics }} {{ .Where }} {
	fn default() -> Self {
		Self {
		{{- range .Fields }}
			{{ .Name }}: {{ .Init }},
		{{- end }}
		}
	}
}
impl{{ .ImplGenerics }} {{ .Struct }}{{ .TypeGenerics }} {{ .Where }} {
	fn checkpoint(&mut self) {
	{{- range .Methods }}
		{{ template "checkpoint" . }}
	{{- end }}
	}
}
{{- end }}

{{- define "store" -}}
::mockall::lazy_static! {
	static ref {{ .Store }}: ::std::sync::Mutex<{{ .Expectations }}> = ::std::sync::Mutex::new(::mockall::Expectations::new());
}
{{- end }}

{{- define "call" -}}
{{ if .Static }}{{ .Store }}.lock().unwrap(){{ else }}{{ .Owner }}.{{ .Name }}{{ end }}.call{{ .Turbofish }}({{ .Args }})
{{- end }}

{{- define "expect" -}}
{{ if .Static -}}
pub fn expect_{{ .Name }}{{ .ExpectGenerics }}() -> ::mockall::ExpectationGuard<'guard, {{ .Input }}, {{ .Output }}> {{ .Where }} {
	::mockall::ExpectationGuard::new({{ .Store }}.lock().unwrap())
}
{{- else -}}
pub fn expect_{{ .Name }}{{ .ExpectGenerics }}(&mut self) -> &mut ::mockall::Expectation<{{ .Input }}, {{ .Output }}> {{ .Where }} {
	{{ .Owner }}.{{ .Name }}.expect{{ .Turbofish }}()
}
{{- end }}
{{- end }}

{{- define "checkpoint" -}}
{{ if .Static }}{{ .Store }}.lock().unwrap(){{ else }}self.{{ .Name }}{{ end }}.checkpoint();
{{- end }}

{{- define "function" -}}
{{ template "store" . }}
{{ .Signature }} {
	{{ template "call" . }}
}
{{ template "expect" . }}
{{- end }}

{{- define "module" -}}
mod {{ .Name }} {
{{- range .Items }}
{{ . }}
{{- end }}
pub fn checkpoint() {
{{- range .Functions }}
	{{ template "checkpoint" . }}
{{- end }}
}
}
{{ end }}`
)

var (
	mockTmpl = template.Must(template.New("").Parse(mockTmplString))
)

func execute(name string, data interface{}) (string, error) {
	b := bytes.NewBuffer(nil)

	err := mockTmpl.ExecuteTemplate(b, name, data)
	if err != nil {
		return "", fmt.Errorf("cannot execute %s template: %v", name, err)
	}

	return b.String(), nil
}

type mockInfo struct {
	Vis          string
	Name         string
	ImplGenerics string
	TypeGenerics string
	Where        string
	Fields       []fieldInfo
	Methods      []*methodInfo
	Traits       []*traitInfo
}

type traitInfo struct {
	Unsafe       bool
	Path         string
	Struct       string
	Field        string
	ImplGenerics string
	TypeGenerics string
	Where        string
	Fields       []fieldInfo
	Types        []string
	Methods      []*methodInfo
}

type fieldInfo struct {
	Name string
	Type string
	Init string
}

type moduleInfo struct {
	Name      string
	Items     []string
	Functions []*methodInfo
}

type methodInfo struct {
	Name      string
	Signature string
	// Owner is the expression holding the expectations of an instance
	// method. Store names the global store of a static method instead.
	Owner          string
	Store          string
	Generic        bool
	Input          string
	Output         string
	Args           string
	ExpectGenerics string
	Where          string
}

func (m *methodInfo) Static() bool {
	return m.Store != ""
}

// Turbofish selects the expectation types of a generic method.
func (m *methodInfo) Turbofish() string {
	if !m.Generic || m.Static() {
		return ""
	}

	return fmt.Sprintf("::<%v, %v>", m.Input, m.Output)
}

func (m *methodInfo) Expectations() string {
	return fmt.Sprintf("::mockall::Expectations<%v, %v>", m.Input, m.Output)
}

func (m *methodInfo) Field() fieldInfo {
	if m.Generic {
		return fieldInfo{
			Name: m.Name,
			Type: "::mockall::GenericExpectations",
			Init: "::mockall::GenericExpectations::default()",
		}
	}

	return fieldInfo{
		Name: m.Name,
		Type: m.Expectations(),
		Init: "::mockall::Expectations::default()",
	}
}
