// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

const header = "// Code generated by stagegen. DO NOT EDIT."

var proxyTemplate = template.Must(template.New("proxy").Funcs(template.FuncMap{
	"descriptor": descriptorName,
	"params":     params,
	"fields":     fields,
	"callArgs":   callArgs,
}).Parse(`{{ .Header }}

package {{ .Package }}

import (
	"context"

	"github.com/tochemey/stage/actor"
{{- if .HasRequests }}
	"github.com/tochemey/stage/future"
{{- end }}
{{- range .Imports }}
	"{{ . }}"
{{- end }}
)

// {{ .Actor }}Proxy is the typed proxy of a {{ .Actor }} stage.
// It must be released once the holder is done with it.
type {{ .Actor }}Proxy struct {
	inner *actor.Proxy[*{{ .Actor }}]
}

// New{{ .Actor }}Proxy wraps a proxy to a {{ .Actor }} stage
func New{{ .Actor }}Proxy(inner *actor.Proxy[*{{ .Actor }}]) *{{ .Actor }}Proxy {
	return &{{ .Actor }}Proxy{inner: inner}
}

// Inner returns the untyped proxy
func (p *{{ .Actor }}Proxy) Inner() *actor.Proxy[*{{ .Actor }}] {
	return p.inner
}

// Clone returns a new proxy to the same stage
func (p *{{ .Actor }}Proxy) Clone() *{{ .Actor }}Proxy {
	return &{{ .Actor }}Proxy{inner: p.inner.Clone()}
}

// Release gives up the proxy
func (p *{{ .Actor }}Proxy) Release() {
	p.inner.Release()
}
{{ range .Operations }}
{{- if .IsRequest }}
// {{ .Name }} sends a {{ .Name }} request to the stage
func (p *{{ $.Actor }}Proxy) {{ .Name }}({{ params . }}) (*future.Future[{{ .Returns }}], error) {
	return actor.SendRequest[*{{ $.Actor }}, {{ .Returns }}](p.inner, &{{ descriptor $.Actor . }}{ {{- fields . -}} })
}
{{- else }}
// {{ .Name }} sends a {{ .Name }} message to the stage
func (p *{{ $.Actor }}Proxy) {{ .Name }}({{ params . }}) error {
	return p.inner.SendMessage(&{{ descriptor $.Actor . }}{ {{- fields . -}} })
}
{{- end }}
{{ end }}
{{- range .Operations }}
{{ if .Args -}}
type {{ descriptor $.Actor . }} struct {
{{- range .Args }}
	{{ .Name }} {{ .Type }}
{{- end }}
}
{{- else -}}
type {{ descriptor $.Actor . }} struct{}
{{- end }}
{{ if .IsRequest }}
func (msg *{{ descriptor $.Actor . }}) Handle(ctx context.Context, target *{{ $.Actor }}) ({{ .Returns }}, error) {
	return target.{{ .Name }}(ctx{{ callArgs . }})
}
{{- else }}
func (msg *{{ descriptor $.Actor . }}) Handle(ctx context.Context, target *{{ $.Actor }}) error {
	return target.{{ .Name }}(ctx{{ callArgs . }})
}
{{- end }}
{{ end }}`))

type templateData struct {
	*Description
	Header      string
	HasRequests bool
}

// Generate renders the proxy and the message descriptors of the described actor.
// The output is gofmt-ed.
func Generate(description *Description) ([]byte, error) {
	if err := description.Validate(); err != nil {
		return nil, err
	}

	data := templateData{Description: description, Header: header}
	for _, operation := range description.Operations {
		if operation.IsRequest() {
			data.HasRequests = true
			break
		}
	}

	var buffer bytes.Buffer
	if err := proxyTemplate.Execute(&buffer, data); err != nil {
		return nil, fmt.Errorf("failed to render %s proxy: %w", description.Actor, err)
	}

	source, err := format.Source(buffer.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format %s proxy: %w", description.Actor, err)
	}
	return source, nil
}

// FileName returns the name of the file the generated code is written to
func FileName(description *Description) string {
	return toSnakeCase(description.Actor) + "_proxy.go"
}

// descriptorName is the unexported type name of an operation descriptor, e.g. counterAdd
func descriptorName(actorName string, operation *Operation) string {
	return lowerFirst(actorName) + operation.Name
}

func params(operation *Operation) string {
	parts := make([]string, 0, len(operation.Args))
	for _, arg := range operation.Args {
		parts = append(parts, arg.Name+" "+arg.Type)
	}
	return strings.Join(parts, ", ")
}

func fields(operation *Operation) string {
	parts := make([]string, 0, len(operation.Args))
	for _, arg := range operation.Args {
		parts = append(parts, arg.Name+": "+arg.Name)
	}
	return strings.Join(parts, ", ")
}

func callArgs(operation *Operation) string {
	var builder strings.Builder
	for _, arg := range operation.Args {
		builder.WriteString(", msg.")
		builder.WriteString(arg.Name)
	}
	return builder.String()
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func toSnakeCase(s string) string {
	var builder strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				builder.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
