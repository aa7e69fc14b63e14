package csharp

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/resxext/internal/codegen/common"
	"github.com/Alia5/resxext/internal/codegen/meta"
)

// FileSuffix marks a companion of a designer-generated resource class.
const FileSuffix = ".Designer.Extensions.cs"

// ErrInvalidIdentifier is returned when a matched type carries a name that
// cannot be spelled as a C# identifier.
var ErrInvalidIdentifier = errors.New("invalid C# identifier")

// Options tune the emitted unit without changing its text.
type Options struct {
	// QualifyFilenames prefixes the filename with the namespace and
	// containing types so equally named classes do not collide.
	QualifyFilenames bool
}

const extensionsTemplate = `{{header}}
using System;
using System.Globalization;
using System.Resources;
#nullable enable
namespace {{.Namespace}} {
{{indent 1}}public static class {{.ClassName}} {
{{- range .Members}}
{{- if eq .Kind "resourceManager"}}
{{indent 2}}public static ResourceManager {{.Ident}} => {{$.Target}}.{{.Ident}};
{{- else if eq .Kind "culture"}}
{{indent 2}}public static CultureInfo {{.Ident}} { get => {{$.Target}}.{{.Ident}}; set => {{$.Target}}.{{.Ident}} = value; }
{{- else}}
{{indent 2}}public static string {{.Ident}}(CultureInfo? cultureInfo = null) =>
{{indent 3}}{{$.Target}}.ResourceManager.GetString({{quote .Key}}, cultureInfo ?? {{$.Target}}.Culture)!;
{{- end}}
{{- end}}
{{indent 1}}}
}
`

var tmpl = template.Must(template.New("extensions").Funcs(template.FuncMap{
	"header": writeFileHeader,
	"indent": indent,
	"quote":  quoteString,
}).Parse(extensionsTemplate))

type extensionsData struct {
	Namespace string
	ClassName string
	Target    string
	Members   []memberData
}

type memberData struct {
	Kind  string
	Ident string
	Key   string
}

// Emit renders the companion extension class for one matched type. The
// output depends only on td.
func Emit(td meta.TypeDescriptor, opts Options) (meta.EmissionUnit, error) {
	data, err := buildData(td)
	if err != nil {
		return meta.EmissionUnit{}, fmt.Errorf("%s: %w", td.FullName(), err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return meta.EmissionUnit{}, fmt.Errorf("execute template for %s: %w", td.FullName(), err)
	}

	return meta.EmissionUnit{
		Filename: Filename(td, opts),
		Text:     buf.String(),
		Source:   td.ID,
	}, nil
}

// Filename derives the output name of td's unit.
func Filename(td meta.TypeDescriptor, opts Options) string {
	if opts.QualifyFilenames {
		return td.FullName() + FileSuffix
	}
	return td.Name + FileSuffix
}

func buildData(td meta.TypeDescriptor) (*extensionsData, error) {
	className, err := identifier(td.Name)
	if err != nil {
		return nil, err
	}

	ns := "Extensions"
	var target []string
	if td.Namespace != "" {
		segments, err := identifiers(strings.Split(td.Namespace, "."))
		if err != nil {
			return nil, fmt.Errorf("namespace %q: %w", td.Namespace, err)
		}
		ns = strings.Join(segments, ".") + ".Extensions"
		target = append(target, segments...)
	}

	containing, err := identifiers(td.ContainingTypes)
	if err != nil {
		return nil, fmt.Errorf("containing type: %w", err)
	}
	target = append(target, containing...)
	target = append(target, className)

	data := &extensionsData{
		Namespace: ns,
		ClassName: className,
		Target:    "global::" + strings.Join(target, "."),
		Members:   make([]memberData, 0, len(td.Properties)),
	}

	for _, name := range td.Properties {
		ident, err := identifier(name)
		if err != nil {
			return nil, fmt.Errorf("property: %w", err)
		}
		data.Members = append(data.Members, memberData{
			Kind:  meta.ClassifyMember(name).String(),
			Ident: ident,
			Key:   name,
		})
	}

	return data, nil
}

func identifiers(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		ident, err := identifier(n)
		if err != nil {
			return nil, err
		}
		out = append(out, ident)
	}
	return out, nil
}

func identifier(name string) (string, error) {
	if !common.IsIdentifier(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return common.EscapeKeyword(name), nil
}
