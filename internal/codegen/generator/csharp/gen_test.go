package csharp

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/resxext/internal/codegen/meta"
)

const stringsUnit = `// <auto-generated/>
using System;
using System.Globalization;
using System.Resources;
#nullable enable
namespace App.Resources.Extensions {
    public static class Strings {
        public static ResourceManager ResourceManager => global::App.Resources.Strings.ResourceManager;
        public static CultureInfo Culture { get => global::App.Resources.Strings.Culture; set => global::App.Resources.Strings.Culture = value; }
        public static string Greeting(CultureInfo? cultureInfo = null) =>
            global::App.Resources.Strings.ResourceManager.GetString("Greeting", cultureInfo ?? global::App.Resources.Strings.Culture)!;
    }
}
`

func TestEmit(t *testing.T) {
	td := meta.TypeDescriptor{
		ID:         "App.Resources.Strings",
		Namespace:  "App.Resources",
		Name:       "Strings",
		Properties: []string{"ResourceManager", "Culture", "Greeting"},
	}

	unit, err := Emit(td, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Strings.Designer.Extensions.cs", unit.Filename)
	assert.Equal(t, "App.Resources.Strings", unit.Source)
	assert.Equal(t, stringsUnit, unit.Text)
}

func TestEmitOneFunctionPerString(t *testing.T) {
	td := meta.TypeDescriptor{
		Namespace:  "App.Resources",
		Name:       "Strings",
		Properties: []string{"ResourceManager", "Culture", "Greeting", "Farewell"},
	}

	unit, err := Emit(td, Options{})
	require.NoError(t, err)

	for _, key := range []string{"Greeting", "Farewell"} {
		assert.Contains(t, unit.Text,
			"        public static string "+key+"(CultureInfo? cultureInfo = null) =>\n"+
				"            global::App.Resources.Strings.ResourceManager.GetString(\""+key+"\", cultureInfo ?? global::App.Resources.Strings.Culture)!;\n")
	}
	assert.Equal(t, 1, strings.Count(unit.Text, "ResourceManager ResourceManager =>"))
	assert.Equal(t, 1, strings.Count(unit.Text, "CultureInfo Culture {"))
}

func TestEmitIsDeterministic(t *testing.T) {
	td := meta.TypeDescriptor{Namespace: "App", Name: "Strings", Properties: []string{"B", "A", "Culture"}}

	first, err := Emit(td, Options{})
	require.NoError(t, err)
	second, err := Emit(td, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// declaration order is kept
	assert.Less(t, strings.Index(first.Text, "string B("), strings.Index(first.Text, "string A("))
	assert.Less(t, strings.Index(first.Text, "string A("), strings.Index(first.Text, "CultureInfo Culture"))
}

func TestEmitNoProperties(t *testing.T) {
	unit, err := Emit(meta.TypeDescriptor{Namespace: "App", Name: "Empty"}, Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(unit.Text, "namespace App.Extensions {\n    public static class Empty {\n    }\n}\n"), unit.Text)
}

func TestEmitGlobalNamespace(t *testing.T) {
	unit, err := Emit(meta.TypeDescriptor{Name: "Strings", Properties: []string{"Hello"}}, Options{})
	require.NoError(t, err)

	assert.Contains(t, unit.Text, "namespace Extensions {\n")
	assert.Contains(t, unit.Text, `global::Strings.ResourceManager.GetString("Hello", cultureInfo ?? global::Strings.Culture)!;`)
}

func TestEmitNestedType(t *testing.T) {
	td := meta.TypeDescriptor{
		Namespace:       "App",
		ContainingTypes: []string{"Outer", "Middle"},
		Name:            "Strings",
		Properties:      []string{"ResourceManager"},
	}

	unit, err := Emit(td, Options{})
	require.NoError(t, err)
	assert.Contains(t, unit.Text, "    public static class Strings {\n")
	assert.Contains(t, unit.Text, "=> global::App.Outer.Middle.Strings.ResourceManager;")
	assert.Equal(t, "Strings.Designer.Extensions.cs", unit.Filename)

	unit, err = Emit(td, Options{QualifyFilenames: true})
	require.NoError(t, err)
	assert.Equal(t, "App.Outer.Middle.Strings.Designer.Extensions.cs", unit.Filename)
}

func TestEmitEscapesKeywords(t *testing.T) {
	td := meta.TypeDescriptor{Namespace: "App.event", Name: "class", Properties: []string{"default", "value"}}

	unit, err := Emit(td, Options{})
	require.NoError(t, err)

	assert.Contains(t, unit.Text, "namespace App.@event.Extensions {")
	assert.Contains(t, unit.Text, "public static class @class {")
	assert.Contains(t, unit.Text, `public static string @default(CultureInfo? cultureInfo = null) =>`)
	assert.Contains(t, unit.Text, `global::App.@event.@class.ResourceManager.GetString("default", `)
	// contextual keywords are plain identifiers
	assert.Contains(t, unit.Text, `public static string value(`)
}

func TestEmitInvalidIdentifier(t *testing.T) {
	tests := []struct {
		name string
		td   meta.TypeDescriptor
	}{
		{name: "class name", td: meta.TypeDescriptor{Name: "My Strings"}},
		{name: "property", td: meta.TypeDescriptor{Name: "Strings", Properties: []string{"1st"}}},
		{name: "namespace segment", td: meta.TypeDescriptor{Namespace: "App..Res", Name: "Strings"}},
		{name: "containing type", td: meta.TypeDescriptor{Name: "Strings", ContainingTypes: []string{"Outer<T>"}}},
		{name: "empty name", td: meta.TypeDescriptor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Emit(tt.td, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIdentifier))
		})
	}
}

func TestQuoteString(t *testing.T) {
	assert.Equal(t, `"Hello"`, quoteString("Hello"))
	assert.Equal(t, `"a\"b\\c\n\t\0"`, quoteString("a\"b\\c\n\t\x00"))
	assert.Equal(t, `"\u0001"`, quoteString("\x01"))
	assert.Equal(t, `"Grüße"`, quoteString("Grüße"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "", indent(0))
	assert.Equal(t, "        ", indent(2))
}
