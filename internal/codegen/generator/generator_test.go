package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/resxext/internal/codegen/csparse"
	"github.com/Alia5/resxext/internal/codegen/generator/csharp"
	"github.com/Alia5/resxext/internal/codegen/output"
	"github.com/Alia5/resxext/internal/codegen/scanner"
	mocks "github.com/Alia5/resxext/internal/testing"
)

type recordingDumper struct {
	names []string
}

func (r *recordingDumper) Dump(filename, _ string) { r.names = append(r.names, filename) }

func TestRunFromSource(t *testing.T) {
	src := mocks.DesignerSource(t, "App.Resources", "Strings", "Greeting")
	prog := csparse.NewProgram(
		csparse.Parse("Strings.Designer.cs", []byte(src)),
		csparse.Parse("Program.cs", []byte(`namespace App { [System.Serializable] class Program { } }`)),
	)
	sink := output.NewMemory()
	dumper := &recordingDumper{}

	res, err := New(nil, WithDumper(dumper)).Run(context.Background(), prog, sink)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 1, res.Matched)
	require.Len(t, sink.Units(), 1)

	unit := sink.Units()[0]
	assert.Equal(t, "Strings.Designer.Extensions.cs", unit.Filename)
	assert.Contains(t, unit.Text, "namespace App.Resources.Extensions {")
	assert.Contains(t, unit.Text, `GetString("Greeting", cultureInfo ?? global::App.Resources.Strings.Culture)!;`)
	assert.Equal(t, []string{"Strings.Designer.Extensions.cs"}, dumper.names)
}

func TestRunNoMatches(t *testing.T) {
	sink := output.NewMemory()
	res, err := New(nil).Run(context.Background(), mocks.Program(), sink)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Matched)
	assert.Empty(t, sink.Units())
}

func TestRunDuplicateFilenames(t *testing.T) {
	prog := mocks.Program(
		mocks.Resource("App.A", "Strings", "X"),
		mocks.Resource("App.B", "Strings", "Y"),
	)

	_, err := New(nil).Run(context.Background(), prog, output.NewMemory())
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrDuplicateFilename))

	sink := output.NewMemory()
	_, err = New(nil, WithQualifiedFilenames(true)).Run(context.Background(), prog, sink)
	require.NoError(t, err)
	require.Len(t, sink.Units(), 2)
	assert.Equal(t, "App.A.Strings.Designer.Extensions.cs", sink.Units()[0].Filename)
	assert.Equal(t, "App.B.Strings.Designer.Extensions.cs", sink.Units()[1].Filename)
}

func TestRunInvalidIdentifierAborts(t *testing.T) {
	prog := mocks.Program(
		mocks.Resource("App", "Good", "X"),
		mocks.Resource("App", "Bad Name", "Y"),
	)
	sink := output.NewMemory()

	_, err := New(nil).Run(context.Background(), prog, sink)
	require.Error(t, err)
	assert.True(t, errors.Is(err, csharp.ErrInvalidIdentifier))
	assert.Empty(t, sink.Units(), "no unit is stored when emission fails")
}

func TestEmitAllParallelKeepsOrder(t *testing.T) {
	var decls []*mocks.MockDeclaration
	for i := 0; i < 50; i++ {
		decls = append(decls, mocks.Resource(fmt.Sprintf("App.N%d", i), fmt.Sprintf("Strings%d", i), "Hello"))
	}
	prog := mocks.Program(decls...)

	seq := New(nil)
	par := New(nil, WithJobs(8))

	want, err := seq.EmitAll(context.Background(), seq.Scan(prog))
	require.NoError(t, err)
	got, err := par.EmitAll(context.Background(), par.Scan(prog))
	require.NoError(t, err)

	require.Len(t, got, 50)
	assert.Equal(t, want, got)
	assert.Equal(t, "Strings0.Designer.Extensions.cs", got[0].Filename)
	assert.Equal(t, "Strings49.Designer.Extensions.cs", got[49].Filename)
}

func TestEmitAllCancelled(t *testing.T) {
	prog := mocks.Program(mocks.Resource("App", "Strings", "Hello"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(nil)
	_, err := g.EmitAll(ctx, g.Scan(prog))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWithSignature(t *testing.T) {
	prog := mocks.Program(
		mocks.Declared("App", "Marked", []string{"My.MarkerAttribute"}, "Value"),
		mocks.Resource("App", "Strings", "Hello"),
	)
	g := New(nil, WithSignature(scanner.NewSignature("My.MarkerAttribute")))

	md := g.Scan(prog)
	require.Equal(t, 1, md.Matches.Len())
	assert.Equal(t, "Marked", md.Matches.Types()[0].Name)
}
