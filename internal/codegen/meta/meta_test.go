package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/resxext/internal/codegen/meta"
	mocks "github.com/Alia5/resxext/internal/testing"
)

func TestClassifyMember(t *testing.T) {
	tests := []struct {
		name string
		want meta.MemberRole
	}{
		{"ResourceManager", meta.RoleResourceManager},
		{"Culture", meta.RoleCulture},
		{"Greeting", meta.RoleResourceString},
		{"culture", meta.RoleResourceString},
		{"resourceManager", meta.RoleResourceString},
		{"", meta.RoleResourceString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meta.ClassifyMember(tt.name))
		})
	}
}

func TestMatchSetAdd(t *testing.T) {
	set := meta.NewMatchSet()
	a := &mocks.MockSymbol{NS: "App", TypeName: "Strings", Props: []string{"Hello"}}
	b := &mocks.MockSymbol{NS: "App", TypeName: "Errors"}

	assert.True(t, set.Add(a))
	assert.True(t, set.Add(b))
	assert.False(t, set.Add(&mocks.MockSymbol{NS: "App", TypeName: "Strings"}))
	assert.Equal(t, 2, set.Len())

	types := set.Types()
	assert.Equal(t, "App.Strings", types[0].ID)
	assert.Equal(t, "App.Errors", types[1].ID)

	// descriptors are snapshots
	a.Props[0] = "Changed"
	types[0].Name = "Mutated"
	assert.Equal(t, []string{"Hello"}, set.Types()[0].Properties)
	assert.Equal(t, "Strings", set.Types()[0].Name)
}

func TestMatchSetNil(t *testing.T) {
	var set *meta.MatchSet
	assert.Equal(t, 0, set.Len())
}

func TestTypeDescriptorFullName(t *testing.T) {
	assert.Equal(t, "App.Outer.Inner", meta.TypeDescriptor{Namespace: "App", ContainingTypes: []string{"Outer"}, Name: "Inner"}.FullName())
	assert.Equal(t, "Strings", meta.TypeDescriptor{Name: "Strings"}.FullName())
}
