package csparse

// wellKnownAttributes lists framework attribute types a source-only program
// cannot see declared. Names resolved through a using directive must land on
// one of these, or on a class declared in the program.
var wellKnownAttributes = []string{
	"System.AttributeUsageAttribute",
	"System.CLSCompliantAttribute",
	"System.FlagsAttribute",
	"System.ObsoleteAttribute",
	"System.ParamArrayAttribute",
	"System.SerializableAttribute",
	"System.NonSerializedAttribute",
	"System.ThreadStaticAttribute",
	"System.STAThreadAttribute",
	"System.MTAThreadAttribute",
	"System.CodeDom.Compiler.GeneratedCodeAttribute",
	"System.ComponentModel.BrowsableAttribute",
	"System.ComponentModel.CategoryAttribute",
	"System.ComponentModel.DefaultValueAttribute",
	"System.ComponentModel.DescriptionAttribute",
	"System.ComponentModel.DesignerCategoryAttribute",
	"System.ComponentModel.DesignerSerializationVisibilityAttribute",
	"System.ComponentModel.EditorBrowsableAttribute",
	"System.ComponentModel.ToolboxItemAttribute",
	"System.ComponentModel.DataAnnotations.RequiredAttribute",
	"System.ComponentModel.DataAnnotations.KeyAttribute",
	"System.Configuration.ApplicationScopedSettingAttribute",
	"System.Configuration.UserScopedSettingAttribute",
	"System.Configuration.DefaultSettingValueAttribute",
	"System.Diagnostics.ConditionalAttribute",
	"System.Diagnostics.DebuggableAttribute",
	"System.Diagnostics.DebuggerBrowsableAttribute",
	"System.Diagnostics.DebuggerDisplayAttribute",
	"System.Diagnostics.DebuggerHiddenAttribute",
	"System.Diagnostics.DebuggerNonUserCodeAttribute",
	"System.Diagnostics.DebuggerStepThroughAttribute",
	"System.Diagnostics.DebuggerTypeProxyAttribute",
	"System.Diagnostics.CodeAnalysis.ExcludeFromCodeCoverageAttribute",
	"System.Diagnostics.CodeAnalysis.SuppressMessageAttribute",
	"System.Diagnostics.CodeAnalysis.DynamicallyAccessedMembersAttribute",
	"System.Diagnostics.CodeAnalysis.SetsRequiredMembersAttribute",
	"System.Resources.NeutralResourcesLanguageAttribute",
	"System.Runtime.CompilerServices.CompilerGeneratedAttribute",
	"System.Runtime.CompilerServices.InternalsVisibleToAttribute",
	"System.Runtime.CompilerServices.MethodImplAttribute",
	"System.Runtime.CompilerServices.ModuleInitializerAttribute",
	"System.Runtime.CompilerServices.SkipLocalsInitAttribute",
	"System.Runtime.InteropServices.ComVisibleAttribute",
	"System.Runtime.InteropServices.GuidAttribute",
	"System.Runtime.InteropServices.StructLayoutAttribute",
	"System.Runtime.Serialization.DataContractAttribute",
	"System.Runtime.Serialization.DataMemberAttribute",
	"System.Text.Json.Serialization.JsonSerializableAttribute",
	"System.Text.Json.Serialization.JsonPropertyNameAttribute",
	"System.Xml.Serialization.XmlRootAttribute",
	"System.Xml.Serialization.XmlTypeAttribute",
}
