package parser

// Dart tree-sitter node kinds used by the visitors in internal/assets and
// internal/codeanalysis. Named as constants rather than inline string
// literals so every visitor agrees on one spelling.
const (
	KindProgram                   = "program"
	KindImportSpec                = "import_specification"
	KindExportSpec                = "export_specification"
	KindLibraryURI                = "uri"
	KindImportURI                 = "configurable_uri" // wraps uri in some grammar revisions; uri child is still present
	KindClassDefinition           = "class_definition"
	KindMixinDeclaration          = "mixin_declaration"
	KindExtensionDecl             = "extension_declaration"
	KindEnumDeclaration           = "enum_declaration"
	KindEnumConstant              = "enum_constant"
	KindTypeAlias                 = "type_alias"
	KindFunctionSignature         = "function_signature"
	KindMethodSignature           = "method_signature"
	KindGetterSignature           = "getter_signature"
	KindSetterSignature           = "setter_signature"
	KindConstructorSig            = "constructor_signature"
	KindFactoryConstructor        = "factory_constructor_signature"
	KindFormalParameter           = "formal_parameter"
	KindDefaultFormalParam        = "default_formal_parameter"
	KindDeclaration               = "declaration"
	KindStaticFinalDeclList       = "static_final_declaration_list"
	KindStaticFinalDecl           = "static_final_declaration"
	KindInitializedIdentifierList = "initialized_identifier_list"
	KindInitializedIdentifier     = "initialized_identifier"
	KindIdentifier                = "identifier"
	KindTypeIdentifier            = "type_identifier"
	KindScriptTag                 = "identifier_dollar_escapable"
	KindStringLiteral             = "string_literal"
	KindTemplateSubst             = "template_substitution"
	KindInterpolation             = "interpolation_expression"
	KindAdjacentStrings           = "string_literal_list"
	KindSelector                  = "unconditional_assignable_selector"
	KindNavigation                = "navigation_expression"
	KindAssignment                = "assignment_expression"
	KindAnnotation                = "annotation"
	KindMarkerAnnotation          = "marker_annotation"
	KindClassBody                 = "class_body"
	KindMainFunctionName          = "main"
	KindArgumentPart              = "argument_part"
	KindArguments                 = "arguments"
)
