// Package syntax defines the arena-allocated Swift syntax tree shared by all rules.
package syntax

// Kind classifies a syntax node.
type Kind uint16

// Node kinds. The enumeration is closed: parsers only produce these kinds.
const (
	KindUnknown Kind = iota
	KindSourceFile
	KindToken

	// Blocks and clauses.
	KindCodeBlock
	KindMemberBlock
	KindAccessorBlock
	KindAttribute
	KindModifier
	KindParameterClause
	KindParameter
	KindReturnClause
	KindGenericParameterClause
	KindGenericArgumentClause
	KindGenericArgument
	KindInheritanceClause
	KindWhereClause
	KindTypeAnnotation
	KindInitializerClause
	KindPatternBinding
	KindPattern
	KindConditionList
	KindCondition
	KindSwitchCase
	KindCatchClause

	// Declarations.
	KindImportDecl
	KindFunctionDecl
	KindInitializerDecl
	KindDeinitializerDecl
	KindSubscriptDecl
	KindClassDecl
	KindStructDecl
	KindEnumDecl
	KindActorDecl
	KindProtocolDecl
	KindExtensionDecl
	KindVariableDecl
	KindTypeAliasDecl
	KindAssociatedTypeDecl
	KindEnumCaseDecl

	// Statements.
	KindIfStmt
	KindGuardStmt
	KindWhileStmt
	KindRepeatStmt
	KindForStmt
	KindSwitchStmt
	KindReturnStmt
	KindThrowStmt
	KindDeferStmt
	KindDoStmt
	KindControlTransferStmt

	// Expressions.
	KindSequenceExpr
	KindPrefixOperatorExpr
	KindPostfixOperatorExpr
	KindOptionalChainingExpr
	KindForceUnwrapExpr
	KindTryExpr
	KindAwaitExpr
	KindAsExpr
	KindIsExpr
	KindTernaryExpr
	KindFunctionCallExpr
	KindSubscriptCallExpr
	KindLabeledExpr
	KindMemberAccessExpr
	KindDeclReferenceExpr
	KindGenericSpecializationExpr
	KindBooleanLiteralExpr
	KindIntegerLiteralExpr
	KindFloatLiteralExpr
	KindStringLiteralExpr
	KindNilLiteralExpr
	KindArrayExpr
	KindDictionaryExpr
	KindDictionaryElement
	KindTupleExpr
	KindClosureExpr
	KindClosureSignature
	KindKeyPathExpr
	KindMacroExpansionExpr
	KindDiscardAssignmentExpr

	// Types.
	KindIdentifierType
	KindMemberType
	KindArrayType
	KindDictionaryType
	KindOptionalType
	KindImplicitlyUnwrappedOptionalType
	KindTupleType
	KindFunctionType
	KindAttributedType
	KindSomeOrAnyType

	kindCount
)

//nolint:gochecknoglobals // Read-only name table.
var kindNames = [kindCount]string{
	KindUnknown:                         "Unknown",
	KindSourceFile:                      "SourceFile",
	KindToken:                           "Token",
	KindCodeBlock:                       "CodeBlock",
	KindMemberBlock:                     "MemberBlock",
	KindAccessorBlock:                   "AccessorBlock",
	KindAttribute:                       "Attribute",
	KindModifier:                        "Modifier",
	KindParameterClause:                 "ParameterClause",
	KindParameter:                       "Parameter",
	KindReturnClause:                    "ReturnClause",
	KindGenericParameterClause:          "GenericParameterClause",
	KindGenericArgumentClause:           "GenericArgumentClause",
	KindGenericArgument:                 "GenericArgument",
	KindInheritanceClause:               "InheritanceClause",
	KindWhereClause:                     "WhereClause",
	KindTypeAnnotation:                  "TypeAnnotation",
	KindInitializerClause:               "InitializerClause",
	KindPatternBinding:                  "PatternBinding",
	KindPattern:                         "Pattern",
	KindConditionList:                   "ConditionList",
	KindCondition:                       "Condition",
	KindSwitchCase:                      "SwitchCase",
	KindCatchClause:                     "CatchClause",
	KindImportDecl:                      "ImportDecl",
	KindFunctionDecl:                    "FunctionDecl",
	KindInitializerDecl:                 "InitializerDecl",
	KindDeinitializerDecl:               "DeinitializerDecl",
	KindSubscriptDecl:                   "SubscriptDecl",
	KindClassDecl:                       "ClassDecl",
	KindStructDecl:                      "StructDecl",
	KindEnumDecl:                        "EnumDecl",
	KindActorDecl:                       "ActorDecl",
	KindProtocolDecl:                    "ProtocolDecl",
	KindExtensionDecl:                   "ExtensionDecl",
	KindVariableDecl:                    "VariableDecl",
	KindTypeAliasDecl:                   "TypeAliasDecl",
	KindAssociatedTypeDecl:              "AssociatedTypeDecl",
	KindEnumCaseDecl:                    "EnumCaseDecl",
	KindIfStmt:                          "IfStmt",
	KindGuardStmt:                       "GuardStmt",
	KindWhileStmt:                       "WhileStmt",
	KindRepeatStmt:                      "RepeatStmt",
	KindForStmt:                         "ForStmt",
	KindSwitchStmt:                      "SwitchStmt",
	KindReturnStmt:                      "ReturnStmt",
	KindThrowStmt:                       "ThrowStmt",
	KindDeferStmt:                       "DeferStmt",
	KindDoStmt:                          "DoStmt",
	KindControlTransferStmt:             "ControlTransferStmt",
	KindSequenceExpr:                    "SequenceExpr",
	KindPrefixOperatorExpr:              "PrefixOperatorExpr",
	KindPostfixOperatorExpr:             "PostfixOperatorExpr",
	KindOptionalChainingExpr:            "OptionalChainingExpr",
	KindForceUnwrapExpr:                 "ForceUnwrapExpr",
	KindTryExpr:                         "TryExpr",
	KindAwaitExpr:                       "AwaitExpr",
	KindAsExpr:                          "AsExpr",
	KindIsExpr:                          "IsExpr",
	KindTernaryExpr:                     "TernaryExpr",
	KindFunctionCallExpr:                "FunctionCallExpr",
	KindSubscriptCallExpr:               "SubscriptCallExpr",
	KindLabeledExpr:                     "LabeledExpr",
	KindMemberAccessExpr:                "MemberAccessExpr",
	KindDeclReferenceExpr:               "DeclReferenceExpr",
	KindGenericSpecializationExpr:       "GenericSpecializationExpr",
	KindBooleanLiteralExpr:              "BooleanLiteralExpr",
	KindIntegerLiteralExpr:              "IntegerLiteralExpr",
	KindFloatLiteralExpr:                "FloatLiteralExpr",
	KindStringLiteralExpr:               "StringLiteralExpr",
	KindNilLiteralExpr:                  "NilLiteralExpr",
	KindArrayExpr:                       "ArrayExpr",
	KindDictionaryExpr:                  "DictionaryExpr",
	KindDictionaryElement:               "DictionaryElement",
	KindTupleExpr:                       "TupleExpr",
	KindClosureExpr:                     "ClosureExpr",
	KindClosureSignature:                "ClosureSignature",
	KindKeyPathExpr:                     "KeyPathExpr",
	KindMacroExpansionExpr:              "MacroExpansionExpr",
	KindDiscardAssignmentExpr:           "DiscardAssignmentExpr",
	KindIdentifierType:                  "IdentifierType",
	KindMemberType:                      "MemberType",
	KindArrayType:                       "ArrayType",
	KindDictionaryType:                  "DictionaryType",
	KindOptionalType:                    "OptionalType",
	KindImplicitlyUnwrappedOptionalType: "ImplicitlyUnwrappedOptionalType",
	KindTupleType:                       "TupleType",
	KindFunctionType:                    "FunctionType",
	KindAttributedType:                  "AttributedType",
	KindSomeOrAnyType:                   "SomeOrAnyType",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// IsDecl reports whether k is a declaration.
func (k Kind) IsDecl() bool {
	return k >= KindImportDecl && k <= KindEnumCaseDecl
}

// IsTypeDecl reports whether k declares a nominal type or extension.
func (k Kind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindStructDecl, KindEnumDecl, KindActorDecl, KindProtocolDecl, KindExtensionDecl:
		return true
	default:
		return false
	}
}

// IsStmt reports whether k is a statement.
func (k Kind) IsStmt() bool {
	return k >= KindIfStmt && k <= KindControlTransferStmt
}

// IsExpr reports whether k is an expression.
func (k Kind) IsExpr() bool {
	return k >= KindSequenceExpr && k <= KindDiscardAssignmentExpr
}

// IsType reports whether k is a type.
func (k Kind) IsType() bool {
	return k >= KindIdentifierType && k <= KindSomeOrAnyType
}

// IsLiteral reports whether k is a literal expression.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindBooleanLiteralExpr, KindIntegerLiteralExpr, KindFloatLiteralExpr,
		KindStringLiteralExpr, KindNilLiteralExpr:
		return true
	default:
		return false
	}
}
