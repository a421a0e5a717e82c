package cst

// Kind is the closed set of node kinds rules can subscribe to.
// Everything else is KindOther.
type Kind uint8

const (
	KindOther Kind = iota
	KindModule
	KindCall
	KindComparison
	KindString
	KindInterpolation
	KindClassDef
	KindFunctionDef
	KindIdentifier
	KindAttribute
	KindImport
	KindAssignment
	KindIf
	KindReturn
	KindLambda
	KindArgumentList
	KindExcept
	KindComment
	kindCount
)

var kindNames = [...]string{
	KindOther:         "Other",
	KindModule:        "Module",
	KindCall:          "Call",
	KindComparison:    "Comparison",
	KindString:        "String",
	KindInterpolation: "Interpolation",
	KindClassDef:      "ClassDef",
	KindFunctionDef:   "FunctionDef",
	KindIdentifier:    "Identifier",
	KindAttribute:     "Attribute",
	KindImport:        "Import",
	KindAssignment:    "Assignment",
	KindIf:            "If",
	KindReturn:        "Return",
	KindLambda:        "Lambda",
	KindArgumentList:  "ArgumentList",
	KindExcept:        "Except",
	KindComment:       "Comment",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// tree-sitter-python node type -> Kind
var kindByType = map[string]Kind{
	"module":                KindModule,
	"call":                  KindCall,
	"comparison_operator":   KindComparison,
	"string":                KindString,
	"interpolation":         KindInterpolation,
	"class_definition":      KindClassDef,
	"function_definition":   KindFunctionDef,
	"identifier":            KindIdentifier,
	"attribute":             KindAttribute,
	"import_statement":      KindImport,
	"import_from_statement": KindImport,
	"assignment":            KindAssignment,
	"augmented_assignment":  KindAssignment,
	"if_statement":          KindIf,
	"return_statement":      KindReturn,
	"lambda":                KindLambda,
	"argument_list":         KindArgumentList,
	"except_clause":         KindExcept,
	"comment":               KindComment,
}

// KindOf maps a raw tree-sitter node type.
func KindOf(nodeType string) Kind {
	if k, ok := kindByType[nodeType]; ok {
		return k
	}
	return KindOther
}
