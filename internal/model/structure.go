package model

// UnitKind identifies the kind of a structural code unit.
type UnitKind string

// Available UnitKind values.
const (
	UnitClass     UnitKind = "class"
	UnitTrait     UnitKind = "trait"
	UnitInterface UnitKind = "interface"
	UnitFunction  UnitKind = "function"
	UnitMethod    UnitKind = "method"
)

// CodeUnit is a class, trait, interface, function or method located by the
// structural parser.
type CodeUnit struct {
	Kind       UnitKind
	Name       string
	Namespace  string
	Signature  string
	Visibility string
	StartLine  int
	EndLine    int
	CCN        int
	// Synthetic marks compiler- or parser-synthesized units such as closures.
	Synthetic bool
	Methods   []CodeUnit
}

// TokenKind classifies a token of the structural token stream.
type TokenKind uint8

// Available TokenKind values.
const (
	TokenCode TokenKind = iota
	TokenComment
	TokenDocComment
	TokenClass
	TokenTrait
	TokenInterface
	TokenFunction
	TokenNamespace
	TokenUse
	TokenDeclare
	TokenOpenTag
	TokenCloseTag
)

// IsDeclaration reports whether the token opens a class, trait, interface or function.
func (k TokenKind) IsDeclaration() bool {
	switch k {
	case TokenClass, TokenTrait, TokenInterface, TokenFunction:
		return true
	default:
		return false
	}
}

// Token is one entry of the structural token stream. EndLine is only
// meaningful for declarations and namespaces; DocBlock only for declarations.
type Token struct {
	Kind     TokenKind
	Line     int
	EndLine  int
	Text     string
	DocBlock string
}

// FileStructure is the structural metadata of one source file.
type FileStructure struct {
	Interfaces  []CodeUnit
	Classes     []CodeUnit
	Traits      []CodeUnit
	Functions   []CodeUnit
	Tokens      []Token
	LinesOfCode LinesOfCode
}
