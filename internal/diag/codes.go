package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                  Code = 1000
	LexUnknownChar           Code = 1001
	LexUnterminatedString    Code = 1002
	LexUnterminatedLifetime  Code = 1003
	LexUnterminatedAttribute Code = 1004

	// Fragment syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectType       Code = 2003
	SynExpectBound      Code = 2004
	SynExpectLifetime   Code = 2005
	SynUnclosedAngle    Code = 2006
	SynUnclosedParen    Code = 2007
	SynUnclosedBrace    Code = 2008
	SynTrailingInput    Code = 2009
	SynExpectColon      Code = 2010
	SynExpectDataDecl   Code = 2011
	SynUnclosedBracket  Code = 2012

	// Translation of syntax into IR
	IRInfo           Code = 3000
	IRUnknownName    Code = 3001
	IRNotALifetime   Code = 3002
	IRNotATypeParam  Code = 3003
	IRDuplicateParam Code = 3004
	IRForeignContext Code = 3005

	// Recognised but unsupported shapes
	UnsConstParam    Code = 4001
	UnsConstArgument Code = 4002
	UnsEqPredicate   Code = 4003
	UnsTypeShape     Code = 4004
	UnsQualifiedSelf Code = 4005

	// Invariant violations inside the IR
	IntNotATuple       Code = 5001
	IntIndexOutOfRange Code = 5002
	IntNotData         Code = 5003
	IntUntypedValue    Code = 5004
	IntUnnamedType     Code = 5005
	IntUnknownSymbol   Code = 5006
	IntBadHandle       Code = 5007
	IntUnhandledKind   Code = 5008

	// I/O around the CLI
	IOLoadFileError Code = 6001
	IOConfigError   Code = 6002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		LexInfo:                  "Lexical information",
		LexUnknownChar:           "Unknown character",
		LexUnterminatedString:    "Unterminated string literal",
		LexUnterminatedLifetime:  "Lifetime without a name",
		LexUnterminatedAttribute: "Unterminated attribute",
		SynInfo:                  "Syntax information",
		SynUnexpectedToken:       "Unexpected token",
		SynExpectIdentifier:      "Expected identifier",
		SynExpectType:            "Expected type",
		SynExpectBound:           "Expected trait or lifetime bound",
		SynExpectLifetime:        "Expected lifetime",
		SynUnclosedAngle:         "Unclosed angle bracket",
		SynUnclosedParen:         "Unclosed parenthesis",
		SynUnclosedBrace:         "Unclosed brace",
		SynTrailingInput:         "Unexpected input after fragment",
		SynExpectColon:           "Expected ':'",
		SynExpectDataDecl:        "Expected struct or enum declaration",
		SynUnclosedBracket:       "Unclosed square bracket",
		IRInfo:                   "IR information",
		IRUnknownName:            "Unknown generic parameter name",
		IRNotALifetime:           "Name does not refer to a lifetime",
		IRNotATypeParam:          "Name does not refer to a type parameter",
		IRDuplicateParam:         "Generic parameter declared twice",
		IRForeignContext:         "Handle belongs to another context",
		UnsConstParam:            "Const generic parameters are not supported",
		UnsConstArgument:         "Const generic arguments are not supported",
		UnsEqPredicate:           "Equality predicates are not supported",
		UnsTypeShape:             "Type syntax is not supported",
		UnsQualifiedSelf:         "Qualified self paths are not supported",
		IntNotATuple:             "Type is not tuple-shaped",
		IntIndexOutOfRange:       "Index out of range",
		IntNotData:               "Not a data structure",
		IntUntypedValue:          "Value kind carries no type",
		IntUnnamedType:           "Type kind has no printable name",
		IntUnknownSymbol:         "Symbol missing from substitution",
		IntBadHandle:             "Invalid node handle",
		IntUnhandledKind:         "Unhandled node kind",
		IOLoadFileError:          "Failed to load file",
		IOConfigError:            "Invalid configuration",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("UNS%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("INT%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
