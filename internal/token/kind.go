package token

import "fmt"

// Kind represents the category of a fragment token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the fragment.
	EOF

	Ident     // T, Vec, std
	Lifetime  // 'a, 'static
	IntLit    // 42
	StringLit // "text"

	KwMut    // mut
	KwDyn    // dyn
	KwFor    // for
	KwWhere  // where
	KwConst  // const
	KwStruct // struct
	KwEnum   // enum
	KwPub    // pub
	KwImpl   // impl
	KwFn     // fn

	Lt         // <
	Gt         // >
	Comma      // ,
	Colon      // :
	ColonColon // ::
	Semicolon  // ;
	Plus       // +
	Amp        // &
	Star       // *
	Eq         // =
	Arrow      // ->
	Hash       // #
	Bang       // !
	Question   // ?
	Underscore // _
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "EOF",
	Ident:      "identifier",
	Lifetime:   "lifetime",
	IntLit:     "integer",
	StringLit:  "string",
	KwMut:      "mut",
	KwDyn:      "dyn",
	KwFor:      "for",
	KwWhere:    "where",
	KwConst:    "const",
	KwStruct:   "struct",
	KwEnum:     "enum",
	KwPub:      "pub",
	KwImpl:     "impl",
	KwFn:       "fn",
	Lt:         "<",
	Gt:         ">",
	Comma:      ",",
	Colon:      ":",
	ColonColon: "::",
	Semicolon:  ";",
	Plus:       "+",
	Amp:        "&",
	Star:       "*",
	Eq:         "=",
	Arrow:      "->",
	Hash:       "#",
	Bang:       "!",
	Question:   "?",
	Underscore: "_",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}
