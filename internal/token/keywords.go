package token

var keywords = map[string]Kind{
	"mut":    KwMut,
	"dyn":    KwDyn,
	"for":    KwFor,
	"where":  KwWhere,
	"const":  KwConst,
	"struct": KwStruct,
	"enum":   KwEnum,
	"pub":    KwPub,
	"impl":   KwImpl,
	"fn":     KwFn,
}

// LookupKeyword reports whether ident is a reserved word of the fragment grammar.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
