package compiler

import "github.com/mna/wisp/lang/token"

// precedence orders binary operators from loosest to tightest binding, the
// classic Pratt-parsing precedence ladder (spec §4.2).
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(p *parser, canAssign bool)

type rule struct {
	prefix parseFn
	infix  parseFn
	prec   precedence
}

var rules map[token.Token]rule

func init() {
	rules = map[token.Token]rule{
		token.LPAREN:  {prefix: (*parser).grouping, infix: (*parser).call, prec: precCall},
		token.DOT:     {infix: (*parser).dot, prec: precCall},
		token.MINUS:   {prefix: (*parser).unary, infix: (*parser).binary, prec: precTerm},
		token.PLUS:    {infix: (*parser).binary, prec: precTerm},
		token.SLASH:   {infix: (*parser).binary, prec: precFactor},
		token.STAR:    {infix: (*parser).binary, prec: precFactor},
		token.BANG:    {prefix: (*parser).unary},
		token.BANG_EQ: {infix: (*parser).binary, prec: precEquality},
		token.EQ_EQ:   {infix: (*parser).binary, prec: precEquality},
		token.GT:      {infix: (*parser).binary, prec: precComparison},
		token.GT_EQ:   {infix: (*parser).binary, prec: precComparison},
		token.LT:      {infix: (*parser).binary, prec: precComparison},
		token.LT_EQ:   {infix: (*parser).binary, prec: precComparison},
		token.IDENT:   {prefix: (*parser).variable},
		token.STRING:  {prefix: (*parser).string},
		token.NUMBER:  {prefix: (*parser).number},
		token.AND:     {infix: (*parser).and_, prec: precAnd},
		token.OR:      {infix: (*parser).or_, prec: precOr},
		token.FALSE:   {prefix: (*parser).literal},
		token.NIL:     {prefix: (*parser).literal},
		token.TRUE:    {prefix: (*parser).literal},
		token.SUPER:   {prefix: (*parser).super_},
		token.THIS:    {prefix: (*parser).this_},
	}
}

func getRule(tok token.Token) rule { return rules[tok] }
