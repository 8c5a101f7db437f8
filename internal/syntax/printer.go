package syntax

import (
	"fmt"
	"strings"
)

// Print renders a node as single-line source text.
func Print(n Node) string {
	return Render(Tokens(n))
}

// PrintFile renders f laid out by FormatTokens.
func PrintFile(f *File) string {
	var p printer
	p.attrs(f.Attrs)
	p.items(f.Items)
	return FormatTokens(p.toks)
}

// Tokens returns the token stream a node prints as. The tokens carry no spans.
func Tokens(n Node) []Token {
	var p printer
	p.node(n)
	return p.toks
}

// PrintImplGenerics renders g as used after `impl`: parameters with bounds
// and without defaults.
func PrintImplGenerics(g Generics) string {
	var p printer
	p.generics(g, false)
	return Render(p.toks)
}

// PrintTypeGenerics renders g as used after a type name: parameter names only.
func PrintTypeGenerics(g Generics) string {
	var p printer
	p.typeGenerics(g)
	return Render(p.toks)
}

// PrintWhere renders the where clause of g, or nothing.
func PrintWhere(g Generics) string {
	var p printer
	p.where(g.Where)
	return Render(p.toks)
}

type printer struct {
	toks []Token
}

func (p *printer) word(text string) {
	p.toks = append(p.toks, Token{Kind: IdentToken, Text: text})
}

func (p *printer) punct(text string) {
	p.toks = append(p.toks, Token{Kind: PunctToken, Text: text})
}

func (p *printer) lifetime(l Lifetime) {
	p.toks = append(p.toks, Token{Kind: LifetimeToken, Text: l.Name})
}

func (p *printer) raw(toks []Token) {
	for _, t := range toks {
		p.toks = append(p.toks, Token{Kind: t.Kind, Text: t.Text})
	}
}

func (p *printer) group(d Delimiter, toks []Token) {
	open, close := "", ""
	switch d {
	case DelimParen:
		open, close = "(", ")"
	case DelimBracket:
		open, close = "[", "]"
	case DelimBrace:
		open, close = "{", "}"
	}
	if open != "" {
		p.punct(open)
	}
	p.raw(toks)
	if close != "" {
		p.punct(close)
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case Ident:
		p.word(n.Name)
	case *Ident:
		p.word(n.Name)
	case Lifetime:
		p.lifetime(n)
	case *Lifetime:
		p.lifetime(*n)
	case Visibility:
		p.vis(n)
	case Generics:
		p.generics(n, true)
	case *Generics:
		p.generics(*n, true)
	case *WhereClause:
		p.where(n)
	case *Attribute:
		p.attr(n)
	case *Macro:
		p.macro(n)
	case *Expr:
		p.raw(n.Tokens)
	case *Block:
		p.group(DelimBrace, n.Tokens)
	case *Abi:
		p.abi(n)
	case *Path:
		p.path(n)
	case PathArguments:
		p.pathArgs(n)
	case GenericArgument:
		p.genericArg(n)
	case Type:
		p.typ(n)
	case TypeParamBound:
		p.bound(n)
	case GenericParam:
		p.genericParam(n, true)
	case WherePredicate:
		p.predicate(n)
	case *Signature:
		p.signature(n)
	case FnArg:
		p.fnArg(n)
	case *Pat:
		p.pat(n)
	case Item:
		p.item(n)
	case TraitItem:
		p.traitItem(n)
	case ImplItem:
		p.implItem(n)
	case ForeignItem:
		p.foreignItem(n)
	default:
		panic(fmt.Sprintf("syntax: cannot print %T", n))
	}
}

func (p *printer) attrs(attrs []*Attribute) {
	for _, a := range attrs {
		p.attr(a)
	}
}

func (p *printer) attr(a *Attribute) {
	p.punct("#")
	if a.Inner {
		p.punct("!")
	}
	p.punct("[")
	p.path(a.Path)
	if a.Delim == DelimNone {
		p.raw(a.Tokens)
	} else {
		p.group(a.Delim, a.Tokens)
	}
	p.punct("]")
}

func (p *printer) macro(m *Macro) {
	p.path(m.Path)
	p.punct("!")
	p.group(m.Delim, m.Tokens)
}

func (p *printer) vis(v Visibility) {
	switch v.Kind {
	case VisPublic:
		p.word("pub")
	case VisCrate:
		p.word("pub")
		p.punct("(")
		p.word("crate")
		p.punct(")")
	case VisRestricted:
		p.word("pub")
		p.punct("(")
		if v.In {
			p.word("in")
		}
		p.path(v.Path)
		p.punct(")")
	}
}

func (p *printer) abi(a *Abi) {
	p.word("extern")
	if a.Name != "" {
		p.toks = append(p.toks, Token{Kind: LiteralToken, Text: a.Name})
	}
}

func (p *printer) path(path *Path) {
	if path.LeadingColon {
		p.punct("::")
	}
	for i, seg := range path.Segments {
		if i > 0 {
			p.punct("::")
		}
		p.word(seg.Ident.Name)
		if seg.Arguments != nil {
			p.pathArgs(seg.Arguments)
		}
	}
}

func (p *printer) pathArgs(args PathArguments) {
	switch args := args.(type) {
	case *AngleBracketedArgs:
		if args.Colon2 {
			p.punct("::")
		}
		p.punct("<")
		for i, a := range args.Args {
			if i > 0 {
				p.punct(",")
			}
			p.genericArg(a)
		}
		p.punct(">")
	case *ParenthesizedArgs:
		p.punct("(")
		p.types(args.Inputs)
		p.punct(")")
		if args.Output != nil {
			p.punct("->")
			p.typ(args.Output)
		}
	}
}

func (p *printer) genericArg(a GenericArgument) {
	switch a := a.(type) {
	case *LifetimeArg:
		p.lifetime(a.Lifetime)
	case *TypeArg:
		p.typ(a.Type)
	case *BindingArg:
		p.word(a.Ident.Name)
		p.punct("=")
		p.typ(a.Type)
	case *ConstraintArg:
		p.word(a.Ident.Name)
		p.punct(":")
		p.bounds(a.Bounds)
	case *ConstArg:
		p.raw(a.Expr.Tokens)
	}
}

func (p *printer) types(types []Type) {
	for i, t := range types {
		if i > 0 {
			p.punct(",")
		}
		p.typ(t)
	}
}

func (p *printer) typ(t Type) {
	switch t := t.(type) {
	case *SliceType:
		p.punct("[")
		p.typ(t.Elem)
		p.punct("]")
	case *ArrayType:
		p.punct("[")
		p.typ(t.Elem)
		p.punct(";")
		p.raw(t.Len.Tokens)
		p.punct("]")
	case *PtrType:
		p.punct("*")
		if t.Mutable {
			p.word("mut")
		} else {
			p.word("const")
		}
		p.typ(t.Elem)
	case *RefType:
		p.punct("&")
		if t.Lifetime != nil {
			p.lifetime(*t.Lifetime)
		}
		if t.Mutable {
			p.word("mut")
		}
		p.typ(t.Elem)
	case *BareFnType:
		if t.Lifetimes != nil {
			p.boundLifetimes(t.Lifetimes)
		}
		if t.Unsafe {
			p.word("unsafe")
		}
		if t.Abi != nil {
			p.abi(t.Abi)
		}
		p.word("fn")
		p.punct("(")
		for i, arg := range t.Inputs {
			if i > 0 {
				p.punct(",")
			}
			if arg.Name != nil {
				p.word(arg.Name.Name)
				p.punct(":")
			}
			p.typ(arg.Type)
		}
		if t.Variadic {
			if len(t.Inputs) > 0 {
				p.punct(",")
			}
			p.punct("...")
		}
		p.punct(")")
		if t.Output != nil {
			p.punct("->")
			p.typ(t.Output)
		}
	case *TupleType:
		p.punct("(")
		p.types(t.Elems)
		if len(t.Elems) == 1 {
			p.punct(",")
		}
		p.punct(")")
	case *PathType:
		if t.QSelf != nil {
			p.punct("<")
			p.typ(t.QSelf.Type)
			if t.QSelf.Trait != nil {
				p.word("as")
				p.path(t.QSelf.Trait)
			}
			p.punct(">")
			p.punct("::")
		}
		p.path(t.Path)
	case *TraitObjectType:
		if t.Dyn {
			p.word("dyn")
		}
		p.bounds(t.Bounds)
	case *ImplTraitType:
		p.word("impl")
		p.bounds(t.Bounds)
	case *ParenType:
		p.punct("(")
		p.typ(t.Elem)
		p.punct(")")
	case *GroupType:
		p.typ(t.Elem)
	case *InferType:
		p.word("_")
	case *NeverType:
		p.punct("!")
	case *MacroType:
		p.macro(t.Mac)
	case *VerbatimType:
		p.raw(t.Tokens)
	}
}

func (p *printer) boundLifetimes(bl *BoundLifetimes) {
	p.word("for")
	p.punct("<")
	for i, lp := range bl.Lifetimes {
		if i > 0 {
			p.punct(",")
		}
		p.genericParam(lp, true)
	}
	p.punct(">")
}

func (p *printer) bounds(bounds []TypeParamBound) {
	for i, b := range bounds {
		if i > 0 {
			p.punct("+")
		}
		p.bound(b)
	}
}

func (p *printer) bound(b TypeParamBound) {
	switch b := b.(type) {
	case *LifetimeBound:
		p.lifetime(b.Lifetime)
	case *TraitBound:
		if b.Paren {
			p.punct("(")
		}
		if b.Maybe {
			p.punct("?")
		}
		if b.Lifetimes != nil {
			p.boundLifetimes(b.Lifetimes)
		}
		p.path(b.Path)
		if b.Paren {
			p.punct(")")
		}
	}
}

// generics prints <params> or nothing. The where clause is printed separately.
func (p *printer) generics(g Generics, defaults bool) {
	if !g.Angled && len(g.Params) == 0 {
		return
	}
	p.punct("<")
	for i, param := range g.Params {
		if i > 0 {
			p.punct(",")
		}
		p.genericParam(param, defaults)
	}
	p.punct(">")
}

func (p *printer) typeGenerics(g Generics) {
	if !g.Angled && len(g.Params) == 0 {
		return
	}
	p.punct("<")
	for i, param := range g.Params {
		if i > 0 {
			p.punct(",")
		}
		switch param := param.(type) {
		case *TypeParam:
			p.word(param.Ident.Name)
		case *LifetimeParam:
			p.lifetime(param.Lifetime)
		case *ConstParam:
			p.word(param.Ident.Name)
		}
	}
	p.punct(">")
}

func (p *printer) genericParam(gp GenericParam, defaults bool) {
	switch gp := gp.(type) {
	case *TypeParam:
		p.attrs(gp.Attrs)
		p.word(gp.Ident.Name)
		if len(gp.Bounds) > 0 {
			p.punct(":")
			p.bounds(gp.Bounds)
		}
		if defaults && gp.Default != nil {
			p.punct("=")
			p.typ(gp.Default)
		}
	case *LifetimeParam:
		p.attrs(gp.Attrs)
		p.lifetime(gp.Lifetime)
		p.lifetimeBounds(gp.Bounds)
	case *ConstParam:
		p.attrs(gp.Attrs)
		p.word("const")
		p.word(gp.Ident.Name)
		p.punct(":")
		p.typ(gp.Type)
		if defaults && gp.Default != nil {
			p.punct("=")
			p.raw(gp.Default.Tokens)
		}
	}
}

func (p *printer) lifetimeBounds(bounds []Lifetime) {
	for i, l := range bounds {
		if i == 0 {
			p.punct(":")
		} else {
			p.punct("+")
		}
		p.lifetime(l)
	}
}

func (p *printer) where(w *WhereClause) {
	if w == nil || len(w.Predicates) == 0 {
		return
	}
	p.word("where")
	for i, pred := range w.Predicates {
		if i > 0 {
			p.punct(",")
		}
		p.predicate(pred)
	}
}

func (p *printer) predicate(pred WherePredicate) {
	switch pred := pred.(type) {
	case *PredicateType:
		if pred.Lifetimes != nil {
			p.boundLifetimes(pred.Lifetimes)
		}
		p.typ(pred.Bounded)
		p.punct(":")
		p.bounds(pred.Bounds)
	case *PredicateLifetime:
		p.lifetime(pred.Lifetime)
		p.lifetimeBounds(pred.Bounds)
	}
}

func (p *printer) signature(sig *Signature) {
	if sig.Constness {
		p.word("const")
	}
	if sig.Asyncness {
		p.word("async")
	}
	if sig.Unsafety {
		p.word("unsafe")
	}
	if sig.Abi != nil {
		p.abi(sig.Abi)
	}
	p.word("fn")
	p.word(sig.Ident.Name)
	p.generics(sig.Generics, true)
	p.punct("(")
	for i, arg := range sig.Inputs {
		if i > 0 {
			p.punct(",")
		}
		p.fnArg(arg)
	}
	if sig.Variadic != nil {
		if len(sig.Inputs) > 0 {
			p.punct(",")
		}
		p.punct("...")
	}
	p.punct(")")
	if sig.Output != nil {
		p.punct("->")
		p.typ(sig.Output)
	}
	p.where(sig.Generics.Where)
}

func (p *printer) fnArg(arg FnArg) {
	switch arg := arg.(type) {
	case *Receiver:
		p.attrs(arg.Attrs)
		if arg.Reference {
			p.punct("&")
			if arg.Lifetime != nil {
				p.lifetime(*arg.Lifetime)
			}
		}
		if arg.Mutable {
			p.word("mut")
		}
		p.word("self")
		if arg.Type != nil {
			p.punct(":")
			p.typ(arg.Type)
		}
	case *PatType:
		p.attrs(arg.Attrs)
		p.pat(arg.Pat)
		p.punct(":")
		p.typ(arg.Type)
	}
}

func (p *printer) pat(pat *Pat) {
	if pat.ByRef {
		p.word("ref")
	}
	if pat.Mutable {
		p.word("mut")
	}
	p.word(pat.Ident.Name)
}

func (p *printer) items(items []Item) {
	for _, item := range items {
		p.item(item)
	}
}

func (p *printer) item(item Item) {
	switch item := item.(type) {
	case *ItemTrait:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		if item.Unsafety {
			p.word("unsafe")
		}
		if item.Auto {
			p.word("auto")
		}
		p.word("trait")
		p.word(item.Ident.Name)
		p.generics(item.Generics, true)
		if len(item.Supertraits) > 0 {
			p.punct(":")
			p.bounds(item.Supertraits)
		}
		p.where(item.Generics.Where)
		p.punct("{")
		for _, ti := range item.Items {
			p.traitItem(ti)
		}
		p.punct("}")
	case *ItemImpl:
		p.attrs(item.Attrs)
		if item.Defaultness {
			p.word("default")
		}
		if item.Unsafety {
			p.word("unsafe")
		}
		p.word("impl")
		p.generics(item.Generics, true)
		if item.Trait != nil {
			if item.Trait.Negative {
				p.punct("!")
			}
			p.path(item.Trait.Path)
			p.word("for")
		}
		p.typ(item.SelfType)
		p.where(item.Generics.Where)
		p.punct("{")
		for _, ii := range item.Items {
			p.implItem(ii)
		}
		p.punct("}")
	case *ItemForeignMod:
		p.attrs(item.Attrs)
		if item.Unsafety {
			p.word("unsafe")
		}
		p.abi(item.Abi)
		p.punct("{")
		for _, fi := range item.Items {
			p.foreignItem(fi)
		}
		p.punct("}")
	case *ItemMod:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.word("mod")
		p.word(item.Ident.Name)
		if !item.Braced {
			p.punct(";")
			return
		}
		p.punct("{")
		p.items(item.Content)
		p.punct("}")
	case *ItemFn:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.signature(item.Sig)
		p.group(DelimBrace, item.Block.Tokens)
	case *ItemStatic:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.word("static")
		if item.Mutable {
			p.word("mut")
		}
		p.word(item.Ident.Name)
		p.punct(":")
		p.typ(item.Type)
		p.punct("=")
		p.raw(item.Expr.Tokens)
		p.punct(";")
	case *ItemConst:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.word("const")
		p.word(item.Ident.Name)
		p.punct(":")
		p.typ(item.Type)
		p.punct("=")
		p.raw(item.Expr.Tokens)
		p.punct(";")
	case *ItemType:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.word("type")
		p.word(item.Ident.Name)
		p.generics(item.Generics, true)
		p.where(item.Generics.Where)
		if item.Type != nil {
			p.punct("=")
			p.typ(item.Type)
		}
		p.punct(";")
	case *ItemTraitAlias:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.word("trait")
		p.word(item.Ident.Name)
		p.generics(item.Generics, true)
		p.punct("=")
		p.bounds(item.Bounds)
		p.where(item.Generics.Where)
		p.punct(";")
	case *ItemUse:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.word("use")
		p.raw(item.Tokens)
		p.punct(";")
	case *ItemExternCrate:
		p.attrs(item.Attrs)
		p.vis(item.Vis)
		p.word("extern")
		p.word("crate")
		p.word(item.Ident.Name)
		if item.Rename != nil {
			p.word("as")
			p.word(item.Rename.Name)
		}
		p.punct(";")
	case *ItemStruct:
		p.adt("struct", item.Attrs, item.Vis, item.Ident, item.Generics, item.Body)
	case *ItemEnum:
		p.adt("enum", item.Attrs, item.Vis, item.Ident, item.Generics, item.Body)
	case *ItemUnion:
		p.adt("union", item.Attrs, item.Vis, item.Ident, item.Generics, item.Body)
	case *ItemMacro:
		p.attrs(item.Attrs)
		p.path(item.Mac.Path)
		p.punct("!")
		if item.Ident != nil {
			p.word(item.Ident.Name)
		}
		p.group(item.Mac.Delim, item.Mac.Tokens)
		if item.Semi {
			p.punct(";")
		}
	case *ItemVerbatim:
		p.raw(item.Tokens)
	}
}

func (p *printer) adt(keyword string, attrs []*Attribute, vis Visibility, ident Ident, g Generics, body []Token) {
	p.attrs(attrs)
	p.vis(vis)
	p.word(keyword)
	p.word(ident.Name)
	p.generics(g, true)
	p.raw(body)
}

func (p *printer) traitItem(ti TraitItem) {
	switch ti := ti.(type) {
	case *TraitItemConst:
		p.attrs(ti.Attrs)
		p.word("const")
		p.word(ti.Ident.Name)
		p.punct(":")
		p.typ(ti.Type)
		if ti.Default != nil {
			p.punct("=")
			p.raw(ti.Default.Tokens)
		}
		p.punct(";")
	case *TraitItemMethod:
		p.attrs(ti.Attrs)
		p.signature(ti.Sig)
		if ti.Default != nil {
			p.group(DelimBrace, ti.Default.Tokens)
		} else {
			p.punct(";")
		}
	case *TraitItemType:
		p.attrs(ti.Attrs)
		p.word("type")
		p.word(ti.Ident.Name)
		p.generics(ti.Generics, true)
		if len(ti.Bounds) > 0 {
			p.punct(":")
			p.bounds(ti.Bounds)
		}
		p.where(ti.Generics.Where)
		if ti.Default != nil {
			p.punct("=")
			p.typ(ti.Default)
		}
		p.punct(";")
	case *TraitItemMacro:
		p.attrs(ti.Attrs)
		p.macroStmt(ti.Mac)
	}
}

func (p *printer) macroStmt(m *Macro) {
	p.macro(m)
	if m.Delim != DelimBrace {
		p.punct(";")
	}
}

func (p *printer) implItem(ii ImplItem) {
	switch ii := ii.(type) {
	case *ImplItemConst:
		p.attrs(ii.Attrs)
		p.vis(ii.Vis)
		p.word("const")
		p.word(ii.Ident.Name)
		p.punct(":")
		p.typ(ii.Type)
		p.punct("=")
		p.raw(ii.Expr.Tokens)
		p.punct(";")
	case *ImplItemMethod:
		p.attrs(ii.Attrs)
		p.vis(ii.Vis)
		if ii.Defaultness {
			p.word("default")
		}
		p.signature(ii.Sig)
		p.group(DelimBrace, ii.Block.Tokens)
	case *ImplItemType:
		p.attrs(ii.Attrs)
		p.vis(ii.Vis)
		p.word("type")
		p.word(ii.Ident.Name)
		p.generics(ii.Generics, true)
		p.punct("=")
		p.typ(ii.Type)
		p.where(ii.Generics.Where)
		p.punct(";")
	case *ImplItemMacro:
		p.attrs(ii.Attrs)
		p.macroStmt(ii.Mac)
	}
}

func (p *printer) foreignItem(fi ForeignItem) {
	switch fi := fi.(type) {
	case *ForeignItemFn:
		p.attrs(fi.Attrs)
		p.vis(fi.Vis)
		p.signature(fi.Sig)
		p.punct(";")
	case *ForeignItemStatic:
		p.attrs(fi.Attrs)
		p.vis(fi.Vis)
		p.word("static")
		if fi.Mutable {
			p.word("mut")
		}
		p.word(fi.Ident.Name)
		p.punct(":")
		p.typ(fi.Type)
		p.punct(";")
	case *ForeignItemType:
		p.attrs(fi.Attrs)
		p.vis(fi.Vis)
		p.word("type")
		p.word(fi.Ident.Name)
		p.punct(";")
	case *ForeignItemMacro:
		p.attrs(fi.Attrs)
		p.macroStmt(fi.Mac)
	case *ForeignItemVerbatim:
		p.raw(fi.Tokens)
	}
}

// Render joins tokens into one line of source text.
func Render(toks []Token) string {
	var (
		sb strings.Builder
		sp spacer
	)
	prev := Token{Kind: EOF}
	for i, t := range toks {
		if sp.space(prev, t, peekToken(toks, i+1)) && i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
		prev = t
	}
	return sb.String()
}

// spacer applies needSpace while tracking generic brackets, so that the
// parameter list of an impl is kept apart from a trait path starting with ::.
type spacer struct {
	angles    []bool // one per open <, true when it follows impl
	implClose bool   // the previous token closed the generics of an impl
}

func (sp *spacer) space(prev, cur, next Token) bool {
	space := needSpace(prev, cur, next) || (sp.implClose && cur.Is("::"))

	sp.implClose = false
	switch {
	case cur.Is("<"):
		sp.angles = append(sp.angles, prev.Is("impl"))
	case cur.Is(">") && len(sp.angles) > 0:
		sp.implClose = sp.angles[len(sp.angles)-1]
		sp.angles = sp.angles[:len(sp.angles)-1]
	}
	return space
}

func peekToken(toks []Token, i int) Token {
	if i < len(toks) {
		return toks[i]
	}
	return Token{Kind: EOF}
}

// needSpace decides whether a space separates prev and cur.
func needSpace(prev, cur, next Token) bool {
	if prev.Kind == PunctToken {
		switch prev.Text {
		case "(", "[", "::", "#", ".", "&", "*", "<", "?":
			return false
		case "!":
			// name! { ... } keeps its space, name!(...) does not
			return cur.Is("{")
		case "{":
			return !cur.Is("}")
		}
	}

	if cur.Kind == PunctToken {
		switch cur.Text {
		case ")", "]", ",", ";", ".", ":", ">":
			return false
		case "::":
			return !(isPathWord(prev) || prev.Is(">"))
		case "(":
			return !(isPathWord(prev) || prev.Is("fn") || prev.Is("pub") || prev.Is(">"))
		case "<":
			return prev.Kind != IdentToken
		case "!":
			// path!(...) but not `impl !Trait`
			return !(prev.Kind == IdentToken && !IsKeyword(prev.Text) && isOpenDelim(next))
		}
	}
	return true
}

// isPathWord reports whether t is an identifier that can end a path segment.
func isPathWord(t Token) bool {
	return t.Kind == IdentToken && !IsKeyword(t.Text)
}

func isOpenDelim(t Token) bool {
	return t.Kind == PunctToken && closerOf(t.Text) != ""
}
