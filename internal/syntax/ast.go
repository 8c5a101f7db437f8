package syntax

// Node is implemented by every syntax tree node.
type Node interface {
	Span() Span
}

// Ident is a plain identifier.
type Ident struct {
	Name  string
	Range Span
}

func (i Ident) Span() Span { return i.Range }

// NewIdent returns an identifier without a source location.
func NewIdent(name string) Ident {
	return Ident{Name: name}
}

// Lifetime is a lifetime such as 'a. Name includes the leading quote.
type Lifetime struct {
	Name  string
	Range Span
}

func (l Lifetime) Span() Span { return l.Range }

// Delimiter is the bracket kind around a token group.
type Delimiter int

const (
	DelimNone Delimiter = iota
	DelimParen
	DelimBracket
	DelimBrace
)

// Attribute is #[path ...] or #![path ...].
type Attribute struct {
	Inner  bool
	Path   *Path
	Delim  Delimiter
	Tokens []Token // arguments inside the delimiter, or the raw tail for DelimNone
	Range  Span
}

func (a *Attribute) Span() Span { return a.Range }

// Macro is a macro invocation path!(...).
type Macro struct {
	Path   *Path
	Delim  Delimiter
	Tokens []Token
	Range  Span
}

func (m *Macro) Span() Span { return m.Range }

// Expr is an expression kept as raw tokens; expressions are never analysed.
type Expr struct {
	Tokens []Token
	Range  Span
}

func (e *Expr) Span() Span { return e.Range }

// Block is a function body kept as the raw tokens between its braces.
type Block struct {
	Tokens []Token
	Range  Span
}

func (b *Block) Span() Span { return b.Range }

// VisKind is the kind of a visibility qualifier.
type VisKind int

const (
	VisInherited VisKind = iota
	VisPublic
	VisCrate      // pub(crate)
	VisRestricted // pub(self), pub(super), pub(in path)
)

// Visibility is an item's visibility qualifier.
type Visibility struct {
	Kind  VisKind
	In    bool  // pub(in path)
	Path  *Path // set for VisRestricted
	Range Span
}

func (v Visibility) Span() Span { return v.Range }

// Public returns the `pub` visibility.
func Public() Visibility {
	return Visibility{Kind: VisPublic}
}

// Abi is the extern "C" qualifier. Name is the quoted literal or empty.
type Abi struct {
	Name  string
	Range Span
}

func (a *Abi) Span() Span { return a.Range }

// Path is a possibly qualified path like ::std::vec::Vec<T>.
type Path struct {
	LeadingColon bool
	Segments     []*PathSegment
	Range        Span
}

func (p *Path) Span() Span { return p.Range }

// IsIdent reports whether p is the single identifier name with no arguments.
func (p *Path) IsIdent(name string) bool {
	id, ok := p.GetIdent()
	return ok && id.Name == name
}

// GetIdent returns the identifier of a single-segment path without arguments.
func (p *Path) GetIdent() (Ident, bool) {
	if p == nil || p.LeadingColon || len(p.Segments) != 1 || p.Segments[0].Arguments != nil {
		return Ident{}, false
	}
	return p.Segments[0].Ident, true
}

// PathFromIdent returns a single-segment path.
func PathFromIdent(id Ident) *Path {
	return &Path{Segments: []*PathSegment{{Ident: id}}, Range: id.Range}
}

// PathSegment is one segment of a path.
type PathSegment struct {
	Ident     Ident
	Arguments PathArguments // nil when the segment has no arguments
}

// PathArguments is *AngleBracketedArgs or *ParenthesizedArgs.
type PathArguments interface {
	Node
	pathArguments()
}

// AngleBracketedArgs is <A, 'a, Item = B>, optionally written with ::<.
type AngleBracketedArgs struct {
	Colon2 bool
	Args   []GenericArgument
	Range  Span
}

// ParenthesizedArgs is (A, B) -> C as used by the Fn traits.
type ParenthesizedArgs struct {
	Inputs []Type
	Output Type // nil for the default return type
	Range  Span
}

func (a *AngleBracketedArgs) Span() Span { return a.Range }
func (a *ParenthesizedArgs) Span() Span  { return a.Range }

func (*AngleBracketedArgs) pathArguments() {}
func (*ParenthesizedArgs) pathArguments()  {}

// GenericArgument is an argument inside angle brackets.
type GenericArgument interface {
	Node
	genericArgument()
}

type (
	LifetimeArg struct {
		Lifetime Lifetime
	}

	TypeArg struct {
		Type Type
	}

	// BindingArg is Item = Type.
	BindingArg struct {
		Ident Ident
		Type  Type
	}

	// ConstraintArg is Item: Bound.
	ConstraintArg struct {
		Ident  Ident
		Bounds []TypeParamBound
		Range  Span
	}

	ConstArg struct {
		Expr *Expr
	}
)

func (a *LifetimeArg) Span() Span   { return a.Lifetime.Range }
func (a *TypeArg) Span() Span       { return a.Type.Span() }
func (a *BindingArg) Span() Span    { return a.Ident.Range.Join(a.Type.Span()) }
func (a *ConstraintArg) Span() Span { return a.Range }
func (a *ConstArg) Span() Span      { return a.Expr.Range }

func (*LifetimeArg) genericArgument()   {}
func (*TypeArg) genericArgument()       {}
func (*BindingArg) genericArgument()    {}
func (*ConstraintArg) genericArgument() {}
func (*ConstArg) genericArgument()      {}

// Type is a type expression. The set of implementations is closed.
type Type interface {
	Node
	typeNode()
}

type (
	// SliceType is [T].
	SliceType struct {
		Elem  Type
		Range Span
	}

	// ArrayType is [T; N].
	ArrayType struct {
		Elem  Type
		Len   *Expr
		Range Span
	}

	// PtrType is *const T or *mut T.
	PtrType struct {
		Mutable bool
		Elem    Type
		Range   Span
	}

	// RefType is &'a mut T.
	RefType struct {
		Lifetime *Lifetime
		Mutable  bool
		Elem     Type
		Range    Span
	}

	// BareFnType is for<'a> unsafe extern "C" fn(A, B) -> C.
	BareFnType struct {
		Lifetimes *BoundLifetimes
		Unsafe    bool
		Abi       *Abi
		Inputs    []*BareFnArg
		Variadic  bool
		Output    Type // nil for the default return type
		Range     Span
	}

	// TupleType is (A, B). The unit type has no elements.
	TupleType struct {
		Elems []Type
		Range Span
	}

	// PathType is a named type, optionally qualified: <T as Trait>::Assoc.
	PathType struct {
		QSelf *QSelf
		Path  *Path
		Range Span
	}

	// TraitObjectType is dyn Bound + Bound.
	TraitObjectType struct {
		Dyn    bool
		Bounds []TypeParamBound
		Range  Span
	}

	// ImplTraitType is impl Bound + Bound.
	ImplTraitType struct {
		Bounds []TypeParamBound
		Range  Span
	}

	// ParenType is (T).
	ParenType struct {
		Elem  Type
		Range Span
	}

	// GroupType is a type wrapped in invisible delimiters. The parser never
	// produces it; it appears when types are spliced in by other tools.
	GroupType struct {
		Elem  Type
		Range Span
	}

	// InferType is _.
	InferType struct {
		Range Span
	}

	// NeverType is !.
	NeverType struct {
		Range Span
	}

	// MacroType is a type produced by a macro invocation.
	MacroType struct {
		Mac *Macro
	}

	// VerbatimType is a type the parser could not make sense of.
	VerbatimType struct {
		Tokens []Token
		Range  Span
	}
)

// QSelf is the <T as Trait> prefix of a qualified path. Trait is nil for <T>::X.
type QSelf struct {
	Type  Type
	Trait *Path
}

// BareFnArg is an argument of a bare function type. Name may be nil.
type BareFnArg struct {
	Name *Ident
	Type Type
}

// BoundLifetimes is for<'a, 'b>.
type BoundLifetimes struct {
	Lifetimes []*LifetimeParam
	Range     Span
}

func (t *SliceType) Span() Span       { return t.Range }
func (t *ArrayType) Span() Span       { return t.Range }
func (t *PtrType) Span() Span         { return t.Range }
func (t *RefType) Span() Span         { return t.Range }
func (t *BareFnType) Span() Span      { return t.Range }
func (t *TupleType) Span() Span       { return t.Range }
func (t *PathType) Span() Span        { return t.Range }
func (t *TraitObjectType) Span() Span { return t.Range }
func (t *ImplTraitType) Span() Span   { return t.Range }
func (t *ParenType) Span() Span       { return t.Range }
func (t *GroupType) Span() Span       { return t.Range }
func (t *InferType) Span() Span       { return t.Range }
func (t *NeverType) Span() Span       { return t.Range }
func (t *MacroType) Span() Span       { return t.Mac.Range }
func (t *VerbatimType) Span() Span    { return t.Range }

func (*SliceType) typeNode()       {}
func (*ArrayType) typeNode()       {}
func (*PtrType) typeNode()         {}
func (*RefType) typeNode()         {}
func (*BareFnType) typeNode()      {}
func (*TupleType) typeNode()       {}
func (*PathType) typeNode()        {}
func (*TraitObjectType) typeNode() {}
func (*ImplTraitType) typeNode()   {}
func (*ParenType) typeNode()       {}
func (*GroupType) typeNode()       {}
func (*InferType) typeNode()       {}
func (*NeverType) typeNode()       {}
func (*MacroType) typeNode()       {}
func (*VerbatimType) typeNode()    {}

// TypeFromPath wraps a path into a path type.
func TypeFromPath(p *Path) *PathType {
	return &PathType{Path: p, Range: p.Range}
}

// TypeParamBound is *TraitBound or *LifetimeBound.
type TypeParamBound interface {
	Node
	typeParamBound()
}

// TraitBound is a trait in bound position: ?Sized, for<'a> Fn(&'a T), (Trait).
type TraitBound struct {
	Paren     bool
	Maybe     bool
	Lifetimes *BoundLifetimes
	Path      *Path
	Range     Span
}

// LifetimeBound is a lifetime in bound position.
type LifetimeBound struct {
	Lifetime Lifetime
}

func (b *TraitBound) Span() Span    { return b.Range }
func (b *LifetimeBound) Span() Span { return b.Lifetime.Range }

func (*TraitBound) typeParamBound()    {}
func (*LifetimeBound) typeParamBound() {}

// Generics is a generic parameter list with its where clause. The zero value
// means "no generics"; Angled with no params prints as <>.
type Generics struct {
	Angled bool
	Params []GenericParam
	Where  *WhereClause
	Range  Span
}

func (g Generics) Span() Span { return g.Range }

// IsEmpty reports whether g prints as nothing.
func (g Generics) IsEmpty() bool {
	return !g.Angled && len(g.Params) == 0 && g.Where == nil
}

// GenericParam is *TypeParam, *LifetimeParam or *ConstParam.
type GenericParam interface {
	Node
	genericParam()
}

type (
	TypeParam struct {
		Attrs   []*Attribute
		Ident   Ident
		Bounds  []TypeParamBound
		Default Type
		Range   Span
	}

	LifetimeParam struct {
		Attrs    []*Attribute
		Lifetime Lifetime
		Bounds   []Lifetime
		Range    Span
	}

	ConstParam struct {
		Attrs   []*Attribute
		Ident   Ident
		Type    Type
		Default *Expr
		Range   Span
	}
)

func (p *TypeParam) Span() Span     { return p.Range }
func (p *LifetimeParam) Span() Span { return p.Range }
func (p *ConstParam) Span() Span    { return p.Range }

func (*TypeParam) genericParam()     {}
func (*LifetimeParam) genericParam() {}
func (*ConstParam) genericParam()    {}

// WhereClause is where T: Bound, 'a: 'b.
type WhereClause struct {
	Predicates []WherePredicate
	Range      Span
}

func (w *WhereClause) Span() Span { return w.Range }

// WherePredicate is *PredicateType or *PredicateLifetime.
type WherePredicate interface {
	Node
	wherePredicate()
}

type (
	PredicateType struct {
		Lifetimes *BoundLifetimes
		Bounded   Type
		Bounds    []TypeParamBound
		Range     Span
	}

	PredicateLifetime struct {
		Lifetime Lifetime
		Bounds   []Lifetime
		Range    Span
	}
)

func (p *PredicateType) Span() Span     { return p.Range }
func (p *PredicateLifetime) Span() Span { return p.Range }

func (*PredicateType) wherePredicate()     {}
func (*PredicateLifetime) wherePredicate() {}

// Signature is the header of a function or method.
type Signature struct {
	Constness bool
	Asyncness bool
	Unsafety  bool
	Abi       *Abi
	Ident     Ident
	Generics  Generics
	Inputs    []FnArg
	Variadic  *Variadic
	Output    Type // nil for the default return type
	Range     Span
}

func (s *Signature) Span() Span { return s.Range }

// Receiver returns the method receiver, or nil for associated functions.
func (s *Signature) Receiver() *Receiver {
	if len(s.Inputs) == 0 {
		return nil
	}
	r, _ := s.Inputs[0].(*Receiver)
	return r
}

// Variadic is the trailing ... of a foreign function.
type Variadic struct {
	Range Span
}

func (v *Variadic) Span() Span { return v.Range }

// FnArg is *Receiver or *PatType.
type FnArg interface {
	Node
	fnArg()
}

// Receiver is self, &self, &'a mut self or self: Type.
type Receiver struct {
	Attrs     []*Attribute
	Reference bool
	Lifetime  *Lifetime
	Mutable   bool
	Type      Type // explicit self type, nil otherwise
	Range     Span
}

// PatType is a typed argument pattern: mut x: u32.
type PatType struct {
	Attrs []*Attribute
	Pat   *Pat
	Type  Type
	Range Span
}

func (r *Receiver) Span() Span { return r.Range }
func (p *PatType) Span() Span  { return p.Range }

func (*Receiver) fnArg() {}
func (*PatType) fnArg()  {}

// Pat is an identifier pattern. The wildcard pattern has the name "_".
type Pat struct {
	ByRef   bool
	Mutable bool
	Ident   Ident
	Range   Span
}

func (p *Pat) Span() Span { return p.Range }

// IsWild reports whether p is the _ pattern.
func (p *Pat) IsWild() bool {
	return p.Ident.Name == "_"
}

// Item is a top-level or module-level declaration.
type Item interface {
	Node
	itemNode()
}

type (
	ItemTrait struct {
		Attrs       []*Attribute
		Vis         Visibility
		Unsafety    bool
		Auto        bool
		Ident       Ident
		Generics    Generics
		Supertraits []TypeParamBound
		Items       []TraitItem
		Range       Span
	}

	ItemImpl struct {
		Attrs       []*Attribute
		Defaultness bool
		Unsafety    bool
		Generics    Generics
		Trait       *ImplTrait
		SelfType    Type
		Items       []ImplItem
		Range       Span
	}

	ItemForeignMod struct {
		Attrs    []*Attribute
		Unsafety bool
		Abi      *Abi
		Items    []ForeignItem
		Range    Span
	}

	// ItemMod is a module. Content is nil for the bodiless form mod m;
	ItemMod struct {
		Attrs   []*Attribute
		Vis     Visibility
		Ident   Ident
		Content []Item
		Braced  bool
		Brace   Span
		Range   Span
	}

	ItemFn struct {
		Attrs []*Attribute
		Vis   Visibility
		Sig   *Signature
		Block *Block
		Range Span
	}

	ItemStatic struct {
		Attrs   []*Attribute
		Vis     Visibility
		Mutable bool
		Ident   Ident
		Type    Type
		Expr    *Expr
		Range   Span
	}

	ItemConst struct {
		Attrs []*Attribute
		Vis   Visibility
		Ident Ident
		Type  Type
		Expr  *Expr
		Range Span
	}

	// ItemType is a type alias.
	ItemType struct {
		Attrs    []*Attribute
		Vis      Visibility
		Ident    Ident
		Generics Generics
		Type     Type
		Range    Span
	}

	ItemTraitAlias struct {
		Attrs    []*Attribute
		Vis      Visibility
		Ident    Ident
		Generics Generics
		Bounds   []TypeParamBound
		Range    Span
	}

	ItemUse struct {
		Attrs  []*Attribute
		Vis    Visibility
		Tokens []Token // the use tree
		Range  Span
	}

	ItemExternCrate struct {
		Attrs  []*Attribute
		Vis    Visibility
		Ident  Ident
		Rename *Ident
		Range  Span
	}

	// ItemStruct keeps its body as raw tokens; structs are never analysed.
	ItemStruct struct {
		Attrs    []*Attribute
		Vis      Visibility
		Ident    Ident
		Generics Generics
		Body     []Token
		Range    Span
	}

	ItemEnum struct {
		Attrs    []*Attribute
		Vis      Visibility
		Ident    Ident
		Generics Generics
		Body     []Token
		Range    Span
	}

	ItemUnion struct {
		Attrs    []*Attribute
		Vis      Visibility
		Ident    Ident
		Generics Generics
		Body     []Token
		Range    Span
	}

	// ItemMacro is a macro invocation in item position, or macro_rules! name.
	ItemMacro struct {
		Attrs []*Attribute
		Ident *Ident
		Mac   *Macro
		Semi  bool
		Range Span
	}

	ItemVerbatim struct {
		Tokens []Token
		Range  Span
	}
)

// ImplTrait is the Trait for part of an impl header.
type ImplTrait struct {
	Negative bool
	Path     *Path
}

func (i *ItemTrait) Span() Span       { return i.Range }
func (i *ItemImpl) Span() Span        { return i.Range }
func (i *ItemForeignMod) Span() Span  { return i.Range }
func (i *ItemMod) Span() Span         { return i.Range }
func (i *ItemFn) Span() Span          { return i.Range }
func (i *ItemStatic) Span() Span      { return i.Range }
func (i *ItemConst) Span() Span       { return i.Range }
func (i *ItemType) Span() Span        { return i.Range }
func (i *ItemTraitAlias) Span() Span  { return i.Range }
func (i *ItemUse) Span() Span         { return i.Range }
func (i *ItemExternCrate) Span() Span { return i.Range }
func (i *ItemStruct) Span() Span      { return i.Range }
func (i *ItemEnum) Span() Span        { return i.Range }
func (i *ItemUnion) Span() Span       { return i.Range }
func (i *ItemMacro) Span() Span       { return i.Range }
func (i *ItemVerbatim) Span() Span    { return i.Range }

func (*ItemTrait) itemNode()       {}
func (*ItemImpl) itemNode()        {}
func (*ItemForeignMod) itemNode()  {}
func (*ItemMod) itemNode()         {}
func (*ItemFn) itemNode()          {}
func (*ItemStatic) itemNode()      {}
func (*ItemConst) itemNode()       {}
func (*ItemType) itemNode()        {}
func (*ItemTraitAlias) itemNode()  {}
func (*ItemUse) itemNode()         {}
func (*ItemExternCrate) itemNode() {}
func (*ItemStruct) itemNode()      {}
func (*ItemEnum) itemNode()        {}
func (*ItemUnion) itemNode()       {}
func (*ItemMacro) itemNode()       {}
func (*ItemVerbatim) itemNode()    {}

// TraitItem is an item inside a trait body.
type TraitItem interface {
	Node
	traitItem()
}

type (
	TraitItemConst struct {
		Attrs   []*Attribute
		Ident   Ident
		Type    Type
		Default *Expr
		Range   Span
	}

	TraitItemMethod struct {
		Attrs   []*Attribute
		Sig     *Signature
		Default *Block
		Range   Span
	}

	// TraitItemType is an associated type, optionally with a default.
	TraitItemType struct {
		Attrs    []*Attribute
		Ident    Ident
		Generics Generics
		Bounds   []TypeParamBound
		Default  Type
		Range    Span
	}

	TraitItemMacro struct {
		Attrs []*Attribute
		Mac   *Macro
		Range Span
	}
)

func (i *TraitItemConst) Span() Span  { return i.Range }
func (i *TraitItemMethod) Span() Span { return i.Range }
func (i *TraitItemType) Span() Span   { return i.Range }
func (i *TraitItemMacro) Span() Span  { return i.Range }

func (*TraitItemConst) traitItem()  {}
func (*TraitItemMethod) traitItem() {}
func (*TraitItemType) traitItem()   {}
func (*TraitItemMacro) traitItem()  {}

// ImplItem is an item inside an impl block.
type ImplItem interface {
	Node
	implItem()
}

type (
	ImplItemConst struct {
		Attrs []*Attribute
		Vis   Visibility
		Ident Ident
		Type  Type
		Expr  *Expr
		Range Span
	}

	ImplItemMethod struct {
		Attrs       []*Attribute
		Vis         Visibility
		Defaultness bool
		Sig         *Signature
		Block       *Block
		Range       Span
	}

	ImplItemType struct {
		Attrs    []*Attribute
		Vis      Visibility
		Ident    Ident
		Generics Generics
		Type     Type
		Range    Span
	}

	ImplItemMacro struct {
		Attrs []*Attribute
		Mac   *Macro
		Range Span
	}
)

func (i *ImplItemConst) Span() Span  { return i.Range }
func (i *ImplItemMethod) Span() Span { return i.Range }
func (i *ImplItemType) Span() Span   { return i.Range }
func (i *ImplItemMacro) Span() Span  { return i.Range }

func (*ImplItemConst) implItem()  {}
func (*ImplItemMethod) implItem() {}
func (*ImplItemType) implItem()   {}
func (*ImplItemMacro) implItem()  {}

// ForeignItem is an item inside an extern block.
type ForeignItem interface {
	Node
	foreignItem()
}

type (
	ForeignItemFn struct {
		Attrs []*Attribute
		Vis   Visibility
		Sig   *Signature
		Range Span
	}

	ForeignItemStatic struct {
		Attrs   []*Attribute
		Vis     Visibility
		Mutable bool
		Ident   Ident
		Type    Type
		Range   Span
	}

	ForeignItemType struct {
		Attrs []*Attribute
		Vis   Visibility
		Ident Ident
		Range Span
	}

	ForeignItemMacro struct {
		Attrs []*Attribute
		Mac   *Macro
		Range Span
	}

	ForeignItemVerbatim struct {
		Tokens []Token
		Range  Span
	}
)

func (i *ForeignItemFn) Span() Span       { return i.Range }
func (i *ForeignItemStatic) Span() Span   { return i.Range }
func (i *ForeignItemType) Span() Span     { return i.Range }
func (i *ForeignItemMacro) Span() Span    { return i.Range }
func (i *ForeignItemVerbatim) Span() Span { return i.Range }

func (*ForeignItemFn) foreignItem()       {}
func (*ForeignItemStatic) foreignItem()   {}
func (*ForeignItemType) foreignItem()     {}
func (*ForeignItemMacro) foreignItem()    {}
func (*ForeignItemVerbatim) foreignItem() {}

// File is a sequence of items with optional inner attributes.
type File struct {
	Attrs []*Attribute
	Items []Item
}
