package automock

import (
	"fmt"
	"log/slog"

	"github.com/KimMachineGun/automock/internal/syntax"
)

// Automock expands declarations annotated with the automock attribute into
// mock implementations.
type Automock struct {
	builder Builder
	logger  *slog.Logger
}

type Option func(*Automock)

// WithLogger sets the logger used to trace expansions.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Automock) {
		a.logger = logger
	}
}

// WithBuilder replaces the Builder that lays out trait and struct mocks.
func WithBuilder(builder Builder) Option {
	return func(a *Automock) {
		a.builder = builder
	}
}

func New(opts ...Option) *Automock {
	a := &Automock{
		builder: NewBuilder(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Expand parses the attribute arguments and the annotated item and returns
// the formatted mock. Every failure is returned as a *Diagnostic.
func (a *Automock) Expand(attr, item []syntax.Token) (string, error) {
	attrs, err := ParseAttrs(attr)
	if err != nil {
		return "", AsDiagnostic(err)
	}
	it, err := syntax.ParseItem(item)
	if err != nil {
		return "", AsDiagnostic(err)
	}

	return a.ExpandItem(attrs, it)
}

// ExpandSource is Expand over source text.
func (a *Automock) ExpandSource(attr, item string) (string, error) {
	attrToks, err := syntax.Lex(attr)
	if err != nil {
		return "", AsDiagnostic(err)
	}
	itemToks, err := syntax.Lex(item)
	if err != nil {
		return "", AsDiagnostic(err)
	}

	return a.Expand(attrToks, itemToks)
}

// ExpandItem mocks an already parsed item.
func (a *Automock) ExpandItem(attrs *Attrs, item syntax.Item) (string, error) {
	code, err := a.expandItem(attrs, item)
	if err != nil {
		return "", AsDiagnostic(err)
	}

	formatted, err := syntax.Format(code)
	if err != nil {
		return "", &Diagnostic{Msg: fmt.Sprintf("cannot format generated code: %v", err)}
	}

	return formatted, nil
}

func (a *Automock) expandItem(attrs *Attrs, item syntax.Item) (string, error) {
	switch item := item.(type) {
	case *syntax.ItemImpl:
		a.logger.Debug("mocking impl block", "self", syntax.Print(item.SelfType))
		spec, err := mockImpl(item)
		if err != nil {
			return "", err
		}
		return a.builder.Build(spec)
	case *syntax.ItemForeignMod:
		a.logger.Debug("mocking extern block", "functions", len(item.Items))
		return mockForeign(attrs, item)
	case *syntax.ItemMod:
		a.logger.Debug("mocking module", "module", item.Ident.Name)
		return mockModule(attrs, item)
	case *syntax.ItemTrait:
		a.logger.Debug("mocking trait", "trait", item.Ident.Name, "types", attrs.Len())
		spec, err := mockTrait(attrs, item)
		if err != nil {
			return "", err
		}
		return a.builder.Build(spec)
	}

	return "", errorAt(item, "this item type is not supported")
}
