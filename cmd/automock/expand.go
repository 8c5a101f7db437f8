package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KimMachineGun/automock/internal/automock"
	"github.com/KimMachineGun/automock/internal/syntax"
)

const attrName = "automock"

type expander struct {
	automock *automock.Automock
	attr     []syntax.Token
	logger   *slog.Logger
}

// newExpander returns an expander that uses attr as the directives of
// declarations annotated with a bare #[automock].
func newExpander(a *automock.Automock, attr string, logger *slog.Logger) (*expander, error) {
	toks, err := syntax.Lex(attr)
	if err != nil {
		return nil, fmt.Errorf("invalid attr %q: %w", attr, err)
	}

	return &expander{
		automock: a,
		attr:     toks,
		logger:   logger,
	}, nil
}

type fileResult struct {
	path  string
	mocks []string
	err   *DiagnosticError
}

// expandFiles expands every file with at most jobs files in flight. Results
// keep the order of paths.
func (e *expander) expandFiles(ctx context.Context, paths []string, jobs int) ([]fileResult, error) {
	results := make([]fileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := e.expandFile(path)
			if err != nil {
				return err
			}
			results[i] = r

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (e *expander) expandFile(path string) (fileResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	src := string(b)

	mocks, err := e.expandSource(src)
	if err != nil {
		return fileResult{
			path: path,
			err: &DiagnosticError{
				File:   path,
				Source: src,
				Diag:   automock.AsDiagnostic(err),
			},
		}, nil
	}

	e.logger.Debug("expanded", "file", path, "mocks", len(mocks))

	return fileResult{path: path, mocks: mocks}, nil
}

// expandSource mocks every item of src that carries the automock attribute.
func (e *expander) expandSource(src string) ([]string, error) {
	f, err := syntax.ParseFile(src)
	if err != nil {
		return nil, err
	}

	var mocks []string
	for _, item := range f.Items {
		attr := findAttr(itemAttrs(item))
		if attr == nil {
			continue
		}

		toks := attr.Tokens
		if attr.Delim == syntax.DelimNone {
			toks = e.attr
		}
		attrs, err := automock.ParseAttrs(toks)
		if err != nil {
			return nil, err
		}

		mock, err := e.automock.ExpandItem(attrs, item)
		if err != nil {
			return nil, err
		}
		mocks = append(mocks, mock)
	}

	return mocks, nil
}

func findAttr(attrs []*syntax.Attribute) *syntax.Attribute {
	for _, a := range attrs {
		if a.Inner || len(a.Path.Segments) == 0 {
			continue
		}
		if a.Path.Segments[len(a.Path.Segments)-1].Ident.Name == attrName {
			return a
		}
	}

	return nil
}

func itemAttrs(item syntax.Item) []*syntax.Attribute {
	switch item := item.(type) {
	case *syntax.ItemTrait:
		return item.Attrs
	case *syntax.ItemImpl:
		return item.Attrs
	case *syntax.ItemForeignMod:
		return item.Attrs
	case *syntax.ItemMod:
		return item.Attrs
	case *syntax.ItemFn:
		return item.Attrs
	case *syntax.ItemStruct:
		return item.Attrs
	case *syntax.ItemEnum:
		return item.Attrs
	case *syntax.ItemUnion:
		return item.Attrs
	case *syntax.ItemType:
		return item.Attrs
	}

	return nil
}

// joinMocks lays out the generated file: the header followed by every mock
// in input order.
func joinMocks(header string, results []fileResult) (string, int) {
	var (
		sb strings.Builder
		n  int
	)
	if header != "" {
		sb.WriteString(header)
		sb.WriteString("\n")
	}
	for _, r := range results {
		for _, m := range r.mocks {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(m)
			n++
		}
	}

	return sb.String(), n
}

var errExpansionFailed = errors.New("cannot generate mocks")
