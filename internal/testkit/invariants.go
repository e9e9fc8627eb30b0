// Package testkit holds structural checks shared by parser and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"wss/internal/ast"
	"wss/internal/source"
)

// CheckSpanInvariants verifies the spans and back links of a parsed file:
// the file span fits the content, items are non-empty, ordered and inside
// the file span, class members sit inside their class, and every declaration
// points back at its file and owner.
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	if f.Sp.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Sp.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Sp.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Sp.End, lenContent)
	}

	var prevEnd uint32
	for i, it := range f.Items {
		if err := checkDecl(it, nil, f, f.Sp, sf.ID); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if it.Span().Start < prevEnd {
			return fmt.Errorf("item %d span %v overlaps the previous item", i, it.Span())
		}
		prevEnd = it.Span().End
	}
	return nil
}

func checkDecl(d ast.Decl, owner ast.Decl, f *ast.File, outer source.Span, id source.FileID) error {
	base := d.Base()
	if err := within(base.Sp, outer, id); err != nil {
		return fmt.Errorf("%s: %w", base.Name, err)
	}
	if base.File != f {
		return fmt.Errorf("%s: file back link is wrong", base.Name)
	}
	if base.Owner != owner {
		return fmt.Errorf("%s: owner link is wrong", base.Name)
	}
	cls, ok := d.(*ast.ClassDecl)
	if !ok {
		return nil
	}
	for _, m := range cls.Members {
		switch m := m.(type) {
		case *ast.FunctionDecl:
			if err := checkDecl(m, cls, f, base.Sp, id); err != nil {
				return err
			}
		case *ast.TypeDecl:
			if err := within(m.Sp, base.Sp, id); err != nil {
				return fmt.Errorf("%s.%s: %w", base.Name, m.Name, err)
			}
			if m.Owner != cls {
				return fmt.Errorf("%s.%s: owner link is wrong", base.Name, m.Name)
			}
		default:
			return fmt.Errorf("%s: unexpected member %T", base.Name, m)
		}
	}
	return nil
}

func within(sp, outer source.Span, id source.FileID) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span %v", sp)
	}
	if sp.File != id {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, id)
	}
	if !outer.Contains(sp) {
		return fmt.Errorf("span %v is outside %v", sp, outer)
	}
	return nil
}
