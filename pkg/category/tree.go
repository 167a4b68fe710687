package category

import (
	"context"

	"github.com/google/uuid"

	"yummy-backend/domain"
	"yummy-backend/entities"
)

// nodeSource is the read side the traversals need; both the plain and the
// transaction-bound repository satisfy it.
type nodeSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	GetChildren(ctx context.Context, id uuid.UUID) ([]*entities.Category, error)
}

// ComputePath derives the materialized path of a node from its parent's
// current path.
func ComputePath(parent *entities.Category, slug string) string {
	if parent == nil {
		return slug
	}
	return parent.Path + "/" + slug
}

// walkAncestors visits the stored ancestors of c, nearest first, until visit
// returns false. A loop in stored data is reported instead of followed.
func walkAncestors(ctx context.Context, src nodeSource, c *entities.Category, visit func(*entities.Category) bool) error {
	seen := map[uuid.UUID]bool{c.ID: true}
	next := c.ParentID
	for next != nil {
		if seen[*next] {
			return domain.NewIntegrityError("walk ancestors", domain.ErrBadCategoryTree)
		}
		seen[*next] = true
		parent, err := src.GetByID(ctx, *next)
		if err != nil {
			return err
		}
		if !visit(parent) {
			return nil
		}
		next = parent.ParentID
	}
	return nil
}

// isAncestorOf reports whether a lies on b's parent chain. A nil or root b
// has no ancestors.
func isAncestorOf(ctx context.Context, src nodeSource, a, b *entities.Category) (bool, error) {
	if a == nil || b == nil || b.ParentID == nil {
		return false, nil
	}
	if *b.ParentID == a.ID {
		return true, nil
	}
	found := false
	err := walkAncestors(ctx, src, b, func(p *entities.Category) bool {
		if p.ParentID != nil && *p.ParentID == a.ID {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// ancestorsOf returns the ancestors of c ordered from the root down.
func ancestorsOf(ctx context.Context, src nodeSource, c *entities.Category) ([]*entities.Category, error) {
	var chain []*entities.Category
	if err := walkAncestors(ctx, src, c, func(p *entities.Category) bool {
		chain = append(chain, p)
		return true
	}); err != nil {
		return nil, err
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// descendantsOf lists the subtree below c in depth-first pre-order using an
// explicit stack.
func descendantsOf(ctx context.Context, src nodeSource, c *entities.Category) ([]*entities.Category, error) {
	var out []*entities.Category
	seen := map[uuid.UUID]bool{c.ID: true}

	children, err := src.GetChildren(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	stack := reversed(children)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[node.ID] {
			return nil, domain.NewIntegrityError("list descendants", domain.ErrBadCategoryTree)
		}
		seen[node.ID] = true
		out = append(out, node)

		grand, err := src.GetChildren(ctx, node.ID)
		if err != nil {
			return nil, err
		}
		stack = append(stack, reversed(grand)...)
	}
	return out, nil
}

func reversed(in []*entities.Category) []*entities.Category {
	out := make([]*entities.Category, len(in))
	for i, c := range in {
		out[len(in)-1-i] = c
	}
	return out
}
