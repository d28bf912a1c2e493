package block

// FindByID searches the forest depth first, descending into every repeat.
func FindByID(forest Forest, id string) (Block, bool) {
	for _, b := range forest {
		if b.ID == id {
			return b, true
		}
		if len(b.Children) > 0 {
			if found, ok := FindByID(b.Children, id); ok {
				return found, true
			}
		}
	}
	return Block{}, false
}

// RemoveByID returns a forest with the block of that id excised from
// wherever it occurs. Only repeat nodes on the path to the removed block are
// rebuilt; when the id is absent the input forest is returned as is.
func RemoveByID(forest Forest, id string) Forest {
	out, _ := removeByID(forest, id)
	return out
}

func removeByID(forest Forest, id string) (Forest, bool) {
	for i, b := range forest {
		if b.ID == id {
			out := make(Forest, 0, len(forest)-1)
			out = append(out, forest[:i]...)
			return append(out, forest[i+1:]...), true
		}
		if len(b.Children) == 0 {
			continue
		}
		children, changed := removeByID(b.Children, id)
		if !changed {
			continue
		}
		out := make(Forest, len(forest))
		copy(out, forest)
		b.Children = children
		out[i] = b
		return out, true
	}
	return forest, false
}

// UpdateByID applies fn to the block with the given id and returns a forest
// in which that block and its ancestors are fresh copies. Untouched subtrees
// are shared with the input. The bool reports whether the id was found.
func UpdateByID(forest Forest, id string, fn func(Block) Block) (Forest, bool) {
	for i, b := range forest {
		if b.ID == id {
			out := make(Forest, len(forest))
			copy(out, forest)
			out[i] = fn(b)
			return out, true
		}
		if len(b.Children) == 0 {
			continue
		}
		children, ok := UpdateByID(b.Children, id, fn)
		if !ok {
			continue
		}
		out := make(Forest, len(forest))
		copy(out, forest)
		b.Children = children
		out[i] = b
		return out, true
	}
	return forest, false
}

// CollectByKind returns every block of the kind across all nesting levels,
// in depth-first order.
func CollectByKind(forest Forest, kind Kind) []Block {
	var out []Block
	for _, b := range forest {
		if b.Kind == kind {
			out = append(out, b)
		}
		if len(b.Children) > 0 {
			out = append(out, CollectByKind(b.Children, kind)...)
		}
	}
	return out
}

// ContainsKind reports whether any block of the kind is reachable.
func ContainsKind(forest Forest, kind Kind) bool {
	for _, b := range forest {
		if b.Kind == kind || ContainsKind(b.Children, kind) {
			return true
		}
	}
	return false
}

// Count returns the total number of nodes in the forest.
func Count(forest Forest) int {
	n := 0
	for _, b := range forest {
		n += 1 + Count(b.Children)
	}
	return n
}

// Clone deep copies the forest so the result shares no structure with it.
func Clone(forest Forest) Forest {
	if forest == nil {
		return nil
	}
	out := make(Forest, len(forest))
	for i, b := range forest {
		out[i] = b
		if b.Children != nil {
			out[i].Children = Clone(b.Children)
		}
	}
	return out
}

// Walk visits every block depth first. Returning false from fn stops the walk.
func Walk(forest Forest, fn func(Block) bool) bool {
	for _, b := range forest {
		if !fn(b) {
			return false
		}
		if !Walk(b.Children, fn) {
			return false
		}
	}
	return true
}
