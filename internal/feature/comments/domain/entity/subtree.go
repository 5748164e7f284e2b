package entity

// ChildrenFunc returns the ids of the direct replies to any of parents.
type ChildrenFunc func(parents []uint) ([]uint, error)

// Subtree collects root and every reply below it, breadth first.
// Ids already collected are skipped, so a corrupted parent index cannot loop forever.
func Subtree(root uint, children ChildrenFunc) ([]uint, error) {
	seen := map[uint]struct{}{root: {}}
	ids := []uint{root}
	frontier := []uint{root}

	for len(frontier) > 0 {
		next, err := children(frontier)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0:0]
		for _, id := range next {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			frontier = append(frontier, id)
		}
	}
	return ids, nil
}
