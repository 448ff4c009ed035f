package services

import (
	"sort"

	"github.com/pcm-backend/models"
)

// BuildWBSHierarchy assembles a nested tree from a flat item list. Pure
// and side-effect-free: input items are copied, so repeated calls over
// the same slice are safe. Children are grouped by parent id and sorted
// by sort order; only root items (nil parent) are returned, each
// carrying its full descendant tree.
//
// The tree is built over an id index instead of recursive descent, so
// pathological depths cost nothing beyond the two passes.
func BuildWBSHierarchy(flat []models.WBSItem) []*models.WBSItem {
	roots := make([]*models.WBSItem, 0)
	if len(flat) == 0 {
		return roots
	}

	byID := make(map[uint]*models.WBSItem, len(flat))
	nodes := make([]*models.WBSItem, 0, len(flat))
	for i := range flat {
		item := flat[i]
		item.Children = nil
		node := &item
		byID[node.ID] = node
		nodes = append(nodes, node)
	}

	for _, node := range nodes {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := byID[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	for _, node := range nodes {
		sort.SliceStable(node.Children, func(i, j int) bool {
			return node.Children[i].SortOrder < node.Children[j].SortOrder
		})
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].SortOrder < roots[j].SortOrder
	})

	return roots
}

// childIndex groups items by parent id. Root items live under key 0,
// which never collides with a real id because ids start at 1.
func childIndex(items []models.WBSItem) map[uint][]models.WBSItem {
	index := make(map[uint][]models.WBSItem)
	for _, item := range items {
		key := uint(0)
		if item.ParentID != nil {
			key = *item.ParentID
		}
		index[key] = append(index[key], item)
	}
	return index
}
