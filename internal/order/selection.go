package order

import "github.com/usamaejaz9741/pizza-shop/internal/catalog"

// countSiblings counts selected addons belonging to the given group.
func countSiblings(group catalog.AddonGroup, selected []catalog.Addon) int {
	n := 0
	for _, a := range selected {
		if a.GroupID == group.ID {
			n++
		}
	}
	return n
}

func isSelected(addon catalog.Addon, selected []catalog.Addon) bool {
	for _, a := range selected {
		if a.ID == addon.ID {
			return true
		}
	}
	return false
}

// CanToggle reports whether flipping the addon's selection is legal under
// the group's cardinality rules. Deselecting is blocked when the group is
// required and already sits at its floor; selecting is blocked at the
// ceiling. Pure: the selection snapshot is never modified.
func CanToggle(addon catalog.Addon, group catalog.AddonGroup, selected []catalog.Addon) bool {
	siblings := countSiblings(group, selected)

	if isSelected(addon, selected) {
		return !(group.IsRequired && siblings <= group.MinSelect)
	}
	return siblings < group.MaxSelect
}

// GroupSatisfied reports whether the group's current selection count meets
// its completion requirement. Non-required groups are always satisfied.
func GroupSatisfied(group catalog.AddonGroup, selected []catalog.Addon) bool {
	if !group.IsRequired {
		return true
	}
	return countSiblings(group, selected) >= group.MinSelect
}
