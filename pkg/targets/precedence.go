// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package targets

import (
	"cmp"
	"slices"
)

// DefaultCategoryOrder is the category precedence used when none is configured.
var DefaultCategoryOrder = []string{"Quant APIs", "Cloud Providers", "NYSE & Financial"}

// Precedence orders categories. Listed categories come first in list order,
// all other categories share the last rank.
type Precedence []string

// Rank returns the position of category.
func (p Precedence) Rank(category string) int {
	if i := slices.Index(p, category); i >= 0 {
		return i
	}
	return len(p)
}

// Compare orders two targets by category rank, then name and host.
// Unlisted categories are not separated from each other.
func (p Precedence) Compare(a, b Target) int {
	return cmp.Or(
		cmp.Compare(p.Rank(a.Category), p.Rank(b.Category)),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Host, b.Host),
		cmp.Compare(a.Category, b.Category),
	)
}
