// SPDX-License-Identifier: ice License 1.0

package model

import (
	"maps"
	"math"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/nbd-wtf/go-nostr"
)

type (
	// Filter selects events. A nil field is a wildcard; a non-nil empty slice matches nothing.
	Filter struct {
		IDs     []ID
		Kinds   []Kind
		Authors []PubKey
		Tags    TagMap
		Since   *Timestamp
		Until   *Timestamp
		Limit   *int
		Search  *string
	}
	Filters []Filter
)

func (eff Filters) Match(event *Event) bool {
	for i := range eff {
		if eff[i].Matches(event) {
			return true
		}
	}

	return false
}

// TheoreticalLimit sums the bounds of all filters, saturating at Unbounded.
func (eff Filters) TheoreticalLimit() int {
	total := 0
	for i := range eff {
		limit := eff[i].TheoreticalLimit()
		if limit > Unbounded-total {
			return Unbounded
		}
		total += limit
	}

	return total
}

func (eff Filters) Clone() Filters {
	if eff == nil {
		return nil
	}
	result := make(Filters, len(eff))
	for i := range eff {
		result[i] = eff[i].Clone()
	}

	return result
}

func (ef *Filter) Matches(event *Event) bool {
	if !ef.MatchesIgnoringTimestampConstraints(event) {
		return false
	}
	if ef.Since != nil && event.CreatedAt < *ef.Since {
		return false
	}
	if ef.Until != nil && event.CreatedAt > *ef.Until {
		return false
	}

	return true
}

// MatchesIgnoringTimestampConstraints checks ids, kinds, authors and tags only, so callers can
// pre-filter candidates before applying time-range indexes.
func (ef *Filter) MatchesIgnoringTimestampConstraints(event *Event) bool {
	if ef.IDs != nil && !slices.Contains(ef.IDs, event.ID) {
		return false
	}
	if ef.Kinds != nil && !slices.Contains(ef.Kinds, event.Kind) {
		return false
	}
	if ef.Authors != nil && !slices.Contains(ef.Authors, event.PubKey) {
		return false
	}
	for tagName, values := range ef.Tags {
		if !event.Tags.ContainsAny(tagName, values) {
			return false
		}
	}

	return true
}

// TheoreticalLimit is a static upper bound on the number of distinct events the filter can ever
// match. It never looks at stored data and may overestimate, but never underestimates.
func (ef *Filter) TheoreticalLimit() int {
	if ef.IDs != nil {
		return countDistinct(ef.IDs)
	}
	if ef.Since != nil && ef.Until != nil && *ef.Until < *ef.Since {
		return 0
	}
	if ef.Authors != nil && ef.Kinds != nil {
		authors, kinds := countDistinct(ef.Authors), countDistinct(ef.Kinds)
		if allKinds(ef.Kinds, Kind.IsReplaceable) {
			return saturatingMul(authors, kinds)
		}
		if dTags, ok := ef.Tags[TagD]; ok && allKinds(ef.Kinds, Kind.IsAddressable) {
			return saturatingMul(saturatingMul(authors, kinds), countDistinct(dTags))
		}
	}

	return Unbounded
}

func (ef *Filter) Clone() Filter {
	clone := Filter{
		IDs:     slices.Clone(ef.IDs),
		Kinds:   slices.Clone(ef.Kinds),
		Authors: slices.Clone(ef.Authors),
		Since:   clonePtr(ef.Since),
		Until:   clonePtr(ef.Until),
		Limit:   clonePtr(ef.Limit),
		Search:  clonePtr(ef.Search),
	}
	if ef.Tags != nil {
		clone.Tags = make(TagMap, len(ef.Tags))
		for name, values := range ef.Tags {
			clone.Tags[name] = slices.Clone(values)
		}
	}

	return clone
}

// Equal compares field by field. Ids, kinds, authors and tag values compare as sets; an unset
// field only equals another unset field. A nil and an empty tag map are both "no tags".
func (ef *Filter) Equal(other *Filter) bool {
	return sameSet(ef.IDs, other.IDs) &&
		sameSet(ef.Kinds, other.Kinds) &&
		sameSet(ef.Authors, other.Authors) &&
		maps.EqualFunc(ef.Tags, other.Tags, sameSet[[]string, string]) &&
		equalPtr(ef.Since, other.Since) &&
		equalPtr(ef.Until, other.Until) &&
		equalPtr(ef.Limit, other.Limit) &&
		equalPtr(ef.Search, other.Search)
}

func FilterEqual(a, b Filter) bool {
	return a.Equal(&b)
}

func (ef Filter) String() string {
	data, err := ef.MarshalJSON()
	if err != nil {
		return "Filter"
	}

	return string(data)
}

func allKinds(kinds []Kind, pred func(Kind) bool) bool {
	for _, k := range kinds {
		if !pred(k) {
			return false
		}
	}

	return true
}

func countDistinct[S ~[]E, E comparable](s S) int {
	seen := make(map[E]struct{}, len(s))
	for _, v := range s {
		seen[v] = struct{}{}
	}

	return len(seen)
}

func saturatingMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > Unbounded/b {
		return Unbounded
	}

	return a * b
}

func sameSet[S ~[]E, E comparable](a, b S) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	setA := make(map[E]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[E]struct{}, len(b))
	for _, v := range b {
		if _, ok := setA[v]; !ok {
			return false
		}
		setB[v] = struct{}{}
	}

	return len(setA) == len(setB)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v

	return &c
}

func (ef *Filter) ToNostr() nostr.Filter {
	var f nostr.Filter
	if ef.IDs != nil {
		f.IDs = make([]string, len(ef.IDs))
		for i := range ef.IDs {
			f.IDs[i] = ef.IDs[i].String()
		}
	}
	if ef.Kinds != nil {
		f.Kinds = make([]int, len(ef.Kinds))
		for i, k := range ef.Kinds {
			f.Kinds[i] = int(k)
		}
	}
	if ef.Authors != nil {
		f.Authors = make([]string, len(ef.Authors))
		for i := range ef.Authors {
			f.Authors[i] = ef.Authors[i].String()
		}
	}
	if len(ef.Tags) > 0 {
		f.Tags = ef.Clone().Tags
	}
	f.Since, f.Until = clonePtr(ef.Since), clonePtr(ef.Until)
	if ef.Limit != nil {
		f.Limit = *ef.Limit
		f.LimitZero = *ef.Limit == 0
	}
	if ef.Search != nil {
		f.Search = *ef.Search
	}

	return f
}

func FilterFromNostr(f nostr.Filter) (Filter, error) {
	result := Filter{
		Since: clonePtr(f.Since),
		Until: clonePtr(f.Until),
	}
	if f.IDs != nil {
		result.IDs = make([]ID, len(f.IDs))
		for i := range f.IDs {
			id, err := IDFromHex(f.IDs[i])
			if err != nil {
				return Filter{}, errors.Wrapf(err, "ids[%v]", i)
			}
			result.IDs[i] = id
		}
	}
	if f.Kinds != nil {
		result.Kinds = make([]Kind, len(f.Kinds))
		for i, k := range f.Kinds {
			if k < 0 || k > math.MaxUint16 {
				return Filter{}, errors.Errorf("wrong kind value %v", k)
			}
			result.Kinds[i] = Kind(k)
		}
	}
	if f.Authors != nil {
		result.Authors = make([]PubKey, len(f.Authors))
		for i := range f.Authors {
			pk, err := PubKeyFromHex(f.Authors[i])
			if err != nil {
				return Filter{}, errors.Wrapf(err, "authors[%v]", i)
			}
			result.Authors[i] = pk
		}
	}
	if len(f.Tags) > 0 {
		result.Tags = make(TagMap, len(f.Tags))
		for name, values := range f.Tags {
			result.Tags[name] = slices.Clone(values)
		}
	}
	if f.Limit != 0 || f.LimitZero {
		limit := f.Limit
		result.Limit = &limit
	}
	if f.Search != "" {
		search := f.Search
		result.Search = &search
	}

	return result, nil
}
