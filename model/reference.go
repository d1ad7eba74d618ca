// SPDX-License-Identifier: ice License 1.0

package model

import (
	"strconv"
	"strings"

	"github.com/gookit/goutil/errorx"
)

// ParseEventReferences collects `e` tags into a single id reference and turns every
// `a` tag (`<kind>:<pubkey>:<d>`) into a replaceable/addressable reference.
func ParseEventReferences(tags Tags) ([]EventReference, error) {
	plainEvents := make([]ID, 0, len(tags))
	refs := []EventReference{}
	for _, tag := range tags {
		if len(tag) < 2 {
			continue
		}
		switch tag.Key() {
		case TagE:
			id, err := IDFromHex(tag.Value())
			if err != nil {
				return nil, errorx.Withf(ErrInvalidReference, "failed to parse event reference %v: %v", tag, err)
			}
			plainEvents = append(plainEvents, id)
		case TagA:
			ref, err := parseAddressableReference(tag.Value())
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		}
	}
	if len(plainEvents) > 0 {
		refs = append(refs, &PlainEventReference{EventIDs: plainEvents})
	}

	return refs, nil
}

func parseAddressableReference(value string) (*ReplaceableEventReference, error) {
	val := strings.SplitN(value, ":", 3)
	if len(val) != 3 {
		return nil, errorx.Withf(ErrInvalidReference, "failed to parse replaceable event reference, len != 3: %v", val)
	}
	kind, err := strconv.ParseUint(val[0], 10, 16)
	if err != nil {
		return nil, errorx.Withf(ErrInvalidReference, "failed to parse kind of replaceable event reference %v: %v", val, err)
	}
	pk, err := PubKeyFromHex(val[1])
	if err != nil {
		return nil, errorx.Withf(ErrInvalidReference, "failed to parse author of replaceable event reference %v: %v", val, err)
	}

	return &ReplaceableEventReference{
		Kind:   Kind(kind),
		PubKey: pk,
		DTag:   val[2],
	}, nil
}

func (e *PlainEventReference) Filter() Filter {
	return Filter{
		IDs: e.EventIDs,
	}
}

func (e *ReplaceableEventReference) Filter() Filter {
	f := Filter{
		Kinds:   []Kind{e.Kind},
		Authors: []PubKey{e.PubKey},
	}
	if e.Kind.IsAddressable() {
		f.Tags = TagMap{TagD: {e.DTag}}
	}

	return f
}

func (e *ReplaceableEventReference) String() string {
	return e.Kind.String() + ":" + e.PubKey.String() + ":" + e.DTag
}
