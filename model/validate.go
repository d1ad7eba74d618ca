// SPDX-License-Identifier: ice License 1.0

package model

import (
	"slices"

	"github.com/gookit/goutil/errorx"
	"github.com/tidwall/gjson"
)

const (
	TagMarkerReply   = "reply"
	TagMarkerRoot    = "root"
	TagMarkerMention = "mention"

	UserGeneratedContentNamespace = "ugc"

	KindGenericRepost     Kind = 16
	KindReactionToWebsite Kind = 17
	KindLabeling          Kind = 1985

	maxLabelLength = 100
	tagNonce       = "nonce"
)

var kindSupportedTags = map[Kind][]string{
	KindProfileMetadata:   {"e", "p", "a", "alt"},
	KindTextNote:          {"e", "p", "q", "t", "l", "L"},
	KindFollowList:        {"p"},
	KindDeletion:          {"a", "e", "k"},
	KindRepost:            {"e", "p"},
	KindReaction:          {"e", "p", "a", "k", "emoji"},
	KindReactionToWebsite: {"r"},
	KindGenericRepost:     {"k", "e", "p", "a"},
	KindLabeling:          {"L", "l", "e", "p", "a", "r", "t"},
	KindArticle:           {"a", "d", "e", "p", "t", "title", "image", "summary", "published_at"},
}

// Validate checks the NIP structure of well-known kinds. It never touches the event:
// any change would invalidate its id.
func (e *Event) Validate() error {
	if tag := unsupportedTag(e); tag != "" {
		return errorx.Withf(ErrUnsupportedTag, "tag %q is not supported for kind %v", tag, e.Kind)
	}
	if e.Kind.IsAddressable() && e.GetTag(TagD) == nil {
		return errorx.Withf(ErrWrongEventParams, "nip-01: addressable event %v has no d tag", e.ID)
	}
	if _, err := ParseEventReferences(e.Tags); err != nil {
		return errorx.Withf(ErrWrongEventParams, "nip-01: %v", err)
	}
	switch e.Kind {
	case KindProfileMetadata:
		if !gjson.Valid(e.Content) || !gjson.Parse(e.Content).IsObject() {
			return errorx.Withf(ErrWrongEventParams, "nip-01: metadata content should be stringified json object: %v", e.ID)
		}
	case KindTextNote:
		return validateTextNote(e)
	case KindFollowList:
		for _, tag := range e.Tags {
			if tag.Key() == "p" && tag.Value() == "" {
				return errorx.Withf(ErrWrongEventParams, "nip-02: p tag without pubkey: %v", e.ID)
			}
		}
	case KindDeletion:
		if e.GetTag(TagE) == nil && e.GetTag(TagA) == nil {
			return errorx.Withf(ErrWrongEventParams, "nip-09: nothing to delete: %v", e.ID)
		}
	case KindRepost, KindGenericRepost:
		return validateRepost(e)
	case KindReaction:
		if eTag := e.Tags.GetLast([]string{TagE}); eTag == nil || eTag.Value() == "" {
			return errorx.Withf(ErrWrongEventParams, "nip-25: reaction without e tag: %v", e.ID)
		}
	case KindReactionToWebsite:
		if rTag := e.Tags.GetFirst([]string{"r"}); rTag == nil || rTag.Value() == "" {
			return errorx.Withf(ErrWrongEventParams, "nip-25: website reaction without r tag: %v", e.ID)
		}
	case KindLabeling:
		if e.GetTag(TagE) == nil && e.GetTag("p") == nil && e.GetTag(TagA) == nil && e.GetTag("r") == nil && e.GetTag("t") == nil {
			return errorx.Withf(ErrWrongEventParams, "nip-32: label target is missing: %v", e.ID)
		}

		return validateLabelTags(e)
	case KindArticle:
		if e.Content == "" || gjson.Valid(e.Content) {
			return errorx.Withf(ErrWrongEventParams, "nip-23: content should be markdown text: %v", e.ID)
		}
	}

	return nil
}

func validateTextNote(e *Event) error {
	for _, tag := range e.Tags {
		if tag.Key() != TagE || len(tag) < 4 || tag[3] == "" {
			continue
		}
		if marker := tag[3]; marker != TagMarkerRoot && marker != TagMarkerReply && marker != TagMarkerMention {
			return errorx.Withf(ErrWrongEventParams, "nip-10: wrong e tag marker %q: %v", marker, e.ID)
		}
	}

	return validateLabelTags(e)
}

func validateRepost(e *Event) error {
	eTag := e.Tags.GetFirst([]string{TagE})
	if eTag == nil {
		return errorx.Withf(ErrWrongEventParams, "nip-18: repost without e tag: %v", e.ID)
	}
	if e.Content == "" {
		return nil
	}
	if !gjson.Valid(e.Content) {
		return errorx.Withf(ErrWrongEventParams, "nip-18: content should be the stringified reposted event: %v", e.ID)
	}
	reposted := gjson.Parse(e.Content)
	if id := reposted.Get("id").Str; id != eTag.Value() {
		return errorx.Withf(ErrWrongEventParams, "nip-18: e tag %v does not point to reposted event %v", eTag.Value(), id)
	}
	if e.Kind == KindRepost && reposted.Get("kind").Int() != int64(KindTextNote) {
		return errorx.Withf(ErrWrongEventParams, "nip-18: kind 6 reposts text notes only: %v", e.ID)
	}
	if e.Kind == KindGenericRepost {
		if kTag := e.Tags.GetFirst([]string{"k"}); kTag == nil || kTag.Value() != reposted.Get("kind").Raw {
			return errorx.Withf(ErrWrongEventParams, "nip-18: k tag should name the reposted kind: %v", e.ID)
		}
	}

	return nil
}

func validateLabelTags(e *Event) error {
	label := e.Tags.GetFirst([]string{"l"})
	namespace := e.Tags.GetFirst([]string{"L"})
	if label == nil && namespace == nil && e.Kind != KindLabeling {
		return nil
	}
	if label == nil || len(*label) < 3 {
		return errorx.Withf(ErrWrongEventParams, "nip-32: l tag needs a value and a namespace: %v", e.ID)
	}
	if len(label.Value()) > maxLabelLength {
		return errorx.Withf(ErrWrongEventParams, "nip-32: l tag is longer than %v symbols: %v", maxLabelLength, e.ID)
	}
	switch {
	case namespace == nil && (*label)[2] != UserGeneratedContentNamespace:
		return errorx.Withf(ErrWrongEventParams, "nip-32: l tag namespace should be %v without L tag: %v", UserGeneratedContentNamespace, e.ID)
	case namespace != nil && (*label)[2] != namespace.Value():
		return errorx.Withf(ErrWrongEventParams, "nip-32: l and L namespaces mismatch: %v", e.ID)
	}

	return nil
}

func unsupportedTag(e *Event) string {
	supported, ok := kindSupportedTags[e.Kind]
	if !ok {
		return ""
	}
	for _, tag := range e.Tags {
		if key := tag.Key(); key != tagNonce && !slices.Contains(supported, key) {
			return key
		}
	}

	return ""
}
