// SPDX-License-Identifier: ice License 1.0

package model

import (
	"strconv"

	"github.com/nbd-wtf/go-nostr"
)

type (
	Kind      uint16
	KindClass uint8
)

const (
	KindClassRegular KindClass = iota
	KindClassReplaceable
	KindClassEphemeral
	KindClassAddressable
)

const (
	KindProfileMetadata = Kind(nostr.KindProfileMetadata)
	KindTextNote        = Kind(nostr.KindTextNote)
	KindFollowList      = Kind(nostr.KindFollowList)
	KindDeletion        = Kind(nostr.KindDeletion)
	KindRepost          = Kind(nostr.KindRepost)
	KindReaction        = Kind(nostr.KindReaction)
	KindArticle         = Kind(nostr.KindArticle)
)

// Class buckets kinds per NIP-01: 0, 3 and 10000-19999 are replaceable,
// 20000-29999 ephemeral, 30000-39999 addressable.
func (k Kind) Class() KindClass {
	switch {
	case k == KindProfileMetadata || k == KindFollowList || (k >= 10_000 && k < 20_000):
		return KindClassReplaceable
	case k >= 20_000 && k < 30_000:
		return KindClassEphemeral
	case k >= 30_000 && k < 40_000:
		return KindClassAddressable
	default:
		return KindClassRegular
	}
}

func (k Kind) IsRegular() bool {
	return k.Class() == KindClassRegular
}

func (k Kind) IsReplaceable() bool {
	return k.Class() == KindClassReplaceable
}

func (k Kind) IsEphemeral() bool {
	return k.Class() == KindClassEphemeral
}

func (k Kind) IsAddressable() bool {
	return k.Class() == KindClassAddressable
}

func (k Kind) String() string {
	return strconv.FormatUint(uint64(k), 10)
}

func (c KindClass) String() string {
	switch c {
	case KindClassReplaceable:
		return "replaceable"
	case KindClassEphemeral:
		return "ephemeral"
	case KindClassAddressable:
		return "addressable"
	default:
		return "regular"
	}
}
