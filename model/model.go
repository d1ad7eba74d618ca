// SPDX-License-Identifier: ice License 1.0

package model

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/nbd-wtf/go-nostr"
)

type (
	TagMap    = nostr.TagMap
	Tag       = nostr.Tag
	Tags      = nostr.Tags
	Timestamp = nostr.Timestamp
	ID        [32]byte
	PubKey    [32]byte
	SecretKey [32]byte
	Signature [64]byte

	EventReference interface {
		Filter() Filter
	}
	ReplaceableEventReference struct {
		PubKey PubKey
		DTag   string
		Kind   Kind
	}
	PlainEventReference struct {
		EventIDs []ID
	}
)

var (
	ErrInvalidHex        = errors.New("invalid hex")
	ErrInvalidLength     = errors.New("invalid length")
	ErrInvalidSecretKey  = errors.New("invalid secret key")
	ErrInvalidPubKey     = errors.New("invalid public key")
	ErrInvalidReference  = errors.New("invalid event reference")
	ErrUnknownMessage    = errors.New("unknown message")
	ErrMissingFilters    = errors.New("missing filters")
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrWrongEventParams  = errors.New("wrong event params")
	ErrUnsupportedTag    = errors.New("unsupported tag")
)

const (
	// Unbounded is the theoretical limit of a filter nothing structurally caps.
	Unbounded = math.MaxInt

	TagD = "d"
	TagE = "e"
	TagA = "a"
)
