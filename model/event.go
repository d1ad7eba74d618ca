// SPDX-License-Identifier: ice License 1.0

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/nbd-wtf/go-nostr"
)

type (
	EventTemplate struct {
		CreatedAt Timestamp
		Kind      Kind
		Tags      Tags
		Content   string
	}
	Event struct {
		ID        ID
		PubKey    PubKey
		Sig       Signature
		CreatedAt Timestamp
		Kind      Kind
		Tags      Tags
		Content   string
	}
)

const hexDigits = "0123456789abcdef"

// Finalize signs the template with sk. The template is consumed: its tags end up in the event.
func (t EventTemplate) Finalize(sk SecretKey) *Event {
	priv, pk := sk.mustKeyPair()
	id := ID(sha256.Sum256(t.Serialize(pk)))

	return &Event{
		ID:        id,
		PubKey:    pk,
		Sig:       signHash(priv, id[:]),
		CreatedAt: t.CreatedAt,
		Kind:      t.Kind,
		Tags:      t.Tags,
		Content:   t.Content,
	}
}

// Serialize renders the NIP-01 commitment `[0,"<pubkey>",<created_at>,<kind>,<tags>,"<content>"]`.
// The output is hashed into the event id, so it must stay byte-exact.
func (t EventTemplate) Serialize(pk PubKey) []byte {
	dst := make([]byte, 0, 100+len(t.Content)+len(t.Tags)*80)

	return serializeInto(dst, pk, t.CreatedAt, t.Kind, t.Tags, t.Content)
}

func (t EventTemplate) String() string {
	return fmt.Sprintf("EventTemplate(%v, %v, %v, %v)", t.Kind, t.CreatedAt, t.Tags, t.Content)
}

func serializeInto(dst []byte, pk PubKey, createdAt Timestamp, kind Kind, tags Tags, content string) []byte {
	dst = append(dst, `[0,"`...)
	dst = hex.AppendEncode(dst, pk[:])
	dst = append(dst, `",`...)
	dst = strconv.AppendInt(dst, int64(createdAt), 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(kind), 10)
	dst = append(dst, ",["...)
	for i, tag := range tags {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '[')
		for j, s := range tag {
			if j > 0 {
				dst = append(dst, ',')
			}
			dst = escapeString(dst, s)
		}
		dst = append(dst, ']')
	}
	dst = append(dst, "],"...)
	dst = escapeString(dst, content)

	return append(dst, ']')
}

// escapeString quotes s the way NIP-01 requires: only `"`, `\` and control bytes are escaped,
// everything else (html characters, DEL, multi-byte UTF-8) is copied as is.
func escapeString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	dst = append(dst, s[start:]...)

	return append(dst, '"')
}

func (e *Event) Template() EventTemplate {
	return EventTemplate{
		CreatedAt: e.CreatedAt,
		Kind:      e.Kind,
		Tags:      e.Tags,
		Content:   e.Content,
	}
}

func (e *Event) Serialize() []byte {
	dst := make([]byte, 0, 100+len(e.Content)+len(e.Tags)*80)

	return serializeInto(dst, e.PubKey, e.CreatedAt, e.Kind, e.Tags, e.Content)
}

func (e *Event) GetID() ID {
	return sha256.Sum256(e.Serialize())
}

func (e *Event) CheckID() bool {
	return e.GetID() == e.ID
}

// CheckSignature verifies both the id commitment and the signature over it.
func (e *Event) CheckSignature() bool {
	return e.CheckID() && e.Sig.Verify(e.ID[:], e.PubKey)
}

func (e *Event) IsReplaceable() bool {
	return e.Kind.IsReplaceable()
}

func (e *Event) IsEphemeral() bool {
	return e.Kind.IsEphemeral()
}

func (e *Event) IsAddressable() bool {
	return e.Kind.IsAddressable()
}

func (e *Event) GetTag(tagName string) Tag {
	for _, tag := range e.Tags {
		if tag.Key() == tagName {
			return tag
		}
	}

	return nil
}

func (e *Event) String() string {
	data, err := e.MarshalJSON()
	if err != nil {
		return "Event(" + e.ID.String() + ")"
	}

	return string(data)
}

func (e *Event) ToNostr() *nostr.Event {
	return &nostr.Event{
		ID:        e.ID.String(),
		PubKey:    e.PubKey.String(),
		CreatedAt: e.CreatedAt,
		Kind:      int(e.Kind),
		Tags:      e.Tags,
		Content:   e.Content,
		Sig:       e.Sig.String(),
	}
}

func EventFromNostr(ev *nostr.Event) (*Event, error) {
	if ev.Kind < 0 || ev.Kind > 65535 {
		return nil, errors.Errorf("wrong kind value %v", ev.Kind)
	}
	id, err := IDFromHex(ev.ID)
	if err != nil {
		return nil, err
	}
	pk, err := PubKeyFromHex(ev.PubKey)
	if err != nil {
		return nil, err
	}
	sig, err := SignatureFromHex(ev.Sig)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        id,
		PubKey:    pk,
		Sig:       sig,
		CreatedAt: ev.CreatedAt,
		Kind:      Kind(ev.Kind),
		Tags:      ev.Tags,
		Content:   ev.Content,
	}, nil
}
