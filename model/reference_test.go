// SPDX-License-Identifier: ice License 1.0

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEventReferences(t *testing.T) {
	t.Parallel()

	sk := helperSecretKey(t)
	id := helperFinalizeVectors()[0].ID
	pk := helperMustPubKey(t, testPubKey)

	t.Run("Plain", func(t *testing.T) {
		refs, err := ParseEventReferences(Tags{{"e", id}, {"p", testPubKey}, {"e"}, {"e", id, "wss://relay"}})
		require.NoError(t, err)
		require.Len(t, refs, 1)
		plain, ok := refs[0].(*PlainEventReference)
		require.True(t, ok)
		require.Len(t, plain.EventIDs, 2)
		require.Equal(t, id, plain.EventIDs[0].String())

		filter := plain.Filter()
		require.Equal(t, 1, filter.TheoreticalLimit())
		require.True(t, filter.Matches(EventTemplate{Kind: KindTextNote, Tags: Tags{}}.Finalize(sk)))
	})
	t.Run("Addressable", func(t *testing.T) {
		refs, err := ParseEventReferences(Tags{{"a", "30023:" + testPubKey + ":my:article"}})
		require.NoError(t, err)
		require.Len(t, refs, 1)
		ref, ok := refs[0].(*ReplaceableEventReference)
		require.True(t, ok)
		require.Equal(t, ReplaceableEventReference{PubKey: pk, DTag: "my:article", Kind: KindArticle}, *ref)
		require.Equal(t, "30023:"+testPubKey+":my:article", ref.String())

		filter := ref.Filter()
		require.Equal(t, Filter{Kinds: []Kind{KindArticle}, Authors: []PubKey{pk}, Tags: TagMap{"d": {"my:article"}}}, filter)
		require.Equal(t, 1, filter.TheoreticalLimit())

		article := EventTemplate{Kind: KindArticle, Tags: Tags{{"d", "my:article"}}}.Finalize(sk)
		require.True(t, filter.Matches(article))
		other := EventTemplate{Kind: KindArticle, Tags: Tags{{"d", "other"}}}.Finalize(sk)
		require.False(t, filter.Matches(other))
	})
	t.Run("Replaceable", func(t *testing.T) {
		refs, err := ParseEventReferences(Tags{{"a", "0:" + testPubKey + ":"}, {"e", id}})
		require.NoError(t, err)
		require.Len(t, refs, 2)
		ref, ok := refs[0].(*ReplaceableEventReference)
		require.True(t, ok)

		filter := ref.Filter()
		require.Nil(t, filter.Tags)
		require.Equal(t, 1, filter.TheoreticalLimit())
		require.True(t, filter.Matches(EventTemplate{Kind: KindProfileMetadata, Content: "{}"}.Finalize(sk)))
		require.IsType(t, new(PlainEventReference), refs[1])
	})
	t.Run("Empty", func(t *testing.T) {
		refs, err := ParseEventReferences(Tags{{"p", testPubKey}, {"t", "nostr"}})
		require.NoError(t, err)
		require.Empty(t, refs)
	})
	t.Run("Invalid", func(t *testing.T) {
		for _, tags := range []Tags{
			{{"e", "abc"}},
			{{"a", "30023:" + testPubKey}},
			{{"a", "kind:" + testPubKey + ":d"}},
			{{"a", "70000:" + testPubKey + ":d"}},
			{{"a", "30023:zz:d"}},
		} {
			_, err := ParseEventReferences(tags)
			require.Error(t, err, tags)
		}
	})
}
