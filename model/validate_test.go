// SPDX-License-Identifier: ice License 1.0

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventValidate(t *testing.T) {
	t.Parallel()

	sk := helperSecretKey(t)
	note := EventTemplate{CreatedAt: 1, Kind: KindTextNote, Tags: Tags{}, Content: "hello"}.Finalize(sk)
	noteID := note.ID.String()
	repostContent := note.String()

	tests := []struct {
		Name     string
		Template EventTemplate
		Err      string
	}{
		{Name: "TextNote", Template: EventTemplate{Kind: KindTextNote, Tags: Tags{{"e", noteID, "", "reply"}, {"p", testPubKey}}, Content: "hi"}},
		{Name: "TextNoteNonce", Template: EventTemplate{Kind: KindTextNote, Tags: Tags{{"nonce", "1", "20"}}, Content: "hi"}},
		{Name: "TextNoteWrongMarker", Template: EventTemplate{Kind: KindTextNote, Tags: Tags{{"e", noteID, "", "parent"}}}, Err: "nip-10"},
		{Name: "TextNoteBadReference", Template: EventTemplate{Kind: KindTextNote, Tags: Tags{{"e", "abc"}}}, Err: "nip-01"},
		{Name: "TextNoteUnsupportedTag", Template: EventTemplate{Kind: KindTextNote, Tags: Tags{{"d", "x"}}}, Err: "not supported"},
		{Name: "TextNoteLabel", Template: EventTemplate{Kind: KindTextNote, Tags: Tags{{"l", "funny", "ugc"}}}},
		{Name: "TextNoteLabelNamespace", Template: EventTemplate{Kind: KindTextNote, Tags: Tags{{"l", "funny", "other"}}}, Err: "nip-32"},
		{Name: "Metadata", Template: EventTemplate{Kind: KindProfileMetadata, Content: `{"name":"alice"}`}},
		{Name: "MetadataNotObject", Template: EventTemplate{Kind: KindProfileMetadata, Content: `["alice"]`}, Err: "nip-01"},
		{Name: "FollowList", Template: EventTemplate{Kind: KindFollowList, Tags: Tags{{"p", testPubKey}}}},
		{Name: "FollowListEmptyPubKey", Template: EventTemplate{Kind: KindFollowList, Tags: Tags{{"p", ""}}}, Err: "nip-02"},
		{Name: "Deletion", Template: EventTemplate{Kind: KindDeletion, Tags: Tags{{"e", noteID}}}},
		{Name: "DeletionEmpty", Template: EventTemplate{Kind: KindDeletion, Tags: Tags{{"k", "1"}}}, Err: "nip-09"},
		{Name: "Repost", Template: EventTemplate{Kind: KindRepost, Tags: Tags{{"e", noteID}, {"p", testPubKey}}, Content: repostContent}},
		{Name: "RepostWrongTarget", Template: EventTemplate{Kind: KindRepost, Tags: Tags{{"e", helperFinalizeVectors()[0].ID}}, Content: repostContent}, Err: "nip-18"},
		{Name: "GenericRepost", Template: EventTemplate{Kind: KindGenericRepost, Tags: Tags{{"e", noteID}, {"k", "1"}}, Content: repostContent}},
		{Name: "GenericRepostWithoutK", Template: EventTemplate{Kind: KindGenericRepost, Tags: Tags{{"e", noteID}}, Content: repostContent}, Err: "nip-18"},
		{Name: "Reaction", Template: EventTemplate{Kind: KindReaction, Tags: Tags{{"e", noteID}, {"p", testPubKey}}, Content: "+"}},
		{Name: "ReactionWithoutTarget", Template: EventTemplate{Kind: KindReaction, Tags: Tags{{"p", testPubKey}}, Content: "+"}, Err: "nip-25"},
		{Name: "Labeling", Template: EventTemplate{Kind: KindLabeling, Tags: Tags{{"L", "topic"}, {"l", "go", "topic"}, {"t", "golang"}}}},
		{Name: "LabelingWithoutTarget", Template: EventTemplate{Kind: KindLabeling, Tags: Tags{{"l", "go", "ugc"}}}, Err: "nip-32"},
		{Name: "Article", Template: EventTemplate{Kind: KindArticle, Tags: Tags{{"d", "intro"}, {"title", "Intro"}}, Content: "# Intro"}},
		{Name: "ArticleWithoutD", Template: EventTemplate{Kind: KindArticle, Content: "# Intro"}, Err: "nip-01"},
		{Name: "ArticleJSON", Template: EventTemplate{Kind: KindArticle, Tags: Tags{{"d", "intro"}}, Content: `{"a":1}`}, Err: "nip-23"},
		{Name: "AddressableOtherKind", Template: EventTemplate{Kind: 30000, Tags: Tags{{"p", testPubKey}}}, Err: "nip-01"},
		{Name: "UnknownKind", Template: EventTemplate{Kind: 4242, Tags: Tags{{"anything", "goes"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()

			ev := tt.Template.Finalize(sk)
			err := ev.Validate()
			if tt.Err == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.Err)
			}
			require.True(t, ev.CheckSignature())
		})
	}
}
