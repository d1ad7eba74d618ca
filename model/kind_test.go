// SPDX-License-Identifier: ice License 1.0

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     Kind
		expected KindClass
	}{
		{kind: KindProfileMetadata, expected: KindClassReplaceable},
		{kind: KindTextNote, expected: KindClassRegular},
		{kind: 2, expected: KindClassRegular},
		{kind: KindFollowList, expected: KindClassReplaceable},
		{kind: KindDeletion, expected: KindClassRegular},
		{kind: 9_999, expected: KindClassRegular},
		{kind: 10_000, expected: KindClassReplaceable},
		{kind: 10_002, expected: KindClassReplaceable},
		{kind: 19_999, expected: KindClassReplaceable},
		{kind: 20_000, expected: KindClassEphemeral},
		{kind: 29_999, expected: KindClassEphemeral},
		{kind: 30_000, expected: KindClassAddressable},
		{kind: KindArticle, expected: KindClassAddressable},
		{kind: 39_999, expected: KindClassAddressable},
		{kind: 40_000, expected: KindClassRegular},
		{kind: 65_535, expected: KindClassRegular},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.kind.Class(), tt.expected.String())
			require.Equal(t, tt.expected == KindClassRegular, tt.kind.IsRegular())
			require.Equal(t, tt.expected == KindClassReplaceable, tt.kind.IsReplaceable())
			require.Equal(t, tt.expected == KindClassEphemeral, tt.kind.IsEphemeral())
			require.Equal(t, tt.expected == KindClassAddressable, tt.kind.IsAddressable())
		})
	}
}
