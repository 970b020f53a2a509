//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package parl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceRefKeyStable(t *testing.T) {
	a := SourceRef{Type: SourceBill, Bill: &BillRef{BillID: 12, Number: "C-35", Session: "44-1"}}
	b := SourceRef{Type: SourceBill, Bill: &BillRef{BillID: 12, Number: "c-35", Session: "44-1"}}
	require.Equal(t, a.Key(), b.Key(), "identity must not depend on display fields")

	c := SourceRef{Type: SourceVote, Vote: &VoteRef{VoteQuestionID: 12}}
	require.NotEqual(t, a.Key(), c.Key())
}

func TestSourceRefKeyMissingVariant(t *testing.T) {
	r := SourceRef{Type: SourcePolitician}
	require.Equal(t, "politician:?", r.Key())
}

func TestAllowedSourceTypesExhaustive(t *testing.T) {
	for _, intent := range []Intent{
		IntentBill, IntentVote, IntentDebate, IntentCommittee, IntentPolitician, IntentGeneral,
	} {
		allowed := AllowedSourceTypes(intent)
		require.NotEmpty(t, allowed, "intent %s", intent)
		for st := range allowed {
			require.True(t, st.Valid(), "intent %s allows unknown type %s", intent, st)
		}
	}
}

func TestAllowedSourceTypesBillExcludesCommittee(t *testing.T) {
	allowed := AllowedSourceTypes(IntentBill)
	require.True(t, allowed[SourceBill])
	require.False(t, allowed[SourceCommittee],
		"a committee report must not be citable for a pure bill question")
}

func TestAllowedSourceTypesUnknownIntentIsPermissive(t *testing.T) {
	allowed := AllowedSourceTypes(Intent("brand-new"))
	require.Len(t, allowed, len(AllSourceTypes))
}

func TestCitationNumbered(t *testing.T) {
	c := Citation{SourceType: SourceBill, TitleEN: "An Act"}
	n := c.Numbered(3)
	require.Equal(t, 3, n.ID)
	require.Equal(t, "P3", n.DisplayID)
	require.Zero(t, c.ID, "Numbered must not mutate the receiver")
}

func TestCitationLanguageFallback(t *testing.T) {
	c := Citation{TitleEN: "Budget", TitleFR: ""}
	require.Equal(t, "Budget", c.Title(LanguageFR))
	c.TitleFR = "Budget fédéral"
	require.Equal(t, "Budget fédéral", c.Title(LanguageFR))
	require.Equal(t, "Budget", c.Title(LanguageEN))
}

func TestNewVoteQuestionCitationOverride(t *testing.T) {
	core := VoteCitationCore{
		VoteQuestionID: 7,
		VoteNumber:     412,
		Session:        "44-1",
		Date:           "2023-06-19",
		DescriptionEN:  "3rd reading of Bill C-35",
		DescriptionFR:  "3e lecture du projet de loi C-35",
		ResultEN:       "Passed",
		ResultFR:       "Adopté",
	}

	generic := NewVoteQuestionCitation(core, nil)
	require.Equal(t, SourceVote, generic.SourceType)
	require.Contains(t, generic.TitleEN, "Vote No. 412")
	require.Contains(t, generic.TextFR, "Adopté")
	require.NotEmpty(t, generic.URLEN)
	require.NotEmpty(t, generic.URLFR)

	rich := NewVoteQuestionCitation(core, &VoteCitationOverride{
		TitleEN: "Complete member votes on Bill C-35",
		TitleFR: "Votes complets des députés sur le projet de loi C-35",
	})
	require.Equal(t, "Complete member votes on Bill C-35", rich.TitleEN)
	// Unoverridden fields keep the generic rendering.
	require.Equal(t, generic.TextEN, rich.TextEN)
	require.Equal(t, generic.URLFR, rich.URLFR)
}
