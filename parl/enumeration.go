//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package parl

import "fmt"

// Ballot values recorded for a member on a vote question.
const (
	BallotYea    = "yea"
	BallotNay    = "nay"
	BallotPaired = "paired"
)

// MemberBallot is one member's recorded ballot on a vote question.
type MemberBallot struct {
	PoliticianName string `json:"politician_name"`
	PoliticianSlug string `json:"politician_slug"`
	PartySlug      string `json:"party_slug"`
	RidingEN       string `json:"riding_en"`
	RidingFR       string `json:"riding_fr"`
	Ballot         string `json:"ballot"`
}

// VoteEnumeration is the complete, unsampled set of member ballots for one
// vote question on a bill, with pre-computed totals.
type VoteEnumeration struct {
	BillID         int            `json:"bill_id"`
	BillNumber     string         `json:"bill_number"`
	VoteQuestionID int            `json:"vote_question_id"`
	VoteNumber     int            `json:"vote_number"`
	Session        string         `json:"session"`
	Date           string         `json:"date"`
	ResultEN       string         `json:"result_en"`
	ResultFR       string         `json:"result_fr"`
	DescriptionEN  string         `json:"description_en"`
	DescriptionFR  string         `json:"description_fr"`
	Ballots        []MemberBallot `json:"ballots"`
	YeaTotal       int            `json:"yea_total"`
	NayTotal       int            `json:"nay_total"`
	PairedTotal    int            `json:"paired_total"`
}

// RosterMember is one member of Parliament in a roster enumeration.
type RosterMember struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PartySlug string `json:"party_slug"`
	RidingEN  string `json:"riding_en"`
	RidingFR  string `json:"riding_fr"`
	Current   bool   `json:"current"`
}

// PoliticianRoster is the complete set of members matching a roster
// enumeration, optionally scoped to one party.
type PoliticianRoster struct {
	PartySlug   string         `json:"party_slug,omitempty"`
	PartyNameEN string         `json:"party_name_en,omitempty"`
	PartyNameFR string         `json:"party_name_fr,omitempty"`
	Members     []RosterMember `json:"members"`
}

// VoteCitationCore carries the fields every vote-question citation is built
// from, regardless of how it is rendered.
type VoteCitationCore struct {
	VoteQuestionID int
	VoteNumber     int
	Session        string
	Date           string
	DescriptionEN  string
	DescriptionFR  string
	ResultEN       string
	ResultFR       string
}

// VoteCitationOverride replaces the generic title/body of a vote-question
// citation. The enumeration path uses it to render a richer citation than
// the one attached to an ordinary search hit.
type VoteCitationOverride struct {
	TitleEN string
	TitleFR string
	TextEN  string
	TextFR  string
}

// NewVoteQuestionCitation builds the bilingual citation for a vote question.
// Override fields, when non-empty, replace the generic title and body.
func NewVoteQuestionCitation(core VoteCitationCore, override *VoteCitationOverride) Citation {
	c := Citation{
		SourceType: SourceVote,
		TitleEN:    fmt.Sprintf("Vote No. %d (%s)", core.VoteNumber, core.Date),
		TitleFR:    fmt.Sprintf("Vote no %d (%s)", core.VoteNumber, core.Date),
		TextEN:     fmt.Sprintf("%s — %s", core.DescriptionEN, core.ResultEN),
		TextFR:     fmt.Sprintf("%s — %s", core.DescriptionFR, core.ResultFR),
		URLEN:      VoteURL(LanguageEN, core.Session, core.VoteNumber),
		URLFR:      VoteURL(LanguageFR, core.Session, core.VoteNumber),
	}
	if override == nil {
		return c
	}
	if override.TitleEN != "" {
		c.TitleEN = override.TitleEN
	}
	if override.TitleFR != "" {
		c.TitleFR = override.TitleFR
	}
	if override.TextEN != "" {
		c.TextEN = override.TextEN
	}
	if override.TextFR != "" {
		c.TextFR = override.TextFR
	}
	return c
}
