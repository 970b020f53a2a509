//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package parl defines the shared domain types for the Parliament retrieval
// pipeline: source types, citations, search results and enumeration payloads.
package parl

import "fmt"

// SourceType identifies the category of an indexed parliamentary document.
type SourceType string

// Known source types.
const (
	// SourceBill is the text and status of a bill (e.g. C-35).
	SourceBill SourceType = "bill"
	// SourceVote is a recorded division (vote question) in the House.
	SourceVote SourceType = "vote"
	// SourceStatement is a single Hansard statement by a member.
	SourceStatement SourceType = "statement"
	// SourceDebate is a full sitting day's Hansard.
	SourceDebate SourceType = "debate"
	// SourceCommittee is a committee profile, study or report.
	SourceCommittee SourceType = "committee"
	// SourcePolitician is a member profile.
	SourcePolitician SourceType = "politician"
)

// AllSourceTypes lists every known source type in a stable order.
var AllSourceTypes = []SourceType{
	SourceBill,
	SourceVote,
	SourceStatement,
	SourceDebate,
	SourceCommittee,
	SourcePolitician,
}

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	switch t {
	case SourceBill, SourceVote, SourceStatement, SourceDebate, SourceCommittee, SourcePolitician:
		return true
	}
	return false
}

// BillRef identifies a bill.
type BillRef struct {
	BillID  int    `json:"bill_id"`
	Number  string `json:"number"`  // e.g. "C-35"
	Session string `json:"session"` // e.g. "44-1"
}

// VoteRef identifies a recorded vote question.
type VoteRef struct {
	VoteQuestionID int    `json:"vote_question_id"`
	VoteNumber     int    `json:"vote_number"`
	Session        string `json:"session"`
}

// StatementRef identifies a single Hansard statement.
type StatementRef struct {
	StatementID int    `json:"statement_id"`
	DebateDate  string `json:"debate_date"` // YYYY-MM-DD
	Sequence    int    `json:"sequence"`
}

// DebateRef identifies a sitting day's Hansard.
type DebateRef struct {
	DebateID int    `json:"debate_id"`
	Date     string `json:"date"`
	Number   string `json:"number"`
}

// CommitteeRef identifies a committee.
type CommitteeRef struct {
	CommitteeID int    `json:"committee_id"`
	Slug        string `json:"slug"`
}

// PoliticianRef identifies a member of Parliament.
type PoliticianRef struct {
	PoliticianID int    `json:"politician_id"`
	Slug         string `json:"slug"`
}

// SourceRef is a tagged union identifying the canonical document behind a
// search result. Exactly the variant named by Type is non-nil.
type SourceRef struct {
	Type       SourceType     `json:"type"`
	Bill       *BillRef       `json:"bill,omitempty"`
	Vote       *VoteRef       `json:"vote,omitempty"`
	Statement  *StatementRef  `json:"statement,omitempty"`
	Debate     *DebateRef     `json:"debate,omitempty"`
	Committee  *CommitteeRef  `json:"committee,omitempty"`
	Politician *PoliticianRef `json:"politician,omitempty"`
}

// Key returns a stable identity for the referenced document. Two search
// results referring to the same document always share a key, regardless of
// which reformulated query produced them.
func (r SourceRef) Key() string {
	switch r.Type {
	case SourceBill:
		if r.Bill != nil {
			return fmt.Sprintf("bill:%d", r.Bill.BillID)
		}
	case SourceVote:
		if r.Vote != nil {
			return fmt.Sprintf("vote:%d", r.Vote.VoteQuestionID)
		}
	case SourceStatement:
		if r.Statement != nil {
			return fmt.Sprintf("statement:%d", r.Statement.StatementID)
		}
	case SourceDebate:
		if r.Debate != nil {
			return fmt.Sprintf("debate:%d", r.Debate.DebateID)
		}
	case SourceCommittee:
		if r.Committee != nil {
			return fmt.Sprintf("committee:%d", r.Committee.CommitteeID)
		}
	case SourcePolitician:
		if r.Politician != nil {
			return fmt.Sprintf("politician:%d", r.Politician.PoliticianID)
		}
	}
	return fmt.Sprintf("%s:?", r.Type)
}
