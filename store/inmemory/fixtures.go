//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package inmemory

import "github.com/openparl/parlrag/parl"

// Demo returns a Store seeded with a small bilingual slice of the 44th
// Parliament around Bill C-35, enough to exercise every pipeline path
// without a database.
func Demo() *Store {
	s := New()

	billRef := parl.SourceRef{
		Type: parl.SourceBill,
		Bill: &parl.BillRef{BillID: 12, Number: "C-35", Session: "44-1"},
	}
	s.AddExcerpt(parl.SearchResult{
		Content: "An Act respecting early learning and child care in Canada. " +
			"The bill commits federal funding to a Canada-wide system.",
		Ref: billRef,
		Citation: parl.Citation{
			SourceType: parl.SourceBill,
			TitleEN:    "Bill C-35: Canada Early Learning and Child Care Act",
			TitleFR:    "Projet de loi C-35 : Loi sur l'apprentissage et la garde des jeunes enfants au Canada",
			TextEN:     "Introduced December 2022; received royal assent March 2024.",
			TextFR:     "Déposé en décembre 2022; sanction royale en mars 2024.",
			URLEN:      parl.BillURL(parl.LanguageEN, "44-1", "C-35"),
			URLFR:      parl.BillURL(parl.LanguageFR, "44-1", "C-35"),
		},
	})

	voteRef := parl.SourceRef{
		Type: parl.SourceVote,
		Vote: &parl.VoteRef{VoteQuestionID: 7, VoteNumber: 412, Session: "44-1"},
	}
	s.AddExcerpt(parl.SearchResult{
		Content: "Third reading vote on Bill C-35, the child care bill. Passed 177 to 64.",
		Ref:     voteRef,
		Citation: parl.NewVoteQuestionCitation(parl.VoteCitationCore{
			VoteQuestionID: 7,
			VoteNumber:     412,
			Session:        "44-1",
			Date:           "2023-06-19",
			DescriptionEN:  "3rd reading of Bill C-35",
			DescriptionFR:  "3e lecture du projet de loi C-35",
			ResultEN:       "Passed",
			ResultFR:       "Adopté",
		}, nil),
	})

	s.AddExcerpt(parl.SearchResult{
		Content: "The minister spoke on affordable child care and Bill C-35 during question period.",
		Ref: parl.SourceRef{
			Type:      parl.SourceStatement,
			Statement: &parl.StatementRef{StatementID: 9001, DebateDate: "2023-06-12", Sequence: 42},
		},
		Citation: parl.Citation{
			SourceType: parl.SourceStatement,
			TitleEN:    "Statement on child care affordability",
			TitleFR:    "Déclaration sur l'abordabilité des services de garde",
			URLEN:      parl.StatementURL(parl.LanguageEN, "2023-06-12", 42),
			URLFR:      parl.StatementURL(parl.LanguageFR, "2023-06-12", 42),
		},
	})

	s.AddVoteEnumeration(&parl.VoteEnumeration{
		BillID:         12,
		BillNumber:     "C-35",
		VoteQuestionID: 7,
		VoteNumber:     412,
		Session:        "44-1",
		Date:           "2023-06-19",
		ResultEN:       "Passed",
		ResultFR:       "Adopté",
		DescriptionEN:  "3rd reading of Bill C-35",
		DescriptionFR:  "3e lecture du projet de loi C-35",
		Ballots: []parl.MemberBallot{
			{PoliticianName: "Jane Doe", PoliticianSlug: "jane-doe", PartySlug: "liberal", RidingEN: "Halifax", Ballot: parl.BallotYea},
			{PoliticianName: "John Roe", PoliticianSlug: "john-roe", PartySlug: "ndp", RidingEN: "Burnaby South", Ballot: parl.BallotYea},
			{PoliticianName: "Ann Poe", PoliticianSlug: "ann-poe", PartySlug: "conservative", RidingEN: "Calgary Centre", Ballot: parl.BallotNay},
		},
		YeaTotal: 177,
		NayTotal: 64,
	})

	s.SetRoster(&parl.PoliticianRoster{
		Members: []parl.RosterMember{
			{Name: "Jane Doe", Slug: "jane-doe", PartySlug: "liberal", RidingEN: "Halifax", Current: true},
			{Name: "John Roe", Slug: "john-roe", PartySlug: "ndp", RidingEN: "Burnaby South", Current: true},
			{Name: "Ann Poe", Slug: "ann-poe", PartySlug: "conservative", RidingEN: "Calgary Centre", Current: true},
		},
	})

	s.AddDocument(billRef, parl.LanguageEN,
		"# Bill C-35\n\nAn Act respecting early learning and child care in Canada.\n")
	s.AddDocument(billRef, parl.LanguageFR,
		"# Projet de loi C-35\n\nLoi relative à l'apprentissage et à la garde des jeunes enfants au Canada.\n")
	s.AddDocument(voteRef, parl.LanguageEN,
		"# Vote No. 412\n\n3rd reading of Bill C-35. Passed 177 to 64.\n")

	return s
}
