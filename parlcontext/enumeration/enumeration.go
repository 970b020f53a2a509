//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package enumeration handles "complete result set" queries: member votes on
// a bill and party rosters. A successful result short-circuits the ordinary
// search pipeline entirely.
package enumeration

import (
	"context"
	"fmt"
	"strings"

	"github.com/openparl/parlrag/log"
	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/parlcontext/query"
	"github.com/openparl/parlrag/store"
)

// Handler resolves enumeration intents against the structured store.
type Handler struct {
	structured store.StructuredStore
	docs       store.DocumentHydrator
}

// New creates a Handler. docs may be nil; bill hydration is then skipped.
func New(structured store.StructuredStore, docs store.DocumentHydrator) *Handler {
	return &Handler{structured: structured, docs: docs}
}

// Handle resolves the enumeration intent. A nil return signals "fall back to
// ordinary search"; it is the expected outcome for unsupported kinds
// (committee) and for intents with no underlying data. Handle never returns
// an error: structured-store failures degrade to the fallback.
func (h *Handler) Handle(
	ctx context.Context, intent query.EnumerationIntent, lang string,
) *parl.ContextResult {
	if !intent.IsEnumeration || h.structured == nil {
		return nil
	}
	switch intent.Kind {
	case query.EnumerationVote:
		return h.handleVote(ctx, intent, lang)
	case query.EnumerationPolitician:
		return h.handlePolitician(ctx, intent, lang)
	case query.EnumerationCommittee:
		// Recognized but unimplemented: committee membership enumeration
		// falls through to ordinary search.
		log.Debugf("enumeration: committee enumeration not implemented, falling back to search")
		return nil
	default:
		return nil
	}
}

func (h *Handler) handleVote(
	ctx context.Context, intent query.EnumerationIntent, lang string,
) *parl.ContextResult {
	ve, err := h.structured.CompleteMemberVotesForBill(
		ctx, intent.BillNumber, intent.VoteType, intent.PartySlug, lang)
	if err != nil {
		log.Warnf("enumeration: vote lookup for %s failed: %v", intent.BillNumber, err)
		return nil
	}
	if ve == nil {
		return nil
	}

	citation := parl.NewVoteQuestionCitation(
		parl.VoteCitationCore{
			VoteQuestionID: ve.VoteQuestionID,
			VoteNumber:     ve.VoteNumber,
			Session:        ve.Session,
			Date:           ve.Date,
			DescriptionEN:  ve.DescriptionEN,
			DescriptionFR:  ve.DescriptionFR,
			ResultEN:       ve.ResultEN,
			ResultFR:       ve.ResultFR,
		},
		&parl.VoteCitationOverride{
			TitleEN: fmt.Sprintf("Complete member votes on Bill %s", ve.BillNumber),
			TitleFR: fmt.Sprintf("Votes complets des députés sur le projet de loi %s", ve.BillNumber),
			TextEN: fmt.Sprintf("Vote No. %d (%s) — Yea: %d, Nay: %d, Paired: %d. %s",
				ve.VoteNumber, ve.Date, ve.YeaTotal, ve.NayTotal, ve.PairedTotal, ve.ResultEN),
			TextFR: fmt.Sprintf("Vote no %d (%s) — Pour : %d, Contre : %d, Pairés : %d. %s",
				ve.VoteNumber, ve.Date, ve.YeaTotal, ve.NayTotal, ve.PairedTotal, ve.ResultFR),
		},
	).Numbered(1)

	result := &parl.ContextResult{
		Language:  lang,
		Prompt:    voteEnumerationPrompt(ve, intent, lang),
		Citations: []parl.Citation{citation},
	}

	// Best-effort bill hydration. Failure here must never invalidate the
	// vote citation.
	if h.docs != nil && ve.BillID != 0 {
		ref := parl.SourceRef{
			Type: parl.SourceBill,
			Bill: &parl.BillRef{BillID: ve.BillID, Number: ve.BillNumber, Session: ve.Session},
		}
		doc, err := h.docs.HydrateMarkdown(ctx, ref, lang)
		if err != nil {
			log.Warnf("enumeration: bill hydration for %s failed: %v", ve.BillNumber, err)
		} else if doc != nil {
			result.HydratedSources = []parl.HydratedSource{{
				SourceType:   parl.SourceBill,
				Key:          ref.Key(),
				Markdown:     doc.Markdown,
				LanguageUsed: doc.LanguageUsed,
				Note:         doc.Note,
			}}
		}
	}
	return result
}

func voteEnumerationPrompt(ve *parl.VoteEnumeration, intent query.EnumerationIntent, lang string) string {
	var b strings.Builder
	if lang == parl.LanguageFR {
		fmt.Fprintf(&b, "Vote no %d sur le projet de loi %s (%s) : %s.\n",
			ve.VoteNumber, ve.BillNumber, ve.Date, ve.ResultFR)
		fmt.Fprintf(&b, "Pour : %d, Contre : %d, Pairés : %d.\n", ve.YeaTotal, ve.NayTotal, ve.PairedTotal)
		fmt.Fprintf(&b, "%d député(e)s dans la liste demandée :\n\n", len(ve.Ballots))
	} else {
		fmt.Fprintf(&b, "Vote No. %d on Bill %s (%s): %s.\n",
			ve.VoteNumber, ve.BillNumber, ve.Date, ve.ResultEN)
		fmt.Fprintf(&b, "Yea: %d, Nay: %d, Paired: %d.\n", ve.YeaTotal, ve.NayTotal, ve.PairedTotal)
		fmt.Fprintf(&b, "%d members in the requested list:\n\n", len(ve.Ballots))
	}
	for _, ballot := range ve.Ballots {
		riding := ballot.RidingEN
		if lang == parl.LanguageFR && ballot.RidingFR != "" {
			riding = ballot.RidingFR
		}
		fmt.Fprintf(&b, "- %s (%s, %s): %s\n", ballot.PoliticianName, ballot.PartySlug, riding, ballot.Ballot)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *Handler) handlePolitician(
	ctx context.Context, intent query.EnumerationIntent, lang string,
) *parl.ContextResult {
	roster, err := h.structured.AllPoliticians(ctx, intent.PartySlug, true, lang)
	if err != nil {
		log.Warnf("enumeration: roster lookup (%q) failed: %v", intent.PartySlug, err)
		return nil
	}
	if roster == nil || len(roster.Members) == 0 {
		return nil
	}

	var titleEN, titleFR string
	if roster.PartySlug != "" {
		partyEN, partyFR := roster.PartyNameEN, roster.PartyNameFR
		if partyEN == "" {
			partyEN = roster.PartySlug
		}
		if partyFR == "" {
			partyFR = partyEN
		}
		titleEN = fmt.Sprintf("Members of the House of Commons — %s", partyEN)
		titleFR = fmt.Sprintf("Députés de la Chambre des communes — %s", partyFR)
	} else {
		titleEN = "Current Members of the House of Commons"
		titleFR = "Députés actuels de la Chambre des communes"
	}

	citation := parl.Citation{
		SourceType: parl.SourcePolitician,
		TitleEN:    titleEN,
		TitleFR:    titleFR,
		TextEN:     fmt.Sprintf("%d current members", len(roster.Members)),
		TextFR:     fmt.Sprintf("%d député(e)s en fonction", len(roster.Members)),
		URLEN:      "https://openparliament.ca/politicians/",
		URLFR:      "https://openparliament.ca/politicians/?lang=fr",
	}.Numbered(1)

	return &parl.ContextResult{
		Language:  lang,
		Prompt:    rosterPrompt(roster, lang),
		Citations: []parl.Citation{citation},
	}
}

func rosterPrompt(roster *parl.PoliticianRoster, lang string) string {
	var b strings.Builder
	if lang == parl.LanguageFR {
		fmt.Fprintf(&b, "%d député(e)s correspondent à la demande :\n\n", len(roster.Members))
	} else {
		fmt.Fprintf(&b, "%d members match the request:\n\n", len(roster.Members))
	}
	for _, m := range roster.Members {
		riding := m.RidingEN
		if lang == parl.LanguageFR && m.RidingFR != "" {
			riding = m.RidingFR
		}
		fmt.Fprintf(&b, "- %s (%s, %s)\n", m.Name, m.PartySlug, riding)
	}
	return strings.TrimRight(b.String(), "\n")
}
