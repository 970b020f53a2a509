//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/store"
)

// Store implements store.StructuredStore and store.DocumentHydrator over the
// relational parliamentary schema.
type Store struct {
	db *sql.DB
}

var (
	_ store.StructuredStore  = (*Store)(nil)
	_ store.DocumentHydrator = (*Store)(nil)
)

// NewStore creates a Store over an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const sqlLatestVoteQuestion = `
SELECT vq.id, vq.number, vq.session, vq.date::text,
       vq.result_en, vq.result_fr, vq.description_en, vq.description_fr,
       vq.yea_total, vq.nay_total, vq.paired_total,
       b.id
FROM vote_questions vq
JOIN bills b ON b.id = vq.bill_id
WHERE upper(b.number) = upper($1)
ORDER BY vq.date DESC, vq.number DESC
LIMIT 1`

const sqlMemberBallots = `
SELECT p.name, p.slug, pa.slug, r.name_en, r.name_fr, mv.ballot
FROM member_votes mv
JOIN politicians p ON p.id = mv.politician_id
JOIN parties pa ON pa.id = mv.party_id
JOIN ridings r ON r.id = mv.riding_id
WHERE mv.vote_question_id = $1
  AND ($2 = '' OR mv.ballot = $2)
  AND ($3 = '' OR pa.slug = $3)
ORDER BY p.name`

// CompleteMemberVotesForBill implements store.StructuredStore. The most
// recent vote question on the bill wins; (nil, nil) means no vote question
// exists for that bill.
func (s *Store) CompleteMemberVotesForBill(
	ctx context.Context, billNumber, voteType, partySlug, _ string,
) (*parl.VoteEnumeration, error) {
	var ve parl.VoteEnumeration
	ve.BillNumber = billNumber
	err := s.db.QueryRowContext(ctx, sqlLatestVoteQuestion, billNumber).Scan(
		&ve.VoteQuestionID, &ve.VoteNumber, &ve.Session, &ve.Date,
		&ve.ResultEN, &ve.ResultFR, &ve.DescriptionEN, &ve.DescriptionFR,
		&ve.YeaTotal, &ve.NayTotal, &ve.PairedTotal,
		&ve.BillID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: vote question lookup failed: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlMemberBallots, ve.VoteQuestionID, voteType, partySlug)
	if err != nil {
		return nil, fmt.Errorf("postgres: ballot query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b parl.MemberBallot
		if err := rows.Scan(
			&b.PoliticianName, &b.PoliticianSlug, &b.PartySlug,
			&b.RidingEN, &b.RidingFR, &b.Ballot,
		); err != nil {
			return nil, fmt.Errorf("postgres: ballot scan failed: %w", err)
		}
		ve.Ballots = append(ve.Ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: reading ballots failed: %w", err)
	}
	return &ve, nil
}

const sqlRoster = `
SELECT p.name, p.slug, pa.slug, r.name_en, r.name_fr, p.current
FROM politicians p
JOIN parties pa ON pa.id = p.party_id
JOIN ridings r ON r.id = p.riding_id
WHERE ($1 = '' OR pa.slug = $1)
  AND (NOT $2 OR p.current)
ORDER BY p.name`

const sqlPartyNames = `
SELECT name_en, name_fr FROM parties WHERE slug = $1`

// AllPoliticians implements store.StructuredStore. (nil, nil) means nothing
// matched the filters.
func (s *Store) AllPoliticians(
	ctx context.Context, partySlug string, currentOnly bool, _ string,
) (*parl.PoliticianRoster, error) {
	rows, err := s.db.QueryContext(ctx, sqlRoster, partySlug, currentOnly)
	if err != nil {
		return nil, fmt.Errorf("postgres: roster query failed: %w", err)
	}
	defer rows.Close()

	roster := &parl.PoliticianRoster{PartySlug: partySlug}
	for rows.Next() {
		var m parl.RosterMember
		if err := rows.Scan(&m.Name, &m.Slug, &m.PartySlug, &m.RidingEN, &m.RidingFR, &m.Current); err != nil {
			return nil, fmt.Errorf("postgres: roster scan failed: %w", err)
		}
		roster.Members = append(roster.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: reading roster failed: %w", err)
	}
	if len(roster.Members) == 0 {
		return nil, nil
	}

	if partySlug != "" {
		err := s.db.QueryRowContext(ctx, sqlPartyNames, partySlug).
			Scan(&roster.PartyNameEN, &roster.PartyNameFR)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("postgres: party lookup failed: %w", err)
		}
	}
	return roster, nil
}

const sqlDocument = `
SELECT markdown_en, markdown_fr FROM documents WHERE source_key = $1`

// HydrateMarkdown implements store.DocumentHydrator. The preferred language
// wins; the other language substitutes with a disclosure note; (nil, nil)
// means no canonical document exists for the ref.
func (s *Store) HydrateMarkdown(
	ctx context.Context, ref parl.SourceRef, lang string,
) (*store.HydratedDoc, error) {
	var en, fr sql.NullString
	err := s.db.QueryRowContext(ctx, sqlDocument, ref.Key()).Scan(&en, &fr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: document lookup failed: %w", err)
	}

	preferred, other := en, fr
	otherLang := parl.LanguageFR
	if lang == parl.LanguageFR {
		preferred, other = fr, en
		otherLang = parl.LanguageEN
	}
	if preferred.Valid && preferred.String != "" {
		return &store.HydratedDoc{Markdown: preferred.String, LanguageUsed: lang}, nil
	}
	if other.Valid && other.String != "" {
		note := "Document available in French only."
		if lang == parl.LanguageFR {
			note = "Document disponible en anglais seulement."
		}
		return &store.HydratedDoc{Markdown: other.String, LanguageUsed: otherLang, Note: note}, nil
	}
	return nil, nil
}
