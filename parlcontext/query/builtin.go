//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package query

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/openparl/parlrag/parl"
)

// maxReformulations bounds how many paraphrases are generated per query.
const maxReformulations = 3

// BuiltinAnalyzer is the heuristic implementation of Analyzer. All of its
// classification is lexical: stopword scoring for language, keyword sets for
// intent, regular expressions for entities and enumeration phrasings.
type BuiltinAnalyzer struct{}

var _ Analyzer = (*BuiltinAnalyzer)(nil)

// NewBuiltinAnalyzer creates the default heuristic analyzer.
func NewBuiltinAnalyzer() *BuiltinAnalyzer {
	return &BuiltinAnalyzer{}
}

var billNumberRe = regexp.MustCompile(`(?i)\b([cs])-?(\d{1,4})\b`)

// French-only and English-only stopwords used for lexical language scoring.
// Scored on accent-folded tokens; words common to both languages are omitted.
var (
	frenchWords = map[string]bool{
		"le": true, "la": true, "les": true, "un": true, "une": true,
		"des": true, "du": true, "de": true, "est": true, "que": true,
		"qui": true, "quoi": true, "pour": true, "dans": true, "avec": true,
		"sur": true, "et": true, "au": true, "aux": true, "ce": true,
		"cette": true, "quel": true, "quelle": true, "quels": true,
		"quelles": true, "comment": true, "pourquoi": true, "combien": true,
		"loi": true, "projet": true, "depute": true, "deputes": true,
		"deputee": true, "deputees": true, "comite": true, "comites": true,
		"vote": false, // shared with English, never scored
		"chambre": true, "communes": true, "gouvernement": true, "tous": true,
		"toutes": true, "liste": true,
	}
	englishWords = map[string]bool{
		"the": true, "a": true, "an": true, "is": true, "are": true,
		"was": true, "were": true, "what": true, "who": true, "which": true,
		"of": true, "and": true, "for": true, "on": true, "in": true,
		"to": true, "how": true, "why": true, "did": true, "does": true,
		"bill": true, "bills": true, "house": true, "member": true,
		"members": true, "committee": true, "committees": true,
		"about": true, "all": true, "list": true, "voted": true,
	}
)

var accentFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// foldAccents strips combining diacritics so "député" and "depute" compare
// equal during keyword matching.
func foldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// Analyze implements Analyzer.
func (ba *BuiltinAnalyzer) Analyze(_ context.Context, rawQuery string) *Analysis {
	a := &Analysis{Query: rawQuery}

	trimmed := strings.TrimSpace(rawQuery)
	if trimmed == "" {
		a.Language = parl.LanguageEN
		a.PriorityIntent = parl.IntentGeneral
		a.SearchTypes = defaultSearchTypes()
		return a
	}

	a.Language, a.Confidence = detectLanguage(trimmed)
	a.BillNumbers = extractBillNumbers(trimmed)

	folded := foldAccents(strings.ToLower(trimmed))
	a.PriorityIntent = classifyIntent(folded, a.BillNumbers)
	a.Enumeration = detectEnumeration(folded, a.BillNumbers)

	// Search types and reformulations are skipped when an enumeration intent
	// was detected: the enumeration path does not use them, and the pipeline
	// re-derives them via DeriveSearchPlan when it falls back to search.
	if !a.Enumeration.IsEnumeration {
		ba.DeriveSearchPlan(a)
	}
	return a
}

// DeriveSearchPlan implements Analyzer.
func (ba *BuiltinAnalyzer) DeriveSearchPlan(a *Analysis) {
	folded := foldAccents(strings.ToLower(a.Query))
	a.SearchTypes = classifySearchTypes(folded, a.BillNumbers)
	a.Reformulations = reformulate(a.Query, a.Language, a.BillNumbers)
}

// detectLanguage scores French-only against English-only stopwords, with
// diacritics weighing toward French. Empty or ambiguous input defaults to
// English with confidence 0.
func detectLanguage(s string) (string, float64) {
	var fr, en int
	for _, tok := range tokenize(foldAccents(s)) {
		if frenchWords[tok] {
			fr++
		}
		if englishWords[tok] {
			en++
		}
	}
	for _, r := range s {
		if strings.ContainsRune("àâçéèêëîïôùûüÿœ", unicode.ToLower(r)) {
			fr += 2
		}
	}

	total := fr + en
	if total == 0 || fr == en {
		return parl.LanguageEN, 0
	}
	confidence := float64(abs(fr-en)) / float64(total)
	if confidence > 1 {
		confidence = 1
	}
	if fr > en {
		return parl.LanguageFR, confidence
	}
	return parl.LanguageEN, confidence
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// extractBillNumbers finds bill numbers such as "C-35" or "s12" and
// normalizes them to the canonical "C-35" form, de-duplicated in order of
// first appearance.
func extractBillNumbers(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range billNumberRe.FindAllStringSubmatch(s, -1) {
		num := strings.ToUpper(m[1]) + "-" + m[2]
		if !seen[num] {
			seen[num] = true
			out = append(out, num)
		}
	}
	return out
}

// Keyword sets per category, matched against the accent-folded lowercase
// query.
var (
	voteKeywords = []string{
		"voted", "vote", "votes", "division", "scrutin", "ballot",
	}
	committeeKeywords = []string{
		"committee", "committees", "comite", "comites",
	}
	politicianKeywords = []string{
		"mp", "mps", "depute", "deputes", "deputee", "deputees",
		"politician", "minister", "ministre", "riding", "circonscription",
	}
	debateKeywords = []string{
		"said", "say", "debate", "debates", "debat", "debats", "hansard",
		"discussed", "statement", "speech", "discours", "declaration",
	}
	billKeywords = []string{
		"bill", "bills", "loi", "lois", "legislation", "act", "projet",
	}
)

func containsAnyWord(folded string, words []string) bool {
	toks := tokenize(folded)
	set := make(map[string]bool, len(toks))
	for _, t := range toks {
		set[t] = true
	}
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}

// classifyIntent derives the single best-guess category the user primarily
// wants. Precedence runs from the most specific signal to the least.
func classifyIntent(folded string, billNumbers []string) parl.Intent {
	switch {
	case containsAnyWord(folded, voteKeywords):
		return parl.IntentVote
	case containsAnyWord(folded, committeeKeywords):
		return parl.IntentCommittee
	case containsAnyWord(folded, politicianKeywords):
		return parl.IntentPolitician
	case containsAnyWord(folded, debateKeywords):
		return parl.IntentDebate
	case len(billNumbers) > 0 || containsAnyWord(folded, billKeywords):
		return parl.IntentBill
	default:
		return parl.IntentGeneral
	}
}

// classifySearchTypes picks which corpora are plausibly relevant to the
// query. Unlike the intent filter this is deliberately broad: it scopes the
// search fan-out, not the citations.
func classifySearchTypes(folded string, billNumbers []string) []parl.SourceType {
	set := make(map[parl.SourceType]bool)
	if containsAnyWord(folded, voteKeywords) {
		set[parl.SourceVote] = true
		set[parl.SourceBill] = true
	}
	if containsAnyWord(folded, committeeKeywords) {
		set[parl.SourceCommittee] = true
		set[parl.SourceStatement] = true
	}
	if containsAnyWord(folded, politicianKeywords) {
		set[parl.SourcePolitician] = true
		set[parl.SourceStatement] = true
	}
	if containsAnyWord(folded, debateKeywords) {
		set[parl.SourceDebate] = true
		set[parl.SourceStatement] = true
	}
	if len(billNumbers) > 0 || containsAnyWord(folded, billKeywords) {
		set[parl.SourceBill] = true
		set[parl.SourceVote] = true
		set[parl.SourceStatement] = true
	}
	if len(set) == 0 {
		return defaultSearchTypes()
	}

	// Stable order regardless of which keyword matched first.
	var out []parl.SourceType
	for _, t := range parl.AllSourceTypes {
		if set[t] {
			out = append(out, t)
		}
	}
	return out
}

func defaultSearchTypes() []parl.SourceType {
	return []parl.SourceType{parl.SourceBill, parl.SourceStatement, parl.SourceDebate}
}

// reformulate generates a bounded set of deterministic paraphrases in the
// detected language. Reformulations exist only to broaden recall; the
// reranker scores against the original query.
func reformulate(query, lang string, billNumbers []string) []string {
	q := strings.TrimSpace(query)
	var out []string
	if lang == parl.LanguageFR {
		out = append(out,
			"Parlement du Canada "+q,
			"documents parlementaires sur "+q,
		)
		if len(billNumbers) > 0 {
			out = append(out, fmt.Sprintf("Projet de loi %s résumé et état", billNumbers[0]))
		}
	} else {
		out = append(out,
			"Canadian Parliament "+q,
			"parliamentary records about "+q,
		)
		if len(billNumbers) > 0 {
			out = append(out, fmt.Sprintf("Bill %s summary and status", billNumbers[0]))
		}
	}
	if len(out) > maxReformulations {
		out = out[:maxReformulations]
	}
	return out
}

// Enumeration phrasing patterns, matched against the accent-folded lowercase
// query. Not exhaustive; see the Analyzer doc.
var (
	voteEnumRe = regexp.MustCompile(
		`who voted|qui a vote|qui ont vote|how did .+ vote|comment .+ a vote|list .*(votes|voters)|liste .*votes`)
	politicianEnumRe = regexp.MustCompile(
		`(list|all of|all the|all current|show all|every) .*(members|mps|deputes)|` +
			`all (members|mps)|tous les deputes|toutes les deputees|liste des deputes|` +
			`members of the .*(party|caucus)|deputes du|deputes de`)
	committeeEnumRe = regexp.MustCompile(
		`(list|all) .*committees|tous les comites|liste des comites`)
)

// Party name heuristics to canonical slugs.
var partyPatterns = []struct {
	re   *regexp.Regexp
	slug string
}{
	{regexp.MustCompile(`liberal|liberaux|liberale`), "liberal"},
	{regexp.MustCompile(`conservative|conservateur|conservatrice`), "conservative"},
	{regexp.MustCompile(`\bndp\b|new democrat|neo-democrate|npd`), "ndp"},
	{regexp.MustCompile(`\bbloc\b|bloc quebecois`), "bloc-quebecois"},
	{regexp.MustCompile(`\bgreen\b|vert|verts`), "green-party"},
}

func detectPartySlug(folded string) string {
	for _, p := range partyPatterns {
		if p.re.MatchString(folded) {
			return p.slug
		}
	}
	return ""
}

var (
	yeaRe = regexp.MustCompile(`\byea\b|\byes\b|\bfor\b|in favou?r|\bpour\b`)
	nayRe = regexp.MustCompile(`\bnay\b|\bno\b|\bagainst\b|\bcontre\b`)
)

func detectVoteType(folded string) string {
	switch {
	case strings.Contains(folded, "paired") || strings.Contains(folded, "paire"):
		return parl.BallotPaired
	case yeaRe.MatchString(folded):
		return parl.BallotYea
	case nayRe.MatchString(folded):
		return parl.BallotNay
	default:
		return ""
	}
}

// detectEnumeration classifies queries that demand a complete result set.
// Vote enumeration requires a bill number; without one there is no vote
// question to enumerate and the query stays on the relevance path.
func detectEnumeration(folded string, billNumbers []string) EnumerationIntent {
	if len(billNumbers) > 0 && voteEnumRe.MatchString(folded) {
		return EnumerationIntent{
			IsEnumeration: true,
			Kind:          EnumerationVote,
			BillNumber:    billNumbers[0],
			VoteType:      detectVoteType(folded),
			PartySlug:     detectPartySlug(folded),
		}
	}
	if committeeEnumRe.MatchString(folded) {
		return EnumerationIntent{
			IsEnumeration: true,
			Kind:          EnumerationCommittee,
		}
	}
	if politicianEnumRe.MatchString(folded) {
		return EnumerationIntent{
			IsEnumeration: true,
			Kind:          EnumerationPolitician,
			PartySlug:     detectPartySlug(folded),
		}
	}
	return EnumerationIntent{}
}
