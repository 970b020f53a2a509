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
	"fmt"
	"strings"
)

// Canonical public URLs for parliamentary documents, in both official
// languages. Kept in one place so citations render stable links.

// BillURL returns the LEGISinfo page for a bill.
func BillURL(lang, session, number string) string {
	if lang == LanguageFR {
		return fmt.Sprintf("https://www.parl.ca/legisinfo/fr/projet-de-loi/%s/%s", session, strings.ToLower(number))
	}
	return fmt.Sprintf("https://www.parl.ca/legisinfo/en/bill/%s/%s", session, strings.ToLower(number))
}

// VoteURL returns the House of Commons page for a recorded division.
func VoteURL(lang, session string, voteNumber int) string {
	parts := strings.SplitN(session, "-", 2)
	parliament, sitting := session, "1"
	if len(parts) == 2 {
		parliament, sitting = parts[0], parts[1]
	}
	if lang == LanguageFR {
		return fmt.Sprintf("https://www.noscommunes.ca/votes/fr/%s-%s/%d", parliament, sitting, voteNumber)
	}
	return fmt.Sprintf("https://www.ourcommons.ca/members/en/votes/%s/%s/%d", parliament, sitting, voteNumber)
}

// DebateURL returns the Hansard page for a sitting day.
func DebateURL(lang, date string) string {
	if lang == LanguageFR {
		return fmt.Sprintf("https://openparliament.ca/debates/%s/?lang=fr", strings.ReplaceAll(date, "-", "/"))
	}
	return fmt.Sprintf("https://openparliament.ca/debates/%s/", strings.ReplaceAll(date, "-", "/"))
}

// StatementURL returns the Hansard anchor for a single statement.
func StatementURL(lang, date string, sequence int) string {
	return fmt.Sprintf("%s#s%d", DebateURL(lang, date), sequence)
}

// CommitteeURL returns the committee profile page.
func CommitteeURL(lang, slug string) string {
	if lang == LanguageFR {
		return fmt.Sprintf("https://openparliament.ca/committees/%s/?lang=fr", slug)
	}
	return fmt.Sprintf("https://openparliament.ca/committees/%s/", slug)
}

// PoliticianURL returns the member profile page.
func PoliticianURL(lang, slug string) string {
	if lang == LanguageFR {
		return fmt.Sprintf("https://openparliament.ca/politicians/%s/?lang=fr", slug)
	}
	return fmt.Sprintf("https://openparliament.ca/politicians/%s/", slug)
}
