//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package parl

// Intent is the classifier's best guess at which document category the user
// primarily wants. It gates which source types may be cited.
type Intent string

// Known intents.
const (
	IntentBill       Intent = "bill"
	IntentVote       Intent = "vote"
	IntentDebate     Intent = "debate"
	IntentCommittee  Intent = "committee"
	IntentPolitician Intent = "politician"
	IntentGeneral    Intent = "general"
)

// AllowedSourceTypes returns the hard allow-list of citable source types for
// an intent. A result whose source type is not in the returned set must never
// surface as a citation, no matter how well it scored on similarity.
//
// The switch is exhaustive over the known intents; an unknown intent gets the
// permissive general set so that a new intent cannot silently produce an
// empty result.
func AllowedSourceTypes(i Intent) map[SourceType]bool {
	switch i {
	case IntentBill:
		return map[SourceType]bool{
			SourceBill:      true,
			SourceVote:      true,
			SourceStatement: true,
		}
	case IntentVote:
		return map[SourceType]bool{
			SourceVote: true,
			SourceBill: true,
		}
	case IntentDebate:
		return map[SourceType]bool{
			SourceStatement: true,
			SourceDebate:    true,
		}
	case IntentCommittee:
		return map[SourceType]bool{
			SourceCommittee: true,
			SourceStatement: true,
		}
	case IntentPolitician:
		return map[SourceType]bool{
			SourcePolitician: true,
			SourceStatement:  true,
			SourceVote:       true,
		}
	case IntentGeneral:
	default:
	}
	allowed := make(map[SourceType]bool, len(AllSourceTypes))
	for _, t := range AllSourceTypes {
		allowed[t] = true
	}
	return allowed
}
