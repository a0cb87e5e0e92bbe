package lead

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	brandedCampaignRe = regexp.MustCompile(`(?i)brand|trademark|company|official`)
	paidSourceRe      = regexp.MustCompile(`(?i)google|facebook|instagram|linkedin|paid`)
)

// Score rates lead quality from 0 to 100: completion is worth 20, contact
// channels up to 30, answer detail up to 30 and traffic-source signals up to
// 20.
func Score(l Lead) int {
	score := 20

	if l.Email != "" {
		score += 15
	}
	if l.Telegram != "" {
		score += 15
	}

	var answers map[string]any
	if err := json.Unmarshal([]byte(l.AnswersJSON), &answers); err != nil {
		score += 5
	} else {
		switch n := len(answers); {
		case n >= 5:
			score += 30
		case n >= 3:
			score += 20
		case n >= 1:
			score += 10
		}
	}

	score += utmScore(l)

	if score > 100 {
		score = 100
	}
	return score
}

func utmScore(l Lead) int {
	s := 0

	if l.UTMCampaign != "" {
		if brandedCampaignRe.MatchString(l.UTMCampaign) {
			s += 10
		} else {
			s += 5
		}
	}

	if l.UTMKeyword != "" {
		// Long-tail keywords indicate higher intent.
		switch n := len(strings.Fields(l.UTMKeyword)); {
		case n >= 3:
			s += 5
		case n >= 2:
			s += 3
		default:
			s++
		}
	}

	if l.UTMSource != "" {
		if paidSourceRe.MatchString(l.UTMSource) {
			s += 5
		} else {
			s += 2
		}
	}

	return s
}

// ScoreBand buckets a score for CRM display.
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "good"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}
