package filter

import (
	"regexp"
	"strings"
)

// bankSenders are lowercase fragments of DLT sender ids used by Indian bank
// channels. A message whose sender matches none of them is not worth parsing.
var bankSenders = []string{
	"hdfcbk",
	"icicib",
	"sbiinb",
	"axisbk",
	"kotakb",
	"pnbsms",
	"canbnk",
	"unionb",
	"yesbnk",
	"idfcfb",
	"indusb",
	"federl",
	"tmbltd",
	"boimsg",
}

var spamPattern = regexp.MustCompile(`(?i)otp|code|auth|login|verification|won|prize|lottery|expire|cyber|loan|block|casino|rummy`)

// blockWords mark promotional/telecom chatter that still contains
// amount-looking substrings (recharge plans, cashback offers, EMI ads).
var blockWords = []string{
	"recharge", "offer", "validity", "plan", "unlimited", "data",
	"cashback", "reward", "limit", "cooling", "emi", "trial",
	"free", "days", "benefits",
}

var amountHint = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s?\d`)

var contextMarkers = []string{" upi ", " ref ", " ref no", " on "}

type Filter struct {
}

func NewFilter() *Filter {
	return &Filter{}
}

// IsRelevant decides whether a message is worth running the extractors on.
// Rejection is normal flow, not an error; the caller drops the message
// silently. With a sender address present the check is allow-list driven,
// otherwise it falls back to body-shape heuristics.
func (f *Filter) IsRelevant(body string, sender string) bool {
	if sender != "" {
		return f.relevantFromSender(body, sender)
	}

	return f.relevantBodyOnly(body)
}

func (f *Filter) relevantFromSender(body string, sender string) bool {
	s := strings.ToLower(sender)

	known := false
	for _, fragment := range bankSenders {
		if strings.Contains(s, fragment) {
			known = true
			break
		}
	}

	if !known {
		return false
	}

	return !spamPattern.MatchString(body)
}

func (f *Filter) relevantBodyOnly(body string) bool {
	t := strings.ToLower(body)

	for _, word := range blockWords {
		if strings.Contains(t, word) {
			return false
		}
	}

	isDebit := strings.Contains(t, "debit") || strings.Contains(t, "debited") ||
		strings.Contains(t, "spent")
	isCredit := strings.Contains(t, "credit") || strings.Contains(t, "credited") ||
		strings.Contains(t, "received") || strings.Contains(t, "is credited")

	if !isDebit && !isCredit {
		return false
	}

	if !amountHint.MatchString(t) {
		return false
	}

	for _, marker := range contextMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}

	return false
}
