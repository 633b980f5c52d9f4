package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dineshd5/BudgetSMS/pkg/database"
)

// UnknownEntity is the sentinel merchant label when nothing in the body
// identifies a counterparty.
const UnknownEntity = "Unknown Entity"

var (
	amountRegex = regexp.MustCompile(`(?i)(?:Rs\.?|INR|Amt|Amount|₹)[:\-\s]*([\d,]+(?:\.\d{1,2})?)`)
	upiRegex    = regexp.MustCompile(`([a-zA-Z0-9.\-_]+@[a-zA-Z]+)`)
	refRegex    = regexp.MustCompile(`(?i)(?:Reference|Ref(?:[\s.:-]*No)?|Txn(?:[\s.:-]*Id)?|Id|No)[:.\s-]*([a-zA-Z0-9]+)`)

	merchantAtRegex   = regexp.MustCompile(`(?i)\bat\s+([a-zA-Z0-9\s&]+)`)
	merchantToRegex   = regexp.MustCompile(`(?i)\bto\s+([a-zA-Z0-9\s&]+)`)
	merchantFromRegex = regexp.MustCompile(`(?i)\bfrom\s+([a-zA-Z0-9\s&]+)`)

	namedDateRegex   = regexp.MustCompile(`(?i)(\d{1,2})[-/\s](Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[-/\s](\d{2,4})`)
	numericDateRegex = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})`)
)

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ExtractAmount finds a currency-marked number in the body. The second return
// is false when none is found, which is the primary "not a transaction"
// signal for the whole pipeline.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	matches := amountRegex.FindStringSubmatch(text)
	if matches == nil {
		return decimal.Decimal{}, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(matches[1], ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}

	return amount, true
}

// ExtractType decides the direction of the transaction for the account
// holder. When a message narrates both sides of a transfer ("Your A/c
// debited ... recipient credited") the party mentioned first is taken to be
// the account holder. That is a best-effort reading of how banks order the
// narration, not a guarantee.
func ExtractType(text string) database.TransactionType {
	t := strings.ToLower(text)

	debitedIdx := strings.Index(t, "debited")
	creditedIdx := strings.Index(t, "credited")

	if debitedIdx != -1 && creditedIdx != -1 {
		if debitedIdx < creditedIdx {
			return database.TransactionTypeDebit
		}

		return database.TransactionTypeCredit
	}

	if debitedIdx != -1 || strings.Contains(t, "withdrawn") {
		return database.TransactionTypeDebit
	}

	// "credited to the beneficiary" is money leaving this account
	if (creditedIdx != -1 || strings.Contains(t, "transfer")) &&
		(strings.Contains(t, "recipient") || strings.Contains(t, "beneficiary")) {
		return database.TransactionTypeDebit
	}

	if creditedIdx != -1 || strings.Contains(t, "received") ||
		strings.Contains(t, "deposited") || strings.Contains(t, "refund") ||
		strings.Contains(t, "added") {
		return database.TransactionTypeCredit
	}

	if strings.Contains(t, "sent") {
		if strings.Contains(t, "sent to you") || strings.Contains(t, "sent by") {
			return database.TransactionTypeCredit
		}

		return database.TransactionTypeDebit
	}

	if strings.Contains(t, "spent") || strings.Contains(t, "paid") ||
		strings.Contains(t, "purchase") || strings.Contains(t, "payment") {
		return database.TransactionTypeDebit
	}

	// assume a cost under ambiguity
	return database.TransactionTypeDebit
}

// ExtractUpiID returns the first name@bank token in the body, or "".
func ExtractUpiID(text string) string {
	matches := upiRegex.FindStringSubmatch(text)
	if matches == nil {
		return ""
	}

	return matches[1]
}

// ExtractMerchant labels the counterparty. A UPI id beats anchor phrases;
// anchors are direction-aware ("at"/"to" for debits, "from" for credits).
func ExtractMerchant(text string, txType database.TransactionType) string {
	if upi := ExtractUpiID(text); upi != "" {
		return upi
	}

	if txType == database.TransactionTypeDebit {
		if matches := merchantAtRegex.FindStringSubmatch(text); matches != nil {
			return strings.TrimSpace(matches[1])
		}
		if matches := merchantToRegex.FindStringSubmatch(text); matches != nil {
			return strings.TrimSpace(matches[1])
		}
	} else {
		if matches := merchantFromRegex.FindStringSubmatch(text); matches != nil {
			return strings.TrimSpace(matches[1])
		}
	}

	return UnknownEntity
}

// ExtractReferenceID returns the bank reference token, or "" when the body
// carries none.
func ExtractReferenceID(text string) string {
	matches := refRegex.FindStringSubmatch(text)
	if matches == nil {
		return ""
	}

	return matches[1]
}

// ExtractMode picks the payment channel mentioned in the body.
func ExtractMode(text string) database.TransactionMode {
	t := strings.ToLower(text)

	switch {
	case strings.Contains(t, "upi"):
		return database.TransactionModeUPI
	case strings.Contains(t, "card"):
		return database.TransactionModeCard
	case strings.Contains(t, "cash"):
		return database.TransactionModeCash
	default:
		return database.TransactionModeUnknown
	}
}

// ExtractDate recovers a calendar date restated inside the body. Only the
// year, month and day are taken from the text; the clock stays on the
// message's receive time so intra-day ordering survives. Falls back to the
// receive time entirely when nothing parseable is embedded.
func ExtractDate(text string, receivedAt time.Time) time.Time {
	if matches := namedDateRegex.FindStringSubmatch(text); matches != nil {
		month := months[strings.ToLower(matches[2])]

		if date, ok := buildDate(matches[1], month, matches[3], receivedAt); ok {
			return date
		}
	}

	if matches := numericDateRegex.FindStringSubmatch(text); matches != nil {
		// day-first, Indian convention
		month := time.Month(atoi(matches[2]))

		if date, ok := buildDate(matches[1], month, matches[3], receivedAt); ok {
			return date
		}
	}

	return receivedAt
}

func buildDate(dayStr string, month time.Month, yearStr string, receivedAt time.Time) (time.Time, bool) {
	day := atoi(dayStr)
	year := atoi(yearStr)

	if year < 100 {
		year += 2000
	}

	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := time.Date(year, month, day,
		receivedAt.Hour(), receivedAt.Minute(), receivedAt.Second(), receivedAt.Nanosecond(),
		receivedAt.Location())

	// time.Date normalizes overflow, so 31-02 rolls into March; reject those
	if date.Day() != day || date.Month() != month {
		return time.Time{}, false
	}

	return date, true
}

// atoi is safe here: every caller feeds it a digits-only regex capture.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
