package parser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dineshd5/BudgetSMS/pkg/database"
	"github.com/Dineshd5/BudgetSMS/pkg/parser"
)

func TestExtractAmount(t *testing.T) {
	for input, expected := range map[string]string{
		"Rs.500 debited":                 "500",
		"Rs 1,234.50 spent on card":      "1234.5",
		"INR 500 credited to your A/c":   "500",
		"Amt: 99.99 paid via UPI":        "99.99",
		"Amount - 2,50,000 transferred":  "250000",
		"₹750 sent to john@upi":          "750",
		"Rs. 1,000.00 withdrawn from":    "1000",
	} {
		amount, ok := parser.ExtractAmount(input)
		assert.True(t, ok, input)
		assert.Equal(t, expected, amount.String(), input)
	}
}

func TestExtractAmountNotFound(t *testing.T) {
	for _, input := range []string{
		"Your OTP is 4532",
		"Meeting at 5pm tomorrow",
		"",
	} {
		_, ok := parser.ExtractAmount(input)
		assert.False(t, ok, input)
	}
}

func TestExtractType_TieBreakDebitFirst(t *testing.T) {
	// both directions narrated; the first mention is the account holder
	txType := parser.ExtractType("Your A/c XX123 debited Rs.1000 on 01-Jan-24; recipient john@upi credited.")

	assert.Equal(t, database.TransactionTypeDebit, txType)
}

func TestExtractType_TieBreakCreditFirst(t *testing.T) {
	txType := parser.ExtractType("Your A/c credited Rs.1000; sender jane@upi debited.")

	assert.Equal(t, database.TransactionTypeCredit, txType)
}

func TestExtractType_DebitKeywords(t *testing.T) {
	for _, input := range []string{
		"Rs.100 debited from your account",
		"Rs.100 withdrawn at ATM",
		"Rs.100 spent on your card",
		"You paid Rs.100 to the store",
		"Purchase of Rs.100 at SuperMart",
	} {
		assert.Equal(t, database.TransactionTypeDebit, parser.ExtractType(input), input)
	}
}

func TestExtractType_CreditKeywords(t *testing.T) {
	for _, input := range []string{
		"Rs.100 credited to your account",
		"You received Rs.100",
		"Rs.100 deposited in your A/c",
		"Refund of Rs.100 processed",
		"Rs.100 added to your wallet",
	} {
		assert.Equal(t, database.TransactionTypeCredit, parser.ExtractType(input), input)
	}
}

func TestExtractType_CreditToBeneficiaryIsDebit(t *testing.T) {
	txType := parser.ExtractType("Rs.500 transfer completed, amount credited to beneficiary account")

	assert.Equal(t, database.TransactionTypeDebit, txType)
}

func TestExtractType_Sent(t *testing.T) {
	assert.Equal(t, database.TransactionTypeDebit, parser.ExtractType("Rs.100 sent to John"))
	assert.Equal(t, database.TransactionTypeCredit, parser.ExtractType("Rs.100 sent to you by John"))
	assert.Equal(t, database.TransactionTypeCredit, parser.ExtractType("Rs.100 sent by John"))
}

func TestExtractType_DefaultsToDebit(t *testing.T) {
	assert.Equal(t, database.TransactionTypeDebit, parser.ExtractType("Rs.100 something happened"))
}

func TestExtractUpiID(t *testing.T) {
	assert.Equal(t, "merchant.x@icici", parser.ExtractUpiID("Paid to merchant.x@icici today"))
	assert.Equal(t, "john-doe_1@okaxis", parser.ExtractUpiID("transfer to john-doe_1@okaxis done"))
	assert.Empty(t, parser.ExtractUpiID("no payment address here"))
}

func TestExtractMerchant_UpiWinsOverAnchors(t *testing.T) {
	merchant := parser.ExtractMerchant("Paid at Big Bazaar to merchant.x@icici Rs.300", database.TransactionTypeDebit)

	assert.Equal(t, "merchant.x@icici", merchant)
}

func TestExtractMerchant_DebitAnchors(t *testing.T) {
	assert.Equal(t, "Big Bazaar", parser.ExtractMerchant("Spent Rs.300 at Big Bazaar", database.TransactionTypeDebit))
	assert.Equal(t, "John", parser.ExtractMerchant("Rs.300 paid to John", database.TransactionTypeDebit))
}

func TestExtractMerchant_CreditAnchor(t *testing.T) {
	assert.Equal(t, "Acme Corp", parser.ExtractMerchant("Salary received from Acme Corp", database.TransactionTypeCredit))
}

func TestExtractMerchant_Unknown(t *testing.T) {
	assert.Equal(t, parser.UnknownEntity,
		parser.ExtractMerchant("Rs.300 debited", database.TransactionTypeDebit))
}

func TestExtractReferenceID(t *testing.T) {
	assert.Equal(t, "998877", parser.ExtractReferenceID("Rs.500 debited. Ref No 998877"))
	assert.Equal(t, "4455667788", parser.ExtractReferenceID("to zomato@paytm. Ref No 4455667788."))
	assert.Equal(t, "AX12B", parser.ExtractReferenceID("payment done, Ref: AX12B"))
	assert.Empty(t, parser.ExtractReferenceID("plain text without markers"))
}

func TestExtractMode(t *testing.T) {
	assert.Equal(t, database.TransactionModeUPI, parser.ExtractMode("paid via UPI to john@okicici"))
	assert.Equal(t, database.TransactionModeCard, parser.ExtractMode("spent on your Credit Card"))
	assert.Equal(t, database.TransactionModeCash, parser.ExtractMode("cash withdrawn at ATM"))
	assert.Equal(t, database.TransactionModeUnknown, parser.ExtractMode("Rs.100 debited"))
}

func TestExtractDate_NamedMonthOverridesDateKeepsTime(t *testing.T) {
	receivedAt := time.Date(2024, time.March, 1, 15, 30, 0, 0, time.UTC)

	date := parser.ExtractDate("txn on 15-Feb-2024 completed", receivedAt)

	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, time.February, date.Month())
	assert.Equal(t, 15, date.Day())
	assert.Equal(t, 15, date.Hour())
	assert.Equal(t, 30, date.Minute())
}

func TestExtractDate_NumericDayFirst(t *testing.T) {
	receivedAt := time.Date(2024, time.July, 1, 9, 45, 12, 0, time.UTC)

	date := parser.ExtractDate("debited on 05-06-2024. Ref 1", receivedAt)

	assert.Equal(t, time.June, date.Month())
	assert.Equal(t, 5, date.Day())
	assert.Equal(t, 9, date.Hour())
	assert.Equal(t, 45, date.Minute())
	assert.Equal(t, 12, date.Second())
}

func TestExtractDate_TwoDigitYear(t *testing.T) {
	receivedAt := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	date := parser.ExtractDate("on 12-Jan-23", receivedAt)

	assert.Equal(t, 2023, date.Year())
	assert.Equal(t, time.January, date.Month())
}

func TestExtractDate_InvalidCalendarFallsBack(t *testing.T) {
	receivedAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	date := parser.ExtractDate("on 31-02-2024 maybe", receivedAt)

	assert.Equal(t, receivedAt, date)
}

func TestExtractDate_NoDateFallsBack(t *testing.T) {
	receivedAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, receivedAt, parser.ExtractDate("Rs.100 debited", receivedAt))
}
