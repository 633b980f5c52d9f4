package dlt

import (
	"regexp"
	"strings"
)

// Category is the regulatory traffic class encoded in the last letter of a
// DLT header.
type Category string

const (
	CategoryTransactional = Category("Transactional")
	CategoryService       = Category("Service")
	CategoryPromotional   = Category("Promotional")
	CategoryGovt          = Category("Govt")
	CategoryUnknown       = Category("Unknown")
)

// Header is the decoded form of a DLT sender address like JX-HDFCBK-T.
// It is recomputed per message and never stored.
type Header struct {
	Operator string
	Circle   byte
	SenderID string
	Category Category
	Raw      string
}

var operators = map[byte]string{
	'A': "Airtel",
	'B': "BSNL",
	'M': "MTNL",
	'R': "Reliance",
	'V': "Vodafone/Vi",
	'J': "Jio",
	'I': "Idea",
	'T': "Tata",
	'H': "HFCL",
	'C': "Datacom",
	'D': "Aircel",
	'S': "Sistema",
}

var categories = map[byte]Category{
	'T': CategoryTransactional,
	'S': CategoryService,
	'P': CategoryPromotional,
	'G': CategoryGovt,
}

var (
	nonHeaderChars = regexp.MustCompile(`[^A-Z0-9-]`)
	fullHeader     = regexp.MustCompile(`^([A-Z]{2})-([A-Z0-9]{3,9})-([A-Z])$`)
	shortHeader    = regexp.MustCompile(`^([A-Z]{2})-([A-Z0-9]{3,9})$`)
)

// ParseHeader decodes a sender address into its DLT parts. A nil result means
// the address does not carry a decodable header, which is normal for long-code
// numbers; callers proceed without header hints.
func ParseHeader(address string) *Header {
	clean := nonHeaderChars.ReplaceAllString(strings.ToUpper(address), "")

	if matches := fullHeader.FindStringSubmatch(clean); matches != nil {
		return &Header{
			Operator: operatorFor(matches[1][0]),
			Circle:   matches[1][1],
			SenderID: matches[2],
			Category: categoryFor(matches[3][0]),
			Raw:      address,
		}
	}

	if matches := shortHeader.FindStringSubmatch(clean); matches != nil {
		return &Header{
			Operator: operatorFor(matches[1][0]),
			Circle:   matches[1][1],
			SenderID: matches[2],
			Category: CategoryUnknown,
			Raw:      address,
		}
	}

	return nil
}

func operatorFor(code byte) string {
	if op, ok := operators[code]; ok {
		return op
	}

	return "Unknown"
}

func categoryFor(code byte) Category {
	if cat, ok := categories[code]; ok {
		return cat
	}

	return CategoryUnknown
}
