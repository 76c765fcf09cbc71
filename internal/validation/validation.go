package validation

import (
	"regexp"
	"strings"

	"callhelper/internal/matching"
	"callhelper/internal/models"
)

// CaseIDPattern defines the valid case ID format: alphanumeric, hyphens, underscores.
var CaseIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxCaseIDLength bounds the case_id column.
const MaxCaseIDLength = 64

// Form validation messages shown in the admin UI.
const (
	MsgCaseIDRequired      = "رقم الحالة مطلوب"
	MsgCaseIDInvalid       = "رقم الحالة يجب أن يحتوي على أحرف إنجليزية وأرقام وشرطات فقط"
	MsgRequiredCaseFields  = "الرجاء تعبئة الحقول المطلوبة: نوع الجهة، الفئة، الكلمات الرئيسية، نص الحل"
	MsgKeywordListTooLarge = "عدد الكلمات المفتاحية كبير جداً"
)

// MaxKeywordsPerList caps each keyword list on a case.
const MaxKeywordsPerList = 100

// ParseKeywords splits a comma or newline separated keyword field, normalizes
// each entry and drops empties and duplicates. Order is preserved.
func ParseKeywords(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var out []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(raw, "\n") {
		for _, part := range strings.Split(line, ",") {
			kw := matching.Normalize(part)
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

// ValidateCaseID checks that a case ID is present and URL-safe.
func ValidateCaseID(id string) (bool, string) {
	if id == "" {
		return false, MsgCaseIDRequired
	}
	if len(id) > MaxCaseIDLength || !CaseIDPattern.MatchString(id) {
		return false, MsgCaseIDInvalid
	}
	return true, ""
}

// ValidateCase checks the fields an admin must fill before a case is stored.
// The case ID is only checked when checkID is set; edits keep the path ID.
func ValidateCase(c *models.Case, checkID bool) (bool, string) {
	if checkID {
		if ok, msg := ValidateCaseID(c.CaseID); !ok {
			return false, msg
		}
	}

	if strings.TrimSpace(c.UserType) == "" ||
		strings.TrimSpace(c.Category) == "" ||
		len(c.MainKeywords) == 0 ||
		strings.TrimSpace(c.ResponseText) == "" {
		return false, MsgRequiredCaseFields
	}

	for _, list := range [][]string{c.MainKeywords, c.ExtraKeywords, c.Synonyms, c.NegativeKeywords} {
		if len(list) > MaxKeywordsPerList {
			return false, MsgKeywordListTooLarge
		}
	}

	return true, ""
}
