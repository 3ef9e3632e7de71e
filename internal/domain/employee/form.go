package employee

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// InsertForm holds a raw submission. HTML forms carry no native types, so
// every field arrives as text and is converted only after validation.
type InsertForm struct {
	Name            string `json:"name"`
	Image           string `json:"image"`
	Gender          string `json:"gender"`
	HireDate        string `json:"hireDate"`
	MailAddress     string `json:"mailAddress"`
	ZipCode         string `json:"zipCode"`
	Address         string `json:"address"`
	Telephone       string `json:"telephone"`
	Salary          string `json:"salary"`
	Characteristics string `json:"characteristics"`
	DependentsCount string `json:"dependentsCount"`
}

const (
	maxSalary       = 500000
	maxSalaryDigits = 6
)

var (
	zipCodeRe      = regexp.MustCompile(`^[0-9]{3}-[0-9]{4}$`)
	digitsRe       = regexp.MustCompile(`^[0-9]+$`)
	mobilePrefixRe = regexp.MustCompile(`^0[1-9]0`)
)

// Validate checks every rule and returns the full issue collection; it never
// stops at the first failure so each field can report its own error.
func (f InsertForm) Validate() []FieldIssue {
	var issues []FieldIssue
	add := func(field, reason string) {
		issues = append(issues, FieldIssue{Field: field, Reason: reason})
	}

	if strings.TrimSpace(f.Name) == "" {
		add("name", "name is required")
	}

	if !strings.HasSuffix(f.Image, ".png") && !strings.HasSuffix(f.Image, ".jpg") {
		add("image", "image must be a .png or .jpg file")
	}

	if f.Gender == "" {
		add("gender", "gender is required")
	}

	if f.HireDate == "" {
		add("hireDate", "hire date is required")
	} else if _, err := time.Parse("2006-01-02", f.HireDate); err != nil {
		add("hireDate", "hire date must be a valid date in YYYY-MM-DD format")
	}

	if strings.TrimSpace(f.MailAddress) == "" {
		add("mailAddress", "mail address is required")
	} else if _, err := mail.ParseAddress(f.MailAddress); err != nil {
		add("mailAddress", "mail address is not a valid email address")
	}

	if !zipCodeRe.MatchString(f.ZipCode) {
		add("zipCode", "zip code must match NNN-NNNN")
	}

	if strings.TrimSpace(f.Address) == "" {
		add("address", "address is required")
	}

	if !validTelephone(f.NormalizedTelephone()) {
		add("telephone", "telephone number is invalid")
	}

	if !digitsRe.MatchString(f.Salary) {
		add("salary", "salary must be numeric")
	} else if len(f.Salary) > maxSalaryDigits || mustAtoi(f.Salary) > maxSalary {
		add("salary", "salary must be 500000 or less")
	}

	if strings.TrimSpace(f.Characteristics) == "" {
		add("characteristics", "characteristics are required")
	}

	if !digitsRe.MatchString(f.DependentsCount) {
		add("dependentsCount", "dependents count must be numeric")
	}

	return issues
}

// NormalizedTelephone replaces comma separators with hyphens, the form the
// telephone rule checks and the form that gets persisted.
func (f InsertForm) NormalizedTelephone() string {
	return strings.ReplaceAll(f.Telephone, ",", "-")
}

// A telephone passes with a mobile prefix (0X0, X in 1-9) regardless of
// length, or when stripping hyphens leaves exactly 10 digits.
func validTelephone(normalized string) bool {
	if mobilePrefixRe.MatchString(normalized) {
		return true
	}
	stripped := strings.ReplaceAll(normalized, "-", "")
	return len(stripped) == 10 && digitsRe.MatchString(stripped)
}

// mustAtoi is only reached on digit-checked input of at most 6 characters.
func mustAtoi(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}

func hasIssue(issues []FieldIssue, field string) bool {
	for _, issue := range issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}
