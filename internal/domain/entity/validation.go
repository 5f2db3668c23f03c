package entity

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var personName = regexp.MustCompile(`^[A-Z]+[a-zA-Z\s]*$`)

const patternMessage = "Name must contain only letters and start from the capital one."

func checkLength(vs *violations, field, value string, lo, hi int, required error) {
	if strings.TrimSpace(value) == "" {
		vs.add(field, RuleRequired, field+" is required.", required)
		return
	}
	if n := utf8.RuneCountInString(value); n < lo || n > hi {
		vs.add(field, RuleLength,
			fmt.Sprintf("%s length can't be more then %d and less then %d.", field, hi, lo), nil)
	}
}

func checkPersonName(vs *violations, field, value string) {
	before := len(*vs)
	checkLength(vs, field, value, 2, 50, ErrNameIsRequired)
	if len(*vs) > before {
		return
	}
	if !personName.MatchString(value) {
		vs.add(field, RulePattern, patternMessage, nil)
	}
}

func checkReference(vs *violations, field string, id int64) {
	if id <= 0 {
		vs.add(field, RuleReference, field+" must reference an existing record.", ErrParentIsRequired)
	}
}
