package scheduling

import (
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var labelPattern = regexp.MustCompile(constvars.RegexScheduleLabel)

// maxAmount keeps every unit within ten years of from.
var maxAmount = map[string]int{
	"day":   3650,
	"week":  520,
	"month": 120,
	"year":  10,
}

// ResolveLabel turns a relative label such as "2 weeks" or "1 month" into
// an absolute date counted from from. A blank label resolves to nil.
func ResolveLabel(label string, from time.Time) (*time.Time, error) {
	if strings.TrimSpace(label) == "" {
		return nil, nil
	}

	match := labelPattern.FindStringSubmatch(label)
	if match == nil {
		return nil, exceptions.ErrInvalidScheduleLabel(nil, label)
	}
	unit := strings.TrimSuffix(strings.ToLower(match[2]), "s")
	amount, err := strconv.Atoi(match[1])
	if err != nil || amount <= 0 || amount > maxAmount[unit] {
		return nil, exceptions.ErrInvalidScheduleLabel(err, label)
	}

	var resolved time.Time
	switch unit {
	case "day":
		resolved = from.AddDate(0, 0, amount)
	case "week":
		resolved = from.AddDate(0, 0, 7*amount)
	case "month":
		resolved = from.AddDate(0, amount, 0)
	case "year":
		resolved = from.AddDate(amount, 0, 0)
	}
	return &resolved, nil
}
