package history

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable marks timestamp text the normalizer cannot make
// sense of. The owning fragment is dropped; the run continues.
var ErrUnparseable = errors.New("unparseable timestamp")

// Takeout renders dates in the account's display locale, so the same
// export format shows up as "Jan 5, 2021, 8:14:03 PM PST",
// "9 de set. de 2024, 22:16:56 BRT" or "5. Jan. 2021, 20:14:03 MEZ".
// Rather than enumerating per-locale layouts, the normalizer scans
// the string token by token: a month name, a day, a 4-digit year, a
// clock reading, an optional AM/PM marker and an optional zone token
// can appear in any order; everything else is locale filler.

var months = map[string]time.Month{
	// English
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
	// Portuguese
	"fev": time.February, "fevereiro": time.February,
	"abr": time.April, "abril": time.April,
	"mai": time.May, "maio": time.May,
	"ago": time.August, "agosto": time.August,
	"set": time.September, "setembro": time.September,
	"out": time.October, "outubro": time.October,
	"dez": time.December, "dezembro": time.December,
	"janeiro": time.January, "marco": time.March, "março": time.March,
	"junho": time.June, "julho": time.July, "novembro": time.November,
	// Spanish
	"ene": time.January, "enero": time.January,
	"febrero": time.February, "marzo": time.March,
	"mayo": time.May, "junio": time.June, "julio": time.July,
	"septiembre": time.September, "octubre": time.October,
	"noviembre": time.November, "dic": time.December, "diciembre": time.December,
	// German
	"januar": time.January, "februar": time.February,
	"marz": time.March, "märz": time.March, "mrz": time.March,
	"okt": time.October, "oktober": time.October,
	"dezember": time.December, "juni": time.June, "juli": time.July,
	// French
	"janv": time.January, "janvier": time.January,
	"fevr": time.February, "févr": time.February, "fevrier": time.February, "février": time.February,
	"mars": time.March, "avr": time.April, "avril": time.April,
	"juin": time.June, "juil": time.July, "juillet": time.July,
	"aout": time.August, "août": time.August,
	"octobre": time.October, "novembre": time.November,
	"déc": time.December, "decembre": time.December, "décembre": time.December,
}

// zoneOffsets maps the zone abbreviations observed in exports to
// fixed offsets in seconds. CST is resolved as US Central.
var zoneOffsets = map[string]int{
	"UTC": 0, "GMT": 0, "WET": 0,
	"BST": 1 * 3600, "WEST": 1 * 3600,
	"CET": 1 * 3600, "MEZ": 1 * 3600,
	"CEST": 2 * 3600, "MESZ": 2 * 3600,
	"BRT": -3 * 3600, "BRST": -2 * 3600, "ART": -3 * 3600,
	"EST": -5 * 3600, "EDT": -4 * 3600,
	"CST": -6 * 3600, "CDT": -5 * 3600,
	"MST": -7 * 3600, "MDT": -6 * 3600,
	"PST": -8 * 3600, "PDT": -7 * 3600,
	"IST": 5*3600 + 1800, "JST": 9 * 3600, "KST": 9 * 3600,
	"AEST": 10 * 3600, "AEDT": 11 * 3600,
}

var (
	clockRe      = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	meridiemRe   = regexp.MustCompile(`^(?i)([ap])\.?m\.?$`)
	zoneAbbrevRe = regexp.MustCompile(`^[A-Z]{2,5}$`)
	zoneOffsetRe = regexp.MustCompile(`^(?:GMT|UTC)([+-])(\d{1,2})(?::?(\d{2}))?$`)
)

// ParseTimestamp normalizes localized timestamp text into an instant.
// A zone token, when present, is resolved to its fixed offset; when
// absent the text is assumed to be wall-clock time in def.
func ParseTimestamp(s string, def *time.Location) (time.Time, error) {
	var (
		day, year            int
		hour, minute, second int
		month                time.Month
		meridiem             string
		loc                  = def
		haveDay, haveYear    bool
		haveMonth, haveClock bool
	)

	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	for _, tok := range fields {
		if m := clockRe.FindStringSubmatch(tok); m != nil && !haveClock {
			hour, _ = strconv.Atoi(m[1])
			minute, _ = strconv.Atoi(m[2])
			if m[3] != "" {
				second, _ = strconv.Atoi(m[3])
			}
			haveClock = true
			continue
		}
		if m := meridiemRe.FindStringSubmatch(tok); m != nil {
			meridiem = strings.ToLower(m[1])
			continue
		}
		if m := zoneOffsetRe.FindStringSubmatch(tok); m != nil {
			loc = offsetLocation(tok, m)
			continue
		}
		if !haveMonth {
			if mo, ok := months[strings.ToLower(strings.TrimSuffix(tok, "."))]; ok {
				month = mo
				haveMonth = true
				continue
			}
		}
		if n, err := strconv.Atoi(strings.TrimSuffix(tok, ".")); err == nil {
			switch {
			case len(strings.TrimSuffix(tok, ".")) == 4 && !haveYear:
				year = n
				haveYear = true
			case !haveDay:
				day = n
				haveDay = true
			}
			continue
		}
		if off, ok := zoneOffsets[tok]; ok && zoneAbbrevRe.MatchString(tok) {
			loc = time.FixedZone(tok, off)
		}
		// anything else is locale filler ("de", "at", "um", ...)
	}

	if !haveDay || !haveMonth || !haveYear || !haveClock {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	if day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}

	switch meridiem {
	case "p":
		if hour < 12 {
			hour += 12
		}
	case "a":
		if hour == 12 {
			hour = 0
		}
	}

	return time.Date(year, month, day, hour, minute, second, 0, loc), nil
}

func offsetLocation(name string, m []string) *time.Location {
	hours, _ := strconv.Atoi(m[2])
	offset := hours * 3600
	if m[3] != "" {
		mins, _ := strconv.Atoi(m[3])
		offset += mins * 60
	}
	if m[1] == "-" {
		offset = -offset
	}
	return time.FixedZone(name, offset)
}
