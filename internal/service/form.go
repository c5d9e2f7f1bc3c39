package service

import (
	"strconv"
	"strings"
	"time"

	"doneUI/internal/models/task"
	"doneUI/internal/textcodec"
)

// AddInput is the raw add-task form. Empty estimation fields take defaults of
// 0 days, 1 hour and 0 minutes.
type AddInput struct {
	Text    string
	Days    string
	Hours   string
	Minutes string
	Month   string
	Day     string
	Year    string
}

// NewTask is a validated add request ready to be joined into a payload.
type NewTask struct {
	EncodedBody       string
	EstimationSeconds int
	Month             string
	Day               string
	Year              string
}

func (n NewTask) HasDeadline() bool {
	return n.Month != "0" || n.Day != "0" || n.Year != "0"
}

func parseBounded(field, raw, fallback string, limit int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError(field, "не число")
	}
	if n < 0 || n > limit {
		return 0, NewValidationError(field, "вне допустимого диапазона")
	}
	return n, nil
}

// deadlinePart returns the trimmed value and whether it carries data. Empty
// strings, "0" and the input placeholder mean the part is unset.
func deadlinePart(raw, placeholder string) (string, bool) {
	raw = strings.TrimSpace(raw)
	return raw, raw != "" && raw != "0" && raw != placeholder
}

// ValidateAdd checks the form and completes a partial deadline relative to now.
func ValidateAdd(in AddInput, now time.Time) (NewTask, error) {
	encoded := textcodec.Encode(in.Text)
	if encoded == "" {
		return NewTask{}, NewValidationError("text", "пустой текст задачи")
	}

	days, err := parseBounded("days", in.Days, "0", 31)
	if err != nil {
		return NewTask{}, err
	}
	hours, err := parseBounded("hours", in.Hours, "1", 23)
	if err != nil {
		return NewTask{}, err
	}
	minutes, err := parseBounded("minutes", in.Minutes, "0", 59)
	if err != nil {
		return NewTask{}, err
	}

	monthRaw, hasMonth := deadlinePart(in.Month, "MM")
	dayRaw, hasDay := deadlinePart(in.Day, "DD")
	yearRaw, hasYear := deadlinePart(in.Year, "YYYY")

	month, day, year := 0, 0, 0
	if hasMonth {
		if month, err = parseBounded("month", monthRaw, "0", 12); err != nil {
			return NewTask{}, err
		}
	}
	if hasDay {
		if day, err = parseBounded("day", dayRaw, "0", 31); err != nil {
			return NewTask{}, err
		}
	}
	if hasYear {
		if year, err = parseBounded("year", yearRaw, "0", task.NoDeadlineYear); err != nil {
			return NewTask{}, err
		}
	}

	nt := NewTask{
		EncodedBody:       encoded,
		EstimationSeconds: days*task.WorkDaySeconds + hours*3600 + minutes*60,
		Month:             "0",
		Day:               "0",
		Year:              "0",
	}
	if !hasMonth && !hasDay && !hasYear {
		return nt, nil
	}

	y, m, d := completeDeadline(month, day, year, hasMonth, hasDay, hasYear, now)
	if !validDate(y, m, d) {
		tomorrow := now.AddDate(0, 0, 1)
		y, m, d = tomorrow.Year(), int(tomorrow.Month()), tomorrow.Day()
	}
	nt.Month, nt.Day, nt.Year = strconv.Itoa(m), strconv.Itoa(d), strconv.Itoa(y)
	return nt, nil
}

func completeDeadline(month, day, year int, hasMonth, hasDay, hasYear bool, now time.Time) (int, int, int) {
	curYear, curMonth, curDay := now.Year(), int(now.Month()), now.Day()

	switch {
	case hasDay && !hasMonth && !hasYear:
		if day < curDay {
			curMonth++
			if curMonth > 12 {
				curMonth = 1
				curYear++
			}
		}
		return curYear, curMonth, day

	case hasMonth && !hasDay && !hasYear:
		switch {
		case month < curMonth || (month == curMonth && curDay > 28):
			return curYear + 1, month, 1
		case month == curMonth:
			return curYear, month, curDay
		default:
			return curYear, month, 1
		}

	default:
		if !hasMonth {
			month = curMonth
		}
		if !hasDay {
			day = curDay
		}
		if !hasYear {
			year = curYear
		}
		return year, month, day
	}
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
