package store

import (
	"fmt"
	"strconv"
	"strings"
)

const deadlineSeparator = "-"

// Allowed digit counts per deadline component: D or DD, M or MM, YYYY.
var (
	deadlineMinWidths = [3]int{1, 1, 4}
	deadlineMaxWidths = [3]int{2, 2, 4}
)

// DeadlineKey converts a DD-MM-YYYY deadline into YYYY*10000 + MM*100 + DD,
// so that integer order equals chronological order.
//
// Only the shape is checked: three hyphen-separated, all-digit components.
// Day and month take one or two digits, the year exactly four, so
// "1-3-2025" decodes while year-first text like "2025-03-15" does not.
// Ranges are not validated, so "32-13-2025" yields 20251332.
func DeadlineKey(deadline string) (int, error) {
	parts := strings.Split(deadline, deadlineSeparator)
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q: want DD-MM-YYYY", ErrInvalidDateFormat, deadline)
	}

	var nums [3]int
	for i, p := range parts {
		if len(p) < deadlineMinWidths[i] || len(p) > deadlineMaxWidths[i] || !allDigits(p) {
			return 0, fmt.Errorf("%w: %q: want DD-MM-YYYY", ErrInvalidDateFormat, deadline)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDateFormat, deadline, err)
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	return year*10000 + month*100 + day, nil
}

// ValidDeadline reports whether deadline can be decoded by DeadlineKey.
func ValidDeadline(deadline string) bool {
	_, err := DeadlineKey(deadline)
	return err == nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
