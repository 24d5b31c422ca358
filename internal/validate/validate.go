package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reDate  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 64 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a simple length window for join/login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 64
}

func Nickname(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 30 {
		return "", false
	}
	return s, true
}

// PositiveID parses a numeric path/body identifier (pno, cino, tno).
func PositiveID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Page normalizes a page/size query pair to sane defaults.
func Page(pageStr, sizeStr string) (page, size int) {
	page, size = 1, 10
	if n, err := strconv.Atoi(strings.TrimSpace(pageStr)); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(sizeStr)); err == nil && n > 0 && n <= 100 {
		size = n
	}
	return page, size
}

func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reDate.MatchString(s)
}
