package domain

import (
	"strconv"
	"sync"
	"time"

	"streaks/internal/core/streak"
	"streaks/internal/platform/net/http/bind"
)

// MaxLoginLen is the GitHub login length limit
const MaxLoginLen = 39

var registerOnce sync.Once

// RegisterValidators installs the custom tags used by StatsQuery, safe to call repeatedly
func RegisterValidators() {
	registerOnce.Do(func() {
		mustRegister("github_login", func(fl bind.FieldLevel) bool { return ValidLogin(fl.Field().String()) },
			"{0} must be a valid GitHub login")
		mustRegister("tz_offset", func(fl bind.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Field().String())
			return err == nil && streak.ValidOffset(n)
		}, "{0} must be minutes east of UTC between -720 and 840")
		mustRegister("tz_name", func(fl bind.FieldLevel) bool {
			_, err := time.LoadLocation(fl.Field().String())
			return err == nil
		}, "{0} must be an IANA time zone")
	})
}

func mustRegister(tag string, fn func(bind.FieldLevel) bool, msg string) {
	if err := bind.RegisterTag(tag, fn, msg); err != nil {
		panic("streak: register validator " + tag + ": " + err.Error())
	}
}

// ValidLogin reports whether s follows GitHub login rules:
// 1 to 39 alphanumerics or single hyphens, not starting or ending with a hyphen
func ValidLogin(s string) bool {
	if len(s) == 0 || len(s) > MaxLoginLen {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	prevHyphen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			prevHyphen = false
		case c == '-':
			if prevHyphen {
				return false
			}
			prevHyphen = true
		default:
			return false
		}
	}
	return true
}
