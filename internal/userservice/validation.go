package userservice

import (
	"regexp"

	"github.com/tomihal/bloglist/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 72), "username", "must be between 3 and 72 characters long")
}

func validateEmail(v *common.Validator, email string) {
	// email is optional at registration; only sanity check it when present
	if email == "" {
		return
	}
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}
