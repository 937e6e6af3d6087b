package identity

import (
	"fmt"
	"strings"

	"intertask/internal/utils"
)

const teamCodeLength = 8

// NewTeamCode generates a random human-shareable team code. Collisions
// are not checked; at this scale the 36^8 space makes them negligible.
func NewTeamCode() string {
	return utils.RandomUpperCode(teamCodeLength)
}

// MemberCodes derives n sequential join codes from a team code, in the
// form <teamCode>-01 .. <teamCode>-NN (two-digit, zero-padded).
func MemberCodes(teamCode string, n int) []string {
	codes := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		codes = append(codes, fmt.Sprintf("%s-%02d", teamCode, i))
	}

	return codes
}

// TeamCodeOf resolves the owning team code of a member join code by
// stripping the suffix after the last separator.
func TeamCodeOf(memberCode string) (string, bool) {
	i := strings.LastIndex(memberCode, "-")
	if i <= 0 || i == len(memberCode)-1 {
		return "", false
	}

	return memberCode[:i], true
}
