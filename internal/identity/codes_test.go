package identity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intertask/internal/utils"
)

func TestNewTeamCode(t *testing.T) {
	code := NewTeamCode()

	assert.Len(t, code, teamCodeLength)
	assert.True(t, utils.IsAlphanumeric(code))
}

func TestMemberCodes(t *testing.T) {
	codes := MemberCodes("AB12CD34", 12)

	require.Len(t, codes, 12)
	assert.Equal(t, "AB12CD34-01", codes[0])
	assert.Equal(t, "AB12CD34-09", codes[8])
	assert.Equal(t, "AB12CD34-12", codes[11])

	for i, code := range codes {
		assert.Equal(t, fmt.Sprintf("AB12CD34-%02d", i+1), code)
	}
}

func TestTeamCodeOf(t *testing.T) {
	var tests = []struct {
		name       string
		memberCode string
		expected   string
		ok         bool
	}{
		{"regular code", "AB12CD34-03", "AB12CD34", true},
		{"prefix keeps inner separators", "AB-12-07", "AB-12", true},
		{"no separator", "AB12CD34", "", false},
		{"leading separator only", "-03", "", false},
		{"trailing separator", "AB12CD34-", "", false},
		{"empty", "", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, ok := TeamCodeOf(test.memberCode)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.expected, code)
		})
	}
}
