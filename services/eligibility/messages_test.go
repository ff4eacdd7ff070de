package eligibility

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyErrorKnownCodes(t *testing.T) {
	for code, want := range knownMessages {
		t.Run(code, func(t *testing.T) {
			got := ClassifyError(code)
			assert.Equal(t, want, got)
			assert.NotEqual(t, fallbackMessage, got)
		})
	}
}

func TestClassifyErrorFallback(t *testing.T) {
	unknownInputs := []string{
		"",
		" ",
		"\t\n",
		"token_expired",  // wrong case: lookup is case-sensitive by design
		"Token_Expired",
		"ORDER_FULFILLED ", // trailing whitespace
		"SOMETHING_ELSE",
		"undefined",
		"null",
		"500",
	}
	for _, in := range unknownInputs {
		t.Run("input "+in, func(t *testing.T) {
			assert.Equal(t, fallbackMessage, ClassifyError(in))
		})
	}
}

func TestMessagesAreUserSafe(t *testing.T) {
	// No message may leak internal codes, timestamps or amounts.
	internalCode := regexp.MustCompile(`[A-Z]{2,}_[A-Z_]+`)
	digits := regexp.MustCompile(`[0-9]`)

	check := func(m UserMessage) {
		assert.NotEmpty(t, m.Title)
		assert.NotEmpty(t, m.Message)
		assert.NotRegexp(t, internalCode, m.Title)
		assert.NotRegexp(t, internalCode, m.Message)
		assert.NotRegexp(t, digits, m.Message)
	}

	for _, m := range knownMessages {
		check(m)
	}
	check(fallbackMessage)
}
