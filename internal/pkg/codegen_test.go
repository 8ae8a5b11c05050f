package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJoinCode(t *testing.T) {
	t.Run("Codes are five characters from the uppercase alphanumeric alphabet", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			// When: generating a code
			code, err := GenerateJoinCode()

			// Then: it has the fixed length and alphabet
			require.NoError(t, err)
			assert.Len(t, code, JoinCodeLength)
			for _, char := range code {
				assert.Contains(t, JoinCodeAlphabet, string(char))
			}
		}
	})
}

func TestAppendRandomDigit(t *testing.T) {
	t.Run("Keeps the original code as prefix and adds one digit", func(t *testing.T) {
		// When: disambiguating a taken custom code
		code, err := AppendRandomDigit("MYCODE")

		// Then: the result is the code plus a single digit
		require.NoError(t, err)
		require.Len(t, code, 7)
		assert.True(t, strings.HasPrefix(code, "MYCODE"))
		assert.Contains(t, digits, code[6:])
	})
}
