package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	got, err := ValidateURL("  https://www.gsmarena.com/samsung-phones-9.php \n")
	require.NoError(t, err)
	assert.Equal(t, "https://www.gsmarena.com/samsung-phones-9.php", got)

	for _, raw := range []string{"", "   ", "ftp://example.com/x", "www.gsmarena.com/x.php", "https://", "http://%zz"} {
		_, err := ValidateURL(raw)
		assert.Error(t, err, "Expect %q to be rejected", raw)
	}
}
