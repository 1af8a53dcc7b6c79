package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEmployeeID(t *testing.T) {
	assert.Equal(t, "CTU-001", FormatEmployeeID("CTU", 1))
	assert.Equal(t, "CTU-042", FormatEmployeeID("CTU", 42))
	assert.Equal(t, "AB-999", FormatEmployeeID("AB", 999))
	// Sequences past three digits keep growing rather than wrapping.
	assert.Equal(t, "CTU-1000", FormatEmployeeID("CTU", 1000))
}
