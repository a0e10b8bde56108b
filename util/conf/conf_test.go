package conf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSkipsCommentsAndBlanks(t *testing.T) {
	c, err := Read(strings.NewReader("# header\n\n  stk[0] : form  \n\t\nbuf[0]:pos\n#tail"))
	require.NoError(t, err)
	assert.Equal(t, []string{"stk[0] : form", "buf[0]:pos"}, c.Values)
}
