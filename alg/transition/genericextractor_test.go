package transition

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfiguration is a fixed state: stack [2 1] (2 on top), buffer [3].
// Node 0 is the root, 1 is headed by 2, 2 has no head.
type testConfiguration struct {
	structures map[string][]int
	heads      map[int]int
	ldeps      map[int]int
	attrs      map[int]map[string]string
}

func newTestConfiguration() *testConfiguration {
	return &testConfiguration{
		structures: map[string][]int{"stk": {2, 0}, "buf": {3}},
		heads:      map[int]int{1: 2},
		ldeps:      map[int]int{2: 1},
		attrs: map[int]map[string]string{
			0: {"form": "ROOT"},
			1: {"form": "The", "pos": "DT", "deprel": "det"},
			2: {"form": "dog", "pos": "NN"},
			3: {"form": "barks", "pos": "VBZ"},
		},
	}
}

func (c *testConfiguration) Address(structure string, offset int) (int, bool) {
	nodes := c.structures[structure]
	if offset >= len(nodes) {
		return 0, false
	}
	return nodes[offset], true
}

func (c *testConfiguration) Link(node int, link string) (int, bool) {
	var (
		retval int
		exists bool
	)
	switch link {
	case LINK_HEAD:
		retval, exists = c.heads[node]
	case LINK_LDEP:
		retval, exists = c.ldeps[node]
	}
	return retval, exists
}

func (c *testConfiguration) Attribute(node int, attribute string) (string, bool, error) {
	value, exists := c.attrs[node][attribute]
	if !exists && node != 0 && attribute != "deprel" {
		return "", false, ErrMissingAttribute
	}
	return value, exists, nil
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("head(ldep(stk[0]))")
	require.NoError(t, err)
	assert.Equal(t, "stk", addr.Structure)
	assert.Equal(t, 0, addr.Offset)
	assert.Equal(t, []string{LINK_LDEP, LINK_HEAD}, addr.Links)
	assert.Equal(t, "stk[0]>ldep>head", addr.String())

	for _, bad := range []string{"stk", "stk[x]", "foo(stk[0])", "head(stk[0]"} {
		_, err := ParseAddress(bad)
		assert.True(t, errors.Is(err, ErrFeatureTable), bad)
	}
}

func TestExtract(t *testing.T) {
	table, err := ReadFeatureTable(strings.NewReader(`
# comment
STK[0] : Form : POS
stk[0] buf[0] : join(pos,pos)
ldep(stk[0]) : deprel
head(ldep(stk[0])) : form
stk[2] : form
buf[0] : deprel
stk[1] : pos
`), "stk", "buf")
	require.NoError(t, err)
	require.Equal(t, 8, table.NumFeatures())

	features, err := table.Extract(newTestConfiguration())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"stk[0]|form|dog",
		"stk[0]|pos|NN",
		"stk[0],buf[0]|join(pos,pos)|NN,VBZ",
		"stk[0]>ldep|deprel|det",
		"stk[0]>ldep>head|form|dog",
		"stk[2]|form|" + ABSENT_FEATURE,
		"buf[0]|deprel|" + ABSENT_FEATURE,
		"stk[1]|pos|" + ABSENT_FEATURE,
	}, features)

	again, err := table.Extract(newTestConfiguration())
	require.NoError(t, err)
	assert.Equal(t, features, again, "extraction must be deterministic")
}

func TestExtractMissingAttribute(t *testing.T) {
	table, err := NewFeatureTable([]string{"buf[0] : lemma"})
	require.NoError(t, err)
	_, err = table.Extract(newTestConfiguration())
	assert.True(t, errors.Is(err, ErrMissingAttribute))
}

func TestFeatureTableErrors(t *testing.T) {
	for _, line := range []string{
		"stk[0] buf[0] : join(pos)",
		"stk[0] : join(pos,pos)",
		"stk[0]",
		"stk[0] : ",
		"in[0] : form",
		"stk[0] : fo rm",
	} {
		_, err := NewFeatureTable([]string{line}, "stk", "buf")
		assert.True(t, errors.Is(err, ErrFeatureTable), line)
	}
}
