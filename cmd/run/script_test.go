package run

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ValentinKolb/rangevec/lib/rangevec"
	"github.com/ValentinKolb/rangevec/lib/registry"
	"github.com/stretchr/testify/require"
)

func execScript(t *testing.T, script string, stats bool) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := NewInterpreter(registry.New(rangevec.New[int64]), "default", &out, stats)
	err := in.Run(strings.NewReader(script))
	in.WriteStats(&out)
	return out.String(), err
}

func TestScriptBasics(t *testing.T) {
	out, err := execScript(t, `
# three values next to each other
set 5 1
set 6 2
set 7 3   # trailing comment
range
iter 3 9
rev 3 9
get 6
get 1000
`, false)
	require.NoError(t, err)
	require.Equal(t, "5..8\n[0, 0, 1, 2, 3, 0]\n[0, 3, 2, 1, 0, 0]\n2\n0\n", out)
}

func TestScriptMutation(t *testing.T) {
	out, err := execScript(t, `
set 5 -1
set 7 1
add-range 5 9 1
print
scale 3
print
add 6 -3
add 8 -3
print
truncate 0 3
range
`, false)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"RangeVec { range: 6..9, data: [1, 2, 1] }",
		"RangeVec { range: 6..9, data: [3, 6, 3] }",
		"RangeVec { range: 7..8, data: [6] }",
		"<empty>",
	}, "\n")+"\n", out)
}

func TestScriptStores(t *testing.T) {
	out, err := execScript(t, `
set 1 1
use other
set 10 1
set 12 1
reset 12
stores
drop default
stores
print
use missing
print
`, false)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"default 1..2",
		"other 10..11",
		"other 10..11",
		"RangeVec { range: 10..11, data: [1] }",
		"RangeVec { <empty> }",
	}, "\n")+"\n", out)
}

func TestScriptErrors(t *testing.T) {
	_, err := execScript(t, "set 1 1\nfrobnicate 3\n", false)
	require.ErrorContains(t, err, "line 2")
	require.ErrorContains(t, err, `unknown command "frobnicate"`)

	_, err = execScript(t, "set 1\n", false)
	require.ErrorContains(t, err, "usage: set INDEX VALUE")

	_, err = execScript(t, "set -1 1\n", false)
	require.ErrorContains(t, err, "invalid index")

	_, err = execScript(t, "iter 0 18446744073709551615\n", false)
	require.ErrorContains(t, err, "larger than")

	_, err = execScript(t, "drop nothing\n", false)
	require.ErrorContains(t, err, `unknown store "nothing"`)
}

func TestScriptUnstorableIndex(t *testing.T) {
	out, err := execScript(t, "set 18446744073709551615 1\n", false)
	require.ErrorIs(t, err, errUnstorable)
	require.Empty(t, out)

	// the store stays usable after a rejected write
	in := NewInterpreter(registry.New(rangevec.New[int64]), "default", &bytes.Buffer{}, false)
	require.Error(t, in.Exec("set 18446744073709551615 1"))
	require.NoError(t, in.Exec("set 3 1"))
	require.NoError(t, in.Exec("set 18446744073709551615 0"))
}

func TestScriptStats(t *testing.T) {
	out, err := execScript(t, "set 1 1\nset 2 2\nget 1\n", true)
	require.NoError(t, err)
	require.Contains(t, out, "STATISTICS")
	require.Regexp(t, `cmd\.set\s+: 2\n`, out)
	require.Regexp(t, `cmd\.get\s+: 1\n`, out)
	require.Contains(t, out, "cmd.set.time")
}
