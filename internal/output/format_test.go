package output_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videvian/log-in-with-ethos/internal/output"
)

type named struct{ name string }

func (n named) String() string { return "name=" + n.name }

func TestFormatter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf, true)

	require.NoError(t, f.Print(map[string]int{"score": 1650}))
	assert.JSONEq(t, `{"score":1650}`, buf.String())
	assert.True(t, f.IsJSON())
	assert.Equal(t, output.FormatJSON, f.Format())
}

func TestFormatter_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf, false)

	require.NoError(t, f.Print("plain"))
	require.NoError(t, f.Print(named{"alice"}))
	require.NoError(t, f.Print(42))
	require.NoError(t, f.Printf("%s=%d\n", "score", 7))
	require.NoError(t, f.Println("done"))

	assert.Equal(t, "plain\nname=alice\n42\nscore=7\ndone\n", buf.String())
	assert.False(t, f.IsJSON())
	assert.Same(t, &buf, f.Writer())
	assert.NotNil(t, f.Palette())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]output.Format{
		"json":   output.FormatJSON,
		" JSON ": output.FormatJSON,
		"text":   output.FormatText,
		"Text":   output.FormatText,
		"auto":   output.FormatAuto,
		"":       output.FormatAuto,
		"yaml":   output.FormatAuto,
	}

	for in, want := range tests {
		assert.Equal(t, want, output.ParseFormat(in), in)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto), "buffers are not terminals")
	assert.False(t, output.IsTerminal(&buf))
}

func TestDetectFormat_File(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, output.FormatJSON, output.DetectFormat(f, output.FormatAuto), "regular files are not terminals")
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	table := output.NewTable("LEVEL", "MIN")
	table.AddRow("untrusted", "0")
	table.AddRow("known", "1400")

	want := "" +
		"LEVEL      MIN\n" +
		"---------  ----\n" +
		"untrusted  0\n" +
		"known      1400\n"
	assert.Equal(t, want, table.String())
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.NewTable().Render(&buf))
	assert.Empty(t, buf.String())
}

func TestTable_RaggedRows(t *testing.T) {
	t.Parallel()

	table := output.NewTable("A")
	table.AddRow("1", "extra")
	table.AddRow()

	lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1  extra", lines[2])
}

func TestTable_StyledCellsAlign(t *testing.T) {
	t.Parallel()

	table := output.NewTable("LEVEL", "MIN")
	table.AddRow("\x1b[31mred\x1b[0m", "0")
	table.AddRow("plain", "1")

	lines := strings.Split(table.String(), "\n")
	assert.Equal(t, "\x1b[31mred\x1b[0m    0", lines[2], "escape codes do not count toward width")
	assert.Equal(t, "plain  1", lines[3])
}
