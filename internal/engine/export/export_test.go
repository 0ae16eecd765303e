package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Transcript", "Transcript"},
		{"  my video: part 1/2 ", "my_video__part_1_2"},
		{"../../etc/passwd", "etc_passwd"},
		{"Привет", "Привет"},
		{"", DefaultName},
		{"???", DefaultName},
		{strings.Repeat("a", 100), strings.Repeat("a", maxNameRunes)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), tt.in)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("Markdown")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWrite_Text(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")

	res, err := Write(dir, "My Video", "Hello. World", FormatText)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(res.Path))
	assert.True(t, strings.HasPrefix(res.Name, "My_Video-"))
	assert.True(t, strings.HasSuffix(res.Name, ".txt"))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "Hello. World\n", string(data))
	assert.Equal(t, len(data), res.Bytes)

	again, err := Write(dir, "My Video", "Hello. World", FormatText)
	require.NoError(t, err)
	assert.NotEqual(t, res.Path, again.Path)
}

func TestWrite_Markdown(t *testing.T) {
	res, err := Write(t.TempDir(), DefaultTranslatedName, "Bonjour <b>le</b> monde\nSecond line", FormatMarkdown)
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	md := string(data)
	assert.True(t, strings.HasPrefix(md, "# Translated_Transcript") || strings.HasPrefix(md, "# Translated\\_Transcript"), md)
	assert.Contains(t, md, "Bonjour")
	assert.Contains(t, md, "Second line")
}

func TestMarkdown_EscapesCaptionText(t *testing.T) {
	md, err := Markdown("Talk", "*not emphasis* and # not a heading")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# Talk"), md)
	assert.NotContains(t, md, "*not emphasis*")
	assert.Contains(t, md, "not emphasis")
}

func TestWrite_Errors(t *testing.T) {
	_, err := Write("", "x", "content", FormatText)
	assert.Error(t, err)
	_, err = Write(t.TempDir(), "x", "  ", FormatText)
	assert.Error(t, err)
}
