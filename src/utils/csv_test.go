package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"dashboard/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDelimitedFile(t *testing.T) {
	// A UTF-8 BOM followed by ISO-8859-1 encoded content, the way the
	// exports arrive. 0xE7 is "ç" in latin-1.
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("fundo;descri\xE7\xE3o;valor\nAlpha;cr\xE9dito;1,5\nBeta;;2,0\n")...)

	path := filepath.Join(t.TempDir(), "fund_data.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	rows, err := utils.ReadDelimitedFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"fundo", "descrição", "valor"}, rows[0])
	assert.Equal(t, []string{"Alpha", "crédito", "1,5"}, rows[1])
	assert.Equal(t, []string{"Beta", "", "2,0"}, rows[2])
}

func TestReadDelimitedFileMissing(t *testing.T) {
	_, err := utils.ReadDelimitedFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestStripBOMArtifact(t *testing.T) {
	assert.Equal(t, "fundo", utils.StripBOMArtifact("\uFEFFfundo"))
	assert.Equal(t, "fundo", utils.StripBOMArtifact("ï»¿fundo"))
	assert.Equal(t, "fundo", utils.StripBOMArtifact("fundo"))
	assert.Equal(t, "fundo", utils.StripBOMArtifact(" fundo "))
}
