package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fjacquet/spending-nb/cmd/root"
	"fjacquet/spending-nb/internal/bayes"
	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/modelcache"
	"fjacquet/spending-nb/internal/tokenizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var register sync.Once

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	register.Do(func() {
		root.Init()
		root.Cmd.AddCommand(Cmd)
	})
	tokens = 5
	root.Flags = root.GlobalFlags{}

	var buf bytes.Buffer
	root.Cmd.SetOut(&buf)
	root.Cmd.SetErr(&buf)
	root.Cmd.SetArgs(args)
	t.Cleanup(func() { root.Cmd.SetArgs(nil) })

	err := root.Cmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T) (cfgPath, cacheFile string) {
	t.Helper()
	dir := t.TempDir()
	cacheFile = filepath.Join(dir, "model.db")
	cfgPath = filepath.Join(dir, "config.yaml")
	content := "log:\n  level: error\n" +
		"data:\n" +
		"  history_file: " + filepath.Join(dir, "history.csv") + "\n" +
		"  archive_dir: " + dir + "\n" +
		"  cache_file: " + cacheFile + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0600))
	return cfgPath, cacheFile
}

func TestInspectCommand_Metadata(t *testing.T) {
	assert.Equal(t, "inspect", Cmd.Use)
	assert.Contains(t, Cmd.Short, "YAML summary")
	assert.NotNil(t, Cmd.RunE)

	tokensFlag := Cmd.Flags().Lookup("tokens")
	require.NotNil(t, tokensFlag)
	assert.Equal(t, "t", tokensFlag.Shorthand)
	assert.Equal(t, "5", tokensFlag.DefValue)
}

func TestInspectCommand_PrintsSummary(t *testing.T) {
	cfgPath, cacheFile := writeConfig(t)
	store := bayes.NewStore()
	store.AddExample("pizza place", "Food")
	store.AddExample("taxi fare", "Transport")
	require.NoError(t, modelcache.New(cacheFile, tokenizer.ModeWhitespace, logging.NewMockLogger()).Save(store.Snapshot()))

	out, err := execute(t, "inspect", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "source: "+cacheFile)
	assert.Contains(t, out, "tokenizer: whitespace")
	assert.Contains(t, out, "examples: 2")
	assert.Contains(t, out, "name: Food")
	assert.Contains(t, out, "name: Transport")
}

func TestInspectCommand_NoCache(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := execute(t, "inspect", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable cached classifier")
}
