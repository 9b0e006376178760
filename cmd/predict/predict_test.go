package predict

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fjacquet/spending-nb/cmd/root"

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
	useCache, top = false, 0
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
	history := filepath.Join(dir, "cc_history.csv")
	require.NoError(t, os.WriteFile(history, []byte(
		"2018-04-10,12.00,3,Food,pizza place\n"+
			"2018-04-11,8.50,2,Food,burger joint\n"+
			"2018-04-12,25.00,1,Transport,taxi fare\n"), 0600))

	cacheFile = filepath.Join(dir, "model_cache", "model.db")
	cfgPath = filepath.Join(dir, "config.yaml")
	content := "log:\n  level: error\n" +
		"report:\n  color: false\n" +
		"data:\n" +
		"  history_file: " + history + "\n" +
		"  archive_dir: " + dir + "\n" +
		"  cache_file: " + cacheFile + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0600))
	return cfgPath, cacheFile
}

func TestPredictCommand_Metadata(t *testing.T) {
	assert.Equal(t, "predict <description>...", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Predict the spending category")
	assert.Contains(t, Cmd.Long, "The model is not updated")
	assert.NotNil(t, Cmd.RunE)
}

func TestPredictCommand_Flags(t *testing.T) {
	cachedFlag := Cmd.Flags().Lookup("cached")
	require.NotNil(t, cachedFlag)
	assert.Equal(t, "c", cachedFlag.Shorthand)

	topFlag := Cmd.Flags().Lookup("top")
	require.NotNil(t, topFlag)
	assert.Equal(t, "n", topFlag.Shorthand)
	assert.Equal(t, "0", topFlag.DefValue)
}

func TestPredictCommand_Classifies(t *testing.T) {
	cfgPath, cacheFile := writeConfig(t)

	out, err := execute(t, "predict", "--config", cfgPath, "pizza slice", "taxi")
	require.NoError(t, err)

	assert.Contains(t, out, `"pizza slice" -> Food`)
	assert.Contains(t, out, `"taxi" -> Transport`)
	assert.NoFileExists(t, cacheFile, "predict must not write the cache")
}

func TestPredictCommand_TopLimitsScores(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, err := execute(t, "predict", "--config", cfgPath, "-n", "1", "taxi")
	require.NoError(t, err)

	assert.Contains(t, out, `"taxi" -> Transport`)
	assert.NotContains(t, out, "Food")
}

func TestPredictCommand_RequiresDescription(t *testing.T) {
	_, err := execute(t, "predict")
	assert.Error(t, err)
}
