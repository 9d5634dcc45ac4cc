package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_KEY", "API_URL", "MODEL", "API_CLIENT"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootFailsWithoutAPIKey(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	convPath := filepath.Join(dir, "conversations.json")

	_, _, err := execute(t, "0\n", "--config", filepath.Join(dir, "none.yaml"), "--conversations", convPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY is not set")

	_, statErr := os.Stat(convPath)
	assert.True(t, os.IsNotExist(statErr), "no file should be touched before validation")
}

func TestRootRunsChatSession(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"hi there"}}]}`)
	}))
	defer srv.Close()

	t.Setenv("API_KEY", "test-key")
	t.Setenv("API_URL", srv.URL+"/v1/chat/completions")

	dir := t.TempDir()
	convPath := filepath.Join(dir, "conversations.json")
	promptPath := filepath.Join(dir, "prompt.json")

	out, _, err := execute(t, "0\nbe brief\n\nhello\n/\n\n",
		"--config", filepath.Join(dir, "none.yaml"),
		"--conversations", convPath,
		"--prompt-file", promptPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "AI: hi there")

	data, err := os.ReadFile(convPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":"hello"`)
	assert.Contains(t, string(data), `"content":"hi there"`)

	data, err = os.ReadFile(promptPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"prompt":"be brief"}`, string(data))
}

func TestListAndDelete(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	convPath := filepath.Join(dir, "conversations.json")
	require.NoError(t, os.WriteFile(convPath, []byte(`[{"id":1,"timestamp":1700000000000,"history":[{"role":"user","content":"hello"}]},{"id":2,"timestamp":1700000100000,"history":[]}]`), 0o644))

	out, _, err := execute(t, "", "list", "--conversations", convPath)
	require.NoError(t, err)
	assert.Contains(t, out, "[1] ")
	assert.Contains(t, out, "hello...")
	assert.Contains(t, out, "[2] ")

	out, _, err = execute(t, "", "delete", "9", "--conversations", convPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No conversation with id 9")

	out, errOut, err := execute(t, "", "delete", "1", "--conversations", convPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Conversation 1 deleted!")
	assert.Contains(t, errOut, "INFO")
	assert.Contains(t, errOut, "conversation deleted")
	assert.Contains(t, errOut, convPath)

	out, _, err = execute(t, "", "list", "--conversations", convPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "[1] ")
	assert.Contains(t, out, "[2] ")
}

func TestListEmpty(t *testing.T) {
	clearEnv(t)
	out, _, err := execute(t, "", "list", "--conversations", filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "No saved conversations.")
}

func TestDeleteRejectsBadID(t *testing.T) {
	clearEnv(t)
	_, _, err := execute(t, "", "delete", "abc", "--conversations", filepath.Join(t.TempDir(), "c.json"))
	require.Error(t, err)
}

func TestDeleteRefusesCorruptFile(t *testing.T) {
	clearEnv(t)
	convPath := filepath.Join(t.TempDir(), "conversations.json")
	require.NoError(t, os.WriteFile(convPath, []byte("{oops"), 0o644))

	_, _, err := execute(t, "", "delete", "1", "--conversations", convPath)
	require.Error(t, err)

	data, readErr := os.ReadFile(convPath)
	require.NoError(t, readErr)
	assert.Equal(t, "{oops", string(data))
}

func TestPromptSetAndShow(t *testing.T) {
	clearEnv(t)
	promptPath := filepath.Join(t.TempDir(), "prompt.json")

	out, _, err := execute(t, "", "prompt", "--prompt-file", promptPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No saved system prompt.")

	_, _, err = execute(t, "", "prompt", "--prompt-file", promptPath, "You", "are", "a", "guide")
	require.NoError(t, err)

	out, _, err = execute(t, "", "prompt", "--prompt-file", promptPath)
	require.NoError(t, err)
	assert.Contains(t, out, "You are a guide")
}

func TestConfigFileIsApplied(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	convPath := filepath.Join(dir, "from-file.json")
	cfgPath := filepath.Join(dir, "mcchat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("conversations_file: "+convPath+"\n"), 0o644))
	require.NoError(t, os.WriteFile(convPath, []byte(`[{"id":5,"timestamp":1700000000000,"history":[]}]`), 0o644))

	out, _, err := execute(t, "", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "[5] ")
}
