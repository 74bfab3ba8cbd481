package cli

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMorph executes the CLI with the given stdin and arguments, returning
// stdout, stderr and the command error.
func runMorph(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmdArgs := append([]string{"run", "../../main.go"}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestFmtCommand(t *testing.T) {
	stdout, stderr, err := runMorph(t, `{"b":2,"a":1}`, "fmt")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", stdout)
}

func TestFmtCommandIndentFlag(t *testing.T) {
	stdout, stderr, err := runMorph(t, `{"a":1}`, "-n", "4", "fmt")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "{\n    \"a\": 1\n}\n", stdout)
}

func TestConvertCommand(t *testing.T) {
	stdout, stderr, err := runMorph(t, `{"name":"Bob","age":30}`, "convert", "--to", "yaml")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "age: 30\nname: Bob\n", stdout)
}

func TestConvertCommandXML(t *testing.T) {
	stdout, stderr, err := runMorph(t, `<root><name>Bob</name></root>`, "convert", "--from", "xml", "--to", "json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "{\n  \"name\": \"Bob\"\n}\n", stdout)
}

func TestConvertCommandCSV(t *testing.T) {
	stdout, stderr, err := runMorph(t, "name,age\nBob,30\n", "convert", "--from", "csv", "--to", "json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"name": "Bob"`)
	assert.Contains(t, stdout, `"age": 30`)
}

func TestCompressCommand(t *testing.T) {
	stdout, stderr, err := runMorph(t, "{\n  \"a\": 1\n}", "compress")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "{\"a\":1}\n", stdout)
	assert.Contains(t, stderr, "bytes")
}

func TestValidateCommand(t *testing.T) {
	stdout, _, err := runMorph(t, `{"a": 1}`, "validate")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", stdout)

	_, stderr, err := runMorph(t, `{"a": }`, "validate")
	require.Error(t, err, "invalid input must exit non-zero")
	assert.Contains(t, stderr, "position")
}

func TestDetectCommand(t *testing.T) {
	stdout, _, err := runMorph(t, "name: Bob\nage: 30\n", "detect")
	require.NoError(t, err)
	assert.Equal(t, "yaml\n", stdout)
}

func TestFixCommand(t *testing.T) {
	stdout, stderr, err := runMorph(t, `{name: 'Bob', age: 30,}`, "fix")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "{\n  \"age\": 30,\n  \"name\": \"Bob\"\n}\n", stdout)
	assert.Contains(t, stderr, "replaced single quotes")
}

func TestExtractCommand(t *testing.T) {
	cmd := `curl -X POST https://api.example.com -H 'Content-Type: application/json' -d '{"a": 1}'`
	stdout, stderr, err := runMorph(t, cmd, "extract")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", stdout)
	assert.Contains(t, stderr, "detected: cURL")
	assert.Contains(t, stderr, "url: https://api.example.com")
}

func TestStatsCommand(t *testing.T) {
	stdout, _, err := runMorph(t, `{"a":1,"b":[2,3]}`, "stats")
	require.NoError(t, err)
	assert.Equal(t, "nodes: 5\ndepth: 2\nbytes: 17\n", stdout)
}

func TestQueryCommand(t *testing.T) {
	stdout, _, err := runMorph(t, `{"user":{"name":"Bob"}}`, "query", "user.name")
	require.NoError(t, err)
	assert.Equal(t, "\"Bob\"\n", stdout)
}

func TestNoInputFails(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "fmt", "-i", "does-not-exist.json")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "not found")
}
