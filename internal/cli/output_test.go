package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	err := f.Success("all done")
	require.NoError(t, err)
	assert.Equal(t, "all done\n", buf.String())
}

func TestSuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	err := f.Success(map[string]int{"points": 3})
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	err := f.Error(ErrCodeInvalidSeq, "bad file")
	require.NoError(t, err)
	assert.Equal(t, "Error [E003]: bad file\n", buf.String())
}

func TestErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	err := f.Error(ErrCodeNotFound, "no such entry")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "no such entry", resp.Error.Message)
}

func TestVerboseLog(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf, Verbose: false}

	f.VerboseLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	f.Verbose = true
	f.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", buf.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(&ExitError{Code: ExitCommandError, Message: "boom"}))
	assert.Equal(t, ExitFailure,
		GetExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: ExitFailure, Message: "inner"})))
}

func TestExitErrorMessage(t *testing.T) {
	e := &ExitError{Code: ExitCommandError, Message: "load profile", Err: errors.New("no such file")}
	assert.Equal(t, "load profile: no such file", e.Error())
	assert.Equal(t, "no such file", e.Unwrap().Error())

	bare := &ExitError{Code: ExitFailure, Message: "invalid sequence file"}
	assert.Equal(t, "invalid sequence file", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
