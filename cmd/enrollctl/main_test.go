package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/form"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CATALOG_DATABASE_URL", "")

	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, err := runCmd(t)
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "bogus")
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_Courses(t *testing.T) {
	out, err := runCmd(t, "courses")

	require.NoError(t, err)
	assert.Contains(t, out, "Full Stack Web Development")
	assert.Contains(t, out, "45,000")
}

func TestRun_Quote(t *testing.T) {
	out, err := runCmd(t, "quote",
		"-courses", "Full Stack Web Development,Frontend with React",
		"-mode", "Online",
		"-type", "partial",
		"-partial", "10000",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "18%")
	// 75,000 base, 88,500 with GST, 78,500 left to pay.
	assert.Contains(t, out, "75,000")
	assert.Contains(t, out, "88,500")
	assert.Contains(t, out, "78,500")
}

func TestRun_QuoteRejectsBadInput(t *testing.T) {
	_, err := runCmd(t, "quote", "-courses", "Basket Weaving")
	assert.ErrorIs(t, err, form.ErrUnknownCourse)

	_, err = runCmd(t, "quote", "-mode", "Cheque")
	assert.ErrorIs(t, err, candidate.ErrInvalidOption)

	_, err = runCmd(t, "quote", "-type", "monthly")
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_Validate(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{
		"contactNumber": "9876543210",
		"email": "asha@example.com",
		"aadharCard": "123412341234",
		"panCard": "abcde1234f"
	}`), 0o600))

	out, err := runCmd(t, "validate", "-file", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ABCDE1234F")
	assert.Contains(t, out, "record is valid")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"contactNumber": "123"}`), 0o600))

	out, err = runCmd(t, "validate", "-file", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contactNumber")
	assert.Contains(t, out, "Contact number must start with 6-9 and be 10 digits")
}

func TestRun_ValidateNeedsFile(t *testing.T) {
	_, err := runCmd(t, "validate")
	assert.ErrorIs(t, err, errUsage)
}
