package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`with ID (\S+)`)

// runOK runs the command and returns its stdout, failing the test on error.
func runOK(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	err := run(args, bytes.NewBufferString(stdin), stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())
	return stdout.String()
}

func idFrom(t *testing.T, output string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(output)
	require.Len(t, m, 2, "no ID in output: %s", output)
	return m[1]
}

func setupGroup(t *testing.T) (dbPath, groupID string) {
	t.Helper()
	dbPath = filepath.Join(t.TempDir(), "ledgerctl.db")
	out := runOK(t, "", "addgroup", "-name", "Republica Sol", "-db", dbPath)
	assert.Contains(t, out, "Group Republica Sol created")
	return dbPath, idFrom(t, out)
}

func TestRun_NoCommand(t *testing.T) {
	stdout := new(bytes.Buffer)
	err := run(nil, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run([]string{"explode"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "explode"`)
}

func TestRun_AddMember(t *testing.T) {
	dbPath, groupID := setupGroup(t)

	out := runOK(t, "", "addmember", "-group", groupID, "-name", "Ana", "-email", "ana@example.com",
		"-role", "admin_finance", "-rent", "850", "-password", "supersecret", "-db", dbPath)
	assert.Contains(t, out, "Member ana@example.com created successfully")

	t.Run("interactive password", func(t *testing.T) {
		out := runOK(t, "interactive-secret\n", "addmember", "-group", groupID, "-name", "Bruno",
			"-email", "bruno@example.com", "-db", dbPath)
		assert.Contains(t, out, "Password: ")
		assert.Contains(t, out, "Member bruno@example.com created successfully")
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := run([]string{"addmember", "-group", groupID, "-name", "Ana", "-email", "ana@example.com",
			"-password", "supersecret", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("invalid role", func(t *testing.T) {
		err := run([]string{"addmember", "-group", groupID, "-name", "Caio", "-email", "caio@example.com",
			"-role", "landlord", "-password", "supersecret", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid role")
	})

	for _, rent := range []string{"-1", "850.005", "1000000000000.01", "184467440737095516.17", "abc"} {
		t.Run("invalid rent "+rent, func(t *testing.T) {
			err := run([]string{"addmember", "-group", groupID, "-name", "Caio", "-email", "caio@example.com",
				"-rent", rent, "-password", "supersecret", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid rent")
		})
	}

	t.Run("short password", func(t *testing.T) {
		err := run([]string{"addmember", "-group", groupID, "-name", "Caio", "-email", "caio@example.com",
			"-password", "short", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
		require.Error(t, err)
	})

	t.Run("missing flags", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		err := run([]string{"addmember", "-db", dbPath}, new(bytes.Buffer), stdout, new(bytes.Buffer))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required flags: group, name, email")
		assert.Contains(t, stdout.String(), "Usage:")
	})
}

func TestRun_BillLocalAndDashboard(t *testing.T) {
	dbPath, groupID := setupGroup(t)

	out := runOK(t, "", "addmember", "-group", groupID, "-name", "Ana", "-email", "ana@example.com",
		"-role", "admin_finance", "-rent", "1234.5", "-password", "supersecret", "-db", dbPath)
	adminID := idFrom(t, out)

	err := run([]string{"bill", "-as", adminID, "-local", "-db", dbPath},
		new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no expense templates")

	out = runOK(t, "", "dashboard", "-member", adminID, "-db", dbPath)
	assert.Contains(t, out, "Aluguel fixo")
	assert.Contains(t, out, "R$ 1.234,50")
}

func TestRun_BillRequiresBroker(t *testing.T) {
	t.Setenv("AMQP_URL", "")

	err := run([]string{"bill", "-as", "member-1"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AMQP_URL is required")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatAmount(decimal.Zero))
	assert.Equal(t, "R$ 1.234,50", formatAmount(decimal.RequireFromString("1234.5")))
}
