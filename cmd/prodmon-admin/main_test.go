package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaport/prodmon-ui/config"
	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	"github.com/sigmaport/prodmon-ui/internal/testutil"
)

type cliFixture struct {
	cc      *commandContext
	out     *bytes.Buffer
	backend *testutil.FakeBackend
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	out := &bytes.Buffer{}
	cc := &commandContext{
		Ctx:    t.Context(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: config.AppConfig{
			Backend: config.BackendConfig{
				BaseURL:          backend.URL(),
				Timeout:          5 * time.Second,
				ErrorMessagePath: "message || error",
			},
			Session: config.SessionConfig{
				IdleTimeout: 20 * time.Minute,
				TokenStore:  config.TokenStoreFile,
				TokenFile:   filepath.Join(t.TempDir(), "token"),
				TokenKey:    "prodmon:token",
			},
		},
		Stdin:        strings.NewReader(""),
		Stdout:       out,
		readPassword: func(string) (string, error) { return "secret", nil },
	}
	return &cliFixture{cc: cc, out: out, backend: backend}
}

func (f *cliFixture) login(t *testing.T, username string) {
	t.Helper()
	require.NoError(t, runLogin(f.cc, []string{"-username", username}))
	f.out.Reset()
}

func TestLoginWhoamiLogout(t *testing.T) {
	f := newCLIFixture(t)

	require.NoError(t, runLogin(f.cc, []string{"-username", "pabrik"}))
	assert.Equal(t, "Signed in as pabrik (entry_admin)\n", f.out.String())
	_, err := os.Stat(f.cc.Config.Session.TokenFile)
	require.NoError(t, err)

	f.out.Reset()
	require.NoError(t, runWhoami(f.cc, nil))
	assert.Contains(t, f.out.String(), "pabrik")
	assert.Contains(t, f.out.String(), "Pabrik")
	assert.Contains(t, f.out.String(), "Expires")

	f.out.Reset()
	require.NoError(t, runWhoami(f.cc, []string{"-json"}))
	assert.Contains(t, f.out.String(), `"state": "authenticated"`)

	f.out.Reset()
	require.NoError(t, runLogout(f.cc, nil))
	assert.Equal(t, "Signed out\n", f.out.String())
	_, err = os.Stat(f.cc.Config.Session.TokenFile)
	assert.True(t, os.IsNotExist(err))

	require.ErrorIs(t, runWhoami(f.cc, nil), errNotSignedIn)
}

func TestLogin_PasswordStdin(t *testing.T) {
	f := newCLIFixture(t)
	f.cc.Stdin = strings.NewReader("wrong\n")

	err := runLogin(f.cc, []string{"-username", "pabrik", "-password-stdin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username atau password salah")
	_, statErr := os.Stat(f.cc.Config.Session.TokenFile)
	assert.True(t, os.IsNotExist(statErr))

	f.cc.Stdin = strings.NewReader("secret")
	require.NoError(t, runLogin(f.cc, []string{"-username", "root", "-password-stdin"}))
	assert.Contains(t, f.out.String(), "Signed in as root (superuser)")
}

func TestLogin_RequiresUsername(t *testing.T) {
	f := newCLIFixture(t)
	err := runLogin(f.cc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-username")
}

func TestUnits(t *testing.T) {
	f := newCLIFixture(t)
	require.ErrorIs(t, runUnits(f.cc, nil), errNotSignedIn)

	f.login(t, "pabrik")
	require.NoError(t, runUnits(f.cc, nil))

	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Manage")
	assert.Contains(t, lines[1], "Pabrik 1")
	assert.True(t, strings.HasSuffix(lines[1], "yes"))
	assert.Contains(t, lines[2], "BKS Ciwandan")
	assert.True(t, strings.HasSuffix(lines[2], "no"))
}

func TestUnits_RejectedCredentialEndsSession(t *testing.T) {
	f := newCLIFixture(t)
	f.login(t, "pabrik")
	f.backend.RejectCredentials(true)

	err := runUnits(f.cc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")

	_, statErr := os.Stat(f.cc.Config.Session.TokenFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRilis(t *testing.T) {
	f := newCLIFixture(t)
	f.backend.SetReleases(model.ModuleProduksi, testutil.NewReleaseRows().
		Add("Pabrik 1", 1, 100, 200).
		Add("BKS Ciwandan", 1, 50, 0).
		Add("Pabrik 1", 2, 80, 100).
		Build())
	f.login(t, "viewer")

	require.NoError(t, runRilis(f.cc, []string{"-module", "produksi", "-year", "2025"}))
	out := f.out.String()
	assert.Contains(t, out, "Rilis Produksi 2025")
	assert.Contains(t, out, "BKS Ciwandan")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Des")
	assert.Contains(t, out, "230.00")
	assert.Contains(t, out, "300.00")
}

func TestRilis_UnknownModule(t *testing.T) {
	f := newCLIFixture(t)
	err := runRilis(f.cc, []string{"-module", "gudang"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module")
}

func TestMemoryStoreUsesTokenFile(t *testing.T) {
	f := newCLIFixture(t)
	f.cc.Config.Session.TokenStore = config.TokenStoreMemory

	f.login(t, "pabrik")
	require.NoError(t, runWhoami(f.cc, nil))
	assert.Contains(t, f.out.String(), "pabrik")
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	assert.Contains(t, out, "Usage: prodmon-admin <command> [flags]")
	last := -1
	for _, name := range []string{"login", "logout", "rilis", "units", "whoami"} {
		idx := strings.Index(out, "  "+name+" ")
		require.Greater(t, idx, last, name)
		last = idx
	}
}
