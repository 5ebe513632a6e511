package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzofim/peula/internal/config"
	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/repository"
	"github.com/tzofim/peula/internal/testutil"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.StoreBackend = "sqlite"
	cfg.DatabasePath = filepath.Join(t.TempDir(), "peula.db")
	return &App{
		Config:    cfg,
		NewLogger: func(string) (*logger.Logger, error) { return logger.Nop(), nil },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedPeula(t *testing.T, app *App, title string, opts ...testutil.PeulaOption) *domain.Peula {
	t.Helper()
	store, err := openStore(app.Config)
	require.NoError(t, err)
	defer store.Close()

	p := testutil.NewTestPeula(title, opts...)
	require.NoError(t, store.Peulot.Create(context.Background(), p))
	return p
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "other.db")

	_, err := executeCmd(t, app, "--port", "8123", "--db", path, "migrate")
	require.NoError(t, err)

	assert.Equal(t, 8123, app.Config.Port)
	assert.Equal(t, path, app.Config.DatabasePath)
	assert.FileExists(t, path)
}

func TestRootCmd_DBFlagTargetsPostgresURL(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "--store", "postgres", "--db", "postgres://localhost/peula", "templates", "list")
	require.NoError(t, err)

	assert.Equal(t, "postgres", app.Config.StoreBackend)
	assert.Equal(t, "postgres://localhost/peula", app.Config.DatabaseURL)
}

func TestMigrateCmd(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		app := testApp(t)
		out, err := executeCmd(t, app, "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "sqlite schema is up to date")
		assert.FileExists(t, app.Config.DatabasePath)
	})

	t.Run("memory", func(t *testing.T) {
		app := testApp(t)
		out, err := executeCmd(t, app, "--store", "memory", "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "nothing to migrate")
	})

	t.Run("unknown backend", func(t *testing.T) {
		app := testApp(t)
		_, err := executeCmd(t, app, "--store", "mongo", "migrate")
		assert.ErrorContains(t, err, "unknown store backend")
	})
}

func TestTemplatesCmd_List(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "templates", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "leadership")
	assert.Contains(t, out, "Teamwork Challenge")
}

func TestTemplatesCmd_Show(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "templates", "show", "nature")
	require.NoError(t, err)
	assert.Contains(t, out, "Nature & Environment")

	_, err = executeCmd(t, app, "templates", "show", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPeulotCmd_ListAndShow(t *testing.T) {
	app := testApp(t)
	now := time.Now().UTC()
	seedPeula(t, app, "Campfire Songs", testutil.WithPeulaCreatedAt(now.Add(-time.Hour)))
	p := seedPeula(t, app, "Night Navigation",
		testutil.WithTopic("orienteering"),
		testutil.WithPeulaCreatedAt(now),
	)

	out, err := executeCmd(t, app, "peulot", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "orienteering")
	newest := strings.Index(out, "Night Navigation")
	older := strings.Index(out, "Campfire Songs")
	require.True(t, newest >= 0 && older >= 0)
	assert.Less(t, newest, older)

	out, err = executeCmd(t, app, "peulot", "show", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Night Navigation")
	assert.Contains(t, out, p.Content.Components[0].Description)

	_, err = executeCmd(t, app, "peulot", "show", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBuild_WiresMemoryRuntime(t *testing.T) {
	cfg := config.Default()
	rt, err := Build(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	assert.Equal(t, repository.BackendMemory, rt.Store.Backend)
	assert.NotNil(t, rt.Router())

	_, err = rt.Peulot.Export(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuild_BadCredentialsFail(t *testing.T) {
	cfg := config.Default()
	cfg.Google.CredentialsJSON = "{not json"
	_, err := Build(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
