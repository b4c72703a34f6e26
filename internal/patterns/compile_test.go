package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitepulse/siteaudit/internal/audit"
)

func compileString(t *testing.T, src string) (*Registry, error) {
	t.Helper()
	ctx := cuecontext.New()
	return Compile(ctx.CompileString(src))
}

const minimalRegistry = `
version: "test.1"
engines: [{name: "Cloudbeds", type: "embedded", patterns: ["cloudbeds\\.com"]}]
generic_booking: ["booking-form"]
ctas: [{text: "Book Now", priority: 100, patterns: ["book now"]}]
`

func TestCompileMinimalRegistry(t *testing.T) {
	reg, err := compileString(t, minimalRegistry)
	require.NoError(t, err)

	assert.Equal(t, "test.1", reg.Version)
	require.Len(t, reg.Engines, 1)
	assert.Equal(t, "Cloudbeds", reg.Engines[0].Name)
	assert.Equal(t, audit.EngineEmbedded, reg.Engines[0].Type)
	require.Len(t, reg.CTAs, 1)
	assert.Equal(t, 100, reg.CTAs[0].Priority)
}

func TestCompilePatternsAreCaseInsensitive(t *testing.T) {
	reg, err := compileString(t, minimalRegistry)
	require.NoError(t, err)

	assert.True(t, reg.Engines[0].Patterns[0].MatchString("widget.CLOUDBEDS.com/v2"))
	assert.True(t, reg.CTAs[0].Patterns[0].MatchString("BOOK NOW"))
}

func TestCompileMissingVersion(t *testing.T) {
	_, err := compileString(t, `
engines: [{name: "X", type: "embedded", patterns: ["x"]}]
ctas: [{text: "Y", priority: 1, patterns: ["y"]}]
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestCompileInvalidEngineType(t *testing.T) {
	_, err := compileString(t, `
version: "test.1"
engines: [{name: "X", type: "popup", patterns: ["x"]}]
ctas: [{text: "Y", priority: 1, patterns: ["y"]}]
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engines[0].type")
}

func TestCompileInvalidRegexp(t *testing.T) {
	_, err := compileString(t, `
version: "test.1"
engines: [{name: "X", type: "embedded", patterns: ["(["]}]
ctas: [{text: "Y", priority: 1, patterns: ["y"]}]
`)
	require.Error(t, err)

	compileErr, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, "engines[0]", compileErr.Field)
}

func TestCompileWithoutGenericBooking(t *testing.T) {
	reg, err := compileString(t, `
version: "test.1"
engines: [{name: "Cloudbeds", type: "embedded", patterns: ["cloudbeds\\.com"]}]
ctas: [{text: "Book Now", priority: 100, patterns: ["book now"]}]
`)
	require.NoError(t, err, "generic_booking is optional")
	assert.Empty(t, reg.GenericBooking)
}

func TestCompileInvalidBadgeCategory(t *testing.T) {
	_, err := compileString(t, minimalRegistry+`
badges: [{name: "X", category: "sparkle", patterns: ["x"]}]
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badges[0].category")
}

func TestDefaultRegistryCompiles(t *testing.T) {
	reg := Default()

	assert.NotEmpty(t, reg.Version)
	assert.NotEmpty(t, reg.Engines)
	assert.NotEmpty(t, reg.GenericBooking)
	assert.NotEmpty(t, reg.CTAs)
	assert.NotEmpty(t, reg.ReviewPlatforms)
	assert.NotEmpty(t, reg.Badges)
	assert.NotEmpty(t, reg.Social)
}

func TestDefaultRegistryCTAOrder(t *testing.T) {
	// Equal-priority CTAs resolve to the earlier table entry, so the
	// table order itself is a contract.
	reg := Default()

	require.GreaterOrEqual(t, len(reg.CTAs), 2)
	assert.Equal(t, "Instant Book", reg.CTAs[0].Text)
	assert.Equal(t, "Book Now", reg.CTAs[1].Text)
	assert.Equal(t, reg.CTAs[0].Priority, reg.CTAs[1].Priority)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "registry.cue"), []byte(minimalRegistry), 0o644)
	require.NoError(t, err)

	reg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "test.1", reg.Version)
}

func TestLoadDirPackagelessFile(t *testing.T) {
	// Registry documents carry no package clause; the loader must still
	// pick them up.
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "overrides.cue"), []byte(`
version: "override.1"
engines: [{name: "Mews", type: "redirect", patterns: ["mews\\.com"]}]
ctas: [{text: "Reserve", priority: 90, patterns: ["reserve"]}]
`), 0o644)
	require.NoError(t, err)

	reg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "override.1", reg.Version)
	require.Len(t, reg.Engines, 1)
	assert.Equal(t, "Mews", reg.Engines[0].Name)
}

func TestLoadDirUnifiesFiles(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "registry.cue"), []byte(minimalRegistry), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "social.cue"), []byte(`
social: [{name: "Facebook", patterns: ["facebook\\.com"]}]
`), 0o644)
	require.NoError(t, err)

	reg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "test.1", reg.Version)
	require.Len(t, reg.Social, 1)
	assert.Equal(t, "Facebook", reg.Social[0].Name)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CUE files")
}
