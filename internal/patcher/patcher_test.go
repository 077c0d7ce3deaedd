package patcher

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micronest/chainconfig/internal/console"
	"github.com/micronest/chainconfig/internal/domain"
)

const sampleService = `import 'package:web3dart/web3dart.dart';

class BlockchainService {
  // Sepolia endpoint: https://sepolia.infura.io/v3/YOUR_INFURA_PROJECT_ID
  static const String _rpcUrl = 'https://sepolia.infura.io/v3/YOUR_INFURA_PROJECT_ID';
  static const String _contractAddress = '0x0000000000000000000000000000000000000000';
  static const String _fallbackAddress = '0x0000000000000000000000000000000000000000';
  static const int _chainId = 11155111;
}
`

var testSettings = domain.Settings{
	ProjectID:       "abc123",
	ContractAddress: "0x1111111111111111111111111111111111111111",
}

func writeTarget(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockchain_service.dart")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestPatcher(path string) (*Patcher, *bytes.Buffer) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(path, console.New(&out), logger), &out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPatcher_ReplacesBothPlaceholders(t *testing.T) {
	path := writeTarget(t, sampleService)
	p, out := newTestPatcher(path)

	result, err := p.Patch(context.Background(), testSettings)
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	assert.Equal(t, 2, result.InfuraReplacements)
	assert.Equal(t, 2, result.AddressReplacements)
	assert.True(t, result.Changed())

	expected := strings.ReplaceAll(sampleService, "https://sepolia.infura.io/v3/YOUR_INFURA_PROJECT_ID", "https://sepolia.infura.io/v3/abc123")
	expected = strings.ReplaceAll(expected, domain.ZeroAddress, testSettings.ContractAddress)
	assert.Equal(t, expected, readFile(t, path))

	text := out.String()
	assert.Contains(t, text, "✅ Updated Infura URL with project ID: abc123")
	assert.Contains(t, text, "✅ Updated contract address: "+testSettings.ContractAddress)
	assert.Contains(t, text, "✅ Flutter blockchain configuration updated successfully!")
	assert.NotContains(t, text, "⚠️")
}

func TestPatcher_InfuraOnly(t *testing.T) {
	content := "url: https://sepolia.infura.io/v3/YOUR_INFURA_PROJECT_ID\nother: YOUR_INFURA_PROJECT_ID\n"
	path := writeTarget(t, content)
	p, out := newTestPatcher(path)

	result, err := p.Patch(context.Background(), testSettings)
	require.NoError(t, err)

	assert.Equal(t, 1, result.InfuraReplacements)
	assert.Zero(t, result.AddressReplacements)
	// the bare sentinel outside the URL is left alone
	assert.Equal(t, "url: https://sepolia.infura.io/v3/abc123\nother: YOUR_INFURA_PROJECT_ID\n", readFile(t, path))
	assert.Contains(t, out.String(), "⚠️  Contract address already updated or not found")
}

func TestPatcher_AddressKeepsLength(t *testing.T) {
	content := "a = '0x0000000000000000000000000000000000000000';\nb = \"0x0000000000000000000000000000000000000000\";\n"
	path := writeTarget(t, content)
	p, out := newTestPatcher(path)

	result, err := p.Patch(context.Background(), testSettings)
	require.NoError(t, err)

	assert.Equal(t, 2, result.AddressReplacements)
	patched := readFile(t, path)
	assert.Len(t, patched, len(content))
	assert.NotContains(t, patched, domain.ZeroAddress)
	assert.Equal(t, 2, strings.Count(patched, testSettings.ContractAddress))
	assert.Contains(t, out.String(), "⚠️  Infura URL already updated or not found")
}

func TestPatcher_Idempotent(t *testing.T) {
	path := writeTarget(t, sampleService)

	first, _ := newTestPatcher(path)
	_, err := first.Patch(context.Background(), testSettings)
	require.NoError(t, err)
	afterFirst := readFile(t, path)

	second, out := newTestPatcher(path)
	result, err := second.Patch(context.Background(), testSettings)
	require.NoError(t, err)

	assert.False(t, result.Changed())
	assert.Equal(t, afterFirst, readFile(t, path))
	assert.Contains(t, out.String(), "⚠️  Infura URL already updated or not found")
	assert.Contains(t, out.String(), "⚠️  Contract address already updated or not found")
	assert.NotContains(t, out.String(), "Updated Infura URL")
	assert.NotContains(t, out.String(), "Updated contract address")
}

func TestPatcher_MissingTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib", "services", "blockchain_service.dart")
	p, _ := newTestPatcher(path)

	result, err := p.Patch(context.Background(), testSettings)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
	assert.NoFileExists(t, path)
}

func TestPatcher_DirectoryTarget(t *testing.T) {
	p, _ := newTestPatcher(t.TempDir())

	_, err := p.Patch(context.Background(), testSettings)
	assert.ErrorIs(t, err, domain.ErrReadTarget)
}

func TestPatcher_InvalidUTF8(t *testing.T) {
	content := "https://sepolia.infura.io/v3/YOUR_INFURA_PROJECT_ID \xff\xfe"
	path := writeTarget(t, content)
	p, _ := newTestPatcher(path)

	_, err := p.Patch(context.Background(), testSettings)

	assert.ErrorIs(t, err, domain.ErrReadTarget)
	assert.ErrorIs(t, err, errInvalidUTF8)
	assert.Equal(t, content, readFile(t, path))
}

func TestPatcher_CancelledContext(t *testing.T) {
	path := writeTarget(t, sampleService)
	p, _ := newTestPatcher(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Patch(ctx, testSettings)
	assert.ErrorIs(t, err, domain.ErrInterrupted)
	assert.Equal(t, sampleService, readFile(t, path))
}

func TestPatcher_PreservesModeAndCreatesNoFiles(t *testing.T) {
	path := writeTarget(t, sampleService)
	require.NoError(t, os.Chmod(path, 0o600))
	p, _ := newTestPatcher(path)

	_, err := p.Patch(context.Background(), testSettings)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blockchain_service.dart", entries[0].Name())
}

func TestPatcher_FollowsSymlink(t *testing.T) {
	target := writeTarget(t, sampleService)
	link := filepath.Join(t.TempDir(), "service_link.dart")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	p, _ := newTestPatcher(link)

	_, err := p.Patch(context.Background(), testSettings)
	require.NoError(t, err)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link should survive the rewrite")
	assert.Contains(t, readFile(t, target), "https://sepolia.infura.io/v3/abc123")
}

func TestPatcher_WriteFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	path := writeTarget(t, sampleService)
	require.NoError(t, os.Chmod(path, 0o444))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

	p, out := newTestPatcher(path)
	_, err := p.Patch(context.Background(), testSettings)

	assert.ErrorIs(t, err, domain.ErrWriteTarget)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, sampleService, readFile(t, path))
	assert.NotContains(t, out.String(), "updated successfully")
}

func TestPatcher_WritableFileInReadOnlyDirectory(t *testing.T) {
	path := writeTarget(t, sampleService)
	dir := filepath.Dir(path)
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	p, _ := newTestPatcher(path)
	_, err := p.Patch(context.Background(), testSettings)

	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "https://sepolia.infura.io/v3/abc123")
}

func TestPatcher_RewritesInPlace(t *testing.T) {
	path := writeTarget(t, sampleService)
	alias := filepath.Join(filepath.Dir(path), "alias.dart")
	if err := os.Link(path, alias); err != nil {
		t.Skipf("hard links unsupported: %v", err)
	}
	before, err := os.Stat(path)
	require.NoError(t, err)

	p, _ := newTestPatcher(path)
	_, err = p.Patch(context.Background(), testSettings)
	require.NoError(t, err)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "target must keep its inode")
	assert.Equal(t, readFile(t, path), readFile(t, alias))
	assert.NotContains(t, readFile(t, alias), domain.ZeroAddress)
}
