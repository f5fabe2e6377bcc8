package certs

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, cert tls.Certificate) *x509.Certificate {
	t.Helper()
	require.Len(t, cert.Certificate, 1)
	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	return parsed
}

func TestFileManager_GetOrCreateCertificate(t *testing.T) {
	tests := []struct {
		setup   func(t *testing.T, dir string)
		check   func(t *testing.T, dir string, cert *x509.Certificate)
		name    string
		hosts   []string
		wantErr bool
	}{
		{
			name: "creates a certificate when none exists",
			check: func(t *testing.T, _ string, cert *x509.Certificate) {
				t.Helper()
				assert.Equal(t, "Cashier Desk", cert.Subject.Organization[0])
				assert.NoError(t, cert.VerifyHostname("localhost"))
				assert.NoError(t, cert.VerifyHostname("127.0.0.1"))
				assert.True(t, cert.NotAfter.After(time.Now().Add(Validity-time.Hour)))
			},
		},
		{
			name:  "covers extra hosts",
			hosts: []string{"desk-3.local", "10.0.0.8"},
			check: func(t *testing.T, _ string, cert *x509.Certificate) {
				t.Helper()
				assert.NoError(t, cert.VerifyHostname("desk-3.local"))
				assert.NoError(t, cert.VerifyHostname("10.0.0.8"))
			},
		},
		{
			name: "replaces corrupt files",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				require.NoError(t, os.MkdirAll(dir, 0o700))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "cashier.crt"), []byte("junk"), 0o600))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "cashier.key"), []byte("junk"), 0o600))
			},
			check: func(t *testing.T, dir string, _ *x509.Certificate) {
				t.Helper()
				data, err := os.ReadFile(filepath.Join(dir, "cashier.crt"))
				require.NoError(t, err)
				assert.Contains(t, string(data), "BEGIN CERTIFICATE")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "certs")
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			cert, err := NewFileManager(dir, tt.hosts...).GetOrCreateCertificate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, dir, leaf(t, cert))
		})
	}
}

func TestFileManager_ReusesValidCertificate(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileManager(dir).GetOrCreateCertificate()
	require.NoError(t, err)
	second, err := NewFileManager(dir).GetOrCreateCertificate()
	require.NoError(t, err)

	assert.Equal(t, leaf(t, first).SerialNumber, leaf(t, second).SerialNumber)
}

func TestFileManager_RegeneratesExpired(t *testing.T) {
	dir := t.TempDir()
	m := NewFileManager(dir)
	m.now = func() time.Time { return time.Now().Add(-2 * Validity) }

	old, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	fresh, err := NewFileManager(dir).GetOrCreateCertificate()
	require.NoError(t, err)

	assert.NotEqual(t, leaf(t, old).SerialNumber, leaf(t, fresh).SerialNumber)
	assert.True(t, leaf(t, fresh).NotAfter.After(time.Now()))
}

func TestFileManager_RegeneratesForNewHost(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileManager(dir).GetOrCreateCertificate()
	require.NoError(t, err)

	cert, err := NewFileManager(dir, "desk-7.local").GetOrCreateCertificate()
	require.NoError(t, err)
	assert.NoError(t, leaf(t, cert).VerifyHostname("desk-7.local"))
}

func TestFileManager_TLSConfig(t *testing.T) {
	cfg, err := NewFileManager(t.TempDir()).TLSConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
}

func TestFileManager_CertificateExists(t *testing.T) {
	dir := t.TempDir()
	m := NewFileManager(dir)

	exists, err := m.CertificateExists()
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = m.GetOrCreateCertificate()
	require.NoError(t, err)

	exists, err = m.CertificateExists()
	require.NoError(t, err)
	assert.True(t, exists)
}
