package service

import (
	"testing"
	"time"

	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificateExpiryWindow(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	cert, err := env.cert.Issue(user, 86.7, "127.0.0.1")
	require.NoError(t, err)

	assert.Len(t, cert.CertificateID, 36)
	assert.InDelta(t, 86.7, cert.Score, 0.01)
	wantExpiry := cert.IssueDate.AddDate(0, 0, env.cfg.Training.CertValidityDays)
	assert.Equal(t, wantExpiry, cert.ExpiryDate)
	assert.True(t, cert.Active(time.Now()))
}

func TestVerifyCertificateStatuses(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	cert, err := env.cert.Issue(user, 90, "127.0.0.1")
	require.NoError(t, err)

	result, err := env.cert.Verify(cert.CertificateID)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, user.FullName, result.HolderName)

	// Revoked.
	require.NoError(t, env.cert.Revoke(cert.CertificateID, user.ID, "127.0.0.1"))
	result, err = env.cert.Verify(cert.CertificateID)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "revoked", result.Status)

	// Expired.
	expired, err := env.cert.Issue(user, 90, "127.0.0.1")
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&model.Certificate{}).
		Where("certificate_id = ?", expired.CertificateID).
		Update("expiry_date", time.Now().AddDate(0, 0, -1)).Error)
	result, err = env.cert.Verify(expired.CertificateID)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "expired", result.Status)

	// Unknown.
	_, err = env.cert.Verify("not-a-real-id")
	assert.ErrorIs(t, err, util.ErrCertNotFound)
}

func TestRevokeUnknownCertificate(t *testing.T) {
	env := newTestEnv(t)
	err := env.cert.Revoke("missing", 1, "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrCertNotFound)
}

func TestRenderTextCertificate(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")
	user.Facility = "Main Street Pharmacy"

	cert, err := env.cert.Issue(user, 86.7, "127.0.0.1")
	require.NoError(t, err)

	text := env.cert.RenderText(cert, user)
	assert.Contains(t, text, "CERTIFICATE OF COMPLETION")
	assert.Contains(t, text, user.FullName)
	assert.Contains(t, text, "Main Street Pharmacy")
	assert.Contains(t, text, "86.7%")
	assert.Contains(t, text, cert.CertificateID)
	assert.Contains(t, text, cert.ExpiryDate.Format("January 2, 2006"))
}
