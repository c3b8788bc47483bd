package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF")

func TestStoreEvidenceEncryptedAtRest(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")
	svc := NewEvidenceService(env.audit, env.cipher, env.cfg)

	stored, err := svc.Store(user.ID, "signed_baa.pdf", bytes.NewReader(fakePDF), "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored.Name, ".pdf"))
	assert.EqualValues(t, len(fakePDF), stored.Size)

	// The on-disk file is ciphertext, not the original bytes.
	userDir := filepath.Join(env.cfg.Evidence.Dir, fmt.Sprintf("user_%d", user.ID))
	entries, err := os.ReadDir(userDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	raw, err := os.ReadFile(filepath.Join(userDir, entries[0].Name()))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "%PDF")

	// Fetch round-trips through decryption.
	plain, err := svc.Fetch(user.ID, stored.Name)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, plain)
}

func TestStoreEvidenceRejectsBadUploads(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")
	svc := NewEvidenceService(env.audit, env.cipher, env.cfg)

	// Disallowed extension.
	_, err := svc.Store(user.ID, "macro.docm", bytes.NewReader(fakePDF), "127.0.0.1")
	assert.Error(t, err)

	// Extension says PDF, content does not.
	_, err = svc.Store(user.ID, "fake.pdf", strings.NewReader("plain text pretending"), "127.0.0.1")
	assert.Error(t, err)

	// Over the size limit.
	env.cfg.Evidence.MaxSizeBytes = 8
	_, err = svc.Store(user.ID, "big.pdf", bytes.NewReader(fakePDF), "127.0.0.1")
	assert.Error(t, err)
}

func TestFetchEvidenceRejectsTraversal(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")
	svc := NewEvidenceService(env.audit, env.cipher, env.cfg)

	_, err := svc.Fetch(user.ID, "../user_2/secret.pdf")
	assert.Error(t, err)
}

func TestListEvidence(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")
	svc := NewEvidenceService(env.audit, env.cipher, env.cfg)

	files, err := svc.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = svc.Store(user.ID, "policy.pdf", bytes.NewReader(fakePDF), "127.0.0.1")
	require.NoError(t, err)

	files, err = svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Name, ".pdf"))
	// The listed size is the plaintext size, matching what Store reported,
	// not the larger on-disk ciphertext.
	assert.EqualValues(t, len(fakePDF), files[0].Size)
}
