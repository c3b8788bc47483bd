package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/util"
	"hipaa_training_backend/pkg/crypto"
)

// EvidenceService stores checklist evidence files (policies, BAAs, training
// records) encrypted at rest under the evidence directory, one subdirectory
// per user.
type EvidenceService struct {
	Audit  *AuditService
	Cipher *crypto.Cipher
	Cfg    *config.Config
}

func NewEvidenceService(audit *AuditService, cipher *crypto.Cipher, cfg *config.Config) *EvidenceService {
	return &EvidenceService{Audit: audit, Cipher: cipher, Cfg: cfg}
}

type EvidenceFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Uploaded time.Time `json:"uploaded"`
}

// Store validates, encrypts and writes one evidence upload. The caller has
// already enforced the size limit at the HTTP layer.
func (s *EvidenceService) Store(userID uint, filename string, reader io.Reader, ipAddress string) (*EvidenceFile, error) {
	if !util.AllowedEvidenceExtension(filename) {
		return nil, fmt.Errorf("evidence: file type not allowed, use one of %v", util.AllowedEvidenceExtensions)
	}

	data, err := io.ReadAll(io.LimitReader(reader, s.Cfg.Evidence.MaxSizeBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.Cfg.Evidence.MaxSizeBytes {
		return nil, fmt.Errorf("evidence: file exceeds %d byte limit", s.Cfg.Evidence.MaxSizeBytes)
	}

	if _, err := util.ValidateMimeType(bytes.NewReader(data), []string{util.MimeImage, util.MimePDF}); err != nil {
		return nil, err
	}

	encrypted, err := s.Cipher.Encrypt(data)
	if err != nil {
		return nil, err
	}

	dir := s.userDir(userID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	// Stored name keeps only the sanitized base plus a timestamp, never the
	// client-supplied path.
	name := fmt.Sprintf("%d_%s%s",
		time.Now().Unix(),
		util.SanitizeInput(trimExt(filepath.Base(filename)), 50),
		filepath.Ext(filename))
	path := filepath.Join(dir, name+".enc")
	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return nil, err
	}

	s.Audit.Record(userID, model.ActionEvidenceUploaded,
		fmt.Sprintf("file=%s size=%d", name, len(data)), ipAddress)
	return &EvidenceFile{Name: name, Size: int64(len(data)), Uploaded: time.Now()}, nil
}

// List enumerates the user's stored evidence files.
func (s *EvidenceService) List(userID uint) ([]EvidenceFile, error) {
	entries, err := os.ReadDir(s.userDir(userID))
	if os.IsNotExist(err) {
		return []EvidenceFile{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := make([]EvidenceFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		// Report the plaintext size, matching what Store returned.
		size := info.Size() - int64(s.Cipher.Overhead())
		if size < 0 {
			size = 0
		}
		files = append(files, EvidenceFile{
			Name:     trimExt(e.Name()),
			Size:     size,
			Uploaded: info.ModTime(),
		})
	}
	return files, nil
}

// Fetch decrypts one stored evidence file for its owner.
func (s *EvidenceService) Fetch(userID uint, name string) ([]byte, error) {
	// Reject path traversal in the requested name.
	if filepath.Base(name) != name {
		return nil, os.ErrNotExist
	}
	encrypted, err := os.ReadFile(filepath.Join(s.userDir(userID), name+".enc"))
	if err != nil {
		return nil, err
	}
	return s.Cipher.Decrypt(encrypted)
}

func (s *EvidenceService) userDir(userID uint) string {
	return filepath.Join(s.Cfg.Evidence.Dir, fmt.Sprintf("user_%d", userID))
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
