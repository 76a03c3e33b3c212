package otp

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	codes map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{codes: make(map[string]string)}
}

func (s *memoryStore) Set(_ context.Context, email, code string, _ time.Duration) error {
	s.codes[email] = code
	return nil
}

func (s *memoryStore) Get(_ context.Context, email string) (string, error) {
	code, ok := s.codes[email]
	if !ok {
		return "", ErrCodeNotFound
	}
	return code, nil
}

func (s *memoryStore) Delete(_ context.Context, email string) error {
	delete(s.codes, email)
	return nil
}

type recordingMailer struct {
	to   string
	code string
}

func (m *recordingMailer) SendOTP(toEmail, code string) error {
	m.to = toEmail
	m.code = code
	return nil
}

func TestSendStoresAndMailsSixDigitCode(t *testing.T) {
	store := newMemoryStore()
	mailer := &recordingMailer{}
	svc := NewService(store, mailer, 10*time.Minute)

	err := svc.Send(context.Background(), "jo@example.com")
	require.NoError(t, err)

	assert.Equal(t, "jo@example.com", mailer.to)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), mailer.code)
	assert.Equal(t, mailer.code, store.codes["jo@example.com"])
}

func TestVerifyConsumesCode(t *testing.T) {
	store := newMemoryStore()
	mailer := &recordingMailer{}
	svc := NewService(store, mailer, 10*time.Minute)

	require.NoError(t, svc.Send(context.Background(), "jo@example.com"))

	ok, err := svc.Verify(context.Background(), "jo@example.com", mailer.code)
	require.NoError(t, err)
	assert.True(t, ok)

	// The code is one-shot
	ok, err = svc.Verify(context.Background(), "jo@example.com", mailer.code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWrongCode(t *testing.T) {
	store := newMemoryStore()
	mailer := &recordingMailer{}
	svc := NewService(store, mailer, 10*time.Minute)

	require.NoError(t, svc.Send(context.Background(), "jo@example.com"))

	ok, err := svc.Verify(context.Background(), "jo@example.com", "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	// A wrong guess does not consume the stored code
	ok, err = svc.Verify(context.Background(), "jo@example.com", mailer.code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyWithoutSend(t *testing.T) {
	svc := NewService(newMemoryStore(), &recordingMailer{}, 10*time.Minute)

	ok, err := svc.Verify(context.Background(), "jo@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}
