package token

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("k"), time.Hour)
	id := uuid.Must(uuid.NewV4())

	raw, exp, err := iss.Issue(id)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := iss.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("k"), -time.Minute)
	raw, _, err := iss.Issue(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = iss.Verify(raw)
	require.Error(t, err)
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	raw, _, err := NewIssuer([]byte("k1"), time.Hour).Issue(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = NewIssuer([]byte("k2"), time.Hour).Verify(raw)
	require.Error(t, err)
}

func TestVerify_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg=none is the classic downgrade; the key func must refuse it.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.Must(uuid.NewV4()).String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewIssuer([]byte("k"), time.Hour).Verify(raw)
	require.Error(t, err)
}

func TestVerify_BadSubject(t *testing.T) {
	t.Parallel()

	key := []byte("k")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := tok.SignedString(key)
	require.NoError(t, err)

	_, err = NewIssuer(key, time.Hour).Verify(raw)
	require.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer([]byte("k"), time.Hour).Verify("definitely.not.a.jwt")
	require.Error(t, err)
}
