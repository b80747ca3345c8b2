package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func plainVerifier(hash, password string) error {
	if hash != password {
		return ErrInvalidCredentials
	}
	return nil
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("issues sessions for valid credentials", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
		creds := &credentialStoreStub{
			credentials: UserCredentials{
				User:         User{ID: "user-1", Name: "Asha Rao", Email: "user@example.com", Role: RoleJobSeeker},
				PasswordHash: "secret",
			},
		}

		repo := newSessionRepositoryStub()
		tokenSeq := []string{"session-id", "session-token"}
		svc := NewAuthService(creds, repo, plainVerifier, func() string {
			if len(tokenSeq) == 0 {
				return "fallback"
			}
			token := tokenSeq[0]
			tokenSeq = tokenSeq[1:]
			return token
		}, func() time.Time { return now }, time.Hour)

		result, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: " User@Example.com ", Password: "secret", Fingerprint: " device "})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}

		if result.Session.Token != "session-token" || result.Session.ID != "session-id" {
			t.Fatalf("unexpected session issued: %#v", result.Session)
		}
		if result.Session.Fingerprint != "device" {
			t.Fatalf("expected fingerprint to be trimmed, got %q", result.Session.Fingerprint)
		}
		if !result.Session.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Fatalf("expected expiry one TTL ahead, got %v", result.Session.ExpiresAt)
		}
		if creds.lastEmail != "user@example.com" {
			t.Fatalf("expected normalised email lookup, got %q", creds.lastEmail)
		}
		if len(repo.deleteCalls) != 1 || !repo.deleteCalls[0].Equal(now) {
			t.Fatalf("expected DeleteExpiredSessions to be called with now, got %#v", repo.deleteCalls)
		}
	})

	t.Run("rejects invalid credentials with sentinel error", func(t *testing.T) {
		t.Parallel()

		creds := &credentialStoreStub{
			credentials: UserCredentials{User: User{ID: "user"}, PasswordHash: "expected"},
		}
		svc := NewAuthService(creds, newSessionRepositoryStub(), plainVerifier, nil, time.Now, time.Hour)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "user@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("treats unknown users as invalid credentials", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(&credentialStoreStub{}, newSessionRepositoryStub(), plainVerifier, nil, time.Now, time.Hour)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "ghost@example.com", Password: "secret"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects empty input without lookups", func(t *testing.T) {
		t.Parallel()

		creds := &credentialStoreStub{}
		svc := NewAuthService(creds, newSessionRepositoryStub(), plainVerifier, nil, time.Now, time.Hour)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "", Password: "secret"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if creds.lastEmail != "" {
			t.Fatalf("expected no credential lookup, got %q", creds.lastEmail)
		}
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("boom")
		creds := &credentialStoreStub{
			credentials: UserCredentials{User: User{ID: "user"}, PasswordHash: "secret"},
		}
		repo := newSessionRepositoryStub()
		repo.createErr = expected

		svc := NewAuthService(creds, repo, plainVerifier, func() string { return "token" }, time.Now, time.Hour)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "user@example.com", Password: "secret"})
		if !errors.Is(err, expected) {
			t.Fatalf("expected error %v, got %v", expected, err)
		}
	})

	t.Run("verifies argon2id hashes by default", func(t *testing.T) {
		t.Parallel()

		hash, err := cheapArgon2idParams.Hash("correct horse")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}
		creds := &credentialStoreStub{credentials: UserCredentials{User: User{ID: "user"}, PasswordHash: hash}}
		svc := NewAuthService(creds, newSessionRepositoryStub(), nil, func() string { return "token" }, time.Now, time.Hour)

		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "user@example.com", Password: "correct horse"}); err != nil {
			t.Fatalf("expected argon2id hash to verify, got %v", err)
		}
		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "user@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
		}
	})
}

func TestAuthService_RevokeSession(t *testing.T) {
	t.Parallel()

	t.Run("marks the session revoked", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
		repo := newSessionRepositoryStub()
		repo.seed(Session{ID: "session-1", UserID: "user-1", Token: "token-1", ExpiresAt: now.Add(time.Hour)})

		svc := NewAuthService(nil, repo, nil, nil, func() time.Time { return now }, time.Hour)
		if err := svc.RevokeSession(context.Background(), " token-1 "); err != nil {
			t.Fatalf("RevokeSession failed: %v", err)
		}

		session := repo.sessionsByID["session-1"]
		if session.RevokedAt == nil || !session.RevokedAt.Equal(now) {
			t.Fatalf("expected session to be revoked at %v, got %#v", now, session.RevokedAt)
		}
	})

	t.Run("maps unknown tokens to invalid credentials", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(nil, newSessionRepositoryStub(), nil, nil, time.Now, time.Hour)
		if err := svc.RevokeSession(context.Background(), "missing"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects empty tokens", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(nil, newSessionRepositoryStub(), nil, nil, time.Now, time.Hour)
		if err := svc.RevokeSession(context.Background(), "  "); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	user := User{ID: "user-1", Name: "Ravi Kumar", Email: "ravi@example.com", Role: RoleInterviewer}

	t.Run("returns the principal of an active session", func(t *testing.T) {
		t.Parallel()

		creds := &credentialStoreStub{credentials: UserCredentials{User: user}}
		repo := newSessionRepositoryStub()
		repo.seed(Session{ID: "session-1", UserID: "user-1", Token: "token-1", ExpiresAt: now.Add(time.Hour)})

		svc := NewAuthService(creds, repo, nil, nil, func() time.Time { return now }, time.Hour)
		principal, err := svc.ValidateSession(context.Background(), "token-1")
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		want := Principal{UserID: "user-1", Name: "Ravi Kumar", Email: "ravi@example.com", Role: RoleInterviewer}
		if principal != want {
			t.Fatalf("expected %#v, got %#v", want, principal)
		}
	})

	cases := []struct {
		name    string
		token   string
		session *Session
		want    error
	}{
		{name: "empty token", token: "", want: ErrInvalidCredentials},
		{name: "unknown token", token: "missing", want: ErrUnauthorized},
		{
			name:    "expired session",
			token:   "token-1",
			session: &Session{ID: "session-1", UserID: "user-1", Token: "token-1", ExpiresAt: now},
			want:    ErrSessionExpired,
		},
		{
			name:    "revoked session",
			token:   "token-1",
			session: &Session{ID: "session-1", UserID: "user-1", Token: "token-1", ExpiresAt: now.Add(time.Hour), RevokedAt: &now},
			want:    ErrSessionRevoked,
		},
		{
			name:    "deleted user",
			token:   "token-1",
			session: &Session{ID: "session-1", UserID: "gone", Token: "token-1", ExpiresAt: now.Add(time.Hour)},
			want:    ErrUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			creds := &credentialStoreStub{credentials: UserCredentials{User: user}}
			repo := newSessionRepositoryStub()
			if tc.session != nil {
				repo.seed(*tc.session)
			}
			svc := NewAuthService(creds, repo, nil, nil, func() time.Time { return now }, time.Hour)

			if _, err := svc.ValidateSession(context.Background(), tc.token); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("passes storage failures through", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("disk full")
		repo := newSessionRepositoryStub()
		repo.getErr = boom
		svc := NewAuthService(&credentialStoreStub{}, repo, nil, nil, func() time.Time { return now }, time.Hour)

		_, err := svc.ValidateSession(context.Background(), "token-1")
		if !errors.Is(err, boom) {
			t.Fatalf("expected storage error, got %v", err)
		}
		if errors.Is(err, ErrUnauthorized) {
			t.Fatalf("storage failure must not read as unauthorized: %v", err)
		}
	})
}

func TestSession_Active(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	earlier := now.Add(-time.Minute)

	cases := []struct {
		name    string
		session Session
		want    error
	}{
		{name: "unexpired", session: Session{ExpiresAt: now.Add(time.Second)}},
		{name: "no expiry", session: Session{}},
		{name: "expires exactly now", session: Session{ExpiresAt: now}, want: ErrSessionExpired},
		{name: "zero revocation time is ignored", session: Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &time.Time{}}},
		{name: "revocation wins over expiry", session: Session{ExpiresAt: earlier, RevokedAt: &earlier}, want: ErrSessionRevoked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.session.Active(now); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

// credentialStoreStub implements CredentialStore for tests.
type credentialStoreStub struct {
	credentials UserCredentials
	err         error
	lastEmail   string
}

func (c *credentialStoreStub) GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error) {
	c.lastEmail = email
	if c.err != nil {
		return UserCredentials{}, c.err
	}
	if c.credentials.User.ID == "" {
		return UserCredentials{}, ErrNotFound
	}
	return c.credentials, nil
}

func (c *credentialStoreStub) GetUser(ctx context.Context, id string) (User, error) {
	if c.err != nil {
		return User{}, c.err
	}
	if c.credentials.User.ID == id {
		return c.credentials.User, nil
	}
	return User{}, ErrNotFound
}

// sessionRepositoryStub provides an in-memory implementation of SessionRepository for tests.
type sessionRepositoryStub struct {
	sessionsByID map[string]Session
	tokenToID    map[string]string

	createErr error
	getErr    error
	revokeErr error
	deleteErr error

	deleteCalls []time.Time
}

func newSessionRepositoryStub() *sessionRepositoryStub {
	return &sessionRepositoryStub{
		sessionsByID: make(map[string]Session),
		tokenToID:    make(map[string]string),
	}
}

func (s *sessionRepositoryStub) seed(session Session) {
	s.sessionsByID[session.ID] = cloneSession(session)
	s.tokenToID[session.Token] = session.ID
}

func (s *sessionRepositoryStub) CreateSession(ctx context.Context, session Session) (Session, error) {
	if s.createErr != nil {
		return Session{}, s.createErr
	}
	s.seed(session)
	return cloneSession(session), nil
}

func (s *sessionRepositoryStub) GetSession(ctx context.Context, token string) (Session, error) {
	if s.getErr != nil {
		return Session{}, s.getErr
	}
	id, ok := s.tokenToID[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	return cloneSession(s.sessionsByID[id]), nil
}

func (s *sessionRepositoryStub) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error) {
	if s.revokeErr != nil {
		return Session{}, s.revokeErr
	}
	id, ok := s.tokenToID[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	session := s.sessionsByID[id]
	revoked := revokedAt.UTC()
	session.RevokedAt = &revoked
	session.UpdatedAt = revoked
	s.sessionsByID[id] = session
	return cloneSession(session), nil
}

func (s *sessionRepositoryStub) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	cutoff := reference.UTC()
	s.deleteCalls = append(s.deleteCalls, cutoff)
	for id, session := range s.sessionsByID {
		if session.ExpiresAt.IsZero() {
			continue
		}
		if !session.ExpiresAt.After(cutoff) {
			delete(s.sessionsByID, id)
			delete(s.tokenToID, session.Token)
		}
	}
	return nil
}

func cloneSession(session Session) Session {
	clone := session
	if session.RevokedAt != nil {
		revoked := session.RevokedAt.UTC()
		clone.RevokedAt = &revoked
	}
	return clone
}
