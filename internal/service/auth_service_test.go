package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"microblog/internal/repository"
	"microblog/internal/repository/sqlite"
)

func newRepos(t *testing.T) (repository.UserRepository, repository.PostRepository) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := sqlite.NewUserRepository(db)
	if err := users.Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	posts := sqlite.NewPostRepository(db)
	if err := posts.Init(ctx); err != nil {
		t.Fatalf("init posts: %v", err)
	}
	return users, posts
}

func TestRegisterAndAuthenticate(t *testing.T) {
	users, _ := newRepos(t)
	auth := NewAuthService(users)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID <= 0 {
		t.Fatalf("expected assigned id, got %d", user.ID)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash must not leave the service")
	}

	got, err := auth.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID || got.Username != "alice" {
		t.Fatalf("authenticated wrong user: %+v", got)
	}
}

func TestRegisterValidatesFieldsInOrder(t *testing.T) {
	users, _ := newRepos(t)
	auth := NewAuthService(users)
	ctx := context.Background()

	cases := []struct {
		username, password, field string
	}{
		{"", "", "username"},
		{"", "x", "username"},
		{"bob", "", "password"},
	}
	for _, tc := range cases {
		_, err := auth.Register(ctx, tc.username, tc.password)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("register(%q, %q): expected validation error, got %v", tc.username, tc.password, err)
		}
		if ve.Field != tc.field {
			t.Fatalf("register(%q, %q): field %q, want %q", tc.username, tc.password, ve.Field, tc.field)
		}
	}

	// nothing was persisted for the rejected attempts
	if _, err := auth.Authenticate(ctx, "bob", "x"); !errors.Is(err, ErrUnknownUsername) {
		t.Fatalf("expected no user row for rejected registration, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users, _ := newRepos(t)
	auth := NewAuthService(users)
	ctx := context.Background()

	first, err := auth.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Register(ctx, "alice", "other"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}

	// the original row is untouched
	got, err := auth.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("authenticate after duplicate attempt: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("user id changed after duplicate attempt")
	}
	if _, err := auth.Authenticate(ctx, "alice", "other"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("duplicate registration must not overwrite the password")
	}
}

func TestAuthenticateUnknownUsername(t *testing.T) {
	users, _ := newRepos(t)
	auth := NewAuthService(users)

	if _, err := auth.Authenticate(context.Background(), "ghost", "whatever"); !errors.Is(err, ErrUnknownUsername) {
		t.Fatalf("expected ErrUnknownUsername, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	users, _ := newRepos(t)
	auth := NewAuthService(users)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := auth.Authenticate(ctx, "alice", "nope"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestGetByIDStaleIdentity(t *testing.T) {
	users, _ := newRepos(t)
	auth := NewAuthService(users)

	if _, err := auth.GetByID(context.Background(), 12345); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
