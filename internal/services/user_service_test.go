package services

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/testutil"
)

func newUserService(t *testing.T) (*UserService, context.Context) {
	t.Helper()
	db := testutil.OpenInMemoryDB(t)
	return NewUserService(db, auth.NewPasswordHasher(4)), context.Background()
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc, ctx := newUserService(t)

	u, err := svc.CreateUser(ctx, "a@x.com", "Aa1!aaaa")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "Aa1!aaaa" || u.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", u.PasswordHash)
	}

	if _, err := svc.CreateUser(ctx, "a@x.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	got, err := svc.AuthenticateUser(ctx, "a@x.com", "Aa1!aaaa")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated id = %d, want %d", got.ID, u.ID)
	}

	if _, err := svc.AuthenticateUser(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.AuthenticateUser(ctx, "nobody@x.com", "Aa1!aaaa"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	svc, ctx := newUserService(t)
	u, _ := svc.CreateUser(ctx, "a@x.com", "first")
	other, _ := svc.CreateUser(ctx, "b@x.com", "second")

	if _, err := svc.UpdateUser(ctx, other.ID, u.ID, "evil@x.com", ""); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	// Email only: the password keeps working.
	updated, err := svc.UpdateUser(ctx, u.ID, u.ID, "new@x.com", "")
	if err != nil {
		t.Fatalf("update email: %v", err)
	}
	if updated.Email != "new@x.com" {
		t.Fatalf("email = %q, want new@x.com", updated.Email)
	}
	if _, err := svc.AuthenticateUser(ctx, "new@x.com", "first"); err != nil {
		t.Fatalf("old password should still work: %v", err)
	}

	// Password only.
	if _, err := svc.UpdateUser(ctx, u.ID, u.ID, "", "changed"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := svc.AuthenticateUser(ctx, "new@x.com", "first"); err == nil {
		t.Fatal("old password should be rejected after change")
	}
	if _, err := svc.AuthenticateUser(ctx, "new@x.com", "changed"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUserService_UpdateUserRejectsTakenEmail(t *testing.T) {
	svc, ctx := newUserService(t)
	a, _ := svc.CreateUser(ctx, "a@x.com", "first")
	b, _ := svc.CreateUser(ctx, "b@x.com", "second")

	if _, err := svc.UpdateUser(ctx, b.ID, b.ID, "a@x.com", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	// Re-submitting the current email is not a collision.
	if _, err := svc.UpdateUser(ctx, b.ID, b.ID, "b@x.com", ""); err != nil {
		t.Fatalf("update to own email: %v", err)
	}

	if got, err := svc.AuthenticateUser(ctx, "a@x.com", "first"); err != nil || got.ID != a.ID {
		t.Fatalf("a@x.com should still belong to %d: %+v err=%v", a.ID, got, err)
	}
	if got, err := svc.AuthenticateUser(ctx, "b@x.com", "second"); err != nil || got.ID != b.ID {
		t.Fatalf("b@x.com should still belong to %d: %+v err=%v", b.ID, got, err)
	}
}

func TestUserService_DeleteUserCascades(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	ctx := context.Background()
	users := NewUserService(db, auth.NewPasswordHasher(4))
	workouts := NewWorkoutService(db, nil)

	u, _ := users.CreateUser(ctx, "a@x.com", "pw")
	other, _ := users.CreateUser(ctx, "b@x.com", "pw")
	testutil.InsertWorkout(t, db, u.ID, "2024-01-01", 30)

	if err := users.DeleteUser(ctx, other.ID, u.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := users.DeleteUser(ctx, u.ID, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := users.GetUserByID(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	list, err := workouts.GetWorkoutsByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list workouts: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected workouts to cascade, got %d", len(list))
	}
	if err := users.DeleteUser(ctx, u.ID, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}

func TestUserService_GetAllUsers(t *testing.T) {
	svc, ctx := newUserService(t)
	list, err := svc.GetAllUsers(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("empty list: %v len=%d", err, len(list))
	}
	svc.CreateUser(ctx, "a@x.com", "pw")
	svc.CreateUser(ctx, "b@x.com", "pw")
	list, err = svc.GetAllUsers(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
}
