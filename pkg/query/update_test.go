package query_test

import (
	"testing"

	"github.com/JaimeStill/paginalab/pkg/query"
)

func TestUpdate_Build(t *testing.T) {
	email := "new@b.test"
	var skipped *string

	u := query.NewUpdate(users())
	query.SetIf(u, "Email", &email)
	query.SetIf(u, "ID", skipped)
	u.SetExpr("CreatedAt", "GREATEST(created_at, $%d)", "now")

	if u.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", u.Len())
	}

	sql, args := u.Build("ID", 9)

	want := "UPDATE public.users SET email = $1, created_at = GREATEST(created_at, $2) WHERE id = $3 RETURNING id, email, created_at"
	if sql != want {
		t.Errorf("sql = %q\nwant %q", sql, want)
	}
	if len(args) != 3 || args[0] != "new@b.test" || args[1] != "now" || args[2] != 9 {
		t.Errorf("args = %v", args)
	}
}
