package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("teams").
		Where(Eq("event_public_id", "ev-1"), IsNull("deleted_at")).
		OrderBy("public_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM teams WHERE event_public_id = $1 AND deleted_at IS NULL ORDER BY public_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "ev-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestCountBuilder(t *testing.T) {
	query, args, err := Count("team_members").
		Where(Eq("team_public_id", "team-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}

	wantQuery := "SELECT COUNT(*) FROM team_members WHERE team_public_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "team-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInAndNotIn(t *testing.T) {
	query, args, err := Select("public_id").
		From("teams").
		Where(
			In("status", []any{"pending", "accepted"}),
			NotIn("public_id", []any{"team-9"}),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build in query: %v", err)
	}

	wantQuery := "SELECT public_id FROM teams WHERE status IN ($1, $2) AND public_id NOT IN ($3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}

	// Empty sets degrade to constant conditions rather than invalid SQL.
	emptyIn, _, err := Select("1").From("t").Where(In("c", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build empty in query: %v", err)
	}
	if emptyIn != "SELECT 1 FROM t WHERE 1=0" {
		t.Fatalf("unexpected empty IN query: %s", emptyIn)
	}
	emptyNotIn, _, err := Select("1").From("t").Where(NotIn("c", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build empty not in query: %v", err)
	}
	if emptyNotIn != "SELECT 1 FROM t WHERE 1=1" {
		t.Fatalf("unexpected empty NOT IN query: %s", emptyNotIn)
	}
}

func TestInsertBuilderWithConflictSuffix(t *testing.T) {
	query, args, err := InsertInto("event_registrations").
		Columns("public_id", "event_public_id").
		Values("reg-1", "ev-1").
		Suffix("ON CONFLICT (event_public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO event_registrations (public_id, event_public_id) VALUES ($1, $2) ON CONFLICT (event_public_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderWithExprArgs(t *testing.T) {
	query, args, err := Update("tournament_points").
		SetExpr("points", "points + ?", 3).
		SetExpr("updated_at", "NOW()").
		Where(Eq("team_public_id", "team-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE tournament_points SET points = points + $1, updated_at = NOW() WHERE team_public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 3 || args[1] != "team-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("team_invitations").
		Where(Eq("public_id", "inv-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM team_invitations WHERE public_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("team_invitations").ToSQL(); err == nil {
		t.Fatal("expected error for delete without conditions")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		Size     int    `db:"team_size"`
	}

	query, args, err := InsertModel("teams", row{PublicID: "team-1", Name: "Null Pointers", Size: 3}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO teams (public_id, name, team_size) VALUES ($1, $2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "team-1" || args[2] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
