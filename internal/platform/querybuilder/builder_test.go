package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "full_name").
		From("profiles").
		Where(Eq("role", "dt"), IsNull("deleted_at")).
		OrderBy("full_name", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, full_name FROM profiles WHERE role = $1 AND deleted_at IS NULL ORDER BY full_name, id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "dt" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("matches").
		Columns("id", "opponent").
		Values("m1", "Deportivo Sur").
		Suffix("ON CONFLICT (id) DO NOTHING RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO matches (id, opponent) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "m1" || args[1] != "Deportivo Sur" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("attendance").
		Set("is_pardoned", true).
		SetExpr("pardon_reason", "CASE WHEN is_pardoned THEN pardon_reason ELSE ? END", "Lesionado").
		Where(Eq("id", "att-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE attendance SET is_pardoned = $1, pardon_reason = CASE WHEN is_pardoned THEN pardon_reason ELSE $2 END WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != true || args[1] != "Lesionado" || args[2] != "att-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID     string `db:"id"`
		Amount int    `db:"amount"`
		skip   string
	}

	query, args, err := InsertModels("fees_config", []row{{ID: "a", Amount: 1}, {ID: "b", Amount: 2}}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO fees_config (id, amount) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "b" || args[3] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("fees_config", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestSelectBuilder_JoinAndOptionalConditions(t *testing.T) {
	financed := true
	var year *int

	query, args, err := Select("a.id", "m.match_date").
		From("attendance a").
		Join("JOIN matches m ON m.id = a.match_id").
		Where(EqPtr("a.is_financed", &financed), EqPtr("a.year", year)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT a.id, m.match_date FROM attendance a JOIN matches m ON m.id = a.match_id WHERE a.is_financed = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != true {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = Select("id").From("payments").Where(EqPtr("year", year)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM payments" {
		t.Fatalf("expected no where clause, got %s", query)
	}
}
