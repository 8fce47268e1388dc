package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountCommand(t *testing.T) {
	assert.Equal(t, "SELECT COUNT(*) FROM Movie", NewCount("Movie").ToSQL())

	withWhere := NewCount("Movie").Where(EqualTo("title", StringValue("Se7en")))
	assert.Equal(t, "SELECT COUNT(*) FROM Movie WHERE title = 'Se7en'", withWhere.ToSQL())
}

func TestSelectCommand(t *testing.T) {
	t.Run("plain projection", func(t *testing.T) {
		cmd := NewSelect("Movie", []string{"_id", "title"})
		assert.Equal(t,
			`SELECT Movie._id AS "_id", Movie.title AS "title" FROM Movie`,
			cmd.ToSQL())
	})

	t.Run("where clause omitted when empty", func(t *testing.T) {
		cmd := NewSelect("Movie", []string{"_id"}).Where(nil)
		assert.NotContains(t, cmd.ToSQL(), "WHERE")
	})

	t.Run("order clauses apply in call order", func(t *testing.T) {
		cmd := NewSelect("Movie", []string{"_id"}).
			OrderBy(OrderBy{Key: "a", Direction: Ascending}).
			OrderBy(OrderBy{Key: "b", Direction: Descending})
		assert.Contains(t, cmd.ToSQL(), "ORDER BY a ASC, b DESC")
	})

	t.Run("join disambiguates foreign columns", func(t *testing.T) {
		cmd := NewSelect("Movie", []string{"_id", "title"}).
			Join("Person", "director", []string{"_id", "name"})
		sql := cmd.ToSQL()
		assert.Contains(t, sql, `director._id AS "director._id"`)
		assert.Contains(t, sql, `director.name AS "director.name"`)
		assert.Contains(t, sql, "LEFT JOIN Person AS director ON Movie.director = director._id")
	})

	t.Run("two joins on the same foreign table stay distinct", func(t *testing.T) {
		cmd := NewSelect("Movie", []string{"_id"}).
			Join("Person", "director", []string{"name"}).
			Join("Person", "writer", []string{"name"})
		sql := cmd.ToSQL()
		assert.Contains(t, sql, `director.name AS "director.name"`)
		assert.Contains(t, sql, `writer.name AS "writer.name"`)
		assert.Contains(t, sql, "LEFT JOIN Person AS director ON Movie.director = director._id")
		assert.Contains(t, sql, "LEFT JOIN Person AS writer ON Movie.writer = writer._id")
	})

	t.Run("full statement shape", func(t *testing.T) {
		cmd := NewSelect("Movie", []string{"_id", "title"}).
			Join("Person", "director", []string{"_id", "name"}).
			Where(EqualTo("title", StringValue("Se7en"))).
			OrderBy(OrderBy{Key: "title"})
		assert.Equal(t,
			`SELECT Movie._id AS "_id", Movie.title AS "title", `+
				`director._id AS "director._id", director.name AS "director.name" `+
				`FROM Movie LEFT JOIN Person AS director ON Movie.director = director._id `+
				`WHERE Movie.title = 'Se7en' ORDER BY Movie.title ASC`,
			cmd.ToSQL())
	})

	t.Run("join qualifies where and order keys shared with the foreign table", func(t *testing.T) {
		// Every join shares at least _id/createdAt/updatedAt with the base
		// table; bare keys would be ambiguous.
		cmd := NewSelect("Movie", []string{"_id", "title"}).
			Join("Person", "director", []string{"_id", "title"}).
			Where(EqualTo("title", StringValue("Se7en")).
				And(EqualTo("year", IntValue(1995)))).
			OrderBy(OrderBy{Key: "createdAt", Direction: Descending})
		sql := cmd.ToSQL()
		assert.Contains(t, sql, "WHERE (Movie.title = 'Se7en') AND (Movie.year = 1995)")
		assert.Contains(t, sql, "ORDER BY Movie.createdAt DESC")
	})

	t.Run("keys stay bare without joins", func(t *testing.T) {
		cmd := NewSelect("Movie", []string{"_id"}).
			Where(EqualTo("title", StringValue("Se7en"))).
			OrderBy(OrderBy{Key: "title"})
		assert.Contains(t, cmd.ToSQL(), "WHERE title = 'Se7en' ORDER BY title ASC")
	})
}

func TestWhereQualify(t *testing.T) {
	w := EqualTo("title", StringValue("Se7en")).
		And(NotEqualTo("year", IntValue(1999)))
	assert.Equal(t, "(Movie.title = 'Se7en') AND (Movie.year <> 1999)",
		w.Qualify("Movie").SQL())

	// The receiver tree is untouched.
	assert.Equal(t, "(title = 'Se7en') AND (year <> 1999)", w.SQL())

	var nilWhere *Where
	assert.Nil(t, nilWhere.Qualify("Movie"))
}

func TestCreateIndexCommand(t *testing.T) {
	cmd := NewCreateIndex("Movie", []string{"title"})
	assert.Equal(t, "CREATE INDEX Movie_title_index ON Movie(title)", cmd.ToSQL())

	cmd.IfNotExists()
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS Movie_title_index ON Movie(title)", cmd.ToSQL())

	// The name is a pure function of (table, keys), which is what makes
	// repeated creation with IF NOT EXISTS a no-op.
	again := NewCreateIndex("Movie", []string{"title"}).IfNotExists()
	assert.Equal(t, cmd.ToSQL(), again.ToSQL())

	composite := NewCreateIndex("Movie", []string{"title", "year"})
	assert.Equal(t, "CREATE INDEX Movie_title_year_index ON Movie(title, year)", composite.ToSQL())
}

func TestCreateTableCommand(t *testing.T) {
	cmd := NewCreateTable("Movie", []Column{
		{Name: "_id", SQLType: "INTEGER", PrimaryKey: true},
		{Name: "title", SQLType: "TEXT"},
		{Name: "year", SQLType: "NUMERIC", NotNull: true},
	}).IfNotExists()
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS Movie "+
			"(_id INTEGER PRIMARY KEY AUTOINCREMENT, title TEXT, year NUMERIC NOT NULL)",
		cmd.ToSQL())
}

func TestInsertCommand(t *testing.T) {
	cmd := NewInsert("Movie", []string{"title", "year"}, []Value{StringValue("Se7en"), IntValue(1995)})
	assert.Equal(t, "INSERT INTO Movie (title, year) VALUES ('Se7en', 1995)", cmd.ToSQL())

	cmd.OrReplace()
	assert.Equal(t, "INSERT OR REPLACE INTO Movie (title, year) VALUES ('Se7en', 1995)", cmd.ToSQL())
}

func TestUpdateCommand(t *testing.T) {
	cmd := NewUpdate("Movie").
		Set("title", StringValue("Fight Club")).
		Set("year", IntValue(1999)).
		Where(EqualTo("_id", IntValue(2)))
	assert.Equal(t,
		"UPDATE Movie SET title = 'Fight Club', year = 1999 WHERE _id = 2",
		cmd.ToSQL())
}
