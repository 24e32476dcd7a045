package models

// User represents one row of the users table.
type User struct {
	ID    int64  `db:"id,primaryKey,autoIncrement" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Age   int    `db:"age" json:"age"`
}
