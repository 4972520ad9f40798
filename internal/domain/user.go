package domain

// User is a product submitter. Read-only from the dashboard.
type User struct {
	ID       int64  `db:"user_id"`
	Email    string `db:"email"`
	CodeName string `db:"code_name"`
}

// Admin is a staff account allowed into the dashboard.
type Admin struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
}

// Actor identifies the authenticated staff member behind a request.
type Actor struct {
	AdminID string
	Email   string
}

func (a *Admin) Actor() Actor {
	if a == nil {
		return Actor{}
	}
	return Actor{AdminID: a.ID, Email: a.Email}
}
