package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is a backend-assigned identifier. The API is not consistent about
// quoting ids, so both JSON strings and numbers decode into it.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

type User struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// Staff is the part of a user record a dashboard view needs.
type Staff struct {
	ID         ID
	Name       string
	Department string
}

// DepartmentLabel is the heading form of the department, e.g. "BOOKSHOP DEPARTMENT".
func (s Staff) DepartmentLabel() string {
	return strings.ToUpper(s.Department) + " DEPARTMENT"
}

// Viewer is the role-tagged user a dashboard renders for: Admin or Cashier.
type Viewer interface {
	Profile() Staff
	isViewer()
}

type Admin struct{ Staff }

type Cashier struct{ Staff }

func (a Admin) Profile() Staff   { return a.Staff }
func (c Cashier) Profile() Staff { return c.Staff }
func (Admin) isViewer()          {}
func (Cashier) isViewer()        {}

// Viewer resolves the role-tagged view of u. Roles other than admin and
// cashier resolve to no viewer.
func (u User) Viewer() (Viewer, bool) {
	staff := Staff{ID: u.ID, Name: u.Name, Department: u.Department}
	switch u.Role {
	case RoleAdmin:
		return Admin{staff}, true
	case RoleCashier:
		return Cashier{staff}, true
	default:
		return nil, false
	}
}
