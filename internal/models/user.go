package models

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	UsersName string `json:"usersName,omitempty"`
	Role      string `json:"role"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	m, err := decodeObject(data)
	if err != nil {
		return err
	}
	u.ID, _ = idField(m)
	u.Email, _ = strField(m, "email", "Email")
	u.UsersName, _ = strField(m, "usersName", "UsersName", "name", "Name")
	u.Role, _ = strField(m, "role", "Role")
	return nil
}
