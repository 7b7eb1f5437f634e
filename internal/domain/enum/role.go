package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Role is the single role a user carries: office admins run the order book,
// captains fill in trip expenses.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCaptain Role = "captain"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCaptain
}

func (r Role) String() string {
	return string(r)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = Role(str)
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleCaptain
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	}
	return nil
}
