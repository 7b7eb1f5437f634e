package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ExpenseCategory tags a receipt with the expense line it documents.
type ExpenseCategory string

const (
	ExpenseCategoryFuel      ExpenseCategory = "fuel"
	ExpenseCategoryIce       ExpenseCategory = "ice"
	ExpenseCategoryBeverages ExpenseCategory = "beverages"
	ExpenseCategoryMisc      ExpenseCategory = "misc"
	ExpenseCategoryGeneral   ExpenseCategory = "general"
)

// IsValid reports whether the category belongs to the closed set.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryFuel, ExpenseCategoryIce, ExpenseCategoryBeverages,
		ExpenseCategoryMisc, ExpenseCategoryGeneral:
		return true
	}
	return false
}

func (c ExpenseCategory) String() string {
	return string(c)
}

func (c ExpenseCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *ExpenseCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = ExpenseCategory(str)
	return nil
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ExpenseCategoryGeneral
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = ExpenseCategory(v)
	case []byte:
		*c = ExpenseCategory(string(v))
	}
	return nil
}
