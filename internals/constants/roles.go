package constants

import "fmt"

// Role yang dikenal token operator.
const (
	RoleOperator = "operator"
)

// Template pesan error role
const (
	ErrOnlyOperatorsCanAccess = "❌ Hanya operator yang boleh mengakses fitur %s."
)

func RoleErrorOperator(feature string) string {
	return fmt.Sprintf(ErrOnlyOperatorsCanAccess, feature)
}

var OperatorOnly = []string{RoleOperator}
