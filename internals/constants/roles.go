// file: internals/constants/roles.go
package constants

// Role names carried in the JWT roles claim.
const (
	RoleAdmin       = "admin"
	RoleBursar      = "bursar"
	RoleHeadteacher = "headteacher"
	RoleTeacher     = "teacher"
)

// FinanceRoles may record payments and manage fee structures.
var FinanceRoles = []string{RoleAdmin, RoleBursar}

// PromotionRoles may run eligibility checks and bulk promotions.
var PromotionRoles = []string{RoleAdmin, RoleHeadteacher}
