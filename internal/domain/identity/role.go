package identity

import (
	"slices"
	"sort"
)

// Role is one of the three back office roles. Each role carries a fixed
// permission set.
type Role string

const (
	RoleAccounting      Role = "accounting"
	RoleAdminHead       Role = "admin_head"
	RoleSuperAccountant Role = "super_accountant"
)

// Roles lists every role
var Roles = []Role{RoleAccounting, RoleAdminHead, RoleSuperAccountant}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return slices.Contains(Roles, r)
}

// Permission codes, formatted as resource:action
const (
	PermOwnerRead          = "owner:read"
	PermOwnerWrite         = "owner:write"
	PermPropertyRead       = "property:read"
	PermPropertyWrite      = "property:write"
	PermUnitRead           = "unit:read"
	PermUnitWrite          = "unit:write"
	PermFundReferenceRead  = "fund_reference:read"
	PermFundReferenceWrite = "fund_reference:write"
	PermVoucherSeriesRead  = "voucher_series:read"
	PermVoucherSeriesWrite = "voucher_series:write"
	PermVoucherIssue       = "voucher:issue"
	PermLedgerRead         = "ledger:read"
	PermLedgerPost         = "ledger:post"
	PermEmployeeRead       = "employee:read"
	PermEmployeeWrite      = "employee:write"
	PermLeaveRead          = "leave:read"
	PermLeaveWrite         = "leave:write"
	PermLeaveApprove       = "leave:approve"
	PermTardinessRead      = "tardiness:read"
	PermTardinessWrite     = "tardiness:write"
	PermShiftRead          = "shift:read"
	PermShiftWrite         = "shift:write"
	PermOrganizationRead   = "organization:read"
	PermOrganizationWrite  = "organization:write"
	PermClearanceRead      = "clearance:read"
	PermClearanceWrite     = "clearance:write"
	PermActivityLogRead    = "activity_log:read"
	PermExportCreate       = "export:create"
	PermUserRead           = "user:read"
	PermUserWrite          = "user:write"
	PermDashboardRead      = "dashboard:read"
)

var rolePermissions = map[Role][]string{
	RoleAccounting: {
		PermOwnerRead, PermOwnerWrite,
		PermPropertyRead, PermPropertyWrite,
		PermUnitRead, PermUnitWrite,
		PermFundReferenceRead, PermVoucherSeriesRead,
		PermVoucherIssue,
		PermLedgerRead, PermLedgerPost,
		PermOrganizationRead,
		PermExportCreate,
		PermDashboardRead,
	},
	RoleAdminHead: {
		PermOwnerRead, PermPropertyRead, PermUnitRead,
		PermEmployeeRead, PermEmployeeWrite,
		PermLeaveRead, PermLeaveWrite, PermLeaveApprove,
		PermTardinessRead, PermTardinessWrite,
		PermShiftRead, PermShiftWrite,
		PermOrganizationRead, PermOrganizationWrite,
		PermClearanceRead, PermClearanceWrite,
		PermActivityLogRead,
		PermExportCreate,
		PermUserRead, PermUserWrite,
		PermDashboardRead,
	},
	RoleSuperAccountant: {
		PermOwnerRead, PermOwnerWrite,
		PermPropertyRead, PermPropertyWrite,
		PermUnitRead, PermUnitWrite,
		PermFundReferenceRead, PermFundReferenceWrite,
		PermVoucherSeriesRead, PermVoucherSeriesWrite,
		PermVoucherIssue,
		PermLedgerRead, PermLedgerPost,
		PermEmployeeRead, PermLeaveRead, PermTardinessRead, PermShiftRead,
		PermOrganizationRead,
		PermActivityLogRead,
		PermExportCreate,
		PermUserRead, PermUserWrite,
		PermDashboardRead,
	},
}

// Permissions returns a sorted copy of the role's permission codes
func (r Role) Permissions() []string {
	perms := slices.Clone(rolePermissions[r])
	sort.Strings(perms)
	return perms
}

// HasPermission reports whether the role grants code
func (r Role) HasPermission(code string) bool {
	return slices.Contains(rolePermissions[r], code)
}

// DisplayName returns a human readable role name
func (r Role) DisplayName() string {
	switch r {
	case RoleAccounting:
		return "Accounting"
	case RoleAdminHead:
		return "Admin Head"
	case RoleSuperAccountant:
		return "Super Accountant"
	}
	return string(r)
}
