package user

type Permission string

const (
	// Own attendance
	PermissionAttendanceRecord  Permission = "attendance.record"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"

	// Team scope
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceExport  Permission = "attendance.export"
	PermissionReportsView       Permission = "reports.view"
	PermissionOperationsViewAll Permission = "operations.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: {
		PermissionAttendanceRecord,
		PermissionAttendanceViewOwn,
	},
	RoleManager: {
		PermissionAttendanceViewAll,
		PermissionAttendanceExport,
		PermissionReportsView,
		PermissionOperationsViewAll,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
