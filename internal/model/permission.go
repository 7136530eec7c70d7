package model

// Permission identifies one admin capability. Stored in the permissions
// table and embedded in admin JWTs.
type Permission string

const (
	PermissionCandidatesRead   Permission = "candidates:read"
	PermissionCandidatesWrite  Permission = "candidates:write"
	PermissionCandidatesAssign Permission = "candidates:assign"
	PermissionResultsRead      Permission = "results:read"
	PermissionInvitesSend      Permission = "invites:send"
	PermissionAdminsRead       Permission = "admins:read"
	PermissionAdminsWrite      Permission = "admins:write"
	PermissionRolesRead        Permission = "roles:read"
	PermissionRolesWrite       Permission = "roles:write"
)

// AllPermissions lists every known permission for role management UIs.
var AllPermissions = []Permission{
	PermissionCandidatesRead,
	PermissionCandidatesWrite,
	PermissionCandidatesAssign,
	PermissionResultsRead,
	PermissionInvitesSend,
	PermissionAdminsRead,
	PermissionAdminsWrite,
	PermissionRolesRead,
	PermissionRolesWrite,
}
