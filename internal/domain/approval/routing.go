package approval

// RequiredApprovers maps a sensitivity tier to the ordered approver roles a
// request is routed to. The order is advisory metadata: any single authorized
// actor resolves the request, sequential multi-party sign-off is not enforced.
func RequiredApprovers(level SensitivityLevel) []ApproverRole {
	switch level {
	case SensitivityHigh:
		return []ApproverRole{RoleManager, RoleAdmin, RoleSeniorManager}
	case SensitivityMedium:
		return []ApproverRole{RoleManager, RoleAdmin}
	default:
		return []ApproverRole{RoleManager}
	}
}
