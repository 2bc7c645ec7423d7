package constant

const (
	DefaultTokenType = "Bearer"

	DefaultMaxActiveSessions        = 5
	DefaultLoginMaxAttempts         = 5
	DefaultLoginAttemptWindowMin    = 15
	DefaultLoginAttemptRetentionDay = 30

	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080 // 7 days

	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"

	BlacklistReasonLogout    = "user logout"
	BlacklistReasonLogoutAll = "logout all sessions"
)
