package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	DriverInfoCtx ContextKey = "driverInfo"
	GridCtx       ContextKey = "grid"
)
