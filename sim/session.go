package sim

// Session identifies the active account. It is created at login, owned by
// the engine, and destroyed at logout; there is no process-wide singleton.
type Session struct {
	AccountID string
	Name      string
}
