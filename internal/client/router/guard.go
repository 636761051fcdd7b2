package router

// AuthState reports whether a session is authenticated.
type AuthState interface {
	IsAuthenticated() bool
}

// Decision is the outcome of a guard check. Redirect is empty when allowed.
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

type Guard struct {
	auth AuthState
}

func NewGuard(auth AuthState) *Guard {
	return &Guard{auth: auth}
}

// Check applies, in order: protected view while anonymous goes to login,
// guest-only view while authenticated goes to the dashboard.
func (g *Guard) Check(to Route) Decision {
	authenticated := g.auth != nil && g.auth.IsAuthenticated()

	if to.RequiresAuth && !authenticated {
		return Decision{Redirect: "/login"}
	}
	if to.RequiresGuest && authenticated {
		return Decision{Redirect: "/dashboard"}
	}
	return Decision{}
}
