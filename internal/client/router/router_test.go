package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth bool

func (f *fakeAuth) IsAuthenticated() bool { return bool(*f) }

func TestGuard_Check(t *testing.T) {
	routes := newTable(DefaultRoutes())
	get := func(name string) Route {
		r, ok := routes.lookup(name)
		require.True(t, ok)
		return r
	}

	tests := []struct {
		name          string
		authenticated bool
		to            string
		redirect      string
	}{
		{"anonymous to dashboard", false, Dashboard, "/login"},
		{"anonymous to products", false, Products, "/login"},
		{"anonymous to profile", false, Profile, "/login"},
		{"anonymous to login", false, Login, ""},
		{"anonymous to register", false, Register, ""},
		{"authenticated to login", true, Login, "/dashboard"},
		{"authenticated to register", true, Register, "/dashboard"},
		{"authenticated to dashboard", true, Dashboard, ""},
		{"authenticated to products", true, Products, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fakeAuth(tt.authenticated)
			d := NewGuard(&a).Check(get(tt.to))
			assert.Equal(t, tt.redirect, d.Redirect)
			assert.Equal(t, tt.redirect == "", d.Allowed())
		})
	}
}

func TestGuard_NilAuthIsAnonymous(t *testing.T) {
	d := NewGuard(nil).Check(Route{RequiresAuth: true})
	assert.Equal(t, "/login", d.Redirect)
}

func TestRouter_Push(t *testing.T) {
	a := fakeAuth(false)
	r := New(&a, DefaultRoutes())

	got, err := r.Push("/")
	require.NoError(t, err)
	assert.Equal(t, Login, got.Name, "root redirects to dashboard which requires auth")
	assert.Equal(t, Login, r.Current().Name)

	a = true
	got, err = r.Push("/")
	require.NoError(t, err)
	assert.Equal(t, Dashboard, got.Name)

	got, err = r.Push(Register)
	require.NoError(t, err)
	assert.Equal(t, Dashboard, got.Name)

	got, err = r.Push("/products/")
	require.NoError(t, err)
	assert.Equal(t, Products, got.Name)
	assert.Equal(t, Products, r.Current().Name)
}

func TestRouter_UnknownRoute(t *testing.T) {
	a := fakeAuth(true)
	r := New(&a, DefaultRoutes())

	_, err := r.Push("/nowhere")
	assert.ErrorIs(t, err, ErrUnknownRoute)
	assert.Empty(t, r.Current().Name)
}

func TestRouter_RedirectLoopIsBounded(t *testing.T) {
	routes := []Route{
		{Name: "a", Path: "/a", Redirect: "/b"},
		{Name: "b", Path: "/b", Redirect: "/a"},
	}
	r := New(nil, routes)

	_, err := r.Push("a")
	assert.ErrorIs(t, err, ErrTooManyRedirects)
}
