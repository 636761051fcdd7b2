// Package cli provides the interactive storefront terminal client.
//
// It wires configuration, local session storage, the API pipeline, the
// session and product stores and the router, then runs a REPL whose
// commands map to the application's views:
//
//   - login, register (guest only)
//   - dashboard, products [page], product <id>, profile (authenticated)
//   - addproduct, editproduct <id>, deleteproduct <id>
//   - refresh, logout, help, exit
//
// Every view is reached through the router, so a guard redirect shows the
// redirect target instead of the requested view. Any 401 from the backend
// ends the session and lands on the login view.
package cli
