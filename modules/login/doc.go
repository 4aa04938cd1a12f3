// Package login serves the admin sign-in page.
//
// The page's form is validated on the server with the rules of
// assets/login.yaml. A passing submission authenticates the credentials,
// starts a session and redirects to the home path. Fields are revalidated
// one at a time while the user edits them when the page runs the DataStar
// client.
//
// Mounting:
//
//	svc, err := login.NewService(cfg, auth, sessions, login.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	r.Mount("/", svc.Handle())
package login
