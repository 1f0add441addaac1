// Package fias provides a client for the FIAS public address registry
// HTTP service.
//
// This package includes:
//   - Token acquisition from the registry portal
//   - A blocking Client for straightforward call sites
//   - A context-aware Session with a reusable connection pool
//   - A Search helper that flattens hint payloads into typed results
//
// Example usage:
//
//	token, err := fias.GetToken(fias.DefaultPortalURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Blocking client
//	client := fias.New(token)
//	results, err := client.Search("Москва")
//
//	// Context-aware session
//	session := fias.NewSession(token, fias.WithTimeout(10*time.Second))
//	defer session.Close()
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//	details, err := session.GetDetails(ctx, 1405113)
//
// Errors returned by every operation carry a type from the errors
// package, so callers can branch on the failure kind:
//
//	if errs.TypeOf(err) == errs.ErrorTypeStatus && errs.IsNotFound(err) {
//	    // object does not exist
//	}
package fias
