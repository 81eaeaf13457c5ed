// Package namebright defines the types, interfaces and errors of the
// NameBright registrar API client.
//
// Create a client with nbclient.New:
//
//	client, err := nbclient.New(&namebright.Config{
//		AccountLogin: "login",
//		AppName:      "my-app",
//		AppSecret:    "secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	account, err := client.Account().Get(ctx)
//
// # Authentication
//
// The client obtains a bearer token with the client-credentials grant on the
// first call and keeps it in memory. A token is renewed 60 seconds before it
// expires; concurrent callers share a single refresh.
//
// # Listing domains
//
// Domains().List returns one page. Domains().Iterate returns a DomainIterator
// that fetches pages on demand:
//
//	it := client.Domains().Iterate(ctx, 20)
//	for it.HasNext() {
//		domain, err := it.Next()
//		if err != nil {
//			return err
//		}
//		fmt.Println(domain.DomainName)
//	}
//
// # Errors
//
// Construction and argument problems wrap ErrConfiguration or ErrValidation
// and are returned before any request is sent. A token response without an
// access token wraps ErrAuthentication. Non-2xx responses are returned as
// *ResponseError; network errors are returned unchanged. Nothing is retried.
package namebright
