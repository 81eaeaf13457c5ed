// Package nbclient is the entry point for building a namebright.Client.
//
// It validates the configuration, normalizes the API root and wires the
// client-credentials token manager, HTTP transport and resource clients
// together. Most applications import nbclient to build a client, then use
// the returned namebright.Client to reach Account(), Domains(),
// Nameservers() and Purchase().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/namebright-client/pkg/namebright"
//	  "github.com/fivetwenty-io/namebright-client/pkg/nbclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := nbclient.New(&namebright.Config{
//	    AccountLogin: "acme",
//	    AppName:      "dns-sync",
//	    AppSecret:    "s3cret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  account, err := cli.Account().Get(ctx)
//	  if err != nil { log.Fatal(err) }
//	  log.Printf("balance: %.2f", account.AccountBalance)
//	}
//
// The first call obtains a bearer token and caches it in memory until a
// minute before it expires. Nothing is persisted.
package nbclient
