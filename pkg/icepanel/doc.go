// Package icepanel is a client for the IcePanel REST API.
//
// All requests are scoped to one landscape/version pair (one architecture
// model snapshot) and authenticated with a static API key. The package
// exposes typed wrappers for the handful of resources the exporter reads:
// diagrams and their sub-resources, flows, model objects, and model
// connections.
//
// The API is inconsistent about where it puts data: a diagram response may
// carry objects and relationships at several different locations, or not at
// all. This package deliberately returns raw payloads for those endpoints
// ([Client.DiagramPayload], [Client.DiagramSubresource]) and leaves shape
// resolution to the resolve package; only stable-shaped resources get fully
// typed responses here.
//
// # Usage
//
//	client := icepanel.New(icepanel.Config{
//	    APIKey:      os.Getenv("API_KEY"),
//	    LandscapeID: os.Getenv("LANDSCAPE_ID"),
//	    VersionID:   os.Getenv("LANDSCAPE_VERSION"),
//	})
//	diagrams, err := client.ListDiagrams(ctx)
//
// # Errors
//
// Lookups of missing resources return [ErrNotFound]; transport failures and
// 5xx responses return [ErrNetwork]. Both are sentinel errors meant for
// errors.Is checks. No request is ever retried.
package icepanel
