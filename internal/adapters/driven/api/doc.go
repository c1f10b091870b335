// Package api provides the storefront HTTP client.
//
// It implements driven.StorefrontAPI over three endpoints:
//
//	GET  {base}/products        catalog page, bare array or {items: [...]}
//	GET  {base}/products/{id}   single catalog item
//	POST {base}/search          {query, k} -> {answer, results, primary_product_id}
//
// Payloads are loosely typed. Identifiers may arrive as numbers or numeric
// strings, prices as numbers or strings, the answer as a string, a list or
// anything else, and descriptions may carry HTML. Decoding normalises all of
// these into domain types.
//
// Requests are throttled by a client-side token bucket that also backs off
// after a 429 response, honouring Retry-After.
package api
