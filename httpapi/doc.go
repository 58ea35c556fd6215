// Package httpapi exposes the search engine over a small JSON HTTP API.
//
// Routes:
//   - POST /search: hybrid query, returns ranked excerpts plus an
//     optional generated recommendation
//   - GET /health: readiness and corpus statistics
//   - GET /: service banner
//
// Engine errors map onto status codes by taxonomy: invalid requests are
// 400, queries before the index is built are 503, everything else is 500.
package httpapi
