// Package api exposes the Prospect engine over HTTP using a Forge router.
//
// Routes:
//
//	POST /api/business                 create a business in the New stage
//	POST /api/business/:fein/progress  advance a business one stage
//	GET  /api/business/:fein/status    read the current record
//
// Every error response is a JSON object {"error": "<message>"}. Server-side
// failures are logged with the underlying error; the response carries only
// a fixed message.
package api
