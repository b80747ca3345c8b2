// Package http provides HTTP handlers and middleware for the Nayi Disha API.
//
// The router exposes the following endpoints:
//   - POST /api/auth/signup: registers an account. Body: the signupRequest
//     fields. Responds 201 with {"user","redirect_to":"/auth/signin"}.
//   - POST /api/auth/signin: issues a session token. Body: {"email","password"}.
//     Response: {"token","expires_at","user"} with the token also surfaced via
//     the `X-Session-Token` header and a `session_token` cookie.
//   - GET /api/auth/session: reports {"status":"authenticated","user"} or
//     {"status":"unauthenticated"}. It never answers 401.
//   - POST /api/auth/signout: revokes the current session token extracted from
//     the Authorization header or session cookie. Returns 204 and clears the cookie.
//   - GET /api/jobs?status=&search=&location=: job listing, newest first.
//     Response: {"jobs","total","empty","empty_message"}.
//   - GET /api/jobs/{id}: {"job","company"}; 404 {"message":"Job not found"}.
//   - GET, POST /api/profile/job-seeker and /api/profile/interviewer: session
//     guarded profile bootstrap and edit. GET returns
//     {"profile","is_new","email","display"}; POST returns {"profile","redirect_to"}.
//   - GET /healthz: {"status":"ok"} after a database ping, 503 otherwise.
//
// Signup and signin may be wrapped in RateLimit, which answers 429 with
// error_code RATE_LIMITED and a Retry-After header.
//
// Every error body has the shape {"message","error_code","errors","redirect_to"}
// with the optional members omitted. Request/response DTOs live alongside
// their respective handlers so tests and documentation share the same ground truth.
package http
