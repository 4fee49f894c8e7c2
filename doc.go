// Package libclient is a typed Go client for the BisonVert carpooling REST
// API. It exposes the shared resource client (URL resolution, OAuth1-signed
// requests, pagination, error translation) used by the resource façades in
// the trips, users, talks and ratings subpackages.
package libclient
