package handler

import "time"

// actionRequest is the body for manual-action, auto-action and the
// reconciliation endpoints.
type actionRequest struct {
	Actor string `json:"actor"`
}

// rejectRequest lists the problems found with a document.
type rejectRequest struct {
	Actor    string   `json:"actor"`
	Problems []string `json:"problems"`
}

// expireRequest carries the retention deadline that passed. A zero At means
// "now".
type expireRequest struct {
	At time.Time `json:"at"`
}
