// Package session holds the state of one user's submission cycle: the current parameters, the last
// results and the submission sequence number.
//
// A submission moves the session from Idle to Pending, then to Succeeded or Failed. Starting a new
// submission releases the previous results first. Results of a submission that was superseded while in
// flight are released and never exposed.
package session
