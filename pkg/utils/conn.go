package utils

import (
	"net"
	"time"
)

// SecondsDuration converts a seconds count to a time.Duration;
// zero stays zero (no timeout).
func SecondsDuration(seconds int) time.Duration {
	return time.Second * time.Duration(seconds)
}

// SetDeadlineSeconds sets an absolute deadline seconds from now.
// Zero or negative seconds clears the deadline.
func SetDeadlineSeconds(conn net.Conn, seconds int) error {
	if seconds <= 0 {
		return conn.SetDeadline(time.Time{})
	}
	return conn.SetDeadline(time.Now().Add(time.Second * time.Duration(seconds)))
}
