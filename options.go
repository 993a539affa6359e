package novaclick

import "time"

// Options configures a client connection.
type Options struct {
	Addr     string
	Database string
	User     string
	Password string

	// Compression wraps block bodies in LZ4 frames.
	Compression bool

	// ClientName is reported to the server in the handshake.
	ClientName string

	DialTimeout time.Duration

	// RWTimeout bounds each call when the context carries no deadline
	// (0 = no timeout).
	RWTimeout time.Duration
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.User == "" {
		out.User = "default"
	}
	if out.ClientName == "" {
		out.ClientName = "novaclick client"
	}
	return out
}
