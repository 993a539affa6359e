// Package proto holds the packet codes and feature-gate revisions of
// the native protocol.
package proto

// Client packet codes.
const (
	ClientHello  = 0
	ClientQuery  = 1
	ClientData   = 2
	ClientCancel = 3
	ClientPing   = 4
)

// Server packet codes.
const (
	ServerHello       = 0
	ServerData        = 1
	ServerException   = 2
	ServerProgress    = 3
	ServerPong        = 4
	ServerEndOfStream = 5
	ServerProfileInfo = 6
	ServerTotals      = 7
	ServerExtremes    = 8
)

// Version this client reports in the handshake.
const (
	VersionMajor = 1
	VersionMinor = 1
	Revision     = 54126
)

// Feature gates by server/client revision.
const (
	RevisionWithBlockInfo            = 51903
	RevisionWithTotalRowsInProgress  = 51554
	RevisionWithTemporaryTables      = 50264
	RevisionWithClientInfo           = 54032
	RevisionWithServerTimezone       = 54058
	RevisionWithQuotaKeyInClientInfo = 54060
)

// Query processing stages.
const (
	StageComplete = 2
)

// Compression negotiation values in the query packet.
const (
	CompressionDisabled = 0
	CompressionEnabled  = 1
)
