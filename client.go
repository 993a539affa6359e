// Package novaclick is a native TCP client for a columnar analytic
// database. Result data travels as blocks of typed columns; see the
// block and column packages for the data model and its wire codec.
package novaclick

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/tuannm99/novaclick/block"
	"github.com/tuannm99/novaclick/internal/compress"
	"github.com/tuannm99/novaclick/internal/proto"
	"github.com/tuannm99/novaclick/internal/wire"
)

// ServerInfo is what the server reported in the handshake.
type ServerInfo struct {
	Name         string
	VersionMajor uint64
	VersionMinor uint64
	Revision     uint64
	Timezone     string
}

// Client is a synchronous connection. Calls lock send/recv, so methods
// may be invoked concurrently but they serialize.
type Client struct {
	opts Options
	conn net.Conn
	br   *bufio.Reader
	bw   *bufio.Writer
	r    *wire.Reader
	w    *wire.Writer
	mu   sync.Mutex

	server ServerInfo
}

// Dial connects and performs the handshake.
func Dial(opts Options) (*Client, error) {
	return DialContext(context.Background(), opts)
}

func DialContext(ctx context.Context, opts Options) (*Client, error) {
	opts = opts.withDefaults()
	d := net.Dialer{Timeout: opts.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", opts.Addr)
	if err != nil {
		return nil, err
	}

	c := &Client{
		opts: opts,
		conn: conn,
		br:   bufio.NewReader(conn),
		bw:   bufio.NewWriter(conn),
	}
	c.r = wire.NewReader(c.br)
	c.w = wire.NewWriter(c.bw)

	if err := c.handshake(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Server returns the handshake information.
func (c *Client) Server() ServerInfo {
	return c.server
}

// Execute runs a query and discards any result rows.
func (c *Client) Execute(query string) error {
	return c.ExecuteContext(context.Background(), query)
}

func (c *Client) ExecuteContext(ctx context.Context, query string) error {
	return c.SelectContext(ctx, query, func(*block.Block) {})
}

// Select runs a query and passes every received block to cb, including
// the leading zero-row header block.
func (c *Client) Select(query string, cb func(*block.Block)) error {
	return c.SelectContext(context.Background(), query, cb)
}

func (c *Client) SelectContext(ctx context.Context, query string, cb func(*block.Block)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearDeadline()
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}

	if err := c.sendQuery(query); err != nil {
		return err
	}
	scratch := block.New()
	return c.receiveResult(func() error {
		scratch.Clear()
		if err := c.receiveData(scratch); err != nil {
			return err
		}
		cb(scratch)
		return nil
	})
}

// SelectInto runs a query and accumulates every result fragment into b.
// The block is cleared first but keeps its column slots, so reusing one
// block across many selects avoids reallocation.
func (c *Client) SelectInto(query string, b *block.Block) error {
	return c.SelectIntoContext(context.Background(), query, b)
}

func (c *Client) SelectIntoContext(ctx context.Context, query string, b *block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearDeadline()
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}

	if err := c.sendQuery(query); err != nil {
		return err
	}
	b.Clear()
	return c.receiveResult(func() error {
		return c.receiveData(b)
	})
}

// Insert sends the block as rows of the given table.
func (c *Client) Insert(table string, b *block.Block) error {
	return c.InsertContext(context.Background(), table, b)
}

func (c *Client) InsertContext(ctx context.Context, table string, b *block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearDeadline()
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}

	names := make([]string, 0, b.ColumnCount())
	for it := b.Iterate(); it.IsValid(); it.Next() {
		names = append(names, it.Name())
	}
	query := "INSERT INTO " + table
	if len(names) > 0 {
		query += " ( " + strings.Join(names, ", ") + " )"
	}
	query += " VALUES"

	if err := c.sendQuery(query); err != nil {
		return err
	}

	// The server answers with a zero-row header block describing the
	// table before it accepts data.
	header := block.New()
	if err := c.receiveUntilData(header); err != nil {
		return err
	}

	if err := c.sendData(b); err != nil {
		return err
	}
	if err := c.sendData(block.New()); err != nil {
		return err
	}
	if err := c.bw.Flush(); err != nil {
		return err
	}

	scratch := block.New()
	return c.receiveResult(func() error {
		scratch.Clear()
		return c.receiveData(scratch)
	})
}

// Ping checks that the server is alive.
func (c *Client) Ping() error {
	return c.PingContext(context.Background())
}

func (c *Client) PingContext(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearDeadline()
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}

	if err := c.w.WriteUvarint(proto.ClientPing); err != nil {
		return err
	}
	if err := c.bw.Flush(); err != nil {
		return err
	}
	for {
		packet, err := c.r.ReadUvarint()
		if err != nil {
			return err
		}
		switch packet {
		case proto.ServerPong:
			return nil
		case proto.ServerProgress:
			if err := c.skipProgress(); err != nil {
				return err
			}
		case proto.ServerException:
			e, err := readException(c.r)
			if err != nil {
				return err
			}
			return e
		default:
			return fmt.Errorf("novaclick: unexpected packet %d waiting for pong", packet)
		}
	}
}

func (c *Client) handshake(ctx context.Context) error {
	defer c.clearDeadline()
	if err := c.applyDeadline(ctx); err != nil {
		return err
	}

	if err := c.w.WriteUvarint(proto.ClientHello); err != nil {
		return err
	}
	if err := c.w.WriteString(c.opts.ClientName); err != nil {
		return err
	}
	if err := c.w.WriteUvarint(proto.VersionMajor); err != nil {
		return err
	}
	if err := c.w.WriteUvarint(proto.VersionMinor); err != nil {
		return err
	}
	if err := c.w.WriteUvarint(proto.Revision); err != nil {
		return err
	}
	if err := c.w.WriteString(c.opts.Database); err != nil {
		return err
	}
	if err := c.w.WriteString(c.opts.User); err != nil {
		return err
	}
	if err := c.w.WriteString(c.opts.Password); err != nil {
		return err
	}
	if err := c.bw.Flush(); err != nil {
		return err
	}

	packet, err := c.r.ReadUvarint()
	if err != nil {
		return err
	}
	switch packet {
	case proto.ServerHello:
		if c.server.Name, err = c.r.ReadString(); err != nil {
			return err
		}
		if c.server.VersionMajor, err = c.r.ReadUvarint(); err != nil {
			return err
		}
		if c.server.VersionMinor, err = c.r.ReadUvarint(); err != nil {
			return err
		}
		if c.server.Revision, err = c.r.ReadUvarint(); err != nil {
			return err
		}
		if c.server.Revision >= proto.RevisionWithServerTimezone {
			if c.server.Timezone, err = c.r.ReadString(); err != nil {
				return err
			}
		}
		return nil
	case proto.ServerException:
		e, err := readException(c.r)
		if err != nil {
			return err
		}
		return e
	default:
		return fmt.Errorf("novaclick: unexpected packet %d in handshake", packet)
	}
}

func (c *Client) sendQuery(query string) error {
	if err := c.w.WriteUvarint(proto.ClientQuery); err != nil {
		return err
	}
	if err := c.w.WriteString(""); err != nil { // query id
		return err
	}

	if c.server.Revision >= proto.RevisionWithClientInfo {
		if err := c.sendClientInfo(); err != nil {
			return err
		}
	}

	if err := c.w.WriteString(""); err != nil { // settings terminator
		return err
	}
	if err := c.w.WriteUvarint(proto.StageComplete); err != nil {
		return err
	}
	compression := uint64(proto.CompressionDisabled)
	if c.opts.Compression {
		compression = proto.CompressionEnabled
	}
	if err := c.w.WriteUvarint(compression); err != nil {
		return err
	}
	if err := c.w.WriteString(query); err != nil {
		return err
	}

	// External tables terminator.
	if err := c.sendData(block.New()); err != nil {
		return err
	}
	return c.bw.Flush()
}

func (c *Client) sendClientInfo() error {
	if err := c.w.WriteUint8(1); err != nil { // initial query
		return err
	}
	for _, s := range []string{"", "", "[::ffff:127.0.0.1]:0"} { // initial user, id, address
		if err := c.w.WriteString(s); err != nil {
			return err
		}
	}
	if err := c.w.WriteUint8(1); err != nil { // TCP
		return err
	}
	for _, s := range []string{"", "", c.opts.ClientName} { // os user, hostname, client name
		if err := c.w.WriteString(s); err != nil {
			return err
		}
	}
	if err := c.w.WriteUvarint(proto.VersionMajor); err != nil {
		return err
	}
	if err := c.w.WriteUvarint(proto.VersionMinor); err != nil {
		return err
	}
	if err := c.w.WriteUvarint(proto.Revision); err != nil {
		return err
	}
	if c.server.Revision >= proto.RevisionWithQuotaKeyInClientInfo {
		if err := c.w.WriteString(""); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) sendData(b *block.Block) error {
	if err := c.w.WriteUvarint(proto.ClientData); err != nil {
		return err
	}
	if c.server.Revision >= proto.RevisionWithTemporaryTables {
		if err := c.w.WriteString(""); err != nil { // table name
			return err
		}
	}
	if c.opts.Compression {
		var buf bytes.Buffer
		if err := b.Encode(wire.NewWriter(&buf)); err != nil {
			return err
		}
		return compress.NewWriter(c.bw).WriteBlock(buf.Bytes())
	}
	return b.Encode(c.w)
}

// receiveResult consumes server packets until end of stream, calling
// onData for every data packet.
func (c *Client) receiveResult(onData func() error) error {
	scratch := block.New()
	for {
		packet, err := c.r.ReadUvarint()
		if err != nil {
			return err
		}
		switch packet {
		case proto.ServerData:
			if err := onData(); err != nil {
				return err
			}
		case proto.ServerTotals, proto.ServerExtremes:
			scratch.Clear()
			if err := c.receiveData(scratch); err != nil {
				return err
			}
		case proto.ServerProgress:
			if err := c.skipProgress(); err != nil {
				return err
			}
		case proto.ServerProfileInfo:
			if err := c.skipProfileInfo(); err != nil {
				return err
			}
		case proto.ServerException:
			e, err := readException(c.r)
			if err != nil {
				return err
			}
			return e
		case proto.ServerEndOfStream:
			return nil
		default:
			return fmt.Errorf("novaclick: unexpected server packet %d", packet)
		}
	}
}

// receiveUntilData consumes packets up to and including the next data
// packet, decoding it into b.
func (c *Client) receiveUntilData(b *block.Block) error {
	for {
		packet, err := c.r.ReadUvarint()
		if err != nil {
			return err
		}
		switch packet {
		case proto.ServerData:
			return c.receiveData(b)
		case proto.ServerProgress:
			if err := c.skipProgress(); err != nil {
				return err
			}
		case proto.ServerProfileInfo:
			if err := c.skipProfileInfo(); err != nil {
				return err
			}
		case proto.ServerException:
			e, err := readException(c.r)
			if err != nil {
				return err
			}
			return e
		default:
			return fmt.Errorf("novaclick: unexpected server packet %d waiting for data", packet)
		}
	}
}

func (c *Client) receiveData(b *block.Block) error {
	if c.server.Revision >= proto.RevisionWithTemporaryTables {
		if _, err := c.r.ReadString(); err != nil { // table name
			return err
		}
	}
	r := c.r
	if c.opts.Compression {
		r = wire.NewReader(compress.NewReader(c.br))
	}
	return b.Decode(r)
}

func (c *Client) skipProgress() error {
	if _, err := c.r.ReadUvarint(); err != nil { // rows
		return err
	}
	if _, err := c.r.ReadUvarint(); err != nil { // bytes
		return err
	}
	if c.server.Revision >= proto.RevisionWithTotalRowsInProgress {
		if _, err := c.r.ReadUvarint(); err != nil { // total rows
			return err
		}
	}
	return nil
}

func (c *Client) skipProfileInfo() error {
	for i := 0; i < 3; i++ { // rows, blocks, bytes
		if _, err := c.r.ReadUvarint(); err != nil {
			return err
		}
	}
	if _, err := c.r.ReadUint8(); err != nil { // applied limit
		return err
	}
	if _, err := c.r.ReadUvarint(); err != nil { // rows before limit
		return err
	}
	if _, err := c.r.ReadUint8(); err != nil { // calculated rows before limit
		return err
	}
	return nil
}

// applyDeadline prefers the context deadline, falling back to the
// configured RWTimeout.
func (c *Client) applyDeadline(ctx context.Context) error {
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.opts.RWTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.opts.RWTimeout))
	}
	return nil
}

// clearDeadline runs after each call so an idle connection doesn't
// expire.
func (c *Client) clearDeadline() {
	_ = c.conn.SetDeadline(time.Time{})
}
